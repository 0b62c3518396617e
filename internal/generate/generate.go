// Package generate produces content in a creator's voice for the generation
// endpoint. It builds a kind-specific prompt and calls an OpenAI-compatible
// chat completion API (OpenRouter by default).
package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/trueinfluence/writeit/internal/action"
	werrors "github.com/trueinfluence/writeit/internal/errors"
	"github.com/trueinfluence/writeit/internal/logger"
)

// Sampling parameters for generation.
const (
	Temperature = 0.6
	MaxTokens   = 2000
)

// FailureContent is returned to clients alongside the error when generation fails.
const FailureContent = "Sorry, content generation failed. Please try again."

// ErrNoAPIKey is returned when no chat client is configured.
var ErrNoAPIKey = errors.New("OPENROUTER_API_KEY is not set")

// ChatClient is the subset of *openai.Client used here.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// NewOpenAIClient creates a chat client for an OpenAI-compatible API. It
// returns nil when apiKey is empty.
func NewOpenAIClient(apiKey, baseURL string) ChatClient {
	if apiKey == "" {
		return nil
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(cfg)
}

// Generator turns action requests into content.
type Generator struct {
	client ChatClient
	voices *VoiceStore
	model  string
	now    func() time.Time
}

// NewGenerator creates a generator. client may be nil, in which case every
// call fails with ErrNoAPIKey.
func NewGenerator(client ChatClient, voices *VoiceStore, model string) *Generator {
	return &Generator{client: client, voices: voices, model: model, now: time.Now}
}

// Generate produces content for req in slug's voice.
func (g *Generator) Generate(ctx context.Context, slug string, req action.Request) (string, error) {
	log := logger.ComponentLogger("Generate").With("slug", slug, "kind", string(req.Type))

	if g.client == nil {
		return "", werrors.GenerationFailed(slug, ErrNoAPIKey)
	}

	voice, err := g.voices.Load(slug)
	if err != nil {
		return "", err
	}

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt(voice)},
		{Role: openai.ChatMessageRoleUser, Content: userPrompt(req, voice.Channel, g.now().Year())},
	}

	start := time.Now()
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Messages:    messages,
		Temperature: Temperature,
		MaxTokens:   MaxTokens,
	})
	if err != nil {
		log.Warn("completion failed", "error", err, "elapsed", time.Since(start))
		return "", werrors.GenerationFailed(slug, err)
	}
	if len(resp.Choices) == 0 {
		log.Warn("completion returned no choices")
		return "", werrors.GenerationFailed(slug, errors.New("no choices in completion response"))
	}

	content := resp.Choices[0].Message.Content
	log.Info("generated content", "bytes", len(content), "elapsed", time.Since(start))
	return content, nil
}

// extraContext summarizes the optional request fields for the prompt.
func extraContext(req action.Request) string {
	var parts []string
	if req.CardType != "" {
		parts = append(parts, "card type: "+req.CardType)
	}
	if req.Views != "" {
		parts = append(parts, "views: "+req.Views)
	}
	if req.BigBet != "" {
		parts = append(parts, "big bet: "+req.BigBet)
	}
	if req.Label != "" {
		parts = append(parts, "angle: "+req.Label)
	}
	if len(parts) == 0 {
		return ""
	}
	return "\nAdditional context: " + strings.Join(parts, "; ")
}

func systemPrompt(v Voice) string {
	return fmt.Sprintf(`You write EXCLUSIVELY in the voice and style of %[1]s.

VOICE PROFILE:
%[2]s

RULES:
- Match their exact tone, vocabulary, sentence patterns, personality
- Use their signature phrases naturally
- Write as if %[1]s is speaking directly to their audience
- Be authentic to their brand and perspective`, v.Channel, string(v.Profile))
}

func userPrompt(req action.Request, channel string, year int) string {
	ctx := extraContext(req)

	switch req.Type {
	case action.KindStart:
		return fmt.Sprintf(`Create a content STARTER for a video about: %s%s

Provide:
1. A suggested angle or hook (1-2 sentences)
2. Three possible title options
3. 5-7 key bullet points to cover, with a brief explanation of WHY each matters
4. A suggested opening hook (first 30 seconds)

Keep everything in %s's authentic voice and style. The current year is %d.
Do NOT write the full script. Give them the framework to build from.`, req.Topic, ctx, channel, year)

	case action.KindExplain:
		return fmt.Sprintf(`Provide a deep strategic explanation for why %s should create content about: %s%s

Cover:
1. What data patterns suggest this is a strong move
2. Why this approach vs alternatives
3. What success looks like (metrics, audience response)
4. Risk of NOT doing this
5. How it connects to their overall channel strategy
6. Expected timeline for results

Be specific and data-informed. The current year is %d.`, channel, req.Topic, ctx, year)

	default:
		return fmt.Sprintf(`Write a complete video script/outline about: %s%s

Write this ENTIRELY in %s's voice and style. Include:
- A compelling hook/opener
- Key talking points with natural transitions
- Personal anecdotes or examples they would use
- A strong call-to-action ending

The current year is %d. Make it sound exactly like %s speaking.`, req.Topic, ctx, channel, year, channel)
	}
}
