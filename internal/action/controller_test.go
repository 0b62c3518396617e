package action

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	werrors "github.com/trueinfluence/writeit/internal/errors"
)

// fakeSender records requests and replays a canned response.
type fakeSender struct {
	mu    sync.Mutex
	slugs []string
	reqs  []Request
	resp  Response
	err   error
}

func (f *fakeSender) Send(ctx context.Context, slug string, req Request) (Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.slugs = append(f.slugs, slug)
	f.reqs = append(f.reqs, req)
	return f.resp, f.err
}

func (f *fakeSender) last() Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reqs[len(f.reqs)-1]
}

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) WriteText(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

func testSettings() Settings {
	return Settings{Slug: "nate", Persona: "Nate", DefaultBigBet: "AI pricing"}
}

func topicButton(label, topic string) *Button {
	return NewButton(label, map[string]string{AttrTopic: topic})
}

func TestNewController_PersonaDefaultsToSlug(t *testing.T) {
	c := NewController(&fakeSender{}, Settings{Slug: "nate"})
	if got := c.Settings().Persona; got != "nate" {
		t.Errorf("expected persona to default to slug, got %q", got)
	}
	if c.Modal().Visible() {
		t.Error("modal should start hidden")
	}
}

func TestSubmit_SuccessAllKinds(t *testing.T) {
	for _, kind := range Kinds {
		t.Run(string(kind), func(t *testing.T) {
			sender := &fakeSender{resp: Response{Content: "line one\nline two"}}
			c := NewController(sender, testSettings())
			btn := topicButton("Go", "Launch Plan")

			r, err := c.Submit(context.Background(), kind, btn)
			if err != nil {
				t.Fatalf("Submit returned error: %v", err)
			}
			if r.Phase != PhaseSuccess {
				t.Fatalf("expected success phase, got %s", r.Phase)
			}
			if got := r.Body("<br>"); got != "line one<br>line two" {
				t.Errorf("Body = %q", got)
			}
			if got := c.LastContent(); got != "line one\nline two" {
				t.Errorf("last content should be raw text, got %q", got)
			}
			if c.Modal().Content != "line one\nline two" || !c.Modal().Visible() {
				t.Errorf("modal not updated: %+v", c.Modal())
			}
			if sender.slugs[0] != "nate" {
				t.Errorf("expected slug 'nate', got %q", sender.slugs[0])
			}
			if sender.last().Type != kind {
				t.Errorf("expected request type %s, got %s", kind, sender.last().Type)
			}
		})
	}
}

func TestSubmit_ErrorFieldAllKinds(t *testing.T) {
	for _, kind := range Kinds {
		t.Run(string(kind), func(t *testing.T) {
			sender := &fakeSender{resp: Response{Content: "earlier"}}
			c := NewController(sender, testSettings())

			if _, err := c.Submit(context.Background(), kind, topicButton("Go", "First")); err != nil {
				t.Fatalf("first Submit: %v", err)
			}

			sender.resp = Response{Error: "E"}
			r, err := c.Submit(context.Background(), kind, topicButton("Go", "Second"))
			if err != nil {
				t.Fatalf("Submit returned error: %v", err)
			}
			if r.Phase != PhaseError {
				t.Fatalf("expected error phase, got %s", r.Phase)
			}
			if r.Content != "Error: E" {
				t.Errorf("expected 'Error: E', got %q", r.Content)
			}
			if c.LastContent() != "earlier" {
				t.Errorf("last content should be unchanged, got %q", c.LastContent())
			}
		})
	}
}

func TestSubmit_EmptyResponseUsesFallback(t *testing.T) {
	for _, kind := range Kinds {
		c := NewController(&fakeSender{}, testSettings())
		r, err := c.Submit(context.Background(), kind, topicButton("Go", "Topic"))
		if err != nil {
			t.Fatalf("%s: Submit returned error: %v", kind, err)
		}
		if r.Content != NoContentFallback {
			t.Errorf("%s: expected fallback, got %q", kind, r.Content)
		}
		if c.LastContent() != NoContentFallback {
			t.Errorf("%s: expected fallback stored as last content, got %q", kind, c.LastContent())
		}
	}
}

func TestSubmit_TransportAndMalformedErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"transport", werrors.TransportFailed("http://x/api/write/nate", errors.New("connection refused")), "Error: connection refused"},
		{"malformed", werrors.MalformedResponse(500, errors.New("invalid character '<'")), "Error: invalid character '<'"},
		{"plain", errors.New("boom"), "Error: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(&fakeSender{err: tt.err}, testSettings())
			btn := topicButton("Write", "Topic")
			r, _ := c.SubmitWrite(context.Background(), btn)
			if r.Phase != PhaseError || r.Content != tt.want {
				t.Errorf("got %s %q, want error %q", r.Phase, r.Content, tt.want)
			}
			if btn.Disabled || btn.Label != "Write" {
				t.Errorf("button not restored: %q disabled=%v", btn.Label, btn.Disabled)
			}
			if c.LastContent() != "" {
				t.Errorf("last content should stay empty, got %q", c.LastContent())
			}
		})
	}
}

func TestLaunchPlanScenario(t *testing.T) {
	sender := &fakeSender{resp: Response{Content: "Step 1...\nStep 2..."}}
	c := NewController(sender, testSettings())
	btn := NewButton("✍️ Write", map[string]string{AttrTopic: "Launch Plan", AttrCardType: "idea"})

	r, err := c.SubmitWrite(context.Background(), btn)
	if err != nil {
		t.Fatalf("SubmitWrite: %v", err)
	}

	want := Request{Topic: "Launch Plan", Type: KindWrite, CardType: "idea", Views: ""}
	if got := sender.last(); got != want {
		t.Errorf("request = %+v, want %+v", got, want)
	}
	if !strings.Contains(r.HTML(), "Step 1...<br>Step 2...") {
		t.Errorf("HTML = %q", r.HTML())
	}
	if r.Title != "✍️ Launch Plan" {
		t.Errorf("title = %q", r.Title)
	}
}

func TestPricingExplainScenario(t *testing.T) {
	sender := &fakeSender{resp: Response{Error: "rate limited"}}
	c := NewController(sender, testSettings())
	btn := NewButton("💡 Why", map[string]string{AttrTopic: "Pricing", AttrLabel: "Why it works"})

	r, err := c.SubmitExplain(context.Background(), btn)
	if err != nil {
		t.Fatalf("SubmitExplain: %v", err)
	}

	got := sender.last()
	if got.BigBet != "AI pricing" {
		t.Errorf("expected default big bet, got %q", got.BigBet)
	}
	if got.Label != "Why it works" {
		t.Errorf("expected label 'Why it works', got %q", got.Label)
	}
	if r.Content != "Error: rate limited" {
		t.Errorf("expected 'Error: rate limited', got %q", r.Content)
	}
}

func TestSubmitExplain_BigBetAttributeOverridesDefault(t *testing.T) {
	sender := &fakeSender{resp: Response{Content: "ok"}}
	c := NewController(sender, testSettings())
	btn := NewButton("💡", map[string]string{AttrTopic: "Pricing", AttrBigBet: "Creator tools"})

	if _, err := c.SubmitExplain(context.Background(), btn); err != nil {
		t.Fatalf("SubmitExplain: %v", err)
	}
	if got := sender.last().BigBet; got != "Creator tools" {
		t.Errorf("expected attribute big bet, got %q", got)
	}
}

func TestBegin_DisablesButtonAndOpensModal(t *testing.T) {
	c := NewController(&fakeSender{}, testSettings())
	btn := topicButton("🚀 Start", "Launch Plan")

	cmd, r, err := c.Begin(KindStart, btn)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if !btn.Disabled {
		t.Error("button should be disabled while busy")
	}
	if btn.Label != "⏳ Starting..." {
		t.Errorf("expected busy label, got %q", btn.Label)
	}
	if r.Phase != PhaseLoading || !strings.Contains(r.Message, "Nate") {
		t.Errorf("unexpected loading render %+v", r)
	}
	if r.Title != "🚀 Start It: Launch Plan" {
		t.Errorf("title = %q", r.Title)
	}

	c.Settle(cmd, Result{Response: Response{Content: "done"}})
	if btn.Disabled || btn.Label != "🚀 Start" {
		t.Errorf("button not restored: %q disabled=%v", btn.Label, btn.Disabled)
	}
}

func TestBegin_RejectsMissingTopicAndBusyButton(t *testing.T) {
	c := NewController(&fakeSender{}, testSettings())

	empty := NewButton("Write", nil)
	if _, _, err := c.Begin(KindWrite, empty); !werrors.Is(err, werrors.KindInvalid) {
		t.Errorf("expected invalid error, got %v", err)
	}
	if empty.Disabled || c.Modal().Visible() {
		t.Error("missing topic should not mutate state")
	}

	btn := topicButton("Write", "Topic")
	if _, _, err := c.Begin(KindWrite, btn); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if _, _, err := c.Begin(KindWrite, btn); !werrors.Is(err, werrors.KindBusy) {
		t.Errorf("expected busy error, got %v", err)
	}
}

func TestSettle_LatestOnlyDiscardsSuperseded(t *testing.T) {
	settings := testSettings()
	settings.LatestOnly = true
	c := NewController(&fakeSender{}, settings)
	first := topicButton("A", "First")
	second := topicButton("B", "Second")

	cmd1, _, _ := c.Begin(KindWrite, first)
	cmd2, _, _ := c.Begin(KindWrite, second)

	r2 := c.Settle(cmd2, Result{Response: Response{Content: "second"}})
	if r2.Stale {
		t.Error("latest result should not be stale")
	}

	r1 := c.Settle(cmd1, Result{Response: Response{Content: "first"}})
	if !r1.Stale {
		t.Error("superseded result should be marked stale")
	}
	if c.Modal().Content != "second" || c.LastContent() != "second" {
		t.Errorf("stale result overwrote state: modal=%q last=%q", c.Modal().Content, c.LastContent())
	}
	if first.Disabled || first.Label != "A" {
		t.Error("stale settle must still restore its button")
	}
}

func TestSettle_LastSettleWins(t *testing.T) {
	c := NewController(&fakeSender{}, testSettings())

	cmd1, _, _ := c.Begin(KindWrite, topicButton("A", "First"))
	cmd2, _, _ := c.Begin(KindWrite, topicButton("B", "Second"))

	c.Settle(cmd2, Result{Response: Response{Content: "second"}})
	r1 := c.Settle(cmd1, Result{Response: Response{Content: "first"}})
	if r1.Stale {
		t.Error("results are never stale without the latest-only guard")
	}
	if c.Modal().Content != "first" || c.LastContent() != "first" {
		t.Errorf("expected last settle to win, modal=%q last=%q", c.Modal().Content, c.LastContent())
	}
}

func TestSettle_OlderSuccessAfterNewerFailure(t *testing.T) {
	c := NewController(&fakeSender{}, testSettings())

	cmdA, _, _ := c.Begin(KindWrite, topicButton("A", "First"))
	cmdB, _, _ := c.Begin(KindWrite, topicButton("B", "Second"))

	c.Settle(cmdB, Result{Response: Response{Error: "boom"}})
	if got := c.Modal().Content; got != "Error: boom" {
		t.Fatalf("modal = %q after the failure", got)
	}

	r := c.Settle(cmdA, Result{Response: Response{Content: "A content"}})
	if r.Stale || r.Phase != PhaseSuccess {
		t.Errorf("older success should render, got %+v", r)
	}
	if c.Modal().Content != "A content" || c.LastContent() != "A content" {
		t.Errorf("modal=%q last=%q, want the older success", c.Modal().Content, c.LastContent())
	}
}

func TestCloseOverlay_DoesNotCancel(t *testing.T) {
	c := NewController(&fakeSender{}, testSettings())
	btn := topicButton("Write", "Topic")

	cmd, _, _ := c.Begin(KindWrite, btn)
	c.CloseOverlay()
	if c.Modal().Visible() {
		t.Fatal("modal should be hidden after close")
	}

	c.Settle(cmd, Result{Response: Response{Content: "late"}})
	if c.Modal().Visible() {
		t.Error("settling should not reopen a closed modal")
	}
	if c.Modal().Content != "late" || c.LastContent() != "late" {
		t.Error("closed modal should still receive the result")
	}
	if btn.Disabled {
		t.Error("button should be re-enabled")
	}
}

func TestCopyLastContent(t *testing.T) {
	c := NewController(&fakeSender{resp: Response{Content: "copy me\nplease"}}, testSettings())
	if _, err := c.SubmitWrite(context.Background(), topicButton("Write", "Topic")); err != nil {
		t.Fatalf("SubmitWrite: %v", err)
	}

	clip := &fakeClipboard{}
	copyBtn := NewButton(CopyLabel, nil)
	if err := c.CopyLastContent(clip, copyBtn); err != nil {
		t.Fatalf("CopyLastContent: %v", err)
	}
	if clip.text != "copy me\nplease" {
		t.Errorf("clipboard = %q", clip.text)
	}
	if copyBtn.Label != CopiedLabel {
		t.Errorf("expected confirmation label, got %q", copyBtn.Label)
	}

	// A second copy inside the confirmation window still reverts to the original.
	if err := c.CopyLastContent(clip, copyBtn); err != nil {
		t.Fatalf("second CopyLastContent: %v", err)
	}
	c.RestoreButton(copyBtn)
	if copyBtn.Label != CopyLabel {
		t.Errorf("expected label restored to %q, got %q", CopyLabel, copyBtn.Label)
	}
}

func TestCopyLastContent_FailureLeavesLabel(t *testing.T) {
	c := NewController(&fakeSender{}, testSettings())
	clip := &fakeClipboard{err: errors.New("no display")}
	copyBtn := NewButton(CopyLabel, nil)

	if err := c.CopyLastContent(clip, copyBtn); err == nil {
		t.Error("expected clipboard error to be returned")
	}
	if copyBtn.Label != CopyLabel {
		t.Errorf("label should be unchanged, got %q", copyBtn.Label)
	}
}

func TestSetDefaultBigBet(t *testing.T) {
	sender := &fakeSender{}
	c := NewController(sender, testSettings())
	c.SetDefaultBigBet("Short-form video")

	if _, err := c.SubmitExplain(context.Background(), topicButton("💡", "Hooks")); err != nil {
		t.Fatalf("SubmitExplain: %v", err)
	}
	if got := sender.last().BigBet; got != "Short-form video" {
		t.Errorf("expected updated default, got %q", got)
	}
}
