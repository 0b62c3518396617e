// Package markdown renders generated content for the terminal with glamour.
package markdown

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-runewidth"

	"github.com/trueinfluence/writeit/internal/logger"
)

// Glamour style names.
const (
	StyleDark  = "dark"
	StyleLight = "light"
	StyleNoTTY = "notty"
)

type rendererKey struct {
	style string
	width int
}

var (
	mu        sync.Mutex
	renderers = map[rendererKey]*glamour.TermRenderer{}
)

func renderer(style string, width int) (*glamour.TermRenderer, error) {
	mu.Lock()
	defer mu.Unlock()

	key := rendererKey{style, width}
	if r, ok := renderers[key]; ok {
		return r, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	renderers[key] = r
	return r, nil
}

// Render formats content as markdown wrapped to width. If glamour fails the
// content is word-wrapped as plain text instead.
func Render(content string, width int, style string) string {
	if width < 20 {
		width = 20
	}
	if style == "" {
		style = StyleDark
	}

	r, err := renderer(style, width)
	if err == nil {
		var out string
		out, err = r.Render(content)
		if err == nil {
			return strings.Trim(out, "\n")
		}
	}
	logger.ComponentLogger("Markdown").Warn("falling back to plain text", "error", err)
	return Wrap(content, width)
}

// Wrap word-wraps plain text to width display cells, keeping existing
// newlines.
func Wrap(content string, width int) string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		out = append(out, wrapLine(line, width)...)
	}
	return strings.Join(out, "\n")
}

func wrapLine(line string, width int) []string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := words[0]
	for _, w := range words[1:] {
		if runewidth.StringWidth(current)+1+runewidth.StringWidth(w) > width {
			lines = append(lines, current)
			current = w
			continue
		}
		current += " " + w
	}
	return append(lines, current)
}
