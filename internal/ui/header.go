package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

// appTitle is rendered bold at the left edge.
const appTitle = " writeit"

// Header represents the top header bar
type Header struct {
	width    int
	slug     string
	persona  string
	deckName string
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetCreator sets the slug and persona shown on the right.
func (h *Header) SetCreator(slug, persona string) {
	h.slug = slug
	h.persona = persona
}

// SetDeckName sets the deck label shown in muted text.
func (h *Header) SetDeckName(name string) {
	h.deckName = name
}

// View renders the header
func (h *Header) View() string {
	var rightText string
	if h.slug != "" {
		rightText = "@" + h.slug
		if h.persona != "" && h.persona != h.slug {
			rightText = h.persona + " " + rightText
		}
		if h.deckName != "" {
			rightText += " (" + h.deckName + ")"
		}
		rightText += " "
	}

	paddingLen := h.width - runewidth.StringWidth(appTitle) - runewidth.StringWidth(rightText)
	if paddingLen < 0 {
		paddingLen = 0
	}

	fullContent := appTitle + strings.Repeat(" ", paddingLen) + rightText
	return h.renderGradient(fullContent, h.deckName)
}

// parseHexColor parses a hex color string (e.g., "#7C3AED") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient renders content on a background that fades from the
// theme's primary color to its background. The deck label is muted.
func (h *Header) renderGradient(content string, deckName string) string {
	if len(content) == 0 {
		return ""
	}

	theme := CurrentTheme()
	startR, startG, startB := parseHexColor(theme.Primary)
	endR, endG, endB := parseHexColor(theme.Bg)

	textColor := lipgloss.Color(theme.Text)
	mutedColor := lipgloss.Color(theme.TextMuted)

	runes := []rune(content)
	mutedStart := -1
	if deckName != "" {
		if idx := strings.Index(content, "("+deckName+")"); idx >= 0 {
			mutedStart = len([]rune(content[:idx]))
		}
	}
	titleLen := len([]rune(appTitle))

	width := len(runes)
	var result strings.Builder
	for i, r := range runes {
		t := float64(i) / float64(width)

		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)
		bgColor := lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))

		style := lipgloss.NewStyle().
			Background(bgColor).
			Bold(i < titleLen)

		if mutedStart >= 0 && i >= mutedStart {
			style = style.Foreground(mutedColor)
		} else {
			style = style.Foreground(textColor)
		}

		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
