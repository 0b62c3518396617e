package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/trueinfluence/writeit/internal/action"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// FlashType selects the icon and color of a flash message.
type FlashType int

const (
	FlashInfo FlashType = iota
	FlashSuccess
	FlashWarning
	FlashError
)

// DefaultFlashDuration is how long a flash stays in the footer.
const DefaultFlashDuration = 4 * time.Second

// flashTickInterval is how often expired flashes are checked.
const flashTickInterval = 500 * time.Millisecond

// FlashMessage temporarily replaces the key bindings in the footer.
type FlashMessage struct {
	Text      string
	Type      FlashType
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired reports whether the message has outlived its duration.
func (m *FlashMessage) IsExpired() bool {
	return time.Since(m.CreatedAt) > m.Duration
}

// FlashTickMsg prompts the app to drop an expired flash.
type FlashTickMsg time.Time

// FlashTick schedules the next expiry check.
func FlashTick() tea.Cmd {
	return tea.Tick(flashTickInterval, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}

// FooterContext describes what the footer bindings should reflect.
type FooterContext struct {
	ModalPhase action.Phase // phase of the content modal, PhaseHidden if closed
	FormOpen   bool         // another modal (form, picker, help) is open
	HasContent bool         // there is generated content to copy
	HasCards   bool
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width        int
	bindings     []KeyBinding
	ctx          FooterContext
	flashMessage *FlashMessage
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{
		bindings: []KeyBinding{
			{Key: "w", Desc: "write"},
			{Key: "s", Desc: "start it"},
			{Key: "e", Desc: "why"},
			{Key: "n", Desc: "new"},
			{Key: "c", Desc: "copy"},
			{Key: "ctrl+r", Desc: "reload deck"},
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "quit"},
		},
	}
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(ctx FooterContext) {
	f.ctx = ctx
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetBindings allows custom keybindings
func (f *Footer) SetBindings(bindings []KeyBinding) {
	f.bindings = bindings
}

// SetFlash shows text for DefaultFlashDuration.
func (f *Footer) SetFlash(text string, flashType FlashType) {
	f.SetFlashWithDuration(text, flashType, DefaultFlashDuration)
}

// SetFlashWithDuration shows text for d.
func (f *Footer) SetFlashWithDuration(text string, flashType FlashType, d time.Duration) {
	f.flashMessage = &FlashMessage{
		Text:      text,
		Type:      flashType,
		CreatedAt: time.Now(),
		Duration:  d,
	}
}

// ClearFlash removes the flash message.
func (f *Footer) ClearFlash() {
	f.flashMessage = nil
}

// HasFlash reports whether a flash message is set.
func (f *Footer) HasFlash() bool {
	return f.flashMessage != nil
}

// ClearIfExpired drops an expired flash and reports whether it did.
func (f *Footer) ClearIfExpired() bool {
	if f.flashMessage != nil && f.flashMessage.IsExpired() {
		f.flashMessage = nil
		return true
	}
	return false
}

func (f *Footer) renderFlash() string {
	var icon string
	var style lipgloss.Style
	switch f.flashMessage.Type {
	case FlashError:
		icon, style = "✕", FlashErrorStyle
	case FlashWarning:
		icon, style = "⚠", FlashWarningStyle
	case FlashSuccess:
		icon, style = "✓", FlashSuccessStyle
	default:
		icon, style = "ℹ", FlashInfoStyle
	}
	return FooterStyle.Width(f.width).Render(style.Render(icon + " " + f.flashMessage.Text))
}

// activeBindings picks the bindings for the current context.
func (f *Footer) activeBindings() []KeyBinding {
	if f.ctx.FormOpen {
		return []KeyBinding{
			{Key: "tab", Desc: "next"},
			{Key: "enter", Desc: "confirm"},
			{Key: "esc", Desc: "cancel"},
		}
	}

	switch f.ctx.ModalPhase {
	case action.PhaseLoading:
		return []KeyBinding{
			{Key: "esc", Desc: "close"},
			{Key: "q", Desc: "quit"},
		}
	case action.PhaseSuccess:
		return []KeyBinding{
			{Key: "c", Desc: "copy"},
			{Key: "pgup/dn", Desc: "scroll"},
			{Key: "esc", Desc: "close"},
		}
	case action.PhaseError:
		return []KeyBinding{
			{Key: "esc", Desc: "close"},
			{Key: "q", Desc: "quit"},
		}
	}

	var out []KeyBinding
	for _, b := range f.bindings {
		// Card actions need a card
		if (b.Key == "w" || b.Key == "s" || b.Key == "e") && !f.ctx.HasCards {
			continue
		}
		if b.Key == "c" && !f.ctx.HasContent {
			continue
		}
		out = append(out, b)
	}
	return out
}

// View renders the footer
func (f *Footer) View() string {
	if f.flashMessage != nil {
		return f.renderFlash()
	}

	var parts []string
	for _, b := range f.activeBindings() {
		key := FooterKeyStyle.Render(b.Key)
		desc := FooterDescStyle.Render(": " + b.Desc)
		parts = append(parts, key+desc)
	}

	content := strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")
	return FooterStyle.Width(f.width).Render(content)
}
