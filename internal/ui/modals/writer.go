package modals

import (
	"time"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/trueinfluence/writeit/internal/action"
	"github.com/trueinfluence/writeit/internal/keys"
	"github.com/trueinfluence/writeit/internal/markdown"
)

// =============================================================================
// WriterState - the shared modal that shows generated content
// =============================================================================

// SpinnerTickMsg advances the loading spinner.
type SpinnerTickMsg time.Time

// spinnerFrames are the characters used for the loading spinner
var spinnerFrames = []string{"·", "✺", "✹", "✸", "✷", "✶", "✵", "✴", "✳", "✲", "✱", "✧", "✦", "·"}

// SpinnerTick returns a command that sends a spinner tick after a delay.
func SpinnerTick() tea.Cmd {
	return tea.Tick(150*time.Millisecond, func(t time.Time) tea.Msg {
		return SpinnerTickMsg(t)
	})
}

// writerChrome is the height taken by title, copy button and help.
const writerChrome = 7

type WriterState struct {
	render    action.Render
	copyLabel string
	frame     int

	viewport viewport.Model
	width    int
}

func (*WriterState) modalState() {}

// NewWriterState creates the modal for r.
func NewWriterState(r action.Render, copyLabel string) *WriterState {
	vp := viewport.New()
	vp.SoftWrap = true
	vp.MouseWheelEnabled = true
	s := &WriterState{
		copyLabel: copyLabel,
		viewport:  vp,
		width:     ModalWidthWide,
	}
	s.viewport.SetWidth(s.contentWidth())
	s.viewport.SetHeight(12)
	s.SetRender(r)
	return s
}

func (s *WriterState) Title() string { return s.render.Title }

func (s *WriterState) Help() string {
	switch s.render.Phase {
	case action.PhaseLoading:
		return "Esc: close (generation keeps running)"
	case action.PhaseSuccess:
		return "c: copy  pgup/pgdn: scroll  Esc: close"
	default:
		return "Esc: close  re-run the action to retry"
	}
}

func (s *WriterState) PreferredWidth() int { return ModalWidthWide }

func (s *WriterState) Render() string {
	title := ModalTitleStyle.Render(TruncateString(s.Title(), s.contentWidth()))

	var body string
	switch s.render.Phase {
	case action.PhaseLoading:
		frame := spinnerFrames[s.frame%len(spinnerFrames)]
		spinner := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true).Render(frame)
		body = spinner + " " + StatusLoadingStyle.Render(s.render.Message)
	case action.PhaseSuccess:
		body = s.viewport.View()
	case action.PhaseError:
		body = StatusErrorStyle.Render(s.render.Content)
	}

	parts := []string{title, body}
	if s.render.Phase == action.PhaseSuccess {
		parts = append(parts, "", s.copyButton())
	}
	parts = append(parts, ModalHelpStyle.Render(s.Help()))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (s *WriterState) copyButton() string {
	style := lipgloss.NewStyle().Padding(0, 1).Foreground(ColorTextInverse).Background(ColorPrimary)
	if s.copyLabel == action.CopiedLabel {
		style = style.Background(ColorSuccess)
	}
	return style.Render(s.copyLabel)
}

func (s *WriterState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	switch msg := msg.(type) {
	case SpinnerTickMsg:
		if s.render.Phase != action.PhaseLoading {
			return s, nil
		}
		s.frame++
		return s, SpinnerTick()

	case tea.KeyPressMsg:
		if s.render.Phase != action.PhaseSuccess {
			return s, nil
		}
		switch msg.String() {
		case keys.Up, keys.Down, keys.PgUp, keys.PgDown, "j", "k":
			var cmd tea.Cmd
			s.viewport, cmd = s.viewport.Update(msg)
			return s, cmd
		case keys.Home:
			s.viewport.GotoTop()
		case keys.End:
			s.viewport.GotoBottom()
		}

	case tea.MouseWheelMsg:
		var cmd tea.Cmd
		s.viewport, cmd = s.viewport.Update(msg)
		return s, cmd
	}
	return s, nil
}

// SetRender replaces the render instruction, keeping the scroll position
// only when the content is unchanged.
func (s *WriterState) SetRender(r action.Render) {
	changed := r.Content != s.render.Content || r.Phase != s.render.Phase
	s.render = r
	if r.Phase == action.PhaseSuccess && changed {
		s.viewport.SetContent(markdown.Render(r.Content, s.contentWidth(), MarkdownStyle))
		s.viewport.GotoTop()
	}
}

// RenderState returns the render instruction being shown.
func (s *WriterState) RenderState() action.Render { return s.render }

// IsLoading reports whether the spinner is showing.
func (s *WriterState) IsLoading() bool { return s.render.Phase == action.PhaseLoading }

// SetCopyLabel updates the copy button text.
func (s *WriterState) SetCopyLabel(label string) { s.copyLabel = label }

// CopyLabel returns the copy button text.
func (s *WriterState) CopyLabel() string { return s.copyLabel }

// SetSize fits the content viewport to the screen.
func (s *WriterState) SetSize(width, height int) {
	if width <= 0 || width > ModalWidthWide {
		width = ModalWidthWide
	}
	h := height - writerChrome
	if h < 3 {
		h = 3
	}
	if width == s.width && h == s.viewport.Height() {
		return
	}
	s.width = width
	s.viewport.SetWidth(s.contentWidth())
	s.viewport.SetHeight(h)
	if s.render.Phase == action.PhaseSuccess {
		s.viewport.SetContent(markdown.Render(s.render.Content, s.contentWidth(), MarkdownStyle))
	}
}

// contentWidth is the modal width minus border and padding.
func (s *WriterState) contentWidth() int {
	w := s.width - 6
	if w < 20 {
		w = 20
	}
	return w
}
