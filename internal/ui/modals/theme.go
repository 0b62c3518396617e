package modals

import (
	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"

	"github.com/trueinfluence/writeit/internal/keys"
)

// =============================================================================
// ThemeState - pick a color theme
// =============================================================================

// ThemeOption is one selectable theme.
type ThemeOption struct {
	Key  string
	Name string
}

type ThemeState struct {
	selected    string
	form        *huh.Form
	initialized bool
}

func (*ThemeState) modalState() {}

func (s *ThemeState) Title() string { return "Theme" }

func (s *ThemeState) Help() string { return "up/down: choose  Enter: apply  Esc: cancel" }

func (s *ThemeState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.form.View(), help)
}

func (s *ThemeState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, &s.initialized, msg, keys.Enter, keys.Escape)
	return s, cmd
}

// Selected returns the highlighted theme key.
func (s *ThemeState) Selected() string { return s.selected }

// NewThemeState creates the picker with current preselected.
func NewThemeState(themes []ThemeOption, current string) *ThemeState {
	s := &ThemeState{selected: current}

	opts := make([]huh.Option[string], len(themes))
	for i, t := range themes {
		opts[i] = huh.NewOption(t.Name, t.Key)
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Options(opts...).
				Value(&s.selected),
		),
	).WithTheme(ModalTheme()).
		WithShowHelp(false).
		WithWidth(ModalInputWidth)

	s.initialized = true
	initHuhForm(s.form)
	return s
}
