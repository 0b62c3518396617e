package modals

import (
	"image/color"
	"slices"

	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"

)

// initHuhForm runs the form's Init so the first View is complete.
func initHuhForm(form *huh.Form) {
	form.Init()
}

// huhFormUpdate forwards msg to a form. Presses of the reserved keys are
// left to the app's modal handlers.
func huhFormUpdate(form *huh.Form, initialized *bool, msg tea.Msg, reserved ...string) (*huh.Form, tea.Cmd) {
	var cmds []tea.Cmd
	if !*initialized {
		*initialized = true
		cmds = append(cmds, form.Init())
	} else if key, ok := msg.(tea.KeyPressMsg); ok && slices.Contains(reserved, key.String()) {
		return form, nil
	}

	m, cmd := form.Update(msg)
	return m.(*huh.Form), tea.Batch(append(cmds, cmd)...)
}

func fg(c color.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

// ModalTheme styles the select and input fields of form modals with the
// palette last set by SetStyles.
func ModalTheme() huh.Theme {
	return huh.ThemeFunc(func(isDark bool) *huh.Styles {
		t := huh.ThemeBase(isDark)

		f := &t.Focused
		f.Base = lipgloss.NewStyle().
			PaddingLeft(1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(ColorPrimary)
		f.Card = f.Base
		f.Title = fg(ColorText).Bold(true)
		f.Description = fg(ColorTextMuted).Italic(true)
		f.ErrorIndicator = fg(ColorWarning).SetString(" *")
		f.ErrorMessage = fg(ColorWarning)

		f.SelectSelector = fg(ColorPrimary).SetString("> ")
		f.Option = fg(ColorText)
		f.SelectedOption = fg(ColorSuccess)
		f.NextIndicator = fg(ColorPrimary).MarginLeft(1).SetString("→")
		f.PrevIndicator = fg(ColorPrimary).MarginRight(1).SetString("←")

		f.TextInput.Cursor = fg(ColorPrimary)
		f.TextInput.Prompt = fg(ColorPrimary)
		f.TextInput.Placeholder = fg(ColorTextMuted)
		f.TextInput.Text = fg(ColorText)

		t.Blurred = t.Focused
		t.Blurred.Base = lipgloss.NewStyle().PaddingLeft(2)
		t.Blurred.Card = t.Blurred.Base
		t.Blurred.NextIndicator = lipgloss.NewStyle()
		t.Blurred.PrevIndicator = lipgloss.NewStyle()

		t.Group.Title = fg(ColorSecondary).Bold(true)
		t.Group.Description = fg(ColorTextMuted)
		t.FieldSeparator = lipgloss.NewStyle().SetString("\n")
		t.Help = help.New().Styles
		return t
	})
}
