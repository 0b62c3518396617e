package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/trueinfluence/writeit/internal/action"
	"github.com/trueinfluence/writeit/internal/keys"
	"github.com/trueinfluence/writeit/internal/logger"
	"github.com/trueinfluence/writeit/internal/ui"
	"github.com/trueinfluence/writeit/internal/ui/modals"
)

// handleModalKey routes modal key events to the appropriate handler based on modal state type.
func (m *Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == keys.CtrlC {
		return shortcutQuit(m)
	}

	switch s := m.modal.State.(type) {
	case *modals.WriterState:
		return m.handleWriterModal(key, msg, s)
	case *modals.CustomActionState:
		return m.handleCustomActionModal(key, msg)
	case *modals.ThemeState:
		return m.handleThemeModal(key, msg, s)
	case *modals.HelpState:
		return m.handleHelpModal(key, msg, s)
	}

	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// handleWriterModal handles the shared content modal.
func (m *Model) handleWriterModal(key string, msg tea.KeyPressMsg, s *modals.WriterState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape, "q":
		m.closeOverlay()
		return m, nil
	case "c":
		if s.RenderState().Phase == action.PhaseSuccess {
			return m.copyLastContent()
		}
		return m, nil
	}

	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// handleCustomActionModal handles the custom action form.
// Enter belongs to the form; completion arrives as CustomActionSubmittedMsg.
func (m *Model) handleCustomActionModal(key string, msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if key == keys.Escape {
		m.modal.Hide()
		return m, nil
	}

	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// submitCustomAction dispatches the completed custom action form.
func (m *Model) submitCustomAction() (tea.Model, tea.Cmd) {
	s, ok := m.modal.State.(*modals.CustomActionState)
	if !ok {
		return m, nil
	}
	if err := s.Validate(); err != nil {
		m.modal.SetError(err.Error())
		return m, nil
	}
	kind, _ := s.Kind()
	return m.dispatch(kind, s.Button())
}

// handleThemeModal applies and persists the chosen theme.
func (m *Model) handleThemeModal(key string, msg tea.KeyPressMsg, s *modals.ThemeState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		name := s.Selected()
		ui.SetThemeByName(name)
		m.preview.Refresh()
		m.config.SetTheme(name)
		m.modal.Hide()
		logger.ComponentLogger("App").Info("theme changed", "theme", name)
		return m, m.saveConfigOrFlash()
	}

	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// handleHelpModal runs the selected shortcut on enter.
func (m *Model) handleHelpModal(key string, msg tea.KeyPressMsg, s *modals.HelpState) (tea.Model, tea.Cmd) {
	if !s.IsFiltering() {
		switch key {
		case keys.Escape, "?", "q":
			m.modal.Hide()
			return m, nil
		case keys.Enter:
			sel := s.Selected()
			m.modal.Hide()
			if sel == nil {
				return m, nil
			}
			if sc := shortcutForDisplayKey(sel.Key); sc != nil && sc != &helpShortcut {
				if sc.Condition != nil && !sc.Condition(m) {
					return m, nil
				}
				return sc.Handler(m)
			}
			return m, nil
		}
	}

	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// saveConfigOrFlash saves the config and returns a flash command on failure.
func (m *Model) saveConfigOrFlash() tea.Cmd {
	if err := m.config.Save(); err != nil {
		logger.ComponentLogger("App").Error("failed to save config", "error", err)
		return m.ShowFlashError("Failed to save config")
	}
	return nil
}
