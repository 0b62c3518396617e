package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/trueinfluence/writeit/internal/keys"
	"github.com/trueinfluence/writeit/internal/ui"
	"github.com/trueinfluence/writeit/internal/ui/modals"
)

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.KeyPressMsg:
		if m.modal.IsVisible() {
			return m.handleModalKey(msg)
		}
		return m.handleKey(msg)

	case tea.MouseWheelMsg:
		if m.modal.IsVisible() {
			modal, cmd := m.modal.Update(msg)
			m.modal = modal
			return m, cmd
		}
		preview, cmd := m.preview.Update(msg)
		m.preview = preview
		return m, cmd

	case modals.SpinnerTickMsg:
		var cmd tea.Cmd
		if m.writer != nil && m.writer.IsLoading() {
			_, cmd = m.writer.Update(msg)
		}
		m.spinning = cmd != nil
		return m, cmd

	case ActionSettledMsg:
		return m.handleActionSettled(msg)

	case modals.CustomActionSubmittedMsg:
		return m.submitCustomAction()

	case CopyResetMsg:
		return m.handleCopyReset(msg)

	case DeckReloadedMsg:
		return m.handleDeckReloaded(msg)

	case NotificationSentMsg:
		if msg.Err != nil {
			return m, m.ShowFlashWarning("Notification failed: " + msg.Err.Error())
		}
		return m, nil

	case ui.FlashTickMsg:
		if m.footer.ClearIfExpired() || !m.footer.HasFlash() {
			return m, nil
		}
		return m, ui.FlashTick()
	}

	// huh forms advance through their own messages
	if m.modal.IsVisible() {
		modal, cmd := m.modal.Update(msg)
		m.modal = modal
		return m, cmd
	}
	return m, nil
}

// handleKey processes keys when no modal is open.
func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if s := findShortcut(key); s != nil {
		if s.Condition != nil && !s.Condition(m) {
			return m, nil
		}
		return s.Handler(m)
	}

	switch key {
	case keys.Up, keys.Down, keys.Home, keys.End, "j", "k", "g", "G":
		cards, cmd := m.cards.Update(msg)
		m.cards = cards
		return m, cmd
	case keys.PgUp, keys.PgDown:
		preview, cmd := m.preview.Update(msg)
		m.preview = preview
		return m, cmd
	}
	return m, nil
}
