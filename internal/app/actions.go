package app

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/trueinfluence/writeit/internal/action"
	werrors "github.com/trueinfluence/writeit/internal/errors"
	"github.com/trueinfluence/writeit/internal/logger"
	"github.com/trueinfluence/writeit/internal/ui/modals"
)

// dispatchSelected runs kind for the highlighted card.
func (m *Model) dispatchSelected(kind action.Kind) (tea.Model, tea.Cmd) {
	row := m.cards.Selected()
	if row == nil {
		return m, nil
	}
	return m.dispatch(kind, row.Buttons.ForKind(kind))
}

// dispatch begins an action and returns the command that performs the
// network call off the event loop.
func (m *Model) dispatch(kind action.Kind, btn *action.Button) (tea.Model, tea.Cmd) {
	cmd, r, err := m.controller.Begin(kind, btn)
	if err != nil {
		switch werrors.GetKind(err) {
		case werrors.KindBusy:
			return m, m.ShowFlashWarning(btn.Attr(action.AttrTopic) + " is already running")
		default:
			return m, m.ShowFlashError(werrors.Detail(err))
		}
	}

	m.showWriter(r)
	if m.spinning {
		return m, m.execute(cmd)
	}
	m.spinning = true
	return m, tea.Batch(m.execute(cmd), modals.SpinnerTick())
}

// execute performs cmd in a tea.Cmd goroutine.
func (m *Model) execute(cmd *action.Command) tea.Cmd {
	ctx := m.ctx
	controller := m.controller
	return func() tea.Msg {
		return ActionSettledMsg{Command: cmd, Result: controller.Execute(ctx, cmd)}
	}
}

// showWriter opens the content modal with r, reusing it when already open.
func (m *Model) showWriter(r action.Render) {
	if m.writer != nil && m.modal.State == m.writer {
		m.writer.SetRender(r)
		return
	}
	m.writer = modals.NewWriterState(r, m.copyButton.Label)
	m.modal.Show(m.writer)
}

// writerOpen reports whether the content modal is the visible modal.
func (m *Model) writerOpen() bool {
	return m.writer != nil && m.modal.State == m.writer
}

// handleActionSettled applies a finished action.
func (m *Model) handleActionSettled(msg ActionSettledMsg) (tea.Model, tea.Cmd) {
	r := m.controller.Settle(msg.Command, msg.Result)
	if r.Stale {
		return m, nil
	}

	if r.Phase == action.PhaseSuccess {
		m.preview.SetContent(r.Title, r.Content)
	}

	modalRender := m.controller.Modal()
	if modalRender.Visible() && m.writerOpen() {
		m.writer.SetRender(modalRender)
		return m, nil
	}

	// The overlay was closed while the request was in flight
	var cmds []tea.Cmd
	if r.Phase == action.PhaseSuccess {
		cmds = append(cmds, m.ShowFlashSuccess(r.Title+" is ready"))
	} else {
		cmds = append(cmds, m.ShowFlashError(r.Content))
	}
	cmds = append(cmds, m.notify(r))
	return m, tea.Batch(cmds...)
}

// notify sends a desktop notification for r when enabled.
func (m *Model) notify(r action.Render) tea.Cmd {
	if m.notifier == nil || !m.config.GetNotificationsEnabled() {
		return nil
	}
	notifier := m.notifier
	return func() tea.Msg {
		var err error
		if r.Phase == action.PhaseSuccess {
			err = notifier.GenerationReady(r.Title)
		} else {
			err = notifier.GenerationFailed(r.Title)
		}
		if err != nil {
			return NotificationSentMsg{Err: err}
		}
		return nil
	}
}

// copyLastContent copies the last content and schedules the label reset.
func (m *Model) copyLastContent() (tea.Model, tea.Cmd) {
	if m.clip == nil {
		return m, m.ShowFlashError("Clipboard is not available")
	}
	if m.controller.LastContent() == "" {
		return m, m.ShowFlashInfo("Nothing to copy yet")
	}

	if err := m.controller.CopyLastContent(m.clip, m.copyButton); err != nil {
		logger.ComponentLogger("App").Warn("copy failed", "error", err)
		return m, m.ShowFlashError("Copy failed: " + werrors.Detail(err))
	}

	m.copySeq++
	seq := m.copySeq
	if m.writer != nil {
		m.writer.SetCopyLabel(m.copyButton.Label)
	}
	return m, tea.Batch(
		m.ShowFlashSuccess("Copied to clipboard"),
		tea.Tick(action.CopyConfirmDuration, func(_ time.Time) tea.Msg { return CopyResetMsg{Seq: seq} }),
	)
}

// handleCopyReset restores the copy label unless a newer copy superseded it.
func (m *Model) handleCopyReset(msg CopyResetMsg) (tea.Model, tea.Cmd) {
	if msg.Seq != m.copySeq {
		return m, nil
	}
	m.controller.RestoreButton(m.copyButton)
	if m.writer != nil {
		m.writer.SetCopyLabel(m.copyButton.Label)
	}
	return m, nil
}

// closeOverlay hides the content modal. Requests in flight still settle.
func (m *Model) closeOverlay() {
	m.controller.CloseOverlay()
	m.modal.Hide()
}
