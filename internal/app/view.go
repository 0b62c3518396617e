package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/trueinfluence/writeit/internal/action"
	"github.com/trueinfluence/writeit/internal/ui"
)

// updateSizes recalculates and applies dimensions to all UI components
func (m *Model) updateSizes() {
	ctx := ui.GetViewContext()
	ctx.UpdateTerminalSize(m.width, m.height)

	m.header.SetWidth(ctx.TerminalWidth)
	m.footer.SetWidth(ctx.TerminalWidth)
	m.cards.SetSize(ctx.CardsWidth, ctx.ContentHeight)
	m.preview.SetSize(ctx.PreviewWidth, ctx.ContentHeight)
}

// updateFooterContext updates the footer with current context for conditional bindings
func (m *Model) updateFooterContext() {
	fc := ui.FooterContext{
		ModalPhase: action.PhaseHidden,
		HasContent: m.controller.LastContent() != "",
		HasCards:   m.cards.Len() > 0,
	}
	if m.modal.IsVisible() {
		if m.writerOpen() {
			fc.ModalPhase = m.writer.RenderState().Phase
		} else {
			fc.FormOpen = true
		}
	}
	m.footer.SetContext(fc)
}

// View renders the app
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	v.SetContent(m.RenderToString())
	return v
}

// RenderToString renders the current view as a string.
func (m *Model) RenderToString() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	m.updateFooterContext()

	// The modal replaces the panels; the footer stays for flashes
	if m.modal.IsVisible() {
		return lipgloss.JoinVertical(
			lipgloss.Left,
			m.modal.View(m.width, m.height-ui.FooterHeight),
			m.footer.View(),
		)
	}

	panels := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.cards.View(),
		m.preview.View(),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.header.View(),
		panels,
		m.footer.View(),
	)
}
