package ui

import (
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/trueinfluence/writeit/internal/markdown"
)

// Preview shows the last generated content next to the card list.
type Preview struct {
	viewport viewport.Model
	title    string
	content  string
	width    int
	height   int
}

// NewPreview creates an empty preview panel
func NewPreview() *Preview {
	vp := viewport.New()
	vp.SoftWrap = true
	return &Preview{viewport: vp}
}

// SetSize sets the panel dimensions and re-renders the content
func (p *Preview) SetSize(width, height int) {
	p.width = width
	p.height = height
	vc := GetViewContext()
	p.viewport.SetWidth(max(vc.InnerWidth(width), 1))
	p.viewport.SetHeight(max(vc.InnerHeight(height)-TitleHeight, 1))
	p.refresh()
}

// SetContent replaces the previewed content.
func (p *Preview) SetContent(title, content string) {
	p.title = title
	p.content = content
	p.refresh()
	p.viewport.GotoTop()
}

// Content returns the raw previewed content.
func (p *Preview) Content() string {
	return p.content
}

// Refresh re-renders after a theme change.
func (p *Preview) Refresh() {
	p.refresh()
}

func (p *Preview) refresh() {
	if p.content == "" {
		p.viewport.SetContent("")
		return
	}
	w := GetViewContext().InnerWidth(p.width)
	if w <= 0 {
		w = DefaultWrapWidth
	}
	p.viewport.SetContent(markdown.Render(p.content, w, CurrentTheme().Markdown))
}

// Update scrolls the viewport
func (p *Preview) Update(msg tea.Msg) (*Preview, tea.Cmd) {
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return p, cmd
}

// View renders the preview panel
func (p *Preview) View() string {
	title := "Last result"
	if p.title != "" {
		title = p.title
	}

	var body string
	if p.content == "" {
		body = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			Render("Nothing generated yet. Pick a card and press w, s or e.")
	} else {
		body = p.viewport.View()
	}

	return PanelStyle.Width(p.width).Height(p.height).Render(
		lipgloss.JoinVertical(lipgloss.Left, PanelTitleStyle.Render(title), body),
	)
}
