package modals

import (
	"fmt"
	"io"

	"charm.land/bubbles/v2/list"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// =============================================================================
// HelpState - keyboard shortcuts, grouped by section
// =============================================================================

type shortcutItem struct{ HelpShortcut }

func (i shortcutItem) FilterValue() string { return i.Key + " " + i.Desc }

// sectionItem is a non-selectable header row.
type sectionItem struct{ title string }

func (i sectionItem) FilterValue() string { return "" }

type helpDelegate struct{}

func (helpDelegate) Height() int                             { return 1 }
func (helpDelegate) Spacing() int                            { return 0 }
func (helpDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (helpDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	switch i := item.(type) {
	case sectionItem:
		fmt.Fprint(w, lipgloss.NewStyle().Bold(true).Foreground(ColorSecondary).Render(i.title))
	case shortcutItem:
		key := lipgloss.NewStyle().Bold(true).Width(12).Render(i.Key)
		if index == m.Index() {
			fmt.Fprint(w, ListSelectedStyle.Render("> "+key+i.Desc))
			return
		}
		fmt.Fprint(w, ListItemStyle.Render("  "+key+i.Desc))
	}
}

type HelpState struct {
	list list.Model
}

func (*HelpState) modalState() {}

func (s *HelpState) Title() string { return "Keys" }

func (s *HelpState) Help() string {
	if s.list.SettingFilter() {
		return "Type to filter  Enter: apply  Esc: cancel"
	}
	return "/: filter  up/down: navigate  Enter: run  Esc: close"
}

func (s *HelpState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.list.View(), help)
}

func (s *HelpState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

// SetSize fits the list between the title and the help line.
func (s *HelpState) SetSize(width, height int) {
	listHeight := height - 4
	if listHeight < 1 {
		listHeight = 1
	}
	if listHeight > HelpModalMaxVisible && HelpModalMaxVisible > 0 {
		listHeight = HelpModalMaxVisible
	}
	s.list.SetSize(width, listHeight)
}

// Selected returns the highlighted shortcut, or nil on a section header.
func (s *HelpState) Selected() *HelpShortcut {
	if si, ok := s.list.SelectedItem().(shortcutItem); ok {
		return &si.HelpShortcut
	}
	return nil
}

// IsFiltering reports whether the filter input has focus.
func (s *HelpState) IsFiltering() bool {
	return s.list.SettingFilter()
}

// NewHelpState builds the list from sections.
func NewHelpState(sections []HelpSection) *HelpState {
	var items []list.Item
	for _, section := range sections {
		items = append(items, sectionItem{title: section.Title})
		for _, sc := range section.Shortcuts {
			items = append(items, shortcutItem{sc})
		}
	}

	height := HelpModalMaxVisible
	if height <= 0 {
		height = len(items)
	}
	l := list.New(items, helpDelegate{}, ModalWidth, height)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.SetFilteringEnabled(true)

	for i, item := range items {
		if _, ok := item.(shortcutItem); ok {
			l.Select(i)
			break
		}
	}
	return &HelpState{list: l}
}
