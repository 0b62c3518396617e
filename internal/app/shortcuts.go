package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/trueinfluence/writeit/internal/action"
	"github.com/trueinfluence/writeit/internal/keys"
	"github.com/trueinfluence/writeit/internal/ui"
	"github.com/trueinfluence/writeit/internal/ui/modals"
)

// Shortcut represents a keyboard shortcut with its metadata and handler.
// This is the single source of truth for all shortcuts in the application.
type Shortcut struct {
	Key         string                              // The key binding (e.g., "w", "ctrl+r")
	DisplayKey  string                              // Display name in help; defaults to Key
	Description string                              // Human-readable description
	Category    string                              // Section for help modal grouping
	Handler     func(m *Model) (tea.Model, tea.Cmd) // Action to perform
	Condition   func(m *Model) bool                 // Optional extra condition
}

// Categories for organizing shortcuts in the help modal
const (
	CategoryActions = "Actions"
	CategoryDeck    = "Deck"
	CategoryGeneral = "General"
)

// categoryOrder defines the display order of categories in the help modal
var categoryOrder = []string{
	CategoryActions,
	CategoryDeck,
	CategoryGeneral,
}

// ShortcutRegistry is the central registry of all keyboard shortcuts.
// Shortcuts listed here appear in the help modal and can be run from it.
var ShortcutRegistry = []Shortcut{
	// Actions
	{
		Key:         "w",
		Description: "Write a full script for the selected card",
		Category:    CategoryActions,
		Handler:     func(m *Model) (tea.Model, tea.Cmd) { return m.dispatchSelected(action.KindWrite) },
		Condition:   hasSelectedCard,
	},
	{
		Key:         "s",
		Description: "Start it: get a starter framework",
		Category:    CategoryActions,
		Handler:     func(m *Model) (tea.Model, tea.Cmd) { return m.dispatchSelected(action.KindStart) },
		Condition:   hasSelectedCard,
	},
	{
		Key:         "e",
		Description: "Explain why the card fits the big bet",
		Category:    CategoryActions,
		Handler:     func(m *Model) (tea.Model, tea.Cmd) { return m.dispatchSelected(action.KindExplain) },
		Condition:   hasSelectedCard,
	},
	{
		Key:         "n",
		Description: "New action for a custom topic",
		Category:    CategoryActions,
		Handler:     shortcutCustomAction,
	},
	{
		Key:         "c",
		Description: "Copy the last generated content",
		Category:    CategoryActions,
		Handler:     shortcutCopy,
	},

	// Deck
	{
		Key:         keys.CtrlR,
		DisplayKey:  "ctrl-r",
		Description: "Reload the deck file",
		Category:    CategoryDeck,
		Handler:     shortcutReloadDeck,
	},

	// General
	{
		Key:         keys.CtrlT,
		DisplayKey:  "ctrl-t",
		Description: "Change theme",
		Category:    CategoryGeneral,
		Handler:     shortcutTheme,
	},
	{
		Key:         "q",
		Description: "Quit",
		Category:    CategoryGeneral,
		Handler:     shortcutQuit,
	},
	{
		Key:         keys.CtrlC,
		DisplayKey:  "ctrl-c",
		Description: "Quit",
		Category:    CategoryGeneral,
		Handler:     shortcutQuit,
	},
}

// helpShortcut is kept out of ShortcutRegistry so the help modal cannot
// reopen itself.
var helpShortcut = Shortcut{
	Key:         "?",
	Description: "Show this help",
	Category:    CategoryGeneral,
}

// The handler is assigned in init to break the initialization cycle
// helpShortcut -> shortcutHelp -> helpSections -> helpShortcut.
func init() {
	helpShortcut.Handler = shortcutHelp
}

// DisplayOnlyShortcuts are handled elsewhere but listed in help.
var DisplayOnlyShortcuts = []modals.HelpShortcut{
	{Key: "↑/↓ j/k", Desc: "Select card"},
	{Key: "pgup/pgdn", Desc: "Scroll the preview or modal"},
	{Key: "esc", Desc: "Close the modal (requests keep running)"},
}

// findShortcut returns the registered shortcut for key.
func findShortcut(key string) *Shortcut {
	if key == helpShortcut.Key {
		return &helpShortcut
	}
	for i := range ShortcutRegistry {
		if ShortcutRegistry[i].Key == key {
			return &ShortcutRegistry[i]
		}
	}
	return nil
}

func hasSelectedCard(m *Model) bool {
	return m.cards.Selected() != nil
}

// helpSections groups the registry by category for the help modal.
func helpSections() []modals.HelpSection {
	byCategory := make(map[string][]modals.HelpShortcut)
	for _, s := range append(ShortcutRegistry, helpShortcut) {
		display := s.DisplayKey
		if display == "" {
			display = s.Key
		}
		byCategory[s.Category] = append(byCategory[s.Category], modals.HelpShortcut{Key: display, Desc: s.Description})
	}

	var sections []modals.HelpSection
	for _, cat := range categoryOrder {
		if len(byCategory[cat]) > 0 {
			sections = append(sections, modals.HelpSection{Title: cat, Shortcuts: byCategory[cat]})
		}
	}
	sections = append(sections, modals.HelpSection{Title: "Navigation", Shortcuts: DisplayOnlyShortcuts})
	return sections
}

// shortcutForDisplayKey maps a help row back to its shortcut.
func shortcutForDisplayKey(display string) *Shortcut {
	if display == helpShortcut.Key {
		return &helpShortcut
	}
	for i := range ShortcutRegistry {
		s := &ShortcutRegistry[i]
		if s.DisplayKey == display || (s.DisplayKey == "" && s.Key == display) {
			return s
		}
	}
	return nil
}

func shortcutCustomAction(m *Model) (tea.Model, tea.Cmd) {
	var topic string
	if row := m.cards.Selected(); row != nil {
		topic = row.Card.Topic
	}
	m.modal.Show(modals.NewCustomActionState(action.KindWrite, topic))
	return m, nil
}

func shortcutCopy(m *Model) (tea.Model, tea.Cmd) {
	return m.copyLastContent()
}

func shortcutReloadDeck(m *Model) (tea.Model, tea.Cmd) {
	if m.deck == nil || m.deck.Path == "" {
		return m, m.ShowFlashWarning("No deck file to reload")
	}
	return m, reloadDeck(m.deck.Path)
}

func shortcutTheme(m *Model) (tea.Model, tea.Cmd) {
	m.modal.Show(modals.NewThemeState(ui.ThemeOptions(), string(ui.CurrentThemeName())))
	return m, nil
}

func shortcutHelp(m *Model) (tea.Model, tea.Cmd) {
	m.modal.Show(modals.NewHelpState(helpSections()))
	return m, nil
}

func shortcutQuit(m *Model) (tea.Model, tea.Cmd) {
	m.Close()
	return m, tea.Quit
}
