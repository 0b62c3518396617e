package modals

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

func testSections() []HelpSection {
	return []HelpSection{
		{Title: "Actions", Shortcuts: []HelpShortcut{{Key: "w", Desc: "write"}, {Key: "s", Desc: "start it"}}},
		{Title: "General", Shortcuts: []HelpShortcut{{Key: "q", Desc: "quit"}}},
	}
}

func TestHelpState_SelectsFirstShortcut(t *testing.T) {
	state := NewHelpState(testSections())
	sel := state.Selected()
	if sel == nil || sel.Key != "w" {
		t.Fatalf("expected first shortcut selected, got %+v", sel)
	}
}

func TestHelpState_Render(t *testing.T) {
	state := NewHelpState(testSections())
	rendered := ansi.Strip(state.Render())
	for _, want := range []string{"Keys", "Actions", "write", "start it"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("expected %q in:\n%s", want, rendered)
		}
	}
}

func TestHelpState_Navigate(t *testing.T) {
	state := NewHelpState(testSections())
	state.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	sel := state.Selected()
	if sel == nil || sel.Key != "s" {
		t.Errorf("expected 's' after down, got %+v", sel)
	}
	if state.IsFiltering() {
		t.Error("should not be filtering")
	}
}
