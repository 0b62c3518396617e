package ui

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"

	"github.com/trueinfluence/writeit/internal/action"
	"github.com/trueinfluence/writeit/internal/ui/modals"
)

func TestModal_ShowHide(t *testing.T) {
	modal := NewModal()
	if modal.IsVisible() {
		t.Error("New modal should not be visible")
	}

	modal.Show(modals.NewCustomActionState(action.KindWrite, ""))
	if !modal.IsVisible() {
		t.Error("Modal should be visible after Show")
	}

	modal.SetError("boom")
	if modal.GetError() != "boom" {
		t.Errorf("GetError = %q", modal.GetError())
	}

	modal.Hide()
	if modal.IsVisible() || modal.GetError() != "" {
		t.Error("Hide should clear state and error")
	}
}

func TestModal_View(t *testing.T) {
	modal := NewModal()
	if modal.View(80, 24) != "" {
		t.Error("View should return empty string when not visible")
	}

	modal.Show(modals.NewWriterState(action.Render{
		Phase: action.PhaseSuccess, Title: "✍️ Launch Plan", Content: "Step 1...",
	}, action.CopyLabel))
	view := modal.View(120, 40)
	if !strings.Contains(view, "Launch Plan") {
		t.Error("View should contain the modal title")
	}
}

func TestModal_View_WidthClamping(t *testing.T) {
	modal := NewModal()
	modal.Show(modals.NewWriterState(action.Render{
		Phase: action.PhaseSuccess, Title: "T", Content: strings.Repeat("word ", 80),
	}, action.CopyLabel))

	view := modal.View(70, 30)
	for i, line := range strings.Split(view, "\n") {
		if w := lipgloss.Width(line); w > 70 {
			t.Errorf("line %d exceeds screen width: %d > 70", i, w)
		}
	}
}
