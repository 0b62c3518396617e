package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/trueinfluence/writeit/internal/action"
)

func TestFooter_FlashLifecycle(t *testing.T) {
	f := NewFooter()
	f.SetWidth(120)
	if f.width != 120 || len(f.bindings) == 0 || f.HasFlash() {
		t.Fatalf("unexpected new footer: width=%d bindings=%d flash=%v", f.width, len(f.bindings), f.HasFlash())
	}

	f.SetFlash("Generation failed", FlashError)
	if !f.HasFlash() {
		t.Fatal("flash should be set")
	}
	if got := *f.flashMessage; got.Text != "Generation failed" || got.Type != FlashError || got.Duration != DefaultFlashDuration {
		t.Errorf("flash = %+v", got)
	}

	f.SetFlashWithDuration("Copied", FlashSuccess, action.CopyConfirmDuration)
	if f.flashMessage.Duration != action.CopyConfirmDuration {
		t.Errorf("duration = %v, want %v", f.flashMessage.Duration, action.CopyConfirmDuration)
	}

	f.ClearFlash()
	if f.HasFlash() {
		t.Error("ClearFlash should remove the flash")
	}
}

func TestFooter_ClearIfExpired(t *testing.T) {
	tests := []struct {
		name    string
		age     time.Duration
		cleared bool
	}{
		{"fresh flash stays", 0, false},
		{"old flash is cleared", 10 * time.Second, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFooter()
			f.flashMessage = &FlashMessage{
				Text:      "Deck reloaded",
				Type:      FlashInfo,
				CreatedAt: time.Now().Add(-tt.age),
				Duration:  5 * time.Second,
			}
			if f.flashMessage.IsExpired() != tt.cleared {
				t.Errorf("IsExpired = %v", !tt.cleared)
			}
			if got := f.ClearIfExpired(); got != tt.cleared {
				t.Errorf("ClearIfExpired = %v, want %v", got, tt.cleared)
			}
			if f.HasFlash() == tt.cleared {
				t.Errorf("HasFlash = %v after ClearIfExpired", f.HasFlash())
			}
		})
	}
}

func TestFooter_View_WithFlash(t *testing.T) {
	footer := NewFooter()
	footer.SetWidth(80)

	// Without flash, should show keybindings
	viewWithoutFlash := footer.View()
	if strings.Contains(viewWithoutFlash, "Test error") {
		t.Error("Should not contain flash message text when no flash is set")
	}

	// With flash, should show flash message instead of keybindings
	footer.SetFlash("Test error message", FlashError)
	viewWithFlash := footer.View()

	if !strings.Contains(viewWithFlash, "Test error message") {
		t.Error("Flash message should be visible in view")
	}

	// Should contain error icon
	if !strings.Contains(viewWithFlash, "✕") {
		t.Error("Error flash should contain error icon")
	}
}

func TestFooter_FlashTypes(t *testing.T) {
	tests := []struct {
		name         string
		flashType    FlashType
		expectedIcon string
	}{
		{"Error", FlashError, "✕"},
		{"Warning", FlashWarning, "⚠"},
		{"Info", FlashInfo, "ℹ"},
		{"Success", FlashSuccess, "✓"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			footer := NewFooter()
			footer.SetWidth(80)
			footer.SetFlash("Test message", tt.flashType)

			view := footer.View()
			if !strings.Contains(view, tt.expectedIcon) {
				t.Errorf("Expected %s flash to contain icon %q", tt.name, tt.expectedIcon)
			}
		})
	}
}

func TestFlashTick(t *testing.T) {
	cmd := FlashTick()

	if cmd == nil {
		t.Error("FlashTick() should return a command")
	}
}

func TestFooter_DefaultBindings(t *testing.T) {
	footer := NewFooter()
	footer.SetWidth(120)

	// Empty deck, nothing generated yet
	view := footer.View()
	for _, hidden := range []string{"write", "start it", "copy"} {
		if strings.Contains(view, hidden) {
			t.Errorf("empty context should not show %q", hidden)
		}
	}
	if !strings.Contains(view, "new") || !strings.Contains(view, "quit") {
		t.Error("expected new and quit bindings")
	}

	footer.SetContext(FooterContext{HasCards: true, HasContent: true})
	view = footer.View()
	for _, want := range []string{"write", "start it", "why", "copy", "reload deck"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q binding", want)
		}
	}
}

func TestFooter_ModalBindings(t *testing.T) {
	footer := NewFooter()
	footer.SetWidth(120)

	footer.SetContext(FooterContext{ModalPhase: action.PhaseLoading, HasCards: true})
	view := footer.View()
	if !strings.Contains(view, "close") {
		t.Error("loading modal should offer close")
	}
	if strings.Contains(view, "write") {
		t.Error("card bindings should be hidden while the modal is open")
	}

	footer.SetContext(FooterContext{ModalPhase: action.PhaseSuccess})
	view = footer.View()
	if !strings.Contains(view, "copy") || !strings.Contains(view, "scroll") {
		t.Error("success modal should offer copy and scroll")
	}

	footer.SetContext(FooterContext{FormOpen: true})
	if !strings.Contains(footer.View(), "cancel") {
		t.Error("form should offer cancel")
	}
}

func TestFooter_FlashTakesPriority(t *testing.T) {
	footer := NewFooter()
	footer.SetWidth(120)
	footer.SetContext(FooterContext{ModalPhase: action.PhaseSuccess})
	footer.SetFlash("Copied to clipboard", FlashSuccess)

	view := footer.View()
	if !strings.Contains(view, "Copied to clipboard") {
		t.Error("flash message should take priority over bindings")
	}
	if strings.Contains(view, "scroll") {
		t.Error("bindings should not show while a flash is active")
	}
}
