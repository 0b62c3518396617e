package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/trueinfluence/writeit/internal/deck"
	"github.com/trueinfluence/writeit/internal/keys"
)

func TestHandleDeckReloaded(t *testing.T) {
	env := newTestEnv(testConfig(), testDeck())

	next := &deck.Deck{Cards: []deck.Card{{Topic: "Hiring", Type: "idea"}}}
	env.m.Update(DeckReloadedMsg{Deck: next})

	if env.m.Deck() != next {
		t.Error("expected the new deck")
	}
	if env.m.cards.Len() != 1 {
		t.Errorf("expected 1 card, got %d", env.m.cards.Len())
	}
	if !strings.Contains(footerText(env.m), "Deck reloaded") {
		t.Errorf("footer = %q", footerText(env.m))
	}
}

func TestHandleDeckReloaded_ErrorKeepsDeck(t *testing.T) {
	env := newTestEnv(testConfig(), testDeck())
	original := env.m.Deck()

	env.m.Update(DeckReloadedMsg{Err: errors.New("line 3: expected '='")})

	if env.m.Deck() != original {
		t.Error("a failed reload must keep the current deck")
	}
	if !strings.Contains(footerText(env.m), "Deck not reloaded") {
		t.Errorf("footer = %q", footerText(env.m))
	}
}

func TestHandleDeckReloaded_InFlightButtonKeepsBusyLabel(t *testing.T) {
	env := newTestEnv(testConfig(), testDeck())
	cmd := sendKey(env.m, "w")
	btn := env.m.cards.Rows()[0].Buttons.Write

	env.m.Update(DeckReloadedMsg{Deck: testDeck()})
	if got := env.m.cards.Rows()[0].Buttons.Write; got != btn || !got.Disabled {
		t.Error("the busy button should survive the reload")
	}

	for _, msg := range settledMsgs(cmd) {
		env.m.Update(msg)
	}
	if btn.Disabled {
		t.Error("button should be released after settling")
	}
}

func TestOnDeckReload_KeepsNewest(t *testing.T) {
	env := newTestEnv(testConfig(), testDeck())
	first := &deck.Deck{}
	second := &deck.Deck{}

	env.m.onDeckReload(first, nil)
	env.m.onDeckReload(second, nil)

	msg, ok := env.m.listenForDeckReload()().(DeckReloadedMsg)
	if !ok {
		t.Fatal("expected DeckReloadedMsg")
	}
	if msg.Deck != second || !msg.Watched {
		t.Errorf("expected the newest watched reload, got %+v", msg)
	}
}

func TestListenForDeckReload_StopsOnClose(t *testing.T) {
	env := newTestEnv(testConfig(), testDeck())
	env.m.Close()

	if msg := env.m.listenForDeckReload()(); msg != nil {
		t.Errorf("expected nil after Close, got %v", msg)
	}
}

func TestShortcutReloadDeck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.toml")
	if err := os.WriteFile(path, []byte("[[cards]]\ntopic = \"Launch Plan\"\ntype = \"idea\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	d, err := deck.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	env := newTestEnv(testConfig(), d)

	data := "[[cards]]\ntopic = \"Launch Plan\"\ntype = \"idea\"\n\n[[cards]]\ntopic = \"Hiring\"\ntype = \"rising\"\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := sendKey(env.m, keys.CtrlR)
	if cmd == nil {
		t.Fatal("expected reload command")
	}
	msg, ok := cmd().(DeckReloadedMsg)
	if !ok {
		t.Fatalf("expected DeckReloadedMsg, got %T", msg)
	}
	if msg.Watched {
		t.Error("manual reloads must not re-arm the watcher listener")
	}
	env.m.Update(msg)
	if env.m.cards.Len() != 2 {
		t.Errorf("expected 2 cards, got %d", env.m.cards.Len())
	}
}

func TestShortcutReloadDeck_NoPath(t *testing.T) {
	env := newTestEnv(testConfig(), testDeck())

	sendKey(env.m, keys.CtrlR)

	if !strings.Contains(footerText(env.m), "No deck file to reload") {
		t.Errorf("footer = %q", footerText(env.m))
	}
}

var _ tea.Model = (*Model)(nil)
