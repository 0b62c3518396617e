package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/trueinfluence/writeit/internal/deck"
	werrors "github.com/trueinfluence/writeit/internal/errors"
	"github.com/trueinfluence/writeit/internal/logger"
)

// onDeckReload runs on the watcher's timer goroutine. Only the newest
// reload is kept when the event loop falls behind.
func (m *Model) onDeckReload(d *deck.Deck, err error) {
	msg := DeckReloadedMsg{Deck: d, Err: err, Watched: true}
	for {
		select {
		case m.deckEvents <- msg:
			return
		default:
		}
		select {
		case <-m.deckEvents:
		default:
		}
	}
}

// listenForDeckReload waits for the next watcher result.
func (m *Model) listenForDeckReload() tea.Cmd {
	ch := m.deckEvents
	done := m.ctx.Done()
	return func() tea.Msg {
		select {
		case msg := <-ch:
			return msg
		case <-done:
			return nil
		}
	}
}

// reloadDeck re-reads path on demand.
func reloadDeck(path string) tea.Cmd {
	return func() tea.Msg {
		d, err := deck.Load(path)
		return DeckReloadedMsg{Deck: d, Err: err}
	}
}

// handleDeckReloaded swaps in a reloaded deck, keeping the old one on error.
func (m *Model) handleDeckReloaded(msg DeckReloadedMsg) (tea.Model, tea.Cmd) {
	var next tea.Cmd
	if msg.Watched {
		next = m.listenForDeckReload()
	}

	if msg.Err != nil {
		logger.ComponentLogger("App").Warn("deck reload failed", "error", msg.Err)
		return m, tea.Batch(next, m.ShowFlashError("Deck not reloaded: "+werrors.Detail(msg.Err)))
	}

	m.setDeck(msg.Deck)
	logger.ComponentLogger("App").Info("deck reloaded", "cards", msg.Deck.Len())
	return m, tea.Batch(next, m.ShowFlashInfo("Deck reloaded"))
}
