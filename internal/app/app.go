// Package app is the Bubble Tea model behind the writeit terminal UI. It
// wires the deck, the action controller and the ui components together.
package app

import (
	"context"
	"path/filepath"

	tea "charm.land/bubbletea/v2"

	"github.com/trueinfluence/writeit/internal/action"
	"github.com/trueinfluence/writeit/internal/config"
	"github.com/trueinfluence/writeit/internal/deck"
	"github.com/trueinfluence/writeit/internal/logger"
	"github.com/trueinfluence/writeit/internal/ui"
	"github.com/trueinfluence/writeit/internal/ui/modals"
)

// Options are the collaborators handed to New. Zero values are filled in
// with the production implementations where one exists.
type Options struct {
	Config     *config.Config
	Controller *action.Controller
	Deck       *deck.Deck
	Clipboard  action.Clipboard

	// Notifier delivers desktop notifications; nil disables them.
	Notifier Notifier

	// WatchDeck starts a file watcher on the deck path.
	WatchDeck bool

	Version string
}

// Notifier announces finished generations while the modal is closed.
type Notifier interface {
	GenerationReady(title string) error
	GenerationFailed(title string) error
}

// Model is the main Bubble Tea model
type Model struct {
	config  *config.Config
	version string

	header  *ui.Header
	footer  *ui.Footer
	cards   *ui.CardList
	preview *ui.Preview
	modal   *ui.Modal

	controller *action.Controller
	clip       action.Clipboard
	notifier   Notifier

	deck       *deck.Deck
	copyButton *action.Button
	copySeq    int

	// writer is the shared content modal; nil until the first action.
	writer *modals.WriterState
	// spinning is true while a SpinnerTick chain is pending.
	spinning bool

	deckEvents chan DeckReloadedMsg
	watchDeck  bool

	ctx    context.Context
	cancel context.CancelFunc

	width  int
	height int
}

// ActionSettledMsg carries the outcome of a dispatched action back to the
// event loop.
type ActionSettledMsg struct {
	Command *action.Command
	Result  action.Result
}

// CopyResetMsg restores the copy button label after the confirmation period.
type CopyResetMsg struct {
	Seq int
}

// DeckReloadedMsg is sent when the deck file was re-read.
type DeckReloadedMsg struct {
	Deck *deck.Deck
	Err  error

	// Watched is set for reloads from the file watcher, whose listener
	// must be re-armed.
	Watched bool
}

// NotificationSentMsg reports a failed desktop notification.
type NotificationSentMsg struct {
	Err error
}

// New creates a new app model
func New(opts Options) *Model {
	cfg := opts.Config
	if savedTheme := cfg.GetTheme(); savedTheme != "" {
		ui.SetThemeByName(savedTheme)
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		config:     cfg,
		version:    opts.Version,
		header:     ui.NewHeader(),
		footer:     ui.NewFooter(),
		cards:      ui.NewCardList(),
		preview:    ui.NewPreview(),
		modal:      ui.NewModal(),
		controller: opts.Controller,
		clip:       opts.Clipboard,
		notifier:   opts.Notifier,
		copyButton: action.NewButton(action.CopyLabel, nil),
		deckEvents: make(chan DeckReloadedMsg, 1),
		watchDeck:  opts.WatchDeck,
		ctx:        ctx,
		cancel:     cancel,
	}

	settings := m.controller.Settings()
	m.header.SetCreator(settings.Slug, settings.Persona)
	m.setDeck(opts.Deck)
	return m
}

// Init starts the deck watcher listener.
func (m *Model) Init() tea.Cmd {
	if !m.watchDeck || m.deck == nil || m.deck.Path == "" {
		return nil
	}
	if err := deck.Watch(m.ctx, m.deck.Path, m.onDeckReload); err != nil {
		logger.ComponentLogger("App").Warn("deck watch failed", "path", m.deck.Path, "error", err)
		return m.ShowFlashWarning("Not watching deck: " + err.Error())
	}
	return m.listenForDeckReload()
}

// Close stops background work started by Init.
func (m *Model) Close() {
	m.cancel()
}

// setDeck swaps in d, reusing the buttons of cards whose topic survives so
// that in-flight actions keep their busy labels.
func (m *Model) setDeck(d *deck.Deck) {
	m.deck = d

	existing := make(map[string]deck.Buttons)
	for _, row := range m.cards.Rows() {
		existing[row.Card.Topic] = row.Buttons
	}

	var rows []ui.CardRow
	if d != nil {
		for _, card := range d.Cards {
			buttons, ok := existing[card.Topic]
			if ok {
				refreshButtons(buttons, card)
			} else {
				buttons = card.Buttons()
			}
			rows = append(rows, ui.CardRow{Card: card, Buttons: buttons})
		}
	}
	m.cards.SetRows(rows)

	bigBet := m.config.GetBigBet()
	if d != nil && d.BigBet != "" {
		bigBet = d.BigBet
	}
	m.controller.SetDefaultBigBet(bigBet)

	var name string
	if d != nil && d.Path != "" {
		name = filepath.Base(d.Path)
	}
	m.header.SetDeckName(name)
}

// refreshButtons copies the card's attributes onto reused buttons.
func refreshButtons(b deck.Buttons, card deck.Card) {
	fresh := card.Buttons()
	for _, pair := range [][2]*action.Button{{b.Write, fresh.Write}, {b.Start, fresh.Start}, {b.Explain, fresh.Explain}} {
		for k, v := range pair[1].Attrs {
			pair[0].SetAttr(k, v)
		}
	}
}

// Deck returns the current deck.
func (m *Model) Deck() *deck.Deck {
	return m.deck
}

// Controller returns the action controller.
func (m *Model) Controller() *action.Controller {
	return m.controller
}
