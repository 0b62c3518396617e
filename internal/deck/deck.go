// Package deck loads the card deck shown by the terminal UI. A deck is a TOML
// file listing content ideas; each card becomes a set of action buttons.
package deck

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/trueinfluence/writeit/internal/action"
	werrors "github.com/trueinfluence/writeit/internal/errors"
)

// Card is one content idea.
type Card struct {
	Topic string `toml:"topic"`
	Type  string `toml:"type"`  // rising, revival, evergreen, combo, passion, idea
	Views string `toml:"views"` // free-form view count shown next to the topic
	Badge string `toml:"badge"`
	Note  string `toml:"note"`
	Label string `toml:"label"` // explain button label, e.g. "Why it works"
}

// Deck is the parsed deck file.
type Deck struct {
	BigBet string `toml:"big_bet"`
	Cards  []Card `toml:"cards"`

	Path string `toml:"-"`
}

// Buttons are the action buttons for one card.
type Buttons struct {
	Write   *action.Button
	Start   *action.Button
	Explain *action.Button
}

// ForKind returns the button that dispatches kind.
func (b Buttons) ForKind(kind action.Kind) *action.Button {
	switch kind {
	case action.KindStart:
		return b.Start
	case action.KindExplain:
		return b.Explain
	default:
		return b.Write
	}
}

// Button labels.
const (
	WriteLabel   = "✍️ Write"
	StartLabel   = "🚀 Start It"
	ExplainLabel = "💡 Why"
)

// Buttons creates fresh buttons carrying the card's attributes. Explain
// buttons get no bigbet attribute so the controller falls back to the
// deck-wide value.
func (c Card) Buttons() Buttons {
	return Buttons{
		Write: action.NewButton(WriteLabel, map[string]string{
			action.AttrTopic:    c.Topic,
			action.AttrCardType: c.Type,
			action.AttrViews:    c.Views,
		}),
		Start: action.NewButton(StartLabel, map[string]string{
			action.AttrTopic:    c.Topic,
			action.AttrCardType: c.Type,
			action.AttrViews:    c.Views,
		}),
		Explain: action.NewButton(ExplainLabel, map[string]string{
			action.AttrTopic: c.Topic,
			action.AttrLabel: c.Label,
		}),
	}
}

// Load reads and validates a deck file.
func Load(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, werrors.DeckLoadFailed(path, err)
	}
	d, err := Parse(string(data))
	if err != nil {
		return nil, werrors.DeckLoadFailed(path, err)
	}
	d.Path = path
	return d, nil
}

// Parse decodes a deck from TOML text.
func Parse(data string) (*Deck, error) {
	var d Deck
	if _, err := toml.Decode(data, &d); err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate checks that every card has a topic.
func (d *Deck) Validate() error {
	for i, c := range d.Cards {
		if strings.TrimSpace(c.Topic) == "" {
			return fmt.Errorf("card %d has no topic", i+1)
		}
	}
	return nil
}

// Len returns the number of cards.
func (d *Deck) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Cards)
}

// Exists reports whether a deck file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Sample is written by `writeit init` when no deck exists yet.
const Sample = `# writeit deck
big_bet = "Short-form explainers"

[[cards]]
topic = "Launch Plan"
type = "idea"
label = "Why it works"

[[cards]]
topic = "Pricing"
type = "rising"
views = "48K"
badge = "🔥"
note = "Up 3x in the last 30 days"
label = "Why it works"
`
