// Package action dispatches write, start and explain actions to the generation
// endpoint and tracks the UI state they produce: the shared modal, the last
// generated content, and the enabled/busy state of the triggering button.
package action

import (
	"encoding/json"
	"fmt"
	"time"
)

// Kind selects the server-side generation mode.
type Kind string

const (
	KindWrite   Kind = "write"
	KindStart   Kind = "start"
	KindExplain Kind = "explain"
)

// Kinds lists the valid kinds in display order.
var Kinds = []Kind{KindWrite, KindStart, KindExplain}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindWrite, KindStart, KindExplain:
		return true
	}
	return false
}

// ParseKind converts a string to a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown action kind %q (want write, start or explain)", s)
	}
	return k, nil
}

// Button attribute keys.
const (
	AttrTopic    = "topic"
	AttrCardType = "type"
	AttrViews    = "views"
	AttrBigBet   = "bigbet"
	AttrLabel    = "label"
)

// NoContentFallback is rendered when a successful response carries no content.
const NoContentFallback = "No content generated."

// Copy button labels and how long the confirmation stays visible.
const (
	CopyLabel           = "📋 Copy"
	CopiedLabel         = "✅ Copied!"
	CopyConfirmDuration = 2 * time.Second
)

// Request is the body of one action call.
type Request struct {
	Topic    string
	Type     Kind
	CardType string
	Views    string
	BigBet   string
	Label    string
}

// wireRequest is the JSON shape. Kind-specific fields are pointers so that an
// empty value is still sent for the kinds that carry it.
type wireRequest struct {
	Topic    string  `json:"topic"`
	Type     Kind    `json:"type"`
	CardType *string `json:"card_type,omitempty"`
	Views    *string `json:"views,omitempty"`
	BigBet   *string `json:"big_bet,omitempty"`
	Label    *string `json:"label,omitempty"`
}

// MarshalJSON writes card_type and views for write/start, big_bet and label for explain.
func (r Request) MarshalJSON() ([]byte, error) {
	w := wireRequest{Topic: r.Topic, Type: r.Type}
	if r.Type == KindExplain {
		w.BigBet = &r.BigBet
		w.Label = &r.Label
	} else {
		w.CardType = &r.CardType
		w.Views = &r.Views
	}
	return json.Marshal(w)
}

// UnmarshalJSON accepts every optional field regardless of kind.
func (r *Request) UnmarshalJSON(data []byte) error {
	var w wireRequest
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*r = Request{Topic: w.Topic, Type: w.Type}
	if w.CardType != nil {
		r.CardType = *w.CardType
	}
	if w.Views != nil {
		r.Views = *w.Views
	}
	if w.BigBet != nil {
		r.BigBet = *w.BigBet
	}
	if w.Label != nil {
		r.Label = *w.Label
	}
	return nil
}

// Response is the body returned by the endpoint. A non-empty Error takes
// precedence over Content.
type Response struct {
	Content string `json:"content,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Failed reports whether the response carries an application-level error.
func (r Response) Failed() bool {
	return r.Error != ""
}

// Text returns the content, or NoContentFallback when it is empty.
func (r Response) Text() string {
	if r.Content == "" {
		return NoContentFallback
	}
	return r.Content
}

// busyLabel is shown on a button while its request is outstanding.
func busyLabel(kind Kind) string {
	switch kind {
	case KindStart:
		return "⏳ Starting..."
	case KindExplain:
		return "⏳ Explaining..."
	default:
		return "⏳ Generating..."
	}
}

// modalTitle builds the modal title for a kind.
func modalTitle(kind Kind, topic, label string) string {
	switch kind {
	case KindStart:
		return "🚀 Start It: " + topic
	case KindExplain:
		if label != "" {
			return "💡 " + label + ": " + topic
		}
		return "💡 " + topic
	default:
		return "✍️ " + topic
	}
}

// loadingMessage is shown under the spinner. The persona only appears here.
func loadingMessage(kind Kind, persona string) string {
	switch kind {
	case KindStart:
		return "Building a starter in " + persona + "'s voice..."
	case KindExplain:
		return "Working out why this fits " + persona + "..."
	default:
		return "Writing in " + persona + "'s voice..."
	}
}
