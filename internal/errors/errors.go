// Package errors defines the error type shared by writeit's packages.
// An Error records the failing operation and a Kind; Detail recovers the
// innermost message for display.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Op names the operation that failed, as "package.Function".
type Op string

// Kind is the failure category callers branch on.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindIO
	KindNetwork
	KindMalformed
	KindRemote
	KindConfig
	KindRateLimited
	KindGeneration
	KindBusy
)

var kindNames = [...]string{
	KindUnknown:     "unknown error",
	KindNotFound:    "not found",
	KindInvalid:     "invalid",
	KindIO:          "I/O error",
	KindNetwork:     "network error",
	KindMalformed:   "malformed response",
	KindRemote:      "remote error",
	KindConfig:      "configuration error",
	KindRateLimited: "rate limited",
	KindGeneration:  "generation error",
	KindBusy:        "busy",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindUnknown]
	}
	return kindNames[k]
}

// Error is a failure tagged with where it happened and what kind it is.
type Error struct {
	Op   Op
	Kind Kind
	Msg  string // optional, printed between Op and Err
	Err  error  // never nil when built with E
}

func (e *Error) Error() string {
	parts := make([]string, 0, 3)
	if e.Op != "" {
		parts = append(parts, string(e.Op))
	}
	if e.Msg != "" {
		parts = append(parts, e.Msg)
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *Error) Unwrap() error { return e.Err }

// E builds an *Error from any mix of Op, Kind, string and error arguments.
// A lone string becomes the wrapped error so that Detail can return it.
func E(args ...any) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Msg = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err, e.Msg = errors.New(e.Msg), ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Detail returns the innermost message of an error chain built with E, without
// the Op and Msg prefixes. This is the text shown to users.
func Detail(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Err == nil {
		return e.Msg
	}
	return Detail(e.Err)
}

// Action errors

func MissingTopic(kind string) error {
	return E(Op("action.Begin"), KindInvalid, fmt.Sprintf("%s action requires a topic", kind))
}

func ButtonBusy(topic string) error {
	return E(Op("action.Begin"), KindBusy, fmt.Sprintf("an action for %q is already running", topic))
}

func TransportFailed(url string, err error) error {
	return E(Op("action.Send"), KindNetwork, fmt.Sprintf("request to %s failed", url), err)
}

func MalformedResponse(status int, err error) error {
	return E(Op("action.Send"), KindMalformed, fmt.Sprintf("unreadable response (HTTP %d)", status), err)
}

func RemoteFailure(message string) error {
	return E(Op("action.Send"), KindRemote, errors.New(message))
}

// Config errors

func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

func ConfigSaveFailed(path string, err error) error {
	return E(Op("config.Save"), KindConfig, fmt.Sprintf("failed to save config to %s", path), err)
}

func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindInvalid, reason)
}

// Deck errors

func DeckLoadFailed(path string, err error) error {
	return E(Op("deck.Load"), KindIO, fmt.Sprintf("failed to load deck from %s", path), err)
}

// Server errors

func RateLimited(slug string) error {
	return E(Op("server.Write"), KindRateLimited, fmt.Sprintf("rate limit exceeded for %s", slug))
}

func GenerationFailed(slug string, err error) error {
	return E(Op("generate.Generate"), KindGeneration, fmt.Sprintf("generation failed for %s", slug), err)
}
