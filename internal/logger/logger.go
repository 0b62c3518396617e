// Package logger writes structured logs to a file so they never interfere
// with the terminal UI. Components get their own *slog.Logger through
// ComponentLogger; the server tags request-scoped logs with WithRequest.
package logger

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// DefaultLogPath is the default log file for the terminal UI
const DefaultLogPath = "/tmp/writeit-debug.log"

// ServerLogPath is the default log file for `writeit serve`
const ServerLogPath = "/tmp/writeit-server.log"

// LogPaths are the files removed by ClearLogs.
var LogPaths = []string{DefaultLogPath, ServerLogPath}

var (
	mu    sync.Mutex
	level = new(slog.LevelVar)

	base   *slog.Logger // nil until the first Init or first use
	file   *os.File
	path   string
	closed bool
)

var discard = slog.New(slog.DiscardHandler)

// SetDebug switches between debug and info level.
func SetDebug(enabled bool) {
	if enabled {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}
}

// Init opens p for logging, replacing a file opened earlier. It is a no-op
// after Close or when p is already open.
func Init(p string) error {
	mu.Lock()
	defer mu.Unlock()

	if closed || (base != nil && path == p) {
		return nil
	}
	if file != nil {
		file.Close()
		file = nil
	}
	return openLocked(p)
}

func openLocked(p string) error {
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", p, err)
	}
	file, path = f, p
	base = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	base.Info("Logger initialized", "path", p)
	return nil
}

// current returns the active logger, opening DefaultLogPath on first use.
func current() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()

	if closed {
		return discard
	}
	if base == nil {
		if err := openLocked(DefaultLogPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			closed = true
			return discard
		}
	}
	return base
}

// Path returns the file the logger is writing to, or "" before initialization.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return path
}

// Close closes the log file. Later log calls are dropped.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if file != nil {
		file.Close()
		file = nil
	}
	base = nil
	closed = true
}

// Reset closes the log file and forgets all state so that Init may be
// called again. Used by tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()

	if file != nil {
		file.Close()
		file = nil
	}
	base = nil
	path = ""
	closed = false
	level.Set(slog.LevelInfo)
}

// ClearLogs removes the writeit log files and returns how many existed.
func ClearLogs() (int, error) {
	count := 0
	for _, p := range LogPaths {
		if err := os.Remove(p); err == nil {
			count++
		} else if !os.IsNotExist(err) {
			return count, err
		}
	}
	return count, nil
}

// ComponentLogger returns a slog.Logger with the component attribute pre-attached.
//
// Example:
//
//	log := logger.ComponentLogger("Dispatcher")
//	log.Info("request sent", "kind", kind, "topic", topic)
func ComponentLogger(component string) *slog.Logger {
	return current().With(slog.String("component", component))
}

// WithRequest returns a slog.Logger with the request ID pre-attached.
func WithRequest(requestID string) *slog.Logger {
	return current().With(slog.String("requestID", requestID))
}
