// Package clipboard writes generated text to the system clipboard.
package clipboard

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.design/x/clipboard"

	"github.com/trueinfluence/writeit/internal/logger"
)

var (
	mu          sync.Mutex
	initialized bool
	replaced    <-chan struct{} // signalled when the last write is overwritten

	// initFn and writeFn are replaced in tests.
	initFn  = clipboard.Init
	writeFn = func(text string) <-chan struct{} {
		return clipboard.Write(clipboard.FmtText, []byte(text))
	}

	// ownsSelection is true where the writing process serves the clipboard
	// (X11, Wayland) and the text is lost when it exits.
	ownsSelection = runtime.GOOS != "darwin" && runtime.GOOS != "windows"
)

// Init initializes the clipboard. Must be called before other functions.
// This is safe to call multiple times.
func Init() error {
	mu.Lock()
	defer mu.Unlock()
	return initLocked()
}

func initLocked() error {
	if initialized {
		return nil
	}

	log := logger.ComponentLogger("Clipboard")
	if err := initFn(); err != nil {
		log.Warn("failed to initialize", "error", err)
		return fmt.Errorf("failed to initialize clipboard: %w", err)
	}

	initialized = true
	log.Debug("initialized")
	return nil
}

// WriteText writes text to the clipboard.
func WriteText(text string) error {
	mu.Lock()
	defer mu.Unlock()

	if err := initLocked(); err != nil {
		return err
	}

	replaced = writeFn(text)
	logger.ComponentLogger("Clipboard").Debug("wrote text", "bytes", len(text))
	return nil
}

// MustHold reports whether a short-lived process has to call Hold to keep
// its copied text available.
func MustHold() bool {
	return ownsSelection
}

// Hold blocks until the text from the last WriteText is replaced by another
// program or ctx is done. It returns at once where the clipboard outlives
// the process, or when nothing was written.
func Hold(ctx context.Context) error {
	mu.Lock()
	ch := replaced
	mu.Unlock()

	if !ownsSelection || ch == nil {
		return nil
	}
	select {
	case <-ch:
		logger.ComponentLogger("Clipboard").Debug("selection taken by another program")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// System is the process clipboard as a value, for callers that take an
// interface with a WriteText method.
type System struct{}

// WriteText writes text to the system clipboard.
func (System) WriteText(text string) error {
	return WriteText(text)
}
