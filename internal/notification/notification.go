// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"sync"

	"github.com/gen2brain/beeep"

	"github.com/trueinfluence/writeit/internal/logger"
)

// AppName is the notification title used by the helpers below.
const AppName = "writeit"

var (
	mu       sync.Mutex
	notifier = beeep.Notify
)

// SetNotifier replaces the function used to deliver notifications.
func SetNotifier(fn func(title, message string, icon any) error) {
	mu.Lock()
	defer mu.Unlock()
	notifier = fn
}

// ResetNotifier restores beeep as the notifier.
func ResetNotifier() {
	mu.Lock()
	defer mu.Unlock()
	notifier = beeep.Notify
}

// Send sends a desktop notification with the given title and message.
func Send(title, message string) error {
	mu.Lock()
	notify := notifier
	mu.Unlock()

	log := logger.ComponentLogger("Notification")
	log.Debug("sending notification", "title", title, "message", message)
	// Empty icon: beeep picks the platform default
	if err := notify(title, message, ""); err != nil {
		log.Warn("failed to send notification", "error", err)
		return err
	}
	return nil
}

// GenerationReady announces that a generation finished while the modal was
// closed or the terminal was in the background.
func GenerationReady(title string) error {
	return Send(AppName, title+" is ready")
}

// GenerationFailed announces a failed generation.
func GenerationFailed(title string) error {
	return Send(AppName, title+" failed")
}

// Desktop delivers generation notifications through Send.
type Desktop struct{}

func (Desktop) GenerationReady(title string) error { return GenerationReady(title) }

func (Desktop) GenerationFailed(title string) error { return GenerationFailed(title) }
