package modals

import (
	"github.com/charmbracelet/x/ansi"
)

// TruncateString shortens s to maxWidth display cells with an ellipsis.
func TruncateString(s string, maxWidth int) string {
	return ansi.Truncate(s, maxWidth, "…")
}
