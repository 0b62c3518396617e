package action

import (
	"html"
	"strings"
)

// Phase is the visible state of the modal.
type Phase int

const (
	PhaseHidden Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseError:
		return "error"
	default:
		return "hidden"
	}
}

// Render is a render instruction for the modal. Front ends draw it; the
// controller never touches a screen.
type Render struct {
	Phase   Phase
	Title   string
	Message string // loading message, only in PhaseLoading
	Content string // raw content in PhaseSuccess, "Error: ..." in PhaseError

	// Stale is set on the Render returned by Settle when the result was
	// superseded by a newer action and therefore not applied to the modal.
	Stale bool
}

// Visible reports whether the modal is shown.
func (r Render) Visible() bool {
	return r.Phase != PhaseHidden
}

// Body returns the content with every newline replaced by marker.
func (r Render) Body(marker string) string {
	return strings.ReplaceAll(r.Content, "\n", marker)
}

// HTML returns the modal body markup used by web front ends.
func (r Render) HTML() string {
	switch r.Phase {
	case PhaseLoading:
		return `<div class="wm-loading"><div class="spinner"></div><div>` + html.EscapeString(r.Message) + `</div></div>`
	case PhaseSuccess:
		escaped := Render{Content: html.EscapeString(r.Content)}
		return `<div class="wm-content">` + escaped.Body("<br>") + `</div>`
	case PhaseError:
		return `<div class="wm-error" style="color:var(--red)">` + html.EscapeString(r.Content) + `</div>`
	default:
		return ""
	}
}

// errorText formats a failure message for the modal.
func errorText(detail string) string {
	return "Error: " + detail
}
