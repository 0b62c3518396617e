package modals

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Style variables - these will be set by the parent ui package via SetStyles
var (
	ModalTitleStyle    lipgloss.Style
	ModalHelpStyle     lipgloss.Style
	ListItemStyle      lipgloss.Style
	ListSelectedStyle  lipgloss.Style
	StatusErrorStyle   lipgloss.Style
	StatusLoadingStyle lipgloss.Style

	ColorPrimary     color.Color
	ColorSecondary   color.Color
	ColorText        color.Color
	ColorTextMuted   color.Color
	ColorTextInverse color.Color
	ColorWarning     color.Color
	ColorSuccess     color.Color

	// MarkdownStyle is the glamour style matching the active theme.
	MarkdownStyle string

	ModalInputWidth     int
	ModalInputCharLimit int
	ModalWidth          int
	ModalWidthWide      int
	HelpModalMaxVisible int
)

// Palette groups the colors handed down from the ui package.
type Palette struct {
	Primary, Secondary, Text, TextMuted, TextInverse, Warning, Success color.Color
}

// SetStyles sets the style variables from the parent ui package.
// This must be called before rendering any modals.
func SetStyles(
	modalTitle, modalHelp, listItem, listSelected, statusError, statusLoading lipgloss.Style,
	p Palette, markdownStyle string,
	inputWidth, inputCharLimit, modalWidth, modalWidthWide int,
) {
	ModalTitleStyle = modalTitle
	ModalHelpStyle = modalHelp
	ListItemStyle = listItem
	ListSelectedStyle = listSelected
	StatusErrorStyle = statusError
	StatusLoadingStyle = statusLoading

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorText = p.Text
	ColorTextMuted = p.TextMuted
	ColorTextInverse = p.TextInverse
	ColorWarning = p.Warning
	ColorSuccess = p.Success

	MarkdownStyle = markdownStyle

	ModalInputWidth = inputWidth
	ModalInputCharLimit = inputCharLimit
	ModalWidth = modalWidth
	ModalWidthWide = modalWidthWide
}
