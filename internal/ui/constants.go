// Package ui provides constants for layout calculations and configuration.
package ui

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// CardsWidthRatio is the denominator for the card list width (1/3 of total width)
	CardsWidthRatio = 3

	// MinCardsWidth keeps badges and button labels readable on narrow terminals
	MinCardsWidth = 28

	// MinTerminalWidth and MinTerminalHeight clamp layout math
	MinTerminalWidth  = 40
	MinTerminalHeight = 10

	// TitleHeight is the height of panel titles
	TitleHeight = 1

	// DefaultWrapWidth is the default width for text wrapping when viewport width is unknown
	DefaultWrapWidth = 80
)

// Modal dimensions
const (
	// ModalWidth is the default width of modals
	ModalWidth = 60

	// ModalWidthWide is used by the content modal
	ModalWidthWide = 90

	// ModalInputCharLimit is the character limit for modal text inputs
	ModalInputCharLimit = 256

	// ModalInputWidth is the width of modal text inputs
	ModalInputWidth = 50

	// HelpModalMaxVisible is the number of rows shown in the help list
	HelpModalMaxVisible = 18
)
