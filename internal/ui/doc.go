// Package ui provides the user interface components for the writeit TUI.
//
// # Overview
//
// The ui package renders the deck browser using Bubble Tea and Lipgloss.
// Components are plain structs with SetSize/View methods; the app package
// owns the event loop and decides which component receives input.
//
// # Layout System
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header (1 line)                                     │
//	├─────────────────┬───────────────────────────────────┤
//	│                 │                                   │
//	│   Cards         │         Preview                   │
//	│   (1/3 width)   │         (2/3 width)               │
//	│                 │                                   │
//	├─────────────────┴───────────────────────────────────┤
//	│ Footer (1 line)                                     │
//	└─────────────────────────────────────────────────────┘
//
// # Components
//
// ViewContext: Singleton that manages centralized layout calculations.
//
// Header: Application name, creator slug and deck name on a gradient.
//
// Footer: Context-aware key bindings, replaced by a flash message when one
// is active.
//
// CardList: The deck's cards with their type badge, view count and the
// labels of their action buttons. Busy buttons show their busy label.
//
// Preview: The last successfully generated content, rendered as markdown.
//
// Modal: Container for a modals.ModalState, centered over the layout.
// The shared content modal is modals.WriterState.
//
// # Styles
//
// Styles live in styles.go and are regenerated from the active Theme by
// SetTheme. RefreshModalStyles pushes the current styles down to the
// modals package.
package ui
