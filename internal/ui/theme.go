// Package ui provides theme management for the application.
// Themes define the color palette used throughout the UI.
package ui

import (
	"charm.land/lipgloss/v2"

	"github.com/trueinfluence/writeit/internal/markdown"
	"github.com/trueinfluence/writeit/internal/ui/modals"
)

// Theme is a named color palette. Empty optional colors fall back to Primary.
type Theme struct {
	Name string

	Primary   string // focus, headers, modal border
	Secondary string // keys, badges, loading text

	Bg         string
	BgSelected string // optional

	Text        string
	TextMuted   string
	TextInverse string

	Warning string
	Error   string
	Success string

	Border      string
	BorderFocus string // optional

	// Markdown is the glamour style for generated content.
	Markdown string
}

func orPrimary(color, primary string) string {
	if color == "" {
		return primary
	}
	return color
}

// GetBgSelected returns the background of the selected card.
func (t Theme) GetBgSelected() string { return orPrimary(t.BgSelected, t.Primary) }

// GetBorderFocus returns the border color of the focused panel.
func (t Theme) GetBorderFocus() string { return orPrimary(t.BorderFocus, t.Primary) }

// ThemeName is a type for theme identifiers
type ThemeName string

// Available theme names
const (
	ThemeDarkPurple ThemeName = "dark-purple"
	ThemeNord       ThemeName = "nord"
	ThemeDracula    ThemeName = "dracula"
	ThemeTokyoNight ThemeName = "tokyo-night"
	ThemeLight      ThemeName = "light"
)

// DefaultTheme is the default theme name
const DefaultTheme = ThemeDarkPurple

// BuiltinThemes contains all built-in themes
var BuiltinThemes = map[ThemeName]Theme{
	ThemeDarkPurple: {
		Name:        "Dark Purple",
		Primary:     "#7C3AED",
		Secondary:   "#06B6D4",
		Bg:          "#1F2937",
		Text:        "#F9FAFB",
		TextMuted:   "#9CA3AF",
		TextInverse: "#1F2937",
		Warning:     "#F59E0B",
		Error:       "#EF4444",
		Success:     "#10B981",
		Border:      "#374151",
		Markdown:    markdown.StyleDark,
	},
	ThemeNord: {
		Name:        "Nord",
		Primary:     "#88C0D0",
		Secondary:   "#81A1C1",
		Bg:          "#2E3440",
		Text:        "#ECEFF4",
		TextMuted:   "#D8DEE9",
		TextInverse: "#2E3440",
		Warning:     "#EBCB8B",
		Error:       "#BF616A",
		Success:     "#A3BE8C",
		Border:      "#4C566A",
		Markdown:    markdown.StyleDark,
	},
	ThemeDracula: {
		Name:        "Dracula",
		Primary:     "#BD93F9",
		Secondary:   "#8BE9FD",
		Bg:          "#282A36",
		Text:        "#F8F8F2",
		TextMuted:   "#6272A4",
		TextInverse: "#282A36",
		Warning:     "#FFB86C",
		Error:       "#FF5555",
		Success:     "#50FA7B",
		Border:      "#44475A",
		Markdown:    markdown.StyleDark,
	},
	ThemeTokyoNight: {
		Name:        "Tokyo Night",
		Primary:     "#7AA2F7",
		Secondary:   "#BB9AF7",
		Bg:          "#1A1B26",
		Text:        "#C0CAF5",
		TextMuted:   "#565F89",
		TextInverse: "#1A1B26",
		Warning:     "#E0AF68",
		Error:       "#F7768E",
		Success:     "#9ECE6A",
		Border:      "#3B4261",
		Markdown:    markdown.StyleDark,
	},
	ThemeLight: {
		Name:        "Light",
		Primary:     "#6366F1",
		Secondary:   "#0891B2",
		Bg:          "#FFFFFF",
		BgSelected:  "#E0E7FF",
		Text:        "#1F2937",
		TextMuted:   "#6B7280",
		TextInverse: "#FFFFFF",
		Warning:     "#D97706",
		Error:       "#DC2626",
		Success:     "#16A34A",
		Border:      "#D1D5DB",
		BorderFocus: "#6366F1",
		Markdown:    markdown.StyleLight,
	},
}

var themeOrder = []ThemeName{ThemeDarkPurple, ThemeNord, ThemeDracula, ThemeTokyoNight, ThemeLight}

// ThemeNames returns the built-in theme names in picker order.
func ThemeNames() []ThemeName {
	return append([]ThemeName(nil), themeOrder...)
}

// ThemeOptions lists the themes for the picker modal.
func ThemeOptions() []modals.ThemeOption {
	opts := make([]modals.ThemeOption, 0, len(themeOrder))
	for _, name := range themeOrder {
		opts = append(opts, modals.ThemeOption{Key: string(name), Name: BuiltinThemes[name].Name})
	}
	return opts
}

// GetTheme looks up a theme, falling back to DefaultTheme.
func GetTheme(name ThemeName) Theme {
	if theme, ok := BuiltinThemes[name]; ok {
		return theme
	}
	return BuiltinThemes[DefaultTheme]
}

var (
	currentName  = DefaultTheme
	currentTheme = BuiltinThemes[DefaultTheme]
)

func CurrentTheme() Theme { return currentTheme }

func CurrentThemeName() ThemeName { return currentName }

// SetTheme activates a theme and rebuilds every style derived from it.
// Unknown names select DefaultTheme.
func SetTheme(name ThemeName) {
	if _, ok := BuiltinThemes[name]; !ok {
		name = DefaultTheme
	}
	currentName, currentTheme = name, BuiltinThemes[name]
	regenerateStyles()
	RefreshModalStyles()
}

// SetThemeByName is SetTheme for a name read from config.
func SetThemeByName(name string) {
	SetTheme(ThemeName(name))
}

// RefreshModalStyles hands the current styles to the modals package.
func RefreshModalStyles() {
	t := currentTheme
	modals.SetStyles(
		ModalTitleStyle, ModalHelpStyle, CardItemStyle, CardSelectedStyle, StatusErrorStyle, StatusLoadingStyle,
		modals.Palette{
			Primary:     ColorPrimary,
			Secondary:   ColorSecondary,
			Text:        ColorText,
			TextMuted:   ColorTextMuted,
			TextInverse: ColorTextInverse,
			Warning:     ColorWarning,
			Success:     ColorSuccess,
		},
		t.Markdown,
		ModalInputWidth, ModalInputCharLimit, ModalWidth, ModalWidthWide,
	)
	modals.HelpModalMaxVisible = HelpModalMaxVisible
}

func regenerateStyles() {
	t := currentTheme

	ColorPrimary = lipgloss.Color(t.Primary)
	ColorSecondary = lipgloss.Color(t.Secondary)
	ColorBorder = lipgloss.Color(t.Border)
	ColorBorderFocus = lipgloss.Color(t.GetBorderFocus())
	ColorBg = lipgloss.Color(t.Bg)
	ColorText = lipgloss.Color(t.Text)
	ColorTextMuted = lipgloss.Color(t.TextMuted)
	ColorTextInverse = lipgloss.Color(t.TextInverse)
	ColorWarning = lipgloss.Color(t.Warning)
	ColorError = lipgloss.Color(t.Error)
	ColorSuccess = lipgloss.Color(t.Success)

	// Footer
	FooterStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary)

	FooterDescStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	// Panels
	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)

	PanelFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus)

	PanelTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		Padding(0, 1)

	// Cards
	CardItemStyle = lipgloss.NewStyle().
		Padding(0, 1)

	CardSelectedStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(t.GetBgSelected())).
		Foreground(lipgloss.Color(t.Text)).
		Bold(true).
		Padding(0, 1)

	CardBadgeStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Italic(true)

	CardButtonStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	CardBusyStyle = lipgloss.NewStyle().
		Foreground(ColorWarning).
		Italic(true)

	// Modals
	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2).
		Width(ModalWidth)

	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		MarginBottom(1)

	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true).
		MarginTop(1)

	// Status
	StatusLoadingStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Italic(true)

	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)

	// Flash
	FlashErrorStyle = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	FlashWarningStyle = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	FlashInfoStyle = lipgloss.NewStyle().Foreground(ColorSecondary)
	FlashSuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
}
