package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/trueinfluence/writeit/internal/action"
	"github.com/trueinfluence/writeit/internal/deck"
	"github.com/trueinfluence/writeit/internal/keys"
)

// cardLines is the rendered height of one card: topic, meta and buttons.
const cardLines = 3

// CardRow pairs a card with the buttons that dispatch its actions.
type CardRow struct {
	Card    deck.Card
	Buttons deck.Buttons
}

// CardList represents the left panel listing the deck's cards
type CardList struct {
	rows         []CardRow
	selectedIdx  int
	scrollOffset int
	width        int
	height       int
	focused      bool
}

// NewCardList creates an empty card list
func NewCardList() *CardList {
	return &CardList{focused: true}
}

// SetSize sets the panel dimensions
func (c *CardList) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.ensureVisible()
}

// SetFocused sets the focus state
func (c *CardList) SetFocused(focused bool) {
	c.focused = focused
}

// SetRows replaces the cards, keeping the selection on the same topic when
// it survives the reload.
func (c *CardList) SetRows(rows []CardRow) {
	var selectedTopic string
	if sel := c.Selected(); sel != nil {
		selectedTopic = sel.Card.Topic
	}

	c.rows = rows
	c.selectedIdx = 0
	for i, r := range rows {
		if r.Card.Topic == selectedTopic {
			c.selectedIdx = i
			break
		}
	}
	c.ensureVisible()
}

// Rows returns the current rows.
func (c *CardList) Rows() []CardRow {
	return c.rows
}

// Len returns the number of cards.
func (c *CardList) Len() int {
	return len(c.rows)
}

// Selected returns the highlighted row, or nil for an empty deck.
func (c *CardList) Selected() *CardRow {
	if c.selectedIdx < 0 || c.selectedIdx >= len(c.rows) {
		return nil
	}
	return &c.rows[c.selectedIdx]
}

// SelectedIndex returns the highlighted row index.
func (c *CardList) SelectedIndex() int {
	return c.selectedIdx
}

// Update handles navigation keys
func (c *CardList) Update(msg tea.Msg) (*CardList, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok || !c.focused {
		return c, nil
	}

	switch keyMsg.String() {
	case keys.Up, "k":
		if c.selectedIdx > 0 {
			c.selectedIdx--
		}
	case keys.Down, "j":
		if c.selectedIdx < len(c.rows)-1 {
			c.selectedIdx++
		}
	case keys.Home, "g":
		c.selectedIdx = 0
	case keys.End, "G":
		if len(c.rows) > 0 {
			c.selectedIdx = len(c.rows) - 1
		}
	}
	c.ensureVisible()
	return c, nil
}

// visibleCount is how many cards fit in the panel.
func (c *CardList) visibleCount() int {
	inner := GetViewContext().InnerHeight(c.height) - TitleHeight
	n := inner / cardLines
	if n < 1 {
		n = 1
	}
	return n
}

func (c *CardList) ensureVisible() {
	visible := c.visibleCount()
	if c.selectedIdx < c.scrollOffset {
		c.scrollOffset = c.selectedIdx
	}
	if c.selectedIdx >= c.scrollOffset+visible {
		c.scrollOffset = c.selectedIdx - visible + 1
	}
	if c.scrollOffset < 0 {
		c.scrollOffset = 0
	}
}

// View renders the card list
func (c *CardList) View() string {
	vc := GetViewContext()

	style := PanelStyle
	if c.focused {
		style = PanelFocusedStyle
	}

	innerWidth := vc.InnerWidth(c.width)
	innerHeight := vc.InnerHeight(c.height)
	if innerWidth < 1 || innerHeight < 1 {
		return ""
	}

	title := PanelTitleStyle.Render("Cards")

	var content string
	if len(c.rows) == 0 {
		content = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			Render("No cards. Press n for a custom action.")
	} else {
		end := min(c.scrollOffset+c.visibleCount(), len(c.rows))
		var lines []string
		for i := c.scrollOffset; i < end; i++ {
			lines = append(lines, c.renderRow(c.rows[i], i == c.selectedIdx, innerWidth))
		}
		content = strings.Join(lines, "\n")
	}

	body := lipgloss.JoinVertical(lipgloss.Left, title, content)
	return style.Width(c.width).Height(c.height).Render(
		lipgloss.NewStyle().MaxHeight(innerHeight).Render(body),
	)
}

func (c *CardList) renderRow(r CardRow, selected bool, width int) string {
	// Padding(0, 1) takes two cells
	textWidth := width - 2

	prefix := "  "
	itemStyle := CardItemStyle
	if selected {
		prefix = "> "
		itemStyle = CardSelectedStyle
	}

	topic := r.Card.Topic
	if r.Card.Badge != "" {
		topic = r.Card.Badge + " " + topic
	}
	topicLine := ansi.Truncate(prefix+topic, textWidth, "…")

	meta := cardMeta(r.Card)
	metaLine := "  " + CardBadgeStyle.Render(ansi.Truncate(meta, textWidth-2, "…"))

	buttonLine := "  " + renderButtons(r.Buttons, textWidth-2)

	return lipgloss.JoinVertical(lipgloss.Left,
		itemStyle.Width(width).Render(topicLine),
		CardItemStyle.Render(metaLine),
		CardItemStyle.Render(buttonLine),
	)
}

// cardMeta is the "type · views" line under a topic.
func cardMeta(card deck.Card) string {
	var parts []string
	if card.Type != "" {
		parts = append(parts, card.Type)
	}
	if card.Views != "" {
		parts = append(parts, card.Views+" views")
	}
	if card.Note != "" {
		parts = append(parts, card.Note)
	}
	return strings.Join(parts, " · ")
}

// renderButtons lays out the three button labels, dropping trailing ones
// that do not fit.
func renderButtons(b deck.Buttons, width int) string {
	var out []string
	used := 0
	for _, btn := range []*action.Button{b.Write, b.Start, b.Explain} {
		if btn == nil {
			continue
		}
		label := "[" + btn.Label + "]"
		w := runewidth.StringWidth(label)
		if used > 0 {
			w++
		}
		if used+w > width {
			break
		}
		used += w
		if btn.Disabled {
			out = append(out, CardBusyStyle.Render(label))
		} else {
			out = append(out, CardButtonStyle.Render(label))
		}
	}
	return strings.Join(out, " ")
}
