package modals

import (
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"

	"github.com/trueinfluence/writeit/internal/action"
	"github.com/trueinfluence/writeit/internal/keys"
)

// =============================================================================
// CustomActionState - dispatch an action for a topic that is not in the deck
// =============================================================================

// CustomActionSubmittedMsg is sent when Enter on the last field completes
// the form.
type CustomActionSubmittedMsg struct{}

type CustomActionState struct {
	// Bound form values
	kind     string
	topic    string
	cardType string
	label    string

	form        *huh.Form
	initialized bool
}

func (*CustomActionState) modalState() {}

func (s *CustomActionState) Title() string { return "New Action" }

func (s *CustomActionState) Help() string {
	return "Enter: next field, runs on the last  Esc: cancel"
}

func (s *CustomActionState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.form.View(), help)
}

func (s *CustomActionState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, &s.initialized, msg, keys.Escape)
	return s, cmd
}

// Kind returns the selected action kind.
func (s *CustomActionState) Kind() (action.Kind, error) {
	return action.ParseKind(s.kind)
}

// Button builds a button carrying the form values as attributes.
func (s *CustomActionState) Button() *action.Button {
	attrs := map[string]string{action.AttrTopic: strings.TrimSpace(s.topic)}
	if action.Kind(s.kind) == action.KindExplain {
		attrs[action.AttrLabel] = strings.TrimSpace(s.label)
	} else {
		attrs[action.AttrCardType] = strings.TrimSpace(s.cardType)
	}
	return action.NewButton(s.kind, attrs)
}

// Validate reports a missing topic or unknown kind before dispatch.
func (s *CustomActionState) Validate() error {
	if _, err := s.Kind(); err != nil {
		return err
	}
	return validateTopic(s.topic)
}

func validateTopic(topic string) error {
	if strings.TrimSpace(topic) == "" {
		return errors.New("topic is required")
	}
	return nil
}

// NewCustomActionState creates the form, preselecting kind and prefilling topic.
func NewCustomActionState(kind action.Kind, topic string) *CustomActionState {
	if !kind.Valid() {
		kind = action.KindWrite
	}
	s := &CustomActionState{kind: string(kind), topic: topic, label: "Why it works"}

	kindOptions := make([]huh.Option[string], len(action.Kinds))
	for i, k := range action.Kinds {
		kindOptions[i] = huh.NewOption(string(k), string(k))
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Action").
				Options(kindOptions...).
				Value(&s.kind),
			huh.NewInput().
				Title("Topic").
				Placeholder("Launch Plan").
				CharLimit(ModalInputCharLimit).
				Validate(validateTopic).
				Value(&s.topic),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Card type").
				Placeholder("idea").
				CharLimit(ModalInputCharLimit).
				Value(&s.cardType),
		).WithHideFunc(func() bool { return s.kind == string(action.KindExplain) }),
		huh.NewGroup(
			huh.NewInput().
				Title("Label").
				CharLimit(ModalInputCharLimit).
				Value(&s.label),
		).WithHideFunc(func() bool { return s.kind != string(action.KindExplain) }),
	).WithTheme(ModalTheme()).
		WithShowHelp(false).
		WithWidth(ModalInputWidth).
		WithLayout(huh.LayoutStack)

	s.form.SubmitCmd = func() tea.Msg { return CustomActionSubmittedMsg{} }
	s.form.CancelCmd = nil

	s.initialized = true
	initHuhForm(s.form)
	return s
}
