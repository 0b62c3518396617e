package action

import (
	"context"
	"log/slog"
	"sync"

	werrors "github.com/trueinfluence/writeit/internal/errors"
	"github.com/trueinfluence/writeit/internal/logger"
)

// Clipboard receives copied text.
type Clipboard interface {
	WriteText(text string) error
}

// Settings are the process-wide values the controller embeds in every action.
type Settings struct {
	Slug          string // endpoint identifier
	Persona       string // voice label for loading messages
	DefaultBigBet string // used when an explain button has no bigbet attribute

	// LatestOnly drops results of actions superseded by a newer one.
	LatestOnly bool
}

// Command is one dispatched action, created by Begin and consumed by Settle.
type Command struct {
	Kind       Kind
	Request    Request
	Button     *Button
	Title      string
	Generation uint64
}

// Result is the outcome of the network step.
type Result struct {
	Response Response
	Err      error
}

// Controller owns the shared modal and the last generated content.
// Methods are safe for concurrent use; the terminal UI calls them from its
// event loop and runs Execute in a command goroutine.
type Controller struct {
	sender   Sender
	settings Settings
	log      *slog.Logger

	mu          sync.Mutex
	modal       Render
	visible     bool
	lastContent string
	generation  uint64
}

// NewController creates a controller that sends requests through sender.
func NewController(sender Sender, settings Settings) *Controller {
	if settings.Persona == "" {
		settings.Persona = settings.Slug
	}
	return &Controller{
		sender:   sender,
		settings: settings,
		log:      logger.ComponentLogger("Controller"),
	}
}

// Settings returns the controller's settings.
func (c *Controller) Settings() Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

// SetDefaultBigBet replaces the fallback big bet, e.g. after a deck reload.
func (c *Controller) SetDefaultBigBet(bigBet string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settings.DefaultBigBet = bigBet
}

// Modal returns the current modal render instruction. A closed modal
// reports PhaseHidden but keeps its last title and content.
func (c *Controller) Modal() Render {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current()
}

func (c *Controller) current() Render {
	r := c.modal
	if !c.visible {
		r.Phase = PhaseHidden
	}
	return r
}

// LastContent returns the most recently rendered successful content.
func (c *Controller) LastContent() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastContent
}

// buildRequest reads the action parameters from the button's attributes.
func (c *Controller) buildRequest(kind Kind, btn *Button) Request {
	req := Request{Topic: btn.Attr(AttrTopic), Type: kind}
	if kind == KindExplain {
		req.BigBet = btn.Attr(AttrBigBet)
		if req.BigBet == "" {
			req.BigBet = c.settings.DefaultBigBet
		}
		req.Label = btn.Attr(AttrLabel)
	} else {
		req.CardType = btn.Attr(AttrCardType)
		req.Views = btn.Attr(AttrViews)
	}
	return req
}

// Begin starts an action: it disables the button, shows its busy label and
// opens the modal in the loading state. Nothing is mutated when the button
// has no topic or is already busy.
func (c *Controller) Begin(kind Kind, btn *Button) (*Command, Render, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	topic := btn.Attr(AttrTopic)
	if topic == "" {
		return nil, c.current(), werrors.MissingTopic(string(kind))
	}
	if btn.Disabled {
		return nil, c.current(), werrors.ButtonBusy(topic)
	}

	req := c.buildRequest(kind, btn)

	btn.Disabled = true
	btn.hold(busyLabel(kind))

	c.generation++
	cmd := &Command{
		Kind:       kind,
		Request:    req,
		Button:     btn,
		Title:      modalTitle(kind, topic, req.Label),
		Generation: c.generation,
	}

	c.modal = Render{
		Phase:   PhaseLoading,
		Title:   cmd.Title,
		Message: loadingMessage(kind, c.settings.Persona),
	}
	c.visible = true

	c.log.Debug("action started", "kind", string(kind), "topic", topic, "generation", cmd.Generation)
	return cmd, c.modal, nil
}

// Execute performs the network call for cmd. It does not touch controller
// state, so it may run on any goroutine.
func (c *Controller) Execute(ctx context.Context, cmd *Command) Result {
	resp, err := c.sender.Send(ctx, c.settings.Slug, cmd.Request)
	return Result{Response: resp, Err: err}
}

// Settle applies a result. The button is always re-enabled with its idle
// label. The modal and last content change only if cmd is still the latest
// action, or if stale results are allowed. Settling never reopens a closed
// modal; the returned Render describes the outcome either way.
func (c *Controller) Settle(cmd *Command, res Result) Render {
	c.mu.Lock()
	defer c.mu.Unlock()

	cmd.Button.release()

	var r Render
	if res.Err == nil && res.Response.Failed() {
		res.Err = werrors.RemoteFailure(res.Response.Error)
	}
	if res.Err != nil {
		r = Render{Phase: PhaseError, Title: cmd.Title, Content: errorText(werrors.Detail(res.Err))}
	} else {
		r = Render{Phase: PhaseSuccess, Title: cmd.Title, Content: res.Response.Text()}
	}

	if c.settings.LatestOnly && cmd.Generation != c.generation {
		c.log.Info("discarding superseded result",
			"kind", string(cmd.Kind), "generation", cmd.Generation, "latest", c.generation)
		r.Stale = true
		return r
	}

	if r.Phase == PhaseSuccess {
		c.lastContent = r.Content
		c.log.Debug("action succeeded", "kind", string(cmd.Kind), "bytes", len(r.Content))
	} else {
		c.log.Warn("action failed", "kind", string(cmd.Kind), "error", res.Err)
	}
	c.modal = r
	return r
}

// Submit runs Begin, Execute and Settle in sequence.
func (c *Controller) Submit(ctx context.Context, kind Kind, btn *Button) (Render, error) {
	cmd, r, err := c.Begin(kind, btn)
	if err != nil {
		return r, err
	}
	return c.Settle(cmd, c.Execute(ctx, cmd)), nil
}

// SubmitWrite dispatches a write action for btn.
func (c *Controller) SubmitWrite(ctx context.Context, btn *Button) (Render, error) {
	return c.Submit(ctx, KindWrite, btn)
}

// SubmitStart dispatches a start action for btn.
func (c *Controller) SubmitStart(ctx context.Context, btn *Button) (Render, error) {
	return c.Submit(ctx, KindStart, btn)
}

// SubmitExplain dispatches an explain action for btn.
func (c *Controller) SubmitExplain(ctx context.Context, btn *Button) (Render, error) {
	return c.Submit(ctx, KindExplain, btn)
}

// CopyLastContent writes the last content to clip and, on success, switches
// btn to the confirmation label. Call RestoreButton after CopyConfirmDuration.
// A failed write leaves the button untouched.
func (c *Controller) CopyLastContent(clip Clipboard, btn *Button) error {
	content := c.LastContent()
	if err := clip.WriteText(content); err != nil {
		c.log.Warn("clipboard write failed", "error", err)
		return err
	}

	c.mu.Lock()
	btn.hold(CopiedLabel)
	c.mu.Unlock()
	return nil
}

// RestoreButton reverts a temporary label set by CopyLastContent.
func (c *Controller) RestoreButton(btn *Button) {
	c.mu.Lock()
	defer c.mu.Unlock()
	btn.release()
}

// CloseOverlay hides the modal. Outstanding requests still settle.
func (c *Controller) CloseOverlay() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.visible = false
}
