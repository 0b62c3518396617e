package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/trueinfluence/writeit/internal/action"
	"github.com/trueinfluence/writeit/internal/clipboard"
	"github.com/trueinfluence/writeit/internal/config"
)

// actionFlags are the per-command options of write, start and explain.
type actionFlags struct {
	cardType string
	views    string
	bigBet   string
	label    string
	html     bool
	copy     bool
	deck     string
}

var (
	writeFlags   actionFlags
	startFlags   actionFlags
	explainFlags actionFlags
)

var writeCmd = &cobra.Command{
	Use:   "write <topic>",
	Short: "Write a full script for a topic",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAction(cmd, action.KindWrite, strings.Join(args, " "), &writeFlags)
	},
}

var startCmd = &cobra.Command{
	Use:   "start <topic>",
	Short: "Get a starter framework for a topic",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAction(cmd, action.KindStart, strings.Join(args, " "), &startFlags)
	},
}

var explainCmd = &cobra.Command{
	Use:   "explain <topic>",
	Short: "Explain why a topic fits your big bet",
	Long: `Explains why a topic fits your big bet.

The big bet comes from --big-bet, then the deck's big_bet, then the config.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAction(cmd, action.KindExplain, strings.Join(args, " "), &explainFlags)
	},
}

func init() {
	for _, c := range []struct {
		cmd   *cobra.Command
		flags *actionFlags
	}{{writeCmd, &writeFlags}, {startCmd, &startFlags}, {explainCmd, &explainFlags}} {
		f := c.cmd.Flags()
		if c.cmd == explainCmd {
			f.StringVar(&c.flags.bigBet, "big-bet", "", "Big bet to explain against")
			f.StringVar(&c.flags.label, "label", "", "Heading for the explanation, e.g. \"Why it works\"")
			f.StringVar(&c.flags.deck, "deck", "", "Deck file whose big_bet is used as the default")
		} else {
			f.StringVar(&c.flags.cardType, "type", "", "Card type: rising, revival, evergreen, combo, passion or idea")
			f.StringVar(&c.flags.views, "views", "", "View count of the source content")
		}
		f.BoolVar(&c.flags.html, "html", false, "Print the HTML modal body instead of plain text")
		f.BoolVar(&c.flags.copy, "copy", false, "Copy the result to the clipboard")
		rootCmd.AddCommand(c.cmd)
	}
}

// buttonFor builds the button a card would carry for these flags.
func (f *actionFlags) buttonFor(kind action.Kind, topic string) *action.Button {
	attrs := map[string]string{action.AttrTopic: topic}
	if kind == action.KindExplain {
		attrs[action.AttrBigBet] = f.bigBet
		attrs[action.AttrLabel] = f.label
	} else {
		attrs[action.AttrCardType] = f.cardType
		attrs[action.AttrViews] = f.views
	}
	return action.NewButton(string(kind), attrs)
}

// defaultBigBet resolves the fallback big bet: the deck's, then the config's.
func defaultBigBet(cfg *config.Config, path string) (string, error) {
	if path == "" {
		path = cfg.GetDeckPath()
	}
	d, err := loadDeck(path)
	if err != nil {
		return "", fmt.Errorf("error loading deck: %w", err)
	}
	if d != nil && d.BigBet != "" {
		return d.BigBet, nil
	}
	return cfg.GetBigBet(), nil
}

func runAction(cmd *cobra.Command, kind action.Kind, topic string, flags *actionFlags) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.RequireSlug(); err != nil {
		return err
	}

	bigBet := cfg.GetBigBet()
	if kind == action.KindExplain && flags.bigBet == "" {
		if bigBet, err = defaultBigBet(cfg, flags.deck); err != nil {
			return err
		}
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	controller := newController(cfg, bigBet)
	r, err := controller.Submit(ctx, kind, flags.buttonFor(kind, topic))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flags.html {
		fmt.Fprintln(out, r.HTML())
	} else {
		fmt.Fprintf(out, "%s\n\n%s\n", r.Title, r.Content)
	}
	if r.Phase == action.PhaseError {
		return fmt.Errorf("%s failed", r.Title)
	}

	if flags.copy {
		return copyResult(ctx, cmd, controller)
	}
	return nil
}

// copyResult copies the controller's last content to the system clipboard.
// Where the clipboard dies with the process it stays running until another
// program takes the selection or ctx is cancelled.
func copyResult(ctx context.Context, cmd *cobra.Command, controller *action.Controller) error {
	if err := clipboard.Init(); err != nil {
		return err
	}
	btn := action.NewButton(action.CopyLabel, nil)
	if err := controller.CopyLastContent(clipboard.System{}, btn); err != nil {
		return fmt.Errorf("copy failed: %w", err)
	}
	errOut := cmd.ErrOrStderr()
	fmt.Fprintln(errOut, btn.Label)

	if !clipboard.MustHold() {
		return nil
	}
	fmt.Fprintln(errOut, "Keeping the clipboard until it is replaced. Press Ctrl+C to exit.")
	if err := clipboard.Hold(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
