package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/trueinfluence/writeit/internal/action"
	"github.com/trueinfluence/writeit/internal/app"
	"github.com/trueinfluence/writeit/internal/clipboard"
	"github.com/trueinfluence/writeit/internal/config"
	"github.com/trueinfluence/writeit/internal/deck"
	"github.com/trueinfluence/writeit/internal/logger"
	"github.com/trueinfluence/writeit/internal/notification"
)

var (
	debugMode             bool
	quietMode             bool
	configPath            string
	slugOverride          string
	deckPath              string
	noWatch               bool
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "writeit",
	Short: "Write It, Start It and Explain More from the terminal",
	Long: `writeit shows a deck of content ideas and turns each card into a script,
a starter framework or a strategic explanation in your voice.

Generation runs on a writeit server (see 'writeit serve'). Results open in a
modal that can be closed while the request is still running; the last result
can be copied to the clipboard at any time.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", true, "Enable debug logging (on by default)")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.writeit/config.json)")
	rootCmd.PersistentFlags().StringVar(&slugOverride, "slug", "", "Creator slug (overrides config and "+config.EnvSlug+")")
	rootCmd.Flags().StringVar(&deckPath, "deck", "", "Deck file (default deck.toml next to the config file)")
	rootCmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not reload the deck when the file changes")
}

func initConfig() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	// Set version dynamically
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("writeit %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("writeit %s\n", version)
}

// signalContext returns the command context, cancelled on SIGINT or SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFrom(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	if slugOverride != "" {
		cfg.SetSlug(slugOverride)
	}
	return cfg, nil
}

// newController builds the action controller for cfg.
func newController(cfg *config.Config, bigBet string) *action.Controller {
	return action.NewController(action.NewClient(cfg.GetServerURL()), action.Settings{
		Slug:          cfg.GetSlug(),
		Persona:       cfg.GetPersona(),
		DefaultBigBet: bigBet,
		LatestOnly:    cfg.LatestOnly(),
	})
}

// loadDeck reads the deck at path. A missing file is not an error.
func loadDeck(path string) (*deck.Deck, error) {
	if !deck.Exists(path) {
		logger.ComponentLogger("CLI").Info("no deck file", "path", path)
		return nil, nil
	}
	return deck.Load(path)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.RequireSlug(); err != nil {
		return err
	}

	// Ensure logger is closed on exit
	defer logger.Close()

	path := deckPath
	if path == "" {
		path = cfg.GetDeckPath()
	}
	d, err := loadDeck(path)
	if err != nil {
		return fmt.Errorf("error loading deck: %w\n\nRun 'writeit init' to create a sample deck", err)
	}

	var clip action.Clipboard
	if err := clipboard.Init(); err != nil {
		logger.ComponentLogger("CLI").Warn("clipboard unavailable", "error", err)
	} else {
		clip = clipboard.System{}
	}

	// The model applies the deck's big bet when it takes the deck
	m := app.New(app.Options{
		Config:     cfg,
		Controller: newController(cfg, cfg.GetBigBet()),
		Deck:       d,
		Clipboard:  clip,
		Notifier:   notification.Desktop{},
		WatchDeck:  !noWatch,
		Version:    version,
	})
	defer m.Close()
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
