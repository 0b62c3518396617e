package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/trueinfluence/writeit/internal/deck"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config file and a sample deck",
	Long: `Writes the config file (with --slug, if given) and a sample deck.toml
next to it. An existing deck is left alone unless --force is set.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing deck file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config: %s\n", cfg.FilePath())

	path := cfg.GetDeckPath()
	if deck.Exists(path) && !initForce {
		fmt.Fprintf(out, "Deck %s already exists (use --force to overwrite)\n", path)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create deck directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(deck.Sample), 0o644); err != nil {
		return fmt.Errorf("failed to write deck: %w", err)
	}
	fmt.Fprintf(out, "Deck: %s\n", path)

	if cfg.GetSlug() == "" {
		fmt.Fprintln(out, "\nSet \"slug\" in the config file or pass --slug to start writing.")
	}
	return nil
}
