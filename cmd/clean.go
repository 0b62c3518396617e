package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/trueinfluence/writeit/internal/logger"
)

var skipConfirm bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove writeit log files",
	Long: `Removes the terminal UI and server log files.

It will prompt for confirmation before proceeding unless the --yes flag is used.`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	return runCleanWithReader(cmd.OutOrStdout(), os.Stdin)
}

// runCleanWithReader allows injecting a reader for testing
func runCleanWithReader(out io.Writer, input io.Reader) error {
	var existing []string
	for _, path := range logger.LogPaths {
		if _, err := os.Stat(path); err == nil {
			existing = append(existing, path)
		}
	}

	if len(existing) == 0 {
		fmt.Fprintln(out, "Nothing to clean.")
		return nil
	}

	fmt.Fprintln(out, "This will remove:")
	for _, path := range existing {
		fmt.Fprintf(out, "  - %s\n", path)
	}

	// Confirm unless --yes flag is set
	if !skipConfirm {
		if !confirm(out, input, "Continue?") {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	// The running process may still hold the debug log open
	logger.Close()
	removed, err := logger.ClearLogs()
	if err != nil {
		return fmt.Errorf("error clearing logs: %w", err)
	}
	fmt.Fprintf(out, "Removed %d log file(s).\n", removed)
	return nil
}

// confirm prompts the user for y/n confirmation
func confirm(out io.Writer, input io.Reader, prompt string) bool {
	reader := bufio.NewReader(input)
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
