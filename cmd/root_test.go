package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/trueinfluence/writeit/internal/config"
	"github.com/trueinfluence/writeit/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Reset()
	logger.Init(os.DevNull)

	code := m.Run()

	logger.Reset()
	os.Exit(code)
}

// withConfig writes cfg as the config file for the test and points the
// --config flag at it.
func withConfig(t *testing.T, cfg map[string]any) string {
	t.Helper()
	t.Setenv(config.EnvServerURL, "")
	t.Setenv(config.EnvSlug, "")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	origPath, origSlug := configPath, slugOverride
	origWrite, origStart, origExplain := writeFlags, startFlags, explainFlags
	t.Cleanup(func() {
		configPath, slugOverride = origPath, origSlug
		writeFlags, startFlags, explainFlags = origWrite, origStart, origExplain
	})
	configPath = path
	slugOverride = ""
	return dir
}

func TestDebugFlagDefaultTrue(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("debug")
	if flag == nil {
		t.Fatal("--debug flag not found")
	}
	if flag.DefValue != "true" {
		t.Errorf("--debug default = %q, want %q", flag.DefValue, "true")
	}
}

func TestQuietFlagExists(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("quiet")
	if flag == nil {
		t.Fatal("--quiet flag not found")
	}
	if flag.DefValue != "false" {
		t.Errorf("--quiet default = %q, want %q", flag.DefValue, "false")
	}
	if flag.Shorthand != "q" {
		t.Errorf("--quiet shorthand = %q, want %q", flag.Shorthand, "q")
	}
}

func TestInitConfig_QuietOverridesDebug(t *testing.T) {
	origDebug, origQuiet := debugMode, quietMode
	defer func() { debugMode, quietMode = origDebug, origQuiet }()

	debugMode = true
	quietMode = true

	// Should not panic - quiet should take precedence
	initConfig()
}

func TestSubcommandsRegistered(t *testing.T) {
	for _, name := range []string{"serve", "write", "start", "explain", "init", "clean"} {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestVersionTemplate(t *testing.T) {
	origVersion, origCommit, origDate := version, commit, date
	defer SetVersionInfo(origVersion, origCommit, origDate)

	SetVersionInfo("1.2.0", "none", "unknown")
	if got := versionTemplate(); got != "writeit 1.2.0\n" {
		t.Errorf("versionTemplate() = %q", got)
	}

	SetVersionInfo("1.2.0", "abc123", "2026-10-01")
	if got := versionTemplate(); !strings.Contains(got, "commit: abc123") {
		t.Errorf("versionTemplate() = %q, want commit line", got)
	}
}

func TestLoadConfig_SlugOverride(t *testing.T) {
	withConfig(t, map[string]any{"slug": "nate"})
	slugOverride = "jordan"

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.GetSlug() != "jordan" {
		t.Errorf("slug = %q, want override", cfg.GetSlug())
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	withConfig(t, map[string]any{"server_url": "localhost"})

	if _, err := loadConfig(); err == nil {
		t.Error("expected error for a relative server_url")
	}
}

func TestLoadDeck_Missing(t *testing.T) {
	d, err := loadDeck(filepath.Join(t.TempDir(), "deck.toml"))
	if err != nil || d != nil {
		t.Errorf("missing deck should yield nil, nil; got %v, %v", d, err)
	}
}
