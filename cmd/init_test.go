package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/trueinfluence/writeit/internal/deck"
)

func TestInitCmd_WritesSampleDeck(t *testing.T) {
	dir := withConfig(t, map[string]any{})
	slugOverride = "nate"

	buf := new(bytes.Buffer)
	initCmd.SetOut(buf)
	defer initCmd.SetOut(nil)

	if err := initCmd.RunE(initCmd, nil); err != nil {
		t.Fatalf("init: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "deck.toml"))
	if err != nil {
		t.Fatalf("deck not written: %v", err)
	}
	if string(data) != deck.Sample {
		t.Error("expected the sample deck")
	}
	cfg, err := os.ReadFile(filepath.Join(dir, "config.json"))
	if err != nil || !strings.Contains(string(cfg), `"slug": "nate"`) {
		t.Errorf("config should be saved with the slug, got %s (%v)", cfg, err)
	}
}

func TestInitCmd_KeepsExistingDeck(t *testing.T) {
	dir := withConfig(t, map[string]any{"slug": "nate"})
	path := filepath.Join(dir, "deck.toml")
	if err := os.WriteFile(path, []byte("[[cards]]\ntopic = \"Mine\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	buf := new(bytes.Buffer)
	initCmd.SetOut(buf)
	defer initCmd.SetOut(nil)

	if err := initCmd.RunE(initCmd, nil); err != nil {
		t.Fatalf("init: %v", err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "Mine") {
		t.Error("existing deck must not be overwritten")
	}
	if !strings.Contains(buf.String(), "already exists") {
		t.Errorf("unexpected output %q", buf.String())
	}

	initForce = true
	defer func() { initForce = false }()
	if err := initCmd.RunE(initCmd, nil); err != nil {
		t.Fatalf("init --force: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != deck.Sample {
		t.Error("--force should overwrite the deck")
	}
}
