package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
)

// recorder is a fake generation server.
type recorder struct {
	mu     sync.Mutex
	bodies []map[string]string
	paths  []string
	status int
	reply  string
}

func newRecorder(t *testing.T, status int, reply string) (*recorder, *httptest.Server) {
	t.Helper()
	rec := &recorder{status: status, reply: reply}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		rec.mu.Lock()
		rec.bodies = append(rec.bodies, body)
		rec.paths = append(rec.paths, r.URL.Path)
		rec.mu.Unlock()
		w.WriteHeader(rec.status)
		w.Write([]byte(rec.reply))
	}))
	t.Cleanup(srv.Close)
	return rec, srv
}

func runCommand(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	c.SetOut(buf)
	c.SetErr(buf)
	defer func() {
		c.SetOut(nil)
		c.SetErr(nil)
	}()
	err := c.RunE(c, args)
	return buf.String(), err
}

func TestWriteCmd(t *testing.T) {
	rec, srv := newRecorder(t, http.StatusOK, `{"content":"Step 1...\nStep 2..."}`)
	withConfig(t, map[string]any{"server_url": srv.URL, "slug": "nate"})
	writeFlags.cardType = "idea"

	out, err := runCommand(t, writeCmd, "Launch", "Plan")
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	if rec.paths[0] != "/api/write/nate" {
		t.Errorf("path = %q", rec.paths[0])
	}
	body := rec.bodies[0]
	if body["topic"] != "Launch Plan" || body["type"] != "write" || body["card_type"] != "idea" {
		t.Errorf("unexpected body %v", body)
	}
	if !strings.Contains(out, "✍️ Launch Plan") || !strings.Contains(out, "Step 1...\nStep 2...") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestStartCmd_HTML(t *testing.T) {
	_, srv := newRecorder(t, http.StatusOK, `{"content":"a <b>\nc"}`)
	withConfig(t, map[string]any{"server_url": srv.URL, "slug": "nate"})
	startFlags.html = true

	out, err := runCommand(t, startCmd, "Pricing")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if !strings.Contains(out, "a &lt;b&gt;<br>c") {
		t.Errorf("expected escaped HTML, got %q", out)
	}
}

func TestExplainCmd_DeckBigBet(t *testing.T) {
	rec, srv := newRecorder(t, http.StatusOK, `{"content":"Because."}`)
	dir := withConfig(t, map[string]any{"server_url": srv.URL, "slug": "nate", "big_bet": "config bet"})
	deckData := "big_bet = \"deck bet\"\n\n[[cards]]\ntopic = \"Pricing\"\n"
	if err := os.WriteFile(filepath.Join(dir, "deck.toml"), []byte(deckData), 0o644); err != nil {
		t.Fatal(err)
	}
	explainFlags.label = "Why it works"

	out, err := runCommand(t, explainCmd, "Pricing")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	body := rec.bodies[0]
	if body["big_bet"] != "deck bet" || body["label"] != "Why it works" {
		t.Errorf("unexpected body %v", body)
	}
	if !strings.Contains(out, "💡 Why it works: Pricing") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestExplainCmd_FlagBigBetWins(t *testing.T) {
	rec, srv := newRecorder(t, http.StatusOK, `{"content":"Because."}`)
	withConfig(t, map[string]any{"server_url": srv.URL, "slug": "nate", "big_bet": "config bet"})
	explainFlags.bigBet = "flag bet"

	if _, err := runCommand(t, explainCmd, "Pricing"); err != nil {
		t.Fatalf("explain: %v", err)
	}
	if got := rec.bodies[0]["big_bet"]; got != "flag bet" {
		t.Errorf("big_bet = %q", got)
	}
}

func TestWriteCmd_ErrorResponse(t *testing.T) {
	_, srv := newRecorder(t, http.StatusTooManyRequests, `{"error":"rate limited"}`)
	withConfig(t, map[string]any{"server_url": srv.URL, "slug": "nate"})

	out, err := runCommand(t, writeCmd, "Launch Plan")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(out, "Error: rate limited") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestWriteCmd_RequiresSlug(t *testing.T) {
	withConfig(t, map[string]any{})

	if _, err := runCommand(t, writeCmd, "Launch Plan"); err == nil {
		t.Error("expected an error without a slug")
	}
}

func TestActionFlags_ButtonFor(t *testing.T) {
	f := actionFlags{cardType: "rising", views: "12000", bigBet: "bet", label: "Why"}

	write := f.buttonFor("write", "Onboarding")
	if write.Attr("views") != "12000" || write.Attr("bigbet") != "" {
		t.Errorf("write button attrs = %v", write.Attrs)
	}
	explain := f.buttonFor("explain", "Onboarding")
	if explain.Attr("bigbet") != "bet" || explain.Attr("type") != "" {
		t.Errorf("explain button attrs = %v", explain.Attrs)
	}
}
