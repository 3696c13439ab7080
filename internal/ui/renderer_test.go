package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/amitgawande/tools/internal/app"
)

func TestRendererPlainOutput(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(Options{NoColor: true, Out: &out})

	r.Info("Found 2 tool(s)")
	r.Warn("broken: unreadable README")
	r.Status(app.StatusStale, "index.html", "tools or settings changed")
	r.Issue("error", "timer", "Updated is not YYYY-MM-DD (date-format)")
	r.CleanSummary(2, 0)
	r.Info("   ")

	want := []string{
		"Found 2 tool(s)",
		"warning broken: unreadable README",
		"stale index.html (tools or settings changed)",
		"error timer: Updated is not YYYY-MM-DD (date-format)",
		"cleaned 2 files, 0 missing",
	}
	got := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(got) != len(want) {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestProgressSilentWithoutTerminal(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(Options{NoColor: true, Out: &out})

	p := r.Progress("Reading", 2)
	p.Increment("alpha")
	p.Increment("beta")
	p.Done()
	r.Progress("Reading", 0).Done()

	if out.Len() != 0 {
		t.Fatalf("expected no progress output off a terminal, got %q", out.String())
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdefgh", 6); got != "abc..." {
		t.Fatalf("got %q", got)
	}
	if got := truncate("abc", 6); got != "abc" {
		t.Fatalf("got %q", got)
	}
	if got := truncate("héllo-wörld", 8); got != "héllo..." {
		t.Fatalf("got %q", got)
	}
	if got := truncate("日本語ツール", 2); got != "日本" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderersKeepSeparateColorProfiles(t *testing.T) {
	previous := lipgloss.ColorProfile()
	t.Cleanup(func() { lipgloss.SetColorProfile(previous) })
	lipgloss.SetColorProfile(termenv.TrueColor)

	var stdout, stderr bytes.Buffer
	plain := NewRenderer(Options{NoColor: true, Out: &stdout})
	other := NewRenderer(Options{Out: &stderr})

	if got := lipgloss.ColorProfile(); got != termenv.TrueColor {
		t.Fatalf("renderer changed the global color profile to %v", got)
	}
	if plain.lg == other.lg {
		t.Fatalf("renderers share a lipgloss renderer")
	}
	if got := plain.lg.ColorProfile(); got != termenv.Ascii {
		t.Fatalf("expected ascii profile for a plain renderer, got %v", got)
	}

	plain.Warn("careful")
	if strings.Contains(stdout.String(), "\x1b[") {
		t.Fatalf("plain renderer wrote escape codes: %q", stdout.String())
	}
}
