package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/farewell/pkg/clock"
	"github.com/vanderheijden86/farewell/pkg/config"
	"github.com/vanderheijden86/farewell/pkg/content"
	"github.com/vanderheijden86/farewell/pkg/reveal"
	"github.com/vanderheijden86/farewell/pkg/testutil"
	"github.com/vanderheijden86/farewell/pkg/version"
)

// run executes the CLI with args against a scratch config dir.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("GLAMOUR_STYLE", "notty")

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	// A nil slice would make cobra read os.Args.
	cmd.SetArgs(append([]string{}, args...))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if strings.TrimSpace(out) != "farewell "+version.Version {
		t.Errorf("Expected version line, got %q", out)
	}
}

func TestRootPrintsLetterWithoutTerminal(t *testing.T) {
	out, _, err := run(t)
	if err != nil {
		t.Fatalf("root failed: %v", err)
	}
	d := content.Default()
	if !strings.Contains(out, d.Letter.Title) {
		t.Errorf("Expected letter title in output, got %q", out)
	}
	if !strings.Contains(out, d.Letter.Signature) {
		t.Error("Expected signature in output")
	}
}

func TestPrintUsesDeckFlag(t *testing.T) {
	deckPath := testutil.WriteFile(t, t.TempDir(), "deck.yaml", "honoree: Grace Hopper\nletter:\n  signature: El equipo\n")
	out, _, err := run(t, "print", "--deck", deckPath, "--width", "60")
	if err != nil {
		t.Fatalf("print failed: %v", err)
	}
	if !strings.Contains(out, "Grace Hopper") || !strings.Contains(out, "El equipo") {
		t.Errorf("Expected deck overrides in output, got %q", out)
	}
}

func TestPrintReportsBadDeck(t *testing.T) {
	deckPath := filepath.Join(t.TempDir(), "deck.yaml")
	if err := os.WriteFile(deckPath, []byte("honoree: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := run(t, "print", "--deck", deckPath); err == nil {
		t.Fatal("Expected error for invalid deck")
	}
	if _, _, err := run(t, "print", "--deck", filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("Expected error for missing deck")
	}
}

func TestScheduleCommandOutputsJSON(t *testing.T) {
	out, _, err := run(t, "schedule", "--seed", "5")
	if err != nil {
		t.Fatalf("schedule failed: %v", err)
	}
	var decoded struct {
		Seed     uint64           `json:"seed"`
		Sections []map[string]any `json:"sections"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("Expected JSON, got %v\n%s", err, out)
	}
	if decoded.Seed != 5 || len(decoded.Sections) != 6 {
		t.Errorf("Expected seed 5 and 6 sections, got %d and %d", decoded.Seed, len(decoded.Sections))
	}
}

func TestScheduleSeedIsDeterministic(t *testing.T) {
	a, _, _ := run(t, "schedule", "--seed", "11")
	b, _, _ := run(t, "schedule", "--seed", "11")
	if a != b {
		t.Error("Expected identical schedules for the same seed")
	}
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	out, _, err := run(t, "export", "--out", filepath.Join(dir, "card.png"))
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(out, "card.png") {
		t.Errorf("Expected written path, got %q", out)
	}

	if _, _, err := run(t, "export", "--all", "--out", filepath.Join(dir, "both.svg")); err != nil {
		t.Fatalf("export --all failed: %v", err)
	}
	for _, name := range []string{"both.svg", "both.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("Expected %s: %v", name, err)
		}
	}
}

func TestInitWritesDeckAndRegisters(t *testing.T) {
	dir := t.TempDir()
	deckPath := filepath.Join(dir, "sub", "ada.yaml")
	cfgPath := filepath.Join(dir, "config.yaml")

	out, _, err := run(t, "init", "--no-input", "--config", cfgPath, "--path", deckPath,
		"--honoree", "Ada Lovelace", "--organization", "Analytical Engines", "--register", "ada")
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if !strings.Contains(out, "Registered deck") {
		t.Errorf("Expected registration message, got %q", out)
	}

	d, err := content.Load(deckPath)
	if err != nil {
		t.Fatalf("Expected loadable deck: %v", err)
	}
	if d.Honoree != "Ada Lovelace" || d.Letter.Signature != "Analytical Engines" {
		t.Errorf("Expected answers applied, got %q / %q", d.Honoree, d.Letter.Signature)
	}
	if !strings.Contains(d.Letter.Paragraphs[0], "Ada Lovelace") {
		t.Errorf("Expected greeting to use the new name, got %q", d.Letter.Paragraphs[0])
	}

	cfg, err := config.LoadFrom(cfgPath)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if e := cfg.FindDeck("ada"); e == nil || !strings.HasSuffix(e.Path, "ada.yaml") {
		t.Errorf("Expected registered deck, got %+v", cfg.Decks)
	}

	// The registered name resolves through --deck.
	printed, _, err := run(t, "print", "--config", cfgPath, "--deck", "ada")
	if err != nil {
		t.Fatalf("print via name failed: %v", err)
	}
	if !strings.Contains(printed, "Analytical Engines") {
		t.Error("Expected registered deck to be printed")
	}
}

func TestInitRefusesOverwriteWithoutForce(t *testing.T) {
	deckPath := filepath.Join(t.TempDir(), "deck.yaml")
	if err := os.WriteFile(deckPath, []byte("honoree: X\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := run(t, "init", "--no-input", "--path", deckPath); err == nil {
		t.Fatal("Expected error for existing file")
	}
	if _, _, err := run(t, "init", "--no-input", "--force", "--path", deckPath); err != nil {
		t.Fatalf("Expected --force to overwrite: %v", err)
	}
}

func TestBrokenConfigFallsBackToDefaults(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("motion: [nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, errOut, err := run(t, "version", "--config", cfgPath)
	if err != nil {
		t.Fatalf("Expected commands to keep working: %v", err)
	}
	if !strings.Contains(errOut, "Warning") {
		t.Errorf("Expected a warning, got %q", errOut)
	}
}

func TestSeedFlagOverridesConfig(t *testing.T) {
	seed := uint64(3)
	a := &app{cfg: config.Config{Seed: &seed}}
	if got := a.seedPtr(); got == nil || *got != 3 {
		t.Errorf("Expected config seed, got %v", got)
	}
	a.seed, a.seedSet = 9, true
	if got := a.seedPtr(); got == nil || *got != 9 {
		t.Errorf("Expected flag seed, got %v", got)
	}
}

func TestTypeLetterOnFakeClock(t *testing.T) {
	d := testutil.FastDeck()
	fake := clock.NewFake(time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC))
	var out bytes.Buffer

	errCh := make(chan error, 1)
	go func() { errCh <- typeLetter(context.Background(), &out, d, fake, reveal.Seeded(1)) }()

	var err error
	deadline := time.After(5 * time.Second)
loop:
	for {
		select {
		case err = <-errCh:
			break loop
		case <-deadline:
			t.Fatal("letter never finished")
		default:
			fake.Advance(10 * time.Millisecond)
			time.Sleep(time.Millisecond)
		}
	}
	if err != nil {
		t.Fatalf("typeLetter: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Hola\n\nAdiós") {
		t.Errorf("Expected typed paragraphs, got %q", got)
	}
	if !strings.HasSuffix(got, d.Letter.Signature+"\n") {
		t.Errorf("Expected signature last, got %q", got)
	}
	if fake.Pending() != 0 {
		t.Errorf("Expected no pending timers, got %d", fake.Pending())
	}
}

func TestTypeLetterCancelSkipsToEnd(t *testing.T) {
	d := testutil.FastDeck()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	fake := clock.NewFake(time.Now())
	if err := typeLetter(ctx, &out, d, fake, nil); err != nil {
		t.Fatalf("typeLetter: %v", err)
	}
	if !strings.Contains(out.String(), "Hola\n\nAdiós") {
		t.Errorf("Expected full letter after cancel, got %q", out.String())
	}
	if fake.Pending() != 0 {
		t.Errorf("Expected cancel to stop the pending timer, got %d", fake.Pending())
	}
}
