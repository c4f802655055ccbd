// Package testutil holds deck fixtures shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/vanderheijden86/farewell/pkg/content"
)

// FastDeck returns the stock deck with millisecond pacing and a short
// letter, so reveals finish in a handful of ticks.
func FastDeck() content.Deck {
	d := content.Default()
	d.Cover.LeadDelay = 0
	d.Cover.NameDelay = 10 * time.Millisecond
	d.Cover.Step = time.Millisecond
	d.Institutional.Message = "Gracias."
	d.Institutional.StartDelay = 0
	d.Institutional.ApplauseDelay = time.Millisecond
	d.Letter.Paragraphs = []string{"Hola", "", "Adiós"}
	d.Timings.TypewriterInterval = time.Millisecond
	d.Timings.CharDelay = time.Millisecond
	d.Timings.CharJitter = 0
	d.Timings.ParagraphPause = 2 * time.Millisecond
	d.Timings.SignaturePause = 2 * time.Millisecond
	return d
}

// WriteDeck writes d as YAML to dir/name and returns the path.
func WriteDeck(t testing.TB, dir, name string, d content.Deck) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := d.Save(path); err != nil {
		t.Fatalf("failed to write deck: %v", err)
	}
	return path
}

// WriteFile writes raw content to dir/name and returns the path.
func WriteFile(t testing.TB, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// AssertLineCount verifies that s renders to exactly n lines.
func AssertLineCount(t testing.TB, s string, n int) {
	t.Helper()
	if got := strings.Count(s, "\n") + 1; got != n {
		t.Errorf("expected %d lines, got %d", n, got)
	}
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNÑOPQRSTUVWXYZáéíóúñ¡!¿?,.")

// word draws a non-empty word.
func word() *rapid.Generator[string] {
	return rapid.StringOfN(rapid.RuneFrom(letters), 1, 12, -1)
}

// text draws between minWords and maxWords words joined by spaces.
func text(t *rapid.T, label string, minWords, maxWords int) string {
	return strings.Join(rapid.SliceOfN(word(), minWords, maxWords).Draw(t, label), " ")
}

// DeckGen generates valid decks with random text and pacing.
func DeckGen() *rapid.Generator[content.Deck] {
	return rapid.Custom(func(t *rapid.T) content.Deck {
		d := content.Default()
		d.Honoree = text(t, "honoree", 1, 4)
		d.Institutional.Message = text(t, "message", 0, 30)
		d.Letter.Signature = text(t, "signature", 1, 4)
		d.Letter.Paragraphs = rapid.SliceOfN(rapid.Custom(func(t *rapid.T) string {
			return text(t, "paragraph", 0, 20)
		}), 0, 6).Draw(t, "paragraphs")

		ms := func(label string, lo, hi int) time.Duration {
			return time.Duration(rapid.IntRange(lo, hi).Draw(t, label)) * time.Millisecond
		}
		d.Timings.TypewriterInterval = ms("interval", 1, 100)
		d.Timings.CharDelay = ms("char_delay", 1, 150)
		d.Timings.CharJitter = ms("char_jitter", 0, 60)
		d.Timings.ParagraphPause = ms("paragraph_pause", 0, 1000)
		d.Timings.SignaturePause = ms("signature_pause", 0, 1000)
		return d
	})
}
