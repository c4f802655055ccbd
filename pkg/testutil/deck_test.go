package testutil

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/vanderheijden86/farewell/pkg/content"
)

func TestFastDeckIsValid(t *testing.T) {
	if err := FastDeck().Validate(); err != nil {
		t.Fatalf("FastDeck invalid: %v", err)
	}
}

func TestWriteDeckLoads(t *testing.T) {
	path := WriteDeck(t, t.TempDir(), "deck.yaml", FastDeck())
	d, err := content.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(d.Letter.Paragraphs) != 3 {
		t.Errorf("Expected 3 paragraphs, got %d", len(d.Letter.Paragraphs))
	}
}

func TestDeckGenProducesValidDecks(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		d := DeckGen().Draw(t, "deck")
		if err := d.Validate(); err != nil {
			t.Fatalf("generated invalid deck: %v", err)
		}
	})
}
