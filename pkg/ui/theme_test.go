package ui

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/farewell/pkg/content"
)

func plainTheme() Theme {
	return DefaultTheme(lipgloss.NewRenderer(io.Discard))
}

func TestRenderButtonStatesShareWidth(t *testing.T) {
	th := plainTheme()
	idle := lipgloss.Width(th.RenderButton("Siguiente", false, false))
	hover := lipgloss.Width(th.RenderButton("Siguiente", true, false))
	press := lipgloss.Width(th.RenderButton("Siguiente", true, true))
	if idle != hover || hover != press {
		t.Errorf("Expected equal widths, got idle=%d hover=%d press=%d", idle, hover, press)
	}
	if idle <= lipgloss.Width("Siguiente") {
		t.Errorf("Expected padding around the label, width %d", idle)
	}
}

func TestRenderDots(t *testing.T) {
	th := plainTheme()
	got := th.RenderDots(4, 2)
	if got != "○ ○ ● ○" {
		t.Errorf("Expected third dot active, got %q", got)
	}
}

func TestRenderStars(t *testing.T) {
	th := plainTheme()
	if got := strings.Count(th.RenderStars(5, 0), glyphStar); got != 5 {
		t.Errorf("Expected 5 stars, got %d", got)
	}
}

func TestVariantColor(t *testing.T) {
	th := plainTheme()
	if th.VariantColor(content.VariantClosing) != th.Closing {
		t.Error("Expected closing accent for closing variant")
	}
	if th.VariantColor(content.Variant("unknown")) != th.Muted {
		t.Error("Expected muted accent for unknown variant")
	}
}

func TestComposite(t *testing.T) {
	l := make(layer)
	l.set(0, 0, "*")
	l.set(0, 9, "+")
	l.set(0, 4, "x") // under the text, hidden

	got := composite("ab", 0, 10, l)
	if got != "*   ab   +" {
		t.Errorf("Expected margins filled from the layer, got %q", got)
	}
	if got := composite("ab", 1, 6, l); got != "  ab  " {
		t.Errorf("Expected blank margins on an empty row, got %q", got)
	}
	if got := composite("too wide", 0, 4, l); got != "too wide" {
		t.Errorf("Expected overflowing line unchanged, got %q", got)
	}
}

func TestBackdropFromBackground(t *testing.T) {
	bg := content.Default().Background("closing")
	b := newBackdrop(bg, 80, 24, nil)
	if b.Len() != 40 {
		t.Errorf("Expected 40 drops, got %d", b.Len())
	}
	b.tick()
	l := make(layer)
	b.paint(l, plainTheme())
	if len(l) == 0 {
		t.Error("Expected drops painted into the layer")
	}
}
