package export

import (
	"strings"
	"testing"

	"github.com/vanderheijden86/farewell/pkg/content"
)

func TestGenerateLetterMarkdown(t *testing.T) {
	d := content.Default()
	md := GenerateLetterMarkdown(d, "sábado, 17 de octubre de 2026")

	if !strings.HasPrefix(md, "# ") {
		t.Errorf("Expected a title heading, got %.30q", md)
	}
	for _, p := range d.Letter.Paragraphs {
		if p == "" {
			continue
		}
		first := strings.Fields(p)[0]
		if !strings.Contains(md, first) {
			t.Errorf("Expected paragraph starting %q", first)
		}
	}
	if !strings.Contains(md, "**"+d.Letter.Signature+"**") {
		t.Error("Expected bold signature")
	}
	if !strings.Contains(md, "octubre de 2026") {
		t.Error("Expected the date line")
	}
}

func TestGenerateLetterMarkdownEscapes(t *testing.T) {
	d := content.Default()
	d.Letter.Paragraphs = []string{"Gracias por *todo* y por #siempre"}
	md := GenerateLetterMarkdown(d, "")
	if !strings.Contains(md, `\*todo\*`) || !strings.Contains(md, `\#siempre`) {
		t.Errorf("Expected markup escaped, got %q", md)
	}
}

func TestRenderMarkdown(t *testing.T) {
	out, err := RenderMarkdown("# Hola\n\nUna carta.", 40, "notty")
	if err != nil {
		t.Fatalf("RenderMarkdown error: %v", err)
	}
	if !strings.Contains(out, "Hola") || !strings.Contains(out, "Una carta.") {
		t.Errorf("Expected rendered text, got %q", out)
	}
}
