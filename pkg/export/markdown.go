package export

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/vanderheijden86/farewell/pkg/content"
)

// markdownEscaper protects characters that markdown would treat as markup
// in free text from the deck.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"#", `\#`,
	"[", `\[`,
	"]", `\]`,
)

// GenerateLetterMarkdown renders the closing letter, preceded by the
// honoree and the timeline, as a markdown document.
func GenerateLetterMarkdown(d content.Deck, date string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", markdownEscaper.Replace(d.Letter.Title)))
	sb.WriteString(fmt.Sprintf("*%s* **%s**\n\n", markdownEscaper.Replace(d.Cover.Lead), markdownEscaper.Replace(d.Honoree)))

	if len(d.Timeline.Milestones) > 0 {
		sb.WriteString(fmt.Sprintf("## %s\n\n", markdownEscaper.Replace(d.Timeline.Heading)))
		for _, m := range d.Timeline.Milestones {
			sb.WriteString(fmt.Sprintf("- %s %s\n", m.Icon, markdownEscaper.Replace(m.Title)))
		}
		sb.WriteString("\n")
	}

	for _, p := range d.Letter.Paragraphs {
		if strings.TrimSpace(p) == "" {
			continue
		}
		sb.WriteString(markdownEscaper.Replace(strings.TrimSpace(p)))
		sb.WriteString("\n\n")
	}
	if d.Letter.Closing != "" {
		sb.WriteString(fmt.Sprintf("*%s*\n\n", markdownEscaper.Replace(d.Letter.Closing)))
	}
	sb.WriteString(fmt.Sprintf("**%s**\n\n", markdownEscaper.Replace(d.Letter.Signature)))

	sb.WriteString("---\n\n")
	sb.WriteString(markdownEscaper.Replace(d.Footer.Organizer))
	if date != "" {
		sb.WriteString("  \n")
		sb.WriteString(date)
	}
	sb.WriteString("\n")
	return sb.String()
}

// RenderMarkdown renders markdown for a terminal. style is a glamour style
// name ("dark", "light", "notty"); empty detects from the terminal.
func RenderMarkdown(md string, width int, style string) (string, error) {
	if width <= 0 {
		width = 80
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
