package export

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"git.sr.ht/~sbinet/gg"
	"github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/farewell/pkg/content"
)

// KeepsakeOptions controls keepsake card export.
type KeepsakeOptions struct {
	Path   string       // Output path; format inferred from extension when Format empty
	Format string       // "svg" or "png" (case-insensitive). If empty, inferred from Path.
	Deck   content.Deck // Deck the card is drawn from
	Date   string       // Optional date line under the organiser
}

// SaveKeepsake renders the farewell card (SVG or PNG): honoree, milestones,
// the opening of the letter and the signature.
func SaveKeepsake(opts KeepsakeOptions) error {
	format, path, err := resolveFormat(opts.Format, opts.Path)
	if err != nil {
		return err
	}
	opts.Path = path
	if strings.TrimSpace(opts.Deck.Honoree) == "" {
		return fmt.Errorf("deck has no honoree")
	}
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	layout := buildCard(opts)
	switch format {
	case "svg":
		return renderSVG(opts.Path, layout)
	case "png":
		return renderPNG(opts.Path, layout)
	default:
		return fmt.Errorf("unhandled format %q", format)
	}
}

// SaveKeepsakes writes the card in both formats next to base (its extension
// is replaced) and returns the written paths.
func SaveKeepsakes(ctx context.Context, base string, d content.Deck, date string) ([]string, error) {
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	paths := []string{stem + ".svg", stem + ".png"}

	g, ctx := errgroup.WithContext(ctx)
	for _, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := SaveKeepsake(KeepsakeOptions{Path: p, Deck: d, Date: date}); err != nil {
				return fmt.Errorf("%s: %w", filepath.Base(p), err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

func resolveFormat(format, path string) (string, string, error) {
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".svg":
			format = "svg"
		case ".png":
			format = "png"
		default:
			format = "svg"
			if path != "" && filepath.Ext(path) == "" {
				path += ".svg"
			}
		}
	}
	if format != "svg" && format != "png" {
		return "", "", fmt.Errorf("unsupported format %q (want svg or png)", format)
	}
	if path == "" {
		return "", "", fmt.Errorf("output path is required")
	}
	return format, path, nil
}

// --- layout ------------------------------------------------------------------

type cardLine struct {
	Text  string
	Y     float64
	Style lineStyle
}

type lineStyle int

const (
	styleBody lineStyle = iota
	styleTitle
	styleName
	styleSubtle
	styleMilestone
)

type cardLayout struct {
	Width  int
	Height int
	Lines  []cardLine
	RuleY  float64 // y of the divider under the name
}

const (
	cardWidth   = 720
	cardPadding = 48.0
	lineHeight  = 22.0
	wrapCols    = 80
)

func buildCard(opts KeepsakeOptions) cardLayout {
	d := opts.Deck
	var lines []cardLine
	y := cardPadding + 16
	add := func(text string, s lineStyle, gap float64) {
		y += gap
		lines = append(lines, cardLine{Text: text, Y: y, Style: s})
		y += lineHeight
	}

	add(d.Organization, styleSubtle, 0)
	add(d.Cover.Lead, styleTitle, 8)
	add(d.Honoree, styleName, 6)
	rule := y + 6
	y += 18

	for _, ms := range d.Timeline.Milestones {
		add("* "+ms.Title, styleMilestone, 0)
	}
	y += 10

	if len(d.Letter.Paragraphs) > 0 {
		for _, l := range wrapWords(d.Letter.Paragraphs[0], wrapCols) {
			add(l, styleBody, 0)
		}
		if len(d.Letter.Paragraphs) > 1 {
			add("...", styleSubtle, 0)
		}
	}
	y += 10
	if d.Letter.Closing != "" {
		add(d.Letter.Closing, styleSubtle, 0)
	}
	add(d.Letter.Signature, styleTitle, 0)
	y += 10
	add(d.Footer.Organizer, styleSubtle, 0)
	if opts.Date != "" {
		add(opts.Date, styleSubtle, 0)
	}

	return cardLayout{
		Width:  cardWidth,
		Height: int(y + cardPadding),
		Lines:  lines,
		RuleY:  rule,
	}
}

// wrapWords splits s into lines of at most cols runes on word boundaries.
func wrapWords(s string, cols int) []string {
	var out []string
	var cur []rune
	for _, w := range strings.Fields(s) {
		rw := []rune(w)
		if len(cur) > 0 && len(cur)+1+len(rw) > cols {
			out = append(out, string(cur))
			cur = cur[:0]
		}
		if len(cur) > 0 {
			cur = append(cur, ' ')
		}
		cur = append(cur, rw...)
	}
	if len(cur) > 0 {
		out = append(out, string(cur))
	}
	return out
}

// --- rendering ---------------------------------------------------------------

var (
	colorBackdrop = color.RGBA{0x1e, 0x1b, 0x2e, 0xff}
	colorCard     = color.RGBA{0x28, 0x24, 0x3d, 0xff}
	colorStroke   = color.RGBA{0xf1, 0xc4, 0x0f, 0xff}
	colorGold     = color.RGBA{0xf1, 0xc4, 0x0f, 0xff}
	colorText     = color.RGBA{0xf8, 0xf8, 0xf2, 0xff}
	colorSubtle   = color.RGBA{0xa0, 0x9c, 0xb8, 0xff}
	colorAccent   = color.RGBA{0xbd, 0x93, 0xf9, 0xff}
)

func (s lineStyle) color() color.RGBA {
	switch s {
	case styleTitle, styleName:
		return colorGold
	case styleSubtle:
		return colorSubtle
	case styleMilestone:
		return colorAccent
	default:
		return colorText
	}
}

func (s lineStyle) svgStyle() string {
	size, weight := 13, "normal"
	switch s {
	case styleName:
		size, weight = 24, "bold"
	case styleTitle:
		size, weight = 16, "bold"
	case styleSubtle:
		size = 12
	}
	return fmt.Sprintf("fill:%s;font-size:%dpx;font-family:monospace;font-weight:%s;text-anchor:middle",
		css(s.color()), size, weight)
}

func renderPNG(path string, layout cardLayout) error {
	dc := gg.NewContext(layout.Width, layout.Height)
	dc.SetColor(colorBackdrop)
	dc.Clear()

	dc.SetColor(colorCard)
	dc.DrawRoundedRectangle(16, 16, float64(layout.Width)-32, float64(layout.Height)-32, 14)
	dc.Fill()
	dc.SetColor(colorStroke)
	dc.SetLineWidth(2)
	dc.DrawRoundedRectangle(16, 16, float64(layout.Width)-32, float64(layout.Height)-32, 14)
	dc.Stroke()

	dc.SetFontFace(basicfont.Face7x13)
	cx := float64(layout.Width) / 2
	for _, l := range layout.Lines {
		dc.SetColor(l.Style.color())
		dc.DrawStringAnchored(l.Text, cx, l.Y, 0.5, 0.5)
	}

	dc.SetColor(colorAccent)
	dc.SetLineWidth(1)
	dc.DrawLine(cardPadding*2, layout.RuleY, float64(layout.Width)-cardPadding*2, layout.RuleY)
	dc.Stroke()

	return dc.SavePNG(path)
}

func renderSVG(path string, layout cardLayout) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := renderSVGToWriter(file, layout); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func renderSVGToWriter(w io.Writer, layout cardLayout) error {
	canvas := svg.New(w)
	canvas.Start(layout.Width, layout.Height)
	canvas.Rect(0, 0, layout.Width, layout.Height, fmt.Sprintf("fill:%s", css(colorBackdrop)))
	canvas.Roundrect(16, 16, layout.Width-32, layout.Height-32, 14, 14,
		fmt.Sprintf("fill:%s;stroke:%s;stroke-width:2", css(colorCard), css(colorStroke)))

	cx := layout.Width / 2
	for _, l := range layout.Lines {
		canvas.Text(cx, int(l.Y), l.Text, l.Style.svgStyle())
	}
	canvas.Line(int(cardPadding*2), int(layout.RuleY), layout.Width-int(cardPadding*2), int(layout.RuleY),
		fmt.Sprintf("stroke:%s;stroke-width:1", css(colorAccent)))

	canvas.End()
	return nil
}

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
