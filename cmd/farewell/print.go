package main

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vanderheijden86/farewell/pkg/clock"
	"github.com/vanderheijden86/farewell/pkg/content"
	"github.com/vanderheijden86/farewell/pkg/export"
	"github.com/vanderheijden86/farewell/pkg/reveal"
	"github.com/vanderheijden86/farewell/pkg/ui"
)

type printOptions struct {
	typed bool
	style string
	width int
}

func newPrintCmd(a *app) *cobra.Command {
	var opts printOptions
	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print the closing letter",
		Long: `Print the closing letter as rendered markdown.

With --typed the letter is typed out paragraph by paragraph at the same
pace as the presentation. Ctrl+C skips to the end.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPrint(cmd, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.typed, "typed", false, "Type the letter out in real time")
	cmd.Flags().StringVar(&opts.style, "style", "", "Markdown style: dark, light, notty (default: detect)")
	cmd.Flags().IntVar(&opts.width, "width", 0, "Wrap width (default: terminal width, max 80)")
	return cmd
}

func (a *app) runPrint(cmd *cobra.Command, opts printOptions) error {
	d, err := a.loadDeck()
	if err != nil {
		return err
	}
	if opts.typed && !a.cfg.Motion.Reduced {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return typeLetter(ctx, a.out, d, clock.Real{}, a.rng())
	}

	style := opts.style
	if style == "" && !isTerminal(a.out) {
		style = "notty"
	}
	md := export.GenerateLetterMarkdown(d, ui.FormatSpanishDate(time.Now()))
	out, err := export.RenderMarkdown(md, printWidth(a.out, opts.width), style)
	if err != nil {
		return err
	}
	_, err = io.WriteString(a.out, out)
	return err
}

func (a *app) rng() *rand.Rand {
	if s := a.seedPtr(); s != nil {
		return reveal.Seeded(*s)
	}
	return nil
}

// printWidth picks the wrap width: the flag, else the terminal, capped at 80.
func printWidth(w io.Writer, flag int) int {
	if flag > 0 {
		return flag
	}
	width := 80
	if f, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
			width = min(tw, 80)
		}
	}
	return width
}

// typeLetter replays the letter on c, writing each newly revealed piece to
// out as it appears. Cancelling ctx skips to the end.
func typeLetter(ctx context.Context, out io.Writer, d content.Deck, c clock.Clock, rng *rand.Rand) error {
	done := make(chan struct{})
	letter := reveal.NewLetter(d.Letter.Paragraphs, d.Letter.Signature,
		reveal.WithCharDelay(reveal.Jitter(rng, d.Timings.CharDelay, d.Timings.CharJitter)),
		reveal.WithParagraphPause(d.Timings.ParagraphPause),
		reveal.WithSignaturePause(d.Timings.SignaturePause),
		reveal.WithOnComplete(func() { close(done) }),
	)

	var written int
	var werr error
	p := reveal.NewPlayer(letter, c, func(text string) {
		if werr != nil || len(text) <= written {
			return
		}
		_, werr = io.WriteString(out, text[written:])
		written = len(text)
	})

	fmt.Fprintf(out, "%s\n\n", d.Letter.Title)
	p.Mount()
	select {
	case <-done:
	case <-ctx.Done():
		p.Skip()
	}
	// Unmount waits for an in-flight update to finish writing.
	p.Unmount()
	if werr != nil {
		return werr
	}

	var err error
	if d.Letter.Closing != "" {
		_, err = fmt.Fprintf(out, "\n\n%s\n%s\n", d.Letter.Closing, letter.Signature())
	} else {
		_, err = fmt.Fprintf(out, "\n\n%s\n", letter.Signature())
	}
	return err
}
