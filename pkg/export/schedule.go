package export

import (
	"io"
	"time"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/farewell/pkg/content"
	"github.com/vanderheijden86/farewell/pkg/deck"
	"github.com/vanderheijden86/farewell/pkg/reveal"
)

// Millis is a duration encoded as whole milliseconds.
type Millis int64

func ms(d time.Duration) Millis { return Millis(d / time.Millisecond) }

// Schedule describes when everything in a deck appears, for scripting and
// for checking pacing without running the presentation.
type Schedule struct {
	Honoree  string            `json:"honoree"`
	Seed     uint64            `json:"seed"`
	Sections []SectionSchedule `json:"sections"`
}

// SectionSchedule is the timing of one section, relative to its mount.
type SectionSchedule struct {
	Index      int               `json:"index"`
	Kind       deck.Kind         `json:"kind"`
	Variant    content.Variant   `json:"variant"`
	Particles  int               `json:"particles"`
	Cover      *CoverTiming      `json:"cover,omitempty"`
	Typewriter *TypewriterTiming `json:"typewriter,omitempty"`
	Milestones []MilestoneTiming `json:"milestones,omitempty"`
	Carousel   *CarouselTiming   `json:"carousel,omitempty"`
	Letter     *LetterTiming     `json:"letter,omitempty"`
}

// CoverTiming covers the two letter-by-letter lines.
type CoverTiming struct {
	LeadStartMs Millis `json:"lead_start_ms"`
	LeadEndMs   Millis `json:"lead_end_ms"`
	NameStartMs Millis `json:"name_start_ms"`
	NameEndMs   Millis `json:"name_end_ms"`
}

// TypewriterTiming covers the institutional message and the applause.
type TypewriterTiming struct {
	Runes      int    `json:"runes"`
	DoneMs     Millis `json:"done_ms"`
	ApplauseMs Millis `json:"applause_ms"`
}

// MilestoneTiming is when a timeline entry appears.
type MilestoneTiming struct {
	Title   string `json:"title"`
	Side    string `json:"side"`
	ShownMs Millis `json:"shown_ms"`
}

// CarouselTiming is the slideshow pacing.
type CarouselTiming struct {
	Slides        int    `json:"slides"`
	TransitionMs  Millis `json:"transition_ms"`
	AutoAdvanceMs Millis `json:"auto_advance_ms"`
}

// LetterTiming is the closing letter, replayed with the seeded jitter.
type LetterTiming struct {
	Paragraphs []ParagraphTiming `json:"paragraphs"`
	SignedMs   Millis            `json:"signed_ms"`
}

// ParagraphTiming is when one paragraph finished typing.
type ParagraphTiming struct {
	Runes  int    `json:"runes"`
	DoneMs Millis `json:"done_ms"`
}

// BuildSchedule computes the schedule of d. The letter jitter is drawn from
// seed so the same seed always yields the same timings.
func BuildSchedule(d content.Deck, seed uint64) Schedule {
	s := Schedule{Honoree: d.Honoree, Seed: seed}
	ctrl := deck.New()
	for _, sec := range ctrl.Sections() {
		bg := d.Background(sec.Kind)
		ss := SectionSchedule{
			Index:   sec.Index,
			Kind:    sec.Kind,
			Variant: bg.Variant,
		}
		for _, a := range bg.Ambient {
			ss.Particles += a.Count
		}
		switch sec.Kind {
		case deck.KindCover:
			ss.Cover = coverTiming(d)
		case deck.KindInstitutional:
			ss.Typewriter = typewriterTiming(d)
		case deck.KindTimeline:
			for _, m := range d.Timeline.Milestones {
				ss.Milestones = append(ss.Milestones, MilestoneTiming{Title: m.Title, Side: m.Side, ShownMs: ms(m.Delay)})
			}
		case deck.KindCarousel:
			ss.Carousel = &CarouselTiming{
				Slides:        len(d.Carousel.Slides),
				TransitionMs:  ms(d.Timings.CarouselTransition),
				AutoAdvanceMs: ms(d.Timings.CarouselAutoAdvance),
			}
		case deck.KindClosing:
			ss.Letter = letterTiming(d, seed)
		}
		s.Sections = append(s.Sections, ss)
	}
	return s
}

// WriteSchedule encodes the schedule as indented JSON.
func WriteSchedule(w io.Writer, s Schedule) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

func coverTiming(d content.Deck) *CoverTiming {
	step := d.Cover.Step
	if step <= 0 {
		step = reveal.DefaultLetterStep
	}
	lead := reveal.NewSchedule(d.Cover.Lead, d.Cover.LeadDelay, step)
	name := reveal.NewSchedule(d.Honoree, d.Cover.NameDelay, step)
	return &CoverTiming{
		LeadStartMs: ms(d.Cover.LeadDelay),
		LeadEndMs:   ms(lead.End()),
		NameStartMs: ms(d.Cover.NameDelay),
		NameEndMs:   ms(name.End()),
	}
}

func typewriterTiming(d content.Deck) *TypewriterTiming {
	tw := reveal.NewTypewriter(d.Institutional.Message,
		reveal.WithStartDelay(d.Institutional.StartDelay),
		reveal.WithInterval(d.Timings.TypewriterInterval),
	)
	done := drain(tw, nil)
	return &TypewriterTiming{
		Runes:      tw.Len(),
		DoneMs:     ms(done),
		ApplauseMs: ms(done + d.Institutional.ApplauseDelay),
	}
}

func letterTiming(d content.Deck, seed uint64) *LetterTiming {
	letter := reveal.NewLetter(d.Letter.Paragraphs, d.Letter.Signature,
		reveal.WithCharDelay(reveal.Jitter(reveal.Seeded(seed), d.Timings.CharDelay, d.Timings.CharJitter)),
		reveal.WithParagraphPause(d.Timings.ParagraphPause),
		reveal.WithSignaturePause(d.Timings.SignaturePause),
	)
	lt := &LetterTiming{}
	var prev time.Duration
	lt.SignedMs = ms(drain(letter, func(at time.Duration) {
		// Paragraph i finished on the step before the one that moved past it.
		if p, _ := letter.Position(); p > len(lt.Paragraphs) && len(lt.Paragraphs) < letter.Len() {
			i := len(lt.Paragraphs)
			lt.Paragraphs = append(lt.Paragraphs, ParagraphTiming{
				Runes:  len([]rune(d.Letter.Paragraphs[i])),
				DoneMs: ms(prev),
			})
		}
		prev = at
	}))
	return lt
}

// drain runs r to completion on a virtual clock and returns the time of the
// final step. after is called with the virtual time after every step.
func drain(r reveal.Revealer, after func(at time.Duration)) time.Duration {
	delay, ok := r.Start()
	var at time.Duration
	for ok {
		at += delay
		delay, ok = r.Step()
		if after != nil {
			after(at)
		}
	}
	return at
}
