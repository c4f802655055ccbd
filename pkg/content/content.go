// Package content loads the presentation deck: who is being honoured, the
// text of every section, the reveal pacing and the per-section backgrounds.
//
// A deck is a YAML file. The stock farewell is embedded and used when no
// deck path is given; a custom deck is layered on top of it, so a file only
// needs the fields it wants to change.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/vanderheijden86/farewell/pkg/deck"
	"github.com/vanderheijden86/farewell/pkg/metrics"

	"gopkg.in/yaml.v3"
)

//go:embed default_deck.yaml
var defaultDeckYAML []byte

// Media is what a carousel slide shows.
type Media string

const (
	MediaImage Media = "image"
	MediaVideo Media = "video"
)

// Variant is a decorative background style.
type Variant string

const (
	VariantDefault       Variant = "default"
	VariantInstitutional Variant = "institutional"
	VariantTimeline      Variant = "timeline"
	VariantClosing       Variant = "closing"
	VariantFooter        Variant = "footer"
)

// Cover is section 0.
type Cover struct {
	Lead      string        `yaml:"lead"`
	LeadDelay time.Duration `yaml:"lead_delay"`
	NameDelay time.Duration `yaml:"name_delay"`
	Step      time.Duration `yaml:"step"`
}

// Institutional is the company message typed out in section 1.
type Institutional struct {
	Heading       string        `yaml:"heading"`
	Message       string        `yaml:"message"`
	StartDelay    time.Duration `yaml:"start_delay"`
	ApplauseDelay time.Duration `yaml:"applause_delay"`
	ApplauseStars int           `yaml:"applause_stars"`
}

// Milestone is one entry of the timeline.
type Milestone struct {
	Title string        `yaml:"title"`
	Icon  string        `yaml:"icon"`
	Side  string        `yaml:"side"` // left or right
	Delay time.Duration `yaml:"delay"`
}

// Timeline is section 2.
type Timeline struct {
	Heading    string      `yaml:"heading"`
	Milestones []Milestone `yaml:"milestones"`
}

// Slide is one memory in the carousel.
type Slide struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Media       Media  `yaml:"media"`
	Path        string `yaml:"path"`
}

// Carousel is section 3.
type Carousel struct {
	Badge  string  `yaml:"badge"`
	Slides []Slide `yaml:"slides"`
}

// Letter is the closing letter of section 4.
type Letter struct {
	Title      string   `yaml:"title"`
	Closing    string   `yaml:"closing"`
	Signature  string   `yaml:"signature"`
	Paragraphs []string `yaml:"paragraphs"`
}

// Footer is section 5.
type Footer struct {
	Organizer string `yaml:"organizer"`
}

// Timings holds the reveal pacing.
type Timings struct {
	TypewriterInterval  time.Duration `yaml:"typewriter_interval"`
	CharDelay           time.Duration `yaml:"char_delay"`
	CharJitter          time.Duration `yaml:"char_jitter"`
	ParagraphPause      time.Duration `yaml:"paragraph_pause"`
	SignaturePause      time.Duration `yaml:"signature_pause"`
	CarouselTransition  time.Duration `yaml:"carousel_transition"`
	CarouselAutoAdvance time.Duration `yaml:"carousel_auto_advance"`
}

// AmbientSpec asks for count drops travelling in direction.
type AmbientSpec struct {
	Direction string `yaml:"direction"` // falling or rising
	Count     int    `yaml:"count"`
}

// Background decorates one section. Each section has exactly one.
type Background struct {
	Section deck.Kind     `yaml:"section"`
	Variant Variant       `yaml:"variant"`
	Ambient []AmbientSpec `yaml:"ambient"`
}

// Deck is the full presentation content.
type Deck struct {
	Honoree       string        `yaml:"honoree"`
	Organization  string        `yaml:"organization"`
	Locale        string        `yaml:"locale,omitempty"`
	Cover         Cover         `yaml:"cover"`
	Institutional Institutional `yaml:"institutional"`
	Timeline      Timeline      `yaml:"timeline"`
	Carousel      Carousel      `yaml:"carousel"`
	Letter        Letter        `yaml:"letter"`
	Footer        Footer        `yaml:"footer"`
	Timings       Timings       `yaml:"timings"`
	Backgrounds   []Background  `yaml:"backgrounds"`
}

// Default returns the embedded stock deck.
func Default() Deck {
	d, err := Parse(defaultDeckYAML, Deck{})
	if err != nil {
		// The embedded deck is covered by tests; failing here is a build defect.
		panic(fmt.Sprintf("embedded deck: %v", err))
	}
	return d
}

// DefaultYAML returns the embedded deck source.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultDeckYAML))
	copy(out, defaultDeckYAML)
	return out
}

// Load reads a deck file on top of the stock deck. An empty path returns
// the stock deck.
func Load(path string) (Deck, error) {
	if path == "" {
		return Default(), nil
	}
	defer metrics.Timer(metrics.DeckLoad)()
	data, err := os.ReadFile(path)
	if err != nil {
		return Deck{}, fmt.Errorf("reading deck: %w", err)
	}
	d, err := Parse(data, Default())
	if err != nil {
		return Deck{}, fmt.Errorf("deck %s: %w", path, err)
	}
	return d, nil
}

// Parse decodes YAML over base and validates the result. Lists present in
// the document replace the base lists instead of merging element-wise.
func Parse(data []byte, base Deck) (Deck, error) {
	d := base
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Deck{}, fmt.Errorf("parsing deck: %w", err)
	}
	if err := d.Validate(); err != nil {
		return Deck{}, err
	}
	return d, nil
}

// Marshal encodes the deck back to YAML.
func (d Deck) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshaling deck: %w", err)
	}
	return data, nil
}

// Save writes the deck to path.
func (d Deck) Save(path string) error {
	data, err := d.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing deck: %w", err)
	}
	return nil
}

// Validate reports every problem in the deck at once.
func (d Deck) Validate() error {
	var errs []error
	if strings.TrimSpace(d.Honoree) == "" {
		errs = append(errs, errors.New("honoree is required"))
	}
	if strings.TrimSpace(d.Letter.Signature) == "" {
		errs = append(errs, errors.New("letter.signature is required"))
	}
	for i, m := range d.Timeline.Milestones {
		if m.Side != "left" && m.Side != "right" {
			errs = append(errs, fmt.Errorf("timeline.milestones[%d].side: want left or right, got %q", i, m.Side))
		}
		if m.Delay < 0 {
			errs = append(errs, fmt.Errorf("timeline.milestones[%d].delay is negative", i))
		}
	}
	for i, s := range d.Carousel.Slides {
		if s.Media != MediaImage && s.Media != MediaVideo {
			errs = append(errs, fmt.Errorf("carousel.slides[%d].media: want image or video, got %q", i, s.Media))
		}
	}
	seen := make(map[deck.Kind]bool)
	for i, b := range d.Backgrounds {
		if seen[b.Section] {
			errs = append(errs, fmt.Errorf("backgrounds[%d]: section %q already has a background", i, b.Section))
		}
		seen[b.Section] = true
		for j, a := range b.Ambient {
			if a.Direction != "falling" && a.Direction != "rising" {
				errs = append(errs, fmt.Errorf("backgrounds[%d].ambient[%d].direction: want falling or rising, got %q", i, j, a.Direction))
			}
			if a.Count < 0 {
				errs = append(errs, fmt.Errorf("backgrounds[%d].ambient[%d].count is negative", i, j))
			}
		}
	}
	for name, v := range map[string]time.Duration{
		"timings.typewriter_interval": d.Timings.TypewriterInterval,
		"timings.char_delay":          d.Timings.CharDelay,
	} {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive", name))
		}
	}
	return errors.Join(errs...)
}

// Background returns the background for a section kind, falling back to
// the default variant with no ambient drops.
func (d Deck) Background(kind deck.Kind) Background {
	for _, b := range d.Backgrounds {
		if b.Section == kind {
			return b
		}
	}
	return Background{Section: kind, Variant: VariantDefault}
}

// LetterText returns the letter as plain text, paragraphs separated by
// newlines, followed by the closing and the signature.
func (d Deck) LetterText() string {
	var b strings.Builder
	b.WriteString(strings.Join(d.Letter.Paragraphs, "\n"))
	b.WriteString("\n\n")
	if d.Letter.Closing != "" {
		b.WriteString(d.Letter.Closing)
		b.WriteString("\n")
	}
	b.WriteString(d.Letter.Signature)
	b.WriteString("\n")
	return b.String()
}
