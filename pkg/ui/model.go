package ui

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/farewell/pkg/clock"
	"github.com/vanderheijden86/farewell/pkg/content"
	"github.com/vanderheijden86/farewell/pkg/debug"
	"github.com/vanderheijden86/farewell/pkg/deck"
	"github.com/vanderheijden86/farewell/pkg/metrics"
	"github.com/vanderheijden86/farewell/pkg/particles"
	"github.com/vanderheijden86/farewell/pkg/reveal"
	"github.com/vanderheijden86/farewell/pkg/watcher"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	defaultFPS    = 60
)

// sectionTitles are the header labels per section kind.
var sectionTitles = map[deck.Kind]string{
	deck.KindCover:         "Portada",
	deck.KindInstitutional: "Mensaje",
	deck.KindTimeline:      "Trayectoria",
	deck.KindCarousel:      "Recuerdos",
	deck.KindClosing:       "Carta",
	deck.KindFooter:        "Despedida",
}

// DeckReloadedMsg carries a re-read deck after the file changed on disk.
type DeckReloadedMsg watcher.Reload

// WatchDeckCmd waits for the next deck reload.
func WatchDeckCmd(r *watcher.DeckReloader) tea.Cmd {
	return func() tea.Msg {
		rl, err := r.Next(context.Background())
		if err != nil {
			return nil
		}
		return DeckReloadedMsg(rl)
	}
}

// Options configure the presentation.
type Options struct {
	Seed          *uint64 // fixed seed for jitter and particles
	ReducedMotion bool    // reveal everything at once, no particles
	Mouse         bool    // spawn the pointer trail on motion
	TrailCap      int
	FPS           int
	Clock         clock.Clock
	Renderer      *lipgloss.Renderer
	ShowHelp      bool
	Reloader      *watcher.DeckReloader
}

type action int

const (
	actNone action = iota
	actAdvance
	actRetreat
	actRestart
	actSkip
	actSlidePrev
	actSlideNext
	actCopy
)

// button is a clickable label in the button row. x and w are filled in by
// layoutButtons so mouse hits match what View draws.
type button struct {
	label  string
	action action
	x, w   int
}

// Model is the root Bubble Tea model. It owns the section controller and
// mounts exactly one section component at a time.
type Model struct {
	deck     content.Deck
	ctrl     *deck.Controller
	opts     Options
	theme    Theme
	keys     KeyMap
	help     help.Model
	progress progress.Model
	clock    clock.Clock
	rng      *rand.Rand

	active    sectionModel
	initCmd   tea.Cmd
	mountedAt time.Time
	backdrop  backdrop
	trail     *particles.Trail
	frame     int

	width     int
	height    int
	mouseX    int
	mouseY    int
	mouseSeen bool
	hover     int
	pressed   bool
	buttons   []button
	status    string
}

// NewModel builds the presentation for a deck, mounted on the cover.
func NewModel(d content.Deck, opts Options) Model {
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	if opts.Renderer == nil {
		opts.Renderer = lipgloss.DefaultRenderer()
	}
	if opts.FPS <= 0 {
		opts.FPS = defaultFPS
	}

	var rng *rand.Rand
	if opts.Seed != nil {
		rng = reveal.Seeded(*opts.Seed)
	} else {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	ctrl := deck.New()
	ctrl.OnChange(func(from, to deck.Section) {
		debug.Log("section %d (%s) -> %d (%s)", from.Index, from.Kind, to.Index, to.Kind)
	})

	h := help.New()
	h.ShowAll = opts.ShowHelp

	m := Model{
		deck:     d,
		ctrl:     ctrl,
		opts:     opts,
		theme:    DefaultTheme(opts.Renderer),
		keys:     DefaultKeyMap(),
		help:     h,
		progress: progress.New(progress.WithScaledGradient("#BD93F9", "#F1C40F"), progress.WithoutPercentage()),
		clock:    opts.Clock,
		rng:      rng,
		trail:    particles.NewTrail(opts.TrailCap, rng),
		width:    defaultWidth,
		height:   defaultHeight,
		hover:    -1,
	}
	m.initCmd = m.mount()
	return m
}

// Init starts the mounted section, the frame loop and the deck watcher.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.initCmd, m.frameCmd()}
	if m.opts.Reloader != nil {
		cmds = append(cmds, WatchDeckCmd(m.opts.Reloader))
	}
	return tea.Batch(cmds...)
}

func (m Model) frameCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// mount builds the component for the current section and returns its
// start command. The previous component is dropped, which orphans every
// tick it scheduled.
func (m *Model) mount() tea.Cmd {
	sec := m.ctrl.Current()
	switch sec.Kind {
	case deck.KindInstitutional:
		m.active = NewTypewriterModel(m.deck)
	case deck.KindTimeline:
		m.active = NewTimelineModel(m.deck)
	case deck.KindCarousel:
		m.active = NewCarouselModel(m.deck, m.clock.Now)
	case deck.KindClosing:
		m.active = NewLetterModel(m.deck, m.theme, m.rng, m.width, m.height)
	case deck.KindFooter:
		m.active = NewFooterModel(m.deck, m.clock.Now)
	default:
		m.active = NewCoverModel(m.deck)
	}
	m.mountedAt = m.clock.Now()
	if m.opts.ReducedMotion {
		m.backdrop = backdrop{}
	} else {
		m.backdrop = newBackdrop(m.deck.Background(sec.Kind), m.width, m.height, m.rng)
	}
	debug.Logw("mount", "section", sec.Index, "kind", sec.Kind, "id", m.active.ID())

	var cmd tea.Cmd
	if m.opts.ReducedMotion {
		m.active, cmd = m.active.Update(skipMsg{})
	} else {
		cmd = m.active.Init()
	}
	m.layoutButtons()
	return cmd
}

// Controller returns the section controller.
func (m Model) Controller() *deck.Controller { return m.ctrl }

// Deck returns the deck being presented.
func (m Model) Deck() content.Deck { return m.deck }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.backdrop.resize(m.width, m.height)
		m.progress.Width = max(m.width-30, 10)
		m.help.Width = m.width
		var cmd tea.Cmd
		m.active, cmd = m.active.Update(msg)
		m.layoutButtons()
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case frameMsg:
		defer metrics.Timer(metrics.FrameTick)()
		m.frame++
		if !m.opts.ReducedMotion {
			m.backdrop.tick()
			m.trail.Tick()
		}
		var cmd tea.Cmd
		m.active, cmd = m.active.Update(msg)
		return m, tea.Batch(cmd, m.frameCmd())

	case RevealCompleteMsg:
		if msg.ID != m.active.ID() {
			debug.Log("dropping completion of unmounted component %d", msg.ID)
			return m, nil
		}
		m.ctrl.Complete(msg.Flag)
		m.layoutButtons()
		if msg.Flag == deck.TypingComplete && m.ctrl.Current().Kind == deck.KindInstitutional {
			id := msg.ID
			return m, tea.Tick(m.deck.Institutional.ApplauseDelay, func(time.Time) tea.Msg {
				return applauseMsg{id: id}
			})
		}
		return m, nil

	case applauseMsg:
		if msg.id == m.active.ID() {
			m.ctrl.Complete(deck.ApplauseVisible)
		}
		return m, nil

	case DeckReloadedMsg:
		var cmd tea.Cmd
		if msg.Err != nil {
			debug.Error("deck reload", msg.Err)
			m.status = "Presentación no recargada: " + msg.Err.Error()
		} else {
			m.deck = msg.Deck
			m.status = "Presentación recargada"
			m.ctrl.ResetFlags()
			cmd = m.mount()
		}
		if m.opts.Reloader != nil {
			cmd = tea.Batch(cmd, WatchDeckCmd(m.opts.Reloader))
		}
		return m, cmd

	case revealTickMsg, autoAdvanceMsg, copyResultMsg:
		var cmd tea.Cmd
		m.active, cmd = m.active.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys.forKind(m.ctrl.Current().Kind)
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, keys.Next):
		return m.do(actAdvance)
	case key.Matches(msg, keys.Prev):
		return m.do(actRetreat)
	case key.Matches(msg, keys.Restart):
		return m.do(actRestart)
	case key.Matches(msg, keys.Skip):
		return m.do(actSkip)
	case key.Matches(msg, keys.SlideNext):
		return m.do(actSlideNext)
	case key.Matches(msg, keys.SlidePrev):
		return m.do(actSlidePrev)
	case key.Matches(msg, keys.SlideJump):
		n := int(msg.String()[0] - '1')
		var cmd tea.Cmd
		m.active, cmd = m.active.Update(slideMsg{jump: n})
		return m, cmd
	case key.Matches(msg, keys.Copy):
		return m.do(actCopy)
	case key.Matches(msg, keys.ScrollUp), key.Matches(msg, keys.ScrollDn):
		var cmd tea.Cmd
		m.active, cmd = m.active.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	m.mouseX, m.mouseY = msg.X, msg.Y
	m.mouseSeen = true
	m.hover = m.hit(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionMotion:
		if m.opts.Mouse && !m.opts.ReducedMotion {
			m.trail.Spawn(float64(msg.X), float64(msg.Y))
		}
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.pressed = true
			return m, nil
		}
		if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
			var cmd tea.Cmd
			m.active, cmd = m.active.Update(msg)
			return m, cmd
		}
	case tea.MouseActionRelease:
		wasPressed := m.pressed
		m.pressed = false
		if wasPressed && m.hover >= 0 {
			return m.do(m.buttons[m.hover].action)
		}
	}
	return m, nil
}

// do applies an action from a key or a button. Navigation that changes the
// section remounts; clamped no-ops keep the mounted component.
func (m Model) do(a action) (tea.Model, tea.Cmd) {
	before := m.ctrl.Index()
	var cmd tea.Cmd
	switch a {
	case actAdvance:
		m.ctrl.Advance()
	case actRetreat:
		m.ctrl.Retreat()
	case actRestart:
		m.ctrl.Restart()
	case actSkip:
		m.active, cmd = m.active.Update(skipMsg{})
	case actSlidePrev:
		m.active, cmd = m.active.Update(slideMsg{delta: -1, jump: -1})
	case actSlideNext:
		m.active, cmd = m.active.Update(slideMsg{delta: 1, jump: -1})
	case actCopy:
		m.active, cmd = m.active.Update(copyMsg{})
	}
	if m.ctrl.Index() != before {
		m.status = ""
		cmd = m.mount()
	}
	m.layoutButtons()
	return m, cmd
}

// sectionButtons lists the buttons for the current section and flags.
func (m Model) sectionButtons() []button {
	prev := button{label: "Anterior", action: actRetreat}
	next := button{label: "Siguiente", action: actAdvance}
	switch m.ctrl.Current().Kind {
	case deck.KindCover:
		return []button{{label: "Continuar", action: actAdvance}}
	case deck.KindCarousel:
		return []button{prev, {label: "‹", action: actSlidePrev}, {label: "›", action: actSlideNext}, next}
	case deck.KindClosing:
		if !m.ctrl.Flag(deck.LetterComplete) {
			return []button{{label: "Saltar", action: actSkip}}
		}
		return []button{prev, next}
	case deck.KindFooter:
		return []button{prev, {label: "Volver al Inicio", action: actRestart}}
	default:
		return []button{prev, next}
	}
}

const buttonGap = 2

// layoutButtons computes the button row and each button's hit zone using
// the same centering View applies.
func (m *Model) layoutButtons() {
	bs := m.sectionButtons()
	total := 0
	for i := range bs {
		bs[i].w = lipgloss.Width(m.theme.RenderButton(bs[i].label, false, false))
		total += bs[i].w
	}
	total += buttonGap * max(len(bs)-1, 0)
	x := max((m.width-total)/2, 0)
	for i := range bs {
		bs[i].x = x
		x += bs[i].w + buttonGap
	}
	m.buttons = bs
	if m.hover >= len(bs) {
		m.hover = -1
	}
}

func (m Model) buttonRow() int { return m.height - 2 }

// hit returns the index of the button under (x, y), or -1.
func (m Model) hit(x, y int) int {
	if y != m.buttonRow() {
		return -1
	}
	for i, b := range m.buttons {
		if x >= b.x && x < b.x+b.w {
			return i
		}
	}
	return -1
}

func (m Model) renderButtons() string {
	parts := make([]string, len(m.buttons))
	for i, b := range m.buttons {
		parts[i] = m.theme.RenderButton(b.label, i == m.hover, m.pressed)
	}
	return strings.Join(parts, strings.Repeat(" ", buttonGap))
}

func (m Model) viewContext() viewContext {
	now := m.clock.Now()
	elapsed := now.Sub(m.mountedAt)
	if m.opts.ReducedMotion {
		elapsed = time.Duration(1<<63 - 1)
	}
	return viewContext{
		theme:   m.theme,
		width:   m.width,
		height:  m.height,
		now:     now,
		elapsed: elapsed,
		frame:   m.frame,
		flag:    m.ctrl.Flag,
	}
}

func (m Model) particleLayer() layer {
	l := make(layer)
	if m.opts.ReducedMotion {
		return l
	}
	m.backdrop.paint(l, m.theme)
	paintTrail(l, m.theme, m.trail.Particles())
	if m.mouseSeen && m.opts.Mouse {
		glyph := glyphCursor
		switch {
		case m.hover >= 0 && m.pressed:
			glyph = glyphCursorHit
		case m.hover >= 0:
			glyph = glyphCursorHov
		}
		l.set(m.mouseY, m.mouseX, m.theme.GoldBold.Render(glyph))
	}
	return l
}

func (m Model) renderHeader() string {
	sec := m.ctrl.Current()
	label := fmt.Sprintf(" %d/%d %s", sec.Index+1, m.ctrl.Len(), sectionTitles[sec.Kind])
	line := m.progress.ViewAs(m.ctrl.Progress()) + m.theme.MutedText.Render(label)
	if m.status != "" {
		line += "  " + m.theme.Status.Render(truncate(m.status, max(m.width-lipgloss.Width(line)-2, 0)))
	}
	return line
}

func (m Model) View() string {
	defer metrics.Timer(metrics.ViewRender)()
	l := m.particleLayer()
	body := strings.Split(m.active.View(m.viewContext()), "\n")
	avail := max(m.height-headerRows-footerRows, 1)
	if len(body) > avail {
		body = body[:avail]
	}
	top := (avail - len(body)) / 2

	rows := make([]string, 0, m.height)
	rows = append(rows, composite(m.renderHeader(), 0, m.width, l), composite("", 1, m.width, l))
	for r := 0; r < avail; r++ {
		line := ""
		if i := r - top; i >= 0 && i < len(body) {
			line = body[i]
		}
		rows = append(rows, composite(line, headerRows+r, m.width, l))
	}
	rows = append(rows,
		composite("", m.buttonRow()-1, m.width, l),
		composite(m.renderButtons(), m.buttonRow(), m.width, l),
		composite(m.help.View(m.keys.forKind(m.ctrl.Current().Kind)), m.height-1, m.width, nil),
	)
	return strings.Join(rows, "\n")
}
