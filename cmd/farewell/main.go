package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vanderheijden86/farewell/pkg/config"
	"github.com/vanderheijden86/farewell/pkg/content"
	"github.com/vanderheijden86/farewell/pkg/debug"
	"github.com/vanderheijden86/farewell/pkg/metrics"
	"github.com/vanderheijden86/farewell/pkg/ui"
	"github.com/vanderheijden86/farewell/pkg/version"
	"github.com/vanderheijden86/farewell/pkg/watcher"
)

// AutoCloseEnv quits the TUI after the given number of milliseconds.
const AutoCloseEnv = "FAREWELL_TUI_AUTOCLOSE_MS"

func main() {
	code := 0
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		code = 1
	}
	debug.Close()
	os.Exit(code)
}

// app holds the flags and settings shared by every command.
type app struct {
	out    io.Writer
	errOut io.Writer

	configPath string
	deckArg    string
	seed       uint64
	seedSet    bool
	reduced    bool
	watch      bool

	cfg config.Config
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "farewell",
		Short: "A farewell presentation for the terminal",
		Long: `farewell plays a six-section goodbye in the terminal: a cover, the
company message, a career timeline, a memories slideshow, a closing letter
and a footer.

Run without arguments to start the presentation. When stdout is not a
terminal the letter is printed instead.`,
		SilenceUsage:  true,
		Version:       version.Version,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.seedSet = cmd.Flags().Changed("seed")
			return a.loadConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(a.out) {
				debug.Log("stdout is not a terminal, printing the letter")
				return a.runPrint(cmd, printOptions{})
			}
			return a.runTUI()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetVersionTemplate("farewell {{.Version}}\n")

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/farewell/config.yaml)")
	pf.StringVar(&a.deckArg, "deck", "", "Deck file or registered deck name (default: built-in deck)")
	pf.Uint64Var(&a.seed, "seed", 0, "Fixed seed for letter jitter and particles")
	pf.BoolVar(&a.reduced, "reduced-motion", false, "Reveal everything at once, no particles")
	root.Flags().BoolVar(&a.watch, "watch", false, "Reload the deck when its file changes")

	root.AddCommand(
		newPrintCmd(a),
		newScheduleCmd(a),
		newExportCmd(a),
		newInitCmd(a),
		newVersionCmd(a),
	)
	return root
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(a.out, "farewell %s\n", version.Version)
			return err
		},
	}
}

// loadConfig reads the config file. A broken config is reported and
// replaced by defaults so the presentation still runs.
func (a *app) loadConfig() error {
	var err error
	if a.configPath != "" {
		a.cfg, err = config.LoadFrom(a.configPath)
	} else {
		a.cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(a.errOut, "Warning: %v (using defaults)\n", err)
		debug.Error("config", err)
		a.cfg = config.DefaultConfig()
	}
	if a.reduced {
		a.cfg.Motion.Reduced = true
	}
	return nil
}

// deckPath resolves --deck against the config.
func (a *app) deckPath() string {
	return a.cfg.ResolveDeck(a.deckArg)
}

func (a *app) loadDeck() (content.Deck, error) {
	d, err := content.Load(a.deckPath())
	if err != nil {
		return content.Deck{}, err
	}
	return d, nil
}

// seedPtr returns the effective seed: the flag, then the config, then nil.
func (a *app) seedPtr() *uint64 {
	if a.seedSet {
		s := a.seed
		return &s
	}
	return a.cfg.Seed
}

func (a *app) runTUI() error {
	d, err := a.loadDeck()
	if err != nil {
		return err
	}

	opts := ui.Options{
		Seed:          a.seedPtr(),
		ReducedMotion: a.cfg.Motion.Reduced,
		Mouse:         a.cfg.MouseEnabled(),
		TrailCap:      a.cfg.Motion.TrailCap,
		FPS:           a.cfg.Motion.FPS,
		Renderer:      ui.NewRenderer(a.cfg.UI.Theme),
		ShowHelp:      a.cfg.UI.ShowHelp,
	}

	if a.watch {
		path := a.deckPath()
		if path == "" {
			return errors.New("--watch needs a deck file (--deck)")
		}
		r, err := watcher.NewDeckReloader(path)
		if err != nil {
			return fmt.Errorf("watching deck: %w", err)
		}
		if err := r.Start(); err != nil {
			return fmt.Errorf("watching deck: %w", err)
		}
		defer r.Stop()
		opts.Reloader = r
	}

	err = runTUIProgram(ui.NewModel(d, opts))
	debug.Dump("timings", metrics.AllTimingStats())
	if err != nil {
		return fmt.Errorf("running presentation: %w", err)
	}
	return nil
}

func runTUIProgram(m ui.Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithoutSignalHandler(),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated runs.
	if v := os.Getenv(AutoCloseEnv); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()

				select {
				case <-runDone:
					return
				case <-time.After(2 * time.Second):
				}

				p.Kill()
			}()
		}
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
		return nil
	}
	return err
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
