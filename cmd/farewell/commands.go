package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vanderheijden86/farewell/pkg/config"
	"github.com/vanderheijden86/farewell/pkg/content"
	"github.com/vanderheijden86/farewell/pkg/export"
	"github.com/vanderheijden86/farewell/pkg/ui"
)

func newScheduleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Print the reveal timings of the deck as JSON",
		Long: `Print when every part of the deck appears, relative to the mount of its
section, as JSON. The letter timings depend on --seed (default 0).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.loadDeck()
			if err != nil {
				return err
			}
			var seed uint64
			if s := a.seedPtr(); s != nil {
				seed = *s
			}
			return export.WriteSchedule(a.out, export.BuildSchedule(d, seed))
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	var (
		outPath string
		format  string
		all     bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a keepsake card (SVG or PNG)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.loadDeck()
			if err != nil {
				return err
			}
			date := ui.FormatSpanishDate(time.Now())
			if all {
				paths, err := export.SaveKeepsakes(cmd.Context(), outPath, d, date)
				if err != nil {
					return err
				}
				for _, p := range paths {
					fmt.Fprintf(a.out, "Wrote %s\n", p)
				}
				return nil
			}
			if err := export.SaveKeepsake(export.KeepsakeOptions{Path: outPath, Format: format, Deck: d, Date: date}); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Wrote %s\n", outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "recuerdo.svg", "Output file")
	cmd.Flags().StringVar(&format, "format", "", "svg or png (default: from --out extension)")
	cmd.Flags().BoolVar(&all, "all", false, "Write both SVG and PNG next to --out")
	return cmd
}

// initAnswers are the fields the init form asks for.
type initAnswers struct {
	Honoree      string
	Organization string
	Signature    string
	Organizer    string
	Register     string
}

func newInitCmd(a *app) *cobra.Command {
	var (
		path    string
		noInput bool
		force   bool
		ans     initAnswers
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a deck file from the built-in farewell",
		Long: `Create a deck YAML starting from the built-in farewell, asking for the
honoree and the organisation. Every other field can be edited in the file
afterwards. With --register the deck is added to the config under a name.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(path); err == nil && !force {
				if noInput {
					return fmt.Errorf("%s already exists (use --force)", path)
				}
				ok, err := confirmOverwrite(path)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(a.out, "Cancelled")
					return nil
				}
			}

			if !noInput {
				if err := askDeck(&ans); err != nil {
					return err
				}
			}

			d, err := buildDeck(ans)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("creating deck dir: %w", err)
			}
			if err := d.Save(path); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Wrote %s\n", path)

			if ans.Register != "" {
				abs, err := filepath.Abs(path)
				if err != nil {
					return err
				}
				a.cfg.AddDeck(ans.Register, abs)
				if err := a.saveConfig(); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Registered deck %q; run: farewell --deck %s\n", ans.Register, ans.Register)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&path, "path", "deck.yaml", "Where to write the deck")
	f.BoolVar(&noInput, "no-input", false, "Do not prompt; use the flags below")
	f.BoolVar(&force, "force", false, "Overwrite an existing file")
	f.StringVar(&ans.Honoree, "honoree", "", "Who is leaving")
	f.StringVar(&ans.Organization, "organization", "", "Organisation saying goodbye")
	f.StringVar(&ans.Signature, "signature", "", "Letter signature (default: organisation)")
	f.StringVar(&ans.Organizer, "organizer", "", "Footer line (default: derived from organisation)")
	f.StringVar(&ans.Register, "register", "", "Register the deck in the config under this name")
	return cmd
}

func (a *app) saveConfig() error {
	if a.configPath != "" {
		return config.SaveTo(a.cfg, a.configPath)
	}
	return config.Save(a.cfg)
}

// buildDeck applies the answers to the built-in deck. The honoree's name is
// replaced in every text that mentions the stock honoree.
func buildDeck(ans initAnswers) (content.Deck, error) {
	d := content.Default()
	stockHonoree, stockOrg := d.Honoree, d.Organization

	replace := func(s string) string {
		if ans.Honoree != "" {
			s = strings.ReplaceAll(s, stockHonoree, ans.Honoree)
		}
		if ans.Organization != "" {
			s = strings.ReplaceAll(s, stockOrg, ans.Organization)
		}
		return s
	}

	d.Honoree = replace(d.Honoree)
	d.Organization = replace(d.Organization)
	d.Institutional.Message = replace(d.Institutional.Message)
	for i, p := range d.Letter.Paragraphs {
		d.Letter.Paragraphs[i] = replace(p)
	}
	d.Letter.Signature = replace(d.Letter.Signature)
	d.Footer.Organizer = replace(d.Footer.Organizer)
	if ans.Signature != "" {
		d.Letter.Signature = ans.Signature
	}
	if ans.Organizer != "" {
		d.Footer.Organizer = ans.Organizer
	}

	if err := d.Validate(); err != nil {
		return content.Deck{}, fmt.Errorf("invalid deck: %w", err)
	}
	return d, nil
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// newForm creates a form, falling back to accessible prompts without a TTY.
func newForm(groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).WithTheme(huh.ThemeDracula())
	if !stdinIsTerminal() {
		form = form.WithAccessible(true)
	}
	return form
}

func notBlank(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required")
	}
	return nil
}

func askDeck(ans *initAnswers) error {
	form := newForm(
		huh.NewGroup(
			huh.NewInput().
				Title("¿A quién despedimos?").
				Value(&ans.Honoree).
				Validate(notBlank),
			huh.NewInput().
				Title("Organización").
				Value(&ans.Organization).
				Validate(notBlank),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Firma de la carta").
				Description("Vacío: el nombre de la organización").
				Value(&ans.Signature),
			huh.NewInput().
				Title("Línea del pie").
				Description("Vacío: \"Despedida organizada por ...\"").
				Value(&ans.Organizer),
			huh.NewInput().
				Title("Registrar con el nombre").
				Description("Opcional: para usar --deck <nombre>").
				Value(&ans.Register),
		),
	)
	return form.Run()
}

func confirmOverwrite(path string) (bool, error) {
	overwrite := false
	form := newForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("%s ya existe. ¿Sobrescribir?", path)).
				Value(&overwrite).
				Affirmative("Sí").
				Negative("No"),
		),
	)
	if err := form.Run(); err != nil {
		return false, err
	}
	return overwrite, nil
}
