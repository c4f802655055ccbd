// Package config handles loading and saving farewell configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/farewell/config.yaml
//   - Data:    ~/.local/share/farewell/ (exported keepsakes)
//   - State:   ~/.local/state/farewell/ (debug log)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const appName = "farewell"

// DeckEntry registers a deck file under a short name.
type DeckEntry struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// MotionConfig holds animation preferences.
type MotionConfig struct {
	Reduced  bool `yaml:"reduced,omitempty"`   // Skip reveals, no particles
	TrailCap int  `yaml:"trail_cap,omitempty"` // Max pointer trail particles
	FPS      int  `yaml:"fps,omitempty"`       // Particle frame rate
}

// UIConfig holds UI preference settings.
type UIConfig struct {
	Theme    string `yaml:"theme,omitempty"`     // auto, dark, light
	Mouse    *bool  `yaml:"mouse,omitempty"`     // Track pointer motion
	ShowHelp bool   `yaml:"show_help,omitempty"` // Start with the full help bar
}

// Config is the top-level configuration for farewell.
type Config struct {
	Deck   string       `yaml:"deck,omitempty"` // Deck name or path; empty uses the built-in deck
	Decks  []DeckEntry  `yaml:"decks,omitempty"`
	Seed   *uint64      `yaml:"seed,omitempty"` // Fixed seed for jitter and particles
	Motion MotionConfig `yaml:"motion,omitempty"`
	UI     UIConfig     `yaml:"ui,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Motion: MotionConfig{
			TrailCap: 16,
			FPS:      60,
		},
		UI: UIConfig{
			Theme: "auto",
		},
	}
}

// ConfigDir returns the XDG config directory for farewell.
func ConfigDir() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// DataDir returns the XDG data directory for farewell.
func DataDir() string {
	return xdgDir("XDG_DATA_HOME", ".local", "share")
}

// StateDir returns the XDG state directory for farewell.
func StateDir() string {
	return xdgDir("XDG_STATE_HOME", ".local", "state")
}

func xdgDir(env string, fallback ...string) string {
	if dir := os.Getenv(env); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(append(append([]string{home}, fallback...), appName)...)
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Motion.TrailCap <= 0 {
		cfg.Motion.TrailCap = DefaultConfig().Motion.TrailCap
	}
	if cfg.Motion.FPS <= 0 {
		cfg.Motion.FPS = DefaultConfig().Motion.FPS
	}

	for i := range cfg.Decks {
		cfg.Decks[i].Path = expandHome(cfg.Decks[i].Path)
	}

	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// FindDeck returns the registered deck with the given name, or nil.
func (c Config) FindDeck(name string) *DeckEntry {
	for i := range c.Decks {
		if strings.EqualFold(c.Decks[i].Name, name) {
			return &c.Decks[i]
		}
	}
	return nil
}

// AddDeck registers path under name, replacing an entry with the same name.
func (c *Config) AddDeck(name, path string) {
	if d := c.FindDeck(name); d != nil {
		d.Path = path
		return
	}
	c.Decks = append(c.Decks, DeckEntry{Name: name, Path: path})
}

// ResolveDeck turns a deck argument into a file path. A registered name wins
// over a path; an empty argument falls back to the configured deck and then
// to "" (the built-in deck).
func (c Config) ResolveDeck(arg string) string {
	if arg == "" {
		arg = c.Deck
	}
	if arg == "" {
		return ""
	}
	if d := c.FindDeck(arg); d != nil {
		return d.Path
	}
	return expandHome(arg)
}

// MouseEnabled reports whether pointer motion should be tracked.
func (c Config) MouseEnabled() bool {
	if c.UI.Mouse == nil {
		return !c.Motion.Reduced
	}
	return *c.UI.Mouse
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
