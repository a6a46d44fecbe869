package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/pelletier/go-toml/v2"
)

// EnvPath overrides the configuration file location.
const EnvPath = "RLESS_CONFIG"

const defaultTabWidth = 4

// Config represents the pager configuration
type Config struct {
	TabWidth int          `toml:"tab_width"`
	Search   SearchConfig `toml:"search"`
	Colors   ColorConfig  `toml:"colors"`
}

// SearchConfig controls pattern compilation and match navigation
type SearchConfig struct {
	SmartCase bool `toml:"smart_case"`
	Wrap      bool `toml:"wrap"`
	Highlight bool `toml:"highlight"`
}

// ColorPair names a foreground and background color as understood by tcell.GetColor.
type ColorPair struct {
	FG string `toml:"fg"`
	BG string `toml:"bg"`
}

// ColorConfig holds the renderer colors
type ColorConfig struct {
	Match   ColorPair `toml:"match"`
	Status  ColorPair `toml:"status"`
	Control ColorPair `toml:"control"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		TabWidth: defaultTabWidth,
		Search: SearchConfig{
			SmartCase: true,
			Wrap:      true,
			Highlight: true,
		},
		Colors: ColorConfig{
			Match:   ColorPair{FG: "black", BG: "yellow"},
			Status:  ColorPair{FG: "default", BG: "default"},
			Control: ColorPair{FG: "gray", BG: "default"},
		},
	}
}

// Path returns $RLESS_CONFIG when set, else config.toml under the user config directory.
func Path() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvPath)); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "rless", "config.toml"), nil
}

// Load reads the file at path over the defaults. A missing file yields the defaults;
// a file that does not parse is an error. Out-of-range values fall back to defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return Default(), fmt.Errorf("failed to parse config %s:%d:%d: %w", path, row, col, err)
		}
		return Default(), fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.normalize()
	return cfg, nil
}

// Encode writes cfg as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

func (c *Config) normalize() {
	def := Default()
	if c.TabWidth < 1 {
		c.TabWidth = def.TabWidth
	}
	c.Colors.Match = c.Colors.Match.orDefault(def.Colors.Match)
	c.Colors.Status = c.Colors.Status.orDefault(def.Colors.Status)
	c.Colors.Control = c.Colors.Control.orDefault(def.Colors.Control)
}

func (p ColorPair) orDefault(def ColorPair) ColorPair {
	if !validColor(p.FG) {
		p.FG = def.FG
	}
	if !validColor(p.BG) {
		p.BG = def.BG
	}
	return p
}

func validColor(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "default" || name == "reset" {
		return true
	}
	return name != "" && tcell.GetColor(name) != tcell.ColorDefault
}

// Style resolves the pair into a tcell style on top of base.
func (p ColorPair) Style(base tcell.Style) tcell.Style {
	return base.Foreground(resolveColor(p.FG)).Background(resolveColor(p.BG))
}

func resolveColor(name string) tcell.Color {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "default" || name == "reset" {
		return tcell.ColorDefault
	}
	return tcell.GetColor(name)
}
