package config

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

var ErrInvalid = errors.New("config: invalid")

// Grid holds the cell layout shared by the grid model, the scene registry and
// the render coordinator.
type Grid struct {
	WidthCells  int `yaml:"width_cells"`
	HeightCells int `yaml:"height_cells"`
	CellSize    int `yaml:"cell_size"`
}

// PixelWidth is the width of the map zone in pixels.
func (g Grid) PixelWidth() int {
	return g.WidthCells * g.CellSize
}

// PixelHeight is the height of the map zone in pixels.
func (g Grid) PixelHeight() int {
	return g.HeightCells * g.CellSize
}

type Palette struct {
	Width   int `yaml:"width"`
	Padding int `yaml:"padding"`
}

type Window struct {
	Title        string `yaml:"title"`
	TPS          int    `yaml:"tps"`
	StatusHeight int    `yaml:"status_height"`
	Background   string `yaml:"background"`
	GridLines    string `yaml:"grid_lines"`
	Separator    string `yaml:"separator"`
	Highlight    string `yaml:"highlight"`
}

type Controls struct {
	RotateKey string `yaml:"rotate_key"`
	CancelKey string `yaml:"cancel_key"`
}

// Config is built once at startup and passed by value afterwards.
type Config struct {
	Grid     Grid     `yaml:"grid"`
	Palette  Palette  `yaml:"palette"`
	Window   Window   `yaml:"window"`
	Controls Controls `yaml:"controls"`
}

// Default returns the embedded defaults.
func Default() Config {
	cfg, err := Parse(defaultsYAML)
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Parse decodes YAML on top of zero values and validates the result.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// WithTPS returns a copy with the tick rate replaced. Non-positive values keep
// the current rate.
func (c Config) WithTPS(tps int) Config {
	if tps > 0 {
		c.Window.TPS = tps
	}
	return c
}

func (c Config) Validate() error {
	switch {
	case c.Grid.WidthCells <= 0 || c.Grid.HeightCells <= 0:
		return fmt.Errorf("%w: grid must be at least 1x1, got %dx%d", ErrInvalid, c.Grid.WidthCells, c.Grid.HeightCells)
	case c.Grid.CellSize <= 0:
		return fmt.Errorf("%w: cell_size must be positive, got %d", ErrInvalid, c.Grid.CellSize)
	case c.Palette.Width <= 0:
		return fmt.Errorf("%w: palette width must be positive, got %d", ErrInvalid, c.Palette.Width)
	case c.Palette.Padding < 0:
		return fmt.Errorf("%w: palette padding must not be negative, got %d", ErrInvalid, c.Palette.Padding)
	case c.Window.TPS <= 0:
		return fmt.Errorf("%w: tps must be positive, got %d", ErrInvalid, c.Window.TPS)
	case c.Window.StatusHeight < 0:
		return fmt.Errorf("%w: status_height must not be negative", ErrInvalid)
	}
	for _, s := range []string{c.Window.Background, c.Window.GridLines, c.Window.Separator, c.Window.Highlight} {
		if _, err := ParseColor(s); err != nil {
			return err
		}
	}
	return nil
}

// WindowSize is the full canvas: map zone, palette to its right, and the
// status bar along the bottom.
func (c Config) WindowSize() (int, int) {
	return c.Grid.PixelWidth() + c.Palette.Width, c.Grid.PixelHeight() + c.Window.StatusHeight
}

// ParseColor parses "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (color.RGBA, error) {
	var r, g, b uint8
	a := uint8(0xff)
	switch {
	case len(s) == 7 && s[0] == '#':
		if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
			return color.RGBA{}, fmt.Errorf("%w: color %q: %v", ErrInvalid, s, err)
		}
	case len(s) == 9 && s[0] == '#':
		if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x%02x", &r, &g, &b, &a); err != nil {
			return color.RGBA{}, fmt.Errorf("%w: color %q: %v", ErrInvalid, s, err)
		}
	default:
		return color.RGBA{}, fmt.Errorf("%w: color %q must look like #rrggbb", ErrInvalid, s)
	}
	return color.RGBA{R: r, G: g, B: b, A: a}, nil
}

// MustColor is ParseColor for values already checked by Validate.
func MustColor(s string) color.RGBA {
	c, err := ParseColor(s)
	if err != nil {
		return color.RGBA{A: 0xff}
	}
	return c
}
