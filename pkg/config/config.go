// Package config loads cardsheet settings from TOML.
package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/cardsheet/pkg/errors"
	"github.com/matzehuels/cardsheet/pkg/grid"
)

// FileName is the config file looked up in the user config directory.
const FileName = "config.toml"

// Config holds all cardsheet settings.
type Config struct {
	Grid     GridConfig     `toml:"grid"`
	Shift    ShiftConfig    `toml:"shift"`
	Clusters ClustersConfig `toml:"clusters"`
	Log      LogConfig      `toml:"log"`
}

// GridConfig bounds every sheet and sets the world-to-cell scale.
type GridConfig struct {
	MinX     int32   `toml:"min_x"`
	MinY     int32   `toml:"min_y"`
	MaxX     int32   `toml:"max_x"`
	MaxY     int32   `toml:"max_y"`
	CellSize float64 `toml:"cell_size"`
}

// ShiftConfig sets the direction cards are pushed to make room.
type ShiftConfig struct {
	Direction string `toml:"direction"`
}

// ClustersConfig holds cluster query defaults.
type ClustersConfig struct {
	IncludeSingles bool `toml:"include_singles"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Grid: GridConfig{
			MinX:     -512,
			MinY:     -512,
			MaxX:     512,
			MaxY:     512,
			CellSize: 1.0,
		},
		Shift: ShiftConfig{Direction: "down"},
		Log:   LogConfig{Level: "info"},
	}
}

// Load reads configuration from a TOML file. Keys absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "failed to read config file")
	}
	cfg, err := Parse(string(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", path)
	}
	return cfg, nil
}

// Parse decodes configuration from TOML text.
func Parse(data string) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "failed to parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the settings are usable.
func (c *Config) Validate() error {
	if c.Grid.MinX > c.Grid.MaxX || c.Grid.MinY > c.Grid.MaxY {
		return errors.New(errors.ErrCodeInvalidConfig, "grid minimum (%d,%d) exceeds maximum (%d,%d)",
			c.Grid.MinX, c.Grid.MinY, c.Grid.MaxX, c.Grid.MaxY)
	}
	if c.Grid.CellSize <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cell_size must be positive, got %g", c.Grid.CellSize)
	}
	if _, err := grid.ParseDirection(c.Shift.Direction); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "shift direction")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown log level %q", c.Log.Level)
	}
	return nil
}

// Extent returns the grid bounds as a rectangle.
func (c *Config) Extent() grid.Rect {
	return grid.NewRect(grid.P(c.Grid.MinX, c.Grid.MinY), grid.P(c.Grid.MaxX, c.Grid.MaxY))
}

// ShiftDirection returns the configured shift direction, or the default
// when the setting does not parse.
func (c *Config) ShiftDirection() grid.Point {
	d, err := grid.ParseDirection(c.Shift.Direction)
	if err != nil {
		return grid.DefaultShiftDirection
	}
	return d
}

// Encode writes c as TOML.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Path returns the config file to use. An explicit path wins; otherwise
// the user config directory is consulted and "" is returned when no file
// exists there.
func Path(explicit string) string {
	if explicit != "" {
		return explicit
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	p := filepath.Join(dir, "cardsheet", FileName)
	if _, err := os.Stat(p); err != nil {
		return ""
	}
	return p
}

// Resolve loads the config at Path(explicit), or the defaults when there is
// none.
func Resolve(explicit string) (*Config, error) {
	p := Path(explicit)
	if p == "" {
		return Default(), nil
	}
	return Load(p)
}
