package app

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"neon-slither/internal/flavor"
	"neon-slither/internal/leaderboard"
	"neon-slither/internal/sim"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Scale         int
	TPS           int
	Seed          int64
	Grid          int
	Name          string
	Store         string
	DB            string
	FlavorModel   string
	FlavorTimeout time.Duration
	Mute          bool
	Overrides     Overrides
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Scale:         30,
		TPS:           60,
		Seed:          time.Now().UnixNano(),
		Grid:          sim.DefaultConfig().Grid,
		Name:          "Pilot",
		Store:         "file",
		FlavorModel:   flavor.DefaultConfig().Model,
		FlavorTimeout: flavor.DefaultConfig().Timeout,
		Overrides:     Overrides{},
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixels per grid cell")
	fs.IntVar(&c.TPS, "tps", c.TPS, "frames per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for food and power-up placement")
	fs.IntVar(&c.Grid, "grid", c.Grid, "grid cells per side")
	fs.StringVar(&c.Name, "name", c.Name, "player name for the leaderboard")
	fs.StringVar(&c.Store, "store", c.Store, "leaderboard store: memory, file or sqlite")
	fs.StringVar(&c.DB, "db", c.DB, "leaderboard path (defaults per store)")
	fs.StringVar(&c.FlavorModel, "flavor-model", c.FlavorModel, "model used for flavor text")
	fs.DurationVar(&c.FlavorTimeout, "flavor-timeout", c.FlavorTimeout, "flavor text request timeout")
	fs.BoolVar(&c.Mute, "mute", c.Mute, "disable sound")
	fs.Var(c.Overrides, "set", "simulation override key=value (repeatable)")
}

// Overrides collects repeated -set key=value flags.
type Overrides map[string]string

func (o Overrides) String() string {
	parts := make([]string, 0, len(o))
	for k, v := range o {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ",")
}

// Set parses one key=value pair.
func (o Overrides) Set(v string) error {
	key, value, ok := strings.Cut(v, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return fmt.Errorf("override %q: want key=value", v)
	}
	o[key] = strings.TrimSpace(value)
	return nil
}

// SimConfig builds the engine configuration from the grid flag and overrides.
// An explicit -set grid=N wins over -grid.
func (c *Config) SimConfig() sim.Config {
	m := map[string]string{"grid": strconv.Itoa(c.Grid)}
	for k, v := range c.Overrides {
		m[k] = v
	}
	return sim.FromMap(m)
}

// FlavorConfig builds the flavor client settings. The API key comes from
// GEMINI_API_KEY, falling back to API_KEY.
func (c *Config) FlavorConfig(getenv func(string) string) flavor.Config {
	if getenv == nil {
		getenv = os.Getenv
	}
	fc := flavor.DefaultConfig()
	fc.APIKey = getenv("GEMINI_API_KEY")
	if fc.APIKey == "" {
		fc.APIKey = getenv("API_KEY")
	}
	if c.FlavorModel != "" {
		fc.Model = c.FlavorModel
	}
	if c.FlavorTimeout > 0 {
		fc.Timeout = c.FlavorTimeout
	}
	return fc
}

// OpenBoard opens the configured leaderboard store. The returned closer
// releases the store and is never nil.
func (c *Config) OpenBoard(logger *log.Logger) (*leaderboard.Board, io.Closer, error) {
	switch c.Store {
	case "memory":
		return leaderboard.NewBoard(leaderboard.NewMemoryBackend(), logger), nopCloser{}, nil
	case "file", "":
		path := c.DB
		if path == "" {
			path = defaultPath("scores.msgpack")
		}
		return leaderboard.NewBoard(leaderboard.NewFileBackend(path), logger), nopCloser{}, nil
	case "sqlite":
		path := c.DB
		if path == "" {
			path = defaultPath("scores.db")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("leaderboard dir: %w", err)
		}
		be, err := leaderboard.OpenSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		return leaderboard.NewBoard(be, logger), be, nil
	}
	return nil, nil, fmt.Errorf("unknown store %q", c.Store)
}

func defaultPath(name string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "neon-slither-"+name)
	}
	return filepath.Join(dir, "neon-slither", name)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
