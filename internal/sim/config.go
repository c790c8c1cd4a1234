package sim

import (
	"strconv"
	"time"

	"neon-slither/internal/core"
)

// Params holds the scoring, speed and power-up tunables.
type Params struct {
	BasePoints  int
	ComboBonus  int
	ComboWindow time.Duration

	InitialInterval time.Duration
	MinInterval     time.Duration
	IntervalStep    time.Duration

	PowerUpBonus       int
	PowerUpLifetime    time.Duration
	PowerUpMilestone   int
	PowerUpProbability float64
	PowerUpSlowdown    time.Duration
	PowerUpShrink      int
	ShrinkFloor        int

	ParticlePool   int
	ParticleBurst  int
	ParticleFade   float64
	ParticleSpread float64
	ParticleStep   float64
	ComboFade      float64

	PlacementAttempts int
}

// Config controls the grid and initial snake.
type Config struct {
	Grid          int
	InitialLength int
	Origin        core.Cell

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Grid:          20,
		InitialLength: 3,
		Origin:        core.Cell{X: 5, Y: 10},
		Params: Params{
			BasePoints:  10,
			ComboBonus:  5,
			ComboWindow: 3000 * time.Millisecond,

			InitialInterval: 140 * time.Millisecond,
			MinInterval:     45 * time.Millisecond,
			IntervalStep:    3 * time.Millisecond,

			PowerUpBonus:       50,
			PowerUpLifetime:    5000 * time.Millisecond,
			PowerUpMilestone:   100,
			PowerUpProbability: 0.8,
			PowerUpSlowdown:    20 * time.Millisecond,
			PowerUpShrink:      3,
			ShrinkFloor:        5,

			ParticlePool:   100,
			ParticleBurst:  15,
			ParticleFade:   0.02,
			ParticleSpread: 8,
			ParticleStep:   0.02,
			ComboFade:      0.01,

			PlacementAttempts: 400,
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Durations accept Go syntax ("140ms") or a bare integer in milliseconds.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	p := &c.Params

	setInt := func(key string, dst *int, min int) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.Atoi(v); err == nil && parsed >= min {
				*dst = parsed
			}
		}
	}
	setFloat := func(key string, dst *float64, min, max float64) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= min && parsed <= max {
				*dst = parsed
			}
		}
	}
	setDuration := func(key string, dst *time.Duration) {
		if v, ok := cfg[key]; ok {
			if d, ok := parseDuration(v); ok {
				*dst = d
			}
		}
	}

	setInt("grid", &c.Grid, 4)
	setInt("initial_length", &c.InitialLength, 1)
	setInt("origin_x", &c.Origin.X, 0)
	setInt("origin_y", &c.Origin.Y, 0)

	setInt("base_points", &p.BasePoints, 0)
	setInt("combo_bonus", &p.ComboBonus, 0)
	setDuration("combo_window", &p.ComboWindow)

	setDuration("initial_interval", &p.InitialInterval)
	setDuration("min_interval", &p.MinInterval)
	setDuration("interval_step", &p.IntervalStep)
	if p.MinInterval > p.InitialInterval {
		p.MinInterval = p.InitialInterval
	}

	setInt("powerup_bonus", &p.PowerUpBonus, 0)
	setDuration("powerup_lifetime", &p.PowerUpLifetime)
	setInt("powerup_milestone", &p.PowerUpMilestone, 1)
	setFloat("powerup_probability", &p.PowerUpProbability, 0, 1)
	setDuration("powerup_slowdown", &p.PowerUpSlowdown)
	setInt("powerup_shrink", &p.PowerUpShrink, 0)
	setInt("shrink_floor", &p.ShrinkFloor, 1)

	setInt("particle_pool", &p.ParticlePool, 0)
	setInt("particle_burst", &p.ParticleBurst, 0)
	setFloat("particle_fade", &p.ParticleFade, 0.001, 1)
	setFloat("combo_fade", &p.ComboFade, 0.001, 1)
	setInt("placement_attempts", &p.PlacementAttempts, 1)

	// The starting segment must fit inside the grid.
	if c.Origin.X >= c.Grid || c.Origin.Y >= c.Grid {
		c.Origin = core.Cell{X: c.Grid / 2, Y: c.Grid / 2}
	}
	if c.InitialLength > c.Origin.X+1 {
		c.InitialLength = c.Origin.X + 1
	}
	return c
}

func parseDuration(v string) (time.Duration, bool) {
	if ms, err := strconv.Atoi(v); err == nil {
		if ms < 0 {
			return 0, false
		}
		return time.Duration(ms) * time.Millisecond, true
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return 0, false
	}
	return d, true
}
