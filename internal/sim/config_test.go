package sim

import (
	"testing"
	"time"
)

func TestFromMapOverrides(t *testing.T) {
	cfg := FromMap(map[string]string{
		"grid":                "30",
		"initial_interval":    "200ms",
		"min_interval":        "60",
		"combo_window":        "2s",
		"powerup_probability": "0.5",
		"particle_pool":       "40",
	})
	if cfg.Grid != 30 {
		t.Fatalf("grid = %d", cfg.Grid)
	}
	if cfg.Params.InitialInterval != 200*time.Millisecond {
		t.Fatalf("initial interval = %v", cfg.Params.InitialInterval)
	}
	if cfg.Params.MinInterval != 60*time.Millisecond {
		t.Fatalf("min interval = %v", cfg.Params.MinInterval)
	}
	if cfg.Params.ComboWindow != 2*time.Second {
		t.Fatalf("combo window = %v", cfg.Params.ComboWindow)
	}
	if cfg.Params.PowerUpProbability != 0.5 {
		t.Fatalf("probability = %v", cfg.Params.PowerUpProbability)
	}
	if cfg.Params.ParticlePool != 40 {
		t.Fatalf("pool = %d", cfg.Params.ParticlePool)
	}
}

func TestFromMapIgnoresInvalid(t *testing.T) {
	def := DefaultConfig()
	cfg := FromMap(map[string]string{
		"grid":                "2",
		"powerup_probability": "1.5",
		"combo_window":        "-3s",
		"base_points":         "ten",
	})
	if cfg.Grid != def.Grid {
		t.Fatalf("grid = %d, want default", cfg.Grid)
	}
	if cfg.Params.PowerUpProbability != def.Params.PowerUpProbability {
		t.Fatal("out-of-range probability accepted")
	}
	if cfg.Params.ComboWindow != def.Params.ComboWindow {
		t.Fatal("negative window accepted")
	}
	if cfg.Params.BasePoints != def.Params.BasePoints {
		t.Fatal("non-numeric points accepted")
	}
}

func TestFromMapNormalisesBounds(t *testing.T) {
	cfg := FromMap(map[string]string{
		"initial_interval": "40ms",
		"min_interval":     "90ms",
		"grid":             "6",
		"initial_length":   "9",
	})
	if cfg.Params.MinInterval != cfg.Params.InitialInterval {
		t.Fatalf("floor %v above initial %v", cfg.Params.MinInterval, cfg.Params.InitialInterval)
	}
	if cfg.Origin.X >= cfg.Grid || cfg.Origin.Y >= cfg.Grid {
		t.Fatalf("origin %v outside grid %d", cfg.Origin, cfg.Grid)
	}
	if cfg.InitialLength > cfg.Origin.X+1 {
		t.Fatalf("initial length %d does not fit from origin %v", cfg.InitialLength, cfg.Origin)
	}
}

func TestDirectionOpposites(t *testing.T) {
	for _, d := range []Direction{Up, Down, Left, Right} {
		if d.Opposite().Opposite() != d {
			t.Fatalf("%v: opposite is not an involution", d)
		}
		dx, dy := d.Delta()
		ox, oy := d.Opposite().Delta()
		if dx+ox != 0 || dy+oy != 0 {
			t.Fatalf("%v: deltas do not cancel", d)
		}
	}
	if Direction(7).Valid() {
		t.Fatal("unknown direction reported valid")
	}
}
