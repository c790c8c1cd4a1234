package autopilot

import (
	"io"
	"log"
	"testing"
	"time"

	"neon-slither/internal/core"
	"neon-slither/internal/sim"
)

func TestPilotOutscoresStraightLine(t *testing.T) {
	eng := sim.New(sim.DefaultConfig(), 5, log.New(io.Discard, "", 0))
	now := time.Unix(0, 0)
	eng.Reset(now)
	p := New(eng.Size().W)

	for i := 0; i < 2000 && !eng.Over(); i++ {
		eng.SetPendingDirection(p.Next(eng))
		now = now.Add(eng.Interval())
		eng.Tick(now)
	}
	if eng.Score() < 100 {
		t.Fatalf("autopilot scored only %d", eng.Score())
	}
}

func TestPilotAvoidsWall(t *testing.T) {
	cfg := sim.DefaultConfig()
	cfg.Origin.X = cfg.Grid - 1
	eng := sim.New(cfg, 1, log.New(io.Discard, "", 0))
	eng.Reset(time.Unix(0, 0))
	d := New(cfg.Grid).Next(eng)
	if d == sim.Right || d == sim.Left {
		t.Fatalf("pilot chose %v at the right wall", d)
	}
}

// coiled steers a fresh engine into a 2x2 loop heading left, with the tail
// directly below the head. It returns nil when food lands on the path or
// above the loop for this seed.
func coiled(seed int64) *sim.Engine {
	cfg := sim.DefaultConfig()
	cfg.Origin = core.Cell{X: 5, Y: 6}
	cfg.InitialLength = 4
	eng := sim.New(cfg, seed, log.New(io.Discard, "", 0))
	now := time.Unix(0, 0)
	eng.Reset(now)
	if eng.Food().Y <= 6 {
		return nil
	}
	for _, d := range []sim.Direction{sim.Right, sim.Up, sim.Left} {
		eng.SetPendingDirection(d)
		now = now.Add(eng.Interval())
		eng.Tick(now)
	}
	want := []core.Cell{{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 6, Y: 6}, {X: 5, Y: 6}}
	got := eng.Snake()
	if eng.Over() || len(got) != len(want) {
		return nil
	}
	for i := range want {
		if got[i] != want[i] {
			return nil
		}
	}
	return eng
}

func TestPilotTreatsTailAsBlocked(t *testing.T) {
	var eng *sim.Engine
	for seed := int64(1); seed < 200 && eng == nil; seed++ {
		eng = coiled(seed)
	}
	if eng == nil {
		t.Fatal("no seed produced the coiled layout")
	}

	d := New(eng.Size().W).Next(eng)
	if d == sim.Down {
		t.Fatalf("pilot chose %v into its own tail with food at %v", d, eng.Food())
	}
	eng.SetPendingDirection(d)
	if out := eng.Tick(time.Unix(60, 0)); out.Kind == sim.GameOver {
		t.Fatalf("pilot move %v ended the game", d)
	}
}
