package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"runtime"
	"sort"
	"sync"
	"time"

	"neon-slither/internal/app"
	"neon-slither/internal/autopilot"
	"neon-slither/internal/leaderboard"
	"neon-slither/internal/sim"
)

type gameResult struct {
	seed     int64
	score    int
	length   int
	ticks    int
	elapsed  time.Duration
	powerUps int
	maxCombo int
	crashed  bool
}

func (r gameResult) pointsPerSecond() float64 {
	return float64(r.score) / (r.elapsed.Seconds() + 1)
}

func main() {
	games := flag.Int("games", 200, "autopilot games to play")
	seed := flag.Int64("seed", 1, "first seed; game i uses seed+i")
	maxTicks := flag.Int("ticks", 20000, "tick limit per game")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	overrides := app.Overrides{}
	flag.Var(overrides, "set", "simulation override key=value (repeatable)")
	flag.Parse()

	cfg := sim.FromMap(overrides)
	fmt.Printf("Playing %d games on a %dx%d grid (%d workers, %d tick limit)\n", *games, cfg.Grid, cfg.Grid, *workers, *maxTicks)

	jobs := make(chan int64)
	results := make(chan gameResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s := range jobs {
				results <- playGame(cfg, s, *maxTicks)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for i := 0; i < *games; i++ {
			jobs <- *seed + int64(i)
		}
		close(jobs)
	}()

	start := time.Now()
	var all []gameResult
	implausible := 0
	for res := range results {
		all = append(all, res)
		if !leaderboard.Plausible(res.score, res.elapsed.Seconds()) {
			implausible++
			fmt.Printf("Implausible: seed=%d score=%d in %s (%.2f pts/s)\n",
				res.seed, res.score, res.elapsed.Round(time.Millisecond), res.pointsPerSecond())
		}
	}
	if len(all) == 0 {
		return
	}

	sort.Slice(all, func(i, j int) bool { return all[i].score > all[j].score })
	elapsed := time.Since(start)

	fmt.Printf("\nTop 5 games (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for i := 0; i < len(all) && i < 5; i++ {
		r := all[i]
		fmt.Printf("%2d) seed=%d score=%d length=%d ticks=%d played=%s powerups=%d combo=x%d pps=%.2f crashed=%v\n",
			i+1, r.seed, r.score, r.length, r.ticks, r.elapsed.Round(time.Millisecond), r.powerUps, r.maxCombo, r.pointsPerSecond(), r.crashed)
	}

	pps := make([]float64, len(all))
	for i, r := range all {
		pps[i] = r.pointsPerSecond()
	}
	sort.Float64s(pps)
	fmt.Printf("\nPoints per second: min=%.2f p50=%.2f p90=%.2f p99=%.2f max=%.2f (limit %d)\n",
		pps[0], quantile(pps, 0.5), quantile(pps, 0.9), quantile(pps, 0.99), pps[len(pps)-1], leaderboard.MaxPointsPerSecond)
	fmt.Printf("Implausible: %d of %d\n", implausible, len(all))
}

func playGame(cfg sim.Config, seed int64, maxTicks int) gameResult {
	eng := sim.New(cfg, seed, log.New(io.Discard, "", 0))
	now := time.Unix(0, 0)
	eng.Reset(now)
	pilot := autopilot.New(cfg.Grid)

	res := gameResult{seed: seed}
	for res.ticks < maxTicks {
		eng.SetPendingDirection(pilot.Next(eng))
		now = now.Add(eng.Interval())
		out := eng.Tick(now)
		res.ticks++
		switch out.Kind {
		case sim.GameOver:
			res.crashed = true
		case sim.PowerUpCaptured:
			res.powerUps++
		case sim.FoodCaptured:
			res.maxCombo = max(res.maxCombo, out.Combo)
		case sim.Continued:
		}
		if res.crashed {
			break
		}
	}
	final := eng.Snapshot()
	res.score = final.Score
	res.length = len(final.Snake)
	res.elapsed = now.Sub(time.Unix(0, 0))
	return res
}

func quantile(sorted []float64, q float64) float64 {
	idx := int(q * float64(len(sorted)-1))
	return sorted[idx]
}
