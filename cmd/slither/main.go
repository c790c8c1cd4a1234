//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"neon-slither/internal/app"
	"neon-slither/internal/flavor"
	"neon-slither/internal/session"
	"neon-slither/internal/sim"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logger := log.Default()
	board, closer, err := cfg.OpenBoard(logger)
	if err != nil {
		log.Fatalf("leaderboard: %v", err)
	}
	defer closer.Close()

	simCfg := cfg.SimConfig()
	eng := sim.New(simCfg, cfg.Seed, logger)
	ctl := session.New(eng, board, flavor.New(cfg.FlavorConfig(nil), logger), session.Options{
		Name:           cfg.Name,
		RequestTimeout: cfg.FlavorTimeout,
		Logger:         logger,
	})
	defer ctl.Wait()

	side := simCfg.Grid * cfg.Scale
	game := app.New(ctl, side, cfg.Mute, logger)

	ebiten.SetWindowTitle("Neon Slither")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(side, side)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
