package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"neon-slither/internal/app"
	"neon-slither/internal/flavor"
	"neon-slither/internal/session"
	"neon-slither/internal/sfx/speaker"
	"neon-slither/internal/sim"
	"neon-slither/internal/term"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	logPath := flag.String("log", filepath.Join(os.TempDir(), "neon-slither.log"), "log file (the terminal is owned by the game)")
	flag.Parse()

	f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatalf("log file: %v", err)
	}
	defer f.Close()
	logger := log.New(f, "slither ", log.LstdFlags)

	board, closer, err := cfg.OpenBoard(logger)
	if err != nil {
		log.Fatalf("leaderboard: %v", err)
	}
	defer closer.Close()

	eng := sim.New(cfg.SimConfig(), cfg.Seed, logger)
	ctl := session.New(eng, board, flavor.New(cfg.FlavorConfig(nil), logger), session.Options{
		Name:           cfg.Name,
		RequestTimeout: cfg.FlavorTimeout,
		Logger:         logger,
	})
	defer ctl.Wait()

	var sound term.Sound
	if !cfg.Mute {
		spk, err := speaker.New()
		if err != nil {
			logger.Printf("sound disabled: %v", err)
		} else {
			defer spk.Close()
			sound = spk
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("screen init: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := term.NewRunner(screen, app.NewDriver(ctl), sound, cfg.TPS)
	err = runner.Run(ctx)
	screen.Fini()
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}
