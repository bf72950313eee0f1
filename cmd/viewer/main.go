//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"dyngrid/internal/app"
	"dyngrid/internal/core"
	_ "dyngrid/internal/dynamic"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	factory, err := core.Lookup(cfg.Sim)
	if err != nil {
		slog.Error("select simulation", "err", err)
		os.Exit(2)
	}
	params, err := cfg.SimConfig()
	if err != nil {
		slog.Error("load parameters", "err", err)
		os.Exit(2)
	}

	sim := factory(params)
	game := app.New(sim, cfg)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("dyngrid - " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		slog.Error("viewer stopped", "err", err)
		os.Exit(1)
	}
}
