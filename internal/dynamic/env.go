// Package dynamic alters a grid world one tile at a time while keeping the
// goal reachable from the start, and records where alterations happened in a
// spatial novelty field.
//
// An Env owns its grid, agent pose, random source and novelty field. It is
// not safe for concurrent use; independent Envs may run on separate
// goroutines.
package dynamic

import (
	"fmt"
	"log/slog"

	"dyngrid/internal/core"
	"dyngrid/internal/gridworld"
	pkgcore "dyngrid/pkg/core"
)

// Env is a grid world that can be altered while staying solvable.
type Env struct {
	cfg     Config
	world   *gridworld.Env
	rng     *pkgcore.RNG
	novelty *Novelty
	log     *slog.Logger

	warnedBudget bool
}

// New builds an environment from cfg.
func New(cfg Config) (*Env, error) {
	world, err := gridworld.New(cfg.worldConfig())
	if err != nil {
		return nil, fmt.Errorf("build grid world: %w", err)
	}
	if cfg.Params.SolvabilitySteps <= 0 {
		cfg.Params.SolvabilitySteps = 5000
	}
	if cfg.Params.AttemptFactor <= 0 {
		cfg.Params.AttemptFactor = 10
	}
	return &Env{
		cfg:     cfg,
		world:   world,
		rng:     pkgcore.NewRNG(cfg.Seed),
		novelty: NewNovelty(cfg.Width, cfg.Height),
		log:     cfg.logger().With("component", "dynamic"),
	}, nil
}

// Reset regenerates the grid, reseeds the random source, clears the novelty
// field and re-arms the large-grid warning. A zero seed reuses the configured seed.
func (e *Env) Reset(seed int64) {
	if seed == 0 {
		seed = e.cfg.Seed
	}
	e.rng = pkgcore.NewRNG(seed)
	e.warnedBudget = false
	e.world.Reset()
	e.novelty.Reset()
}

// Respawn starts a new episode on the current grid without regenerating it.
func (e *Env) Respawn() gridworld.Observation { return e.world.Respawn() }

// Config returns the configuration the environment was built with.
func (e *Env) Config() Config { return e.cfg }

// World exposes the underlying grid world.
func (e *Env) World() *gridworld.Env { return e.world }

// Grid exposes the live cell grid.
func (e *Env) Grid() *core.Grid { return e.world.Grid() }

// Goal returns the goal position.
func (e *Env) Goal() core.Point { return e.world.Goal() }

// AgentStart returns the persistent start pose.
func (e *Env) AgentStart() gridworld.Pose { return e.world.Start() }

// Agent returns the live agent pose.
func (e *Env) Agent() gridworld.Pose { return e.world.Agent() }

// SpatialNovelty exposes the novelty field.
func (e *Env) SpatialNovelty() *Novelty { return e.novelty }

// ResetSpatialNoveltyGrid zeroes the novelty field.
func (e *Env) ResetSpatialNoveltyGrid() { e.novelty.Reset() }

func (e *Env) attemptBudget() int {
	g := e.world.Grid()
	return e.cfg.Params.AttemptFactor * g.W * g.H
}

// randomInterior draws a cell uniformly from inside the wall border.
func (e *Env) randomInterior() core.Point {
	g := e.world.Grid()
	return core.Point{
		X: e.rng.IntRange(1, g.W-1),
		Y: e.rng.IntRange(1, g.H-1),
	}
}
