package dynamic

import (
	"context"
	"errors"
	"fmt"

	"dyngrid/internal/core"

	"golang.org/x/sync/errgroup"
)

// Report summarises a run of repeated alterations on one environment.
type Report struct {
	Seed     int64
	Applied  int
	Failed   int
	Counts   map[Category]int
	Changed  int // cells that differ from the freshly generated grid
	Solvable bool
	Grid     *core.Grid
	Start    core.Point
	Novelty  []float64
	Peak     float64
}

// Run applies n alterations drawn from cfg.Params.Table to a fresh
// environment. Exhausted attempts are counted and the run goes on; any other
// error, or a cancelled context, stops it.
func Run(ctx context.Context, cfg Config, n int) (Report, error) {
	env, err := New(cfg)
	if err != nil {
		return Report{}, err
	}
	fresh := env.Grid().Clone()
	p := cfg.Params
	rep := Report{Seed: cfg.Seed, Counts: map[Category]int{}}

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		out, err := env.Alter(p.Table,
			WithVisibilityCheck(p.VisibilityCheck),
			WithNoveltyTracking(p.TrackNovelty),
			WithNoveltyDecay(p.NoveltyDecay),
		)
		switch {
		case err == nil:
			rep.Applied++
			rep.Counts[out.Category]++
		case errors.Is(err, ErrAttemptsExhausted):
			rep.Failed++
			env.log.Warn("alteration gave up", "seed", cfg.Seed, "category", string(out.Category), "err", err)
		default:
			return rep, fmt.Errorf("seed %d alteration %d: %w", cfg.Seed, i, err)
		}
	}

	rep.Changed = env.Grid().Diff(fresh)
	rep.Solvable = env.IsSolvable()
	rep.Grid = env.Grid().Clone()
	rep.Start = env.AgentStart().Pos
	rep.Novelty = env.SpatialNovelty().Snapshot()
	rep.Peak = env.SpatialNovelty().Max()
	return rep, nil
}

// RunSeeds runs cfg once per seed on up to workers goroutines, each with its
// own environment. Reports come back in seed order. The first hard error
// cancels the remaining runs.
func RunSeeds(ctx context.Context, cfg Config, seeds []int64, n, workers int) ([]Report, error) {
	reports := make([]Report, len(seeds))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, seed := range seeds {
		c := cfg
		c.Seed = seed
		g.Go(func() error {
			rep, err := Run(gctx, c, n)
			if err != nil {
				return err
			}
			reports[i] = rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
