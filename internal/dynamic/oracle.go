package dynamic

import (
	"dyngrid/internal/core"
	"dyngrid/internal/gridworld"
)

// largeGridCells is the cell count above which a random walk of the default
// budget stops being a reliable reachability signal.
const largeGridCells = 100

// IsSolvable lets a uniformly random agent walk from the start pose for the
// configured step budget and reports whether it ever stood on the goal.
// Stepping on lava sends the agent back to the start pose and the walk goes
// on. A true result is proof of reachability; false is only evidence.
//
// The live pose always ends up at the start pose.
func (e *Env) IsSolvable() bool {
	w := e.world
	g := w.Grid()
	steps := e.cfg.Params.SolvabilitySteps

	if cells := g.W * g.H; cells > largeGridCells && !e.warnedBudget {
		e.warnedBudget = true
		e.log.Warn("solvability check uses a random walk and may be wrong on large grids",
			"cells", cells, "steps", steps)
	}

	start := w.Start()
	w.SetAgent(start)
	defer w.SetAgent(start)

	goal := w.Goal()
	visited := make([]bool, g.W*g.H)
	visited[g.Index(start.Pos.X, start.Pos.Y)] = true
	goalIdx := g.Index(goal.X, goal.Y)

	for i := 0; i < steps; i++ {
		w.Move(gridworld.Action(e.rng.IntN(gridworld.NumActions)))
		pos := w.Agent().Pos
		visited[g.Index(pos.X, pos.Y)] = true
		if g.Get(pos) == core.Lava {
			w.SetAgent(start)
		}
		if visited[goalIdx] {
			return true
		}
	}
	return false
}
