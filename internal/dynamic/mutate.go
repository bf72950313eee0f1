package dynamic

import (
	"fmt"

	"dyngrid/internal/core"
	"dyngrid/internal/gridworld"
)

// AlterStartPos moves the agent start to a random empty interior cell with a
// random heading, retrying until the moved start is solvable. Every accepted
// candidate is committed to both the start and the live pose before the
// oracle runs. An unsolvable commit stays in place as the baseline for the
// next candidate unless Params.RevertUnsolvableStart is set.
//
// With visibilityCheck, candidates that would see the goal are rejected.
// Running out of attempts returns ErrAttemptsExhausted and keeps whatever
// the last commit left behind.
func (e *Env) AlterStartPos(visibilityCheck bool) (core.Point, error) {
	w := e.world
	g := w.Grid()
	budget := e.attemptBudget()
	original := w.Start().Pos
	solvable := false

	for tries := 0; w.Start().Pos == original || !solvable; tries++ {
		if tries >= budget {
			return core.Point{}, fmt.Errorf("alter start position: %w after %d attempts", ErrAttemptsExhausted, budget)
		}
		current := w.Start()
		cand := gridworld.Pose{Pos: e.randomInterior(), Dir: e.rng.IntN(gridworld.NumDirections)}
		if g.Get(cand.Pos) != core.Empty || cand.Pos == current.Pos {
			continue
		}
		if visibilityCheck && e.goalInView(cand) {
			continue
		}
		w.SetStart(cand)
		w.SetAgent(cand)
		solvable = e.IsSolvable()
		e.log.Debug("start candidate committed", "x", cand.Pos.X, "y", cand.Pos.Y, "solvable", solvable)
		if !solvable && e.cfg.Params.RevertUnsolvableStart {
			w.SetStart(current)
			w.SetAgent(current)
		}
	}
	return w.Start().Pos, nil
}

// AlterGoalPos moves the goal to a random empty interior cell other than the
// start. A move that leaves the grid unsolvable is reverted before the next
// candidate, so the grid is solvable whenever this returns without error.
//
// With visibilityCheck, candidates visible from the start pose are rejected.
func (e *Env) AlterGoalPos(visibilityCheck bool) (core.Point, error) {
	w := e.world
	g := w.Grid()
	budget := e.attemptBudget()

	for tries := 0; tries < budget; tries++ {
		cand := e.randomInterior()
		if g.Get(cand) != core.Empty || cand == w.Start().Pos {
			continue
		}
		if visibilityCheck && e.seenFrom(w.Start(), cand) {
			continue
		}
		prev := w.Goal()
		w.PlaceGoal(cand)
		if e.IsSolvable() {
			return cand, nil
		}
		w.PlaceGoal(prev)
	}
	return core.Point{}, fmt.Errorf("alter goal position: %w after %d attempts", ErrAttemptsExhausted, budget)
}

// SetOrRemoveObj picks a random interior cell other than the start and goal.
// If the cell already holds obj it is cleared; otherwise obj replaces its
// contents and the oracle must confirm the grid is still solvable, or the
// prior contents are restored and another cell is tried. Removal never needs
// the oracle, but with visibilityCheck a removal that exposes the goal to the
// start pose is undone.
//
// The search is unbounded unless Params.ObjectAttemptCap is set; on a grid
// with no acceptable cell it does not return.
func (e *Env) SetOrRemoveObj(obj core.Object, visibilityCheck bool) (core.Point, error) {
	switch obj {
	case core.Wall, core.Lava, core.Sand:
	default:
		return core.Point{}, fmt.Errorf("%w: %s", ErrInvalidObject, obj)
	}

	w := e.world
	g := w.Grid()
	limit := e.cfg.Params.ObjectAttemptCap

	for tries := 0; limit <= 0 || tries < limit; tries++ {
		p := e.randomInterior()
		if p == w.Start().Pos || p == w.Goal() {
			continue
		}
		prior := g.Get(p)
		if prior == obj {
			g.Set(p, core.Empty)
			if visibilityCheck && e.goalInView(w.Start()) {
				g.Set(p, prior)
				continue
			}
			return p, nil
		}
		g.Set(p, obj)
		if e.IsSolvable() {
			return p, nil
		}
		g.Set(p, prior)
	}
	return core.Point{}, fmt.Errorf("set or remove %s: %w after %d attempts", obj, ErrAttemptsExhausted, limit)
}
