// Package gridworld is a small MiniGrid-style engine: a wall-bordered grid of
// typed cells, one goal, and an agent that turns and walks forward with a
// limited egocentric field of view.
package gridworld

import (
	"fmt"

	"dyngrid/internal/core"
)

// Action is one of the three primitive agent actions.
type Action int

const (
	ActionLeft Action = iota
	ActionRight
	ActionForward
)

// NumActions is the size of the primitive action space.
const NumActions = 3

// NumDirections is the number of headings an agent can face.
const NumDirections = 4

var dirVec = [NumDirections]core.Point{
	{X: 1, Y: 0},  // east
	{X: 0, Y: 1},  // south
	{X: -1, Y: 0}, // west
	{X: 0, Y: -1}, // north
}

// Pose is an agent position plus heading. Dir is 0=east, 1=south, 2=west, 3=north.
type Pose struct {
	Pos core.Point
	Dir int
}

// Front returns the cell directly ahead of the pose.
func (p Pose) Front() core.Point {
	d := dirVec[p.Dir&3]
	return core.Point{X: p.Pos.X + d.X, Y: p.Pos.Y + d.Y}
}

// Config controls the grid dimensions and initial agent placement.
type Config struct {
	Width    int
	Height   int
	Start    Pose
	ViewSize int
	// MaxSteps bounds an episode; zero means 4*Width*Height.
	MaxSteps int
}

// DefaultConfig returns the 8x8 layout with the agent in the top-left corner
// facing east and the goal in the bottom-right corner.
func DefaultConfig() Config {
	return Config{
		Width:    8,
		Height:   8,
		Start:    Pose{Pos: core.Point{X: 1, Y: 1}, Dir: 0},
		ViewSize: 7,
	}
}

// StepResult is what Step reports back to an episode driver.
type StepResult struct {
	Obs    Observation
	Reward float64
	Done   bool
}

// Env holds the grid, the goal, and the agent state.
type Env struct {
	cfg Config

	grid *core.Grid
	goal core.Point

	agent Pose
	start Pose

	carrying  core.Object
	stepCount int
	maxSteps  int
}

// New validates cfg and builds a freshly generated environment.
func New(cfg Config) (*Env, error) {
	if cfg.Width < 3 || cfg.Height < 3 {
		return nil, fmt.Errorf("grid must be at least 3x3, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.ViewSize < 3 || cfg.ViewSize%2 == 0 {
		return nil, fmt.Errorf("view size must be odd and >= 3, got %d", cfg.ViewSize)
	}
	if cfg.Start.Dir < 0 || cfg.Start.Dir >= NumDirections {
		return nil, fmt.Errorf("start direction %d out of range", cfg.Start.Dir)
	}
	s := cfg.Start.Pos
	if s.X < 1 || s.Y < 1 || s.X > cfg.Width-2 || s.Y > cfg.Height-2 {
		return nil, fmt.Errorf("start %v must be an interior cell", s)
	}
	if s == (core.Point{X: cfg.Width - 2, Y: cfg.Height - 2}) {
		return nil, fmt.Errorf("start %v coincides with the goal", s)
	}
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = 4 * cfg.Width * cfg.Height
	}
	e := &Env{cfg: cfg, maxSteps: cfg.MaxSteps}
	e.Reset()
	return e, nil
}

// Reset regenerates the grid from the configuration and starts a new episode.
func (e *Env) Reset() Observation {
	w, h := e.cfg.Width, e.cfg.Height
	e.grid = core.NewGrid(w, h)
	e.grid.WallRect(0, 0, w, h)
	e.goal = core.Point{X: w - 2, Y: h - 2}
	e.grid.Set(e.goal, core.Goal)
	e.start = e.cfg.Start
	return e.Respawn()
}

// Respawn starts a new episode on the current grid: the agent returns to the
// start pose, drops anything carried, and the step counter is zeroed.
func (e *Env) Respawn() Observation {
	e.agent = e.start
	e.carrying = core.Empty
	e.stepCount = 0
	return e.Observe()
}

// Grid exposes the live cell grid.
func (e *Env) Grid() *core.Grid { return e.grid }

// Size reports the grid dimensions.
func (e *Env) Size() core.Size { return core.Size{W: e.grid.W, H: e.grid.H} }

// Goal returns the goal position.
func (e *Env) Goal() core.Point { return e.goal }

// PlaceGoal moves the goal object to p, clearing the old goal cell.
func (e *Env) PlaceGoal(p core.Point) {
	if e.grid.Get(e.goal) == core.Goal {
		e.grid.Set(e.goal, core.Empty)
	}
	e.goal = p
	e.grid.Set(p, core.Goal)
}

// Agent returns the live agent pose.
func (e *Env) Agent() Pose { return e.agent }

// SetAgent overwrites the live agent pose.
func (e *Env) SetAgent(p Pose) { e.agent = p }

// Start returns the persistent start pose used by Respawn.
func (e *Env) Start() Pose { return e.start }

// SetStart overwrites the persistent start pose.
func (e *Env) SetStart(p Pose) { e.start = p }

// Carrying reports the object held by the agent, if any.
func (e *Env) Carrying() core.Object { return e.carrying }

// StepCount reports steps taken in the current episode.
func (e *Env) StepCount() int { return e.stepCount }

// MaxSteps reports the episode step budget.
func (e *Env) MaxSteps() int { return e.maxSteps }

// ViewSize reports the side length of the agent's square view.
func (e *Env) ViewSize() int { return e.cfg.ViewSize }

// Move applies the kinematics of a single action to the live pose without
// touching episode counters. It reports whether the agent changed cell.
func (e *Env) Move(a Action) bool {
	switch a {
	case ActionLeft:
		e.agent.Dir = (e.agent.Dir + NumDirections - 1) % NumDirections
	case ActionRight:
		e.agent.Dir = (e.agent.Dir + 1) % NumDirections
	case ActionForward:
		front := e.agent.Front()
		if e.grid.InBounds(front) && e.grid.Get(front).CanOverlap() {
			e.agent.Pos = front
			return true
		}
	}
	return false
}

// Step advances the episode by one action. Reaching the goal ends the
// episode with a reward discounted by elapsed steps; lava ends it with none.
func (e *Env) Step(a Action) StepResult {
	e.stepCount++
	res := StepResult{}
	if a == ActionForward && e.Move(a) {
		switch e.grid.Get(e.agent.Pos) {
		case core.Goal:
			res.Done = true
			res.Reward = 1 - 0.9*float64(e.stepCount)/float64(e.maxSteps)
		case core.Lava:
			res.Done = true
		}
	} else if a != ActionForward {
		e.Move(a)
	}
	if e.stepCount >= e.maxSteps {
		res.Done = true
	}
	res.Obs = e.Observe()
	return res
}
