package dynamic

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"dyngrid/internal/core"
	"dyngrid/internal/gridworld"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tinyEnv builds a 4x4 world: start (1,1), goal (2,2), and two free interior
// cells at (2,1) and (1,2).
func tinyEnv(t *testing.T, mutate func(*Config)) *Env {
	t.Helper()
	return newEnv(t, func(c *Config) {
		c.Width, c.Height = 4, 4
		c.Params.SolvabilitySteps = 500
		if mutate != nil {
			mutate(c)
		}
	})
}

func TestAlterStartPosMovesStart(t *testing.T) {
	env := newEnv(t, nil)
	original := env.AgentStart()

	pos, err := env.AlterStartPos(true)
	require.NoError(t, err)

	start := env.AgentStart()
	assert.Equal(t, pos, start.Pos)
	assert.NotEqual(t, original.Pos, start.Pos)
	assert.Equal(t, start, env.Agent(), "live pose follows the start")
	assert.Equal(t, core.Empty, env.Grid().Get(start.Pos))
	assert.False(t, env.goalInView(start), "goal must stay hidden from the new start")
	assert.True(t, env.IsSolvable())
}

// bounceEnv leaves exactly two free cells, (1,1) and (2,1), and walls the goal
// off so every start candidate fails the oracle.
func bounceEnv(t *testing.T, revert bool, logs *bytes.Buffer) *Env {
	t.Helper()
	env := newEnv(t, func(c *Config) {
		c.Width, c.Height = 5, 5
		c.Params.SolvabilitySteps = 200
		c.Params.AttemptFactor = 4
		c.Params.RevertUnsolvableStart = revert
		c.Logger = slog.New(slog.NewJSONHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	})
	g := env.Grid()
	for _, p := range []core.Point{{X: 3, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 2}, {X: 3, Y: 2}, {X: 1, Y: 3}, {X: 2, Y: 3}} {
		g.Set(p, core.Wall)
	}
	require.Equal(t, core.Point{X: 3, Y: 3}, env.Goal())
	return env
}

func TestAlterStartPosKeepsUnsolvableCommitsByDefault(t *testing.T) {
	var logs bytes.Buffer
	env := bounceEnv(t, false, &logs)

	_, err := env.AlterStartPos(false)
	require.ErrorIs(t, err, ErrAttemptsExhausted)

	// Without rollback the start wanders, so (1,1) becomes a fresh candidate
	// once the start has moved to (2,1).
	assert.Contains(t, logs.String(), `"x":2,"y":1,"solvable":false`)
	assert.Contains(t, logs.String(), `"x":1,"y":1,"solvable":false`)
	assert.Equal(t, env.AgentStart(), env.Agent())
}

func TestAlterStartPosRevertsWhenConfigured(t *testing.T) {
	var logs bytes.Buffer
	env := bounceEnv(t, true, &logs)
	original := env.AgentStart()

	_, err := env.AlterStartPos(false)
	require.ErrorIs(t, err, ErrAttemptsExhausted)

	assert.Equal(t, original, env.AgentStart())
	assert.Equal(t, original, env.Agent())
	assert.Contains(t, logs.String(), `"x":2,"y":1,"solvable":false`)
	assert.NotContains(t, logs.String(), `"x":1,"y":1,"solvable"`)
}

func TestAlterGoalPosMovesGoalOnly(t *testing.T) {
	env := newEnv(t, nil)
	start := env.AgentStart()
	prevGoal := env.Goal()

	pos, err := env.AlterGoalPos(true)
	require.NoError(t, err)

	assert.Equal(t, pos, env.Goal())
	assert.NotEqual(t, prevGoal, pos)
	assert.Equal(t, start, env.AgentStart())
	assert.Equal(t, start, env.Agent())
	assert.Equal(t, 1, env.Grid().Count(core.Goal))
	assert.Equal(t, core.Empty, env.Grid().Get(prevGoal))
	assert.False(t, env.seenFrom(start, pos))
	assert.True(t, env.IsSolvable())
}

func TestAlterGoalPosExhaustsOnEnclosedStart(t *testing.T) {
	env := newEnv(t, func(c *Config) { c.Params.SolvabilitySteps = 500 })
	encloseStart(env)
	before := env.Grid().Clone()
	goal := env.Goal()

	_, err := env.AlterGoalPos(false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAttemptsExhausted))
	assert.Equal(t, goal, env.Goal())
	assert.Zero(t, env.Grid().Diff(before), "every rejected move must be rolled back")
}

func TestAlterGoalPosWalksFromStartNotLivePose(t *testing.T) {
	env := newEnv(t, func(c *Config) { c.Params.SolvabilitySteps = 500 })
	encloseStart(env)
	goal := env.Goal()

	// Mid-episode the agent may stand far from the sealed start.
	env.World().SetAgent(gridworld.Pose{Pos: core.Point{X: 5, Y: 5}, Dir: 0})

	_, err := env.AlterGoalPos(false)
	require.ErrorIs(t, err, ErrAttemptsExhausted)
	assert.Equal(t, goal, env.Goal())
	assert.False(t, env.IsSolvable())
	assert.Equal(t, env.AgentStart(), env.Agent())
}

func TestSetOrRemoveObjRejectsUnplaceableObjects(t *testing.T) {
	env := newEnv(t, nil)
	for _, obj := range []core.Object{core.Empty, core.Goal} {
		_, err := env.SetOrRemoveObj(obj, true)
		assert.ErrorIs(t, err, ErrInvalidObject)
	}
}

func TestSetOrRemoveObjPlacesObject(t *testing.T) {
	env := newEnv(t, nil)
	before := env.Grid().Clone()

	p, err := env.SetOrRemoveObj(core.Lava, true)
	require.NoError(t, err)

	assert.Equal(t, core.Lava, env.Grid().Get(p))
	assert.NotEqual(t, env.AgentStart().Pos, p)
	assert.NotEqual(t, env.Goal(), p)
	assert.Equal(t, 1, env.Grid().Diff(before))
	assert.True(t, env.IsSolvable())
}

func TestSetOrRemoveObjRemovesMatchingObject(t *testing.T) {
	env := tinyEnv(t, nil)
	env.Grid().Set(core.Point{X: 2, Y: 1}, core.Wall)

	// A wall on (1,2) would seal the start in, so the only acceptable move is
	// removing the existing wall.
	p, err := env.SetOrRemoveObj(core.Wall, false)
	require.NoError(t, err)
	assert.Equal(t, core.Point{X: 2, Y: 1}, p)
	assert.Equal(t, 12, env.Grid().Count(core.Wall), "only the border walls remain")
}

func TestSetOrRemoveObjHonoursAttemptCap(t *testing.T) {
	env := tinyEnv(t, func(c *Config) { c.Params.ObjectAttemptCap = 30 })
	env.Grid().Set(core.Point{X: 2, Y: 1}, core.Lava)
	env.Grid().Set(core.Point{X: 1, Y: 2}, core.Lava)
	before := env.Grid().Clone()

	_, err := env.SetOrRemoveObj(core.Wall, false)
	require.ErrorIs(t, err, ErrAttemptsExhausted)
	assert.Zero(t, env.Grid().Diff(before))
}

func TestSetOrRemoveObjKeepsGoalHiddenOnRemoval(t *testing.T) {
	start := gridworld.Pose{Pos: core.Point{X: 1, Y: 6}, Dir: 0}
	build := func(seed int64) *Env {
		env := newEnv(t, func(c *Config) {
			c.Start = start
			c.Seed = seed
			c.Params.SolvabilitySteps = 300
		})
		for y := 1; y < 7; y++ {
			env.Grid().Set(core.Point{X: 3, Y: y}, core.Wall)
		}
		return env
	}

	env := build(1)
	require.False(t, env.goalInView(start))
	env.Grid().Set(core.Point{X: 3, Y: 6}, core.Empty)
	require.True(t, env.goalInView(start), "a gap in line with the goal exposes it")

	// The wall column makes every placement unsolvable, so only removals can
	// commit, and only those that keep the goal out of sight.
	for seed := int64(100); seed < 105; seed++ {
		env := build(seed)
		p, err := env.SetOrRemoveObj(core.Wall, true)
		require.NoError(t, err)
		assert.Equal(t, 3, p.X)
		assert.Equal(t, core.Empty, env.Grid().Get(p))
		assert.False(t, env.goalInView(start), "removal at %v exposed the goal", p)
	}
}

func TestAttemptBudgetScalesWithGrid(t *testing.T) {
	env := newEnv(t, nil)
	assert.Equal(t, 10*8*8, env.attemptBudget())

	small := tinyEnv(t, func(c *Config) { c.Params.AttemptFactor = 2 })
	assert.Equal(t, 2*4*4, small.attemptBudget())
}
