package dynamic

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"dyngrid/internal/core"
	"dyngrid/internal/gridworld"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEnv(t *testing.T, mutate func(*Config)) *Env {
	t.Helper()
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	env, err := New(cfg)
	require.NoError(t, err)
	return env
}

func encloseStart(env *Env) {
	g := env.Grid()
	g.Set(core.Point{X: 1, Y: 2}, core.Wall)
	g.Set(core.Point{X: 2, Y: 1}, core.Wall)
	g.Set(core.Point{X: 2, Y: 2}, core.Wall)
}

func TestIsSolvableFreshEnvironment(t *testing.T) {
	env := newEnv(t, nil)
	assert.True(t, env.IsSolvable())
	assert.Equal(t, env.AgentStart(), env.Agent(), "rollout must leave the agent on the start pose")
}

func TestIsSolvableIgnoresLivePose(t *testing.T) {
	env := newEnv(t, func(c *Config) { c.Params.SolvabilitySteps = 500 })
	encloseStart(env)
	env.World().SetAgent(gridworld.Pose{Pos: core.Point{X: 6, Y: 5}, Dir: 1})

	assert.False(t, env.IsSolvable(), "the walk must begin on the sealed start")
	assert.Equal(t, env.AgentStart(), env.Agent())
}

func TestIsSolvableEnclosedStart(t *testing.T) {
	env := newEnv(t, nil)
	encloseStart(env)
	assert.False(t, env.IsSolvable())
	assert.Equal(t, env.AgentStart(), env.Agent())
}

func TestIsSolvableRestoresPoseFromElsewhere(t *testing.T) {
	env := newEnv(t, nil)
	env.World().SetAgent(gridworld.Pose{Pos: core.Point{X: 4, Y: 4}, Dir: 2})
	env.IsSolvable()
	assert.Equal(t, env.AgentStart(), env.Agent())
}

func TestIsSolvableLavaRespawns(t *testing.T) {
	env := newEnv(t, nil)
	g := env.Grid()
	// Lava fence between start and goal: every crossing respawns the walker.
	for y := 1; y < 7; y++ {
		g.Set(core.Point{X: 3, Y: y}, core.Lava)
	}
	assert.False(t, env.IsSolvable())
	assert.Equal(t, env.AgentStart(), env.Agent())

	for y := 1; y < 7; y++ {
		g.Set(core.Point{X: 3, Y: y}, core.Sand)
	}
	assert.True(t, env.IsSolvable(), "sand is walkable")
}

func TestIsSolvableWarnsOnceForLargeGrids(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	env := newEnv(t, func(c *Config) {
		c.Width, c.Height = 12, 12
		c.Params.SolvabilitySteps = 50
		c.Logger = logger
	})

	env.IsSolvable()
	env.IsSolvable()
	assert.Equal(t, 1, strings.Count(buf.String(), "may be wrong on large grids"))

	env.Reset(7)
	env.IsSolvable()
	assert.Equal(t, 2, strings.Count(buf.String(), "may be wrong on large grids"), "reset re-arms the warning")

	buf.Reset()
	small := newEnv(t, func(c *Config) { c.Logger = logger })
	small.IsSolvable()
	assert.Empty(t, buf.String(), "8x8 grids are within the reliable budget")
}

func TestSeenFromRestoresPose(t *testing.T) {
	env := newEnv(t, nil)
	before := env.Agent()

	facingGoal := gridworld.Pose{Pos: core.Point{X: 6, Y: 2}, Dir: 1}
	assert.True(t, env.goalInView(facingGoal))
	assert.Equal(t, before, env.Agent())

	assert.False(t, env.goalInView(env.AgentStart()))
	assert.Equal(t, before, env.Agent())
}
