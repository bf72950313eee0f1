package dynamic

import (
	"log/slog"
	"strconv"

	"dyngrid/internal/gridworld"
)

// Params holds the tunables of the alteration search.
type Params struct {
	// SolvabilitySteps is the random-walk budget of one solvability rollout.
	SolvabilitySteps int
	// AttemptFactor scales the start/goal attempt budget: factor*W*H.
	AttemptFactor int
	// ObjectAttemptCap bounds object placement attempts; zero means unbounded.
	ObjectAttemptCap int
	// RevertUnsolvableStart rolls back a start move the oracle rejects,
	// mirroring the goal mover. Off by default.
	RevertUnsolvableStart bool

	// Defaults used by drivers that alter repeatedly (CLI, viewer).
	Table           ProbabilityTable
	VisibilityCheck bool
	TrackNovelty    bool
	NoveltyDecay    float64
}

// Config controls the environment dimensions, seeding and alteration search.
type Config struct {
	Width    int
	Height   int
	Start    gridworld.Pose
	ViewSize int

	Seed int64

	Params Params

	// Logger receives advisory warnings and alteration traces. Nil uses slog.Default.
	Logger *slog.Logger
}

// DefaultConfig returns the 8x8 layout seeded with 1337.
func DefaultConfig() Config {
	world := gridworld.DefaultConfig()
	return Config{
		Width:    world.Width,
		Height:   world.Height,
		Start:    world.Start,
		ViewSize: world.ViewSize,
		Seed:     1337,
		Params: Params{
			SolvabilitySteps: 5000,
			AttemptFactor:    10,
			Table: ProbabilityTable{
				CategoryLava: 0.5,
				CategorySand: 0.5,
			},
			VisibilityCheck: true,
			TrackNovelty:    true,
			NoveltyDecay:    0.5,
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Values that fail to parse keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["size"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 3 {
			c.Width = parsed
			c.Height = parsed
		}
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 3 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 3 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["start_x"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Start.Pos.X = parsed
		}
	}
	if v, ok := cfg["start_y"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Start.Pos.Y = parsed
		}
	}
	if v, ok := cfg["start_dir"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed < gridworld.NumDirections {
			c.Start.Dir = parsed
		}
	}
	if v, ok := cfg["view"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 3 && parsed%2 == 1 {
			c.ViewSize = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["solvability_steps"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.SolvabilitySteps = parsed
		}
	}
	if v, ok := cfg["attempt_factor"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.AttemptFactor = parsed
		}
	}
	if v, ok := cfg["object_attempt_cap"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.ObjectAttemptCap = parsed
		}
	}
	if v, ok := cfg["revert_unsolvable_start"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Params.RevertUnsolvableStart = parsed
		}
	}
	if v, ok := cfg["table"]; ok {
		if parsed, err := ParseProbabilityTable(v); err == nil {
			c.Params.Table = parsed
		}
	}
	if v, ok := cfg["visibility_check"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Params.VisibilityCheck = parsed
		}
	}
	if v, ok := cfg["track_novelty"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Params.TrackNovelty = parsed
		}
	}
	if v, ok := cfg["novelty_decay"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Params.NoveltyDecay = parsed
		}
	}
	return c
}

func (c Config) worldConfig() gridworld.Config {
	return gridworld.Config{
		Width:    c.Width,
		Height:   c.Height,
		Start:    c.Start,
		ViewSize: c.ViewSize,
	}
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
