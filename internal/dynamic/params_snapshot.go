package dynamic

import "dyngrid/internal/core"

// Parameters reports the current tunables for the HUD.
func (s *Sim) Parameters() core.ParameterSnapshot {
	cfg := s.env.cfg
	p := cfg.Params
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				core.IntParam("w", "Width", cfg.Width),
				core.IntParam("h", "Height", cfg.Height),
				core.IntParam("view", "View size", cfg.ViewSize),
				core.Int64Param("seed", "Seed", cfg.Seed),
			},
		},
		{
			Name:    "Alteration",
			Summary: p.Table.String(),
			Params: []core.Parameter{
				core.BoolParam("visibility_check", "Visibility check", p.VisibilityCheck),
				core.BoolParam("track_novelty", "Track novelty", p.TrackNovelty),
				core.FloatParam("novelty_decay", "Novelty decay", p.NoveltyDecay),
				core.IntParam("altered", "Alterations", s.altered),
			},
		},
		{
			Name: "Search",
			Params: []core.Parameter{
				core.IntParam("solvability_steps", "Solvability steps", p.SolvabilitySteps),
				core.IntParam("attempt_factor", "Attempt factor", p.AttemptFactor),
				core.IntParam("object_attempt_cap", "Object attempt cap", p.ObjectAttemptCap),
				core.BoolParam("revert_unsolvable_start", "Revert unsolvable start", p.RevertUnsolvableStart),
			},
		},
	}}
}

// ParameterControls lists the HUD-adjustable tunables.
func (s *Sim) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "novelty_decay", Label: "Novelty decay", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "solvability_steps", Label: "Solvability steps", Type: core.ParamTypeInt, Step: 500, Min: 500, HasMin: true},
		{Key: "attempt_factor", Label: "Attempt factor", Type: core.ParamTypeInt, Step: 1, Min: 1, HasMin: true},
		{Key: "object_attempt_cap", Label: "Object attempt cap", Type: core.ParamTypeInt, Step: 50, Min: 0, HasMin: true},
		{Key: "visibility_check", Label: "Visibility check", Type: core.ParamTypeBool},
		{Key: "track_novelty", Label: "Track novelty", Type: core.ParamTypeBool},
		{Key: "revert_unsolvable_start", Label: "Revert bad start", Type: core.ParamTypeBool},
	}
}

// SetIntParameter updates an integer tunable. It reports false for unknown
// keys or out-of-range values.
func (s *Sim) SetIntParameter(key string, value int) bool {
	p := &s.env.cfg.Params
	switch key {
	case "solvability_steps":
		if value <= 0 {
			return false
		}
		p.SolvabilitySteps = value
	case "attempt_factor":
		if value <= 0 {
			return false
		}
		p.AttemptFactor = value
	case "object_attempt_cap":
		if value < 0 {
			return false
		}
		p.ObjectAttemptCap = value
	default:
		return false
	}
	return true
}

// SetFloatParameter updates a floating point tunable, clamping the novelty
// decay into [0, 1].
func (s *Sim) SetFloatParameter(key string, value float64) bool {
	switch key {
	case "novelty_decay":
		if value < 0 {
			value = 0
		}
		if value > 1 {
			value = 1
		}
		s.env.cfg.Params.NoveltyDecay = value
		return true
	default:
		return false
	}
}

// SetBoolParameter flips a boolean tunable.
func (s *Sim) SetBoolParameter(key string, value bool) bool {
	p := &s.env.cfg.Params
	switch key {
	case "visibility_check":
		p.VisibilityCheck = value
	case "track_novelty":
		p.TrackNovelty = value
	case "revert_unsolvable_start":
		p.RevertUnsolvableStart = value
	default:
		return false
	}
	return true
}
