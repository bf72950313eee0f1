package dynamic

import (
	"log/slog"

	"dyngrid/internal/core"
)

// Sim drives an Env as a core.Sim: every Step applies one alteration using
// the configured probability table and options.
type Sim struct {
	env     *Env
	display []uint8

	lastOutcome Outcome
	lastErr     error
	altered     int
}

// NewSim builds a Sim from cfg.
func NewSim(cfg Config) (*Sim, error) {
	env, err := New(cfg)
	if err != nil {
		return nil, err
	}
	s := &Sim{env: env}
	s.rebuildDisplay()
	return s, nil
}

// Name returns the simulation identifier.
func (s *Sim) Name() string { return "dynamic" }

// Size reports the grid dimensions.
func (s *Sim) Size() core.Size { return s.env.World().Size() }

// Env exposes the underlying environment.
func (s *Sim) Env() *Env { return s.env }

// Cells exposes the display buffer.
func (s *Sim) Cells() []uint8 { return s.display }

// Reset regenerates the grid and clears the novelty field.
func (s *Sim) Reset(seed int64) {
	s.env.Reset(seed)
	s.altered = 0
	s.lastOutcome = Outcome{}
	s.lastErr = nil
	s.rebuildDisplay()
}

// Step applies one alteration. Failures are logged and kept for LastError;
// the grid is left as the failed call left it.
func (s *Sim) Step() {
	p := s.env.cfg.Params
	out, err := s.env.Alter(p.Table,
		WithVisibilityCheck(p.VisibilityCheck),
		WithNoveltyTracking(p.TrackNovelty),
		WithNoveltyDecay(p.NoveltyDecay),
	)
	s.lastOutcome, s.lastErr = out, err
	if err != nil {
		s.env.log.Error("alteration failed", "category", string(out.Category), "err", err)
	} else {
		s.altered++
	}
	s.rebuildDisplay()
}

// LastOutcome reports the most recent alteration.
func (s *Sim) LastOutcome() Outcome { return s.lastOutcome }

// LastError reports the error of the most recent alteration, if any.
func (s *Sim) LastError() error { return s.lastErr }

// Altered reports how many alterations committed since the last reset.
func (s *Sim) Altered() int { return s.altered }

func init() {
	core.Register("dynamic", func(cfg map[string]string) core.Sim {
		sim, err := NewSim(FromMap(cfg))
		if err != nil {
			slog.Warn("invalid dynamic config, falling back to defaults", "err", err)
			sim, _ = NewSim(DefaultConfig())
		}
		return sim
	})
}
