package dynamic

import (
	"fmt"
	"image/color"

	"dyngrid/internal/core"
)

// displayAgent is the display value of the agent start cell; values below it
// are core.Object values.
const displayAgent = uint8(core.Goal) + 1

var gridPalette = []color.RGBA{
	core.Empty:   {R: 12, G: 12, B: 16, A: 255},
	core.Wall:    {R: 110, G: 110, B: 120, A: 255},
	core.Lava:    {R: 255, G: 90, B: 40, A: 255},
	core.Sand:    {R: 200, G: 170, B: 110, A: 255},
	core.Goal:    {R: 60, G: 190, B: 80, A: 255},
	displayAgent: {R: 220, G: 40, B: 40, A: 255},
}

func (s *Sim) rebuildDisplay() {
	cells := s.env.Grid().Cells()
	if len(s.display) != len(cells) {
		s.display = make([]uint8, len(cells))
	}
	for i, c := range cells {
		s.display[i] = uint8(c)
	}
	start := s.env.AgentStart().Pos
	s.display[s.env.Grid().Index(start.X, start.Y)] = displayAgent
}

// Palette maps display values to colors.
func (s *Sim) Palette() []color.RGBA { return gridPalette }

// Heatmap exposes the novelty field for overlays.
func (s *Sim) Heatmap() ([]float64, float64) {
	n := s.env.SpatialNovelty()
	return n.Snapshot(), n.Max()
}

// ResetSpatialNoveltyGrid clears the novelty heat map.
func (s *Sim) ResetSpatialNoveltyGrid() { s.env.ResetSpatialNoveltyGrid() }

// StartView lists the cells visible from the start pose.
func (s *Sim) StartView() []core.Point {
	return s.env.World().VisibleCells(s.env.AgentStart())
}

// StartHeading reports the start cell and the direction it faces.
func (s *Sim) StartHeading() (core.Point, int) {
	start := s.env.AgentStart()
	return start.Pos, start.Dir
}

// Status summarises the last alteration for the HUD.
func (s *Sim) Status() []string {
	lines := []string{fmt.Sprintf("altered %d", s.altered)}
	switch {
	case s.lastErr != nil:
		lines = append(lines, "last: "+string(s.lastOutcome.Category)+" failed")
	case s.lastOutcome.Changed:
		p := s.lastOutcome.Pos
		lines = append(lines, fmt.Sprintf("last: %s (%d,%d)", s.lastOutcome.Category, p.X, p.Y))
	}
	lines = append(lines, fmt.Sprintf("novelty peak %.2f", s.env.SpatialNovelty().Max()))
	return lines
}
