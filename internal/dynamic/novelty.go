package dynamic

import (
	"math"

	"dyngrid/internal/core"

	"gonum.org/v1/gonum/mat"
)

// Novelty accumulates, per cell, how much alteration activity happened
// nearby. Each update adds decay^distance to every cell, so values only grow
// until Reset.
type Novelty struct {
	w, h int
	m    *mat.Dense // h rows, w columns
}

// NewNovelty allocates a zeroed w x h field.
func NewNovelty(w, h int) *Novelty {
	return &Novelty{w: w, h: h, m: mat.NewDense(h, w, nil)}
}

// Size reports the field dimensions.
func (n *Novelty) Size() core.Size { return core.Size{W: n.w, H: n.h} }

// Update adds decay^d to every cell, d being the Euclidean distance to p.
// The cell at p gains exactly 1.
func (n *Novelty) Update(p core.Point, decay float64) {
	n.m.Apply(func(y, x int, v float64) float64 {
		d := math.Hypot(float64(x-p.X), float64(y-p.Y))
		return v + math.Pow(decay, d)
	}, n.m)
}

// Reset zeroes every cell.
func (n *Novelty) Reset() { n.m.Zero() }

// At returns the accumulated value at p.
func (n *Novelty) At(p core.Point) float64 { return n.m.At(p.Y, p.X) }

// Max returns the largest accumulated value.
func (n *Novelty) Max() float64 { return mat.Max(n.m) }

// Sum returns the total over all cells.
func (n *Novelty) Sum() float64 { return mat.Sum(n.m) }

// Snapshot returns a row-major copy of the field.
func (n *Novelty) Snapshot() []float64 {
	out := make([]float64, n.w*n.h)
	for y := 0; y < n.h; y++ {
		mat.Row(out[y*n.w:(y+1)*n.w], y, n.m)
	}
	return out
}

// Matrix exposes the field as a read-only gonum matrix, rows indexed by y.
func (n *Novelty) Matrix() mat.Matrix { return n.m }
