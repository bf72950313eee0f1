package gridworld

import "dyngrid/internal/core"

// Unseen marks observation cells hidden behind walls.
const Unseen uint8 = 0xff

// Observation is the egocentric view square. The agent sits at column
// Size/2 of the bottom row, facing up. Image holds one core.Object value per
// view cell in row-major order, or Unseen.
type Observation struct {
	Size  int
	Dir   int
	Image []uint8
}

// At returns the encoded view cell at view coordinates (vx, vy).
func (o Observation) At(vx, vy int) uint8 {
	return o.Image[vy*o.Size+vx]
}

// viewOrigin returns the world cell that maps to view coordinates (0, 0).
func (e *Env) viewOrigin(p Pose) (tx, ty int) {
	d := dirVec[p.Dir&3]
	rx, ry := -d.Y, d.X
	sz := e.cfg.ViewSize
	hs := sz / 2
	tx = p.Pos.X + d.X*(sz-1) - rx*hs
	ty = p.Pos.Y + d.Y*(sz-1) - ry*hs
	return tx, ty
}

// ViewCoords maps a world cell into view coordinates for pose p. The last
// return value is false when the cell falls outside the view square.
func (e *Env) ViewCoords(p Pose, target core.Point) (int, int, bool) {
	d := dirVec[p.Dir&3]
	rx, ry := -d.Y, d.X
	tx, ty := e.viewOrigin(p)
	lx, ly := target.X-tx, target.Y-ty
	vx := rx*lx + ry*ly
	vy := -(d.X*lx + d.Y*ly)
	sz := e.cfg.ViewSize
	if vx < 0 || vy < 0 || vx >= sz || vy >= sz {
		return 0, 0, false
	}
	return vx, vy, true
}

// worldCoords is the inverse of ViewCoords.
func (e *Env) worldCoords(p Pose, vx, vy int) core.Point {
	d := dirVec[p.Dir&3]
	rx, ry := -d.Y, d.X
	tx, ty := e.viewOrigin(p)
	return core.Point{X: tx + vx*rx - vy*d.X, Y: ty + vx*ry - vy*d.Y}
}

// InView reports whether target lies inside the live agent's view square.
// Occlusion is not considered.
func (e *Env) InView(target core.Point) bool {
	_, _, ok := e.ViewCoords(e.agent, target)
	return ok
}

// CanSee reports whether the live agent sees target, with walls blocking
// sight.
func (e *Env) CanSee(target core.Point) bool {
	vx, vy, ok := e.ViewCoords(e.agent, target)
	if !ok {
		return false
	}
	sz := e.cfg.ViewSize
	return visibilityMask(e.viewSlice(e.agent), sz)[vy*sz+vx]
}

// viewSlice copies the view square for pose p out of the grid; cells beyond
// the grid edge read as walls.
func (e *Env) viewSlice(p Pose) []core.Object {
	sz := e.cfg.ViewSize
	cells := make([]core.Object, sz*sz)
	for vy := 0; vy < sz; vy++ {
		for vx := 0; vx < sz; vx++ {
			cells[vy*sz+vx] = e.grid.Get(e.worldCoords(p, vx, vy))
		}
	}
	return cells
}

// visibilityMask propagates sight from the agent cell towards the far edge
// of the view, stopping at cells that cannot be seen behind.
func visibilityMask(cells []core.Object, sz int) []bool {
	mask := make([]bool, sz*sz)
	mask[(sz-1)*sz+sz/2] = true
	idx := func(i, j int) int { return j*sz + i }

	for j := sz - 1; j >= 0; j-- {
		for i := 0; i < sz-1; i++ {
			if !mask[idx(i, j)] || !cells[idx(i, j)].SeeBehind() {
				continue
			}
			mask[idx(i+1, j)] = true
			if j > 0 {
				mask[idx(i+1, j-1)] = true
				mask[idx(i, j-1)] = true
			}
		}
		for i := sz - 1; i > 0; i-- {
			if !mask[idx(i, j)] || !cells[idx(i, j)].SeeBehind() {
				continue
			}
			mask[idx(i-1, j)] = true
			if j > 0 {
				mask[idx(i-1, j-1)] = true
				mask[idx(i, j-1)] = true
			}
		}
	}
	return mask
}

// VisibleCells returns the in-bounds world cells the agent would see from
// pose p with walls blocking sight.
func (e *Env) VisibleCells(p Pose) []core.Point {
	sz := e.cfg.ViewSize
	mask := visibilityMask(e.viewSlice(p), sz)
	var out []core.Point
	for vy := 0; vy < sz; vy++ {
		for vx := 0; vx < sz; vx++ {
			if !mask[vy*sz+vx] {
				continue
			}
			w := e.worldCoords(p, vx, vy)
			if e.grid.InBounds(w) {
				out = append(out, w)
			}
		}
	}
	return out
}

// Observe encodes the live agent's egocentric view.
func (e *Env) Observe() Observation {
	sz := e.cfg.ViewSize
	cells := e.viewSlice(e.agent)
	mask := visibilityMask(cells, sz)
	img := make([]uint8, len(cells))
	for i, c := range cells {
		if mask[i] {
			img[i] = uint8(c)
		} else {
			img[i] = Unseen
		}
	}
	return Observation{Size: sz, Dir: e.agent.Dir, Image: img}
}
