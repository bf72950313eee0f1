package core

// Object enumerates what a single grid cell can hold.
type Object uint8

const (
	Empty Object = iota
	Wall
	Lava
	Sand
	Goal
)

var objectNames = [...]string{"empty", "wall", "lava", "sand", "goal"}

var objectRunes = [...]rune{'.', '#', '~', ':', 'G'}

// String returns the lowercase object name.
func (o Object) String() string {
	if int(o) < len(objectNames) {
		return objectNames[o]
	}
	return "unknown"
}

// Rune returns the single-character rendering used by text dumps.
func (o Object) Rune() rune {
	if int(o) < len(objectRunes) {
		return objectRunes[o]
	}
	return '?'
}

// CanOverlap reports whether the agent may stand on a cell holding o.
func (o Object) CanOverlap() bool { return o != Wall }

// SeeBehind reports whether o lets sight pass through it.
func (o Object) SeeBehind() bool { return o != Wall }

// ParseObject maps a name produced by String back to an Object.
func ParseObject(name string) (Object, bool) {
	for i, n := range objectNames {
		if n == name {
			return Object(i), true
		}
	}
	return Empty, false
}

// Point addresses a cell by column X and row Y.
type Point struct {
	X, Y int
}

// Grid stores one Object per cell in row-major order.
type Grid struct {
	W, H int
	data []Object
}

// NewGrid allocates an empty grid with the given dimensions.
func NewGrid(w, h int) *Grid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid{W: w, H: h, data: make([]Object, w*h)}
}

// Cells exposes the backing slice so callers can iterate all cells directly.
func (g *Grid) Cells() []Object { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.W + x }

// InBounds reports whether p lies inside the grid.
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.W && p.Y >= 0 && p.Y < g.H
}

// Get returns the object at p. Out-of-bounds reads return Wall.
func (g *Grid) Get(p Point) Object {
	if !g.InBounds(p) {
		return Wall
	}
	return g.data[g.Index(p.X, p.Y)]
}

// Set stores obj at p. Out-of-bounds writes are ignored.
func (g *Grid) Set(p Point, obj Object) {
	if !g.InBounds(p) {
		return
	}
	g.data[g.Index(p.X, p.Y)] = obj
}

// WallRect draws the outline of the rectangle with top-left (x, y) in walls.
func (g *Grid) WallRect(x, y, w, h int) {
	for i := x; i < x+w; i++ {
		g.Set(Point{i, y}, Wall)
		g.Set(Point{i, y + h - 1}, Wall)
	}
	for j := y; j < y+h; j++ {
		g.Set(Point{x, j}, Wall)
		g.Set(Point{x + w - 1, j}, Wall)
	}
}

// Clear empties every cell.
func (g *Grid) Clear() {
	for i := range g.data {
		g.data[i] = Empty
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	return &Grid{W: g.W, H: g.H, data: append([]Object(nil), g.data...)}
}

// Count returns how many cells hold obj.
func (g *Grid) Count(obj Object) int {
	n := 0
	for _, c := range g.data {
		if c == obj {
			n++
		}
	}
	return n
}

// Find returns the first cell holding obj in row-major order.
func (g *Grid) Find(obj Object) (Point, bool) {
	for i, c := range g.data {
		if c == obj {
			return Point{X: i % g.W, Y: i / g.W}, true
		}
	}
	return Point{}, false
}

// Diff counts cells whose contents differ between g and other. Grids of
// different dimensions differ in every cell of the larger one.
func (g *Grid) Diff(other *Grid) int {
	if other == nil || g.W != other.W || g.H != other.H {
		n := len(g.data)
		if other != nil && len(other.data) > n {
			n = len(other.data)
		}
		return n
	}
	n := 0
	for i, c := range g.data {
		if c != other.data[i] {
			n++
		}
	}
	return n
}

// String renders the grid one row per line using Object.Rune.
func (g *Grid) String() string {
	buf := make([]rune, 0, (g.W+1)*g.H)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			buf = append(buf, g.data[g.Index(x, y)].Rune())
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
