//go:build ebiten

package ui

import (
	"image/color"

	"dyngrid/internal/core"
	"dyngrid/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type viewProvider interface {
	StartView() []core.Point
}

type headingProvider interface {
	StartHeading() (core.Point, int)
}

var (
	noveltyTint = color.RGBA{R: 255, G: 200, B: 40, A: 190}
	viewTint    = color.RGBA{R: 90, G: 160, B: 255, A: 110}
	headingTint = color.RGBA{R: 255, G: 255, B: 255, A: 230}
)

// Overlay draws optional debugging visuals on top of the grid: the novelty
// heat map (key 1), the cells visible from the start pose (key 2) and the
// start heading.
type Overlay struct {
	sim         core.Sim
	scale       int
	showNovelty bool
	showView    bool

	heat    *render.GridPainter
	viewBuf []float64
	pixel   *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	size := sim.Size()
	o := &Overlay{
		sim:         sim,
		scale:       scale,
		showNovelty: true,
		heat:        render.NewGridPainter(size.W, size.H),
		viewBuf:     make([]float64, size.W*size.H),
	}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update polls the toggle keys.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showNovelty = !o.showNovelty
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showView = !o.showView
	}
}

// Draw renders the enabled layers onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.sim.Size()
	if size.W <= 0 || size.H <= 0 {
		return
	}
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}

	if o.showNovelty {
		if provider, ok := o.sim.(core.HeatmapProvider); ok {
			values, peak := provider.Heatmap()
			o.heat.BlitHeat(screen, values, peak, noveltyTint, scale)
		}
	}
	if o.showView {
		if provider, ok := o.sim.(viewProvider); ok {
			clear(o.viewBuf)
			for _, p := range provider.StartView() {
				if p.X >= 0 && p.Y >= 0 && p.X < size.W && p.Y < size.H {
					o.viewBuf[p.Y*size.W+p.X] = 1
				}
			}
			o.heat.BlitHeat(screen, o.viewBuf, 1, viewTint, scale)
		}
	}
	if provider, ok := o.sim.(headingProvider); ok {
		pos, dir := provider.StartHeading()
		o.drawHeading(screen, pos, dir, scale)
	}
}

// drawHeading marks the edge of the start cell the agent faces.
func (o *Overlay) drawHeading(screen *ebiten.Image, pos core.Point, dir, scale int) {
	thick := float64(max(scale/5, 1))
	s := float64(scale)
	x, y := float64(pos.X)*s, float64(pos.Y)*s
	w, h := s, s
	switch dir {
	case 0:
		x, w = x+s-thick, thick
	case 1:
		y, h = y+s-thick, thick
	case 2:
		w = thick
	default:
		h = thick
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(headingTint)
	screen.DrawImage(o.pixel, op)
}
