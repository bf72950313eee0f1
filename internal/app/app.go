//go:build ebiten

package app

import (
	"image/color"
	"time"

	"dyngrid/internal/core"
	"dyngrid/internal/render"
	"dyngrid/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// fallbackPalette is used for sims that do not provide their own colors.
var fallbackPalette = []color.RGBA{{A: 255}, {R: 255, G: 255, B: 255, A: 255}}

// minInterval bounds how fast the speed-up key can drive the cadence.
const minInterval = 15 * time.Millisecond

type noveltyResetter interface {
	ResetSpatialNoveltyGrid()
}

// Game adapts a core simulation to the ebiten.Game interface. The sim
// advances once per cadence tick rather than once per frame.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	cadence *core.Cadence
	palette []color.RGBA

	scale    int
	panel    int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, cfg *Config) *Game {
	size := sim.Size()
	g := &Game{
		sim:     sim,
		painter: render.NewGridPainter(size.W, size.H),
		overlay: ui.NewOverlay(sim, cfg.Scale),
		hud:     ui.NewHUD(sim, cfg.Panel),
		cadence: core.NewCadence(cfg.Interval),
		palette: fallbackPalette,
		scale:   cfg.Scale,
		panel:   max(cfg.Panel, 0),
		seed:    cfg.Seed,
	}
	if provider, ok := sim.(core.PaletteProvider); ok {
		g.palette = provider.Palette()
	}
	return g
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame input and advances the simulation when due.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		if r, ok := g.sim.(noveltyResetter); ok {
			r.ResetSpatialNoveltyGrid()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		g.cadence.SetInterval(max(g.cadence.Interval()/2, minInterval))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		g.cadence.SetInterval(g.cadence.Interval() * 2)
	}

	g.overlay.Update()
	g.hud.Update(g.sim.Size().W * g.scale)

	// Drain the cadence while paused so resuming does not burst.
	due := g.cadence.Due()
	if g.tickOnce || (due && !g.paused) {
		g.sim.Step()
		g.tickOnce = false
	}
	return nil
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.palette, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.sim.Size().W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.panel, s.H * g.scale
}
