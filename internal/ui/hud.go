//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"
	"unicode"

	"dyngrid/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type parameterProvider interface {
	Parameters() core.ParameterSnapshot
}

type statusProvider interface {
	Status() []string
}

var (
	panelBG     = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	titleColor  = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor  = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	mutedColor  = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	buttonBG    = color.RGBA{R: 54, G: 56, B: 64, A: 255}
	buttonOff   = color.RGBA{R: 32, G: 34, B: 40, A: 255}
	buttonFG    = color.RGBA{R: 230, G: 230, B: 240, A: 255}
	buttonFGOff = color.RGBA{R: 120, G: 120, B: 130, A: 255}
)

// HUD renders the parameter panel to the right of the grid. Int and float
// controls get -/+ buttons; bool controls use the same pair as off/on.
type HUD struct {
	sim      core.Sim
	width    int
	panel    *ebiten.Image
	snapshot core.ParameterSnapshot
	status   []string
	title    string
	offsetX  int

	controls    []hudControlState
	intSetter   core.IntParameterSetter
	floatSetter core.FloatParameterSetter
	boolSetter  core.BoolParameterSetter

	pixel *ebiten.Image
}

type hudControlState struct {
	control core.ParameterControl
	value   string

	intValue   int
	floatValue float64
	boolValue  bool
	hasValue   bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

// NewHUD constructs a HUD for sim with a panel of the given width.
func NewHUD(sim core.Sim, width int) *HUD {
	h := &HUD{sim: sim, width: max(width, 0), title: buildTitle(sim)}
	if h.width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		for i, ctrl := range provider.ParameterControls() {
			top := controlsTop + i*lineHeight
			buttonY := top + (lineHeight-buttonSize)/2
			plus := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
			minus := plus.Sub(image.Pt(buttonSize+buttonGap, 0))
			h.controls = append(h.controls, hudControlState{control: ctrl, value: "--", top: top, minusRect: minus, plusRect: plus})
		}
	}
	h.intSetter, _ = sim.(core.IntParameterSetter)
	h.floatSetter, _ = sim.(core.FloatParameterSetter)
	h.boolSetter, _ = sim.(core.BoolParameterSetter)
	return h
}

// Update refreshes the cached snapshot and handles clicks. panelOffsetX is
// the screen x of the panel's left edge.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.offsetX = panelOffsetX
	if provider, ok := h.sim.(statusProvider); ok {
		h.status = provider.Status()
	}
	provider, ok := h.sim.(parameterProvider)
	if !ok {
		h.snapshot = core.ParameterSnapshot{}
		return
	}
	h.snapshot = provider.Parameters()
	h.refreshControlValues()
	h.handleInput()
}

// Draw paints the panel at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	height := h.sim.Size().H * max(scale, 1)
	if height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(panelBG)
	h.drawControls()
	h.drawStatus(height)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func buildTitle(sim core.Sim) string {
	if sim == nil || sim.Name() == "" {
		return "Controls"
	}
	r := []rune(sim.Name())
	r[0] = unicode.ToUpper(r[0])
	return string(r) + " Controls"
}

func (h *HUD) refreshControlValues() {
	for i := range h.controls {
		state := &h.controls[i]
		state.hasValue = false
		state.value = "--"
		param, ok := h.snapshot.Lookup(state.control.Key)
		if !ok {
			continue
		}
		switch state.control.Type {
		case core.ParamTypeInt:
			if v, err := strconv.Atoi(param.Value); err == nil {
				state.intValue, state.value, state.hasValue = v, param.Value, true
			}
		case core.ParamTypeFloat:
			if v, err := strconv.ParseFloat(param.Value, 64); err == nil {
				state.floatValue, state.value, state.hasValue = v, formatFloat(state.control, v), true
			}
		case core.ParamTypeBool:
			if v, err := strconv.ParseBool(param.Value); err == nil {
				state.boolValue, state.hasValue = v, true
				state.value = "off"
				if v {
					state.value = "on"
				}
			}
		}
	}
}

func (h *HUD) handleInput() {
	if len(h.controls) == 0 || !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	pt := image.Pt(mx-h.offsetX, my)
	for i := range h.controls {
		state := &h.controls[i]
		if !state.hasValue {
			continue
		}
		switch {
		case pt.In(state.minusRect):
			h.apply(state, -1)
			return
		case pt.In(state.plusRect):
			h.apply(state, 1)
			return
		}
	}
}

// target computes the value a click in direction would request, and whether
// the click would change anything.
func (h *HUD) target(state *hudControlState, direction int) (float64, bool) {
	c := state.control
	switch c.Type {
	case core.ParamTypeInt:
		if h.intSetter == nil {
			return 0, false
		}
		step := max(int(math.Round(c.Step)), 1)
		v := float64(state.intValue + direction*step)
		v = clampControl(c, v)
		return v, int(v) != state.intValue
	case core.ParamTypeFloat:
		if h.floatSetter == nil {
			return 0, false
		}
		step := c.Step
		if step <= 0 {
			step = 0.05
		}
		v := clampControl(c, state.floatValue+float64(direction)*step)
		return v, math.Abs(v-state.floatValue) > 1e-9
	case core.ParamTypeBool:
		if h.boolSetter == nil {
			return 0, false
		}
		on := direction > 0
		if on == state.boolValue {
			return 0, false
		}
		if on {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func (h *HUD) apply(state *hudControlState, direction int) {
	v, ok := h.target(state, direction)
	if !ok {
		return
	}
	key := state.control.Key
	switch state.control.Type {
	case core.ParamTypeInt:
		h.intSetter.SetIntParameter(key, int(v))
	case core.ParamTypeFloat:
		h.floatSetter.SetFloatParameter(key, v)
	case core.ParamTypeBool:
		h.boolSetter.SetBoolParameter(key, v > 0)
	}
	// Re-read rather than trusting the request; setters may clamp.
	if provider, ok := h.sim.(parameterProvider); ok {
		h.snapshot = provider.Parameters()
		h.refreshControlValues()
	}
}

func clampControl(c core.ParameterControl, v float64) float64 {
	if c.HasMin && v < c.Min {
		v = c.Min
	}
	if c.HasMax && v > c.Max {
		v = c.Max
	}
	return v
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	headerY := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, headerY, titleColor)
	if len(h.controls) == 0 {
		text.Draw(h.panel, "No adjustable parameters", face, panelPadding, headerY+infoSpacing, mutedColor)
		return
	}
	for i := range h.controls {
		state := &h.controls[i]
		baseline := state.top + labelBaseline
		text.Draw(h.panel, state.control.Label, face, panelPadding, baseline, labelColor)

		valueColor := labelColor
		if !state.hasValue {
			valueColor = mutedColor
		}
		valueX := state.minusRect.Min.X - buttonGap - text.BoundString(face, state.value).Dx()
		text.Draw(h.panel, state.value, face, valueX, baseline, valueColor)

		minusLabel, plusLabel := "-", "+"
		if state.control.Type == core.ParamTypeBool {
			minusLabel, plusLabel = "0", "1"
		}
		_, minusOK := h.target(state, -1)
		_, plusOK := h.target(state, 1)
		h.drawButton(state.minusRect, minusLabel, state.hasValue && minusOK)
		h.drawButton(state.plusRect, plusLabel, state.hasValue && plusOK)
	}
}

func (h *HUD) drawStatus(height int) {
	lines := h.status
	if g, ok := h.findGroupSummary(); ok {
		lines = append([]string{g}, lines...)
	}
	lines = append(lines, keyHelp...)
	face := basicfont.Face7x13
	y := height - panelPadding - (len(lines)-1)*statusLineHeight
	for _, line := range lines {
		text.Draw(h.panel, line, face, panelPadding, y, mutedColor)
		y += statusLineHeight
	}
}

func (h *HUD) findGroupSummary() (string, bool) {
	for _, g := range h.snapshot.Groups {
		if g.Summary != "" {
			return strings.ToLower(g.Name) + ": " + g.Summary, true
		}
	}
	return "", false
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg, fg := buttonBG, buttonFG
	if !enabled {
		bg, fg = buttonOff, buttonFGOff
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func formatFloat(ctrl core.ParameterControl, value float64) string {
	precision := 1
	switch step := ctrl.Step; {
	case step <= 0:
		precision = 2
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

var keyHelp = []string{
	"space pause  n step  r reset",
	"s reseed  c clear novelty",
	"up/down speed  1 heat  2 view",
}

const (
	panelPadding     = 12
	lineHeight       = 32
	buttonSize       = 22
	buttonGap        = 6
	headerBaseline   = 18
	labelBaseline    = 21
	infoSpacing      = 36
	statusLineHeight = 16
	controlsTop      = panelPadding + headerBaseline + 14
)
