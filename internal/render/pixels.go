package render

import (
	"image/color"
	"math"
)

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// fillHeatRGBA tints each cell by its value relative to peak. Alpha scales
// with the square root of the ratio so faint activity stays visible; cells at
// zero, and every cell when peak is not positive, are transparent.
func fillHeatRGBA(buf []byte, values []float64, peak float64, tint color.RGBA) {
	for i, v := range values {
		base := i * 4
		if peak <= 0 || v <= 0 {
			buf[base+0], buf[base+1], buf[base+2], buf[base+3] = 0, 0, 0, 0
			continue
		}
		t := math.Sqrt(min(v/peak, 1))
		a := uint8(math.Round(float64(tint.A) * t))
		// Premultiplied alpha, as ebiten images expect.
		buf[base+0] = scaleComponent(tint.R, a)
		buf[base+1] = scaleComponent(tint.G, a)
		buf[base+2] = scaleComponent(tint.B, a)
		buf[base+3] = a
	}
}

func scaleComponent(c, a uint8) uint8 {
	return uint8((uint16(c)*uint16(a) + 127) / 255)
}
