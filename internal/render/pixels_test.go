package render

import (
	"image/color"
	"slices"
	"testing"
)

func TestFillPaletteRGBA(t *testing.T) {
	palette := []color.RGBA{
		{R: 1, G: 2, B: 3, A: 255},
		{R: 10, G: 20, B: 30, A: 255},
	}
	buf := make([]byte, 4*3)
	fillPaletteRGBA(buf, []uint8{0, 1, 9}, palette)

	want := []byte{1, 2, 3, 255, 10, 20, 30, 255, 10, 20, 30, 255}
	if !slices.Equal(buf, want) {
		t.Fatalf("unexpected pixels: got %v want %v", buf, want)
	}
}

func TestFillPaletteRGBAEmptyPalette(t *testing.T) {
	buf := []byte{9, 9, 9, 9, 9, 9, 9, 9}
	fillPaletteRGBA(buf, []uint8{1, 2}, nil)
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("byte %d = %d, want 0", i, b)
		}
	}
}

func TestFillHeatRGBA(t *testing.T) {
	tint := color.RGBA{R: 255, G: 0, B: 0, A: 200}
	buf := make([]byte, 4*3)
	fillHeatRGBA(buf, []float64{0, 0.25, 1}, 1, tint)

	if !slices.Equal(buf[0:4], []byte{0, 0, 0, 0}) {
		t.Fatalf("zero cell should be transparent, got %v", buf[0:4])
	}
	if buf[7] != 100 {
		t.Fatalf("quarter-peak alpha = %d, want 100", buf[7])
	}
	if buf[4] != 100 {
		t.Fatalf("red channel should be premultiplied, got %d", buf[4])
	}
	if !slices.Equal(buf[8:12], []byte{200, 0, 0, 200}) {
		t.Fatalf("peak cell = %v", buf[8:12])
	}
}

func TestFillHeatRGBANoPeak(t *testing.T) {
	buf := []byte{1, 1, 1, 1}
	fillHeatRGBA(buf, []float64{3}, 0, color.RGBA{R: 255, A: 255})
	if !slices.Equal(buf, []byte{0, 0, 0, 0}) {
		t.Fatalf("expected transparent pixel without a peak, got %v", buf)
	}
}
