package font6x8

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

const (
	Width  = 6
	Height = 8
	// Ascent is the distance from the top row of a cell to its baseline.
	Ascent = 7
)

// Font is a 6x8 monospace bitmap font covering printable ASCII. Other runes
// render as '?'.
//
// It implements tinyfont.Fonter. Concurrent access is not safe due to
// internal glyph reuse.
var Font tinyfont.Fonter = &font6x8{}

type font6x8 struct {
	g glyph
}

type glyph struct {
	r rune
}

func (g *glyph) Draw(display drivers.Displayer, x, y int16, c color.RGBA) {
	cols := Columns(g.r)
	for col, bits := range cols {
		// Bit 0 is the top row.
		for row := 0; row < Height; row++ {
			if bits&(1<<row) == 0 {
				continue
			}
			display.SetPixel(x+int16(col), y-int16(Ascent-row), c)
		}
	}
}

func (g *glyph) Info() tinyfont.GlyphInfo {
	return tinyfont.GlyphInfo{
		Rune:     g.r,
		Width:    Width,
		Height:   Height,
		XAdvance: Width,
		XOffset:  0,
		YOffset:  -Ascent,
	}
}

func (f *font6x8) GetYAdvance() uint8 { return Height }

func (f *font6x8) GetGlyph(r rune) tinyfont.Glypher {
	f.g.r = r
	return &f.g
}

// Columns returns the five pixel columns of r, left to right.
func Columns(r rune) [5]byte {
	if r < 0x20 || r > 0x7e {
		r = '?'
	}
	var out [5]byte
	copy(out[:], glyphData[int(r-0x20)*5:])
	return out
}
