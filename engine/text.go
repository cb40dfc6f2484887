package engine

import (
	"image/color"
	"math"
	"strings"

	"pixeng/fonts/font6x8"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// Text draws s with its top-left corner at (x, y) in the built-in 6x8 font.
// Each '\n' starts a new line below. Glyphs outside the canvas are dropped.
func (c *Canvas) Text(x, y int, s string, p Pixel) {
	for i, line := range strings.Split(s, "\n") {
		c.textLine(x, y+i*font6x8.Height, line, p)
	}
}

// textLine clips one line to the drawable area before handing it to
// tinyfont, whose coordinates are int16.
func (c *Canvas) textLine(x, y int, line string, p Pixel) {
	w, h := clip16(c.Width()), clip16(c.Height())
	if line == "" || y >= h || y+font6x8.Height <= 0 || x >= w {
		return
	}
	runes := []rune(line)
	if x < 0 {
		skip := -x / font6x8.Width
		if skip >= len(runes) {
			return
		}
		runes = runes[skip:]
		x += skip * font6x8.Width
	}
	if n := (w - x + font6x8.Width - 1) / font6x8.Width; n < len(runes) {
		runes = runes[:n]
	}
	tinyfont.WriteLine(canvasDisplay{c}, font6x8.Font, int16(x), int16(y+font6x8.Ascent), string(runes), p.Color())
}

// clip16 limits a canvas dimension so that a glyph cell past it still fits
// in an int16.
func clip16(v int) int {
	return min(v, math.MaxInt16-2*font6x8.Width)
}

// TextWidth returns the advance width of s in pixels.
func TextWidth(s string) int {
	_, w := tinyfont.LineWidth(font6x8.Font, s)
	return int(w)
}

// canvasDisplay lets tinyfont draw onto a Canvas.
type canvasDisplay struct {
	c *Canvas
}

func (d canvasDisplay) Size() (int16, int16) {
	return int16(clip16(d.c.Width())), int16(clip16(d.c.Height()))
}

func (d canvasDisplay) SetPixel(x, y int16, c color.RGBA) {
	d.c.Point(int(x), int(y), Pixel(c))
}

func (d canvasDisplay) Display() error { return nil }

var _ drivers.Displayer = canvasDisplay{}
