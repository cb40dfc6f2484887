package engine

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"
)

// Canvas is the fixed-resolution pixel grid the application draws into.
// Coordinates are integers with the origin at the top left. Writes outside
// the grid are dropped.
type Canvas struct {
	img *image.RGBA
}

// NewCanvas returns a w x h canvas filled with DefaultPixel.
func NewCanvas(w, h int) (*Canvas, error) {
	c := &Canvas{}
	if err := c.Resize(w, h); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Canvas) Width() int  { return c.img.Rect.Dx() }
func (c *Canvas) Height() int { return c.img.Rect.Dy() }

// Pix returns the backing pixel bytes: row-major RGBA, stride 4*Width.
func (c *Canvas) Pix() []byte { return c.img.Pix }

// RGBA exposes the canvas as an image. Writes through it are visible on the
// next present.
func (c *Canvas) RGBA() *image.RGBA { return c.img }

// Resize reallocates the canvas and resets every pixel to DefaultPixel.
func (c *Canvas) Resize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("canvas %dx%d: %w", w, h, ErrInvalidSize)
	}
	c.img = image.NewRGBA(image.Rect(0, 0, w, h))
	c.Clear(DefaultPixel)
	return nil
}

// Clear sets every pixel to p.
func (c *Canvas) Clear(p Pixel) {
	xdraw.Draw(c.img, c.img.Rect, image.NewUniform(p.Color()), image.Point{}, xdraw.Src)
}

// Point sets the pixel at (x, y).
func (c *Canvas) Point(x, y int, p Pixel) {
	if !(image.Point{x, y}.In(c.img.Rect)) {
		return
	}
	i := c.img.PixOffset(x, y)
	s := c.img.Pix[i : i+4 : i+4]
	s[0], s[1], s[2], s[3] = p.R, p.G, p.B, p.A
}

// At returns the pixel at (x, y), or Blank outside the canvas.
func (c *Canvas) At(x, y int) Pixel {
	if !(image.Point{x, y}.In(c.img.Rect)) {
		return Blank
	}
	return Pixel(c.img.RGBAAt(x, y))
}

// Rect draws a w x h rectangle at (x, y): the outer ring in border, the
// strictly interior cells in fill.
func (c *Canvas) Rect(x, y, w, h int, border, fill Pixel) {
	if w <= 0 || h <= 0 {
		return
	}
	c.FillRect(x, y, w, h, border)
	c.FillRect(x+1, y+1, w-2, h-2, fill)
}

// FillRect sets every pixel of the w x h rectangle at (x, y) to p.
func (c *Canvas) FillRect(x, y, w, h int, p Pixel) {
	if w <= 0 || h <= 0 {
		return
	}
	r := image.Rect(x, y, x+w, y+h).Intersect(c.img.Rect)
	if r.Empty() {
		return
	}
	xdraw.Draw(c.img, r, image.NewUniform(p.Color()), image.Point{}, xdraw.Src)
}

// Line draws from (x0, y0) to (x1, y1) inclusive.
func (c *Canvas) Line(x0, y0, x1, y1 int, p Pixel) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.Point(x0, y0, p)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// blend composites the non-transparent pixels of src over c at the origin.
func (c *Canvas) blend(src *image.RGBA) {
	r := src.Rect.Intersect(c.img.Rect)
	if r.Empty() {
		return
	}
	xdraw.Draw(c.img, r, src, r.Min, xdraw.Over)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
