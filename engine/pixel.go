package engine

import "image/color"

// Pixel is an 8-bit RGBA colour.
type Pixel struct {
	R, G, B, A uint8
}

// RGB returns an opaque pixel.
func RGB(r, g, b uint8) Pixel { return Pixel{r, g, b, 0xff} }

// RGBA implements color.Color.
func (p Pixel) RGBA() (r, g, b, a uint32) {
	return color.RGBA(p).RGBA()
}

// Color converts p for use with image and driver APIs.
func (p Pixel) Color() color.RGBA { return color.RGBA(p) }

// DefaultPixel is the state of a freshly allocated or resized canvas.
var DefaultPixel = Pixel{0, 0, 0, 0xff}

var (
	White       = RGB(255, 255, 255)
	Grey        = RGB(192, 192, 192)
	DarkGrey    = RGB(128, 128, 128)
	Black       = RGB(0, 0, 0)
	Red         = RGB(255, 0, 0)
	DarkRed     = RGB(128, 0, 0)
	Yellow      = RGB(255, 255, 0)
	DarkYellow  = RGB(128, 128, 0)
	Green       = RGB(0, 255, 0)
	DarkGreen   = RGB(0, 128, 0)
	Cyan        = RGB(0, 255, 255)
	DarkCyan    = RGB(0, 128, 128)
	Blue        = RGB(0, 0, 255)
	DarkBlue    = RGB(0, 0, 128)
	Magenta     = RGB(255, 0, 255)
	DarkMagenta = RGB(128, 0, 128)
	Blank       = Pixel{}
)
