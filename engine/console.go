package engine

import (
	"fmt"
	"image"
	"strings"

	"pixeng/fonts/font6x8"
)

const consoleTab = 4

// Console is a scrolling text overlay drawn on top of the canvas while
// visible. It never modifies the canvas itself: the overlay is composited
// into a copy just before upload.
//
// Console implements io.Writer.
type Console struct {
	overlay *Canvas
	cols    int
	rows    int

	lines []string
	cur   []rune

	visible bool
	dirty   bool

	Foreground Pixel
	Background Pixel
}

func newConsole(w, h int) *Console {
	c := &Console{Foreground: White, Background: Black}
	c.resize(w, h)
	return c
}

// resize fits the console to a w x h canvas. Scrollback beyond the new row
// count is dropped; long lines are kept and clipped when drawn.
func (c *Console) resize(w, h int) {
	c.overlay, _ = NewCanvas(w, h)
	c.cols = max(w/font6x8.Width, 1)
	c.rows = max(h/font6x8.Height, 1)
	c.trim()
	c.dirty = true
}

func (c *Console) Write(p []byte) (int, error) {
	for _, r := range string(p) {
		switch r {
		case '\n':
			c.newline()
		case '\r':
			c.cur = c.cur[:0]
		case '\t':
			n := consoleTab - len(c.cur)%consoleTab
			for i := 0; i < n; i++ {
				c.put(' ')
			}
		default:
			c.put(r)
		}
	}
	c.dirty = true
	return len(p), nil
}

// Printf formats to the console.
func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c, format, args...)
}

// Clear drops all text.
func (c *Console) Clear() {
	c.lines = c.lines[:0]
	c.cur = c.cur[:0]
	c.dirty = true
}

func (c *Console) Show()         { c.visible = true }
func (c *Console) Hide()         { c.visible = false }
func (c *Console) Toggle()       { c.visible = !c.visible }
func (c *Console) Visible() bool { return c.visible }

// Lines returns the rows currently on screen, oldest first. The last entry
// is the line being written.
func (c *Console) Lines() []string {
	out := make([]string, 0, len(c.lines)+1)
	out = append(out, c.lines...)
	return append(out, string(c.cur))
}

func (c *Console) put(r rune) {
	if len(c.cur) >= c.cols {
		c.newline()
	}
	c.cur = append(c.cur, r)
}

func (c *Console) newline() {
	c.lines = append(c.lines, string(c.cur))
	c.cur = c.cur[:0]
	c.trim()
}

// trim keeps rows-1 finished lines so the current line fits below them.
func (c *Console) trim() {
	if extra := len(c.lines) - (c.rows - 1); extra > 0 {
		c.lines = append(c.lines[:0], c.lines[extra:]...)
	}
}

// render redraws the overlay if the text changed since the last call.
func (c *Console) render() *image.RGBA {
	if !c.dirty {
		return c.overlay.RGBA()
	}
	c.overlay.Clear(Blank)
	w := c.overlay.Width()
	for i, line := range c.Lines() {
		if line == "" {
			continue
		}
		y := i * font6x8.Height
		c.overlay.FillRect(0, y, min(w, len([]rune(line))*font6x8.Width), font6x8.Height, c.Background)
		c.overlay.Text(0, y, strings.TrimRight(line, " "), c.Foreground)
	}
	c.dirty = false
	return c.overlay.RGBA()
}
