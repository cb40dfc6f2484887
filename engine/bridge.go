package engine

import (
	"fmt"
	"image"
	"image/color"

	"pixeng/hal"
)

// Uniform names shared by the GLSL and Kage canvas shaders.
const (
	uniformCanvas     = "Canvas"
	uniformCanvasSize = "CanvasSize"
)

var letterboxColor = color.RGBA{0, 0, 0, 0xff}

// bridge owns the GPU side of the canvas: one texture sized to the canvas,
// one static quad and the shader that samples the texture.
type bridge struct {
	g      hal.Graphics
	shader *Shader
	tex    hal.Texture
	quad   hal.Quad

	released bool
}

func newBridge(g hal.Graphics, shader *Shader, w, h int) (*bridge, error) {
	tex, err := g.NewTexture(w, h)
	if err != nil {
		return nil, fmt.Errorf("canvas texture: %w", err)
	}
	quad, err := g.NewQuad()
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("canvas quad: %w", err)
	}
	return &bridge{g: g, shader: shader, tex: tex, quad: quad}, nil
}

// present uploads c in full and draws it letterboxed into a sw x sh drawable.
func (b *bridge) present(c *Canvas, sw, sh int) error {
	cw, ch := c.Width(), c.Height()
	if tw, th := b.tex.Size(); tw != cw || th != ch {
		tex, err := b.g.NewTexture(cw, ch)
		if err != nil {
			return fmt.Errorf("reallocate canvas texture: %w", err)
		}
		b.tex.Release()
		b.tex = tex
		Logger().Debug("canvas texture reallocated", "width", cw, "height", ch)
	}
	if err := b.tex.Upload(c.Pix()); err != nil {
		return err
	}

	b.g.Clear(letterboxColor)
	b.g.SetViewport(Letterbox(cw, ch, sw, sh))
	b.shader.Use()
	b.shader.SetInt(uniformCanvas, 0)
	b.shader.SetVec2f(uniformCanvasSize, float32(cw), float32(ch))
	b.tex.Bind(0)
	return b.quad.Draw()
}

// release frees the texture, quad and shader. Later calls do nothing.
func (b *bridge) release() {
	if b.released {
		return
	}
	b.released = true
	b.quad.Release()
	b.tex.Release()
	b.shader.Release()
}

// Letterbox returns the largest rectangle with the canvas aspect ratio that
// fits a sw x sh screen, centred. The remaining bands are left as bars.
func Letterbox(cw, ch, sw, sh int) image.Rectangle {
	if cw <= 0 || ch <= 0 || sw <= 0 || sh <= 0 {
		return image.Rectangle{}
	}
	w, h := sw, sh
	if sw*ch > sh*cw {
		w = sh * cw / ch
	} else {
		h = sw * ch / cw
	}
	x := (sw - w) / 2
	y := (sh - h) / 2
	return image.Rect(x, y, x+w, y+h)
}
