//go:build cgo && !gl

package hal

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

func init() {
	Register("ebiten", openEbiten)
}

// ebitenWindow adapts ebiten's inverted loop: Update runs Loop.Frame and
// Draw runs Loop.Present. TPS is synced to FPS so the two alternate.
type ebitenWindow struct {
	gfx  *ebitenGraphics
	w, h int

	ctx     context.Context
	loop    Loop
	err     error
	closing bool
	ran     bool
}

func openEbiten(cfg WindowConfig) (Window, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("ebiten window %dx%d: %w", cfg.Width, cfg.Height, ErrInvalidGeometry)
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(ebiten.SyncWithFPS)
	return &ebitenWindow{
		gfx: &ebitenGraphics{},
		w:   cfg.Width,
		h:   cfg.Height,
	}, nil
}

// Run blocks until the loop ends. ebiten allows a single RunGame per process.
func (w *ebitenWindow) Run(ctx context.Context, l Loop) error {
	if w.ran {
		return ErrWindowClosed
	}
	w.ran = true
	w.ctx = ctx
	w.loop = l
	return ebiten.RunGame(&ebitenGame{w: w})
}

func (w *ebitenWindow) KeyDown(k Key) bool {
	key, ok := ebitenKeys[k]
	return ok && ebiten.IsKeyPressed(key)
}

func (w *ebitenWindow) Size() (int, int) { return w.w, w.h }

func (w *ebitenWindow) SetSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	ebiten.SetWindowSize(width, height)
}

func (w *ebitenWindow) SetTitle(title string) { ebiten.SetWindowTitle(title) }

func (w *ebitenWindow) Graphics() Graphics { return w.gfx }

func (w *ebitenWindow) Close() error { return nil }

type ebitenGame struct {
	w *ebitenWindow
}

func (g *ebitenGame) Update() error {
	w := g.w
	if w.err != nil {
		return w.err
	}
	if w.closing || w.ctx.Err() != nil {
		return ebiten.Termination
	}
	if !w.loop.Frame() {
		return ebiten.Termination
	}
	return nil
}

func (g *ebitenGame) Draw(screen *ebiten.Image) {
	w := g.w
	w.gfx.screen = screen
	if err := w.loop.Present(); err != nil && w.err == nil {
		w.err = err
	}
	w.gfx.screen = nil

	if ebiten.IsWindowBeingClosed() {
		w.closing = true
	}
}

func (g *ebitenGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.w.w, g.w.h = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// ebitenGraphics draws into the screen image handed to Draw. Outside Draw
// there is no target and Clear is a no-op.
type ebitenGraphics struct {
	screen   *ebiten.Image
	viewport image.Rectangle
	program  *ebitenProgram
	units    [4]*ebitenTexture
	verts    [4]ebiten.Vertex
}

func (g *ebitenGraphics) Language() Language { return Kage }

func (g *ebitenGraphics) NewTexture(w, h int) (Texture, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("texture %dx%d: %w", w, h, ErrInvalidGeometry)
	}
	return &ebitenTexture{g: g, img: ebiten.NewImage(w, h), w: w, h: h}, nil
}

// NewProgram compiles the Kage fragment source. Kage has no programmable
// vertex stage, so vertex is ignored.
func (g *ebitenGraphics) NewProgram(_, fragment []byte) (Program, error) {
	s, err := ebiten.NewShader(fragment)
	if err != nil {
		return nil, &CompileError{Stage: "fragment", Log: err.Error()}
	}
	return &ebitenProgram{g: g, shader: s, uniforms: make(map[string]any)}, nil
}

func (g *ebitenGraphics) NewQuad() (Quad, error) { return &ebitenQuad{g: g}, nil }

func (g *ebitenGraphics) Clear(c color.RGBA) {
	if g.screen != nil {
		g.screen.Fill(c)
	}
}

func (g *ebitenGraphics) SetViewport(r image.Rectangle) { g.viewport = r }

type ebitenTexture struct {
	g    *ebitenGraphics
	img  *ebiten.Image
	w, h int
}

func (t *ebitenTexture) Size() (int, int) { return t.w, t.h }

func (t *ebitenTexture) Upload(pix []byte) error {
	if len(pix) != 4*t.w*t.h {
		return fmt.Errorf("upload %d bytes into %dx%d texture: %w", len(pix), t.w, t.h, ErrInvalidGeometry)
	}
	t.img.WritePixels(pix)
	return nil
}

func (t *ebitenTexture) Bind(unit int) {
	if unit < 0 || unit >= len(t.g.units) {
		return
	}
	t.g.units[unit] = t
}

func (t *ebitenTexture) Release() {
	if t.img == nil {
		return
	}
	for i, u := range t.g.units {
		if u == t {
			t.g.units[i] = nil
		}
	}
	t.img.Deallocate()
	t.img = nil
}

type ebitenProgram struct {
	g        *ebitenGraphics
	shader   *ebiten.Shader
	uniforms map[string]any
}

func (p *ebitenProgram) Use() { p.g.program = p }

// Kage uniforms are exported globals; names that the shader does not
// declare are ignored by DrawTrianglesShader.
func (p *ebitenProgram) SetInt(name string, v int32) { p.uniforms[name] = v }

func (p *ebitenProgram) SetFloat(name string, v ...float32) {
	if len(v) == 1 {
		p.uniforms[name] = v[0]
		return
	}
	p.uniforms[name] = append([]float32(nil), v...)
}

func (p *ebitenProgram) SetMatrix4(name string, m [16]float32) {
	p.uniforms[name] = append([]float32(nil), m[:]...)
}

func (p *ebitenProgram) Release() {
	if p.shader == nil {
		return
	}
	if p.g.program == p {
		p.g.program = nil
	}
	p.shader.Deallocate()
	p.shader = nil
}

type ebitenQuad struct {
	g *ebitenGraphics
}

func (q *ebitenQuad) Draw() error {
	g := q.g
	if g.program == nil {
		return ErrNoProgramInUse
	}
	tex := g.units[0]
	if tex == nil {
		return ErrNoTextureBound
	}
	if g.screen == nil || g.viewport.Empty() {
		return nil
	}

	vp := g.viewport
	for i := range g.verts {
		x, y := QuadVertices[i*4], QuadVertices[i*4+1]
		u, v := QuadVertices[i*4+2], QuadVertices[i*4+3]
		g.verts[i] = ebiten.Vertex{
			DstX:   float32(vp.Min.X) + (x+1)/2*float32(vp.Dx()),
			DstY:   float32(vp.Min.Y) + (1-y)/2*float32(vp.Dy()),
			SrcX:   u * float32(tex.w),
			SrcY:   v * float32(tex.h),
			ColorR: 1,
			ColorG: 1,
			ColorB: 1,
			ColorA: 1,
		}
	}

	op := &ebiten.DrawTrianglesShaderOptions{Uniforms: g.program.uniforms}
	op.Images[0] = tex.img
	g.screen.DrawTrianglesShader(g.verts[:], QuadIndices[:], g.program.shader, op)
	return nil
}

func (q *ebitenQuad) Release() {}
