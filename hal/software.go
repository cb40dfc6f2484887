package hal

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// Software implements Graphics on the CPU. The quad is rasterised into an
// RGBA target with nearest-neighbour sampling, which matches the canvas
// shaders for integer and non-integer scale alike.
//
// It consumes the GLSL shader pair only to check that each stage is present,
// so headless runs fail on the same missing or empty files a GPU would.
type Software struct {
	target   *image.RGBA
	viewport image.Rectangle
	program  *softProgram
	units    [4]*softTexture

	live  int
	draws uint64
}

// NewSoftware returns a software context with a w x h target.
func NewSoftware(w, h int) *Software {
	s := &Software{}
	s.Resize(w, h)
	return s
}

// Resize reallocates the target. Contents are discarded.
func (s *Software) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if s.target != nil && s.target.Rect.Dx() == w && s.target.Rect.Dy() == h {
		return
	}
	s.target = image.NewRGBA(image.Rect(0, 0, w, h))
	s.viewport = s.target.Rect
}

// Target returns the image the quad is drawn into.
func (s *Software) Target() *image.RGBA { return s.target }

// Live returns the number of textures, programs and quads not yet released.
func (s *Software) Live() int { return s.live }

// Draws returns the number of successful quad draws.
func (s *Software) Draws() uint64 { return s.draws }

// Uniforms returns a copy of the uniforms set on the program in use.
func (s *Software) Uniforms() map[string]any {
	if s.program == nil {
		return nil
	}
	out := make(map[string]any, len(s.program.uniforms))
	for k, v := range s.program.uniforms {
		out[k] = v
	}
	return out
}

func (s *Software) Language() Language { return GLSL330 }

func (s *Software) NewTexture(w, h int) (Texture, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("texture %dx%d: %w", w, h, ErrInvalidGeometry)
	}
	s.live++
	return &softTexture{s: s, img: image.NewRGBA(image.Rect(0, 0, w, h))}, nil
}

func (s *Software) NewProgram(vertex, fragment []byte) (Program, error) {
	if err := checkStage("vertex", vertex); err != nil {
		return nil, err
	}
	if err := checkStage("fragment", fragment); err != nil {
		return nil, err
	}
	s.live++
	return &softProgram{s: s, uniforms: make(map[string]any)}, nil
}

func checkStage(stage string, src []byte) error {
	if len(bytes.TrimSpace(src)) == 0 {
		return &CompileError{Stage: stage, Log: "empty source"}
	}
	if !bytes.Contains(src, []byte("void main")) {
		return &CompileError{Stage: stage, Log: "no entry point: main not defined"}
	}
	return nil
}

func (s *Software) NewQuad() (Quad, error) {
	s.live++
	return &softQuad{s: s}, nil
}

func (s *Software) Clear(c color.RGBA) {
	xdraw.Draw(s.target, s.target.Rect, image.NewUniform(c), image.Point{}, xdraw.Src)
}

func (s *Software) SetViewport(r image.Rectangle) { s.viewport = r }

type softTexture struct {
	s        *Software
	img      *image.RGBA
	released bool
}

func (t *softTexture) Size() (int, int) { return t.img.Rect.Dx(), t.img.Rect.Dy() }

func (t *softTexture) Upload(pix []byte) error {
	if len(pix) != len(t.img.Pix) {
		return fmt.Errorf("upload %d bytes into %dx%d texture: %w", len(pix), t.img.Rect.Dx(), t.img.Rect.Dy(), ErrInvalidGeometry)
	}
	copy(t.img.Pix, pix)
	return nil
}

func (t *softTexture) Bind(unit int) {
	if unit < 0 || unit >= len(t.s.units) {
		return
	}
	t.s.units[unit] = t
}

func (t *softTexture) Release() {
	if t.released {
		return
	}
	t.released = true
	t.s.live--
	for i, u := range t.s.units {
		if u == t {
			t.s.units[i] = nil
		}
	}
}

type softProgram struct {
	s        *Software
	uniforms map[string]any
	released bool
}

func (p *softProgram) Use() { p.s.program = p }

func (p *softProgram) SetInt(name string, v int32) { p.uniforms[name] = v }

func (p *softProgram) SetFloat(name string, v ...float32) {
	p.uniforms[name] = append([]float32(nil), v...)
}

func (p *softProgram) SetMatrix4(name string, m [16]float32) { p.uniforms[name] = m }

func (p *softProgram) Release() {
	if p.released {
		return
	}
	p.released = true
	p.s.live--
	if p.s.program == p {
		p.s.program = nil
	}
}

type softQuad struct {
	s        *Software
	released bool
}

func (q *softQuad) Draw() error {
	s := q.s
	if s.program == nil {
		return ErrNoProgramInUse
	}
	tex := s.units[0]
	if tex == nil {
		return ErrNoTextureBound
	}
	if s.viewport.Empty() {
		return nil
	}
	xdraw.NearestNeighbor.Scale(s.target, s.viewport, tex.img, tex.img.Rect, xdraw.Src, nil)
	s.draws++
	return nil
}

func (q *softQuad) Release() {
	if q.released {
		return
	}
	q.released = true
	q.s.live--
}
