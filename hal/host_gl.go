//go:build gl && cgo

package hal

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"runtime"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// GLFW event handling and the GL context must stay on the main thread.
	runtime.LockOSThread()
	Register("gl", openGL)
}

type glWindow struct {
	win      *glfw.Window
	gfx      *glGraphics
	fbW, fbH int
}

func openGL(cfg WindowConfig) (Window, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("gl window %dx%d: %w", cfg.Width, cfg.Height, ErrInvalidGeometry)
	}
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glfw create window: %w", err)
	}
	win.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("gl init: %w", err)
	}
	glfw.SwapInterval(1)
	gl.Disable(gl.DEPTH_TEST)

	w := &glWindow{win: win}
	w.gfx = &glGraphics{w: w}
	w.fbW, w.fbH = win.GetFramebufferSize()
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.fbW, w.fbH = width, height
	})
	return w, nil
}

func (w *glWindow) Run(ctx context.Context, l Loop) error {
	if w.win == nil {
		return ErrWindowClosed
	}
	for !w.win.ShouldClose() {
		glfw.PollEvents()
		if !l.Frame() {
			return nil
		}
		if err := l.Present(); err != nil {
			return err
		}
		w.win.SwapBuffers()

		select {
		case <-ctx.Done():
			return nil
		default:
		}
	}
	return nil
}

func (w *glWindow) KeyDown(k Key) bool {
	for _, key := range glfwKeys[k] {
		switch w.win.GetKey(key) {
		case glfw.Press, glfw.Repeat:
			return true
		}
	}
	return false
}

// Size is the framebuffer size, which differs from the window size on HiDPI.
func (w *glWindow) Size() (int, int) { return w.fbW, w.fbH }

func (w *glWindow) SetSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	w.win.SetSize(width, height)
}

func (w *glWindow) SetTitle(title string) { w.win.SetTitle(title) }

func (w *glWindow) Graphics() Graphics { return w.gfx }

func (w *glWindow) Close() error {
	if w.win == nil {
		return nil
	}
	w.win.Destroy()
	w.win = nil
	glfw.Terminate()
	return nil
}

type glGraphics struct {
	w       *glWindow
	program *glProgram
	units   [4]*glTexture
}

func (g *glGraphics) Language() Language { return GLSL330 }

func (g *glGraphics) NewTexture(w, h int) (Texture, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("texture %dx%d: %w", w, h, ErrInvalidGeometry)
	}
	t := &glTexture{g: g, w: w, h: h}
	gl.GenTextures(1, &t.id)
	if t.id == 0 {
		return nil, fmt.Errorf("texture %dx%d: glGenTextures returned 0", w, h)
	}
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	return t, nil
}

func (g *glGraphics) NewProgram(vertex, fragment []byte) (Program, error) {
	vs, err := compileShader(gl.VERTEX_SHADER, "vertex", string(vertex))
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(vs)
	fs, err := compileShader(gl.FRAGMENT_SHADER, "fragment", string(fragment))
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(fs)

	id := gl.CreateProgram()
	gl.AttachShader(id, vs)
	gl.AttachShader(id, fs)
	gl.LinkProgram(id)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(id, logLength, nil, gl.Str(log))
		gl.DeleteProgram(id)
		return nil, &CompileError{Stage: "link", Log: strings.TrimRight(log, "\x00")}
	}
	return &glProgram{g: g, id: id}, nil
}

func compileShader(kind uint32, stage, source string) (uint32, error) {
	shader := gl.CreateShader(kind)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, &CompileError{Stage: stage, Log: strings.TrimRight(log, "\x00")}
	}
	return shader, nil
}

func (g *glGraphics) NewQuad() (Quad, error) {
	q := &glQuad{g: g}
	gl.GenVertexArrays(1, &q.vao)
	gl.BindVertexArray(q.vao)

	gl.GenBuffers(1, &q.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, q.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(QuadVertices)*4, gl.Ptr(QuadVertices[:]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &q.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, q.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(QuadIndices)*2, gl.Ptr(QuadIndices[:]), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(2*4))

	gl.BindVertexArray(0)
	if q.vao == 0 || q.vbo == 0 || q.ebo == 0 {
		q.Release()
		return nil, fmt.Errorf("quad buffers: %w", ErrInvalidGeometry)
	}
	return q, nil
}

func (g *glGraphics) Clear(c color.RGBA) {
	gl.Viewport(0, 0, int32(g.w.fbW), int32(g.w.fbH))
	gl.ClearColor(float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// SetViewport flips r into GL's bottom-left origin.
func (g *glGraphics) SetViewport(r image.Rectangle) {
	gl.Viewport(int32(r.Min.X), int32(g.w.fbH-r.Max.Y), int32(r.Dx()), int32(r.Dy()))
}

type glTexture struct {
	g    *glGraphics
	id   uint32
	w, h int
}

func (t *glTexture) Size() (int, int) { return t.w, t.h }

func (t *glTexture) Upload(pix []byte) error {
	if len(pix) != 4*t.w*t.h {
		return fmt.Errorf("upload %d bytes into %dx%d texture: %w", len(pix), t.w, t.h, ErrInvalidGeometry)
	}
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(t.w), int32(t.h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	return nil
}

func (t *glTexture) Bind(unit int) {
	if unit < 0 || unit >= len(t.g.units) {
		return
	}
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	t.g.units[unit] = t
}

func (t *glTexture) Release() {
	if t.id == 0 {
		return
	}
	for i, u := range t.g.units {
		if u == t {
			t.g.units[i] = nil
		}
	}
	gl.DeleteTextures(1, &t.id)
	t.id = 0
}

type glProgram struct {
	g  *glGraphics
	id uint32
}

func (p *glProgram) Use() {
	gl.UseProgram(p.id)
	p.g.program = p
}

func (p *glProgram) location(name string) int32 {
	return gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
}

func (p *glProgram) SetInt(name string, v int32) {
	gl.Uniform1i(p.location(name), v)
}

func (p *glProgram) SetFloat(name string, v ...float32) {
	loc := p.location(name)
	switch len(v) {
	case 1:
		gl.Uniform1f(loc, v[0])
	case 2:
		gl.Uniform2f(loc, v[0], v[1])
	case 3:
		gl.Uniform3f(loc, v[0], v[1], v[2])
	case 4:
		gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
	}
}

func (p *glProgram) SetMatrix4(name string, m [16]float32) {
	gl.UniformMatrix4fv(p.location(name), 1, false, &m[0])
}

func (p *glProgram) Release() {
	if p.id == 0 {
		return
	}
	if p.g.program == p {
		p.g.program = nil
	}
	gl.DeleteProgram(p.id)
	p.id = 0
}

type glQuad struct {
	g             *glGraphics
	vao, vbo, ebo uint32
}

func (q *glQuad) Draw() error {
	if q.g.program == nil {
		return ErrNoProgramInUse
	}
	if q.g.units[0] == nil {
		return ErrNoTextureBound
	}
	gl.BindVertexArray(q.vao)
	gl.DrawElements(gl.TRIANGLES, int32(len(QuadIndices)), gl.UNSIGNED_SHORT, gl.PtrOffset(0))
	gl.BindVertexArray(0)
	return nil
}

func (q *glQuad) Release() {
	if q.ebo != 0 {
		gl.DeleteBuffers(1, &q.ebo)
		q.ebo = 0
	}
	if q.vbo != 0 {
		gl.DeleteBuffers(1, &q.vbo)
		q.vbo = 0
	}
	if q.vao != 0 {
		gl.DeleteVertexArrays(1, &q.vao)
		q.vao = 0
	}
}
