package hal

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
)

var (
	ErrNotSupported    = errors.New("not supported")
	ErrUnknownBackend  = errors.New("unknown backend")
	ErrWindowClosed    = errors.New("window closed")
	ErrNoProgramInUse  = errors.New("no program in use")
	ErrNoTextureBound  = errors.New("no texture bound")
	ErrInvalidGeometry = errors.New("invalid geometry")
)

// WindowConfig describes the window requested by the engine.
type WindowConfig struct {
	Title  string
	Width  int
	Height int
	// Hz paces backends that have no vsync of their own. Zero runs unpaced.
	Hz int
}

// Loop is one iteration of the engine as seen by a window. The window polls
// its events, calls Frame, calls Present if Frame returned true, then swaps.
type Loop interface {
	Frame() bool
	Present() error
}

// Window is a display surface plus its event source and graphics context.
//
// All methods are called from the goroutine that calls Run.
type Window interface {
	// Run drives l until Frame returns false, the OS asks the window to
	// close or ctx is done. It returns the first Present error, if any.
	Run(ctx context.Context, l Loop) error
	// KeyDown reports the raw state of k as of the latest event poll.
	KeyDown(k Key) bool
	// Size returns the physical drawable size in pixels.
	Size() (w, h int)
	// SetSize requests a physical resize. Backends that cannot resize ignore it.
	SetSize(w, h int)
	SetTitle(title string)
	Graphics() Graphics
	// Close releases the window and its graphics context.
	Close() error
}

// Language is the shading language a Graphics backend compiles.
type Language uint8

const (
	GLSL330 Language = iota + 1
	// Kage is ebiten's shading language. It has a fragment stage only.
	Kage
)

func (l Language) String() string {
	switch l {
	case GLSL330:
		return "glsl330"
	case Kage:
		return "kage"
	default:
		return fmt.Sprintf("Language(%d)", uint8(l))
	}
}

// Graphics is the subset of a GPU API the engine needs to present a canvas.
//
// It is a state machine in the OpenGL sense: Program.Use and Texture.Bind
// select the state that the next Quad.Draw consumes.
type Graphics interface {
	Language() Language
	NewTexture(w, h int) (Texture, error)
	NewProgram(vertex, fragment []byte) (Program, error)
	NewQuad() (Quad, error)
	// Clear fills the whole drawable with c.
	Clear(c color.RGBA)
	// SetViewport maps the quad's full extent onto r (top-left origin).
	SetViewport(r image.Rectangle)
}

// Texture is a GPU-side RGBA8 image.
type Texture interface {
	Size() (w, h int)
	// Upload replaces the whole texture with pix, row-major RGBA, stride 4*w.
	Upload(pix []byte) error
	Bind(unit int)
	Release()
}

// Program is a linked shader program. Uniform setters look the location up
// by name on every call.
type Program interface {
	Use()
	SetInt(name string, v int32)
	// SetFloat sets a float, vec2, vec3 or vec4 uniform depending on len(v).
	SetFloat(name string, v ...float32)
	// SetMatrix4 sets a column-major mat4 uniform.
	SetMatrix4(name string, m [16]float32)
	Release()
}

// Quad is static full-viewport geometry: 4 vertices, 2 indexed triangles.
type Quad interface {
	// Draw issues one indexed draw with the program in use and the texture
	// bound to unit 0.
	Draw() error
	Release()
}

// CompileError carries the diagnostic text of a failed compile or link.
type CompileError struct {
	Stage string
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s: %s", e.Stage, e.Log)
}

// QuadVertices is the static quad shared by the backends: x, y in NDC
// followed by u, v with v=0 at the top row of the canvas.
var QuadVertices = [16]float32{
	-1, 1, 0, 0,
	1, 1, 1, 0,
	1, -1, 1, 1,
	-1, -1, 0, 1,
}

// QuadIndices are the two triangles of QuadVertices.
var QuadIndices = [6]uint16{0, 1, 2, 0, 2, 3}
