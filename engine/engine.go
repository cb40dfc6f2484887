// Package engine runs a fixed-resolution pixel canvas in a window.
//
// An App draws into the canvas from its Update callback; the engine samples
// the keyboard before each Update and presents the canvas after it, scaled
// to the window with letterboxing. Everything runs on the goroutine that
// calls Start.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"pixeng/hal"
	"pixeng/shaders"
)

var (
	ErrCreateFailed = errors.New("create callback returned false")
	ErrState        = errors.New("invalid engine state")
	ErrInvalidSize  = errors.New("invalid size")
)

// App is implemented by the application driven by the engine.
type App interface {
	// Create is called once after initialisation. Returning false aborts
	// startup.
	Create(e *Engine) bool
	// Update is called once per frame with the seconds elapsed since the
	// previous frame started. Returning false stops the loop before the
	// frame is presented.
	Update(e *Engine, dt float64) bool
}

// State is the lifecycle state of an Engine.
type State uint8

const (
	Uninitialized State = iota
	Initialized
	Running
	Closing
	Terminated
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initialized:
		return "initialized"
	case Running:
		return "running"
	case Closing:
		return "closing"
	case Terminated:
		return "terminated"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Config describes the engine to build. Zero fields take defaults.
type Config struct {
	Title        string
	CanvasWidth  int
	CanvasHeight int
	// ScreenWidth and ScreenHeight are the requested window size. They
	// default to twice the canvas size.
	ScreenWidth  int
	ScreenHeight int

	// Backend names a registered hal backend. Open, when set, is used
	// instead.
	Backend string
	Open    hal.Opener
	// Hz paces backends without vsync.
	Hz int

	// Shaders holds the canvas shader sources, laid out as in
	// shaders.Paths. Defaults to shaders.FS.
	Shaders fs.FS

	// ConsoleKey toggles the console overlay on its pressed edge.
	// hal.KeyNone disables the binding.
	ConsoleKey hal.Key

	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time
}

const (
	DefaultTitle        = "pixeng"
	DefaultCanvasWidth  = 256
	DefaultCanvasHeight = 240
	DefaultBackend      = "ebiten"
)

func (c Config) withDefaults() Config {
	if c.Title == "" {
		c.Title = DefaultTitle
	}
	if c.CanvasWidth == 0 {
		c.CanvasWidth = DefaultCanvasWidth
	}
	if c.CanvasHeight == 0 {
		c.CanvasHeight = DefaultCanvasHeight
	}
	if c.ScreenWidth == 0 {
		c.ScreenWidth = 2 * c.CanvasWidth
	}
	if c.ScreenHeight == 0 {
		c.ScreenHeight = 2 * c.CanvasHeight
	}
	if c.Backend == "" {
		c.Backend = DefaultBackend
	}
	if c.Shaders == nil {
		c.Shaders = shaders.FS
	}
	if c.Clock == nil {
		c.Clock = time.Now
	}
	return c
}

// Engine owns the window, canvas, input tracker and render bridge of one
// running application.
type Engine struct {
	app   App
	cfg   Config
	state State

	win      hal.Window
	canvas   *Canvas
	composed *Canvas
	input    Input
	bridge   *bridge
	shader   *Shader
	console  *Console

	title string
	// physical size as last reported by the window
	screenW, screenH int

	ctx            context.Context
	last           time.Time
	dt             float64
	frames         uint64
	closeRequested bool
	released       bool
}

// New returns an uninitialised engine for app.
func New(app App, cfg Config) *Engine {
	cfg = cfg.withDefaults()
	return &Engine{
		app:   app,
		cfg:   cfg,
		title: cfg.Title,
		ctx:   context.Background(),
	}
}

// Initialise opens the window, compiles the canvas shader, allocates the
// canvas and GPU resources and calls App.Create. On failure everything
// created so far is released and the engine is Terminated.
func (e *Engine) Initialise() error {
	if e.state != Uninitialized {
		return fmt.Errorf("initialise in state %v: %w", e.state, ErrState)
	}
	log := Logger()

	if err := e.setup(); err != nil {
		log.Error("engine initialisation failed", "backend", e.cfg.Backend, "err", err)
		e.teardown()
		e.setState(Terminated)
		return err
	}
	e.setState(Initialized)

	if !e.app.Create(e) {
		log.Error("engine initialisation failed", "err", ErrCreateFailed)
		e.teardown()
		e.setState(Terminated)
		return ErrCreateFailed
	}
	return nil
}

func (e *Engine) setup() error {
	cfg := e.cfg

	open := cfg.Open
	if open == nil {
		var err error
		if open, err = hal.Lookup(cfg.Backend); err != nil {
			return err
		}
	}
	win, err := open(hal.WindowConfig{
		Title:  cfg.Title,
		Width:  cfg.ScreenWidth,
		Height: cfg.ScreenHeight,
		Hz:     cfg.Hz,
	})
	if err != nil {
		return fmt.Errorf("open window: %w", err)
	}
	e.win = win
	e.screenW, e.screenH = win.Size()

	g := win.Graphics()
	vertex, fragment, ok := shaders.Paths(g.Language())
	if !ok {
		return fmt.Errorf("canvas shader for %v: %w", g.Language(), hal.ErrNotSupported)
	}
	if e.shader, err = LoadShader(g, cfg.Shaders, vertex, fragment); err != nil {
		return err
	}

	if e.canvas, err = NewCanvas(cfg.CanvasWidth, cfg.CanvasHeight); err != nil {
		return err
	}
	if e.composed, err = NewCanvas(cfg.CanvasWidth, cfg.CanvasHeight); err != nil {
		return err
	}
	if e.bridge, err = newBridge(g, e.shader, cfg.CanvasWidth, cfg.CanvasHeight); err != nil {
		return err
	}
	e.console = newConsole(cfg.CanvasWidth, cfg.CanvasHeight)

	Logger().Info("window opened",
		"backend", cfg.Backend, "language", g.Language(),
		"screen", fmt.Sprintf("%dx%d", e.screenW, e.screenH),
		"canvas", fmt.Sprintf("%dx%d", cfg.CanvasWidth, cfg.CanvasHeight))
	return nil
}

// Start runs the loop until App.Update returns false, Close is called, the
// window is closed or ctx is done. Resources are released before it
// returns; the engine is then Terminated.
func (e *Engine) Start(ctx context.Context) error {
	if e.state != Initialized {
		return fmt.Errorf("start in state %v: %w", e.state, ErrState)
	}
	e.ctx = ctx
	e.setState(Running)
	e.last = e.cfg.Clock()

	err := e.win.Run(ctx, engineLoop{e})

	e.setState(Closing)
	e.teardown()
	e.setState(Terminated)
	if err != nil {
		Logger().Error("loop stopped", "frames", e.frames, "err", err)
		return fmt.Errorf("run: %w", err)
	}
	Logger().Info("loop finished", "frames", e.frames)
	return nil
}

// engineLoop keeps Frame and Present off the Engine's exported API.
type engineLoop struct{ e *Engine }

func (l engineLoop) Frame() bool    { return l.e.frame() }
func (l engineLoop) Present() error { return l.e.present() }

func (e *Engine) frame() bool {
	if e.closeRequested || e.ctx.Err() != nil {
		e.setState(Closing)
		return false
	}

	e.screenW, e.screenH = e.win.Size()
	e.input.Sample(e.win)

	now := e.cfg.Clock()
	e.dt = now.Sub(e.last).Seconds()
	e.last = now

	if k := e.cfg.ConsoleKey; k != hal.KeyNone && e.input.Key(k).Pressed {
		e.console.Toggle()
	}

	e.frames++
	if !e.app.Update(e, e.dt) {
		e.setState(Closing)
		return false
	}
	return true
}

func (e *Engine) present() error {
	src := e.canvas
	if e.console.Visible() {
		copy(e.composed.Pix(), e.canvas.Pix())
		e.composed.blend(e.console.render())
		src = e.composed
	}
	w, h := e.win.Size()
	return e.bridge.present(src, w, h)
}

// teardown releases GPU resources and the window exactly once.
func (e *Engine) teardown() {
	if e.released {
		return
	}
	e.released = true
	switch {
	case e.bridge != nil:
		e.bridge.release()
	case e.shader != nil:
		e.shader.Release()
	}
	if e.win != nil {
		if err := e.win.Close(); err != nil {
			Logger().Warn("window close", "err", err)
		}
	}
}

func (e *Engine) setState(s State) {
	if e.state == s {
		return
	}
	Logger().Debug("engine state", "from", e.state, "to", s)
	e.state = s
}

// active reports whether accessors are valid.
func (e *Engine) active() bool {
	return e.state >= Initialized && e.state <= Closing
}

// Close asks the loop to stop at the next frame boundary. It returns false
// so Update can end with "return e.Close()".
func (e *Engine) Close() bool {
	e.closeRequested = true
	return false
}

func (e *Engine) State() State { return e.state }

// DeltaTime returns the seconds between the starts of the previous and the
// current frame.
func (e *Engine) DeltaTime() float64 { return e.dt }

// FrameCount returns the number of Update calls made so far.
func (e *Engine) FrameCount() uint64 { return e.frames }

// Key returns the edge state of k for the current frame.
func (e *Engine) Key(k hal.Key) KeyState {
	if !e.active() {
		return KeyState{}
	}
	return e.input.Key(k)
}

// Canvas returns the drawing surface, or nil outside Initialized..Closing.
func (e *Engine) Canvas() *Canvas {
	if !e.active() {
		return nil
	}
	return e.canvas
}

// Console returns the text overlay, or nil outside Initialized..Closing.
func (e *Engine) Console() *Console {
	if !e.active() {
		return nil
	}
	return e.console
}

func (e *Engine) CanvasWidth() int {
	if !e.active() {
		return 0
	}
	return e.canvas.Width()
}

func (e *Engine) CanvasHeight() int {
	if !e.active() {
		return 0
	}
	return e.canvas.Height()
}

// SetCanvasSize reallocates the canvas. The new canvas is in its default
// state and the texture follows at the next present.
func (e *Engine) SetCanvasSize(w, h int) error {
	if !e.active() {
		return fmt.Errorf("set canvas size in state %v: %w", e.state, ErrState)
	}
	if err := e.canvas.Resize(w, h); err != nil {
		return err
	}
	if err := e.composed.Resize(w, h); err != nil {
		return err
	}
	e.console.resize(w, h)
	return nil
}

func (e *Engine) ScreenWidth() int {
	if !e.active() {
		return 0
	}
	return e.screenW
}

func (e *Engine) ScreenHeight() int {
	if !e.active() {
		return 0
	}
	return e.screenH
}

// SetScreenWidth requests a new window width. The canvas is not affected.
func (e *Engine) SetScreenWidth(w int) { e.SetScreenSize(w, e.screenH) }

// SetScreenHeight requests a new window height. The canvas is not affected.
func (e *Engine) SetScreenHeight(h int) { e.SetScreenSize(e.screenW, h) }

// SetScreenSize requests a new window size. ScreenWidth and ScreenHeight
// keep reporting the physical size, so backends with a fixed display leave
// them unchanged.
func (e *Engine) SetScreenSize(w, h int) {
	if !e.active() || w <= 0 || h <= 0 {
		return
	}
	e.win.SetSize(w, h)
	e.screenW, e.screenH = e.win.Size()
}

func (e *Engine) Title() string { return e.title }

// SetTitle updates the window title immediately.
func (e *Engine) SetTitle(title string) {
	e.title = title
	if e.active() {
		e.win.SetTitle(title)
	}
}

// Clear fills the canvas with p.
func (e *Engine) Clear(p Pixel) {
	if c := e.Canvas(); c != nil {
		c.Clear(p)
	}
}

func (e *Engine) Point(x, y int, p Pixel) {
	if c := e.Canvas(); c != nil {
		c.Point(x, y, p)
	}
}

func (e *Engine) Rect(x, y, w, h int, border, fill Pixel) {
	if c := e.Canvas(); c != nil {
		c.Rect(x, y, w, h, border, fill)
	}
}

func (e *Engine) FillRect(x, y, w, h int, p Pixel) {
	if c := e.Canvas(); c != nil {
		c.FillRect(x, y, w, h, p)
	}
}

func (e *Engine) Line(x0, y0, x1, y1 int, p Pixel) {
	if c := e.Canvas(); c != nil {
		c.Line(x0, y0, x1, y1, p)
	}
}

func (e *Engine) Text(x, y int, s string, p Pixel) {
	if c := e.Canvas(); c != nil {
		c.Text(x, y, s, p)
	}
}
