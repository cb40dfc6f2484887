package hal

import (
	"context"
	"image"
	"time"
)

// HeadlessConfig controls the no-window backend.
type HeadlessConfig struct {
	WindowConfig
	// Frames requests a close after N presented frames (0 = run until closed).
	Frames uint64
	// Script runs in place of the OS event poll before every frame. It may
	// press and release keys or request a close.
	Script func(frame uint64, h *Headless)
}

// Headless is a Window without a display. Frames are rendered by Software
// into an in-memory target.
type Headless struct {
	cfg   HeadlessConfig
	gfx   *Software
	down  [KeyCount]bool
	title string

	presented      uint64
	closeRequested bool
	closed         bool
}

func init() {
	Register("headless", func(cfg WindowConfig) (Window, error) {
		return NewHeadless(HeadlessConfig{WindowConfig: cfg}), nil
	})
}

// NewHeadless returns a headless window of cfg.Width x cfg.Height.
func NewHeadless(cfg HeadlessConfig) *Headless {
	return &Headless{
		cfg:   cfg,
		gfx:   NewSoftware(cfg.Width, cfg.Height),
		title: cfg.Title,
	}
}

func (h *Headless) Run(ctx context.Context, l Loop) error {
	if h.closed {
		return ErrWindowClosed
	}

	var tick <-chan time.Time
	if h.cfg.Hz > 0 {
		t := time.NewTicker(time.Second / time.Duration(h.cfg.Hz))
		defer t.Stop()
		tick = t.C
	}

	for {
		if h.cfg.Script != nil {
			h.cfg.Script(h.presented, h)
		}
		if !l.Frame() {
			return nil
		}
		if err := l.Present(); err != nil {
			return err
		}
		h.presented++

		if h.cfg.Frames > 0 && h.presented >= h.cfg.Frames {
			h.closeRequested = true
		}
		if h.closeRequested {
			return nil
		}

		if tick == nil {
			if ctx.Err() != nil {
				return nil
			}
			continue
		}
		select {
		case <-ctx.Done():
			return nil
		case <-tick:
		}
	}
}

// Press marks k as down from the next frame on.
func (h *Headless) Press(k Key) {
	if k < KeyCount {
		h.down[k] = true
	}
}

// Release marks k as up from the next frame on.
func (h *Headless) Release(k Key) {
	if k < KeyCount {
		h.down[k] = false
	}
}

// RequestClose behaves like the user closing the window: the current frame
// completes and Run returns.
func (h *Headless) RequestClose() { h.closeRequested = true }

// Presented returns the number of frames presented so far.
func (h *Headless) Presented() uint64 { return h.presented }

// Snapshot returns a copy of the last presented frame.
func (h *Headless) Snapshot() *image.RGBA {
	src := h.gfx.Target()
	dst := image.NewRGBA(src.Rect)
	copy(dst.Pix, src.Pix)
	return dst
}

// Software returns the graphics context for inspection.
func (h *Headless) Software() *Software { return h.gfx }

// Title returns the current window title.
func (h *Headless) Title() string { return h.title }

// Closed reports whether Close was called.
func (h *Headless) Closed() bool { return h.closed }

func (h *Headless) KeyDown(k Key) bool {
	if k >= KeyCount {
		return false
	}
	return h.down[k]
}

func (h *Headless) Size() (int, int) {
	r := h.gfx.Target().Rect
	return r.Dx(), r.Dy()
}

func (h *Headless) SetSize(w, hgt int) {
	if w <= 0 || hgt <= 0 {
		return
	}
	h.gfx.Resize(w, hgt)
}

func (h *Headless) SetTitle(title string) { h.title = title }

func (h *Headless) Graphics() Graphics { return h.gfx }

func (h *Headless) Close() error {
	h.closed = true
	return nil
}
