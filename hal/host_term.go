package hal

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"
)

// termHold is how long a key counts as down after its last event. Terminals
// report presses and autorepeats but never releases.
const termHold = 250 * time.Millisecond

const termDefaultHz = 30

func init() {
	Register("term", func(cfg WindowConfig) (Window, error) {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("term screen: %w", err)
		}
		return newTermWindow(s, cfg)
	})
}

// termWindow renders into a terminal, two pixels per cell: the upper half
// block takes the top pixel as foreground and the bottom one as background.
type termWindow struct {
	screen tcell.Screen
	gfx    *Software
	hz     int

	lastSeen       [KeyCount]time.Time
	now            func() time.Time
	closeRequested bool
}

func newTermWindow(s tcell.Screen, cfg WindowConfig) (*termWindow, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("term init: %w", err)
	}
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset))
	s.HideCursor()
	s.SetTitle(cfg.Title)
	s.Clear()

	cols, rows := s.Size()
	w := &termWindow{
		screen: s,
		gfx:    NewSoftware(cols, rows*2),
		hz:     cfg.Hz,
		now:    time.Now,
	}
	if w.hz <= 0 {
		w.hz = termDefaultHz
	}
	return w, nil
}

func (w *termWindow) Run(ctx context.Context, l Loop) error {
	if w.screen == nil {
		return ErrWindowClosed
	}
	t := time.NewTicker(time.Second / time.Duration(w.hz))
	defer t.Stop()

	for {
		w.poll()
		if !l.Frame() {
			return nil
		}
		if err := l.Present(); err != nil {
			return err
		}
		w.show()
		if w.closeRequested {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
		}
	}
}

func (w *termWindow) poll() {
	for w.screen.HasPendingEvent() {
		switch ev := w.screen.PollEvent().(type) {
		case *tcell.EventResize:
			cols, rows := ev.Size()
			w.gfx.Resize(cols, rows*2)
			w.screen.Sync()
		case *tcell.EventKey:
			w.handleKey(ev)
		}
	}
}

func (w *termWindow) handleKey(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyCtrlC {
		w.closeRequested = true
		return
	}
	now := w.now()
	if k, ok := termKey(ev); ok {
		w.lastSeen[k] = now
	}
	mods := ev.Modifiers()
	if mods&tcell.ModShift != 0 {
		w.lastSeen[KeyShift] = now
	}
	if mods&tcell.ModCtrl != 0 {
		w.lastSeen[KeyCtrl] = now
	}
	if mods&tcell.ModAlt != 0 {
		w.lastSeen[KeyAlt] = now
	}
}

func (w *termWindow) show() {
	img := w.gfx.Target()
	cols, rows := img.Rect.Dx(), img.Rect.Dy()/2
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			top := img.RGBAAt(cx, 2*cy)
			bottom := img.RGBAAt(cx, 2*cy+1)
			style := tcell.StyleDefault.Foreground(termColor(top)).Background(termColor(bottom))
			w.screen.SetContent(cx, cy, '▀', nil, style)
		}
	}
	w.screen.Show()
}

func termColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (w *termWindow) KeyDown(k Key) bool {
	if k >= KeyCount {
		return false
	}
	seen := w.lastSeen[k]
	return !seen.IsZero() && w.now().Sub(seen) < termHold
}

// Size is the terminal size in half-block pixels.
func (w *termWindow) Size() (int, int) {
	r := w.gfx.Target().Rect
	return r.Dx(), r.Dy()
}

// SetSize is ignored: the terminal owns its size.
func (w *termWindow) SetSize(int, int) {}

// SetTitle sets the terminal emulator's window title where supported.
func (w *termWindow) SetTitle(title string) {
	if w.screen != nil {
		w.screen.SetTitle(title)
	}
}

func (w *termWindow) Graphics() Graphics { return w.gfx }

func (w *termWindow) Close() error {
	if w.screen == nil {
		return nil
	}
	w.screen.Fini()
	w.screen = nil
	return nil
}
