package hal

import (
	"context"
	"image/color"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func newSimTerm(t *testing.T) (*termWindow, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	w, err := newTermWindow(s, WindowConfig{Title: "test", Hz: 1000})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = w.Close() })
	return w, s
}

func TestTermSizeIsTwoPixelsPerRow(t *testing.T) {
	w, s := newSimTerm(t)
	cols, rows := s.Size()
	if pw, ph := w.Size(); pw != cols || ph != 2*rows {
		t.Fatalf("Size = %dx%d, want %dx%d", pw, ph, cols, 2*rows)
	}
}

func TestTermKeyHold(t *testing.T) {
	w, s := newSimTerm(t)
	now := time.Unix(100, 0)
	w.now = func() time.Time { return now }

	s.InjectKey(tcell.KeyRune, 'd', tcell.ModNone)
	s.InjectKey(tcell.KeyLeft, 0, tcell.ModShift)
	w.poll()

	for _, k := range []Key{KeyD, KeyLeft, KeyShift} {
		if !w.KeyDown(k) {
			t.Fatalf("KeyDown(%v) = false after event", k)
		}
	}
	if w.KeyDown(KeyA) {
		t.Fatal("KeyDown(A) without event")
	}

	now = now.Add(termHold)
	if w.KeyDown(KeyD) {
		t.Fatal("KeyDown(D) still true after hold window")
	}
}

func TestTermCtrlCRequestsClose(t *testing.T) {
	w, s := newSimTerm(t)
	s.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)

	l := &countLoop{}
	if err := w.Run(context.Background(), l); err != nil {
		t.Fatal(err)
	}
	if l.frames != 1 || l.presents != 1 {
		t.Fatalf("frames=%d presents=%d, want 1/1", l.frames, l.presents)
	}
}

func TestTermShowHalfBlocks(t *testing.T) {
	w, s := newSimTerm(t)
	img := w.gfx.Target()
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	img.SetRGBA(0, 1, color.RGBA{0, 0, 255, 255})
	w.show()

	cells, _, _ := s.GetContents()
	if len(cells) == 0 || len(cells[0].Runes) == 0 || cells[0].Runes[0] != '▀' {
		t.Fatalf("cell 0 = %+v", cells[0])
	}
	fg, bg, _ := cells[0].Style.Decompose()
	if fg == bg {
		t.Fatalf("top and bottom pixel share color %v", fg)
	}
}

func TestTermSetTitle(t *testing.T) {
	w, s := newSimTerm(t)
	if got := s.GetTitle(); got != "test" {
		t.Fatalf("initial title = %q, want %q", got, "test")
	}
	w.SetTitle("60.0 fps")
	if got := s.GetTitle(); got != "60.0 fps" {
		t.Fatalf("title = %q, want %q", got, "60.0 fps")
	}
}
