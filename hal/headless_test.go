package hal

import (
	"context"
	"testing"
)

type countLoop struct {
	frames, presents int
	stopAt           int
	onFrame          func(n int)
}

func (l *countLoop) Frame() bool {
	l.frames++
	if l.onFrame != nil {
		l.onFrame(l.frames)
	}
	return l.stopAt == 0 || l.frames < l.stopAt
}

func (l *countLoop) Present() error {
	l.presents++
	return nil
}

func TestHeadlessFrameLimit(t *testing.T) {
	h := NewHeadless(HeadlessConfig{WindowConfig: WindowConfig{Width: 8, Height: 8}, Frames: 3})
	l := &countLoop{}
	if err := h.Run(context.Background(), l); err != nil {
		t.Fatal(err)
	}
	if l.frames != 3 || l.presents != 3 || h.Presented() != 3 {
		t.Fatalf("frames=%d presents=%d presented=%d", l.frames, l.presents, h.Presented())
	}
}

func TestHeadlessFrameFalseSkipsPresent(t *testing.T) {
	h := NewHeadless(HeadlessConfig{WindowConfig: WindowConfig{Width: 8, Height: 8}})
	l := &countLoop{stopAt: 2}
	if err := h.Run(context.Background(), l); err != nil {
		t.Fatal(err)
	}
	if l.frames != 2 || l.presents != 1 {
		t.Fatalf("frames=%d presents=%d", l.frames, l.presents)
	}
}

func TestHeadlessScriptKeysAndClose(t *testing.T) {
	var seen []bool
	h := NewHeadless(HeadlessConfig{
		WindowConfig: WindowConfig{Width: 8, Height: 8},
		Script: func(frame uint64, h *Headless) {
			switch frame {
			case 1:
				h.Press(KeyA)
			case 2:
				h.Release(KeyA)
				h.RequestClose()
			}
		},
	})
	l := &countLoop{}
	l.onFrame = func(int) { seen = append(seen, h.KeyDown(KeyA)) }
	if err := h.Run(context.Background(), l); err != nil {
		t.Fatal(err)
	}
	want := []bool{false, true, false}
	if len(seen) != len(want) {
		t.Fatalf("frames = %d, want %d", len(seen), len(want))
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("frame %d KeyDown(A) = %v, want %v", i, seen[i], want[i])
		}
	}
	if l.presents != 3 {
		t.Fatalf("presents = %d, want 3", l.presents)
	}
}

func TestHeadlessContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := NewHeadless(HeadlessConfig{WindowConfig: WindowConfig{Width: 8, Height: 8}})
	l := &countLoop{}
	l.onFrame = func(n int) {
		if n == 2 {
			cancel()
		}
	}
	if err := h.Run(ctx, l); err != nil {
		t.Fatal(err)
	}
	if l.frames != 2 {
		t.Fatalf("frames = %d, want 2", l.frames)
	}
}

func TestHeadlessRunAfterClose(t *testing.T) {
	h := NewHeadless(HeadlessConfig{WindowConfig: WindowConfig{Width: 8, Height: 8}})
	_ = h.Close()
	if err := h.Run(context.Background(), &countLoop{}); err != ErrWindowClosed {
		t.Fatalf("Run after Close = %v", err)
	}
}

func TestHeadlessResize(t *testing.T) {
	h := NewHeadless(HeadlessConfig{WindowConfig: WindowConfig{Width: 8, Height: 8}})
	h.SetSize(20, 10)
	if w, hh := h.Size(); w != 20 || hh != 10 {
		t.Fatalf("Size = %dx%d", w, hh)
	}
	h.SetSize(0, 10)
	if w, _ := h.Size(); w != 20 {
		t.Fatalf("zero width resize applied")
	}
}
