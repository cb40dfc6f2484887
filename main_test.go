package main

import (
	"context"
	"errors"
	"testing"

	"pixeng/engine"
	"pixeng/hal"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		in   string
		w, h int
		ok   bool
	}{
		{"320x200", 320, 200, true},
		{"1x1", 1, 1, true},
		{"320", 0, 0, false},
		{"x200", 0, 0, false},
		{"0x200", 0, 0, false},
	}
	for _, tt := range tests {
		w, h, err := parseSize(tt.in)
		if (err == nil) != tt.ok || w != tt.w || h != tt.h {
			t.Errorf("parseSize(%q) = %d, %d, %v", tt.in, w, h, err)
		}
	}
	if _, _, err := parseSize("-1x5"); !errors.Is(err, engine.ErrInvalidSize) {
		t.Errorf("parseSize(-1x5) = %v, want ErrInvalidSize", err)
	}
}

func TestRunHeadless(t *testing.T) {
	var cfg engine.Config
	if err := run(cfg, true, 3, "32x24", "64x48", "error", "F1"); err != nil {
		t.Fatal(err)
	}
}

func TestRunHeadlessBackendHonoursFrames(t *testing.T) {
	cfg := engine.Config{Backend: "headless"}
	if err := run(cfg, false, 2, "16x16", "", "error", ""); err != nil {
		t.Fatal(err)
	}
}

func TestHeadlessOpenerFrames(t *testing.T) {
	w, err := headlessOpener(4)(hal.WindowConfig{Width: 8, Height: 8})
	if err != nil {
		t.Fatal(err)
	}
	h := w.(*hal.Headless)
	if err := h.Run(context.Background(), loopFunc(func() bool { return true })); err != nil {
		t.Fatal(err)
	}
	if h.Presented() != 4 {
		t.Fatalf("Presented = %d, want 4", h.Presented())
	}
}

type loopFunc func() bool

func (f loopFunc) Frame() bool    { return f() }
func (f loopFunc) Present() error { return nil }

func TestRunFramesNeedsHeadless(t *testing.T) {
	cfg := engine.Config{Backend: "term"}
	if err := run(cfg, false, 5, "8x8", "", "error", ""); err == nil {
		t.Fatal("-frames accepted with the term backend")
	}
}

func TestRunBadFlags(t *testing.T) {
	var cfg engine.Config
	if err := run(cfg, true, 1, "big", "", "info", ""); err == nil {
		t.Fatal("bad -canvas accepted")
	}
	if err := run(cfg, true, 1, "8x8", "", "loud", ""); err == nil {
		t.Fatal("bad -log-level accepted")
	}
	if err := run(cfg, true, 1, "8x8", "", "info", "NoSuchKey"); err == nil {
		t.Fatal("bad -console-key accepted")
	}
}
