package app

import (
	"fmt"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"pixeng/engine"
	"pixeng/fonts/font6x8"
	"pixeng/hal"
)

// Guard wraps a so that a panic in Update replaces the frame with a panic
// screen instead of tearing the process down. ESC then closes the engine.
// A panic in Create fails startup.
func Guard(a engine.App) engine.App {
	return &guard{app: a}
}

type guard struct {
	app   engine.App
	lines []string
}

func (g *guard) Create(e *engine.Engine) (ok bool) {
	defer func() {
		if v := recover(); v != nil {
			engine.Logger().Error("create panicked", "panic", v, "stack", string(debug.Stack()))
			ok = false
		}
	}()
	return g.app.Create(e)
}

func (g *guard) Update(e *engine.Engine, dt float64) (ok bool) {
	if g.lines != nil {
		return g.drawPanic(e)
	}
	defer func() {
		if v := recover(); v != nil {
			stack := debug.Stack()
			engine.Logger().Error("update panicked", "frame", e.FrameCount(), "panic", v, "stack", string(stack))
			g.lines = panicLines(e.FrameCount(), v, stack)
			ok = g.drawPanic(e)
		}
	}()
	return g.app.Update(e, dt)
}

// Panicked reports whether the wrapped app has panicked.
func (g *guard) Panicked() bool { return g.lines != nil }

func panicLines(frame uint64, v any, stack []byte) []string {
	lines := []string{
		"Panic:",
		fmt.Sprintf("frame: %d", frame),
		fmt.Sprintf("panic: %v", v),
	}
	if len(stack) == 0 {
		return append(lines, "stack: unavailable")
	}
	lines = append(lines, "stack:")
	for _, line := range strings.Split(string(stack), "\n") {
		if line == "" {
			continue
		}
		lines = append(lines, strings.ReplaceAll(line, "\t", "  "))
	}
	return lines
}

func (g *guard) drawPanic(e *engine.Engine) bool {
	if e.Key(hal.KeyEscape).Pressed {
		return e.Close()
	}
	e.Clear(engine.White)

	cols := max(e.CanvasWidth()/font6x8.Width, 1)
	maxH := e.CanvasHeight()
	y := 0
	for _, line := range g.lines {
		for len(line) > 0 {
			if y+font6x8.Height > maxH {
				return true
			}
			chunk, rest := takeRunes(line, cols)
			e.Text(0, y, chunk, engine.Black)
			y += font6x8.Height
			line = strings.TrimLeft(rest, " ")
		}
	}
	return true
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	var i, count int
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	return s[:i], s[i:]
}
