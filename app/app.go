// Package app is the demo application: a yellow square driven by the arrow
// keys, with the frame rate in the window title.
package app

import (
	"fmt"

	"pixeng/engine"
	"pixeng/hal"
)

const (
	squareY    = 50
	squareSize = 50

	narrowScreen = 320
	wideScreen   = 640
)

// Demo implements engine.App.
type Demo struct {
	// Title prefixes the fps counter in the window title.
	Title string
	// X is the left edge of the square.
	X int
}

func (d *Demo) Create(e *engine.Engine) bool {
	if c := e.Console(); c != nil {
		c.Printf("%s\n", d.Title)
		c.Printf("arrows move, M width\nESC quit\n")
	}
	engine.Logger().Debug("demo created", "canvas", fmt.Sprintf("%dx%d", e.CanvasWidth(), e.CanvasHeight()))
	return true
}

func (d *Demo) Update(e *engine.Engine, dt float64) bool {
	e.Clear(engine.DefaultPixel)

	if e.Key(hal.KeyEscape).Pressed {
		return e.Close()
	}

	if dt > 0 {
		e.SetTitle(fmt.Sprintf("%s %.1f fps", d.Title, 1/dt))
	}

	e.Rect(d.X, squareY, squareSize, squareSize, engine.Yellow, engine.Yellow)

	if e.Key(hal.KeyRight).Held {
		d.X = (d.X + 1) % e.CanvasWidth()
	}
	if e.Key(hal.KeyLeft).Held {
		d.X--
		// wraps to the width itself, one past the last column
		if d.X < 0 {
			d.X = e.CanvasWidth()
		}
	}

	if e.Key(hal.KeyM).Pressed {
		if e.ScreenWidth() == wideScreen {
			e.SetScreenWidth(narrowScreen)
		} else {
			e.SetScreenWidth(wideScreen)
		}
	}
	return true
}
