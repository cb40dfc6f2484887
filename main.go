package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"golang.org/x/term"

	"pixeng/app"
	"pixeng/engine"
	"pixeng/hal"
	"pixeng/internal/buildinfo"
)

func main() {
	var (
		cfg        engine.Config
		headless   bool
		frames     uint64
		canvas     string
		screen     string
		logLevel   string
		consoleKey string
		version    bool
	)
	flag.StringVar(&cfg.Backend, "backend", engine.DefaultBackend, "Window backend ("+strings.Join(hal.Available(), ", ")+").")
	flag.BoolVar(&headless, "headless", false, "Run without a window (same as -backend headless).")
	flag.IntVar(&cfg.Hz, "hz", 0, "Frame rate for backends without vsync (0 = backend default).")
	flag.Uint64Var(&frames, "frames", 0, "Stop after N frames in headless mode (0 = run until interrupted).")
	flag.StringVar(&canvas, "canvas", "256x240", "Canvas size, WxH.")
	flag.StringVar(&screen, "screen", "", "Window size, WxH (default twice the canvas).")
	flag.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error.")
	flag.StringVar(&consoleKey, "console-key", "F1", "Key that toggles the console overlay (empty to disable).")
	flag.BoolVar(&version, "version", false, "Print version and exit.")
	flag.Parse()

	if version {
		fmt.Println(buildinfo.String())
		return
	}
	if err := run(cfg, headless, frames, canvas, screen, logLevel, consoleKey); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg engine.Config, headless bool, frames uint64, canvas, screen, logLevel, consoleKey string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("-log-level: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	engine.SetLogger(logger)

	var err error
	if cfg.CanvasWidth, cfg.CanvasHeight, err = parseSize(canvas); err != nil {
		return fmt.Errorf("-canvas: %w", err)
	}
	if screen != "" {
		if cfg.ScreenWidth, cfg.ScreenHeight, err = parseSize(screen); err != nil {
			return fmt.Errorf("-screen: %w", err)
		}
	}
	if consoleKey != "" {
		k, ok := hal.ParseKey(consoleKey)
		if !ok {
			return fmt.Errorf("-console-key: unknown key %q", consoleKey)
		}
		cfg.ConsoleKey = k
	}

	if headless {
		cfg.Backend = "headless"
	}
	if cfg.Backend == "headless" {
		cfg.Open = headlessOpener(frames)
	} else if frames > 0 {
		return fmt.Errorf("-frames needs the headless backend, not %q", cfg.Backend)
	}
	if cfg.Backend == "term" {
		// tcell writes to the controlling tty; logging to the same
		// terminal would tear the picture.
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("term backend needs a terminal on stdout")
		}
		if term.IsTerminal(int(os.Stderr.Fd())) {
			engine.SetLogger(nil)
		}
	}

	cfg.Title = "pixeng " + buildinfo.Short()
	e := engine.New(app.Guard(&app.Demo{Title: cfg.Title}), cfg)
	if err := e.Initialise(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return e.Start(ctx)
}

func headlessOpener(frames uint64) hal.Opener {
	return func(wc hal.WindowConfig) (hal.Window, error) {
		return hal.NewHeadless(hal.HeadlessConfig{WindowConfig: wc, Frames: frames}), nil
	}
}

func parseSize(s string) (w, h int, err error) {
	if _, err := fmt.Sscanf(s, "%dx%d", &w, &h); err != nil {
		return 0, 0, fmt.Errorf("%q is not WxH", s)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("%q: %w", s, engine.ErrInvalidSize)
	}
	return w, h, nil
}
