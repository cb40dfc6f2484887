//go:build linux && cgo

package hal

import (
	"context"
	"encoding/binary"
	"fmt"
	"path/filepath"
	"time"

	fb "github.com/gonutz/framebuffer"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/sys/unix"
)

const (
	fbdevPath      = "/dev/fb0"
	fbdevDefaultHz = 60

	evKey = 0x01

	// linux/kd.h
	kdText     = 0x00
	kdGraphics = 0x01
	kdSetMode  = 0x4B3A
)

func init() {
	Register("fbdev", openFbdev)
}

// fbdevWindow draws to the Linux framebuffer and reads keys from every evdev
// node it can open. The framebuffer size is fixed by the kernel mode.
type fbdevWindow struct {
	dev   *fb.Device
	gfx   *Software
	hz    int
	title string

	inputs    []int
	tty       int
	tvSize    int
	eventSize int
	buf       []byte
	codes     [keyCodeMax]bool
}

const keyCodeMax = 256

func openFbdev(cfg WindowConfig) (Window, error) {
	dev, err := fb.Open(fbdevPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", fbdevPath, err)
	}
	b := dev.Bounds()
	if b.Empty() {
		dev.Close()
		return nil, fmt.Errorf("%s bounds %v: %w", fbdevPath, b, ErrInvalidGeometry)
	}

	// input_event is a timeval followed by u16 type, u16 code and s32 value.
	tvSize := binary.Size(unix.Timeval{})
	w := &fbdevWindow{
		dev:       dev,
		gfx:       NewSoftware(b.Dx(), b.Dy()),
		hz:        cfg.Hz,
		title:     cfg.Title,
		tty:       -1,
		tvSize:    tvSize,
		eventSize: tvSize + 8,
		buf:       make([]byte, 4096),
	}
	if w.hz <= 0 {
		w.hz = fbdevDefaultHz
	}

	paths, _ := filepath.Glob("/dev/input/event*")
	for _, p := range paths {
		fd, err := unix.Open(p, unix.O_RDONLY|unix.O_NONBLOCK, 0)
		if err != nil {
			continue
		}
		w.inputs = append(w.inputs, fd)
	}

	// Graphics mode hides the console cursor. Failing that is not fatal.
	for _, p := range []string{"/dev/tty", "/dev/tty0"} {
		fd, err := unix.Open(p, unix.O_RDONLY, 0)
		if err != nil {
			continue
		}
		if err := unix.IoctlSetInt(fd, kdSetMode, kdGraphics); err != nil {
			unix.Close(fd)
			continue
		}
		w.tty = fd
		break
	}
	return w, nil
}

func (w *fbdevWindow) Run(ctx context.Context, l Loop) error {
	if w.dev == nil {
		return ErrWindowClosed
	}
	t := time.NewTicker(time.Second / time.Duration(w.hz))
	defer t.Stop()

	for {
		w.readInput()
		if !l.Frame() {
			return nil
		}
		if err := l.Present(); err != nil {
			return err
		}
		target := w.gfx.Target()
		xdraw.Copy(w.dev, w.dev.Bounds().Min, target, target.Rect, xdraw.Src, nil)

		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
		}
	}
}

func (w *fbdevWindow) readInput() {
	for _, fd := range w.inputs {
		for {
			n, err := unix.Read(fd, w.buf)
			if err != nil || n < w.eventSize {
				break
			}
			parseInputEvents(w.buf[:n], w.tvSize, func(code uint16, value int32) {
				if int(code) < len(w.codes) {
					// 0 release, 1 press, 2 autorepeat
					w.codes[code] = value != 0
				}
			})
		}
	}
}

// parseInputEvents walks a buffer of input_event records and reports the
// code and value of every EV_KEY event.
func parseInputEvents(buf []byte, tvSize int, fn func(code uint16, value int32)) {
	size := tvSize + 8
	for off := 0; off+size <= len(buf); off += size {
		rec := buf[off : off+size]
		typ := binary.LittleEndian.Uint16(rec[tvSize : tvSize+2])
		if typ != evKey {
			continue
		}
		code := binary.LittleEndian.Uint16(rec[tvSize+2 : tvSize+4])
		value := int32(binary.LittleEndian.Uint32(rec[tvSize+4 : tvSize+8]))
		fn(code, value)
	}
}

func (w *fbdevWindow) KeyDown(k Key) bool {
	for _, code := range evdevCodes[k] {
		if w.codes[code] {
			return true
		}
	}
	return false
}

func (w *fbdevWindow) Size() (int, int) {
	r := w.gfx.Target().Rect
	return r.Dx(), r.Dy()
}

// SetSize is ignored: the video mode fixes the framebuffer size.
func (w *fbdevWindow) SetSize(int, int) {}

func (w *fbdevWindow) SetTitle(title string) { w.title = title }

func (w *fbdevWindow) Graphics() Graphics { return w.gfx }

func (w *fbdevWindow) Close() error {
	if w.dev == nil {
		return nil
	}
	for _, fd := range w.inputs {
		unix.Close(fd)
	}
	w.inputs = nil
	if w.tty >= 0 {
		_ = unix.IoctlSetInt(w.tty, kdSetMode, kdText)
		unix.Close(w.tty)
		w.tty = -1
	}
	w.dev.Close()
	w.dev = nil
	return nil
}
