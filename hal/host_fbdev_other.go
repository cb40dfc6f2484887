//go:build !linux || !cgo

package hal

import "fmt"

func init() {
	Register("fbdev", func(WindowConfig) (Window, error) {
		return nil, fmt.Errorf("fbdev backend requires linux and cgo: %w", ErrNotSupported)
	})
}
