//go:build !cgo || gl

package hal

import "fmt"

// The gl build links its own GLFW, which would clash with ebiten's.
func init() {
	Register("ebiten", func(WindowConfig) (Window, error) {
		return nil, fmt.Errorf("ebiten backend requires cgo and is excluded from -tags gl builds: %w", ErrNotSupported)
	})
}
