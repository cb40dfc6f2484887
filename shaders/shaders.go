// Package shaders embeds the canvas shader sources.
//
// Each hal.Language has a directory holding canvas.vert and canvas.frag.
// Kage has no vertex stage, so its Paths entry leaves the vertex path empty.
package shaders

import (
	"embed"

	"pixeng/hal"
)

//go:embed glsl kage
var FS embed.FS

// Paths returns the vertex and fragment source paths in FS for lang.
func Paths(lang hal.Language) (vertex, fragment string, ok bool) {
	switch lang {
	case hal.GLSL330:
		return "glsl/canvas.vert", "glsl/canvas.frag", true
	case hal.Kage:
		return "", "kage/canvas.kage", true
	default:
		return "", "", false
	}
}
