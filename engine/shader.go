package engine

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/go-gl/mathgl/mgl32"

	"pixeng/hal"
)

// ShaderError reports a shader that could not be read, compiled or linked.
// Log holds the diagnostic text.
type ShaderError struct {
	Stage string // "vertex", "fragment" or "link"
	Path  string
	Log   string
	Err   error
}

func (e *ShaderError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("shader %s (%s): %s", e.Stage, e.Path, e.Log)
	}
	return fmt.Sprintf("shader %s: %s", e.Stage, e.Log)
}

func (e *ShaderError) Unwrap() error { return e.Err }

// Shader is a compiled program with typed uniform setters. Every setter
// resolves the uniform by name on each call.
type Shader struct {
	prog hal.Program
}

// LoadShader reads the vertex and fragment sources from fsys and compiles
// them on g. An empty path skips that stage, for languages without one.
func LoadShader(g hal.Graphics, fsys fs.FS, vertexPath, fragmentPath string) (*Shader, error) {
	vertex, err := readStage(fsys, "vertex", vertexPath)
	if err != nil {
		return nil, err
	}
	fragment, err := readStage(fsys, "fragment", fragmentPath)
	if err != nil {
		return nil, err
	}

	prog, err := g.NewProgram(vertex, fragment)
	if err != nil {
		se := &ShaderError{Stage: "link", Log: err.Error(), Err: err}
		var ce *hal.CompileError
		if errors.As(err, &ce) {
			se.Stage, se.Log = ce.Stage, ce.Log
			switch ce.Stage {
			case "vertex":
				se.Path = vertexPath
			case "fragment":
				se.Path = fragmentPath
			}
		}
		return nil, se
	}
	return &Shader{prog: prog}, nil
}

func readStage(fsys fs.FS, stage, path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	src, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, &ShaderError{Stage: stage, Path: path, Log: err.Error(), Err: err}
	}
	return src, nil
}

// Use makes the shader current for subsequent draws.
func (s *Shader) Use() { s.prog.Use() }

func (s *Shader) SetBool(name string, v bool) {
	var i int32
	if v {
		i = 1
	}
	s.prog.SetInt(name, i)
}

func (s *Shader) SetInt(name string, v int32) { s.prog.SetInt(name, v) }

func (s *Shader) SetFloat(name string, v float32) { s.prog.SetFloat(name, v) }

func (s *Shader) SetVec2(name string, v mgl32.Vec2) { s.prog.SetFloat(name, v[:]...) }

func (s *Shader) SetVec2f(name string, x, y float32) { s.prog.SetFloat(name, x, y) }

func (s *Shader) SetVec3(name string, v mgl32.Vec3) { s.prog.SetFloat(name, v[:]...) }

func (s *Shader) SetVec3f(name string, x, y, z float32) { s.prog.SetFloat(name, x, y, z) }

func (s *Shader) SetVec4(name string, v mgl32.Vec4) { s.prog.SetFloat(name, v[:]...) }

func (s *Shader) SetVec4f(name string, x, y, z, w float32) { s.prog.SetFloat(name, x, y, z, w) }

// SetMat4 sets a mat4 uniform. mgl32 matrices are column-major, as GL expects.
func (s *Shader) SetMat4(name string, m mgl32.Mat4) { s.prog.SetMatrix4(name, m) }

// Release frees the program. It is safe to call more than once.
func (s *Shader) Release() {
	if s.prog == nil {
		return
	}
	s.prog.Release()
	s.prog = nil
}
