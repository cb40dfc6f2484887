package hal

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

const (
	testVertex   = "#version 330 core\nvoid main() { gl_Position = vec4(0); }\n"
	testFragment = "#version 330 core\nout vec4 c;\nvoid main() { c = vec4(1); }\n"
)

func TestSoftwareProgramDiagnostics(t *testing.T) {
	s := NewSoftware(4, 4)

	_, err := s.NewProgram([]byte(testVertex), nil)
	var ce *CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("NewProgram(empty fragment) err = %v, want *CompileError", err)
	}
	if ce.Stage != "fragment" || ce.Log == "" {
		t.Fatalf("CompileError = %+v", ce)
	}

	_, err = s.NewProgram([]byte("int x;"), []byte(testFragment))
	if !errors.As(err, &ce) || ce.Stage != "vertex" {
		t.Fatalf("NewProgram(no main) err = %v", err)
	}
	if s.Live() != 0 {
		t.Fatalf("Live = %d after failed compiles", s.Live())
	}
}

func TestSoftwareQuadNeedsState(t *testing.T) {
	s := NewSoftware(4, 4)
	q, err := s.NewQuad()
	if err != nil {
		t.Fatal(err)
	}
	if err := q.Draw(); !errors.Is(err, ErrNoProgramInUse) {
		t.Fatalf("Draw without program: %v", err)
	}

	p, err := s.NewProgram([]byte(testVertex), []byte(testFragment))
	if err != nil {
		t.Fatal(err)
	}
	p.Use()
	if err := q.Draw(); !errors.Is(err, ErrNoTextureBound) {
		t.Fatalf("Draw without texture: %v", err)
	}
}

func TestSoftwareQuadScalesNearest(t *testing.T) {
	s := NewSoftware(4, 2)
	tex, err := s.NewTexture(2, 1)
	if err != nil {
		t.Fatal(err)
	}
	red := color.RGBA{255, 0, 0, 255}
	blue := color.RGBA{0, 0, 255, 255}
	if err := tex.Upload([]byte{255, 0, 0, 255, 0, 0, 255, 255}); err != nil {
		t.Fatal(err)
	}
	p, _ := s.NewProgram([]byte(testVertex), []byte(testFragment))
	q, _ := s.NewQuad()

	s.Clear(color.RGBA{0, 0, 0, 255})
	s.SetViewport(image.Rect(0, 0, 4, 2))
	p.Use()
	tex.Bind(0)
	if err := q.Draw(); err != nil {
		t.Fatal(err)
	}

	img := s.Target()
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			want := red
			if x >= 2 {
				want = blue
			}
			if got := img.RGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
	if s.Draws() != 1 {
		t.Fatalf("Draws = %d", s.Draws())
	}
}

func TestSoftwareViewportLeavesBars(t *testing.T) {
	s := NewSoftware(6, 2)
	tex, _ := s.NewTexture(1, 1)
	_ = tex.Upload([]byte{255, 255, 255, 255})
	p, _ := s.NewProgram([]byte(testVertex), []byte(testFragment))
	q, _ := s.NewQuad()

	s.Clear(color.RGBA{0, 0, 0, 255})
	s.SetViewport(image.Rect(2, 0, 4, 2))
	p.Use()
	tex.Bind(0)
	if err := q.Draw(); err != nil {
		t.Fatal(err)
	}
	img := s.Target()
	if got := img.RGBAAt(0, 0); got != (color.RGBA{0, 0, 0, 255}) {
		t.Fatalf("bar pixel = %v", got)
	}
	if got := img.RGBAAt(3, 1); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("quad pixel = %v", got)
	}
}

func TestSoftwareUploadSize(t *testing.T) {
	s := NewSoftware(1, 1)
	tex, _ := s.NewTexture(2, 2)
	if err := tex.Upload(make([]byte, 4)); !errors.Is(err, ErrInvalidGeometry) {
		t.Fatalf("Upload short: %v", err)
	}
	if _, err := s.NewTexture(0, 2); !errors.Is(err, ErrInvalidGeometry) {
		t.Fatalf("NewTexture(0,2): %v", err)
	}
}

func TestSoftwareReleaseCounts(t *testing.T) {
	s := NewSoftware(1, 1)
	tex, _ := s.NewTexture(1, 1)
	p, _ := s.NewProgram([]byte(testVertex), []byte(testFragment))
	q, _ := s.NewQuad()
	if s.Live() != 3 {
		t.Fatalf("Live = %d, want 3", s.Live())
	}
	tex.Release()
	tex.Release()
	p.Release()
	q.Release()
	q.Release()
	if s.Live() != 0 {
		t.Fatalf("Live = %d, want 0", s.Live())
	}
}

func TestSoftwareUniforms(t *testing.T) {
	s := NewSoftware(1, 1)
	p, _ := s.NewProgram([]byte(testVertex), []byte(testFragment))
	p.Use()
	p.SetInt("Canvas", 0)
	p.SetFloat("CanvasSize", 320, 200)

	u := s.Uniforms()
	if u["Canvas"] != int32(0) {
		t.Fatalf("Canvas = %v", u["Canvas"])
	}
	size, ok := u["CanvasSize"].([]float32)
	if !ok || len(size) != 2 || size[0] != 320 || size[1] != 200 {
		t.Fatalf("CanvasSize = %v", u["CanvasSize"])
	}
}
