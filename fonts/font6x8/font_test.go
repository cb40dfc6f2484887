package font6x8

import (
	"image/color"
	"testing"

	"tinygo.org/x/tinyfont"
)

type recorder struct {
	set map[[2]int16]bool
}

func (r *recorder) Size() (int16, int16) { return 64, 16 }

func (r *recorder) SetPixel(x, y int16, _ color.RGBA) {
	r.set[[2]int16{x, y}] = true
}

func (r *recorder) Display() error { return nil }

func TestGlyphI(t *testing.T) {
	r := &recorder{set: make(map[[2]int16]bool)}
	// Baseline at y=7 puts the top row at y=0.
	tinyfont.DrawChar(r, Font, 0, Ascent, 'I', color.RGBA{255, 255, 255, 255})

	for y := int16(0); y < 7; y++ {
		if !r.set[[2]int16{2, y}] {
			t.Fatalf("stem pixel (2,%d) not set", y)
		}
	}
	if len(r.set) != 11 {
		t.Fatalf("pixels set = %d, want 11", len(r.set))
	}
	if r.set[[2]int16{2, 7}] {
		t.Fatal("descender row set for I")
	}
}

func TestUnknownRuneIsQuestionMark(t *testing.T) {
	if Columns('Ж') != Columns('?') {
		t.Fatal("non-ASCII rune does not fall back to ?")
	}
	if Columns('\n') != Columns('?') {
		t.Fatal("control rune does not fall back to ?")
	}
}

func TestAdvance(t *testing.T) {
	_, w := tinyfont.LineWidth(Font, "abc")
	if w != 3*Width {
		t.Fatalf("LineWidth(abc) = %d, want %d", w, 3*Width)
	}
	if Font.GetYAdvance() != Height {
		t.Fatalf("GetYAdvance = %d", Font.GetYAdvance())
	}
}

func TestGlyphTableSize(t *testing.T) {
	if len(glyphData) != (0x7e-0x20+1)*5 {
		t.Fatalf("glyphData has %d bytes", len(glyphData))
	}
}
