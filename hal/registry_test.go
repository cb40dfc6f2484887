package hal

import (
	"errors"
	"slices"
	"testing"
)

func TestRegistryBuiltins(t *testing.T) {
	names := Available()
	for _, want := range []string{"ebiten", "fbdev", "headless", "term"} {
		if !slices.Contains(names, want) {
			t.Fatalf("Available() = %v, missing %q", names, want)
		}
	}
	if !slices.IsSorted(names) {
		t.Fatalf("Available() not sorted: %v", names)
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open("no-such-backend", WindowConfig{Width: 1, Height: 1})
	if !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("Open err = %v", err)
	}
}

func TestOpenHeadless(t *testing.T) {
	w, err := Open("headless", WindowConfig{Title: "t", Width: 32, Height: 16})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	if gw, gh := w.Size(); gw != 32 || gh != 16 {
		t.Fatalf("Size = %dx%d", gw, gh)
	}
	if w.Graphics().Language() != GLSL330 {
		t.Fatalf("Language = %v", w.Graphics().Language())
	}
}

func TestKeyNames(t *testing.T) {
	cases := map[Key]string{
		KeyA:      "A",
		KeyZ:      "Z",
		Key0:      "0",
		KeyF12:    "F12",
		KeyEscape: "Escape",
		KeyRight:  "Right",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", k, got, want)
		}
		if back, ok := ParseKey(want); !ok || back != k {
			t.Errorf("ParseKey(%q) = %v, %v", want, back, ok)
		}
	}
	if _, ok := ParseKey("Hyper"); ok {
		t.Error("ParseKey(Hyper) succeeded")
	}
	for k := KeyNone + 1; k < KeyCount; k++ {
		if k.String() == "" {
			t.Errorf("key %d has no name", k)
		}
	}
}
