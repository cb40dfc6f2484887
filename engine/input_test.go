package engine

import (
	"testing"

	"pixeng/hal"
)

type fakeKeys map[hal.Key]bool

func (f fakeKeys) KeyDown(k hal.Key) bool { return f[k] }

func TestInputEdges(t *testing.T) {
	raw := []bool{false, true, true, false}
	want := []KeyState{
		{},
		{Pressed: true, Held: true},
		{Held: true},
		{Released: true},
	}

	var in Input
	for i, down := range raw {
		in.Sample(fakeKeys{hal.KeySpace: down})
		if got := in.Key(hal.KeySpace); got != want[i] {
			t.Fatalf("frame %d: Key = %+v, want %+v", i, got, want[i])
		}
	}
}

func TestInputKeyIsStableWithinFrame(t *testing.T) {
	var in Input
	in.Sample(fakeKeys{hal.KeyA: true})
	first := in.Key(hal.KeyA)
	second := in.Key(hal.KeyA)
	if first != second {
		t.Fatalf("Key changed within a frame: %+v then %+v", first, second)
	}
	if !first.Pressed {
		t.Fatalf("Key = %+v, want pressed", first)
	}
}

func TestInputKeysAreIndependent(t *testing.T) {
	var in Input
	in.Sample(fakeKeys{hal.KeyLeft: true})
	in.Sample(fakeKeys{hal.KeyLeft: true, hal.KeyRight: true})
	if got := in.Key(hal.KeyLeft); got != (KeyState{Held: true}) {
		t.Fatalf("Left = %+v", got)
	}
	if got := in.Key(hal.KeyRight); got != (KeyState{Pressed: true, Held: true}) {
		t.Fatalf("Right = %+v", got)
	}
	if got := in.Key(hal.KeyUp); got != (KeyState{}) {
		t.Fatalf("Up = %+v", got)
	}
}

func TestInputOutOfRangeKey(t *testing.T) {
	var in Input
	in.Sample(fakeKeys{})
	if got := in.Key(hal.KeyCount + 3); got != (KeyState{}) {
		t.Fatalf("Key(out of range) = %+v", got)
	}
}
