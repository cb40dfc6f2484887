package engine

import "pixeng/hal"

// KeyState is the edge state of one key for the current frame.
type KeyState struct {
	Pressed  bool // down now, up last frame
	Held     bool // down now
	Released bool // up now, down last frame
}

// KeySource reports the raw down state of a key. hal.Window implements it.
type KeySource interface {
	KeyDown(k hal.Key) bool
}

// Input turns per-frame raw key samples into pressed/held/released edges.
// The zero value is ready to use.
type Input struct {
	now   [hal.KeyCount]bool
	prev  [hal.KeyCount]bool
	state [hal.KeyCount]KeyState
}

// Sample reads every key from src once. Call it exactly once per frame,
// after the event poll and before the update callback.
func (in *Input) Sample(src KeySource) {
	for k := hal.Key(0); k < hal.KeyCount; k++ {
		in.prev[k] = in.now[k]
		in.now[k] = src.KeyDown(k)
		in.state[k] = KeyState{
			Pressed:  in.now[k] && !in.prev[k],
			Held:     in.now[k],
			Released: !in.now[k] && in.prev[k],
		}
	}
}

// Key returns the state of k as of the last Sample. Keys outside the
// enumeration report the zero KeyState.
func (in *Input) Key(k hal.Key) KeyState {
	if k >= hal.KeyCount {
		return KeyState{}
	}
	return in.state[k]
}
