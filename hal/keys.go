package hal

import "fmt"

// Key identifies a physical key independently of the backend. The set is
// fixed; backends translate it through their own table.
type Key uint8

const (
	KeyNone Key = iota

	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	KeySpace
	KeyTab
	KeyShift
	KeyCtrl
	KeyAlt
	KeyInsert
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyBackspace
	KeyEscape
	KeyEnter

	// KeyCount is the number of keys, not a key.
	KeyCount
)

var keyNames = [...]string{
	KeyNone: "None",
	KeyUp:   "Up", KeyDown: "Down", KeyLeft: "Left", KeyRight: "Right",
	KeySpace: "Space", KeyTab: "Tab", KeyShift: "Shift", KeyCtrl: "Ctrl",
	KeyAlt: "Alt", KeyInsert: "Insert", KeyDelete: "Delete", KeyHome: "Home",
	KeyEnd: "End", KeyPageUp: "PageUp", KeyPageDown: "PageDown",
	KeyBackspace: "Backspace", KeyEscape: "Escape", KeyEnter: "Enter",
	KeyCount: "",
}

func (k Key) String() string {
	switch {
	case k >= KeyA && k <= KeyZ:
		return string(rune('A' + k - KeyA))
	case k >= Key0 && k <= Key9:
		return string(rune('0' + k - Key0))
	case k >= KeyF1 && k <= KeyF12:
		return fmt.Sprintf("F%d", k-KeyF1+1)
	case k < KeyCount:
		return keyNames[k]
	default:
		return fmt.Sprintf("Key(%d)", uint8(k))
	}
}

// ParseKey returns the key whose String is s.
func ParseKey(s string) (Key, bool) {
	for k := KeyNone + 1; k < KeyCount; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return KeyNone, false
}
