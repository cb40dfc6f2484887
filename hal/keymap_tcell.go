package hal

import "github.com/gdamore/tcell/v2"

var tcellKeys = map[tcell.Key]Key{
	tcell.KeyUp:    KeyUp,
	tcell.KeyDown:  KeyDown,
	tcell.KeyLeft:  KeyLeft,
	tcell.KeyRight: KeyRight,

	tcell.KeyTab:        KeyTab,
	tcell.KeyInsert:     KeyInsert,
	tcell.KeyDelete:     KeyDelete,
	tcell.KeyHome:       KeyHome,
	tcell.KeyEnd:        KeyEnd,
	tcell.KeyPgUp:       KeyPageUp,
	tcell.KeyPgDn:       KeyPageDown,
	tcell.KeyBackspace:  KeyBackspace,
	tcell.KeyBackspace2: KeyBackspace,
	tcell.KeyEsc:        KeyEscape,
	tcell.KeyEnter:      KeyEnter,

	tcell.KeyF1: KeyF1, tcell.KeyF2: KeyF2, tcell.KeyF3: KeyF3, tcell.KeyF4: KeyF4,
	tcell.KeyF5: KeyF5, tcell.KeyF6: KeyF6, tcell.KeyF7: KeyF7, tcell.KeyF8: KeyF8,
	tcell.KeyF9: KeyF9, tcell.KeyF10: KeyF10, tcell.KeyF11: KeyF11, tcell.KeyF12: KeyF12,
}

func termKey(ev *tcell.EventKey) (Key, bool) {
	if ev.Key() != tcell.KeyRune {
		k, ok := tcellKeys[ev.Key()]
		return k, ok
	}
	r := ev.Rune()
	switch {
	case r >= 'a' && r <= 'z':
		return KeyA + Key(r-'a'), true
	case r >= 'A' && r <= 'Z':
		return KeyA + Key(r-'A'), true
	case r >= '0' && r <= '9':
		return Key0 + Key(r-'0'), true
	case r == ' ':
		return KeySpace, true
	}
	return KeyNone, false
}
