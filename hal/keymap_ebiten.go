//go:build cgo && !gl

package hal

import "github.com/hajimehoshi/ebiten/v2"

var ebitenKeys = map[Key]ebiten.Key{
	KeyA: ebiten.KeyA, KeyB: ebiten.KeyB, KeyC: ebiten.KeyC, KeyD: ebiten.KeyD,
	KeyE: ebiten.KeyE, KeyF: ebiten.KeyF, KeyG: ebiten.KeyG, KeyH: ebiten.KeyH,
	KeyI: ebiten.KeyI, KeyJ: ebiten.KeyJ, KeyK: ebiten.KeyK, KeyL: ebiten.KeyL,
	KeyM: ebiten.KeyM, KeyN: ebiten.KeyN, KeyO: ebiten.KeyO, KeyP: ebiten.KeyP,
	KeyQ: ebiten.KeyQ, KeyR: ebiten.KeyR, KeyS: ebiten.KeyS, KeyT: ebiten.KeyT,
	KeyU: ebiten.KeyU, KeyV: ebiten.KeyV, KeyW: ebiten.KeyW, KeyX: ebiten.KeyX,
	KeyY: ebiten.KeyY, KeyZ: ebiten.KeyZ,

	Key0: ebiten.KeyDigit0, Key1: ebiten.KeyDigit1, Key2: ebiten.KeyDigit2,
	Key3: ebiten.KeyDigit3, Key4: ebiten.KeyDigit4, Key5: ebiten.KeyDigit5,
	Key6: ebiten.KeyDigit6, Key7: ebiten.KeyDigit7, Key8: ebiten.KeyDigit8,
	Key9: ebiten.KeyDigit9,

	KeyF1: ebiten.KeyF1, KeyF2: ebiten.KeyF2, KeyF3: ebiten.KeyF3, KeyF4: ebiten.KeyF4,
	KeyF5: ebiten.KeyF5, KeyF6: ebiten.KeyF6, KeyF7: ebiten.KeyF7, KeyF8: ebiten.KeyF8,
	KeyF9: ebiten.KeyF9, KeyF10: ebiten.KeyF10, KeyF11: ebiten.KeyF11, KeyF12: ebiten.KeyF12,

	KeyUp:    ebiten.KeyArrowUp,
	KeyDown:  ebiten.KeyArrowDown,
	KeyLeft:  ebiten.KeyArrowLeft,
	KeyRight: ebiten.KeyArrowRight,

	KeySpace:     ebiten.KeySpace,
	KeyTab:       ebiten.KeyTab,
	KeyShift:     ebiten.KeyShift,
	KeyCtrl:      ebiten.KeyControl,
	KeyAlt:       ebiten.KeyAlt,
	KeyInsert:    ebiten.KeyInsert,
	KeyDelete:    ebiten.KeyDelete,
	KeyHome:      ebiten.KeyHome,
	KeyEnd:       ebiten.KeyEnd,
	KeyPageUp:    ebiten.KeyPageUp,
	KeyPageDown:  ebiten.KeyPageDown,
	KeyBackspace: ebiten.KeyBackspace,
	KeyEscape:    ebiten.KeyEscape,
	KeyEnter:     ebiten.KeyEnter,
}
