//go:build gl && cgo

package hal

import "github.com/go-gl/glfw/v3.3/glfw"

// glfwKeys lists every GLFW key that counts as k being down.
var glfwKeys = map[Key][]glfw.Key{
	KeyA: {glfw.KeyA}, KeyB: {glfw.KeyB}, KeyC: {glfw.KeyC}, KeyD: {glfw.KeyD},
	KeyE: {glfw.KeyE}, KeyF: {glfw.KeyF}, KeyG: {glfw.KeyG}, KeyH: {glfw.KeyH},
	KeyI: {glfw.KeyI}, KeyJ: {glfw.KeyJ}, KeyK: {glfw.KeyK}, KeyL: {glfw.KeyL},
	KeyM: {glfw.KeyM}, KeyN: {glfw.KeyN}, KeyO: {glfw.KeyO}, KeyP: {glfw.KeyP},
	KeyQ: {glfw.KeyQ}, KeyR: {glfw.KeyR}, KeyS: {glfw.KeyS}, KeyT: {glfw.KeyT},
	KeyU: {glfw.KeyU}, KeyV: {glfw.KeyV}, KeyW: {glfw.KeyW}, KeyX: {glfw.KeyX},
	KeyY: {glfw.KeyY}, KeyZ: {glfw.KeyZ},

	Key0: {glfw.Key0}, Key1: {glfw.Key1}, Key2: {glfw.Key2}, Key3: {glfw.Key3},
	Key4: {glfw.Key4}, Key5: {glfw.Key5}, Key6: {glfw.Key6}, Key7: {glfw.Key7},
	Key8: {glfw.Key8}, Key9: {glfw.Key9},

	KeyF1: {glfw.KeyF1}, KeyF2: {glfw.KeyF2}, KeyF3: {glfw.KeyF3}, KeyF4: {glfw.KeyF4},
	KeyF5: {glfw.KeyF5}, KeyF6: {glfw.KeyF6}, KeyF7: {glfw.KeyF7}, KeyF8: {glfw.KeyF8},
	KeyF9: {glfw.KeyF9}, KeyF10: {glfw.KeyF10}, KeyF11: {glfw.KeyF11}, KeyF12: {glfw.KeyF12},

	KeyUp:    {glfw.KeyUp},
	KeyDown:  {glfw.KeyDown},
	KeyLeft:  {glfw.KeyLeft},
	KeyRight: {glfw.KeyRight},

	KeySpace:     {glfw.KeySpace},
	KeyTab:       {glfw.KeyTab},
	KeyShift:     {glfw.KeyLeftShift, glfw.KeyRightShift},
	KeyCtrl:      {glfw.KeyLeftControl, glfw.KeyRightControl},
	KeyAlt:       {glfw.KeyLeftAlt, glfw.KeyRightAlt},
	KeyInsert:    {glfw.KeyInsert},
	KeyDelete:    {glfw.KeyDelete},
	KeyHome:      {glfw.KeyHome},
	KeyEnd:       {glfw.KeyEnd},
	KeyPageUp:    {glfw.KeyPageUp},
	KeyPageDown:  {glfw.KeyPageDown},
	KeyBackspace: {glfw.KeyBackspace},
	KeyEscape:    {glfw.KeyEscape},
	KeyEnter:     {glfw.KeyEnter, glfw.KeyKPEnter},
}
