//go:build linux && cgo

package hal

// evdevCodes lists the linux/input-event-codes.h codes that count as k being
// down.
var evdevCodes = map[Key][]uint16{
	Key1: {2}, Key2: {3}, Key3: {4}, Key4: {5}, Key5: {6},
	Key6: {7}, Key7: {8}, Key8: {9}, Key9: {10}, Key0: {11},

	KeyEscape:    {1},
	KeyBackspace: {14},
	KeyTab:       {15},

	KeyQ: {16}, KeyW: {17}, KeyE: {18}, KeyR: {19}, KeyT: {20},
	KeyY: {21}, KeyU: {22}, KeyI: {23}, KeyO: {24}, KeyP: {25},
	KeyA: {30}, KeyS: {31}, KeyD: {32}, KeyF: {33}, KeyG: {34},
	KeyH: {35}, KeyJ: {36}, KeyK: {37}, KeyL: {38},
	KeyZ: {44}, KeyX: {45}, KeyC: {46}, KeyV: {47}, KeyB: {48},
	KeyN: {49}, KeyM: {50},

	KeyEnter: {28, 96},
	KeyCtrl:  {29, 97},
	KeyShift: {42, 54},
	KeyAlt:   {56, 100},
	KeySpace: {57},

	KeyF1: {59}, KeyF2: {60}, KeyF3: {61}, KeyF4: {62}, KeyF5: {63},
	KeyF6: {64}, KeyF7: {65}, KeyF8: {66}, KeyF9: {67}, KeyF10: {68},
	KeyF11: {87}, KeyF12: {88},

	KeyHome:     {102},
	KeyUp:       {103},
	KeyPageUp:   {104},
	KeyLeft:     {105},
	KeyRight:    {106},
	KeyEnd:      {107},
	KeyDown:     {108},
	KeyPageDown: {109},
	KeyInsert:   {110},
	KeyDelete:   {111},
}
