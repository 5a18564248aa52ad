package keysim

import (
	"fmt"

	"github.com/bendahl/uinput"
)

// Key is a simulated keyboard key, identified by its Linux input event code.
type Key int

// keysByName maps the symbolic key names accepted in mapping configs to
// uinput key codes.
var keysByName = map[string]Key{
	"A": uinput.KeyA, "B": uinput.KeyB, "C": uinput.KeyC, "D": uinput.KeyD,
	"E": uinput.KeyE, "F": uinput.KeyF, "G": uinput.KeyG, "H": uinput.KeyH,
	"I": uinput.KeyI, "J": uinput.KeyJ, "K": uinput.KeyK, "L": uinput.KeyL,
	"M": uinput.KeyM, "N": uinput.KeyN, "O": uinput.KeyO, "P": uinput.KeyP,
	"Q": uinput.KeyQ, "R": uinput.KeyR, "S": uinput.KeyS, "T": uinput.KeyT,
	"U": uinput.KeyU, "V": uinput.KeyV, "W": uinput.KeyW, "X": uinput.KeyX,
	"Y": uinput.KeyY, "Z": uinput.KeyZ,

	"0": uinput.Key0, "1": uinput.Key1, "2": uinput.Key2, "3": uinput.Key3,
	"4": uinput.Key4, "5": uinput.Key5, "6": uinput.Key6, "7": uinput.Key7,
	"8": uinput.Key8, "9": uinput.Key9,

	"F1": uinput.KeyF1, "F2": uinput.KeyF2, "F3": uinput.KeyF3,
	"F4": uinput.KeyF4, "F5": uinput.KeyF5, "F6": uinput.KeyF6,
	"F7": uinput.KeyF7, "F8": uinput.KeyF8, "F9": uinput.KeyF9,
	"F10": uinput.KeyF10, "F11": uinput.KeyF11, "F12": uinput.KeyF12,

	"Space":     uinput.KeySpace,
	"Enter":     uinput.KeyEnter,
	"Escape":    uinput.KeyEsc,
	"Tab":       uinput.KeyTab,
	"Backspace": uinput.KeyBackspace,

	"Up":    uinput.KeyUp,
	"Down":  uinput.KeyDown,
	"Left":  uinput.KeyLeft,
	"Right": uinput.KeyRight,

	"LeftShift":  uinput.KeyLeftshift,
	"RightShift": uinput.KeyRightshift,
	"LeftCtrl":   uinput.KeyLeftctrl,
	"RightCtrl":  uinput.KeyRightctrl,
	"LeftAlt":    uinput.KeyLeftalt,
	"RightAlt":   uinput.KeyRightalt,

	"Home":     uinput.KeyHome,
	"End":      uinput.KeyEnd,
	"PageUp":   uinput.KeyPageup,
	"PageDown": uinput.KeyPagedown,
	"Insert":   uinput.KeyInsert,
	"Delete":   uinput.KeyDelete,

	"Comma":      uinput.KeyComma,
	"Dot":        uinput.KeyDot,
	"Slash":      uinput.KeySlash,
	"Semicolon":  uinput.KeySemicolon,
	"Apostrophe": uinput.KeyApostrophe,
	"Minus":      uinput.KeyMinus,
	"Equal":      uinput.KeyEqual,
	"Grave":      uinput.KeyGrave,
	"Backslash":  uinput.KeyBackslash,
	"LeftBrace":  uinput.KeyLeftbrace,
	"RightBrace": uinput.KeyRightbrace,
}

var namesByKey = func() map[Key]string {
	m := make(map[Key]string, len(keysByName))
	for name, k := range keysByName {
		m[k] = name
	}
	return m
}()

// ParseKey resolves a symbolic key name from a mapping config.
func ParseKey(name string) (Key, error) {
	k, ok := keysByName[name]
	if !ok {
		return 0, fmt.Errorf("unknown key name %q", name)
	}
	return k, nil
}

// Name returns the symbolic name of k, or its numeric code if unnamed.
func (k Key) Name() string {
	if name, ok := namesByKey[k]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

func (k Key) String() string { return k.Name() }
