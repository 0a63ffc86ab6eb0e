package browser

import (
	"fmt"

	"github.com/go-rod/rod/lib/input"
)

// keysymKeys maps X11 keysyms of non-printable keys to DevTools keys.
var keysymKeys = map[int]input.Key{
	0xff08: input.Backspace,
	0xff09: input.Tab,
	0xff0d: input.Enter,
	0xff13: input.Pause,
	0xff1b: input.Escape,
	0xff50: input.Home,
	0xff51: input.ArrowLeft,
	0xff52: input.ArrowUp,
	0xff53: input.ArrowRight,
	0xff54: input.ArrowDown,
	0xff55: input.PageUp,
	0xff56: input.PageDown,
	0xff57: input.End,
	0xff63: input.Insert,
	0xff67: input.ContextMenu,
	0xff7f: input.NumLock,
	0xffbe: input.F1,
	0xffbf: input.F2,
	0xffc0: input.F3,
	0xffc1: input.F4,
	0xffc2: input.F5,
	0xffc3: input.F6,
	0xffc4: input.F7,
	0xffc5: input.F8,
	0xffc6: input.F9,
	0xffc7: input.F10,
	0xffc8: input.F11,
	0xffc9: input.F12,
	0xffff: input.Delete,
}

// modifierKeys maps X11 modifier keycodes to DevTools keys.
var modifierKeys = map[int]input.Key{
	50:  input.ShiftLeft,
	37:  input.ControlLeft,
	64:  input.AltLeft,
	133: input.MetaLeft,
}

// keyFor converts a keysym or a printable ASCII code into a DevTools key.
// Other code points cannot be typed as key strokes.
func keyFor(code int) (input.Key, bool) {
	if k, ok := keysymKeys[code]; ok {
		return k, true
	}
	if code >= 0x20 && code <= 0x7e {
		return input.Key(rune(code)), true
	}
	return 0, false
}

func modifiersFor(codes []int) ([]input.Key, error) {
	keys := make([]input.Key, 0, len(codes))
	for _, c := range codes {
		k, ok := modifierKeys[c]
		if !ok {
			return nil, fmt.Errorf("unsupported modifier keycode %d", c)
		}
		keys = append(keys, k)
	}
	return keys, nil
}
