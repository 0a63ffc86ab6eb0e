package domain

// MouseEventKind selects what a mouse event does at its coordinates.
type MouseEventKind string

// Mouse event kinds.
const (
	MouseClick          MouseEventKind = "CLICK"
	MouseDoubleClick    MouseEventKind = "DOUBLE_CLICK"
	MousePress          MouseEventKind = "PRESS"
	MouseRelease        MouseEventKind = "RELEASE"
	MouseAbsoluteMotion MouseEventKind = "ABSOLUTE_MOTION"
	MouseRelativeMotion MouseEventKind = "RELATIVE_MOTION"
)

// IsMotion reports whether the event moves the pointer without a button.
func (k MouseEventKind) IsMotion() bool {
	return k == MouseAbsoluteMotion || k == MouseRelativeMotion
}

// Mouse buttons.
const (
	ButtonLeft   = "LEFT"
	ButtonMiddle = "MIDDLE"
	ButtonRight  = "RIGHT"
)

// KeySyms maps upper-case key names to X11 keysym codes.
var KeySyms = map[string]int{
	"BACKSPACE": 0xff08,
	"TAB":       0xff09,
	"RETURN":    0xff0d,
	"ENTER":     0xff0d,
	"PAUSE":     0xff13,
	"ESCAPE":    0xff1b,
	"ESC":       0xff1b,
	"HOME":      0xff50,
	"LEFT":      0xff51,
	"UP":        0xff52,
	"RIGHT":     0xff53,
	"DOWN":      0xff54,
	"PAGE_UP":   0xff55,
	"PAGE_DOWN": 0xff56,
	"END":       0xff57,
	"INSERT":    0xff63,
	"MENU":      0xff67,
	"NUM_LOCK":  0xff7f,
	"F1":        0xffbe,
	"F2":        0xffbf,
	"F3":        0xffc0,
	"F4":        0xffc1,
	"F5":        0xffc2,
	"F6":        0xffc3,
	"F7":        0xffc4,
	"F8":        0xffc5,
	"F9":        0xffc6,
	"F10":       0xffc7,
	"F11":       0xffc8,
	"F12":       0xffc9,
	"DELETE":    0xffff,
	"SPACE":     0x0020,
}

// ModifierCodes maps upper-case modifier names to X11 keycodes.
var ModifierCodes = map[string]int{
	"SHIFT":   50,
	"CONTROL": 37,
	"CTRL":    37,
	"ALT":     64,
	"META":    133,
	"SUPER":   133,
}
