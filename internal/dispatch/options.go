package dispatch

import (
	"fmt"
	"sort"
	"strings"
)

// Options is the request bag built from command-line flags or tool
// arguments. Exactly one primary key selects the operation.
type Options map[string]any

// Option keys.
const (
	OptPath = "path"

	OptAction              = "action"
	OptSetText             = "set-text"
	OptSetTextFile         = "set-text-file"
	OptSetValue            = "set-value"
	OptMouseClick          = "mouse-click"
	OptMouseDoubleClick    = "mouse-double-click"
	OptMousePress          = "mouse-press"
	OptMouseRelease        = "mouse-release"
	OptMouseAbsoluteMotion = "mouse-absolute-motion"
	OptMouseRelativeMotion = "mouse-relative-motion"
	OptKey                 = "key"
	OptDump                = "dump"
	OptDumpAll             = "dump-all"

	OptButton    = "button"
	OptModifiers = "modifiers"
	OptOutput    = "output"
)

// Has reports whether key is present.
func (o Options) Has(key string) bool {
	_, ok := o[key]
	return ok
}

// String renders the bag with sorted keys.
func (o Options) String() string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, o[k])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// MouseOptions lists the mouse event keys in precedence order.
var MouseOptions = []string{
	OptMouseClick,
	OptMouseDoubleClick,
	OptMousePress,
	OptMouseRelease,
	OptMouseAbsoluteMotion,
	OptMouseRelativeMotion,
}

// DefaultButton sets the button companion when a mouse event is requested
// without one. Motion events ignore it.
func (o Options) DefaultButton(button string) {
	if o.Has(OptButton) {
		return
	}
	for _, key := range MouseOptions {
		if o.Has(key) {
			o[OptButton] = button
			return
		}
	}
}
