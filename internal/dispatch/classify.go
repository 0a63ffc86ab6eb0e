package dispatch

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/aretw0/axtree/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

var mouseKinds = []struct {
	option string
	kind   domain.MouseEventKind
}{
	{OptMouseClick, domain.MouseClick},
	{OptMouseDoubleClick, domain.MouseDoubleClick},
	{OptMousePress, domain.MousePress},
	{OptMouseRelease, domain.MouseRelease},
	{OptMouseAbsoluteMotion, domain.MouseAbsoluteMotion},
	{OptMouseRelativeMotion, domain.MouseRelativeMotion},
}

// Classify picks the operation described by opts. Primary options are
// tested in a fixed order and the first present one wins; when none is
// present the first attribute name found ("all" first) selects a query.
// Errors wrap domain.ErrUsage or domain.ErrInput and no device is touched.
func Classify(opts Options) (Request, error) {
	raw, ok := opts[OptPath]
	if !ok {
		return nil, fmt.Errorf("%w: missing path", domain.ErrUsage)
	}
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("%w: path must be a string, got %T", domain.ErrUsage, raw)
	}
	path, err := domain.ParsePath(s)
	if err != nil {
		return nil, err
	}
	t := target{Path: path}

	switch {
	case opts.Has(OptAction):
		action, err := decodeString(opts, OptAction)
		if err != nil {
			return nil, err
		}
		return DoAction{target: t, Action: action}, nil

	case opts.Has(OptSetText):
		text, err := decodeString(opts, OptSetText)
		if err != nil {
			return nil, err
		}
		return SetText{target: t, Text: text}, nil

	case opts.Has(OptSetTextFile):
		name, err := decodeString(opts, OptSetTextFile)
		if err != nil {
			return nil, err
		}
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, &domain.InputError{Option: OptSetTextFile, Err: fmt.Errorf("there is no such file: %s: %w", name, err)}
		}
		return SetText{target: t, Text: string(data)}, nil

	case opts.Has(OptSetValue):
		var value float64
		if err := decodeNumber(opts[OptSetValue], &value); err != nil {
			return nil, &domain.InputError{Option: OptSetValue, Err: err}
		}
		return SetValue{target: t, Value: value}, nil
	}

	for _, m := range mouseKinds {
		if opts.Has(m.option) {
			return classifyMouse(opts, t, m.option, m.kind)
		}
	}

	switch {
	case opts.Has(OptKey):
		name, err := decodeString(opts, OptKey)
		if err != nil {
			return nil, err
		}
		code, err := ResolveKey(name)
		if err != nil {
			return nil, err
		}
		var modifiers []int
		if opts.Has(OptModifiers) {
			names, err := decodeList(opts[OptModifiers])
			if err != nil {
				return nil, &domain.InputError{Option: OptModifiers, Err: err}
			}
			if modifiers, err = ResolveModifiers(names); err != nil {
				return nil, err
			}
		}
		return Key{target: t, Code: code, Modifiers: modifiers}, nil

	case opts.Has(OptDump), opts.Has(OptDumpAll):
		depth := -1
		if opts.Has(OptDump) {
			var err error
			if depth, err = decodeDepth(opts[OptDump]); err != nil {
				return nil, &domain.InputError{Option: OptDump, Err: err}
			}
		}
		var output string
		if opts.Has(OptOutput) {
			var err error
			if output, err = decodeString(opts, OptOutput); err != nil {
				return nil, err
			}
			if output == "" {
				return nil, fmt.Errorf("%w: empty output file name", domain.ErrUsage)
			}
		}
		return Dump{target: t, Depth: depth, Output: output}, nil
	}

	if opts.Has(string(domain.AttrAll)) {
		return Query{target: t, Attribute: domain.AttrAll}, nil
	}
	for _, attr := range domain.ExtendedAttributes {
		if opts.Has(string(attr)) {
			return Query{target: t, Attribute: attr}, nil
		}
	}
	return nil, fmt.Errorf("%w: invalid request options: %s", domain.ErrUsage, opts)
}

func classifyMouse(opts Options, t target, option string, kind domain.MouseEventKind) (Request, error) {
	x, y, err := decodeCoordinates(opts[option])
	if err != nil {
		return nil, &domain.InputError{Option: option, Err: err}
	}
	if kind.IsMotion() {
		return Mouse{target: t, X: x, Y: y, Kind: kind}, nil
	}

	if !opts.Has(OptButton) {
		return nil, fmt.Errorf("%w: %s requires a button", domain.ErrUsage, option)
	}
	button, err := decodeString(opts, OptButton)
	if err != nil {
		return nil, err
	}
	button = strings.ToUpper(strings.TrimSpace(button))
	switch button {
	case domain.ButtonLeft, domain.ButtonMiddle, domain.ButtonRight:
	default:
		return nil, fmt.Errorf("%w: unknown button %q", domain.ErrUsage, button)
	}
	return Mouse{target: t, X: x, Y: y, Button: button, Kind: kind}, nil
}

// decode converts loosely typed option values (strings, numbers, slices of
// either) into out. Strings are passed through as given.
func decode(in, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(in)
}

// decodeNumber is decode for numeric options; surrounding blanks of a
// string are ignored.
func decodeNumber(in, out any) error {
	if s, ok := in.(string); ok {
		in = strings.TrimSpace(s)
	}
	return decode(in, out)
}

// decodeDepth accepts an integer, an integral float or a decimal string.
func decodeDepth(in any) (int, error) {
	switch v := in.(type) {
	case bool:
		return 0, fmt.Errorf("depth must be an integer, got %v", v)
	case float32:
		if float64(v) != math.Trunc(float64(v)) {
			return 0, fmt.Errorf("depth must be an integer, got %v", v)
		}
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("depth must be an integer, got %v", v)
		}
	}
	var depth int
	if err := decodeNumber(in, &depth); err != nil {
		return 0, err
	}
	return depth, nil
}

func decodeString(opts Options, key string) (string, error) {
	var s string
	if err := decode(opts[key], &s); err != nil {
		return "", fmt.Errorf("%w: option %q: %v", domain.ErrUsage, key, err)
	}
	return s, nil
}

// decodeList accepts a slice or a comma-separated string.
func decodeList(in any) ([]string, error) {
	if s, ok := in.(string); ok {
		in = strings.Split(s, ",")
	}
	var out []string
	if err := decode(in, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// decodeCoordinates accepts "x,y", or a two-element slice of strings,
// ints or anything mapstructure can weakly convert.
func decodeCoordinates(in any) (int, int, error) {
	if s, ok := in.(string); ok {
		parts := strings.Split(s, ",")
		items := make([]any, len(parts))
		for i, p := range parts {
			items[i] = strings.TrimSpace(p)
		}
		in = items
	}
	var xy []int
	if err := decodeNumber(in, &xy); err != nil {
		return 0, 0, err
	}
	if len(xy) != 2 {
		return 0, 0, errors.New("expected two coordinates x,y")
	}
	return xy[0], xy[1], nil
}
