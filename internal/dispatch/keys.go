package dispatch

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/axtree/pkg/domain"
)

// ResolveKey turns a key name into a key code. Names are upper-cased, then
// looked up in domain.KeySyms; a single character maps to its code point;
// a "0X" prefix reads hexadecimal; anything else reads decimal.
func ResolveKey(name string) (int, error) {
	key := strings.ToUpper(name)
	if code, ok := domain.KeySyms[key]; ok {
		return code, nil
	}
	if utf8.RuneCountInString(key) == 1 {
		r, _ := utf8.DecodeRuneInString(key)
		return int(r), nil
	}
	if hex, ok := strings.CutPrefix(key, "0X"); ok {
		code, err := strconv.ParseInt(hex, 16, 32)
		if err != nil {
			return 0, &domain.InputError{Option: OptKey, Err: err}
		}
		return int(code), nil
	}
	code, err := strconv.Atoi(key)
	if err != nil {
		return 0, &domain.InputError{Option: OptKey, Err: err}
	}
	return code, nil
}

// ResolveModifiers maps modifier names to key codes through
// domain.ModifierCodes.
func ResolveModifiers(names []string) ([]int, error) {
	codes := make([]int, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		code, ok := domain.ModifierCodes[strings.ToUpper(name)]
		if !ok {
			return nil, &domain.InputError{Option: OptModifiers, Err: fmt.Errorf("unknown modifier %q", name)}
		}
		codes = append(codes, code)
	}
	return codes, nil
}
