package tui

import (
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Styler colours status lines for a terminal profile.
// The Ascii profile leaves text untouched.
type Styler struct {
	profile termenv.Profile
}

// NewStyler creates a Styler for the given profile.
func NewStyler(p termenv.Profile) Styler {
	return Styler{profile: p}
}

// Plain returns a Styler that never adds escape sequences.
func Plain() Styler {
	return Styler{profile: termenv.Ascii}
}

// Profile returns the color profile in use.
func (s Styler) Profile() termenv.Profile {
	return s.profile
}

// Success renders a positive status.
func (s Styler) Success(msg string) string {
	return s.profile.String(msg).Foreground(s.profile.Color("#22c55e")).Bold().String()
}

// Failure renders a negative status.
func (s Styler) Failure(msg string) string {
	return s.profile.String(msg).Foreground(s.profile.Color("#ef4444")).Bold().String()
}

// DetectProfile picks the color profile for f: Ascii unless f is a
// terminal and color is allowed.
func DetectProfile(f *os.File, noColor bool) termenv.Profile {
	if noColor || !term.IsTerminal(int(f.Fd())) {
		return termenv.Ascii
	}
	return termenv.ColorProfile()
}
