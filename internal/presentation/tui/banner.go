package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the axtree banner using the given color profile.
func PrintBanner(w io.Writer, p termenv.Profile) {
	lines := []struct {
		text  string
		color string
	}{
		{"   __ ___  __ _                ", "#818cf8"},
		{"  / _` \\ \\/ /| |_ _ __ ___  ___ ", "#a78bfa"},
		{" | (_| |>  < | __| '__/ _ \\/ _ \\", "#c084fc"},
		{"  \\__,_/_/\\_\\ \\__|_|  \\___|\\___|", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
