package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/axtree/internal/config"
	"github.com/aretw0/axtree/pkg/adapters/browser"
	"github.com/mattn/go-runewidth"
)

// PrintDevices writes the registry as an aligned table. The default
// device is marked with "*".
func PrintDevices(w io.Writer, devices []config.DeviceConfig, defaultName string) {
	if len(devices) == 0 {
		fmt.Fprintf(w, "No devices configured; using %s:%d.\n", DefaultDevice, browser.DefaultPort)
		return
	}
	header := []string{"NAME", "DRIVER", "DESCRIPTION"}
	rows := [][]string{header}
	for _, d := range devices {
		name := d.Name
		if d.Name == defaultName {
			name += " *"
		}
		rows = append(rows, []string{name, d.Driver, d.Description})
	}

	widths := make([]int, len(header))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	for _, row := range rows {
		line := runewidth.FillRight(row[0], widths[0]) + "  " +
			runewidth.FillRight(row[1], widths[1]) + "  " + row[2]
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}
