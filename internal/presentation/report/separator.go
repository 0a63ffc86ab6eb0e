package report

import "strings"

// DefaultSeparatorWidth is the width of the rule printed before reports
// and statuses.
const DefaultSeparatorWidth = 80

// Separator returns a rule of n dashes followed by a newline.
func Separator(n int) string {
	return strings.Repeat("-", n) + "\n"
}
