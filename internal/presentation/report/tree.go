package report

import (
	"strconv"
	"strings"

	"github.com/aretw0/axtree/pkg/domain"
	"github.com/mattn/go-runewidth"
)

// ColumnSeparator joins the cells of a tree row.
const ColumnSeparator = "|"

// Column headers of the tree table, in order.
var treeHeaders = [4]string{"path", "name", "role", "children"}

// ColumnWidths holds the display widths of the path, name, role and
// children columns.
type ColumnWidths [4]int

// Sum returns the total width of the cells, separators excluded.
func (w ColumnWidths) Sum() int {
	total := 0
	for _, n := range w {
		total += n
	}
	return total
}

func cells(n *domain.Node) [4]string {
	return [4]string{n.Path.String(), n.Name, n.Role, strconv.Itoa(n.Count)}
}

// MeasureTree walks the fetched tree depth first and returns the column
// widths needed to align it. Widths start at the header lengths and only
// grow.
func MeasureTree(root *domain.Node) (ColumnWidths, error) {
	var widths ColumnWidths
	for i, h := range treeHeaders {
		widths[i] = len(h)
	}
	err := walk(root, func(n *domain.Node) {
		for i, c := range cells(n) {
			widths[i] = max(widths[i], runewidth.StringWidth(c))
		}
	})
	return widths, err
}

// RenderTree renders the fetched tree as an aligned table: a rule, the
// centred header, a rule, then one row per node in depth-first order.
// Children are never re-fetched.
func RenderTree(root *domain.Node) (string, error) {
	widths, err := MeasureTree(root)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	rule := Separator(widths.Sum() + len(widths) - 1)

	header := make([]string, len(treeHeaders))
	for i, h := range treeHeaders {
		header[i] = center(strings.ToUpper(h), widths[i])
	}
	sb.WriteString(rule)
	sb.WriteString(strings.Join(header, ColumnSeparator) + "\n")
	sb.WriteString(rule)

	err = walk(root, func(n *domain.Node) {
		row := cells(n)
		for i, c := range row {
			row[i] = runewidth.FillRight(c, widths[i])
		}
		sb.WriteString(strings.Join(row[:], ColumnSeparator) + "\n")
	})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}

func walk(n *domain.Node, visit func(*domain.Node)) error {
	visit(n)
	children, err := n.Children(false)
	if err != nil {
		return err
	}
	for _, child := range children {
		if err := walk(child, visit); err != nil {
			return err
		}
	}
	return nil
}

// center pads s with spaces to width. An odd margin puts the extra space
// on the left when width is odd, matching the classic str.center rule.
func center(s string, width int) string {
	margin := width - runewidth.StringWidth(s)
	if margin <= 0 {
		return s
	}
	left := margin/2 + (margin & width & 1)
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", margin-left)
}
