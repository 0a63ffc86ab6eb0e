package report

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/aretw0/axtree/pkg/domain"
)

// attributeRenderer writes one extended attribute of a node and reports
// whether there was anything to write.
type attributeRenderer interface {
	render(sb *strings.Builder, n *domain.Node) bool
}

type inlineRenderer struct {
	label string
	value func(n *domain.Node) (string, bool)
}

func (r inlineRenderer) render(sb *strings.Builder, n *domain.Node) bool {
	v, ok := r.value(n)
	if !ok {
		return false
	}
	fmt.Fprintf(sb, "%s: %s\n", r.label, v)
	return true
}

type listRenderer struct {
	label string
	items func(n *domain.Node) []string
}

func (r listRenderer) render(sb *strings.Builder, n *domain.Node) bool {
	items := r.items(n)
	if len(items) == 0 {
		return false
	}
	fmt.Fprintf(sb, "%s:\n\t%s\n", r.label, strings.Join(items, "\n\t"))
	return true
}

type mappingRenderer struct {
	label   string
	mapping func(n *domain.Node) map[string]string
}

func (r mappingRenderer) render(sb *strings.Builder, n *domain.Node) bool {
	m := r.mapping(n)
	if len(m) == 0 {
		return false
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintf(sb, "%s:\n", r.label)
	for _, k := range keys {
		fmt.Fprintf(sb, "\t%s: %s\n", k, m[k])
	}
	return true
}

type textRenderer struct{}

func (textRenderer) render(sb *strings.Builder, n *domain.Node) bool {
	if n.Text == nil {
		return false
	}
	label := "TEXT"
	if n.Editable {
		label += " (editable)"
	}
	fmt.Fprintf(sb, "%s:\n%s\n", label, *n.Text)
	return true
}

type relationsRenderer struct{}

func (relationsRenderer) render(sb *strings.Builder, n *domain.Node) bool {
	if len(n.Relations) == 0 {
		return false
	}
	sb.WriteString("RELATIONS:\n")
	for _, rel := range n.Relations {
		targets := make([]string, len(rel.Targets))
		for i, t := range rel.Targets {
			targets[i] = t.String()
		}
		fmt.Fprintf(sb, "\t%s: %s\n", rel.Type, strings.Join(targets, ", "))
	}
	return true
}

var basicRenderers = []attributeRenderer{
	inlineRenderer{"PATH", func(n *domain.Node) (string, bool) { return n.Path.String(), true }},
	inlineRenderer{"NAME", func(n *domain.Node) (string, bool) { return n.Name, true }},
	inlineRenderer{"ROLE", func(n *domain.Node) (string, bool) { return n.Role, true }},
	inlineRenderer{"CHILDREN", func(n *domain.Node) (string, bool) { return strconv.Itoa(n.Count), true }},
}

// extraRenderers binds each extended attribute to its strategy, in
// report order.
var extraRenderers = []struct {
	attr     domain.Attribute
	renderer attributeRenderer
}{
	{domain.AttrDescription, inlineRenderer{"DESCRIPTION", func(n *domain.Node) (string, bool) {
		if n.Description == nil {
			return "", false
		}
		return *n.Description, true
	}}},
	{domain.AttrPosition, inlineRenderer{"POSITION", func(n *domain.Node) (string, bool) {
		if n.Position == nil {
			return "", false
		}
		return n.Position.String(), true
	}}},
	{domain.AttrSize, inlineRenderer{"SIZE", func(n *domain.Node) (string, bool) {
		if n.Size == nil {
			return "", false
		}
		return n.Size.String(), true
	}}},
	{domain.AttrAttributes, mappingRenderer{"ATTRIBUTES", func(n *domain.Node) map[string]string { return n.Attributes }}},
	{domain.AttrActions, listRenderer{"ACTIONS", func(n *domain.Node) []string { return n.Actions }}},
	{domain.AttrText, textRenderer{}},
	{domain.AttrValue, inlineRenderer{"VALUE", func(n *domain.Node) (string, bool) {
		if n.Value == nil {
			return "", false
		}
		return FormatValue(*n.Value), true
	}}},
	{domain.AttrStates, listRenderer{"STATES", func(n *domain.Node) []string { return n.States }}},
	{domain.AttrRelations, relationsRenderer{}},
}

// RenderDetails renders the basic attributes of a node followed by the
// requested extended attribute, or all of them for domain.AttrAll. A single
// attribute the node lacks yields an "Element has no <name>" line.
func RenderDetails(n *domain.Node, attr domain.Attribute) string {
	var sb strings.Builder
	sb.WriteString(Separator(DefaultSeparatorWidth))
	for _, r := range basicRenderers {
		r.render(&sb, n)
	}
	sb.WriteString("\n")

	for _, extra := range extraRenderers {
		if attr != domain.AttrAll && extra.attr != attr {
			continue
		}
		if !extra.renderer.render(&sb, n) && extra.attr == attr {
			fmt.Fprintf(&sb, "Element has no %s\n", extra.attr)
		}
	}
	return sb.String()
}

// FormatValue prints a numeric value the way the device reports floats:
// integral values keep a ".0" suffix.
func FormatValue(v float64) string {
	format := byte('f')
	if abs := math.Abs(v); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		format = 'g'
	}
	s := strconv.FormatFloat(v, format, -1, 64)
	if strings.ContainsAny(s, ".eIN") {
		return s
	}
	return s + ".0"
}
