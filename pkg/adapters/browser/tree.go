package browser

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/aretw0/axtree/pkg/domain"
	"github.com/go-rod/rod/lib/proto"
)

// Properties with their own place in a node rather than the attribute map.
const (
	propEditable = "editable"
)

// DOM-backed elements support these actions.
var domActions = []string{"click", "focus", "scroll"}

// boxFunc returns the border box of a DOM node, or false when it has none.
type boxFunc func(id proto.DOMBackendNodeID) (domain.Point, domain.Size, bool)

// axTree indexes the accessibility tree of one page. Ignored nodes are
// skipped and their children hoisted to the nearest visible ancestor.
type axTree struct {
	root   *proto.AccessibilityAXNode
	byID   map[proto.AccessibilityAXNodeID]*proto.AccessibilityAXNode
	paths  map[proto.DOMBackendNodeID]domain.Path
	origin domain.Path
}

func newAXTree(nodes []*proto.AccessibilityAXNode, origin domain.Path) (*axTree, error) {
	if len(nodes) == 0 {
		return nil, fmt.Errorf("empty accessibility tree at %s", origin)
	}
	t := &axTree{
		byID:   make(map[proto.AccessibilityAXNodeID]*proto.AccessibilityAXNode, len(nodes)),
		paths:  make(map[proto.DOMBackendNodeID]domain.Path),
		origin: origin,
	}
	for _, n := range nodes {
		t.byID[n.NodeID] = n
	}
	for _, n := range nodes {
		if n.ParentID == "" || t.byID[n.ParentID] == nil {
			t.root = n
			break
		}
	}
	if t.root == nil {
		t.root = nodes[0]
	}
	t.indexPaths(t.root, origin)
	return t, nil
}

func (t *axTree) indexPaths(n *proto.AccessibilityAXNode, p domain.Path) {
	if n.BackendDOMNodeID != 0 {
		t.paths[n.BackendDOMNodeID] = p
	}
	for i, c := range t.children(n) {
		t.indexPaths(c, p.ChildIndex(i))
	}
}

// children returns the visible children of n in document order.
func (t *axTree) children(n *proto.AccessibilityAXNode) []*proto.AccessibilityAXNode {
	var out []*proto.AccessibilityAXNode
	for _, id := range n.ChildIDs {
		c, ok := t.byID[id]
		if !ok {
			continue
		}
		if c.Ignored {
			out = append(out, t.children(c)...)
			continue
		}
		out = append(out, c)
	}
	return out
}

// find walks child indices from the page root.
func (t *axTree) find(indices []int) (*proto.AccessibilityAXNode, bool) {
	n := t.root
	for _, i := range indices {
		children := t.children(n)
		if i >= len(children) {
			return nil, false
		}
		n = children[i]
	}
	return n, true
}

// toNode converts n and its descendants down to depth into domain nodes.
func (t *axTree) toNode(n *proto.AccessibilityAXNode, path domain.Path, depth int, q domain.Query, box boxFunc) *domain.Node {
	children := t.children(n)
	node := &domain.Node{
		Path:  path,
		Name:  axString(n.Name),
		Role:  axString(n.Role),
		Count: len(children),
	}
	t.fill(node, n, q, box)

	if depth != 0 {
		kids := make([]*domain.Node, len(children))
		for i, c := range children {
			kids[i] = t.toNode(c, path.ChildIndex(i), depth-1, q, box)
		}
		node.SetChildren(kids)
	}
	node.SetLoader(func() ([]*domain.Node, error) {
		kids := make([]*domain.Node, len(children))
		for i, c := range children {
			kids[i] = t.toNode(c, path.ChildIndex(i), 0, q, box)
		}
		return kids, nil
	})
	return node
}

// fill sets the extended attributes selected by q.
func (t *axTree) fill(node *domain.Node, n *proto.AccessibilityAXNode, q domain.Query, box boxFunc) {
	if q.Includes(domain.AttrDescription) && n.Description != nil {
		d := axString(n.Description)
		node.Description = &d
	}

	if (q.Includes(domain.AttrPosition) || q.Includes(domain.AttrSize)) && n.BackendDOMNodeID != 0 && box != nil {
		if pos, size, ok := box(n.BackendDOMNodeID); ok {
			if q.Includes(domain.AttrPosition) {
				node.Position = &pos
			}
			if q.Includes(domain.AttrSize) {
				node.Size = &size
			}
		}
	}

	if q.Includes(domain.AttrActions) && n.BackendDOMNodeID != 0 {
		node.Actions = append([]string(nil), domActions...)
	}

	if n.Value != nil {
		switch n.Value.Type {
		case proto.AccessibilityAXValueTypeNumber, proto.AccessibilityAXValueTypeInteger:
			if q.Includes(domain.AttrValue) {
				v := n.Value.Value.Num()
				node.Value = &v
			}
		default:
			if q.Includes(domain.AttrText) {
				text := axString(n.Value)
				node.Text = &text
			}
		}
	}

	for _, p := range n.Properties {
		if p.Value == nil {
			continue
		}
		name := string(p.Name)
		switch {
		case name == propEditable:
			node.Editable = axString(p.Value) != ""
			if q.Includes(domain.AttrAttributes) {
				setAttribute(node, name, axString(p.Value))
			}
		case len(p.Value.RelatedNodes) > 0:
			if q.Includes(domain.AttrRelations) {
				t.addRelation(node, name, p.Value.RelatedNodes)
			}
		case p.Value.Type == proto.AccessibilityAXValueTypeBoolean ||
			p.Value.Type == proto.AccessibilityAXValueTypeBooleanOrUndefined:
			if q.Includes(domain.AttrStates) && p.Value.Value.Bool() {
				node.States = append(node.States, strings.ToUpper(name))
			}
		default:
			if q.Includes(domain.AttrAttributes) {
				setAttribute(node, name, axString(p.Value))
			}
		}
	}
	if !node.Editable || !q.Includes(domain.AttrText) {
		return
	}
	if node.Text == nil {
		empty := ""
		node.Text = &empty
	}
}

func (t *axTree) addRelation(node *domain.Node, name string, related []*proto.AccessibilityAXRelatedNode) {
	rel := domain.Relation{Type: strings.ToUpper(name)}
	for _, r := range related {
		if p, ok := t.paths[r.BackendDOMNodeID]; ok {
			rel.Targets = append(rel.Targets, p)
		}
	}
	if len(rel.Targets) > 0 {
		node.Relations = append(node.Relations, rel)
	}
}

func setAttribute(node *domain.Node, key, value string) {
	if node.Attributes == nil {
		node.Attributes = make(map[string]string)
	}
	node.Attributes[key] = value
}

// axString renders an AX value as text.
func axString(v *proto.AccessibilityAXValue) string {
	if v == nil || v.Value.Nil() {
		return ""
	}
	switch raw := v.Value.Val().(type) {
	case string:
		return raw
	case float64:
		if raw == math.Trunc(raw) {
			return fmt.Sprintf("%d", int64(raw))
		}
		return fmt.Sprintf("%g", raw)
	case []interface{}:
		parts := make([]string, len(raw))
		for i, item := range raw {
			parts[i] = fmt.Sprint(item)
		}
		sort.Strings(parts)
		return strings.Join(parts, " ")
	default:
		return fmt.Sprint(raw)
	}
}

// quadBox converts a border quad into a top-left point and a size.
func quadBox(quad proto.DOMQuad, width, height int) (domain.Point, domain.Size, bool) {
	if len(quad) < 2 {
		return domain.Point{}, domain.Size{}, false
	}
	return domain.Point{X: int(math.Round(quad[0])), Y: int(math.Round(quad[1]))},
		domain.Size{Width: width, Height: height}, true
}
