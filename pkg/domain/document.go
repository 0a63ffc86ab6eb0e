package domain

import (
	"encoding/xml"
	"fmt"
	"sort"
)

// Document is the serializable form of an accessible subtree, as written by
// dumps and read back by the fixture device.
type Document struct {
	XMLName xml.Name `json:"-" yaml:"-" xml:"accessible"`

	Path  string `json:"path" yaml:"path" xml:"path,attr"`
	Name  string `json:"name,omitempty" yaml:"name,omitempty" xml:"name,attr,omitempty"`
	Role  string `json:"role,omitempty" yaml:"role,omitempty" xml:"role,attr,omitempty"`
	Count int    `json:"count" yaml:"count" xml:"count,attr"`

	Description *string       `json:"description,omitempty" yaml:"description,omitempty" xml:"description,omitempty"`
	Position    *Point        `json:"position,omitempty" yaml:"position,omitempty" xml:"position,omitempty"`
	Size        *Size         `json:"size,omitempty" yaml:"size,omitempty" xml:"size,omitempty"`
	Attributes  []DocProperty `json:"attributes,omitempty" yaml:"attributes,omitempty" xml:"attributes>attribute,omitempty"`
	Actions     []string      `json:"actions,omitempty" yaml:"actions,omitempty" xml:"actions>action,omitempty"`
	Text        *DocText      `json:"text,omitempty" yaml:"text,omitempty" xml:"text,omitempty"`
	Value       *float64      `json:"value,omitempty" yaml:"value,omitempty" xml:"value,omitempty"`
	States      []string      `json:"states,omitempty" yaml:"states,omitempty" xml:"states>state,omitempty"`
	Relations   []DocRelation `json:"relations,omitempty" yaml:"relations,omitempty" xml:"relations>relation,omitempty"`
	Children    []*Document   `json:"children,omitempty" yaml:"children,omitempty" xml:"children>accessible,omitempty"`
}

// DocProperty is one entry of the attribute mapping.
type DocProperty struct {
	Name  string `json:"name" yaml:"name" xml:"name,attr"`
	Value string `json:"value" yaml:"value" xml:",chardata"`
}

// DocText holds the text of an element and whether it can be edited.
type DocText struct {
	Editable bool   `json:"editable,omitempty" yaml:"editable,omitempty" xml:"editable,attr,omitempty"`
	Value    string `json:"value" yaml:"value" xml:",chardata"`
}

// DocRelation is the serializable form of a Relation.
type DocRelation struct {
	Type    string   `json:"type" yaml:"type" xml:"type,attr"`
	Targets []string `json:"targets" yaml:"targets" xml:"target"`
}

// Marshal converts the node and its already fetched children into a
// Document.
func (n *Node) Marshal() *Document {
	doc := &Document{
		Path:        n.Path.String(),
		Name:        n.Name,
		Role:        n.Role,
		Count:       n.Count,
		Description: n.Description,
		Position:    n.Position,
		Size:        n.Size,
		Actions:     n.Actions,
		Value:       n.Value,
		States:      n.States,
	}
	if len(n.Attributes) > 0 {
		keys := make([]string, 0, len(n.Attributes))
		for k := range n.Attributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			doc.Attributes = append(doc.Attributes, DocProperty{Name: k, Value: n.Attributes[k]})
		}
	}
	if n.Text != nil {
		doc.Text = &DocText{Editable: n.Editable, Value: *n.Text}
	}
	for _, rel := range n.Relations {
		dr := DocRelation{Type: rel.Type}
		for _, target := range rel.Targets {
			dr.Targets = append(dr.Targets, target.String())
		}
		doc.Relations = append(doc.Relations, dr)
	}
	for _, child := range n.children {
		doc.Children = append(doc.Children, child.Marshal())
	}
	return doc
}

// Unmarshal rebuilds a node tree from a Document.
func (d *Document) Unmarshal() (*Node, error) {
	path, err := ParsePath(d.Path)
	if err != nil {
		return nil, fmt.Errorf("document node %q: %w", d.Path, err)
	}
	n := &Node{
		Path:        path,
		Name:        d.Name,
		Role:        d.Role,
		Count:       d.Count,
		Description: d.Description,
		Position:    d.Position,
		Size:        d.Size,
		Actions:     d.Actions,
		Value:       d.Value,
		States:      d.States,
	}
	if len(d.Attributes) > 0 {
		n.Attributes = make(map[string]string, len(d.Attributes))
		for _, p := range d.Attributes {
			n.Attributes[p.Name] = p.Value
		}
	}
	if d.Text != nil {
		text := d.Text.Value
		n.Text = &text
		n.Editable = d.Text.Editable
	}
	for _, dr := range d.Relations {
		rel := Relation{Type: dr.Type}
		for _, target := range dr.Targets {
			p, err := ParsePath(target)
			if err != nil {
				return nil, fmt.Errorf("relation %q of %s: %w", dr.Type, d.Path, err)
			}
			rel.Targets = append(rel.Targets, p)
		}
		n.Relations = append(n.Relations, rel)
	}
	for _, cd := range d.Children {
		child, err := cd.Unmarshal()
		if err != nil {
			return nil, err
		}
		n.children = append(n.children, child)
	}
	return n, nil
}
