package domain

import "fmt"

// Point is a screen position in pixels.
type Point struct {
	X int `json:"x" yaml:"x" xml:"x,attr" mapstructure:"x"`
	Y int `json:"y" yaml:"y" xml:"y,attr" mapstructure:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Size is an extent in pixels.
type Size struct {
	Width  int `json:"width" yaml:"width" xml:"width,attr" mapstructure:"width"`
	Height int `json:"height" yaml:"height" xml:"height,attr" mapstructure:"height"`
}

func (s Size) String() string {
	return fmt.Sprintf("(%d, %d)", s.Width, s.Height)
}

// Relation links a node to other nodes of the tree.
type Relation struct {
	Type    string
	Targets []Path
}

// ChildLoader fetches the current children of a node from its device.
type ChildLoader func() ([]*Node, error)

// Node is a read-only snapshot of one accessible, valid for the duration of
// a single request.
//
// Optional attributes left nil (or empty) were either not requested or not
// exposed by the element.
type Node struct {
	Path  Path
	Name  string
	Role  string
	Count int

	Description *string
	Position    *Point
	Size        *Size
	Attributes  map[string]string
	Actions     []string
	Text        *string
	Editable    bool
	Value       *float64
	States      []string
	Relations   []Relation

	children []*Node
	loader   ChildLoader
}

// SetChildren sets the cached children of the node.
func (n *Node) SetChildren(children []*Node) {
	n.children = children
}

// SetLoader installs the function used to refresh children on demand.
func (n *Node) SetLoader(loader ChildLoader) {
	n.loader = loader
}

// Children returns the child nodes in device order. Without force only the
// children fetched with the node are returned; with force they are reloaded
// from the device when a loader is available.
func (n *Node) Children(force bool) ([]*Node, error) {
	if force && n.loader != nil {
		children, err := n.loader()
		if err != nil {
			return n.children, fmt.Errorf("failed to reload children of %s: %w", n.Path, err)
		}
		n.children = children
	}
	return n.children, nil
}

func (n *Node) String() string {
	return fmt.Sprintf("%s [%s] %q", n.Path, n.Role, n.Name)
}
