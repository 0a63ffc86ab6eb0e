package dispatch

import "github.com/aretw0/axtree/pkg/domain"

// Request is one classified operation. The set of variants is closed.
type Request interface {
	Target() domain.Path
	isRequest()
}

// target carries the path shared by every variant.
type target struct {
	Path domain.Path
}

func (t target) Target() domain.Path { return t.Path }
func (target) isRequest()            {}

// DoAction performs a named action on an element.
type DoAction struct {
	target
	Action string
}

// SetText replaces the text of an element.
type SetText struct {
	target
	Text string
}

// SetValue sets the numeric value of an element.
type SetValue struct {
	target
	Value float64
}

// Mouse generates a mouse event relative to an element.
type Mouse struct {
	target
	X, Y   int
	Button string
	Kind   domain.MouseEventKind
}

// Key generates a key stroke with optional modifiers.
type Key struct {
	target
	Code      int
	Modifiers []int
}

// Dump fetches a subtree. A non-empty Output saves it with every
// attribute instead of printing the table.
type Dump struct {
	target
	Depth  int
	Output string
}

// Query fetches one element with one or all extended attributes.
type Query struct {
	target
	Attribute domain.Attribute
}
