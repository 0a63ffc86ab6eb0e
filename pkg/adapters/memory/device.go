package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/aretw0/axtree/pkg/domain"
)

// Method names recorded in Call.Method.
const (
	MethodDoAccessible  = "DoAccessible"
	MethodSetText       = "SetText"
	MethodSetValue      = "SetValue"
	MethodMouseEvent    = "MouseEvent"
	MethodKeyboardEvent = "KeyboardEvent"
	MethodGetAccessible = "GetAccessible"
)

// Call records one request received by the device.
type Call struct {
	Method    string
	Path      domain.Path
	Action    string
	Text      string
	Value     float64
	X, Y      int
	Button    string
	Kind      domain.MouseEventKind
	Key       int
	Modifiers []int
	Depth     int
	Query     domain.Query
}

// Device implements ports.Device over an in-memory document tree.
// It replays saved dumps and doubles as a recording stub in tests.
// Safe for concurrent use.
type Device struct {
	name  string
	index map[string]*domain.Document

	mu         sync.Mutex
	connected  bool
	calls      []Call
	status     bool
	statuses   map[string]bool
	connectErr error
}

// Option configures a Device.
type Option func(*Device)

// WithName sets the device name.
func WithName(name string) Option {
	return func(d *Device) {
		d.name = name
	}
}

// WithStatus sets the status reported by every mutating call.
func WithStatus(ok bool) Option {
	return func(d *Device) {
		d.status = ok
	}
}

// WithMethodStatus overrides the status reported by one method.
func WithMethodStatus(method string, ok bool) Option {
	return func(d *Device) {
		d.statuses[method] = ok
	}
}

// WithConnectError makes Connect fail with err.
func WithConnectError(err error) Option {
	return func(d *Device) {
		d.connectErr = err
	}
}

// NewDevice creates a device serving the given tree. A tree whose top node
// is not the root "/" is hung under a synthetic root.
func NewDevice(tree *domain.Document, opts ...Option) *Device {
	if tree == nil {
		tree = &domain.Document{Path: domain.PathSeparator}
	}
	if tree.Path != domain.PathSeparator {
		tree = &domain.Document{
			Path:     domain.PathSeparator,
			Role:     "desktop",
			Count:    1,
			Children: []*domain.Document{tree},
		}
	}

	d := &Device{
		name:     "memory",
		index:    make(map[string]*domain.Document),
		status:   true,
		statuses: make(map[string]bool),
	}
	d.indexTree(tree)

	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Device) indexTree(doc *domain.Document) {
	d.index[doc.Path] = doc
	for _, child := range doc.Children {
		d.indexTree(child)
	}
}

// Name returns the device name.
func (d *Device) Name() string {
	return d.name
}

// Connect opens the session.
func (d *Device) Connect(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.connectErr != nil {
		return d.connectErr
	}
	d.connected = true
	return nil
}

// Disconnect closes the session.
func (d *Device) Disconnect(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.connected = false
	return nil
}

// IsConnected reports whether the session is open.
func (d *Device) IsConnected() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.connected
}

// Calls returns a copy of the recorded requests.
func (d *Device) Calls() []Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Call(nil), d.calls...)
}

// record appends the call and returns the target document.
// Must be called with the lock held.
func (d *Device) record(c Call) (*domain.Document, error) {
	if !d.connected {
		return nil, domain.ErrNotConnected
	}
	d.calls = append(d.calls, c)
	doc, ok := d.index[c.Path.String()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNodeNotFound, c.Path)
	}
	return doc, nil
}

func (d *Device) statusOf(method string) bool {
	if ok, found := d.statuses[method]; found {
		return ok
	}
	return d.status
}

// DoAccessible records the action and reports the configured status.
func (d *Device) DoAccessible(ctx context.Context, path domain.Path, action string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, err := d.record(Call{Method: MethodDoAccessible, Path: path, Action: action}); err != nil {
		return false, err
	}
	return d.statusOf(MethodDoAccessible), nil
}

// SetText replaces the text of the element when the status is positive.
func (d *Device) SetText(ctx context.Context, path domain.Path, text string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	doc, err := d.record(Call{Method: MethodSetText, Path: path, Text: text})
	if err != nil {
		return false, err
	}
	ok := d.statusOf(MethodSetText)
	if ok {
		if doc.Text == nil {
			doc.Text = &domain.DocText{}
		}
		doc.Text.Value = text
	}
	return ok, nil
}

// SetValue sets the value of the element when the status is positive.
func (d *Device) SetValue(ctx context.Context, path domain.Path, value float64) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	doc, err := d.record(Call{Method: MethodSetValue, Path: path, Value: value})
	if err != nil {
		return false, err
	}
	ok := d.statusOf(MethodSetValue)
	if ok {
		v := value
		doc.Value = &v
	}
	return ok, nil
}

// MouseEvent records the event and reports the configured status.
func (d *Device) MouseEvent(ctx context.Context, path domain.Path, x, y int, button string, kind domain.MouseEventKind) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, err := d.record(Call{Method: MethodMouseEvent, Path: path, X: x, Y: y, Button: button, Kind: kind}); err != nil {
		return false, err
	}
	return d.statusOf(MethodMouseEvent), nil
}

// KeyboardEvent records the key stroke and reports the configured status.
func (d *Device) KeyboardEvent(ctx context.Context, path domain.Path, key int, modifiers []int) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	mods := append([]int(nil), modifiers...)
	if _, err := d.record(Call{Method: MethodKeyboardEvent, Path: path, Key: key, Modifiers: mods}); err != nil {
		return false, err
	}
	return d.statusOf(MethodKeyboardEvent), nil
}

// GetAccessible returns a snapshot of the subtree at path.
func (d *Device) GetAccessible(ctx context.Context, path domain.Path, depth int, q domain.Query) (*domain.Node, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	doc, err := d.record(Call{Method: MethodGetAccessible, Path: path, Depth: depth, Query: q})
	if err != nil {
		return nil, err
	}
	return d.snapshot(doc, depth, q)
}

// snapshot copies the document into a node, keeping only the requested
// attributes and depth. Must be called with the lock held.
func (d *Device) snapshot(doc *domain.Document, depth int, q domain.Query) (*domain.Node, error) {
	path, err := domain.ParsePath(doc.Path)
	if err != nil {
		return nil, err
	}
	n := &domain.Node{
		Path:  path,
		Name:  doc.Name,
		Role:  doc.Role,
		Count: max(doc.Count, len(doc.Children)),
	}
	if q.Includes(domain.AttrDescription) {
		n.Description = cloneOf(doc.Description)
	}
	if q.Includes(domain.AttrPosition) {
		n.Position = cloneOf(doc.Position)
	}
	if q.Includes(domain.AttrSize) {
		n.Size = cloneOf(doc.Size)
	}
	if q.Includes(domain.AttrAttributes) && len(doc.Attributes) > 0 {
		n.Attributes = make(map[string]string, len(doc.Attributes))
		for _, p := range doc.Attributes {
			n.Attributes[p.Name] = p.Value
		}
	}
	if q.Includes(domain.AttrActions) {
		n.Actions = append([]string(nil), doc.Actions...)
	}
	if q.Includes(domain.AttrText) && doc.Text != nil {
		text := doc.Text.Value
		n.Text = &text
		n.Editable = doc.Text.Editable
	}
	if q.Includes(domain.AttrValue) {
		n.Value = cloneOf(doc.Value)
	}
	if q.Includes(domain.AttrStates) {
		n.States = append([]string(nil), doc.States...)
	}
	if q.Includes(domain.AttrRelations) {
		for _, dr := range doc.Relations {
			rel := domain.Relation{Type: dr.Type}
			for _, target := range dr.Targets {
				tp, err := domain.ParsePath(target)
				if err != nil {
					return nil, err
				}
				rel.Targets = append(rel.Targets, tp)
			}
			n.Relations = append(n.Relations, rel)
		}
	}

	if depth != 0 {
		children := make([]*domain.Node, 0, len(doc.Children))
		for _, cd := range doc.Children {
			child, err := d.snapshot(cd, depth-1, q)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		n.SetChildren(children)
	}
	n.SetLoader(func() ([]*domain.Node, error) {
		d.mu.Lock()
		defer d.mu.Unlock()
		children := make([]*domain.Node, 0, len(doc.Children))
		for _, cd := range doc.Children {
			child, err := d.snapshot(cd, 0, q)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		return children, nil
	})
	return n, nil
}

func cloneOf[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
