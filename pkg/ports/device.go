package ports

import (
	"context"

	"github.com/aretw0/axtree/pkg/domain"
)

// Device is a session with an instrumented application.
//
// Mutating calls return the status reported by the application: false means
// the request reached the element but could not be carried out. A non-nil
// error means the request could not be delivered.
type Device interface {
	// Name identifies the device in logs and listings.
	Name() string

	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
	IsConnected() bool

	// DoAccessible invokes a named action of the element.
	DoAccessible(ctx context.Context, path domain.Path, action string) (bool, error)

	// SetText replaces the text of the element.
	SetText(ctx context.Context, path domain.Path, text string) (bool, error)

	// SetValue sets the numeric value of the element.
	SetValue(ctx context.Context, path domain.Path, value float64) (bool, error)

	// MouseEvent generates a mouse event at the given coordinates.
	// button is empty for motion events.
	MouseEvent(ctx context.Context, path domain.Path, x, y int, button string, kind domain.MouseEventKind) (bool, error)

	// KeyboardEvent generates a key stroke with the given modifiers held.
	KeyboardEvent(ctx context.Context, path domain.Path, key int, modifiers []int) (bool, error)

	// GetAccessible fetches the node at path with its descendants down to
	// depth levels (negative for the whole subtree), populating the extended
	// attributes selected by q.
	// Returns domain.ErrNodeNotFound if the path names no node.
	GetAccessible(ctx context.Context, path domain.Path, depth int, q domain.Query) (*domain.Node, error)
}
