package dispatch_test

import (
	"context"

	"github.com/aretw0/axtree/pkg/domain"
	"github.com/stretchr/testify/mock"
)

// MockDevice is a testify mock of ports.Device.
type MockDevice struct {
	mock.Mock
}

func (m *MockDevice) Name() string {
	return m.Called().String(0)
}

func (m *MockDevice) Connect(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockDevice) Disconnect(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockDevice) IsConnected() bool {
	return m.Called().Bool(0)
}

func (m *MockDevice) DoAccessible(ctx context.Context, path domain.Path, action string) (bool, error) {
	args := m.Called(ctx, path, action)
	return args.Bool(0), args.Error(1)
}

func (m *MockDevice) SetText(ctx context.Context, path domain.Path, text string) (bool, error) {
	args := m.Called(ctx, path, text)
	return args.Bool(0), args.Error(1)
}

func (m *MockDevice) SetValue(ctx context.Context, path domain.Path, value float64) (bool, error) {
	args := m.Called(ctx, path, value)
	return args.Bool(0), args.Error(1)
}

func (m *MockDevice) MouseEvent(ctx context.Context, path domain.Path, x, y int, button string, kind domain.MouseEventKind) (bool, error) {
	args := m.Called(ctx, path, x, y, button, kind)
	return args.Bool(0), args.Error(1)
}

func (m *MockDevice) KeyboardEvent(ctx context.Context, path domain.Path, key int, modifiers []int) (bool, error) {
	args := m.Called(ctx, path, key, modifiers)
	return args.Bool(0), args.Error(1)
}

func (m *MockDevice) GetAccessible(ctx context.Context, path domain.Path, depth int, q domain.Query) (*domain.Node, error) {
	args := m.Called(ctx, path, depth, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Node), args.Error(1)
}
