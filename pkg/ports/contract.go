package ports

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/axtree/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunDeviceContract runs a suite of tests to verify that a Device
// implementation adheres to the defined interface contract.
// The device must expose at least one child under the root.
func RunDeviceContract(t *testing.T, device Device) {
	ctx := context.Background()

	require.NoError(t, device.Connect(ctx), "Connect should not return error")
	defer func() {
		if device.IsConnected() {
			_ = device.Disconnect(ctx)
		}
	}()

	t.Run("Connected", func(t *testing.T) {
		assert.True(t, device.IsConnected())
		assert.NotEmpty(t, device.Name())
	})

	t.Run("Root Without Children", func(t *testing.T) {
		root, err := device.GetAccessible(ctx, domain.Path{}, 0, domain.Query{})
		require.NoError(t, err)
		require.NotNil(t, root)
		assert.True(t, root.Path.IsRoot())
		assert.Positive(t, root.Count, "contract requires a non-empty tree")

		children, err := root.Children(false)
		require.NoError(t, err)
		assert.Empty(t, children, "depth 0 must not fetch children")
	})

	t.Run("Children Paths", func(t *testing.T) {
		root, err := device.GetAccessible(ctx, domain.Path{}, 1, domain.Query{})
		require.NoError(t, err)

		children, err := root.Children(false)
		require.NoError(t, err)
		require.NotEmpty(t, children)
		assert.LessOrEqual(t, len(children), root.Count)
		for i, child := range children {
			assert.True(t, child.Path.Equal(root.Path.ChildIndex(i)), "child %d has path %s", i, child.Path)
			grand, err := child.Children(false)
			require.NoError(t, err)
			assert.Empty(t, grand, "depth 1 must stop at the children")
		}
	})

	t.Run("Basic Attributes Only", func(t *testing.T) {
		node, err := device.GetAccessible(ctx, domain.NewPath("0"), 0, domain.Query{})
		require.NoError(t, err)
		assert.Nil(t, node.Description)
		assert.Nil(t, node.Text)
		assert.Nil(t, node.Value)
		assert.Empty(t, node.States)
		assert.Empty(t, node.Relations)
	})

	t.Run("Missing Path", func(t *testing.T) {
		_, err := device.GetAccessible(ctx, domain.NewPath("9999", "9999"), 0, domain.Query{})
		assert.True(t, errors.Is(err, domain.ErrNodeNotFound), "got %v", err)
	})

	t.Run("Disconnect", func(t *testing.T) {
		require.NoError(t, device.Disconnect(ctx))
		assert.False(t, device.IsConnected())
	})
}
