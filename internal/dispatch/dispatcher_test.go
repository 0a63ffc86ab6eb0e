package dispatch_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/axtree/internal/dispatch"
	"github.com/aretw0/axtree/internal/testutils"
	"github.com/aretw0/axtree/pkg/adapters/file"
	"github.com/aretw0/axtree/pkg/adapters/memory"
	"github.com/aretw0/axtree/pkg/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var rule = strings.Repeat("-", 80)

type harness struct {
	device *memory.Device
	out    *bytes.Buffer
	errOut *bytes.Buffer
	d      *dispatch.Dispatcher
}

func newHarness(t *testing.T, tree *domain.Document, opts ...memory.Option) *harness {
	t.Helper()
	h := &harness{
		device: memory.NewDevice(tree, opts...),
		out:    &bytes.Buffer{},
		errOut: &bytes.Buffer{},
	}
	h.d = dispatch.New(h.device,
		dispatch.WithOutput(h.out, h.errOut),
		dispatch.WithSaver(file.NewSaver(t.TempDir())),
	)
	return h
}

func TestDispatcher_Run_MutatingRequests(t *testing.T) {
	tests := []struct {
		name string
		opts dispatch.Options
		want memory.Call
	}{
		{
			name: "Action",
			opts: dispatch.Options{"path": "/0/0/1", "action": "click"},
			want: memory.Call{Method: memory.MethodDoAccessible, Action: "click"},
		},
		{
			name: "Set Text",
			opts: dispatch.Options{"path": "/0/0/0", "set-text": "bye"},
			want: memory.Call{Method: memory.MethodSetText, Text: "bye"},
		},
		{
			name: "Set Value",
			opts: dispatch.Options{"path": "/0/0/1", "set-value": "2"},
			want: memory.Call{Method: memory.MethodSetValue, Value: 2},
		},
		{
			name: "Mouse Click",
			opts: dispatch.Options{"path": "/0/0", "mouse-click": []string{"10", "20"}, "button": "LEFT"},
			want: memory.Call{Method: memory.MethodMouseEvent, X: 10, Y: 20, Button: "LEFT", Kind: domain.MouseClick},
		},
		{
			name: "Mouse Relative Motion",
			opts: dispatch.Options{"path": "/0/0", "mouse-relative-motion": "-1,1"},
			want: memory.Call{Method: memory.MethodMouseEvent, X: -1, Y: 1, Kind: domain.MouseRelativeMotion},
		},
		{
			name: "Key",
			opts: dispatch.Options{"path": "/0/0/0", "key": "0X41", "modifiers": []string{"SHIFT"}},
			want: memory.Call{Method: memory.MethodKeyboardEvent, Key: 65, Modifiers: []int{50}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, testutils.SampleTree())

			code := h.d.Run(context.Background(), tt.opts)

			assert.Equal(t, domain.ExitSuccess, code)
			assert.Equal(t, rule+"\nSUCCESS\n", h.out.String())
			assert.Empty(t, h.errOut.String())

			calls := h.device.Calls()
			require.Len(t, calls, 1, "exactly one device call")
			got := calls[0]
			assert.Equal(t, tt.opts["path"], got.Path.String())
			if diff := cmp.Diff(tt.want, got, cmpopts.IgnoreFields(memory.Call{}, "Path")); diff != "" {
				t.Errorf("call mismatch (-want +got):\n%s", diff)
			}
			assert.False(t, h.device.IsConnected(), "connection must be released")
		})
	}
}

func TestDispatcher_Run_FailedSetValue(t *testing.T) {
	h := newHarness(t, testutils.SampleTree(), memory.WithStatus(false))

	code := h.d.Run(context.Background(), dispatch.Options{"path": "/0/0/1", "set-value": "3.5"})

	assert.Equal(t, domain.ExitFailure, code)
	assert.Equal(t, rule+"\nFAILURE\n", h.out.String())
	calls := h.device.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, 3.5, calls[0].Value)
}

func TestDispatcher_Run_UsageErrorsTouchNothing(t *testing.T) {
	tests := []dispatch.Options{
		{"path": "/0", "frobnicate": "yes"},
		{"path": "/0", "set-value": "abc"},
		{"path": "0", "action": "click"},
		{"path": "/0", "set-text-file": filepath.Join(os.TempDir(), "axtree-missing", "nope.txt")},
	}

	for _, opts := range tests {
		t.Run(opts.String(), func(t *testing.T) {
			dev := new(MockDevice)
			var out, errOut bytes.Buffer
			d := dispatch.New(dev, dispatch.WithOutput(&out, &errOut))

			code := d.Run(context.Background(), opts)

			assert.Equal(t, domain.ExitUsage, code)
			assert.Empty(t, out.String())
			assert.NotEmpty(t, errOut.String())
			dev.AssertNotCalled(t, "Connect", mock.Anything)
			dev.AssertExpectations(t)
		})
	}
}

func TestDispatcher_Run_DumpTable(t *testing.T) {
	h := newHarness(t, deepTree())

	code := h.d.Run(context.Background(), dispatch.Options{"path": "/0/1", "dump": "2"})
	require.Equal(t, domain.ExitSuccess, code, h.errOut.String())

	want := strings.Join([]string{
		strings.Repeat("-", 38),
		"  PATH  |  NAME  |    ROLE   |CHILDREN",
		strings.Repeat("-", 38),
		"/0/1    |Settings|frame      |2       ",
		"/0/1/0  |General |panel      |1       ",
		"/0/1/0/0|Autosave|check box  |1       ",
		"/0/1/1  |Close   |push button|0       ",
		rule,
		"SUCCESS",
		"",
	}, "\n")
	if diff := cmp.Diff(want, h.out.String()); diff != "" {
		t.Errorf("dump output mismatch (-want +got):\n%s", diff)
	}

	calls := h.device.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, memory.MethodGetAccessible, calls[0].Method)
	assert.Equal(t, 2, calls[0].Depth)
	assert.False(t, calls[0].Query.All)
}

func TestDispatcher_Run_DumpToFile(t *testing.T) {
	dir := t.TempDir()
	h := newHarness(t, deepTree())
	name := filepath.Join(dir, "settings.xml")

	code := h.d.Run(context.Background(), dispatch.Options{"path": "/0/1", "dump-all": true, "output": name})

	require.Equal(t, domain.ExitSuccess, code, h.errOut.String())
	assert.Equal(t, rule+"\nDump saved to file: "+name+"\n", h.out.String())

	calls := h.device.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, -1, calls[0].Depth)
	assert.True(t, calls[0].Query.All)

	doc, err := file.NewSaver("").Load(context.Background(), name)
	require.NoError(t, err)
	assert.Equal(t, "/0/1", doc.Path)
	require.Len(t, doc.Children, 2)
	require.Len(t, doc.Children[0].Children, 1)
	assert.Equal(t, "hint", doc.Children[0].Children[0].Children[0].Name)
}

func TestDispatcher_Run_Query(t *testing.T) {
	h := newHarness(t, testutils.SampleTree())

	code := h.d.Run(context.Background(), dispatch.Options{"path": "/0/0/0", "text": true})

	require.Equal(t, domain.ExitSuccess, code)
	want := strings.Join([]string{
		rule,
		"PATH: /0/0/0",
		"NAME: ",
		"ROLE: text",
		"CHILDREN: 0",
		"",
		"TEXT (editable):",
		"hello",
		rule,
		"SUCCESS",
		"",
	}, "\n")
	assert.Equal(t, want, h.out.String())

	calls := h.device.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, 0, calls[0].Depth)
	assert.Equal(t, domain.QueryFor(domain.AttrText), calls[0].Query)
}

func TestDispatcher_Run_QueryMissingAttribute(t *testing.T) {
	h := newHarness(t, testutils.SampleTree())

	code := h.d.Run(context.Background(), dispatch.Options{"path": "/1", "text": true})
	assert.Equal(t, domain.ExitSuccess, code)
	assert.Contains(t, h.out.String(), "\nElement has no text\n")

	h = newHarness(t, testutils.SampleTree())
	code = h.d.Run(context.Background(), dispatch.Options{"path": "/1", "all": true})
	assert.Equal(t, domain.ExitSuccess, code)
	assert.NotContains(t, h.out.String(), "Element has no")
}

func TestDispatcher_Run_NoSuchPath(t *testing.T) {
	for _, opts := range []dispatch.Options{
		{"path": "/7/3", "dump": 1},
		{"path": "/7/3", "action": "click"},
	} {
		h := newHarness(t, testutils.SampleTree())

		code := h.d.Run(context.Background(), opts)

		assert.Equal(t, domain.ExitFailure, code)
		assert.Equal(t, "There is no such path: /7/3\n", h.out.String())
		assert.False(t, h.device.IsConnected())
	}
}

func TestDispatcher_Run_DeviceError(t *testing.T) {
	dev := new(MockDevice)
	dev.On("Name").Return("mock")
	dev.On("Connect", mock.Anything).Return(nil)
	dev.On("DoAccessible", mock.Anything, mock.Anything, "click").Return(false, errors.New("target crashed"))
	dev.On("IsConnected").Return(true)
	dev.On("Disconnect", mock.Anything).Return(nil).Once()

	var out, errOut bytes.Buffer
	d := dispatch.New(dev, dispatch.WithOutput(&out, &errOut))

	code := d.Run(context.Background(), dispatch.Options{"path": "/0", "action": "click"})

	assert.Equal(t, domain.ExitFailure, code)
	assert.Equal(t, rule+"\nFAILURE\n", out.String())
	assert.Contains(t, errOut.String(), "target crashed")
	dev.AssertExpectations(t)
}

func TestDispatcher_Execute_ConnectFailure(t *testing.T) {
	dev := new(MockDevice)
	dev.On("Name").Return("mock")
	dev.On("Connect", mock.Anything).Return(errors.New("refused"))

	d := dispatch.New(dev)
	req, err := dispatch.Classify(dispatch.Options{"path": "/0", "action": "click"})
	require.NoError(t, err)

	_, err = d.Execute(context.Background(), req)

	assert.ErrorContains(t, err, "refused")
	dev.AssertNotCalled(t, "DoAccessible", mock.Anything, mock.Anything, mock.Anything)
	dev.AssertNotCalled(t, "Disconnect", mock.Anything)
}

func TestDispatcher_Execute_SkipsDisconnectWhenDropped(t *testing.T) {
	dev := new(MockDevice)
	dev.On("Name").Return("mock")
	dev.On("Connect", mock.Anything).Return(nil)
	dev.On("KeyboardEvent", mock.Anything, mock.Anything, 65, []int(nil)).Return(true, nil)
	dev.On("IsConnected").Return(false)

	d := dispatch.New(dev)
	req, err := dispatch.Classify(dispatch.Options{"path": "/0", "key": "A"})
	require.NoError(t, err)

	res, err := d.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, res.Status)
	dev.AssertNotCalled(t, "Disconnect", mock.Anything)
	dev.AssertExpectations(t)
}

// deepTree returns a tree whose /0/1 subtree is three levels deep.
func deepTree() *domain.Document {
	return &domain.Document{
		Path: "/", Name: "main", Role: "desktop",
		Children: []*domain.Document{{
			Path: "/0", Name: "app", Role: "application",
			Children: []*domain.Document{
				{Path: "/0/0", Name: "Main", Role: "frame"},
				{
					Path: "/0/1", Name: "Settings", Role: "frame",
					Children: []*domain.Document{
						{
							Path: "/0/1/0", Name: "General", Role: "panel",
							Children: []*domain.Document{{
								Path: "/0/1/0/0", Name: "Autosave", Role: "check box",
								Children: []*domain.Document{
									{Path: "/0/1/0/0/0", Name: "hint", Role: "label"},
								},
							}},
						},
						{Path: "/0/1/1", Name: "Close", Role: "push button"},
					},
				},
			},
		}},
	}
}
