package report_test

import (
	"strings"
	"testing"

	"github.com/aretw0/axtree/internal/presentation/report"
	"github.com/aretw0/axtree/pkg/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func node(path, name, role string, children ...*domain.Node) *domain.Node {
	p, err := domain.ParsePath(path)
	if err != nil {
		panic(err)
	}
	n := &domain.Node{Path: p, Name: name, Role: role, Count: len(children)}
	n.SetChildren(children)
	return n
}

func TestMeasureTree(t *testing.T) {
	tests := []struct {
		name string
		root *domain.Node
		want report.ColumnWidths
	}{
		{
			name: "Header Lengths Are The Floor",
			root: node("/0", "a", "b"),
			want: report.ColumnWidths{4, 4, 4, 8},
		},
		{
			name: "Longest Value Wins",
			root: node("/0", "gedit", "application",
				node("/0/0", "Untitled Document 1", "frame"),
				node("/0/1", "", "push button"),
			),
			want: report.ColumnWidths{4, 19, 11, 8},
		},
		{
			name: "Wide Runes Count Twice",
			root: node("/0", "日本語", "frame"),
			want: report.ColumnWidths{4, 6, 5, 8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := report.MeasureTree(tt.root)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderTree_Golden(t *testing.T) {
	root := node("/0", "gedit", "application",
		node("/0/0", "Untitled", "frame",
			node("/0/0/0", "", "text"),
		),
		node("/0/1", "Preferences", "dialog"),
	)

	got, err := report.RenderTree(root)
	require.NoError(t, err)

	want := strings.Join([]string{
		strings.Repeat("-", 6+11+11+8+3),
		" PATH |    NAME   |    ROLE   |CHILDREN",
		strings.Repeat("-", 6+11+11+8+3),
		"/0    |gedit      |application|2       ",
		"/0/0  |Untitled   |frame      |1       ",
		"/0/0/0|           |text       |0       ",
		"/0/1  |Preferences|dialog     |0       ",
		"",
	}, "\n")

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RenderTree() mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderTree_Idempotent(t *testing.T) {
	root := node("/", "main", "desktop",
		node("/0", "gedit", "application"),
		node("/1", "calculator", "application"),
	)

	first, err := report.RenderTree(root)
	require.NoError(t, err)
	second, err := report.RenderTree(root)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRenderTree_RowsAligned(t *testing.T) {
	root := node("/0", "日本語のウィンドウ", "frame",
		node("/0/0", "OK", "push button"),
	)

	got, err := report.RenderTree(root)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	require.Len(t, lines, 5)
	rule := len(lines[0])
	for _, l := range lines[3:] {
		assert.Len(t, strings.Split(l, report.ColumnSeparator), 4)
	}
	// The wide-rune row is shorter in bytes than in columns, the ASCII row
	// matches the rule exactly.
	assert.Equal(t, rule, len(lines[4]))
}

func TestRenderTree_DoesNotFetch(t *testing.T) {
	root := node("/0", "gedit", "application")
	root.Count = 3
	fetched := false
	root.SetLoader(func() ([]*domain.Node, error) {
		fetched = true
		return nil, nil
	})

	_, err := report.RenderTree(root)
	require.NoError(t, err)
	assert.False(t, fetched)
}
