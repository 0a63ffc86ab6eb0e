package domain_test

import (
	"encoding/xml"
	"testing"

	"github.com/aretw0/axtree/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func sampleTree() *domain.Node {
	root := &domain.Node{
		Path:        domain.NewPath("0"),
		Name:        "Editor",
		Role:        "frame",
		Count:       1,
		Description: ptr("main window"),
		Position:    &domain.Point{X: 10, Y: 20},
		Size:        &domain.Size{Width: 800, Height: 600},
		Attributes:  map[string]string{"toolkit": "gtk", "id": "main"},
		Actions:     []string{"activate"},
		States:      []string{"ACTIVE", "VISIBLE"},
	}
	field := &domain.Node{
		Path:     domain.NewPath("0", "0"),
		Name:     "Search",
		Role:     "text",
		Text:     ptr(""),
		Editable: true,
		Value:    ptr(3.5),
		Relations: []domain.Relation{
			{Type: "LABELLED_BY", Targets: []domain.Path{domain.NewPath("0", "1")}},
		},
	}
	root.SetChildren([]*domain.Node{field})
	return root
}

func TestNode_MarshalRoundTrip(t *testing.T) {
	doc := sampleTree().Marshal()

	assert.Equal(t, "/0", doc.Path)
	require.Len(t, doc.Attributes, 2)
	assert.Equal(t, "id", doc.Attributes[0].Name, "attributes are sorted by name")
	require.Len(t, doc.Children, 1)
	assert.Equal(t, []string{"/0/1"}, doc.Children[0].Relations[0].Targets)

	back, err := doc.Unmarshal()
	require.NoError(t, err)
	assert.Equal(t, "Editor", back.Name)
	assert.Equal(t, "gtk", back.Attributes["toolkit"])

	children, err := back.Children(false)
	require.NoError(t, err)
	require.Len(t, children, 1)
	require.NotNil(t, children[0].Text)
	assert.Equal(t, "", *children[0].Text, "empty text survives the round trip")
	assert.True(t, children[0].Editable)
	assert.True(t, children[0].Relations[0].Targets[0].Equal(domain.NewPath("0", "1")))
}

func TestDocument_XML(t *testing.T) {
	data, err := xml.Marshal(sampleTree().Marshal())
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `<accessible path="/0" name="Editor" role="frame" count="1">`)
	assert.Contains(t, s, `<position x="10" y="20"></position>`)
	assert.Contains(t, s, `<children><accessible path="/0/0"`)

	var doc domain.Document
	require.NoError(t, xml.Unmarshal(data, &doc))
	assert.Equal(t, "Search", doc.Children[0].Name)
	assert.Equal(t, 3.5, *doc.Children[0].Value)
}

func TestNode_ChildrenForceReload(t *testing.T) {
	n := &domain.Node{Path: domain.NewPath("0")}
	n.SetChildren([]*domain.Node{{Name: "cached"}})

	calls := 0
	n.SetLoader(func() ([]*domain.Node, error) {
		calls++
		return []*domain.Node{{Name: "fresh"}}, nil
	})

	kids, err := n.Children(false)
	require.NoError(t, err)
	assert.Equal(t, "cached", kids[0].Name)
	assert.Zero(t, calls)

	kids, err = n.Children(true)
	require.NoError(t, err)
	assert.Equal(t, "fresh", kids[0].Name)
	assert.Equal(t, 1, calls)
}
