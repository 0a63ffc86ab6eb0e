package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/axtree/pkg/domain"
	"github.com/stretchr/testify/require"
)

// SampleTree returns a small accessible tree rooted at "/":
//
//	/            desktop
//	/0           application "gedit"
//	/0/0         frame "Untitled"
//	/0/0/0       text (editable)
//	/0/0/1       push button "Save"
//	/0/1         frame "Preferences"
//	/1           application "calculator"
//
// Every call returns a fresh copy so tests can mutate it.
func SampleTree() *domain.Document {
	description := "Main document window"
	value := 3.0
	return &domain.Document{
		Path: "/", Name: "main", Role: "desktop",
		Children: []*domain.Document{
			{
				Path: "/0", Name: "gedit", Role: "application",
				Attributes: []domain.DocProperty{{Name: "toolkit", Value: "GTK"}},
				Children: []*domain.Document{
					{
						Path: "/0/0", Name: "Untitled", Role: "frame",
						Description: &description,
						Position:    &domain.Point{X: 10, Y: 20},
						Size:        &domain.Size{Width: 640, Height: 480},
						States:      []string{"ACTIVE", "VISIBLE"},
						Children: []*domain.Document{
							{
								Path: "/0/0/0", Role: "text",
								Text:    &domain.DocText{Editable: true, Value: "hello"},
								Actions: []string{"activate"},
								Relations: []domain.DocRelation{
									{Type: "LABELLED_BY", Targets: []string{"/0/0/1"}},
								},
							},
							{
								Path: "/0/0/1", Name: "Save", Role: "push button",
								Actions: []string{"click", "press"},
								Value:   &value,
							},
						},
					},
					{Path: "/0/1", Name: "Preferences", Role: "frame"},
				},
			},
			{Path: "/1", Name: "calculator", Role: "application"},
		},
	}
}

// WriteFile writes content to name inside a temporary directory and
// returns the absolute path. It fails the test immediately on error.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "Failed to write test file")

	absPath, err := filepath.Abs(path)
	require.NoError(t, err, "Failed to get absolute path for test file")
	return absPath
}
