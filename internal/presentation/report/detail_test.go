package report_test

import (
	"strings"
	"testing"

	"github.com/aretw0/axtree/internal/presentation/report"
	"github.com/aretw0/axtree/pkg/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func richNode() *domain.Node {
	n := node("/0/0/1", "Save", "push button")
	n.Count = 0
	n.Description = ptr("Saves the document")
	n.Position = &domain.Point{X: 10, Y: 20}
	n.Size = &domain.Size{Width: 80, Height: 24}
	n.Attributes = map[string]string{"toolkit": "GTK", "id": "save"}
	n.Actions = []string{"click", "press"}
	n.Text = ptr("Save")
	n.Value = ptr(3.0)
	n.States = []string{"ENABLED", "VISIBLE"}
	n.Relations = []domain.Relation{
		{Type: "LABEL_FOR", Targets: []domain.Path{domain.NewPath("0", "0", "0"), domain.NewPath("1")}},
	}
	return n
}

func TestRenderDetails_All(t *testing.T) {
	got := report.RenderDetails(richNode(), domain.AttrAll)

	want := strings.Join([]string{
		strings.Repeat("-", 80),
		"PATH: /0/0/1",
		"NAME: Save",
		"ROLE: push button",
		"CHILDREN: 0",
		"",
		"DESCRIPTION: Saves the document",
		"POSITION: (10, 20)",
		"SIZE: (80, 24)",
		"ATTRIBUTES:",
		"\tid: save",
		"\ttoolkit: GTK",
		"ACTIONS:",
		"\tclick",
		"\tpress",
		"TEXT:",
		"Save",
		"VALUE: 3.0",
		"STATES:",
		"\tENABLED",
		"\tVISIBLE",
		"RELATIONS:",
		"\tLABEL_FOR: /0/0/0, /1",
		"",
	}, "\n")

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RenderDetails() mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderDetails_MissingAttribute(t *testing.T) {
	bare := node("/0", "gedit", "application")

	tests := []struct {
		name   string
		attr   domain.Attribute
		notice bool
	}{
		{name: "Text Requested", attr: domain.AttrText, notice: true},
		{name: "States Requested", attr: domain.AttrStates, notice: true},
		{name: "All Suppresses Notice", attr: domain.AttrAll, notice: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := report.RenderDetails(bare, tt.attr)
			assert.Equal(t, tt.notice, strings.Contains(got, "Element has no"))
			if tt.notice {
				assert.True(t, strings.HasSuffix(got, "\nElement has no "+string(tt.attr)+"\n"))
			}
		})
	}
}

func TestRenderDetails_StatesWithoutText(t *testing.T) {
	n := node("/0/0", "Untitled", "frame")
	n.States = []string{"ACTIVE", "VISIBLE"}

	header := strings.Join([]string{
		strings.Repeat("-", 80),
		"PATH: /0/0",
		"NAME: Untitled",
		"ROLE: frame",
		"CHILDREN: 0",
		"",
		"",
	}, "\n")

	tests := []struct {
		name string
		attr domain.Attribute
		want string
	}{
		{name: "All", attr: domain.AttrAll, want: header + "STATES:\n\tACTIVE\n\tVISIBLE\n"},
		{name: "States", attr: domain.AttrStates, want: header + "STATES:\n\tACTIVE\n\tVISIBLE\n"},
		{name: "Text", attr: domain.AttrText, want: header + "Element has no text\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := report.RenderDetails(n, tt.attr)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("RenderDetails() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderDetails_SingleAttribute(t *testing.T) {
	got := report.RenderDetails(richNode(), domain.AttrActions)

	assert.Contains(t, got, "ACTIONS:\n\tclick\n\tpress\n")
	assert.NotContains(t, got, "TEXT")
	assert.NotContains(t, got, "DESCRIPTION")
	assert.True(t, strings.HasPrefix(got, strings.Repeat("-", 80)+"\nPATH: /0/0/1\n"))
}

func TestRenderDetails_Text(t *testing.T) {
	tests := []struct {
		name     string
		text     *string
		editable bool
		want     string
	}{
		{name: "Read Only", text: ptr("hello"), want: "TEXT:\nhello\n"},
		{name: "Editable", text: ptr("hello"), editable: true, want: "TEXT (editable):\nhello\n"},
		{name: "Empty Text Renders", text: ptr(""), editable: true, want: "TEXT (editable):\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := node("/0", "", "text")
			n.Text = tt.text
			n.Editable = tt.editable

			got := report.RenderDetails(n, domain.AttrText)
			assert.True(t, strings.HasSuffix(got, "\n\n"+tt.want), "got %q", got)
			assert.NotContains(t, got, "Element has no")
		})
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{3.5, "3.5"},
		{3, "3.0"},
		{0, "0.0"},
		{-2, "-2.0"},
		{1234567, "1234567.0"},
		{0.25, "0.25"},
		{1e20, "1e+20"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, report.FormatValue(tt.in))
		})
	}
}
