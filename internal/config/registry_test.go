package config_test

import (
	"path/filepath"
	"testing"

	"github.com/aretw0/axtree/internal/config"
	"github.com/aretw0/axtree/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const registryYAML = `
default: qa
devices:
  - name: qa
    driver: browser
    description: Staging browser
    options:
      control_url: qa-host:9222
      timeout: 10s
  - name: replay
    driver: fixture
    options:
      path: dumps/gedit.xml
  - name: plain
`

func TestLoad_YAML(t *testing.T) {
	path := testutils.WriteFile(t, "devices.yaml", registryYAML)

	reg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "qa", reg.Default)
	devices := reg.Devices()
	require.Len(t, devices, 3)
	assert.Equal(t, []string{"qa", "replay", "plain"}, []string{devices[0].Name, devices[1].Name, devices[2].Name})

	qa, ok := reg.Lookup("qa")
	require.True(t, ok)
	assert.Equal(t, config.DriverBrowser, qa.Driver)
	assert.Equal(t, "qa-host:9222", qa.Options["control_url"])

	plain, ok := reg.Lookup("plain")
	require.True(t, ok)
	assert.Equal(t, config.DriverBrowser, plain.Driver, "driver defaults to browser")

	_, ok = reg.Lookup("missing")
	assert.False(t, ok)
}

func TestLoad_JSON(t *testing.T) {
	path := testutils.WriteFile(t, "devices.json", `{"devices":[{"name":"replay","driver":"fixture","options":{"path":"a.json"}}]}`)

	reg, err := config.Load(path)
	require.NoError(t, err)
	d, ok := reg.Lookup("replay")
	require.True(t, ok)
	assert.Equal(t, config.DriverFixture, d.Driver)
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	reg, err := config.Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Empty(t, reg.Devices())
	assert.Empty(t, reg.Default)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"Broken YAML", "devices: [name: x"},
		{"Unnamed", "devices:\n  - driver: browser\n"},
		{"Duplicate", "devices:\n  - name: a\n  - name: a\n"},
		{"Unknown Driver", "devices:\n  - name: a\n    driver: atspi\n"},
		{"Unknown Default", "default: b\ndevices:\n  - name: a\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutils.WriteFile(t, "devices.yaml", tt.content)
			_, err := config.Load(path)
			assert.Error(t, err)
		})
	}
}

func TestDefaultPath_Env(t *testing.T) {
	t.Setenv(config.EnvConfig, "/etc/axtree.yaml")
	assert.Equal(t, "/etc/axtree.yaml", config.DefaultPath())
}
