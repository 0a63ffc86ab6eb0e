package browser_test

import (
	"testing"
	"time"

	"github.com/aretw0/axtree/pkg/adapters/browser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeConfig(t *testing.T) {
	cfg, err := browser.DecodeConfig(map[string]any{
		"control_url": "localhost:9333",
		"headless":    "false",
		"timeout":     "5s",
		"url":         "https://example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, browser.Config{
		ControlURL: "localhost:9333",
		Headless:   false,
		URL:        "https://example.com",
		Timeout:    5 * time.Second,
	}, cfg)
}

func TestDecodeConfig_Defaults(t *testing.T) {
	cfg, err := browser.DecodeConfig(nil)
	require.NoError(t, err)
	assert.True(t, cfg.Headless)
	assert.False(t, cfg.Launch)
}

func TestDecodeConfig_Errors(t *testing.T) {
	_, err := browser.DecodeConfig(map[string]any{"lauch": true})
	assert.Error(t, err, "unknown keys are rejected")

	_, err = browser.DecodeConfig(map[string]any{"timeout": "soon"})
	assert.Error(t, err)
}

func TestNew_Name(t *testing.T) {
	assert.Equal(t, "localhost:9222", browser.New(browser.Config{ControlURL: "localhost:9222"}).Name())
	assert.Equal(t, "chrome", browser.New(browser.Config{Launch: true}).Name())
	assert.Equal(t, "qa", browser.New(browser.Config{}, browser.WithName("qa")).Name())
	assert.False(t, browser.New(browser.Config{}).IsConnected())
}
