package cli_test

import (
	"bytes"
	"testing"

	"github.com/aretw0/axtree/internal/cli"
	"github.com/aretw0/axtree/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestPrintDevices(t *testing.T) {
	var buf bytes.Buffer
	cli.PrintDevices(&buf, []config.DeviceConfig{
		{Name: "qa", Driver: "browser", Description: "Staging browser"},
		{Name: "replay", Driver: "fixture"},
	}, "qa")

	want := "NAME    DRIVER   DESCRIPTION\n" +
		"qa *    browser  Staging browser\n" +
		"replay  fixture\n"
	assert.Equal(t, want, buf.String())
}

func TestPrintDevices_Empty(t *testing.T) {
	var buf bytes.Buffer
	cli.PrintDevices(&buf, nil, "")
	assert.Equal(t, "No devices configured; using localhost:9222.\n", buf.String())
}
