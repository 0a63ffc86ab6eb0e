package browser

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
)

// DefaultPort is the DevTools port used when an address has none.
const DefaultPort = 9222

// Config describes how to reach a Chrome instance.
type Config struct {
	// ControlURL is a DevTools address such as "localhost:9222" or a
	// "ws://" endpoint. Ignored when Launch is set.
	ControlURL string `mapstructure:"control_url"`
	// Launch starts a local browser instead of attaching to one.
	Launch   bool   `mapstructure:"launch"`
	Headless bool   `mapstructure:"headless"`
	Bin      string `mapstructure:"bin"`
	// URL, when set, is opened in a new page after connecting.
	URL string `mapstructure:"url"`
	// Timeout bounds every request sent to the browser. Zero means none.
	Timeout time.Duration `mapstructure:"timeout"`
}

// DecodeConfig builds a Config from free-form registry options.
// Numbers and booleans may be given as strings; durations as "5s".
func DecodeConfig(options map[string]any) (Config, error) {
	cfg := Config{Headless: true}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		Result:           &cfg,
	})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(options); err != nil {
		return Config{}, fmt.Errorf("invalid browser options: %w", err)
	}
	return cfg, nil
}
