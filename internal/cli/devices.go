package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/aretw0/axtree/internal/config"
	"github.com/aretw0/axtree/internal/logging"
	"github.com/aretw0/axtree/pkg/adapters/browser"
	"github.com/aretw0/axtree/pkg/adapters/file"
	"github.com/aretw0/axtree/pkg/adapters/memory"
	"github.com/aretw0/axtree/pkg/domain"
	"github.com/aretw0/axtree/pkg/ports"
	"github.com/mitchellh/mapstructure"
)

// DefaultDevice is used when neither --device nor the registry names one.
const DefaultDevice = "localhost"

// FixturePrefix selects a dump file as the device, as in "file:gedit.xml".
const FixturePrefix = "file:"

// DeviceFactory turns --device arguments into devices.
type DeviceFactory struct {
	registry *config.Registry
	logger   *slog.Logger
}

// NewDeviceFactory creates a factory over the configured devices.
func NewDeviceFactory(registry *config.Registry, logger *slog.Logger) *DeviceFactory {
	if registry == nil {
		registry, _ = config.NewRegistry(config.File{})
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &DeviceFactory{registry: registry, logger: logger}
}

// Default returns the registry's default device name, if any.
func (f *DeviceFactory) Default() string {
	return f.registry.Default
}

// List returns the configured devices.
func (f *DeviceFactory) List() []config.DeviceConfig {
	return f.registry.Devices()
}

// Create resolves arg to a device. An empty arg selects the registry
// default, then DefaultDevice. Otherwise arg is a registry name, a
// FixturePrefix path or a DevTools address "host[:port]".
func (f *DeviceFactory) Create(ctx context.Context, arg string) (ports.Device, error) {
	if arg == "" {
		arg = f.registry.Default
	}
	if arg == "" {
		return f.browser(DefaultDevice, browser.Config{
			ControlURL: fmt.Sprintf("%s:%d", DefaultDevice, browser.DefaultPort),
			Headless:   true,
		}), nil
	}
	if dc, ok := f.registry.Lookup(arg); ok {
		return f.fromConfig(ctx, dc)
	}
	if path, ok := strings.CutPrefix(arg, FixturePrefix); ok {
		return f.fixture(ctx, arg, path)
	}
	return f.fromAddress(arg)
}

func (f *DeviceFactory) fromConfig(ctx context.Context, dc config.DeviceConfig) (ports.Device, error) {
	switch dc.Driver {
	case config.DriverFixture:
		var opts struct {
			Path string `mapstructure:"path"`
		}
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			ErrorUnused: true,
			Result:      &opts,
		})
		if err != nil {
			return nil, err
		}
		if err := dec.Decode(dc.Options); err != nil {
			return nil, fmt.Errorf("device %q: invalid fixture options: %w", dc.Name, err)
		}
		if opts.Path == "" {
			return nil, fmt.Errorf("device %q: fixture requires a path", dc.Name)
		}
		return f.fixture(ctx, dc.Name, opts.Path)
	default:
		cfg, err := browser.DecodeConfig(dc.Options)
		if err != nil {
			return nil, fmt.Errorf("device %q: %w", dc.Name, err)
		}
		return f.browser(dc.Name, cfg), nil
	}
}

func (f *DeviceFactory) fixture(ctx context.Context, name, path string) (ports.Device, error) {
	doc, err := file.NewSaver("").Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("device %q: %w", name, err)
	}
	f.logger.Debug("Loaded fixture", "device", name, "file", path)
	return memory.NewDevice(doc, memory.WithName(name)), nil
}

func (f *DeviceFactory) fromAddress(arg string) (ports.Device, error) {
	parts := strings.Split(arg, ":")
	if len(parts) > 2 || parts[0] == "" {
		return nil, fmt.Errorf("%w: Invalid format of a device: %s", domain.ErrUsage, arg)
	}
	port := browser.DefaultPort
	if len(parts) == 2 {
		p, err := strconv.Atoi(parts[1])
		if err != nil || p <= 0 || p > 65535 {
			return nil, fmt.Errorf("%w: invalid port of a device: %s", domain.ErrUsage, arg)
		}
		port = p
	}
	return f.browser(parts[0], browser.Config{
		ControlURL: fmt.Sprintf("%s:%d", parts[0], port),
		Headless:   true,
	}), nil
}

func (f *DeviceFactory) browser(name string, cfg browser.Config) ports.Device {
	f.logger.Debug("Selected device", "device", name, "control_url", cfg.ControlURL, "launch", cfg.Launch)
	return browser.New(cfg,
		browser.WithName(name),
		browser.WithLogger(logging.ForDevice(f.logger, name)),
	)
}
