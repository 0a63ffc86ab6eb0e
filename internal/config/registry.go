package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvConfig overrides the default registry location.
const EnvConfig = "AXTREE_CONFIG"

// Supported device drivers.
const (
	DriverBrowser = "browser"
	DriverFixture = "fixture"
)

// DeviceConfig is one registry entry.
type DeviceConfig struct {
	Name        string         `yaml:"name" json:"name"`
	Driver      string         `yaml:"driver" json:"driver"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	Options     map[string]any `yaml:"options,omitempty" json:"options,omitempty"`
}

// File is the layout of devices.yaml.
type File struct {
	Default string         `yaml:"default,omitempty" json:"default,omitempty"`
	Devices []DeviceConfig `yaml:"devices" json:"devices"`
}

// Registry holds the configured devices by name, in file order.
type Registry struct {
	Default string
	devices []DeviceConfig
	byName  map[string]int
}

// DefaultPath returns $AXTREE_CONFIG, or devices.yaml under the user
// configuration directory.
func DefaultPath() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "devices.yaml"
	}
	return filepath.Join(dir, "axtree", "devices.yaml")
}

// Load reads a registry file (YAML or JSON). A missing file is an empty
// registry.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewRegistry(File{})
		}
		return nil, fmt.Errorf("failed to read device registry: %w", err)
	}

	var f File
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}
	return NewRegistry(f)
}

// NewRegistry validates the entries of f.
func NewRegistry(f File) (*Registry, error) {
	r := &Registry{
		Default: f.Default,
		byName:  make(map[string]int, len(f.Devices)),
	}
	for _, d := range f.Devices {
		if d.Name == "" {
			return nil, fmt.Errorf("device entry without a name")
		}
		if _, dup := r.byName[d.Name]; dup {
			return nil, fmt.Errorf("duplicate device %q", d.Name)
		}
		switch d.Driver {
		case DriverBrowser, DriverFixture:
		case "":
			d.Driver = DriverBrowser
		default:
			return nil, fmt.Errorf("device %q: unknown driver %q", d.Name, d.Driver)
		}
		r.byName[d.Name] = len(r.devices)
		r.devices = append(r.devices, d)
	}
	if r.Default != "" {
		if _, ok := r.byName[r.Default]; !ok {
			return nil, fmt.Errorf("default device %q is not configured", r.Default)
		}
	}
	return r, nil
}

// Lookup returns the entry called name.
func (r *Registry) Lookup(name string) (DeviceConfig, bool) {
	i, ok := r.byName[name]
	if !ok {
		return DeviceConfig{}, false
	}
	return r.devices[i], true
}

// Devices returns the entries in file order.
func (r *Registry) Devices() []DeviceConfig {
	return append([]DeviceConfig(nil), r.devices...)
}
