// Package inventory loads the device inventory from a YAML file.
package inventory

import (
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vrpctl/vrpctl/pkg/util"
)

// Duration decodes YAML strings like "45s" into a time.Duration.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Device is one reachable VRP device.
type Device struct {
	Host     string   `yaml:"host"`
	Port     int      `yaml:"port,omitempty"`
	Username string   `yaml:"username"`
	Password string   `yaml:"password,omitempty"`
	Timeout  Duration `yaml:"timeout,omitempty"`
}

// Inventory maps device names to connection parameters.
type Inventory struct {
	Devices map[string]Device `yaml:"devices"`
}

// Load parses an inventory YAML file and validates required fields.
func Load(path string) (*Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading inventory file: %w", err)
	}

	var inv Inventory
	if err := yaml.Unmarshal(data, &inv); err != nil {
		return nil, fmt.Errorf("parsing inventory YAML: %w", err)
	}

	if err := validate(&inv); err != nil {
		return nil, fmt.Errorf("validating inventory: %w", err)
	}
	return &inv, nil
}

func validate(inv *Inventory) error {
	if len(inv.Devices) == 0 {
		return fmt.Errorf("at least one device is required")
	}
	for name, d := range inv.Devices {
		if d.Host == "" {
			return fmt.Errorf("device %s: host is required", name)
		}
		if d.Username == "" {
			return fmt.Errorf("device %s: username is required", name)
		}
	}
	return nil
}

// Device looks up a device by name.
func (inv *Inventory) Device(name string) (Device, error) {
	d, ok := inv.Devices[name]
	if !ok {
		return Device{}, fmt.Errorf("%w: device %q not in inventory", util.ErrNotFound, name)
	}
	return d, nil
}

// Names lists the inventory's device names, sorted.
func (inv *Inventory) Names() []string {
	names := make([]string, 0, len(inv.Devices))
	for name := range inv.Devices {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
