package ir

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ghodss/yaml"
)

// LoadDevice reads a device description from disk. Both YAML and JSON are
// accepted since ghodss/yaml normalizes YAML to JSON before decoding, so the
// same struct tags serve either format.
func LoadDevice(path string) (*Device, error) {
	if path == "" {
		return nil, errors.New("ir: empty device description path")
	}

	clean := filepath.Clean(path)
	data, err := os.ReadFile(clean)
	if err != nil {
		return nil, fmt.Errorf("ir: read device description: %w", err)
	}

	device := new(Device)
	if err := yaml.Unmarshal(data, device); err != nil {
		return nil, fmt.Errorf("ir: parse device description %s: %w", clean, err)
	}
	if len(device.Tiles) == 0 {
		return nil, fmt.Errorf("ir: device description %s declares no tiles", clean)
	}
	return device, nil
}
