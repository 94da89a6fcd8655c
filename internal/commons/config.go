package commons

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"barliman/internal/config"
)

// LoadConfig reads a full configuration from a YAML file, overriding the
// env-based defaults. Used for deployments that ship a config file.
func LoadConfig(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}
