// Package file holds the on-disk (plaintext YAML) shape of a scoring configuration.
package file

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Title   string   `yaml:"title"`
	Remote  string   `yaml:"remote,omitempty"`
	Records []Record `yaml:"records"`
}

type Record struct {
	Message    string  `yaml:"message"`
	Identifier string  `yaml:"identifier"`
	Points     int     `yaml:"points"`
	Checks     []Check `yaml:"checks"`
}

// Check keeps conditions as raw nodes; they are discriminated by their
// `type` field and decoded by the condition catalog.
type Check struct {
	Success []yaml.Node `yaml:"success,omitempty"`
	Fail    []yaml.Node `yaml:"fail,omitempty"`
}

func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return &cfg, nil
}
