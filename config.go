package kernsim

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/kernsim/device"
	"github.com/viant/kernsim/logging"
	"github.com/viant/kernsim/memory"
	"github.com/viant/toolbox"
	"gopkg.in/yaml.v3"
)

// LoggingConfig controls the minimum emitted log level.
type LoggingConfig struct {
	Level string `json:"level" yaml:"level"`
}

// TracingConfig controls span export.
type TracingConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	OutputFile string `json:"outputFile" yaml:"outputFile"`
}

// Config represents service configuration.
type Config struct {
	Memory  memory.Config `json:"memory" yaml:"memory"`
	Device  device.Config `json:"device" yaml:"device"`
	Logging LoggingConfig `json:"logging" yaml:"logging"`
	Tracing TracingConfig `json:"tracing" yaml:"tracing"`
}

// DefaultConfig returns the default service configuration.
func DefaultConfig() Config {
	return Config{
		Memory:  memory.DefaultConfig(),
		Device:  device.DefaultConfig(),
		Logging: LoggingConfig{Level: "info"},
	}
}

// Validate returns an error describing the first invalid setting or nil.
func (c *Config) Validate() error {
	if err := c.Memory.Validate(); err != nil {
		return err
	}
	if err := c.Device.Validate(); err != nil {
		return err
	}
	if c.Logging.Level != "" {
		if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
			return fmt.Errorf("logging.level: %w", err)
		}
	}
	return nil
}

// LoadConfig reads configuration from the given URL, accepting JSON or YAML.
// Settings absent from the document keep their defaults.
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, err
	}
	config := DefaultConfig()
	if toolbox.IsCompleteJSON(string(data)) {
		if err = json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config %v: %w", URL, err)
		}
	} else if err = yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %v: %w", URL, err)
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}
