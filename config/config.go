package config

import (
	"fmt"
	"os"

	"github.com/creastat/logmerge"
	"gopkg.in/yaml.v3"
)

// Config describes one merge run for the CLI.
type Config struct {
	MaxBuffer int            `yaml:"max_buffer"`
	LogLevel  string         `yaml:"log_level"`
	Metrics   MetricsConfig  `yaml:"metrics"`
	Output    OutputConfig   `yaml:"output"`
	Sources   []SourceConfig `yaml:"sources"`
}

// MetricsConfig enables the Prometheus endpoint when Addr is set.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// OutputConfig selects the sink for the merged stream.
type OutputConfig struct {
	Kind string `yaml:"kind"` // stdout | file | websocket
	Path string `yaml:"path"` // file
	URL  string `yaml:"url"`  // websocket
}

// SourceConfig declares one input stream.
type SourceConfig struct {
	Kind       string `yaml:"kind"` // file | sql | pebble
	Name       string `yaml:"name"`
	Path       string `yaml:"path"`        // file
	ConnString string `yaml:"conn_string"` // sql
	Table      string `yaml:"table"`       // sql
	Dir        string `yaml:"dir"`         // pebble
}

// Load reads, defaults, and validates the config at path.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.MaxBuffer == 0 {
		c.MaxBuffer = logmerge.DefaultMaxBuffer
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Output.Kind == "" {
		c.Output.Kind = "stdout"
	}
	for i := range c.Sources {
		if c.Sources[i].Name == "" {
			c.Sources[i].Name = fmt.Sprintf("%s-%d", c.Sources[i].Kind, i)
		}
	}
}

func (c *Config) validate() error {
	if c.MaxBuffer < 1 {
		return fmt.Errorf("max_buffer must be positive, got %d", c.MaxBuffer)
	}
	if len(c.Sources) == 0 {
		return fmt.Errorf("at least one source is required")
	}

	switch c.Output.Kind {
	case "stdout":
	case "file":
		if c.Output.Path == "" {
			return fmt.Errorf("output.path is required for kind file")
		}
	case "websocket":
		if c.Output.URL == "" {
			return fmt.Errorf("output.url is required for kind websocket")
		}
	default:
		return fmt.Errorf("unknown output kind %q", c.Output.Kind)
	}

	for i, src := range c.Sources {
		switch src.Kind {
		case "file":
			if src.Path == "" {
				return fmt.Errorf("sources[%d]: path is required for kind file", i)
			}
		case "sql":
			if src.ConnString == "" {
				return fmt.Errorf("sources[%d]: conn_string is required for kind sql", i)
			}
			if src.Table == "" {
				return fmt.Errorf("sources[%d]: table is required for kind sql", i)
			}
		case "pebble":
			if src.Dir == "" {
				return fmt.Errorf("sources[%d]: dir is required for kind pebble", i)
			}
		default:
			return fmt.Errorf("sources[%d]: unknown kind %q", i, src.Kind)
		}
	}
	return nil
}
