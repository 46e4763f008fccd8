// Package config loads the YAML configuration shared by the command-line
// tools.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/moffa90/go-arduboot/stream"
)

type Config struct {
	Serial    SerialConfig  `yaml:"serial"`
	Switch    SwitchConfig  `yaml:"switch"`
	Stream    StreamConfig  `yaml:"stream"`
	Log       LogConfig     `yaml:"log"`
	Avrdude   AvrdudeConfig `yaml:"avrdude"`
	ExitDelay time.Duration `yaml:"exit_delay"`
}

type SerialConfig struct {
	// Port skips device discovery when set
	Port        string        `yaml:"port"`
	ReadTimeout time.Duration `yaml:"read_timeout"`
	EdgeTimeout time.Duration `yaml:"edge_timeout"`
}

type SwitchConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	PollInterval time.Duration `yaml:"poll_interval"`
}

type StreamConfig struct {
	Interval      time.Duration `yaml:"interval"`
	SpinMargin    time.Duration `yaml:"spin_margin"`
	Boundary      string        `yaml:"boundary"`
	Loop          bool          `yaml:"loop"`
	WaitForButton bool          `yaml:"wait_for_button"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type AvrdudeConfig struct {
	Path       string `yaml:"path"`
	Config     string `yaml:"config"`
	Part       string `yaml:"part"`
	Programmer string `yaml:"programmer"`
	Baud       int    `yaml:"baud"`
}

// LoadConfig reads path on top of the defaults, so a file only needs the
// keys it changes. An empty path returns the defaults.
func LoadConfig(path string) (*Config, error) {
	config := GetDefaultConfig()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return config, nil
}

// Validate checks values the libraries would otherwise reject or misuse.
func (c *Config) Validate() error {
	if c.Stream.Interval <= 0 {
		return fmt.Errorf("stream.interval must be positive, got %s", c.Stream.Interval)
	}
	if c.Stream.SpinMargin < 0 {
		return fmt.Errorf("stream.spin_margin must not be negative, got %s", c.Stream.SpinMargin)
	}
	if _, err := stream.ParseBoundaryPolicy(c.Stream.Boundary); err != nil {
		return fmt.Errorf("stream.boundary: %w", err)
	}
	if c.Switch.Timeout <= 0 || c.Switch.PollInterval <= 0 {
		return fmt.Errorf("switch.timeout and switch.poll_interval must be positive")
	}
	if c.Serial.ReadTimeout <= 0 {
		return fmt.Errorf("serial.read_timeout must be positive, got %s", c.Serial.ReadTimeout)
	}
	if c.ExitDelay < 0 {
		return fmt.Errorf("exit_delay must not be negative, got %s", c.ExitDelay)
	}
	return nil
}

// GetDefaultConfig returns the default configuration.
func GetDefaultConfig() *Config {
	return &Config{
		Serial: SerialConfig{
			ReadTimeout: 2 * time.Second,
			EdgeTimeout: 60 * time.Second,
		},
		Switch: SwitchConfig{
			Timeout:      30 * time.Second,
			PollInterval: 100 * time.Millisecond,
		},
		Stream: StreamConfig{
			Interval:   33 * time.Millisecond,
			SpinMargin: time.Millisecond,
			Boundary:   "pad",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Avrdude: AvrdudeConfig{
			Path:       "avrdude",
			Part:       "atmega32u4",
			Programmer: "avr109",
			Baud:       57600,
		},
		ExitDelay: 5 * time.Second,
	}
}
