package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/tomz197/target/internal/ring"
)

// Environment variables read by Load.
const (
	EnvPrefix = "TARGET_"
	EnvFile   = EnvPrefix + "CONFIG"
)

// Load builds a Config by layering, from low to high precedence:
//  1. defaults (New)
//  2. the YAML file named by TARGET_CONFIG, if set
//  3. TARGET_* environment variables (TARGET_LONG_PRESS -> long_press)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(EnvFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}
	// TARGET_CONFIG names the file; it is not a key
	k.Delete("config")

	cfg := *base
	// Decoding a list onto the default list would merge element by element
	cfg.Rings = nil
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	if !k.Exists("rings") {
		cfg.Rings = base.Rings
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first invalid setting, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	if len(c.Rings) == 0 {
		return fmt.Errorf("%w: rings must not be empty", ErrInvalidConfig)
	}
	for i, r := range c.Rings {
		if r.Score < 0 || r.Score > 10 {
			return fmt.Errorf("%w: ring %d: score %d outside 0..10", ErrInvalidConfig, i, r.Score)
		}
		if strings.Contains(r.Fill, ring.Delimiter) || strings.Contains(r.Highlight, ring.Delimiter) {
			return fmt.Errorf("%w: ring %d: colours must not contain %q", ErrInvalidConfig, i, ring.Delimiter)
		}
	}
	if c.BaseRingSize <= 0 {
		return fmt.Errorf("%w: base_ring_size must be positive", ErrInvalidConfig)
	}
	if c.TargetWidth <= 0 || c.TargetHeight <= 0 {
		return fmt.Errorf("%w: target size must be positive", ErrInvalidConfig)
	}
	if c.LongPress <= 0 {
		return fmt.Errorf("%w: long_press must be positive", ErrInvalidConfig)
	}
	if c.DragDeadZone < 0 {
		return fmt.Errorf("%w: drag_dead_zone must not be negative", ErrInvalidConfig)
	}
	if c.SSHPort == "" {
		return fmt.Errorf("%w: ssh_port must not be empty", ErrInvalidConfig)
	}
	return nil
}
