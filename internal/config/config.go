// Package config holds the runtime configuration of the target range.
package config

import (
	"time"

	"github.com/tomz197/target/internal/haptic"
	"github.com/tomz197/target/internal/input"
	"github.com/tomz197/target/internal/ring"
	"github.com/tomz197/target/internal/target"
)

// Config contains process configuration. All keys are flat so they map
// one-to-one onto TARGET_* environment variables.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFile receives logs from the local game, whose stdout is the screen.
	LogFile string `koanf:"log_file"`

	// Target geometry in logical units.
	TargetWidth     float64 `koanf:"target_width"`
	TargetHeight    float64 `koanf:"target_height"`
	BaseRingSize    float64 `koanf:"base_ring_size"`
	RingBaseZ       int     `koanf:"ring_base_z"`
	CenterSize      float64 `koanf:"center_size"`
	CrosshairLength float64 `koanf:"crosshair_length"`

	// Rings lists the scoring rings, innermost first.
	Rings []ring.Config `koanf:"rings"`

	// Gestures.
	LongPress    time.Duration `koanf:"long_press"`
	DragDeadZone float64       `koanf:"drag_dead_zone"`

	// Haptics enables the terminal bell as a vibration stand-in.
	Haptics   bool          `koanf:"haptics"`
	Vibration time.Duration `koanf:"vibration"`

	// LedgerDebounce is how long scores must stay unchanged before a
	// summary is logged. Zero disables it.
	LedgerDebounce time.Duration `koanf:"ledger_debounce"`

	// SSH server.
	SSHHost    string `koanf:"ssh_host"`
	SSHPort    string `koanf:"ssh_port"`
	SSHHostKey string `koanf:"ssh_host_key"`

	// MetricsAddr serves /metrics; empty disables it.
	MetricsAddr string `koanf:"metrics_addr"`

	// Landing page.
	WebHost        string `koanf:"web_host"`
	WebPort        string `koanf:"web_port"`
	SSHDisplayHost string `koanf:"ssh_display_host"`
}

// New returns the defaults.
func New() *Config {
	geom := target.DefaultConfig()
	return &Config{
		LogLevel:        "info",
		TargetWidth:     geom.Width,
		TargetHeight:    geom.Height,
		BaseRingSize:    geom.BaseRingSize,
		RingBaseZ:       geom.RingBaseZ,
		CenterSize:      geom.CenterSize,
		CrosshairLength: geom.CrosshairLength,
		Rings:           ring.Defaults(),
		LongPress:       input.DefaultLongPress,
		DragDeadZone:    input.DefaultDeadZone,
		Haptics:         true,
		Vibration:       haptic.DefaultDuration,
		LedgerDebounce:  time.Second,
		SSHHost:         "::",
		SSHPort:         "2222",
		SSHHostKey:      "/app/keys/host_key",
		MetricsAddr:     ":9090",
		WebHost:         "0.0.0.0",
		WebPort:         "8080",
		SSHDisplayHost:  "your-server.com",
	}
}

// Target returns the surface geometry described by the config.
func (c *Config) Target() target.Config {
	geom := target.DefaultConfig()
	geom.Width = c.TargetWidth
	geom.Height = c.TargetHeight
	geom.BaseRingSize = c.BaseRingSize
	geom.RingBaseZ = c.RingBaseZ
	geom.CenterSize = c.CenterSize
	geom.CrosshairLength = c.CrosshairLength
	geom.CenterZ = c.RingBaseZ + 1
	geom.Vibration = c.Vibration
	geom.Rings = append([]ring.Config(nil), c.Rings...)
	return geom
}
