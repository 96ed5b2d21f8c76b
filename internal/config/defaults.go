package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/stacker.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

// Default returns the default stacker configuration.
func Default() Config {
	return Config{
		Session: SessionConfig{
			Engine: "replay",
			Width:  10,
			Height: 20,
			Tick:   10 * time.Millisecond,
			Speed:  SpeedNormal,
			Layout: "board",
		},
		Render: RenderConfig{
			Textures: false,
		},
		SSH: SSHConfig{
			Address:     ":23235",
			IdleTimeout: 30 * time.Minute,
			MaxSessions: 32,
		},
		Journal: JournalConfig{
			Enabled: true,
			Path:    "~/.stacker/journal.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
