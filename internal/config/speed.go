package config

import (
	"fmt"
	"strings"
	"time"
)

// SpeedPreset represents a named gravity speed.
type SpeedPreset string

const (
	SpeedSlow   SpeedPreset = "slow"
	SpeedNormal SpeedPreset = "normal"
	SpeedFast   SpeedPreset = "fast"
	SpeedFixed  SpeedPreset = "fixed"
)

// SpeedPresets returns every preset in menu order.
func SpeedPresets() []SpeedPreset {
	return []SpeedPreset{SpeedSlow, SpeedNormal, SpeedFast, SpeedFixed}
}

// ParseSpeed parses a preset name. Empty means normal.
func ParseSpeed(s string) (SpeedPreset, error) {
	switch p := SpeedPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return SpeedNormal, nil
	case SpeedSlow, SpeedNormal, SpeedFast, SpeedFixed:
		return p, nil
	default:
		return SpeedNormal, fmt.Errorf("%w: unknown speed %q", ErrInvalid, s)
	}
}

// TickForPreset scales the base tick period by a preset: slow doubles it,
// fast halves it. Normal and fixed keep it unchanged.
func TickForPreset(base time.Duration, preset SpeedPreset) time.Duration {
	switch preset {
	case SpeedSlow:
		return base * 2
	case SpeedFast:
		if base/2 > 0 {
			return base / 2
		}
		return base
	default:
		return base
	}
}

// IsFixedPreset returns true if the preset pins the tick period.
func IsFixedPreset(preset SpeedPreset) bool {
	return preset == SpeedFixed
}
