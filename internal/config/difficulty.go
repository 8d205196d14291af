package config

import "fmt"

// SpeedPreset represents a named falling speed.
type SpeedPreset string

const (
	SpeedEasy   SpeedPreset = "easy"
	SpeedNormal SpeedPreset = "normal"
	SpeedHard   SpeedPreset = "hard"
	// SpeedFixed keeps whatever drop interval the configuration sets.
	SpeedFixed SpeedPreset = "fixed"
)

// SpeedPresets lists the accepted preset names.
func SpeedPresets() []SpeedPreset {
	return []SpeedPreset{SpeedEasy, SpeedNormal, SpeedHard, SpeedFixed}
}

// ParseSpeedPreset validates a preset name. The empty string means fixed.
func ParseSpeedPreset(s string) (SpeedPreset, error) {
	if s == "" {
		return SpeedFixed, nil
	}
	for _, p := range SpeedPresets() {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown speed %q (want easy, normal, hard or fixed)", s)
}

// DropIntervalForPreset returns the drop interval in milliseconds for a
// preset, or 0 for SpeedFixed.
func DropIntervalForPreset(preset SpeedPreset) int {
	switch preset {
	case SpeedEasy:
		return 1500
	case SpeedNormal:
		return 1000
	case SpeedHard:
		return 400
	default:
		return 0
	}
}

// ApplySpeedPreset sets the drop interval for preset. The speed stays
// constant for the whole game.
func ApplySpeedPreset(cfg *TetrisConfig, preset SpeedPreset) {
	if ms := DropIntervalForPreset(preset); ms > 0 {
		cfg.Timing.DropIntervalMs = ms
	}
}
