// Package priority implements the Priority Manager: mapping a Need to a
// continuous effective-urgency score and a derived discrete level.
package priority

// AgingConfig holds the three escalation thresholds, in hours, that
// control when a base priority level starts aging toward Critical.
type AgingConfig struct {
	LowToMedium    float64
	MediumToHigh   float64
	HighToCritical float64
}

// DefaultAgingConfig matches spec.md's default thresholds.
func DefaultAgingConfig() AgingConfig {
	return AgingConfig{
		LowToMedium:    24,
		MediumToHigh:   12,
		HighToCritical: 6,
	}
}

// EmergencyAgingConfig is the faster-escalating "emergency" preset.
func EmergencyAgingConfig() AgingConfig {
	return AgingConfig{
		LowToMedium:    6,
		MediumToHigh:   3,
		HighToCritical: 1,
	}
}
