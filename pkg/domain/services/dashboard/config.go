// Package dashboard aggregates a point-in-time snapshot of needs,
// supplies, and shipments, and flags the panic condition for starved
// critical requests.
package dashboard

// Config tunes the panic detector and the snapshot's top-N list size.
type Config struct {
	PanicThresholdHours float64
	TopCriticalCount    int
}

// DefaultConfig matches spec.md's documented defaults.
func DefaultConfig() Config {
	return Config{
		PanicThresholdHours: 1.0,
		TopCriticalCount:    5,
	}
}
