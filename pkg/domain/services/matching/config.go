// Package matching implements the Matching Engine: one atomic pass over
// a snapshot of needs and supplies producing allocations, with
// transactional all-or-nothing rollback on failure.
package matching

// Config holds the tunable weights and gates for a matching pass.
type Config struct {
	MaxProximityDistanceKm       float64
	ProximityWeight              float64
	CategoryMatchWeight          float64
	AllowPartialFulfillment      bool
	MinPartialFulfillmentPercent float64
}

// DefaultConfig matches spec.md's documented defaults.
func DefaultConfig() Config {
	return Config{
		MaxProximityDistanceKm:       100,
		ProximityWeight:              0.3,
		CategoryMatchWeight:          0.5,
		AllowPartialFulfillment:      true,
		MinPartialFulfillmentPercent: 10,
	}
}
