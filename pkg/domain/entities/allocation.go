package entities

import (
	"time"

	"github.com/google/uuid"
)

// SupplyAllocation records one supply's contribution to a need during a
// matching pass.
type SupplyAllocation struct {
	SupplyID  uuid.UUID
	SupplyName string
	Quantity  int64
	Score     float64
	Exhausted bool
}

// Allocation records everything a matching pass did for a single need:
// which supplies contributed, at what score, and the need's fulfillment
// percentage after the pass.
type Allocation struct {
	NeedID             uuid.UUID
	NeedTitle          string
	Supplies           []SupplyAllocation
	TotalQuantity      int64
	FulfillmentPercent float64
	AllocatedAt        time.Time
}

// MatchingResult is the output of one matching pass.
type MatchingResult struct {
	Success     bool
	Message     string
	Err         error
	Allocations []Allocation

	TotalAllocatedQuantity int64
	FullyFulfilledCount    int
	PartiallyFulfilledCount int
}
