package dashboard

import (
	"time"

	"github.com/relieflogix/relief/pkg/domain/entities"
)

// CategoryStats aggregates fulfillment and stock figures for one
// category key (case-insensitive, same canonicalization as the
// Matching Engine's family table).
type CategoryStats struct {
	Category           string
	NeedCount          int
	FulfillmentPercent float64
	AllocatableQty     int64
}

// NeedsStats summarizes the need population.
type NeedsStats struct {
	Total       int
	Fulfilled   int
	Partial     int
	Unfulfilled int
	PercentMet  float64
}

// SupplyStats summarizes the supply population.
type SupplyStats struct {
	Total    int
	Depleted int
	LowStock int
}

// ShipmentStats summarizes active shipment traffic.
type ShipmentStats struct {
	ActiveTotal    int
	Pending        int
	InTransit      int
	DeliveredToday int
}

// Snapshot is the dashboard's point-in-time aggregation (§4.4).
type Snapshot struct {
	GeneratedAt time.Time

	Needs     NeedsStats
	Supplies  SupplyStats
	Shipments ShipmentStats

	TopCriticalMissing []*entities.Need
	Categories         map[string]CategoryStats

	PanicNeeds []*entities.Need
}

// InPanic reports whether this snapshot triggered the panic condition.
func (s *Snapshot) InPanic() bool {
	return len(s.PanicNeeds) > 0
}
