package dashboard

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/relieflogix/relief/pkg/domain/entities"
	"github.com/relieflogix/relief/pkg/domain/repositories"
	"github.com/relieflogix/relief/pkg/domain/services/matching"
	"github.com/relieflogix/relief/pkg/domain/services/priority"
)

// Dashboard aggregates snapshots and evaluates the panic condition. It
// holds no entity state of its own — every call is a pure function of
// the slices passed to Snapshot plus the wall-clock now.
type Dashboard struct {
	cfg Config
	pm  *priority.Manager
	log *slog.Logger

	observers []repositories.PanicObserver
}

// NewDashboard constructs a Dashboard over the given configuration and
// priority manager (effective levels drive the panic condition).
func NewDashboard(cfg Config, pm *priority.Manager) *Dashboard {
	return &Dashboard{cfg: cfg, pm: pm, log: slog.Default()}
}

// WithLogger returns a copy of the dashboard using the given logger.
func (d *Dashboard) WithLogger(l *slog.Logger) *Dashboard {
	next := *d
	next.log = l
	return &next
}

// Subscribe registers an observer notified once per Snapshot call when
// the panic set is non-empty. Accepts a small list of observers (§6),
// not a general pub/sub bus.
func (d *Dashboard) Subscribe(obs repositories.PanicObserver) {
	d.observers = append(d.observers, obs)
}

// Snapshot computes the full dashboard aggregation as of now. It
// filters soft-deleted entities itself, so callers may pass raw
// repository-loaded slices. sink may be nil; if non-nil and the panic
// set is non-empty, a single PanicModeTriggered event is appended.
func (d *Dashboard) Snapshot(ctx context.Context, needs []*entities.Need, supplies []*entities.Supply, shipments []*entities.Shipment, sink repositories.AuditSink, now time.Time) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, entities.NewMatchingAborted("dashboard.Snapshot", err)
	}

	snap := &Snapshot{
		GeneratedAt: now,
		Categories:  make(map[string]CategoryStats),
	}

	d.aggregateNeeds(snap, needs, now)
	d.aggregateSupplies(snap, supplies)
	d.aggregateShipments(snap, shipments, now)
	d.topCriticalMissing(snap, needs)

	snap.PanicNeeds = d.detectPanic(needs, now)
	if snap.InPanic() {
		d.log.Warn("panic condition detected", "count", len(snap.PanicNeeds))
		d.notifyPanic(snap.PanicNeeds)
		d.emitPanicEvent(ctx, sink, snap.PanicNeeds, now)
	}

	return snap, nil
}

func (d *Dashboard) aggregateNeeds(snap *Snapshot, needs []*entities.Need, now time.Time) {
	catAgg := make(map[string]*CategoryStats)

	for _, n := range needs {
		if n.IsDeleted() {
			continue
		}
		snap.Needs.Total++

		switch {
		case n.IsFulfilled():
			snap.Needs.Fulfilled++
		case n.Fulfilled > 0:
			snap.Needs.Partial++
		default:
			snap.Needs.Unfulfilled++
		}

		key := matching.CanonicalCategory(n.Category)
		cs, ok := catAgg[key]
		if !ok {
			cs = &CategoryStats{Category: key}
			catAgg[key] = cs
		}
		cs.NeedCount++
	}

	if snap.Needs.Total > 0 {
		totalRequired, totalFulfilled := int64(0), int64(0)
		for _, n := range needs {
			if n.IsDeleted() {
				continue
			}
			totalRequired += n.Required
			totalFulfilled += n.Fulfilled
		}
		if totalRequired > 0 {
			snap.Needs.PercentMet = float64(totalFulfilled) / float64(totalRequired) * 100
		}
	}

	for _, n := range needs {
		if n.IsDeleted() {
			continue
		}
		key := matching.CanonicalCategory(n.Category)
		cs := catAgg[key]
		cs.FulfillmentPercent += n.FulfillmentPercent()
	}
	for key, cs := range catAgg {
		if cs.NeedCount > 0 {
			cs.FulfillmentPercent /= float64(cs.NeedCount)
		}
		snap.Categories[key] = *cs
	}
}

func (d *Dashboard) aggregateSupplies(snap *Snapshot, supplies []*entities.Supply) {
	catAgg := snap.Categories

	for _, s := range supplies {
		if s.IsDeleted() {
			continue
		}
		snap.Supplies.Total++
		allocatable := s.Allocatable()
		if allocatable == 0 {
			snap.Supplies.Depleted++
		}
		if allocatable > 0 && s.IsBelowMinimum() {
			snap.Supplies.LowStock++
		}

		key := matching.CanonicalCategory(s.Category)
		cs, ok := catAgg[key]
		if !ok {
			cs = CategoryStats{Category: key}
		}
		cs.AllocatableQty += s.Allocatable()
		catAgg[key] = cs
	}
}

func (d *Dashboard) aggregateShipments(snap *Snapshot, shipments []*entities.Shipment, now time.Time) {
	for _, sh := range shipments {
		if sh.IsDeleted() {
			continue
		}
		if sh.Active() {
			snap.Shipments.ActiveTotal++
		}
		switch sh.Status() {
		case entities.Pending, entities.Approved:
			snap.Shipments.Pending++
		case entities.InTransit, entities.AtDistributionCenter, entities.OutForDelivery:
			snap.Shipments.InTransit++
		case entities.Delivered:
			if sh.ActualDelivery != nil && isSameDay(*sh.ActualDelivery, now) {
				snap.Shipments.DeliveredToday++
			}
		}
	}
}

func isSameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// topCriticalMissing lists the TopCriticalCount most urgent unfulfilled
// needs, ranked by ascending effective-priority score (lower score is
// more urgent) and tie-broken by descending hours-waiting.
func (d *Dashboard) topCriticalMissing(snap *Snapshot, needs []*entities.Need) {
	var candidates []*entities.Need
	for _, n := range needs {
		if n.IsDeleted() || n.IsFulfilled() {
			continue
		}
		candidates = append(candidates, n)
	}

	now := snap.GeneratedAt
	sort.SliceStable(candidates, func(i, j int) bool {
		si := d.pm.EffectivePriority(candidates[i], now)
		sj := d.pm.EffectivePriority(candidates[j], now)
		if si != sj {
			return si < sj
		}
		wi := now.Sub(candidates[i].CreatedAt())
		wj := now.Sub(candidates[j].CreatedAt())
		return wi > wj
	})

	if len(candidates) > d.cfg.TopCriticalCount {
		candidates = candidates[:d.cfg.TopCriticalCount]
	}
	snap.TopCriticalMissing = candidates
}

// detectPanic implements the §4.4 panic condition: not deleted, not
// fulfilled, effective level Critical, waited >= threshold, and
// (fulfillment% == 0 OR waited > 2*threshold). Sorted descending by
// waited-threshold.
func (d *Dashboard) detectPanic(needs []*entities.Need, now time.Time) []*entities.Need {
	threshold := d.cfg.PanicThresholdHours

	var panicking []*entities.Need
	for _, n := range needs {
		if n.IsDeleted() || n.IsFulfilled() {
			continue
		}
		if d.pm.EffectiveLevel(n, now) != entities.Critical {
			continue
		}
		waited := now.Sub(n.CreatedAt()).Hours()
		if waited < threshold {
			continue
		}
		if n.FulfillmentPercent() == 0 || waited > 2*threshold {
			panicking = append(panicking, n)
		}
	}

	sort.SliceStable(panicking, func(i, j int) bool {
		wi := now.Sub(panicking[i].CreatedAt()).Hours() - threshold
		wj := now.Sub(panicking[j].CreatedAt()).Hours() - threshold
		return wi > wj
	})
	return panicking
}

func (d *Dashboard) notifyPanic(needs []*entities.Need) {
	for _, obs := range d.observers {
		obs.OnPanicModeTriggered(needs)
	}
}

func (d *Dashboard) emitPanicEvent(ctx context.Context, sink repositories.AuditSink, needs []*entities.Need, now time.Time) {
	if sink == nil {
		return
	}
	entry := entities.NewAuditEntry(now, entities.PanicModeTriggered, "panic condition detected").
		WithMetadata("count", entities.IntValue(int64(len(needs))))
	if err := sink.Append(ctx, entry); err != nil {
		d.log.Warn("audit append failed", "error", err)
	}
}
