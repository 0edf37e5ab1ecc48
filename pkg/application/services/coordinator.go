// Package services hosts the Coordinator: the single application-layer
// entry point that wires the Priority Manager, Matching Engine,
// Dashboard, and audit sink around the in-memory stores.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/relieflogix/relief/pkg/domain/entities"
	"github.com/relieflogix/relief/pkg/domain/repositories"
	"github.com/relieflogix/relief/pkg/domain/services/dashboard"
	"github.com/relieflogix/relief/pkg/domain/services/matching"
	"github.com/relieflogix/relief/pkg/domain/services/priority"
)

// Coordinator is the façade a CLI command or test drives: it loads
// entities from the stores, runs one subsystem operation, and persists
// the (possibly mutated) entities back.
type Coordinator struct {
	needs     repositories.Store[*entities.Need]
	supplies  repositories.Store[*entities.Supply]
	shipments repositories.Store[*entities.Shipment]
	sink      repositories.AuditSink

	pm        *priority.Manager
	engine    *matching.Engine
	dashboard *dashboard.Dashboard

	log *slog.Logger
}

// New constructs a Coordinator over the given stores, sink, and
// subsystem instances. sink may be nil, in which case audit events are
// dropped.
func New(
	needs repositories.Store[*entities.Need],
	supplies repositories.Store[*entities.Supply],
	shipments repositories.Store[*entities.Shipment],
	sink repositories.AuditSink,
	pm *priority.Manager,
	engine *matching.Engine,
	dash *dashboard.Dashboard,
) *Coordinator {
	return &Coordinator{
		needs:     needs,
		supplies:  supplies,
		shipments: shipments,
		sink:      sink,
		pm:        pm,
		engine:    engine,
		dashboard: dash,
		log:       slog.Default(),
	}
}

// WithLogger returns a copy of the coordinator using the given logger.
func (c *Coordinator) WithLogger(l *slog.Logger) *Coordinator {
	next := *c
	next.log = l
	return &next
}

// SaveNeed upserts a need into the coordinator's store. Exposed for
// seeding and CLI data loading; the matching cycle itself loads and
// saves needs internally.
func (c *Coordinator) SaveNeed(ctx context.Context, n *entities.Need) error {
	return c.needs.Save(ctx, n)
}

// SaveSupply upserts a supply into the coordinator's store.
func (c *Coordinator) SaveSupply(ctx context.Context, s *entities.Supply) error {
	return c.supplies.Save(ctx, s)
}

// SaveShipment upserts a shipment into the coordinator's store.
func (c *Coordinator) SaveShipment(ctx context.Context, s *entities.Shipment) error {
	return c.shipments.Save(ctx, s)
}

// RunMatchingCycle loads needs and supplies, runs one matching pass,
// and persists the mutated entities back to their stores regardless of
// whether the pass committed or rolled back (§9: a rollback restores
// quantities, but the store must still reflect the post-pass — possibly
// unchanged — state).
func (c *Coordinator) RunMatchingCycle(ctx context.Context, now time.Time) (*entities.MatchingResult, error) {
	needs, err := c.needs.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	supplies, err := c.supplies.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	result, err := c.engine.Run(ctx, needs, supplies, c.pm, c.sink, now)
	if err != nil {
		return nil, err
	}

	if err := c.needs.SaveAll(ctx, needs); err != nil {
		return nil, err
	}
	if err := c.supplies.SaveAll(ctx, supplies); err != nil {
		return nil, err
	}

	c.log.Info("matching cycle complete",
		"allocatedQuantity", result.TotalAllocatedQuantity,
		"fullyFulfilled", result.FullyFulfilledCount,
		"partiallyFulfilled", result.PartiallyFulfilledCount,
	)
	return result, nil
}

// Snapshot loads the full entity population and computes a dashboard
// snapshot as of now.
func (c *Coordinator) Snapshot(ctx context.Context, now time.Time) (*dashboard.Snapshot, error) {
	needs, err := c.needs.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	supplies, err := c.supplies.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	shipments, err := c.shipments.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	return c.dashboard.Snapshot(ctx, needs, supplies, shipments, c.sink, now)
}

// TransitionShipment loads a shipment, applies the requested status
// transition, persists it, and emits a matching audit event. Returns
// false without mutating anything if the transition is not permitted.
func (c *Coordinator) TransitionShipment(ctx context.Context, id uuid.UUID, to entities.ShipmentStatus, now time.Time) (bool, error) {
	shipment, err := c.shipments.Get(ctx, id)
	if err != nil {
		return false, err
	}

	if !shipment.Transition(to, now) {
		return false, nil
	}

	if err := c.shipments.Save(ctx, shipment); err != nil {
		return false, err
	}

	c.emitShipmentEvent(ctx, shipment, to, now)
	return true, nil
}

func (c *Coordinator) emitShipmentEvent(ctx context.Context, shipment *entities.Shipment, to entities.ShipmentStatus, now time.Time) {
	if c.sink == nil {
		return
	}

	kind := entities.ShipmentDispatched
	switch to {
	case entities.Delivered:
		kind = entities.ShipmentDelivered
	case entities.Cancelled, entities.Failed:
		kind = entities.ShipmentCancelled
	}

	entry := entities.NewAuditEntry(now, kind, "shipment "+shipment.TrackingCode+" transitioned to "+to.String()).
		WithEntity(shipment.ID(), "Shipment")
	if err := c.sink.Append(ctx, entry); err != nil {
		c.log.Warn("audit append failed", "error", err)
	}
}
