package matching

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/relieflogix/relief/pkg/domain/entities"
	"github.com/relieflogix/relief/pkg/domain/repositories"
	"github.com/relieflogix/relief/pkg/domain/services/priority"
)

// Engine executes one matching pass at a time. It is a stateless value
// over its Config, constructed the same way as the Priority Manager.
type Engine struct {
	cfg Config
	log *slog.Logger
}

// NewEngine constructs an Engine over the given configuration, using
// slog.Default() for structured logging unless overridden with
// WithLogger.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg, log: slog.Default()}
}

// WithLogger returns a copy of the engine using the given logger.
func (e *Engine) WithLogger(l *slog.Logger) *Engine {
	next := *e
	next.log = l
	return &next
}

type candidate struct {
	supply *entities.Supply
	score  float64
}

// Run executes one matching pass. ctx is checked once at the top of the
// pass (§5: the pass is not cancelable mid-flight) so a caller can avoid
// starting an expensive run against an already-expired context; it is
// not polled inside the allocation loop. A nil sink is valid — audit
// events are simply dropped, which keeps the engine usable in isolation
// from any audit wiring.
func (e *Engine) Run(ctx context.Context, needs []*entities.Need, supplies []*entities.Supply, pm *priority.Manager, sink repositories.AuditSink, now time.Time) (*entities.MatchingResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, entities.NewMatchingAborted("matching.Run", err)
	}
	if needs == nil || supplies == nil {
		return nil, entities.NewInvalidArgument("matching.Run", fmt.Errorf("needs and supplies collections must not be nil"))
	}

	ordered, err := pm.Order(needs, now, priority.OrderOptions{ExcludeFulfilled: true, ExcludeDeleted: true})
	if err != nil {
		return nil, entities.NewMatchingAborted("matching.Run", err)
	}

	if len(ordered) == 0 {
		return &entities.MatchingResult{
			Success: true,
			Message: "no unfulfilled needs to match",
		}, nil
	}

	tx := newTransaction()
	result := &entities.MatchingResult{Success: true}

	if abortErr := e.runPass(ctx, ordered, supplies, tx, result, now); abortErr != nil {
		tx.rollback(now)
		result.Success = false
		result.Err = abortErr
		result.Message = abortErr.Error()
		result.Allocations = nil
		result.TotalAllocatedQuantity = 0
		result.FullyFulfilledCount = 0
		result.PartiallyFulfilledCount = 0
		e.emitMatchFailed(ctx, sink, abortErr, now)
		return result, nil
	}

	tx.commit()
	result.Message = fmt.Sprintf("allocated %d need(s)", len(result.Allocations))
	e.emitMatches(ctx, sink, result, now)
	return result, nil
}

// runPass walks needs in priority order and allocates against candidate
// supplies. Returns a non-nil error only for MatchingAborted conditions;
// ordinary "nothing could be allocated for this need" outcomes are not
// errors.
func (e *Engine) runPass(ctx context.Context, needs []*entities.Need, supplies []*entities.Supply, tx *transaction, result *entities.MatchingResult, now time.Time) error {
	for _, n := range needs {
		if n.IsFulfilled() {
			continue
		}

		candidates := e.rankCandidates(n, supplies, now)
		if len(candidates) == 0 {
			continue
		}

		allocated := e.allocateForNeed(n, candidates, tx, now)
		if allocated == nil {
			continue
		}

		result.Allocations = append(result.Allocations, *allocated)
		result.TotalAllocatedQuantity += allocated.TotalQuantity
		if n.IsFulfilled() {
			result.FullyFulfilledCount++
		} else if allocated.TotalQuantity > 0 {
			result.PartiallyFulfilledCount++
		}
	}
	return nil
}

// rankCandidates filters out deleted/expired/zero-allocatable supplies,
// drops zero-scored candidates, and orders descending by score with
// ties broken by insertion order (stable sort).
func (e *Engine) rankCandidates(n *entities.Need, supplies []*entities.Supply, now time.Time) []candidate {
	var candidates []candidate
	for _, s := range supplies {
		if s.IsDeleted() || s.IsExpired(now) || s.Allocatable() == 0 {
			continue
		}
		score, eligible := matchScore(e.cfg, n, s, now)
		if !eligible || score <= 0 {
			continue
		}
		candidates = append(candidates, candidate{supply: s, score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	return candidates
}

// allocateForNeed walks ranked candidates, applying the partial-
// fulfillment gate and slice-size rule, committing each slice into tx.
// Returns nil if nothing was allocated (need is left for a later run).
func (e *Engine) allocateForNeed(n *entities.Need, candidates []candidate, tx *transaction, now time.Time) *entities.Allocation {
	var supplyAllocs []entities.SupplyAllocation
	var accumulated int64
	first := true

	for _, c := range candidates {
		// applySlice updates the need in place, so Remaining() already
		// excludes the slices taken earlier in this walk.
		remaining := n.Remaining()
		if remaining <= 0 {
			break
		}

		slice := c.supply.Allocatable()
		if slice > remaining {
			slice = remaining
		}
		if slice <= 0 {
			continue
		}

		if first {
			if e.cfg.AllowPartialFulfillment {
				minSlice := percentOf(n.Required, e.cfg.MinPartialFulfillmentPercent)
				if slice < minSlice {
					continue
				}
			} else if slice < n.Remaining() {
				// Partial fulfillment disabled: the first candidate
				// must satisfy the full remaining quantity alone.
				continue
			}
		}

		if !tx.applySlice(c.supply, n, slice, now) {
			continue
		}
		first = false
		accumulated += slice

		supplyAllocs = append(supplyAllocs, entities.SupplyAllocation{
			SupplyID:   c.supply.ID(),
			SupplyName: c.supply.Name,
			Quantity:   slice,
			Score:      c.score,
			Exhausted:  c.supply.Allocatable() == 0,
		})
	}

	if len(supplyAllocs) == 0 {
		return nil
	}

	return &entities.Allocation{
		NeedID:             n.ID(),
		NeedTitle:          n.Title,
		Supplies:           supplyAllocs,
		TotalQuantity:      accumulated,
		FulfillmentPercent: n.FulfillmentPercent(),
		AllocatedAt:        now,
	}
}

func percentOf(total int64, pct float64) int64 {
	return int64(float64(total) * pct / 100.0)
}

func (e *Engine) emitMatches(ctx context.Context, sink repositories.AuditSink, result *entities.MatchingResult, now time.Time) {
	if sink == nil {
		return
	}
	for _, alloc := range result.Allocations {
		entry := entities.NewAuditEntry(now, entities.MatchMade, fmt.Sprintf("allocated %d unit(s) to %s", alloc.TotalQuantity, alloc.NeedTitle)).
			WithEntity(alloc.NeedID, "Need").
			WithMetadata("totalQuantity", entities.IntValue(alloc.TotalQuantity)).
			WithMetadata("fulfillmentPercent", entities.FloatValue(alloc.FulfillmentPercent))
		if err := sink.Append(ctx, entry); err != nil {
			e.log.Warn("audit append failed", "error", err)
		}
	}
}

func (e *Engine) emitMatchFailed(ctx context.Context, sink repositories.AuditSink, cause error, now time.Time) {
	if sink == nil {
		return
	}
	entry := entities.NewAuditEntry(now, entities.MatchFailed, cause.Error())
	if err := sink.Append(ctx, entry); err != nil {
		e.log.Warn("audit append failed", "error", err)
	}
}
