package matching

import (
	"context"
	"testing"
	"time"

	"github.com/relieflogix/relief/pkg/domain/entities"
	"github.com/relieflogix/relief/pkg/domain/services/priority"
)

func mustTestNeed(t *testing.T, now time.Time, title, category string, level entities.PriorityLevel, required int64, loc entities.Location) *entities.Need {
	t.Helper()
	n, err := entities.NewNeed(now, title, category, level, required, "unit", loc)
	if err != nil {
		t.Fatalf("NewNeed: %v", err)
	}
	return n
}

func mustTestSupply(t *testing.T, now time.Time, name, category string, available int64, loc entities.Location) *entities.Supply {
	t.Helper()
	s, err := entities.NewSupply(now, name, category, available, "unit", loc)
	if err != nil {
		t.Fatalf("NewSupply: %v", err)
	}
	return s
}

func testEngine() *Engine {
	return NewEngine(DefaultConfig())
}

func TestRun_SimpleExactMatch(t *testing.T) {
	now := time.Now()
	loc := entities.Location{Latitude: 10, Longitude: 10}
	need := mustTestNeed(t, now, "Water for shelter", "Water", entities.High, 100, loc)
	supply := mustTestSupply(t, now, "Bottled water", "Water", 200, loc)

	result, err := testEngine().Run(context.Background(), []*entities.Need{need}, []*entities.Supply{supply}, priority.NewManager(priority.DefaultAgingConfig()), nil, now)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}
	if len(result.Allocations) != 1 {
		t.Fatalf("expected 1 allocation, got %d", len(result.Allocations))
	}
	if result.Allocations[0].TotalQuantity != 100 {
		t.Errorf("expected 100 allocated, got %d", result.Allocations[0].TotalQuantity)
	}
	if !need.IsFulfilled() {
		t.Errorf("need should be fully fulfilled")
	}
	if supply.Available != 100 {
		t.Errorf("expected 100 remaining available, got %d", supply.Available)
	}
}

func TestRun_PartialAcrossTwoSupplies(t *testing.T) {
	now := time.Now()
	loc := entities.Location{Latitude: 10, Longitude: 10}
	need := mustTestNeed(t, now, "Blankets", "Shelter", entities.High, 100, loc)
	s1 := mustTestSupply(t, now, "Blanket lot A", "Shelter", 40, loc)
	s2 := mustTestSupply(t, now, "Blanket lot B", "Shelter", 80, loc)

	result, err := testEngine().Run(context.Background(), []*entities.Need{need}, []*entities.Supply{s1, s2}, priority.NewManager(priority.DefaultAgingConfig()), nil, now)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(result.Allocations) != 1 {
		t.Fatalf("expected 1 allocation, got %d", len(result.Allocations))
	}
	if result.Allocations[0].TotalQuantity != 100 {
		t.Errorf("expected 100 total allocated across both lots, got %d", result.Allocations[0].TotalQuantity)
	}
	if len(result.Allocations[0].Supplies) != 2 {
		t.Errorf("expected allocation to span 2 supplies, got %d", len(result.Allocations[0].Supplies))
	}
	if !need.IsFulfilled() {
		t.Errorf("need should be fully fulfilled")
	}
}

func TestRun_PartialGateRejectsUndersizedSlice(t *testing.T) {
	now := time.Now()
	loc := entities.Location{Latitude: 10, Longitude: 10}
	need := mustTestNeed(t, now, "Medicine", "Medical", entities.High, 1000, loc)
	// 5 units is below the default 10% minimum partial threshold (100).
	tiny := mustTestSupply(t, now, "Tiny medical lot", "Medical", 5, loc)

	result, err := testEngine().Run(context.Background(), []*entities.Need{need}, []*entities.Supply{tiny}, priority.NewManager(priority.DefaultAgingConfig()), nil, now)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(result.Allocations) != 0 {
		t.Fatalf("expected no allocation for undersized slice, got %+v", result.Allocations)
	}
	if need.Fulfilled != 0 {
		t.Errorf("need should be untouched, got fulfilled=%d", need.Fulfilled)
	}
}

func TestRun_AgingPromotesLowAheadOfUnagedHigh(t *testing.T) {
	now := time.Now()
	loc := entities.Location{Latitude: 10, Longitude: 10}

	agedLow, err := entities.NewNeed(now.Add(-120*time.Hour), "Aged low-priority need", "Food", entities.Low, 50, "unit", loc)
	if err != nil {
		t.Fatalf("NewNeed: %v", err)
	}
	freshHigh := mustTestNeed(t, now, "Fresh high-priority need", "Food", entities.High, 50, loc)

	// Only enough supply for one need; the engine should serve whichever
	// sorts first in priority order.
	supply := mustTestSupply(t, now, "Ration pack", "Food", 50, loc)

	pm := priority.NewManager(priority.DefaultAgingConfig())
	ordered, err := pm.Order([]*entities.Need{freshHigh, agedLow}, now, priority.OrderOptions{})
	if err != nil {
		t.Fatalf("Order: %v", err)
	}
	if ordered[0] != agedLow {
		t.Fatalf("expected aged low-priority need to sort first, got %v", ordered[0].Title)
	}

	result, err := testEngine().Run(context.Background(), []*entities.Need{freshHigh, agedLow}, []*entities.Supply{supply}, pm, nil, now)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(result.Allocations) != 1 {
		t.Fatalf("expected exactly 1 allocation, got %d", len(result.Allocations))
	}
	if result.Allocations[0].NeedID != agedLow.ID() {
		t.Errorf("expected the aged need to win the only available supply")
	}
}

func TestRun_CanceledContextAbortsBeforeAnyMutation(t *testing.T) {
	now := time.Now()
	loc := entities.Location{Latitude: 10, Longitude: 10}
	need := mustTestNeed(t, now, "Equipment", "Equipment", entities.High, 50, loc)
	supply := mustTestSupply(t, now, "Generator", "Equipment", 50, loc)

	before := supply.Available

	// An already-canceled context aborts the pass before any mutation.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := testEngine().Run(ctx, []*entities.Need{need}, []*entities.Supply{supply}, priority.NewManager(priority.DefaultAgingConfig()), nil, now)
	if err == nil {
		t.Fatalf("expected MatchingAborted error for a canceled context")
	}
	if result != nil {
		t.Fatalf("expected nil result on pre-pass abort, got %+v", result)
	}
	if supply.Available != before {
		t.Errorf("supply should be untouched, got %d want %d", supply.Available, before)
	}
	if need.Fulfilled != 0 {
		t.Errorf("need should be untouched, got fulfilled=%d", need.Fulfilled)
	}
}

func TestRun_CategoryHardCutExcludesUnrelatedSupply(t *testing.T) {
	now := time.Now()
	loc := entities.Location{Latitude: 10, Longitude: 10}
	need := mustTestNeed(t, now, "Medical kits", "Medical", entities.High, 50, loc)
	unrelated := mustTestSupply(t, now, "Generator", "Equipment", 100, loc)

	result, err := testEngine().Run(context.Background(), []*entities.Need{need}, []*entities.Supply{unrelated}, priority.NewManager(priority.DefaultAgingConfig()), nil, now)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(result.Allocations) != 0 {
		t.Fatalf("expected no allocation across unrelated categories, got %+v", result.Allocations)
	}
}

func TestRun_CategoryRelatedFamilyMatches(t *testing.T) {
	now := time.Now()
	loc := entities.Location{Latitude: 10, Longitude: 10}
	need := mustTestNeed(t, now, "First aid", "Medical", entities.High, 10, loc)
	related := mustTestSupply(t, now, "Medicine crate", "Medicine", 20, loc)

	result, err := testEngine().Run(context.Background(), []*entities.Need{need}, []*entities.Supply{related}, priority.NewManager(priority.DefaultAgingConfig()), nil, now)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(result.Allocations) != 1 {
		t.Fatalf("expected related-family match, got %+v", result.Allocations)
	}
}

func TestRun_UnknownLocationSkipsProximityBonusButStillMatches(t *testing.T) {
	now := time.Now()
	need := mustTestNeed(t, now, "Food parcels", "Food", entities.High, 30, entities.Location{})
	supply := mustTestSupply(t, now, "Ration pack", "Food", 30, entities.Location{Latitude: 5, Longitude: 5})

	result, err := testEngine().Run(context.Background(), []*entities.Need{need}, []*entities.Supply{supply}, priority.NewManager(priority.DefaultAgingConfig()), nil, now)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(result.Allocations) != 1 {
		t.Fatalf("expected a match even without a resolvable distance, got %+v", result.Allocations)
	}
}

func TestRun_StockRatioBonusCappedAtOne(t *testing.T) {
	now := time.Now()
	loc := entities.Location{Latitude: 1, Longitude: 1}
	need := mustTestNeed(t, now, "Water", "Water", entities.High, 10, loc)
	abundant := mustTestSupply(t, now, "Huge water lot", "Water", 100000, loc)

	score, eligible := matchScore(DefaultConfig(), need, abundant, now)
	if !eligible {
		t.Fatalf("expected eligible match")
	}
	// Category (1.0*0.5) + proximity (1.0*0.3, same location) + stock-ratio
	// cap (0.2) = 1.0, with no expiring-soon bonus.
	if score < 0.99 || score > 1.01 {
		t.Errorf("expected stock-ratio bonus capped at 0.2 contribution, got score=%v", score)
	}
}

func TestRun_NilCollectionsAreInvalidArgument(t *testing.T) {
	_, err := testEngine().Run(context.Background(), nil, nil, priority.NewManager(priority.DefaultAgingConfig()), nil, time.Now())
	if err == nil {
		t.Fatal("expected InvalidArgument error for nil collections")
	}
}

func TestRun_NoUnfulfilledNeedsIsSuccessNoOp(t *testing.T) {
	now := time.Now()
	result, err := testEngine().Run(context.Background(), []*entities.Need{}, []*entities.Supply{}, priority.NewManager(priority.DefaultAgingConfig()), nil, now)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !result.Success {
		t.Errorf("expected success for empty needs")
	}
	if len(result.Allocations) != 0 {
		t.Errorf("expected no allocations")
	}
}
