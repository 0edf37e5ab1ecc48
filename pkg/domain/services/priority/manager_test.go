package priority

import (
	"math"
	"testing"
	"time"

	"github.com/relieflogix/relief/pkg/domain/entities"
)

func mustNeed(t *testing.T, now time.Time, level entities.PriorityLevel, required, fulfilled int64) *entities.Need {
	t.Helper()
	n, err := entities.NewNeed(now, "test need", "Water", level, required, "units", entities.Location{})
	if err != nil {
		t.Fatalf("unexpected error constructing need: %v", err)
	}
	if fulfilled > 0 {
		n.AddFulfilledQuantity(fulfilled, now)
	}
	return n
}

func TestEffectivePriority_ZeroWaitEqualsBase(t *testing.T) {
	m := NewManager(DefaultAgingConfig())
	now := time.Now()

	for _, level := range []entities.PriorityLevel{entities.Critical, entities.High, entities.Medium, entities.Low} {
		n := mustNeed(t, now, level, 10, 0)
		got := m.EffectivePriority(n, now)
		if float64(got) != level.Numeric() {
			t.Errorf("level %v: expected score %v at waited=0, got %v", level, level.Numeric(), got)
		}
	}
}

func TestEffectivePriority_NeverLessUrgentThanBase(t *testing.T) {
	m := NewManager(DefaultAgingConfig())
	now := time.Now()

	for _, level := range []entities.PriorityLevel{entities.High, entities.Medium, entities.Low} {
		created := now.Add(-500 * time.Hour)
		n := mustNeed(t, created, level, 10, 0)
		score := m.EffectivePriority(n, now)
		effLevel := m.EffectiveLevel(n, now)
		if float64(effLevel) > level.Numeric() {
			t.Errorf("aging made %v less urgent (effective=%v, score=%v)", level, effLevel, score)
		}
	}
}

func TestEffectivePriority_AgingPromotesLowToCritical(t *testing.T) {
	m := NewManager(DefaultAgingConfig())
	created := time.Now().Add(-200 * time.Hour)
	now := time.Now()
	n := mustNeed(t, created, entities.Low, 10, 0)

	level := m.EffectiveLevel(n, now)
	if level != entities.Critical {
		t.Fatalf("expected Low need waited 200h to reach Critical, got %v", level)
	}
}

func TestEffectivePriority_DeadlineBoundaries(t *testing.T) {
	m := NewManager(DefaultAgingConfig())
	now := time.Now()

	cases := []struct {
		name     string
		deadline time.Time
		minBonus float64
	}{
		{"exactly now", now, 2.0},
		{"past", now.Add(-time.Hour), 2.0},
		{"within 6h", now.Add(5 * time.Hour), 1.0},
		{"within 24h", now.Add(20 * time.Hour), 0.5},
		{"beyond 24h", now.Add(48 * time.Hour), 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n := mustNeed(t, now, entities.High, 10, 0)
			n.Deadline = &tc.deadline
			score := m.EffectivePriority(n, now)
			want := clamp(entities.High.Numeric()-tc.minBonus, 0, 3)
			if math.Abs(float64(score)-want) > 1e-9 {
				t.Errorf("expected score %v, got %v", want, score)
			}
		})
	}
}

func TestEffectivePriority_CompletionBonusBoundary(t *testing.T) {
	m := NewManager(DefaultAgingConfig())
	now := time.Now()

	at80 := mustNeed(t, now, entities.High, 100, 80)
	scoreAt80 := m.EffectivePriority(at80, now)
	if math.Abs(float64(scoreAt80)-(entities.High.Numeric()-0.5)) > 1e-9 {
		t.Errorf("expected completion bonus at exactly 80%%, got score %v", scoreAt80)
	}

	below80 := mustNeed(t, now, entities.High, 100000, 79999) // 79.999%
	scoreBelow80 := m.EffectivePriority(below80, now)
	if math.Abs(float64(scoreBelow80)-entities.High.Numeric()) > 1e-9 {
		t.Errorf("expected no completion bonus at 79.999%%, got score %v", scoreBelow80)
	}
}

func TestOrder_AscendingByScore_TieBrokenByCreatedAt(t *testing.T) {
	m := NewManager(DefaultAgingConfig())
	now := time.Now()

	older := mustNeed(t, now.Add(-time.Hour), entities.Medium, 10, 0)
	newer := mustNeed(t, now, entities.Medium, 10, 0)
	urgent := mustNeed(t, now, entities.Critical, 10, 0)

	ordered, err := m.Order([]*entities.Need{newer, urgent, older}, now, OrderOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ordered) != 3 {
		t.Fatalf("expected 3 needs, got %d", len(ordered))
	}
	if ordered[0] != urgent {
		t.Fatalf("expected critical need first")
	}
	if ordered[1] != older || ordered[2] != newer {
		t.Fatalf("expected tie between equal-score needs broken by creation time (older first)")
	}
}

func TestOrder_ExcludesFulfilledAndDeleted(t *testing.T) {
	m := NewManager(DefaultAgingConfig())
	now := time.Now()

	fulfilled := mustNeed(t, now, entities.High, 10, 10)
	deleted := mustNeed(t, now, entities.High, 10, 0)
	deleted.MarkDeleted(now)
	active := mustNeed(t, now, entities.High, 10, 0)

	ordered, err := m.Order([]*entities.Need{fulfilled, deleted, active}, now, OrderOptions{
		ExcludeFulfilled: true,
		ExcludeDeleted:   true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ordered) != 1 || ordered[0] != active {
		t.Fatalf("expected only the active need to remain, got %d needs", len(ordered))
	}
}

func TestOrder_NilCollectionIsInvalidArgument(t *testing.T) {
	m := NewManager(DefaultAgingConfig())
	_, err := m.Order(nil, time.Now(), OrderOptions{})
	if err == nil {
		t.Fatalf("expected error for nil needs collection")
	}
}

func TestEmergencyPreset_EscalatesFaster(t *testing.T) {
	defaultMgr := NewManager(DefaultAgingConfig())
	emergencyMgr := NewManager(EmergencyAgingConfig())

	created := time.Now().Add(-10 * time.Hour)
	now := time.Now()

	n1 := mustNeed(t, created, entities.Low, 10, 0)
	n2 := mustNeed(t, created, entities.Low, 10, 0)

	defaultScore := defaultMgr.EffectivePriority(n1, now)
	emergencyScore := emergencyMgr.EffectivePriority(n2, now)

	if emergencyScore >= defaultScore {
		t.Fatalf("expected emergency preset to escalate faster than default: default=%v emergency=%v", defaultScore, emergencyScore)
	}
}
