package entities

import (
	"testing"
	"time"
)

func TestNewNeed_Validation(t *testing.T) {
	now := time.Now()

	valid, err := NewNeed(now, "Water purification tablets", "Water", High, 100, "boxes", Location{})
	if err != nil {
		t.Fatalf("expected valid need to construct, got %v", err)
	}
	if valid.Required != 100 {
		t.Errorf("expected required 100, got %d", valid.Required)
	}

	cases := []struct {
		name     string
		title    string
		category string
		required int64
	}{
		{"empty title", "", "Water", 10},
		{"empty category", "Tablets", "", 10},
		{"zero required", "Tablets", "Water", 0},
		{"negative required", "Tablets", "Water", -5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewNeed(now, tc.title, tc.category, High, tc.required, "boxes", Location{})
			if err == nil {
				t.Fatalf("expected error for %s", tc.name)
			}
		})
	}
}

func TestNeed_Derived(t *testing.T) {
	now := time.Now()
	n, err := NewNeed(now, "Blankets", "Shelter", Medium, 40, "units", Location{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if n.Remaining() != 40 {
		t.Fatalf("expected remaining 40, got %d", n.Remaining())
	}
	if n.IsFulfilled() {
		t.Fatalf("expected not fulfilled")
	}

	n.AddFulfilledQuantity(32, now)
	if got, want := n.FulfillmentPercent(), 80.0; got != want {
		t.Fatalf("expected fulfillment%% %v, got %v", want, got)
	}

	n.AddFulfilledQuantity(100, now) // overflow clamps at required
	if n.Fulfilled != n.Required {
		t.Fatalf("expected fulfilled clamped to required, got %d", n.Fulfilled)
	}
	if !n.IsFulfilled() {
		t.Fatalf("expected fulfilled after clamp")
	}
	if n.Remaining() != 0 {
		t.Fatalf("expected remaining 0, got %d", n.Remaining())
	}
}

func TestNeed_AddFulfilledQuantity_RejectsNonPositive(t *testing.T) {
	now := time.Now()
	n, _ := NewNeed(now, "Blankets", "Shelter", Medium, 10, "units", Location{})

	if n.AddFulfilledQuantity(0, now) {
		t.Fatalf("expected zero quantity to be rejected")
	}
	if n.AddFulfilledQuantity(-1, now) {
		t.Fatalf("expected negative quantity to be rejected")
	}
	if n.Fulfilled != 0 {
		t.Fatalf("expected fulfilled unchanged, got %d", n.Fulfilled)
	}
}

func TestNeed_ReduceFulfilledQuantity_FlooredAtZero(t *testing.T) {
	now := time.Now()
	n, _ := NewNeed(now, "Blankets", "Shelter", Medium, 10, "units", Location{})
	n.AddFulfilledQuantity(3, now)

	n.ReduceFulfilledQuantity(10, now)
	if n.Fulfilled != 0 {
		t.Fatalf("expected fulfilled floored at 0, got %d", n.Fulfilled)
	}
}

func TestNeed_MarkDeleted_Idempotent(t *testing.T) {
	now := time.Now()
	n, _ := NewNeed(now, "Blankets", "Shelter", Medium, 10, "units", Location{})

	n.MarkDeleted(now.Add(time.Minute))
	if !n.IsDeleted() {
		t.Fatalf("expected deleted")
	}

	n.MarkDeleted(now.Add(2 * time.Minute))
	if !n.IsDeleted() {
		t.Fatalf("expected still deleted on second call")
	}
}
