// Package output renders dashboard snapshots and matching results as
// either plain text or JSON, the thin console formatter named in scope.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/relieflogix/relief/pkg/domain/entities"
	"github.com/relieflogix/relief/pkg/domain/services/dashboard"
)

// WriteJSON marshals v as indented JSON to w.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteSnapshotText renders a dashboard snapshot as a human-readable
// console report.
func WriteSnapshotText(w io.Writer, snap *dashboard.Snapshot) {
	fmt.Fprintf(w, "Dashboard snapshot @ %s\n", snap.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintln(w, "")

	fmt.Fprintf(w, "Needs:     total=%d fulfilled=%d partial=%d unfulfilled=%d percentMet=%.1f%%\n",
		snap.Needs.Total, snap.Needs.Fulfilled, snap.Needs.Partial, snap.Needs.Unfulfilled, snap.Needs.PercentMet)
	fmt.Fprintf(w, "Supplies:  total=%d depleted=%d lowStock=%d\n",
		snap.Supplies.Total, snap.Supplies.Depleted, snap.Supplies.LowStock)
	fmt.Fprintf(w, "Shipments: active=%d pending=%d inTransit=%d deliveredToday=%d\n",
		snap.Shipments.ActiveTotal, snap.Shipments.Pending, snap.Shipments.InTransit, snap.Shipments.DeliveredToday)
	fmt.Fprintln(w, "")

	if snap.InPanic() {
		fmt.Fprintf(w, "!!! PANIC: %d starved critical need(s) !!!\n", len(snap.PanicNeeds))
		for _, n := range snap.PanicNeeds {
			fmt.Fprintf(w, "  - %s (%s, %.0f%% fulfilled)\n", n.Title, n.Category, n.FulfillmentPercent())
		}
		fmt.Fprintln(w, "")
	}

	if len(snap.TopCriticalMissing) > 0 {
		fmt.Fprintln(w, "Top critical needs:")
		for _, n := range snap.TopCriticalMissing {
			fmt.Fprintf(w, "  - %s (%s, %.0f%% fulfilled)\n", n.Title, n.Category, n.FulfillmentPercent())
		}
		fmt.Fprintln(w, "")
	}

	if len(snap.Categories) > 0 {
		fmt.Fprintln(w, "By category:")
		keys := make([]string, 0, len(snap.Categories))
		for key := range snap.Categories {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			cs := snap.Categories[key]
			fmt.Fprintf(w, "  %-12s needs=%-4d fulfillment=%.1f%% allocatable=%d\n", key, cs.NeedCount, cs.FulfillmentPercent, cs.AllocatableQty)
		}
	}
}

// WriteMatchingResultText renders a matching pass result.
func WriteMatchingResultText(w io.Writer, result *entities.MatchingResult) {
	fmt.Fprintf(w, "Matching pass: %s\n", result.Message)
	fmt.Fprintf(w, "  allocated=%d fullyFulfilled=%d partiallyFulfilled=%d\n",
		result.TotalAllocatedQuantity, result.FullyFulfilledCount, result.PartiallyFulfilledCount)
	for _, a := range result.Allocations {
		fmt.Fprintf(w, "  - %s: %d units across %d supply lot(s) (%.0f%% fulfilled)\n",
			a.NeedTitle, a.TotalQuantity, len(a.Supplies), a.FulfillmentPercent)
	}
}
