package matching

import (
	"time"

	"github.com/relieflogix/relief/pkg/domain/entities"
)

// supplyDelta records one slice applied to a supply during a pass, so
// rollback can reverse it via the same public mutators used forward.
type supplyDelta struct {
	supply *entities.Supply
	slice  int64
}

// needDelta records the fulfilled-quantity delta applied to a need.
type needDelta struct {
	need  *entities.Need
	slice int64
}

// transaction is a single-thread-scoped, in-memory ledger of quantity
// deltas applied during one matching pass (§9 Design Notes). It is not
// distributed or persistent; entities must outlive the transaction.
type transaction struct {
	supplyDeltas []supplyDelta
	needDeltas   []needDelta
	committed    bool
}

func newTransaction() *transaction {
	return &transaction{}
}

// applySlice performs the forward mutation for one committed slice and
// records it for possible rollback: Reserve(slice) then
// DeductStock(slice) on the supply, AddFulfilledQuantity(slice) on the
// need.
func (tx *transaction) applySlice(s *entities.Supply, n *entities.Need, slice int64, now time.Time) bool {
	if !s.Reserve(slice, now) {
		return false
	}
	if !s.DeductStock(slice, now) {
		// Reserve succeeded but deduct failed: undo the reservation
		// before reporting failure so we never leave a dangling
		// reservation outside the ledger.
		s.ReleaseReservation(slice, now)
		return false
	}
	if !n.AddFulfilledQuantity(slice, now) {
		return false
	}

	tx.supplyDeltas = append(tx.supplyDeltas, supplyDelta{supply: s, slice: slice})
	tx.needDeltas = append(tx.needDeltas, needDelta{need: n, slice: slice})
	return true
}

// commit is irrevocable: once called, rollback must never run even if
// later code raises.
func (tx *transaction) commit() {
	tx.committed = true
}

// rollback reverses every recorded delta, restoring each touched supply
// and need to its exact pre-pass quantities (§8: "every touched entity
// is quantity-identical to its pre-pass state").
//
// applySlice always pairs Reserve(slice) with DeductStock(slice): the
// reservation increase and the deduction's matching reserved decrease
// cancel out, so a forward slice's only net effect on the supply is
// available -= slice. Reversing it is therefore a plain AddStock(slice)
// — re-adding reserved here as well would overcorrect and leave reserved
// below its pre-pass value. No-op if already committed.
func (tx *transaction) rollback(now time.Time) {
	if tx.committed {
		return
	}
	for i := len(tx.supplyDeltas) - 1; i >= 0; i-- {
		d := tx.supplyDeltas[i]
		d.supply.AddStock(d.slice, now)
	}
	for i := len(tx.needDeltas) - 1; i >= 0; i-- {
		d := tx.needDeltas[i]
		d.need.ReduceFulfilledQuantity(d.slice, now)
	}
}
