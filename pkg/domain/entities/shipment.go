package entities

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ShipmentStatus is the shipment's position in the delivery state
// machine (§4.5).
type ShipmentStatus int

const (
	Pending ShipmentStatus = iota
	Approved
	InTransit
	AtDistributionCenter
	OutForDelivery
	Delivered
	Cancelled
	Failed
)

func (s ShipmentStatus) String() string {
	switch s {
	case Pending:
		return "Pending"
	case Approved:
		return "Approved"
	case InTransit:
		return "InTransit"
	case AtDistributionCenter:
		return "AtDistributionCenter"
	case OutForDelivery:
		return "OutForDelivery"
	case Delivered:
		return "Delivered"
	case Cancelled:
		return "Cancelled"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

func (s ShipmentStatus) MarshalJSON() ([]byte, error) {
	return marshalEnumString(s.String())
}

func (s *ShipmentStatus) UnmarshalJSON(data []byte) error {
	str, err := unmarshalEnumString(data)
	if err != nil {
		return err
	}
	for _, c := range allShipmentStatuses {
		if c.String() == str {
			*s = c
			return nil
		}
	}
	return unknownEnumError("ShipmentStatus", str)
}

var allShipmentStatuses = []ShipmentStatus{
	Pending, Approved, InTransit, AtDistributionCenter, OutForDelivery,
	Delivered, Cancelled, Failed,
}

// IsTerminal reports whether status admits no further transitions.
func (s ShipmentStatus) IsTerminal() bool {
	return s == Delivered || s == Cancelled || s == Failed
}

// forwardTransitions enumerates the permitted non-abort transitions.
// Cancelled/Failed are handled separately since they're reachable from
// any non-Delivered state.
var forwardTransitions = map[ShipmentStatus][]ShipmentStatus{
	Pending:               {Approved},
	Approved:              {InTransit},
	InTransit:             {AtDistributionCenter, OutForDelivery, Delivered},
	AtDistributionCenter:  {OutForDelivery},
	OutForDelivery:        {Delivered},
}

func isPermittedTransition(from, to ShipmentStatus) bool {
	if to == Cancelled || to == Failed {
		return from != Delivered
	}
	for _, candidate := range forwardTransitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

// Shipment tracks the physical movement of supplies to a need.
type Shipment struct {
	EntityBase

	TrackingCode string
	status       ShipmentStatus
	Priority     PriorityLevel
	NeedID       *uuid.UUID
	SupplyID     *uuid.UUID
	Origin       Location
	Destination  Location
	Quantity     int64

	ScheduledDispatch *time.Time
	ActualDispatch    *time.Time
	EstimatedArrival  *time.Time
	ActualDelivery    *time.Time

	Carrier   string
	Vehicle   string
	Driver    string
	Recipient string

	Notes           string
	ProofOfDelivery string
}

// NewShipment constructs a Shipment in the Pending state with a freshly
// generated tracking code, validating quantity and origin/destination.
func NewShipment(now time.Time, origin, destination Location, quantity int64, priority PriorityLevel) (*Shipment, error) {
	if quantity <= 0 {
		return nil, NewInvalidArgument("NewShipment", errPositive("quantity", quantity))
	}
	if origin.IsUnknown() && destination.IsUnknown() {
		return nil, NewInvalidArgument("NewShipment", fmt.Errorf("origin and destination cannot both be unknown"))
	}

	return &Shipment{
		EntityBase:   NewEntityBase(now),
		TrackingCode: GenerateTrackingCode(now),
		status:       Pending,
		Priority:     priority,
		Origin:       origin,
		Destination:  destination,
		Quantity:     quantity,
	}, nil
}

// GenerateTrackingCode builds a DL-<UTC yyyyMMddHHmmss>-<6 upper-hex>
// display code. Collisions are tolerated — this is not a uniqueness key,
// the entity's identifier is.
func GenerateTrackingCode(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:6]
	return fmt.Sprintf("DL-%s-%s", now.UTC().Format("20060102150405"), suffix)
}

// Status returns the current state. There is no public setter — callers
// must go through Transition, which enforces §4.5's state table.
func (s *Shipment) Status() ShipmentStatus { return s.status }

// Active reports whether the shipment is not in a terminal state.
func (s *Shipment) Active() bool {
	return !s.status.IsTerminal()
}

// Delayed reports whether an active shipment's estimated arrival has
// already passed.
func (s *Shipment) Delayed(now time.Time) bool {
	return s.Active() && s.EstimatedArrival != nil && s.EstimatedArrival.Before(now)
}

// Transition attempts to move the shipment to the given status. Returns
// false and leaves state unchanged if the transition is not permitted.
// Entering InTransit sets ActualDispatch only if unset (first-entry
// wins); entering Delivered always sets ActualDelivery.
func (s *Shipment) Transition(to ShipmentStatus, now time.Time) bool {
	if !isPermittedTransition(s.status, to) {
		return false
	}

	if to == InTransit && s.ActualDispatch == nil {
		dispatched := now
		s.ActualDispatch = &dispatched
	}
	if to == Delivered {
		delivered := now
		s.ActualDelivery = &delivered
	}

	s.status = to
	s.touch(now)
	return true
}

// MarkDeleted soft-deletes the shipment. Idempotent.
func (s *Shipment) MarkDeleted(now time.Time) {
	s.markDeleted(now)
}
