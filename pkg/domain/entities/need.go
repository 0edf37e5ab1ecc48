package entities

import "time"

// PriorityLevel is the discrete, caller-assigned base urgency of a Need.
// Lower numeric value is more urgent; see priority.Manager for the
// continuous effective score derived from this plus aging/deadline/
// completion pressure.
type PriorityLevel int

const (
	Critical PriorityLevel = iota
	High
	Medium
	Low
)

// Numeric returns the base score contribution used by the priority
// manager: Critical=0, High=1, Medium=2, Low=3.
func (p PriorityLevel) Numeric() float64 {
	return float64(p)
}

func (p PriorityLevel) String() string {
	switch p {
	case Critical:
		return "Critical"
	case High:
		return "High"
	case Medium:
		return "Medium"
	case Low:
		return "Low"
	default:
		return "Unknown"
	}
}

// MarshalJSON serializes the level as its string name per §6.
func (p PriorityLevel) MarshalJSON() ([]byte, error) {
	return marshalEnumString(p.String())
}

// UnmarshalJSON parses the level from its string name.
func (p *PriorityLevel) UnmarshalJSON(data []byte) error {
	s, err := unmarshalEnumString(data)
	if err != nil {
		return err
	}
	switch s {
	case "Critical":
		*p = Critical
	case "High":
		*p = High
	case "Medium":
		*p = Medium
	case "Low":
		*p = Low
	default:
		return unknownEnumError("PriorityLevel", s)
	}
	return nil
}

// Need represents an outstanding request for supplies.
type Need struct {
	EntityBase

	Title       string
	Description string
	Category    string
	Priority    PriorityLevel
	Required    int64
	Fulfilled   int64
	Unit        string
	Location    Location
	Requester   string
	Contact     string
	Deadline    *time.Time
	Notes       string
}

// NewNeed constructs a Need, validating that required is positive and
// title/category are non-empty.
func NewNeed(now time.Time, title, category string, priority PriorityLevel, required int64, unit string, loc Location) (*Need, error) {
	if title == "" {
		return nil, NewInvalidArgument("NewNeed", errRequired("title"))
	}
	if category == "" {
		return nil, NewInvalidArgument("NewNeed", errRequired("category"))
	}
	if required <= 0 {
		return nil, NewInvalidArgument("NewNeed", errPositive("required", required))
	}

	return &Need{
		EntityBase: NewEntityBase(now),
		Title:      title,
		Category:   category,
		Priority:   priority,
		Required:   required,
		Unit:       unit,
		Location:   loc,
	}, nil
}

// Remaining is max(0, required - fulfilled).
func (n *Need) Remaining() int64 {
	r := n.Required - n.Fulfilled
	if r < 0 {
		return 0
	}
	return r
}

// IsFulfilled reports whether fulfilled >= required.
func (n *Need) IsFulfilled() bool {
	return n.Fulfilled >= n.Required
}

// FulfillmentPercent is min(100, fulfilled/required*100). Required is
// always positive for a validly constructed Need.
func (n *Need) FulfillmentPercent() float64 {
	if n.Required <= 0 {
		return 0
	}
	pct := float64(n.Fulfilled) / float64(n.Required) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// AddFulfilledQuantity clamps fulfilled at required. Returns false
// (no-op) if q is not positive.
func (n *Need) AddFulfilledQuantity(q int64, now time.Time) bool {
	if q <= 0 {
		return false
	}
	n.Fulfilled += q
	if n.Fulfilled > n.Required {
		n.Fulfilled = n.Required
	}
	n.touch(now)
	return true
}

// ReduceFulfilledQuantity subtracts q from fulfilled, floored at zero.
// Used only by the matching engine's rollback path — it is not part of
// the public mutator contract in §4.3, but must behave identically to a
// partial undo of AddFulfilledQuantity.
func (n *Need) ReduceFulfilledQuantity(q int64, now time.Time) {
	n.Fulfilled -= q
	if n.Fulfilled < 0 {
		n.Fulfilled = 0
	}
	n.touch(now)
}

// MarkDeleted soft-deletes the need. Idempotent.
func (n *Need) MarkDeleted(now time.Time) {
	n.markDeleted(now)
}
