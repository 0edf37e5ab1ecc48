package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventKind enumerates the audit event vocabulary from §6.
type EventKind int

const (
	NeedCreated EventKind = iota
	NeedUpdated
	NeedFulfilled
	SupplyCreated
	SupplyUpdated
	SupplyDepleted
	MatchMade
	MatchFailed
	ShipmentCreated
	ShipmentDispatched
	ShipmentDelivered
	ShipmentCancelled
	PanicModeTriggered
	SystemAlert
	UserAction
)

var eventKindNames = [...]string{
	"NeedCreated", "NeedUpdated", "NeedFulfilled",
	"SupplyCreated", "SupplyUpdated", "SupplyDepleted",
	"MatchMade", "MatchFailed",
	"ShipmentCreated", "ShipmentDispatched", "ShipmentDelivered", "ShipmentCancelled",
	"PanicModeTriggered", "SystemAlert", "UserAction",
}

func (k EventKind) String() string {
	if int(k) < 0 || int(k) >= len(eventKindNames) {
		return "Unknown"
	}
	return eventKindNames[k]
}

func (k EventKind) MarshalJSON() ([]byte, error) {
	return marshalEnumString(k.String())
}

func (k *EventKind) UnmarshalJSON(data []byte) error {
	s, err := unmarshalEnumString(data)
	if err != nil {
		return err
	}
	for i, name := range eventKindNames {
		if name == s {
			*k = EventKind(i)
			return nil
		}
	}
	return unknownEnumError("EventKind", s)
}

// MetadataValueKind tags which branch of MetadataValue is populated.
type MetadataValueKind int

const (
	MetaString MetadataValueKind = iota
	MetaInt
	MetaFloat
	MetaBool
	MetaID
)

// MetadataValue is a sum type over {string, int64, float64, bool,
// uuid.UUID} — the audit entry's free-form metadata bag is not allowed
// to carry arbitrary interface{} shapes (§9 Design Notes).
type MetadataValue struct {
	Kind MetadataValueKind

	str string
	i   int64
	f   float64
	b   bool
	id  uuid.UUID
}

func StringValue(s string) MetadataValue  { return MetadataValue{Kind: MetaString, str: s} }
func IntValue(i int64) MetadataValue      { return MetadataValue{Kind: MetaInt, i: i} }
func FloatValue(f float64) MetadataValue  { return MetadataValue{Kind: MetaFloat, f: f} }
func BoolValue(b bool) MetadataValue      { return MetadataValue{Kind: MetaBool, b: b} }
func IDValue(id uuid.UUID) MetadataValue  { return MetadataValue{Kind: MetaID, id: id} }

// String renders the held value for display/logging regardless of kind.
func (v MetadataValue) String() string {
	switch v.Kind {
	case MetaString:
		return v.str
	case MetaInt:
		return fmt.Sprintf("%d", v.i)
	case MetaFloat:
		return fmt.Sprintf("%g", v.f)
	case MetaBool:
		return fmt.Sprintf("%t", v.b)
	case MetaID:
		return v.id.String()
	default:
		return ""
	}
}

// AuditEntry is a structured record accepted by an audit sink (§6).
type AuditEntry struct {
	ID         uuid.UUID
	Timestamp  time.Time
	EventType  EventKind
	Message    string
	EntityID   *uuid.UUID
	EntityType string
	UserID     string
	Priority   *PriorityLevel
	Metadata   map[string]MetadataValue
}

// NewAuditEntry constructs an entry with a fresh ID and the given
// timestamp; Metadata starts nil and is populated via WithMetadata.
func NewAuditEntry(now time.Time, kind EventKind, message string) AuditEntry {
	return AuditEntry{
		ID:        uuid.New(),
		Timestamp: now,
		EventType: kind,
		Message:   message,
	}
}

// WithMetadata returns a copy of the entry with the key/value pair added.
func (e AuditEntry) WithMetadata(key string, value MetadataValue) AuditEntry {
	next := e
	next.Metadata = make(map[string]MetadataValue, len(e.Metadata)+1)
	for k, v := range e.Metadata {
		next.Metadata[k] = v
	}
	next.Metadata[key] = value
	return next
}

// WithEntity returns a copy of the entry with entity linkage set.
func (e AuditEntry) WithEntity(id uuid.UUID, entityType string) AuditEntry {
	next := e
	next.EntityID = &id
	next.EntityType = entityType
	return next
}
