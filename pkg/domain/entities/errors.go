package entities

import "github.com/pkg/errors"

// Kind classifies a domain-level failure. Mutators and state-machine
// transitions never surface these directly (they return false); Kind is
// for the smaller set of call sites that do raise: validated
// constructors, scoring-input validation, and matching-pass aborts.
type Kind int

const (
	// InvalidArgument marks a null/absent collection or invalid
	// constructor input. Surfaced to the caller.
	InvalidArgument Kind = iota
	// PreconditionFailed marks a quantity-mutator precondition miss.
	// Never actually wrapped in a DomainError — mutators return false
	// instead — but named here so callers and logs have a single
	// vocabulary for every failure kind in §7.
	PreconditionFailed
	// InvalidStateTransition marks a rejected shipment transition.
	InvalidStateTransition
	// MatchingAborted marks an unexpected error during a matching pass
	// that triggered a full rollback.
	MatchingAborted
	// SinkIOFailure marks an audit file write failure. Swallowed by
	// design at the sink; never propagated to engine callers.
	SinkIOFailure
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "InvalidArgument"
	case PreconditionFailed:
		return "PreconditionFailed"
	case InvalidStateTransition:
		return "InvalidStateTransition"
	case MatchingAborted:
		return "MatchingAborted"
	case SinkIOFailure:
		return "SinkIOFailure"
	default:
		return "Unknown"
	}
}

// DomainError associates a Kind and an operation name with an underlying
// cause, so callers can branch on Kind without string-matching messages.
type DomainError struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *DomainError) Error() string {
	if e.Err == nil {
		return e.Kind.String() + ": " + e.Op
	}
	return e.Kind.String() + ": " + e.Op + ": " + e.Err.Error()
}

func (e *DomainError) Unwrap() error { return e.Err }

// NewInvalidArgument builds an InvalidArgument DomainError with a stack
// trace attached via pkg/errors, since these surface to callers who may
// want to log the origin of a bad scoring/matching input.
func NewInvalidArgument(op string, cause error) error {
	return &DomainError{Kind: InvalidArgument, Op: op, Err: errors.WithStack(cause)}
}

// NewMatchingAborted builds a MatchingAborted DomainError carrying a
// stack trace, since an abort is the one failure mode operators need to
// diagnose after the fact.
func NewMatchingAborted(op string, cause error) error {
	return &DomainError{Kind: MatchingAborted, Op: op, Err: errors.WithStack(cause)}
}
