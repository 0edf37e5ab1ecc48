package repositories

import (
	"context"
	"time"

	"github.com/relieflogix/relief/pkg/domain/entities"
)

// AuditSink accepts structured audit entries and answers queries over
// them. Implementations must be safe for concurrent appenders (§5); the
// in-memory append path itself performs no I/O, but a file-backed
// implementation's append may block and must swallow write errors
// (SinkIOFailure, §7).
type AuditSink interface {
	Append(ctx context.Context, entry entities.AuditEntry) error
	Recent(ctx context.Context, n int) ([]entities.AuditEntry, error)
	ByType(ctx context.Context, kind entities.EventKind) ([]entities.AuditEntry, error)
	ByTimeRange(ctx context.Context, from, to time.Time) ([]entities.AuditEntry, error)
}

// LogObserver is notified synchronously after each successful append.
type LogObserver interface {
	OnLogAdded(entry entities.AuditEntry)
}

// PanicObserver is notified synchronously once per dashboard snapshot
// when the panic set is non-empty.
type PanicObserver interface {
	OnPanicModeTriggered(panicNeeds []*entities.Need)
}
