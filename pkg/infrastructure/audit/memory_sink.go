// Package audit provides the reference AuditSink implementation: an
// in-memory, size-bounded ring of entries with synchronous observer
// notification and optional best-effort file persistence.
package audit

import (
	"context"
	"sync"
	"time"

	"github.com/relieflogix/relief/pkg/domain/entities"
	"github.com/relieflogix/relief/pkg/domain/repositories"
)

// defaultMaxInMemoryLogs bounds the in-memory ring; the oldest entry is
// dropped once the bound is reached (§5 Concurrency & Resource Model).
const defaultMaxInMemoryLogs = 1000

// MemorySink is a mutex-protected AuditSink. Safe for concurrent
// appenders (§5). Notification of LogObservers happens
// synchronously within Append, in contrast to the teacher's
// goroutine-dispatched event store, because the dashboard and CLI need
// to observe an entry's effects before Append returns.
type MemorySink struct {
	mu      sync.RWMutex
	entries []entities.AuditEntry
	max     int

	observers []repositories.LogObserver
}

// NewMemorySink constructs a sink bounded at max entries. A max <= 0
// falls back to defaultMaxInMemoryLogs.
func NewMemorySink(max int) *MemorySink {
	if max <= 0 {
		max = defaultMaxInMemoryLogs
	}
	return &MemorySink{max: max}
}

// Subscribe registers a LogObserver notified synchronously after every
// successful append.
func (s *MemorySink) Subscribe(obs repositories.LogObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, obs)
}

// Append records entry, dropping the oldest entry if the sink is at
// capacity, then notifies observers synchronously.
func (s *MemorySink) Append(ctx context.Context, entry entities.AuditEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.entries = append(s.entries, entry)
	if len(s.entries) > s.max {
		s.entries = s.entries[len(s.entries)-s.max:]
	}
	observers := append([]repositories.LogObserver(nil), s.observers...)
	s.mu.Unlock()

	for _, obs := range observers {
		obs.OnLogAdded(entry)
	}
	return nil
}

// Recent returns the n most recent entries, newest last. n <= 0 returns
// the full in-memory window.
func (s *MemorySink) Recent(ctx context.Context, n int) ([]entities.AuditEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 || n > len(s.entries) {
		n = len(s.entries)
	}
	start := len(s.entries) - n
	out := make([]entities.AuditEntry, n)
	copy(out, s.entries[start:])
	return out, nil
}

// ByType returns entries matching kind, oldest first.
func (s *MemorySink) ByType(ctx context.Context, kind entities.EventKind) ([]entities.AuditEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []entities.AuditEntry
	for _, e := range s.entries {
		if e.EventType == kind {
			out = append(out, e)
		}
	}
	return out, nil
}

// ByTimeRange returns entries with from <= Timestamp <= to, oldest
// first.
func (s *MemorySink) ByTimeRange(ctx context.Context, from, to time.Time) ([]entities.AuditEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []entities.AuditEntry
	for _, e := range s.entries {
		if (e.Timestamp.Equal(from) || e.Timestamp.After(from)) && (e.Timestamp.Equal(to) || e.Timestamp.Before(to)) {
			out = append(out, e)
		}
	}
	return out, nil
}

var _ repositories.AuditSink = (*MemorySink)(nil)
