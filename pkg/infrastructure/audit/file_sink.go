package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"sync"

	"github.com/relieflogix/relief/pkg/domain/entities"
	"github.com/relieflogix/relief/pkg/domain/repositories"
)

// FileBackedSink wraps a MemorySink and best-effort persists every
// appended entry as a line of JSON to an append-only log file. Write
// failures are swallowed (SinkIOFailure, §7) and only logged — a
// struggling disk must never abort a matching pass or dashboard
// snapshot.
type FileBackedSink struct {
	*MemorySink

	path string
	mu   sync.Mutex
	log  *slog.Logger
}

// NewFileBackedSink wraps mem and records path. The file is not touched
// here; each Append opens (or creates) it for appending.
func NewFileBackedSink(mem *MemorySink, path string) *FileBackedSink {
	return &FileBackedSink{MemorySink: mem, path: path, log: slog.Default()}
}

// WithLogger returns a copy of the sink using the given logger.
func (f *FileBackedSink) WithLogger(l *slog.Logger) *FileBackedSink {
	return &FileBackedSink{MemorySink: f.MemorySink, path: f.path, log: l}
}

// Append delegates to the wrapped MemorySink, then best-effort persists
// the entry to disk.
func (f *FileBackedSink) Append(ctx context.Context, entry entities.AuditEntry) error {
	if err := f.MemorySink.Append(ctx, entry); err != nil {
		return err
	}
	f.persist(entry)
	return nil
}

func (f *FileBackedSink) persist(entry entities.AuditEntry) {
	data, err := json.Marshal(entry)
	if err != nil {
		f.log.Warn("audit entry marshal failed", "error", err)
		return
	}
	data = append(data, '\n')

	f.mu.Lock()
	defer f.mu.Unlock()

	file, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		f.log.Warn("audit log open failed", "path", f.path, "error", err)
		return
	}
	defer file.Close()

	if _, err := file.Write(data); err != nil {
		f.log.Warn("audit log write failed", "path", f.path, "error", err)
	}
}

var _ repositories.AuditSink = (*FileBackedSink)(nil)
