package audit

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/relieflogix/relief/pkg/domain/entities"
)

func TestMemorySink_AppendAndRecent(t *testing.T) {
	sink := NewMemorySink(10)
	now := time.Now()

	for i := 0; i < 3; i++ {
		entry := entities.NewAuditEntry(now.Add(time.Duration(i)*time.Minute), entities.SystemAlert, "test")
		if err := sink.Append(context.Background(), entry); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	recent, err := sink.Recent(context.Background(), 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(recent))
	}
}

func TestMemorySink_BoundedDropsOldest(t *testing.T) {
	sink := NewMemorySink(2)
	now := time.Now()

	for i := 0; i < 5; i++ {
		entry := entities.NewAuditEntry(now.Add(time.Duration(i)*time.Minute), entities.SystemAlert, "test")
		entry = entry.WithMetadata("seq", entities.IntValue(int64(i)))
		if err := sink.Append(context.Background(), entry); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	all, err := sink.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected bound of 2, got %d", len(all))
	}
	if all[0].Metadata["seq"].String() != "3" || all[1].Metadata["seq"].String() != "4" {
		t.Errorf("expected the two newest entries retained, got seq=%s,%s", all[0].Metadata["seq"], all[1].Metadata["seq"])
	}
}

func TestMemorySink_ByType(t *testing.T) {
	sink := NewMemorySink(10)
	now := time.Now()
	sink.Append(context.Background(), entities.NewAuditEntry(now, entities.MatchMade, "matched"))
	sink.Append(context.Background(), entities.NewAuditEntry(now, entities.SystemAlert, "alert"))

	matches, err := sink.ByType(context.Background(), entities.MatchMade)
	if err != nil {
		t.Fatalf("ByType: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 MatchMade entry, got %d", len(matches))
	}
}

func TestMemorySink_ByTimeRange(t *testing.T) {
	sink := NewMemorySink(10)
	base := time.Now()
	sink.Append(context.Background(), entities.NewAuditEntry(base, entities.SystemAlert, "t0"))
	sink.Append(context.Background(), entities.NewAuditEntry(base.Add(time.Hour), entities.SystemAlert, "t1"))
	sink.Append(context.Background(), entities.NewAuditEntry(base.Add(2*time.Hour), entities.SystemAlert, "t2"))

	inRange, err := sink.ByTimeRange(context.Background(), base.Add(30*time.Minute), base.Add(90*time.Minute))
	if err != nil {
		t.Fatalf("ByTimeRange: %v", err)
	}
	if len(inRange) != 1 || inRange[0].Message != "t1" {
		t.Errorf("expected only t1 in range, got %+v", inRange)
	}
}

func TestMemorySink_ObserverNotifiedSynchronously(t *testing.T) {
	sink := NewMemorySink(10)
	var seen entities.AuditEntry
	sink.Subscribe(observerFunc(func(e entities.AuditEntry) { seen = e }))

	entry := entities.NewAuditEntry(time.Now(), entities.SystemAlert, "hello")
	if err := sink.Append(context.Background(), entry); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if seen.Message != "hello" {
		t.Errorf("expected observer to see the appended entry synchronously, got %+v", seen)
	}
}

func TestFileBackedSink_PersistsJSONLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "audit.jsonl")

	sink := NewFileBackedSink(NewMemorySink(10), path)
	now := time.Now()
	if err := sink.Append(context.Background(), entities.NewAuditEntry(now, entities.SystemAlert, "persisted")); err != nil {
		t.Fatalf("Append: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty audit log file")
	}
}

type observerFunc func(entities.AuditEntry)

func (f observerFunc) OnLogAdded(entry entities.AuditEntry) { f(entry) }
