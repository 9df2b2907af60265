package queue

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/shiftline/staff-scheduler/internal/core/domain"
)

type recordingService struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
	done    chan struct{}
	want    int
}

func newRecordingService(want int) *recordingService {
	return &recordingService{done: make(chan struct{}), want: want}
}

func (s *recordingService) Record(_ context.Context, entry domain.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	if len(s.entries) == s.want {
		close(s.done)
	}
	return nil
}

func (s *recordingService) wait(t *testing.T) []domain.AuditEntry {
	t.Helper()
	select {
	case <-s.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %d entries", s.want)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.AuditEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

func TestDispatcher_DeliversAllEntries(t *testing.T) {
	svc := newRecordingService(3)
	d := NewDispatcher(2, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(domain.AuditEntry{ActorID: "a1", Action: domain.AuditLogin})
	d.Enqueue(domain.AuditEntry{ActorID: "a2", Action: domain.AuditShiftCreated})
	d.Enqueue(domain.AuditEntry{ActorID: "a1", Action: domain.AuditShiftUpdated})

	got := svc.wait(t)
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
}

func TestDispatcher_PreservesPerActorOrder(t *testing.T) {
	const n = 50
	svc := newRecordingService(n)
	d := NewDispatcher(4, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < n; i++ {
		d.Enqueue(domain.AuditEntry{ActorID: "a1", Action: domain.AuditShiftUpdated, Subject: strconv.Itoa(i)})
	}

	got := svc.wait(t)
	last := -1
	for _, e := range got {
		seq, err := strconv.Atoi(e.Subject)
		if err != nil {
			t.Fatalf("bad subject %q: %v", e.Subject, err)
		}
		if seq <= last {
			t.Fatalf("order violated: %d after %d", seq, last)
		}
		last = seq
	}
}

func TestDispatcher_ShardIsStable(t *testing.T) {
	d := NewDispatcher(4, newRecordingService(1), zerolog.Nop())
	first := d.shardIndex("actor-42")
	for i := 0; i < 10; i++ {
		if d.shardIndex("actor-42") != first {
			t.Fatalf("shard index not deterministic")
		}
	}
}
