package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/learnhub/course-platform/internal/core/ports"
)

type recordingService struct {
	mu     sync.Mutex
	events []ports.PaymentEventInput
	done   chan struct{}
}

func newRecordingService(expect int) *recordingService {
	return &recordingService{done: make(chan struct{}, expect)}
}

func (s *recordingService) Process(_ context.Context, event ports.PaymentEventInput) error {
	s.mu.Lock()
	s.events = append(s.events, event)
	s.mu.Unlock()
	s.done <- struct{}{}
	return nil
}

func (s *recordingService) wait(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-s.done:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for event %d of %d", i+1, n)
		}
	}
}

func TestDispatcher_ShardConsistency(t *testing.T) {
	d := NewDispatcher(4, nil, zerolog.Nop())

	first := d.shardIndex("user_1:course_1")
	for i := 0; i < 100; i++ {
		if got := d.shardIndex("user_1:course_1"); got != first {
			t.Fatalf("shard index not stable: %d vs %d", got, first)
		}
	}
	if first < 0 || first >= 4 {
		t.Fatalf("shard index out of range: %d", first)
	}
}

func TestDispatcher_ProcessesEvents(t *testing.T) {
	service := newRecordingService(3)
	d := NewDispatcher(2, service, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < 3; i++ {
		d.Enqueue(ports.PaymentEventInput{
			SubjectID: fmt.Sprintf("user_%d", i),
			CourseID:  "course_1",
			Status:    "completed",
			Reference: fmt.Sprintf("pay_%d", i),
		})
	}

	service.wait(t, 3)

	service.mu.Lock()
	defer service.mu.Unlock()
	if len(service.events) != 3 {
		t.Fatalf("expected 3 processed events, got %d", len(service.events))
	}
}

func TestDispatcher_PerPairOrdering(t *testing.T) {
	const n = 20
	service := newRecordingService(n)
	d := NewDispatcher(4, service, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Enqueue before starting workers so channel order is the only order.
	for i := 0; i < n; i++ {
		d.Enqueue(ports.PaymentEventInput{
			SubjectID: "user_1",
			CourseID:  "course_1",
			Status:    "completed",
			Reference: fmt.Sprintf("pay_%03d", i),
		})
	}
	d.Start(ctx)
	service.wait(t, n)

	service.mu.Lock()
	defer service.mu.Unlock()
	for i, event := range service.events {
		if want := fmt.Sprintf("pay_%03d", i); event.Reference != want {
			t.Fatalf("event %d out of order: got %s, want %s", i, event.Reference, want)
		}
	}
}

func TestDispatcher_BatchKeepsPairOnOneWorker(t *testing.T) {
	d := NewDispatcher(8, nil, zerolog.Nop())

	events := []ports.PaymentEventInput{
		{SubjectID: "user_1", CourseID: "course_1", Reference: "a"},
		{SubjectID: "user_1", CourseID: "course_1", Reference: "b"},
	}
	d.EnqueueBatch(events)

	i := d.shardIndex("user_1:course_1")
	if got := len(d.workers[i]); got != 2 {
		t.Fatalf("expected both events on worker %d, found %d", i, got)
	}
}
