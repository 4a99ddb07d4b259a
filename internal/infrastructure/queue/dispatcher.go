package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/learnhub/course-platform/internal/api/metrics"
	"github.com/learnhub/course-platform/internal/core/domain"
	"github.com/learnhub/course-platform/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes payment events to a fixed set of workers using
// consistent hashing on the (subject, course) pair, guaranteeing
// per-enrollment event ordering under at-least-once delivery.
type Dispatcher struct {
	workers []chan ports.PaymentEventInput
	service ports.PaymentService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.PaymentService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.PaymentEventInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.PaymentEventInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an event to the worker responsible for its enrollment pair.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(event ports.PaymentEventInput) {
	i := d.shardIndex(event.SubjectID + ":" + event.CourseID)
	d.workers[i] <- event
	metrics.PaymentQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
}

// EnqueueBatch enqueues multiple events preserving per-enrollment ordering.
func (d *Dispatcher) EnqueueBatch(events []ports.PaymentEventInput) {
	for _, e := range events {
		d.Enqueue(e)
	}
}

// shardIndex maps an enrollment pair deterministically to a worker index.
func (d *Dispatcher) shardIndex(pair string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(pair))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.PaymentEventInput) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.PaymentQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))

			if err := d.service.Process(ctx, event); err != nil {
				metrics.PaymentErrorsTotal.WithLabelValues(errorReason(err)).Inc()
				d.log.Error().Err(err).
					Str("subject_id", event.SubjectID).
					Str("course_id", event.CourseID).
					Str("reference", event.Reference).
					Int("worker_id", id).
					Msg("payment event processing failed")
				continue
			}
			metrics.PaymentsProcessedTotal.WithLabelValues(event.Status).Inc()
		}
	}
}

func errorReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrEnrollmentNotFound):
		return "enrollment_not_found"
	case errors.Is(err, domain.ErrCourseNotFound):
		return "course_not_found"
	default:
		return "process_failed"
	}
}
