package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/learnhub/course-platform/internal/core/domain"
	"github.com/learnhub/course-platform/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis) for payment events.
type DedupChecker interface {
	IsDuplicate(ctx context.Context, subjectID, courseID, reference, status string) (bool, error)
	Mark(ctx context.Context, subjectID, courseID, reference, status string) error
}

type paymentService struct {
	ledger ports.EnrollmentService
	dedup  DedupChecker
	log    zerolog.Logger
}

// NewPaymentService returns a PaymentService that applies gateway events to
// the ledger. Events are delivered at least once: a Redis dedup key skips
// exact redeliveries, and the ledger operations themselves are idempotent,
// so a dedup miss on retry is harmless.
func NewPaymentService(ledger ports.EnrollmentService, dedup DedupChecker, log zerolog.Logger) ports.PaymentService {
	return &paymentService{ledger: ledger, dedup: dedup, log: log}
}

func (s *paymentService) Process(ctx context.Context, in ports.PaymentEventInput) error {
	isDup, err := s.dedup.IsDuplicate(ctx, in.SubjectID, in.CourseID, in.Reference, in.Status)
	if err != nil {
		s.log.Warn().Err(err).
			Str("reference", in.Reference).
			Msg("dedup check failed, processing anyway")
	} else if isDup {
		s.log.Debug().
			Str("subject_id", in.SubjectID).
			Str("course_id", in.CourseID).
			Str("reference", in.Reference).
			Msg("duplicate payment event skipped")
		return nil
	}

	if markErr := s.dedup.Mark(ctx, in.SubjectID, in.CourseID, in.Reference, in.Status); markErr != nil {
		s.log.Warn().Err(markErr).Str("reference", in.Reference).Msg("failed to set dedup key")
	}

	switch domain.PaymentStatus(in.Status) {
	case domain.PaymentCompleted:
		_, err = s.ledger.ConfirmPayment(ctx, in.SubjectID, in.CourseID, in.Reference)
	case domain.PaymentFailed:
		_, err = s.ledger.FailPayment(ctx, in.SubjectID, in.CourseID)
	default:
		return fmt.Errorf("process payment event: unsupported status %q", in.Status)
	}
	if err != nil {
		return fmt.Errorf("process payment event: %w", err)
	}

	s.log.Info().
		Str("subject_id", in.SubjectID).
		Str("course_id", in.CourseID).
		Str("status", in.Status).
		Str("provider", in.Provider).
		Msg("payment event processed")

	return nil
}
