package ports

import (
	"context"

	"github.com/learnhub/course-platform/internal/core/domain"
)

// EnrollmentService is the ledger: the sole authority on enrollment and
// payment state. Every consumer (enrollment routes, the payment pipeline,
// the content access gate) goes through it, never around it.
type EnrollmentService interface {
	// Enroll creates a row in active/pending, or reactivates a row whose
	// previous attempt was cancelled or failed. Fails with
	// domain.ErrAlreadyEnrolled when an active, payment-completed row exists.
	Enroll(ctx context.Context, subjectID, courseID string) (*domain.Enrollment, error)

	// ConfirmPayment transitions payment to completed and status to active.
	// Idempotent: confirming an already-completed payment returns the
	// current row unchanged.
	ConfirmPayment(ctx context.Context, subjectID, courseID, reference string) (*domain.Enrollment, error)

	// FailPayment marks the payment failed. The row is kept as an audit
	// trail, and a completed payment is never reverted.
	FailPayment(ctx context.Context, subjectID, courseID string) (*domain.Enrollment, error)

	// UpdateProgress clamps progress to [0,100] and completes the
	// enrollment at 100. Rejected once the enrollment is cancelled.
	UpdateProgress(ctx context.Context, subjectID, courseID string, progress int) (*domain.Enrollment, error)

	Cancel(ctx context.Context, subjectID, courseID string) (*domain.Enrollment, error)

	// HasActivePaidAccess is the single predicate the content access gate
	// consults: true iff a row exists with status=active and
	// payment_status=completed.
	HasActivePaidAccess(ctx context.Context, subjectID, courseID string) (bool, error)

	ListBySubject(ctx context.Context, subjectID string) ([]*domain.Enrollment, error)
	ListByCourse(ctx context.Context, courseID string) ([]*domain.Enrollment, error)
}
