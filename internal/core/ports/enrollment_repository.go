package ports

import (
	"context"
	"time"

	"github.com/learnhub/course-platform/internal/core/domain"
)

// EnrollmentRepository defines persistence operations for enrollment rows.
//
// The (subject_id, course_id) pair is the primary key, backed by a unique
// index so concurrent Create calls for the same pair cannot produce
// duplicates. The payment mutators are conditional updates evaluated
// atomically at the storage layer: CompletePayment and FailPayment both
// leave an already-completed payment untouched and return the current row.
type EnrollmentRepository interface {
	Create(ctx context.Context, e *domain.Enrollment) (*domain.Enrollment, error)
	FindBySubjectAndCourse(ctx context.Context, subjectID, courseID string) (*domain.Enrollment, error)
	ListBySubject(ctx context.Context, subjectID string) ([]*domain.Enrollment, error)
	ListByCourse(ctx context.Context, courseID string) ([]*domain.Enrollment, error)

	// Reactivate resets an existing row to active/pending for a fresh
	// payment attempt (re-enrollment after cancellation or failed payment).
	Reactivate(ctx context.Context, subjectID, courseID string, at time.Time) (*domain.Enrollment, error)

	CompletePayment(ctx context.Context, subjectID, courseID, reference string, at time.Time) (*domain.Enrollment, error)
	FailPayment(ctx context.Context, subjectID, courseID string, at time.Time) (*domain.Enrollment, error)

	UpdateProgress(ctx context.Context, subjectID, courseID string, progress int, completedAt *time.Time, at time.Time) (*domain.Enrollment, error)
	Cancel(ctx context.Context, subjectID, courseID string, at time.Time) (*domain.Enrollment, error)
}
