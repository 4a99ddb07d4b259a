package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/learnhub/course-platform/internal/core/domain"
	"github.com/learnhub/course-platform/internal/core/ports"
)

// EnrollmentService is the ledger implementation. All enrollment and
// payment state flows through here; the content access gate is a read-only
// consumer via HasActivePaidAccess.
type EnrollmentService struct {
	repo    ports.EnrollmentRepository
	courses ports.CourseRepository
	logger  zerolog.Logger
}

func NewEnrollmentService(repo ports.EnrollmentRepository, courses ports.CourseRepository, logger zerolog.Logger) *EnrollmentService {
	return &EnrollmentService{repo: repo, courses: courses, logger: logger}
}

func (s *EnrollmentService) Enroll(ctx context.Context, subjectID, courseID string) (*domain.Enrollment, error) {
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.Status != domain.CoursePublished {
		return nil, domain.ErrCourseNotFound
	}

	existing, err := s.repo.FindBySubjectAndCourse(ctx, subjectID, courseID)
	switch {
	case err == nil:
		return s.reattempt(ctx, existing)
	case errors.Is(err, domain.ErrEnrollmentNotFound):
		// fall through to create
	default:
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Enrollment{
		SubjectID:      subjectID,
		CourseID:       courseID,
		Status:         domain.EnrollmentActive,
		PaymentStatus:  domain.PaymentPending,
		Progress:       0,
		EnrollmentDate: now,
		UpdatedAt:      now,
	})
	if errors.Is(err, domain.ErrAlreadyEnrolled) {
		// Lost the race against a concurrent enroll for the same pair; the
		// unique index guarantees a single row, so resolve against it.
		existing, findErr := s.repo.FindBySubjectAndCourse(ctx, subjectID, courseID)
		if findErr != nil {
			return nil, err
		}
		return s.reattempt(ctx, existing)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("subject_id", subjectID).
		Str("course_id", courseID).
		Msg("enrollment created")

	return created, nil
}

// reattempt resolves an enroll call that found an existing row: a paid
// active row is a conflict, anything else restarts the payment attempt.
func (s *EnrollmentService) reattempt(ctx context.Context, existing *domain.Enrollment) (*domain.Enrollment, error) {
	if existing.GrantsAccess() {
		return nil, domain.ErrAlreadyEnrolled
	}
	return s.repo.Reactivate(ctx, existing.SubjectID, existing.CourseID, time.Now().UTC())
}

func (s *EnrollmentService) ConfirmPayment(ctx context.Context, subjectID, courseID, reference string) (*domain.Enrollment, error) {
	existing, err := s.repo.FindBySubjectAndCourse(ctx, subjectID, courseID)
	if err != nil {
		return nil, err
	}
	if existing.PaymentSettled() {
		s.logger.Debug().
			Str("subject_id", subjectID).
			Str("course_id", courseID).
			Str("reference", reference).
			Msg("payment already completed, confirm is a no-op")
		return existing, nil
	}

	updated, err := s.repo.CompletePayment(ctx, subjectID, courseID, reference, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("subject_id", subjectID).
		Str("course_id", courseID).
		Str("reference", reference).
		Msg("payment confirmed")

	return updated, nil
}

func (s *EnrollmentService) FailPayment(ctx context.Context, subjectID, courseID string) (*domain.Enrollment, error) {
	// The repository applies the failure conditionally: a completed payment
	// is never reverted, the current row comes back unchanged instead.
	updated, err := s.repo.FailPayment(ctx, subjectID, courseID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if updated.PaymentStatus == domain.PaymentFailed {
		s.logger.Info().
			Str("subject_id", subjectID).
			Str("course_id", courseID).
			Msg("payment failed")
	}
	return updated, nil
}

func (s *EnrollmentService) UpdateProgress(ctx context.Context, subjectID, courseID string, progress int) (*domain.Enrollment, error) {
	existing, err := s.repo.FindBySubjectAndCourse(ctx, subjectID, courseID)
	if err != nil {
		return nil, err
	}
	if existing.Status == domain.EnrollmentCancelled {
		return nil, domain.ErrEnrollmentCancelled
	}

	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}

	now := time.Now().UTC()
	var completedAt *time.Time
	if progress == 100 {
		completedAt = &now
	}

	return s.repo.UpdateProgress(ctx, subjectID, courseID, progress, completedAt, now)
}

func (s *EnrollmentService) Cancel(ctx context.Context, subjectID, courseID string) (*domain.Enrollment, error) {
	cancelled, err := s.repo.Cancel(ctx, subjectID, courseID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("subject_id", subjectID).
		Str("course_id", courseID).
		Msg("enrollment cancelled")

	return cancelled, nil
}

func (s *EnrollmentService) HasActivePaidAccess(ctx context.Context, subjectID, courseID string) (bool, error) {
	e, err := s.repo.FindBySubjectAndCourse(ctx, subjectID, courseID)
	if errors.Is(err, domain.ErrEnrollmentNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return e.GrantsAccess(), nil
}

func (s *EnrollmentService) ListBySubject(ctx context.Context, subjectID string) ([]*domain.Enrollment, error) {
	return s.repo.ListBySubject(ctx, subjectID)
}

func (s *EnrollmentService) ListByCourse(ctx context.Context, courseID string) ([]*domain.Enrollment, error) {
	return s.repo.ListByCourse(ctx, courseID)
}
