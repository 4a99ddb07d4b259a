package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/learnhub/course-platform/internal/core/domain"
	"github.com/learnhub/course-platform/internal/core/ports"
)

// CourseService implements catalog management. Role checks happen in the
// middleware chain; ownership checks happen here.
type CourseService struct {
	repo   ports.CourseRepository
	logger zerolog.Logger
}

func NewCourseService(repo ports.CourseRepository, logger zerolog.Logger) *CourseService {
	return &CourseService{repo: repo, logger: logger}
}

func (s *CourseService) Create(ctx context.Context, actor *domain.Identity, input ports.CreateCourseInput) (*domain.Course, error) {
	status := domain.CourseDraft
	if input.Publish {
		status = domain.CoursePublished
	}

	now := time.Now().UTC()
	course := &domain.Course{
		Title:        input.Title,
		Description:  input.Description,
		Price:        input.Price,
		Currency:     input.Currency,
		Status:       status,
		InstructorID: actor.SubjectID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, course)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("course_id", created.ID).
		Str("instructor_id", actor.SubjectID).
		Str("status", string(created.Status)).
		Msg("course created")

	return created, nil
}

func (s *CourseService) AttachMaterial(ctx context.Context, actor *domain.Identity, input ports.AttachMaterialInput) (*domain.Course, error) {
	course, err := s.repo.FindByID(ctx, input.CourseID)
	if err != nil {
		return nil, err
	}

	// Instructors manage only their own courses; admins manage any.
	if actor.Role == domain.RoleInstructor && course.InstructorID != actor.SubjectID {
		return nil, domain.ErrForbidden
	}

	return s.repo.SetMaterial(ctx, input.CourseID, &domain.Material{
		Filename:    input.Filename,
		ContentType: input.ContentType,
		SizeBytes:   input.SizeBytes,
	})
}

func (s *CourseService) Get(ctx context.Context, id string) (*domain.Course, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CourseService) ListPublished(ctx context.Context) ([]*domain.Course, error) {
	return s.repo.ListPublished(ctx)
}
