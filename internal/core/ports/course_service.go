package ports

import (
	"context"

	"github.com/learnhub/course-platform/internal/core/domain"
)

// CreateCourseInput carries the data needed to create a catalog entry.
type CreateCourseInput struct {
	Title       string
	Description string
	Price       float64
	Currency    string
	Publish     bool
}

// AttachMaterialInput registers the protected asset for a course.
type AttachMaterialInput struct {
	CourseID    string
	Filename    string
	ContentType string
	SizeBytes   int64
}

// CourseService defines management operations on the catalog. Callers are
// already authenticated and role-checked by the middleware chain; the
// service additionally enforces instructor ownership.
type CourseService interface {
	Create(ctx context.Context, actor *domain.Identity, input CreateCourseInput) (*domain.Course, error)
	AttachMaterial(ctx context.Context, actor *domain.Identity, input AttachMaterialInput) (*domain.Course, error)
	Get(ctx context.Context, id string) (*domain.Course, error)
	ListPublished(ctx context.Context) ([]*domain.Course, error)
}
