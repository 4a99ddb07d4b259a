package ports

import (
	"context"

	"github.com/learnhub/course-platform/internal/core/domain"
)

// CourseRepository defines persistence operations for catalog entries.
type CourseRepository interface {
	Create(ctx context.Context, c *domain.Course) (*domain.Course, error)
	FindByID(ctx context.Context, id string) (*domain.Course, error)
	SetMaterial(ctx context.Context, courseID string, m *domain.Material) (*domain.Course, error)
	ListPublished(ctx context.Context) ([]*domain.Course, error)
}
