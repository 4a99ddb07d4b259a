package ports

import (
	"context"
	"io"

	"github.com/learnhub/course-platform/internal/core/domain"
)

// ContentStore is the resource-serving collaborator behind the content
// access gate. Open re-verifies that the object exists and matches the
// declared content type before any byte is served; on any mismatch or
// internal error it returns an error, never a default object.
type ContentStore interface {
	Open(ctx context.Context, courseID string, m *domain.Material) (io.ReadSeekCloser, error)
}
