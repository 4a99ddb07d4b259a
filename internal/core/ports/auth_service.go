package ports

import (
	"context"

	"github.com/learnhub/course-platform/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, name, email, password, role string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

// CredentialService mints and verifies signed bearer credentials. Both
// operations are pure computation, safe to call on every request.
type CredentialService interface {
	Issue(user *domain.User) (string, error)
	Verify(token string) (*domain.Identity, error)
}

// CredentialVerifier is the read-only half used by the auth middleware.
type CredentialVerifier interface {
	Verify(token string) (*domain.Identity, error)
}
