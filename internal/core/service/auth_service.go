package service

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/learnhub/course-platform/internal/core/domain"
	"github.com/learnhub/course-platform/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	repo        ports.UserRepository
	credentials ports.CredentialService
}

func NewAuthService(repo ports.UserRepository, credentials ports.CredentialService) *AuthService {
	return &AuthService{repo: repo, credentials: credentials}
}

func (s *AuthService) Register(ctx context.Context, name, email, password, role string) (*domain.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if role == "" {
		role = string(domain.RoleStudent)
	}
	parsed, err := domain.ParseRole(role)
	if err != nil {
		return nil, err
	}
	// Admin accounts are provisioned out of band, never self-registered.
	if parsed == domain.RoleAdmin {
		return nil, domain.ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         parsed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return s.repo.Create(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.credentials.Issue(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}
