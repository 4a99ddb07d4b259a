package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/learnhub/course-platform/internal/core/domain"
)

// credentialClaims is the signed claim set carried by a bearer credential.
type credentialClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// CredentialService mints and verifies HS256-signed bearer credentials.
// The signing key is injected at construction; there is no process-global
// key state.
type CredentialService struct {
	secret   []byte
	tokenTTL time.Duration
}

func NewCredentialService(secret string, tokenTTL time.Duration) *CredentialService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &CredentialService{secret: []byte(secret), tokenTTL: tokenTTL}
}

// Issue signs a credential for the given user, expiring after the
// configured TTL. Pure computation, no side effects.
func (s *CredentialService) Issue(user *domain.User) (string, error) {
	now := time.Now().UTC()
	claims := credentialClaims{
		Email: user.Email,
		Role:  string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify validates signature and expiry and returns the identity carried by
// the credential. No claim, identity or role, is read before the signature
// validates. Any failure maps to domain.ErrInvalidCredential.
func (s *CredentialService) Verify(token string) (*domain.Identity, error) {
	claims := &credentialClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidCredential
	}

	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return nil, domain.ErrInvalidCredential
	}
	if claims.Subject == "" {
		return nil, domain.ErrInvalidCredential
	}

	return &domain.Identity{
		SubjectID: claims.Subject,
		Email:     claims.Email,
		Role:      role,
	}, nil
}
