package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/learnhub/course-platform/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, errorResponse) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid envelope: %v", err)
	}
	return rec.Code, resp
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantKind string
	}{
		{"invalid credential", domain.ErrInvalidCredential, http.StatusUnauthorized, "unauthorized"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"course not found", domain.ErrCourseNotFound, http.StatusNotFound, "not_found"},
		{"material not found", domain.ErrMaterialNotFound, http.StatusNotFound, "not_found"},
		{"already enrolled", domain.ErrAlreadyEnrolled, http.StatusConflict, "conflict"},
		{"user exists", domain.ErrUserExists, http.StatusConflict, "conflict"},
		{"enrollment cancelled", domain.ErrEnrollmentCancelled, http.StatusUnprocessableEntity, "validation_failed"},
		{"invalid role", domain.ErrInvalidRole, http.StatusBadRequest, "bad_request"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, resp := renderError(t, tc.err)
			if code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, code)
			}
			if resp.Error != tc.wantKind {
				t.Fatalf("expected kind %q, got %q", tc.wantKind, resp.Error)
			}
			if resp.Message == "" {
				t.Fatalf("message must not be empty")
			}
		})
	}
}

func TestErrorHandler_ScrubsInternalErrors(t *testing.T) {
	code, resp := renderError(t, errors.New("dial tcp 10.0.0.5:27017: connection refused"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if resp.Error != "internal" || resp.Message != "internal server error" {
		t.Fatalf("internal details leaked: %+v", resp)
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	code, resp := renderError(t, echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded"))
	if code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", code)
	}
	if resp.Error != "rate_limited" {
		t.Fatalf("expected kind rate_limited, got %q", resp.Error)
	}
}
