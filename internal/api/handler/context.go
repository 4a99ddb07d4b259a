package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/learnhub/course-platform/internal/core/domain"
)

// ctxIdentity extracts the verified identity injected by the Auth middleware.
// Its presence proves the middleware ran; a handler reached without it is a
// wiring bug, reported as 401 rather than a panic.
func ctxIdentity(c echo.Context) (*domain.Identity, error) {
	identity, ok := c.Get("identity").(*domain.Identity)
	if !ok || identity == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return identity, nil
}
