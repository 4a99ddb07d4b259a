package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/learnhub/course-platform/internal/api/metrics"
	"github.com/learnhub/course-platform/internal/core/domain"
	"github.com/learnhub/course-platform/internal/core/ports"
)

// ContentHandler is the access gate in front of paid course material. Every
// decision is made fresh per request against the ledger; nothing is cached
// and nothing is inferred from the credential beyond the subject identity.
type ContentHandler struct {
	ledger  ports.EnrollmentService
	courses ports.CourseService
	store   ports.ContentStore
}

func NewContentHandler(ledger ports.EnrollmentService, courses ports.CourseService, store ports.ContentStore) *ContentHandler {
	return &ContentHandler{ledger: ledger, courses: courses, store: store}
}

// Serve handles GET /v1/courses/:course_id/material.
//
// The checks run strictly in order: identity, entitlement, existence. A
// ledger error denies access; it never degrades to an allow.
//
// @Summary      Download the material of an enrolled, paid course
// @Tags         content
// @Produce      octet-stream
// @Security     BearerAuth
// @Param        course_id  path  string  true   "Course ID"
// @Param        token      query string  false  "Bearer credential for clients that cannot set headers"
// @Success      200  {file}    file
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/courses/{course_id}/material [get]
func (h *ContentHandler) Serve(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	courseID := c.Param("course_id")
	if courseID == "" {
		metrics.AccessDecisionsTotal.WithLabelValues("deny", "bad_request").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "missing course id")
	}

	allowed, err := h.ledger.HasActivePaidAccess(c.Request().Context(), identity.SubjectID, courseID)
	if err != nil {
		metrics.AccessDecisionsTotal.WithLabelValues("deny", "internal").Inc()
		return fmt.Errorf("entitlement check: %w", err)
	}
	if !allowed {
		metrics.AccessDecisionsTotal.WithLabelValues("deny", "no_entitlement").Inc()
		return domain.ErrForbidden
	}

	course, err := h.courses.Get(c.Request().Context(), courseID)
	if err != nil {
		metrics.AccessDecisionsTotal.WithLabelValues("deny", "not_found").Inc()
		return err
	}
	if course.Material == nil {
		metrics.AccessDecisionsTotal.WithLabelValues("deny", "not_found").Inc()
		return domain.ErrMaterialNotFound
	}

	rc, err := h.store.Open(c.Request().Context(), course.ID, course.Material)
	if err != nil {
		if errors.Is(err, domain.ErrMaterialNotFound) {
			metrics.AccessDecisionsTotal.WithLabelValues("deny", "not_found").Inc()
			return err
		}
		metrics.AccessDecisionsTotal.WithLabelValues("deny", "internal").Inc()
		return fmt.Errorf("open material: %w", err)
	}
	defer rc.Close()

	metrics.AccessDecisionsTotal.WithLabelValues("allow", "ok").Inc()

	c.Response().Header().Set(echo.HeaderContentType, course.Material.ContentType)
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, course.Material.Filename))

	// ServeContent handles range requests, which media players rely on.
	http.ServeContent(c.Response(), c.Request(), course.Material.Filename, time.Time{}, rc)
	return nil
}
