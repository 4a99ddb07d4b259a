package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/learnhub/course-platform/internal/api/metrics"
	"github.com/learnhub/course-platform/internal/core/domain"
	"github.com/learnhub/course-platform/internal/core/ports"
)

// EnrollmentHandler exposes the student-facing enrollment operations. The
// subject is always taken from the verified identity, never from the
// payload: a student can only act on their own enrollments.
type EnrollmentHandler struct {
	ledger ports.EnrollmentService
}

func NewEnrollmentHandler(ledger ports.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{ledger: ledger}
}

type enrollRequest struct {
	CourseID string `json:"course_id" validate:"required"`
}

type progressRequest struct {
	Progress int `json:"progress" validate:"gte=0,lte=100"`
}

type enrollmentResponse struct {
	Enrollment *domain.Enrollment `json:"enrollment"`
}

type enrollmentListResponse struct {
	Enrollments []*domain.Enrollment `json:"enrollments"`
	Count       int                  `json:"count"`
}

// Create handles POST /v1/enrollments.
//
// @Summary      Enroll the authenticated subject in a course
// @Tags         enrollments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      enrollRequest  true  "Course to enroll in"
// @Success      201   {object}  enrollmentResponse
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/enrollments [post]
func (h *EnrollmentHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req enrollRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	enrollment, err := h.ledger.Enroll(c.Request().Context(), identity.SubjectID, req.CourseID)
	if err != nil {
		return err
	}

	metrics.EnrollmentsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, enrollmentResponse{Enrollment: enrollment})
}

// List handles GET /v1/enrollments.
//
// @Summary      List the authenticated subject's enrollments
// @Tags         enrollments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  enrollmentListResponse
// @Failure      401  {object}  map[string]string
// @Router       /v1/enrollments [get]
func (h *EnrollmentHandler) List(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	enrollments, err := h.ledger.ListBySubject(c.Request().Context(), identity.SubjectID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, enrollmentListResponse{
		Enrollments: enrollments,
		Count:       len(enrollments),
	})
}

// UpdateProgress handles PATCH /v1/enrollments/:course_id/progress.
//
// @Summary      Update course progress
// @Tags         enrollments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        course_id  path      string           true  "Course ID"
// @Param        body       body      progressRequest  true  "Progress percentage"
// @Success      200        {object}  enrollmentResponse
// @Failure      401        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Failure      422        {object}  map[string]string
// @Router       /v1/enrollments/{course_id}/progress [patch]
func (h *EnrollmentHandler) UpdateProgress(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	courseID := c.Param("course_id")
	if courseID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing course id")
	}

	var req progressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	enrollment, err := h.ledger.UpdateProgress(c.Request().Context(), identity.SubjectID, courseID, req.Progress)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, enrollmentResponse{Enrollment: enrollment})
}

// Cancel handles DELETE /v1/enrollments/:course_id.
//
// @Summary      Cancel an enrollment
// @Tags         enrollments
// @Produce      json
// @Security     BearerAuth
// @Param        course_id  path      string  true  "Course ID"
// @Success      200        {object}  enrollmentResponse
// @Failure      401        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /v1/enrollments/{course_id} [delete]
func (h *EnrollmentHandler) Cancel(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	courseID := c.Param("course_id")
	if courseID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing course id")
	}

	enrollment, err := h.ledger.Cancel(c.Request().Context(), identity.SubjectID, courseID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, enrollmentResponse{Enrollment: enrollment})
}
