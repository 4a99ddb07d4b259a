package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/learnhub/course-platform/internal/core/domain"
	"github.com/learnhub/course-platform/internal/core/ports"
)

// CourseHandler exposes catalog management under /v1/admin. The routes are
// guarded by RBAC(admin, instructor); these handlers consult the catalog
// directly and never the enrollment ledger.
type CourseHandler struct {
	courses ports.CourseService
	ledger  ports.EnrollmentService
}

func NewCourseHandler(courses ports.CourseService, ledger ports.EnrollmentService) *CourseHandler {
	return &CourseHandler{courses: courses, ledger: ledger}
}

type createCourseRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Currency    string  `json:"currency" validate:"required,len=3"`
	Publish     bool    `json:"publish"`
}

type attachMaterialRequest struct {
	Filename    string `json:"filename" validate:"required"`
	ContentType string `json:"content_type" validate:"required"`
	SizeBytes   int64  `json:"size_bytes" validate:"gte=0"`
}

type courseResponse struct {
	Course *domain.Course `json:"course"`
}

type courseListResponse struct {
	Courses []*domain.Course `json:"courses"`
	Count   int              `json:"count"`
}

// Create handles POST /v1/admin/courses.
//
// @Summary      Create a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCourseRequest  true  "Course details"
// @Success      201   {object}  courseResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/admin/courses [post]
func (h *CourseHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	course, err := h.courses.Create(c.Request().Context(), identity, ports.CreateCourseInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Currency:    req.Currency,
		Publish:     req.Publish,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, courseResponse{Course: course})
}

// AttachMaterial handles PUT /v1/admin/courses/:course_id/material.
//
// @Summary      Attach material metadata to a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        course_id  path      string                 true  "Course ID"
// @Param        body       body      attachMaterialRequest  true  "Material metadata"
// @Success      200        {object}  courseResponse
// @Failure      401        {object}  map[string]string
// @Failure      403        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /v1/admin/courses/{course_id}/material [put]
func (h *CourseHandler) AttachMaterial(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	courseID := c.Param("course_id")
	if courseID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing course id")
	}

	var req attachMaterialRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	course, err := h.courses.AttachMaterial(c.Request().Context(), identity, ports.AttachMaterialInput{
		CourseID:    courseID,
		Filename:    req.Filename,
		ContentType: req.ContentType,
		SizeBytes:   req.SizeBytes,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, courseResponse{Course: course})
}

// ListEnrollments handles GET /v1/admin/courses/:course_id/enrollments.
// This is the management view of the ledger: no enrollment row for the
// caller is required, the RBAC guard alone grants entry.
//
// @Summary      List enrollments for a course
// @Tags         courses
// @Produce      json
// @Security     BearerAuth
// @Param        course_id  path      string  true  "Course ID"
// @Success      200        {object}  enrollmentListResponse
// @Failure      401        {object}  map[string]string
// @Failure      403        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /v1/admin/courses/{course_id}/enrollments [get]
func (h *CourseHandler) ListEnrollments(c echo.Context) error {
	courseID := c.Param("course_id")
	if courseID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing course id")
	}

	// 404 for a course that does not exist, not an empty list.
	if _, err := h.courses.Get(c.Request().Context(), courseID); err != nil {
		return err
	}

	enrollments, err := h.ledger.ListByCourse(c.Request().Context(), courseID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, enrollmentListResponse{
		Enrollments: enrollments,
		Count:       len(enrollments),
	})
}

// ListPublished handles GET /v1/courses.
//
// @Summary      List published courses
// @Tags         courses
// @Produce      json
// @Success      200  {object}  courseListResponse
// @Router       /v1/courses [get]
func (h *CourseHandler) ListPublished(c echo.Context) error {
	courses, err := h.courses.ListPublished(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, courseListResponse{
		Courses: courses,
		Count:   len(courses),
	})
}
