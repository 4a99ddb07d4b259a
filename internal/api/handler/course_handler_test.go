package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/learnhub/course-platform/internal/core/domain"
	"github.com/learnhub/course-platform/internal/core/ports"
)

func instructorContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder) echo.Context {
	c := e.NewContext(req, rec)
	c.Set("identity", &domain.Identity{SubjectID: "instr_1", Email: "ina@example.com", Role: domain.RoleInstructor})
	return c
}

func TestCourseHandler_Create(t *testing.T) {
	e := newTestEcho()
	courses := &stubCourseService{
		createFn: func(ctx context.Context, actor *domain.Identity, input ports.CreateCourseInput) (*domain.Course, error) {
			if actor.SubjectID != "instr_1" {
				t.Fatalf("unexpected actor: %+v", actor)
			}
			if input.Title != "Intro to Sourdough" || !input.Publish {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Course{
				ID:           "course_1",
				Title:        input.Title,
				Status:       domain.CoursePublished,
				InstructorID: actor.SubjectID,
			}, nil
		},
	}
	handler := NewCourseHandler(courses, &stubLedger{})

	body := strings.NewReader(`{"title":"Intro to Sourdough","price":29.90,"currency":"USD","publish":true}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/admin/courses", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := instructorContext(e, req, rec)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestCourseHandler_AttachMaterial_Forbidden(t *testing.T) {
	e := newTestEcho()
	courses := &stubCourseService{
		attachFn: func(ctx context.Context, actor *domain.Identity, input ports.AttachMaterialInput) (*domain.Course, error) {
			return nil, domain.ErrForbidden
		},
	}
	handler := NewCourseHandler(courses, &stubLedger{})

	body := strings.NewReader(`{"filename":"intro.pdf","content_type":"application/pdf","size_bytes":1024}`)
	req := httptest.NewRequest(http.MethodPut, "/v1/admin/courses/course_1/material", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := instructorContext(e, req, rec)
	c.SetParamNames("course_id")
	c.SetParamValues("course_1")

	if err := handler.AttachMaterial(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestCourseHandler_ListEnrollments(t *testing.T) {
	e := newTestEcho()
	courses := &stubCourseService{
		getFn: func(ctx context.Context, id string) (*domain.Course, error) {
			return materialCourse(), nil
		},
	}
	ledger := &stubLedger{
		listByCourseFn: func(ctx context.Context, courseID string) ([]*domain.Enrollment, error) {
			return []*domain.Enrollment{
				{SubjectID: "user_1", CourseID: courseID},
			}, nil
		},
	}
	handler := NewCourseHandler(courses, ledger)

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/courses/course_1/enrollments", nil)
	rec := httptest.NewRecorder()
	c := instructorContext(e, req, rec)
	c.SetParamNames("course_id")
	c.SetParamValues("course_1")

	if err := handler.ListEnrollments(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["count"] != float64(1) {
		t.Fatalf("expected count 1, got %v", resp["count"])
	}
}

func TestCourseHandler_ListEnrollments_UnknownCourse(t *testing.T) {
	e := newTestEcho()
	courses := &stubCourseService{
		getFn: func(ctx context.Context, id string) (*domain.Course, error) {
			return nil, domain.ErrCourseNotFound
		},
	}
	ledger := &stubLedger{
		listByCourseFn: func(ctx context.Context, courseID string) ([]*domain.Enrollment, error) {
			t.Fatalf("ledger must not be consulted for an unknown course")
			return nil, nil
		},
	}
	handler := NewCourseHandler(courses, ledger)

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/courses/ghost/enrollments", nil)
	rec := httptest.NewRecorder()
	c := instructorContext(e, req, rec)
	c.SetParamNames("course_id")
	c.SetParamValues("ghost")

	if err := handler.ListEnrollments(c); !errors.Is(err, domain.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}
