package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/learnhub/course-platform/internal/api/handler"
	"github.com/learnhub/course-platform/internal/api/middleware"
	"github.com/learnhub/course-platform/internal/core/domain"
	"github.com/learnhub/course-platform/internal/core/ports"
)

// Dependencies carries everything the router needs, built in main.
type Dependencies struct {
	Mongo       *mongo.Database
	Redis       *redis.Client // nil when Redis is not configured
	Log         zerolog.Logger
	AuthService ports.AuthService
	Credentials ports.CredentialService
	Ledger      ports.EnrollmentService
	Courses     ports.CourseService
	Store       ports.ContentStore
	Limiter     ports.RateLimiter
	Dispatcher  handler.PaymentDispatcher
}

// NewRouter builds and returns the Echo instance with all routes registered.
//
// Guard ordering is deliberate: the rate limiter runs before Auth so an
// attacker cannot burn credential verifications, Auth runs before RBAC so
// role checks always see a verified identity, and the content gate consults
// the ledger last.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("course_platform"))

	// --- Guards ---
	auth := middleware.Auth(deps.Credentials)
	limitAuth := middleware.RateLimit(deps.Limiter, ports.LimitAuth, deps.Log)
	limitResource := middleware.RateLimit(deps.Limiter, ports.LimitResource, deps.Log)
	staffOnly := middleware.RBAC(domain.RoleAdmin, domain.RoleInstructor)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	enrollmentHandler := handler.NewEnrollmentHandler(deps.Ledger)
	contentHandler := handler.NewContentHandler(deps.Ledger, deps.Courses, deps.Store)
	courseHandler := handler.NewCourseHandler(deps.Courses, deps.Ledger)
	paymentHandler := handler.NewPaymentHandler(deps.Dispatcher)

	// --- Account routes (strict rate-limit class, no auth) ---
	e.POST("/auth/register", authHandler.Register, limitAuth)
	e.POST("/auth/login", authHandler.Login, limitAuth)

	// --- Catalog (public) ---
	e.GET("/v1/courses", courseHandler.ListPublished, limitResource)

	// --- Student routes ---
	enrollments := e.Group("/v1/enrollments", limitResource, auth)
	enrollments.POST("", enrollmentHandler.Create)
	enrollments.GET("", enrollmentHandler.List)
	enrollments.PATCH("/:course_id/progress", enrollmentHandler.UpdateProgress)
	enrollments.DELETE("/:course_id", enrollmentHandler.Cancel)

	// --- Content access gate: always through the ledger, no bypass ---
	e.GET("/v1/courses/:course_id/material", contentHandler.Serve, limitResource, auth)

	// --- Management routes (admin/instructor; ledger check skipped by construction) ---
	admin := e.Group("/v1/admin", limitResource, auth, staffOnly)
	admin.POST("/courses", courseHandler.Create)
	admin.PUT("/courses/:course_id/material", courseHandler.AttachMaterial)
	admin.GET("/courses/:course_id/enrollments", courseHandler.ListEnrollments)

	// --- Payment gateway webhook (service account with admin role) ---
	payments := e.Group("/v1/payments", auth, adminOnly)
	payments.POST("/events", paymentHandler.Receive)
	payments.POST("/events/batch", paymentHandler.ReceiveBatch)

	// --- Ops surface ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
