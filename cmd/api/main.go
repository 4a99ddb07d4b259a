// @title        Course Platform API
// @version      1.0
// @description  Authorization and entitlement API for paid course content.
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	_ "github.com/learnhub/course-platform/docs"
	"github.com/learnhub/course-platform/internal/api"
	"github.com/learnhub/course-platform/internal/core/ports"
	"github.com/learnhub/course-platform/internal/core/service"
	"github.com/learnhub/course-platform/internal/infrastructure/config"
	mongodb "github.com/learnhub/course-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/learnhub/course-platform/internal/infrastructure/db/redis"
	"github.com/learnhub/course-platform/internal/infrastructure/queue"
	"github.com/learnhub/course-platform/internal/infrastructure/ratelimit"
	"github.com/learnhub/course-platform/internal/infrastructure/storage"
	"github.com/learnhub/course-platform/pkg/logger"
)

// nopDedup stands in for the Redis dedup store when Redis is not
// configured. Every event is processed; the ledger's idempotency is the
// remaining safety net.
type nopDedup struct{}

func (nopDedup) IsDuplicate(context.Context, string, string, string, string) (bool, error) {
	return false, nil
}

func (nopDedup) Mark(context.Context, string, string, string, string) error { return nil }

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	userRepo := mongodb.NewUserRepository(db)
	enrollmentRepo := mongodb.NewEnrollmentRepository(db)
	courseRepo := mongodb.NewCourseRepository(db)

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user indexes failed")
	}
	if err := enrollmentRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("enrollment indexes failed")
	}

	// --- Rate-limit rules, shared by both limiter backends ---
	rules := map[ports.EndpointClass]ports.LimitRule{
		ports.LimitAuth: {
			MaxRequests: cfg.RateLimit.AuthMaxRequests,
			WindowSecs:  cfg.RateLimit.AuthWindowSecs,
		},
		ports.LimitResource: {
			MaxRequests: cfg.RateLimit.ResourceMaxRequests,
			WindowSecs:  cfg.RateLimit.ResourceWindowSecs,
		},
	}

	// --- Redis (optional) ---
	var (
		limiter ports.RateLimiter
		dedup   service.DedupChecker = nopDedup{}
		rdb     *redis.Client
	)
	if cfg.Redis.Addr != "" {
		rdb, err = redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer func() { _ = rdb.Close() }()
		limiter = redisdb.NewLimiter(rdb, rules)
		dedup = redisdb.NewPaymentDedup(rdb)
	} else {
		log.Warn().Msg("redis not configured, using in-memory rate limiter and no payment dedup")
		limiter = ratelimit.NewMemoryLimiter(rules)
	}

	// --- Core services ---
	credentials := service.NewCredentialService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, credentials)
	ledger := service.NewEnrollmentService(enrollmentRepo, courseRepo, log)
	courses := service.NewCourseService(courseRepo, log)
	payments := service.NewPaymentService(ledger, dedup, log)
	store := storage.NewLocalStore(cfg.Content.Dir)

	// --- Payment pipeline ---
	dispatcher := queue.NewDispatcher(0, payments, log)
	dispatcher.Start(ctx)

	// --- HTTP ---
	e := api.NewRouter(api.Dependencies{
		Mongo:       db,
		Redis:       rdb,
		Log:         log,
		AuthService: authService,
		Credentials: credentials,
		Ledger:      ledger,
		Courses:     courses,
		Store:       store,
		Limiter:     limiter,
		Dispatcher:  dispatcher,
	})

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
