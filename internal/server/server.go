package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/pageza/recipe-wizard/backend/config"
	"github.com/pageza/recipe-wizard/backend/internal/api"
	"github.com/pageza/recipe-wizard/backend/internal/completion"
	"github.com/pageza/recipe-wizard/backend/internal/database"
	"github.com/pageza/recipe-wizard/backend/internal/middleware"
	"github.com/pageza/recipe-wizard/backend/internal/router"
	"github.com/pageza/recipe-wizard/backend/internal/service"
	"github.com/pageza/recipe-wizard/backend/internal/store"
)

const (
	redisKeyPrefix  = "recipewizard:"
	shutdownTimeout = 10 * time.Second
)

// Server represents the HTTP server
type Server struct {
	cfg    *config.Config
	log    zerolog.Logger
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
	redis  *redis.Client
}

// New connects the backing stores and wires every service and handler.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Server, error) {
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open(cfg, log)
	if err != nil {
		return nil, err
	}
	if err := database.RunMigrations(ctx, db, cfg.MigrationsDir, log); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	s := &Server{cfg: cfg, log: log, db: db}

	var kv store.KV = store.NewMemory()
	var rateLimit gin.HandlerFunc
	if cfg.RedisURL != "" {
		client, err := database.NewRedisClient(cfg.RedisURL, log)
		if err != nil {
			_ = s.Close()
			return nil, err
		}
		s.redis = client
		kv = store.NewRedis(client, redisKeyPrefix)
		if cfg.RateLimit > 0 {
			rateLimit = middleware.NewGenerationRateLimiter(client, cfg.RateLimit, cfg.RateLimitWindow, log).RateLimitMiddleware()
		}
	} else {
		log.Warn().Msg("REDIS_URL not set; sessions are kept in memory and rate limiting is disabled")
	}

	completer := completion.NewClient(completion.Config{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.OpenAIModel,
		Timeout: cfg.CompletionTimeout,
	}, log)

	recipes := service.NewRecipeService(completer, log)
	preferences := service.NewPreferencesService(kv, cfg.SessionTTL, log)
	history := service.NewHistoryService(db)
	wizard := service.NewWizardService(recipes, service.NewSessionStore(kv, cfg.SessionTTL), preferences, history, log)
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.SessionTTL)
	auth := middleware.AuthMiddleware(tokens)

	s.router = router.SetupRouter(log, cfg.AllowedOrigins, router.Handlers{
		Recipe:      api.NewRecipeHandler(recipes, rateLimit),
		Wizard:      api.NewWizardHandler(wizard, preferences, history, tokens, auth, rateLimit),
		Preferences: api.NewPreferencesHandler(preferences, auth),
	})
	s.http = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.http.Addr).Msg("starting server")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.Stop(shutdownCtx)
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}

// Close releases the database and Redis connections.
func (s *Server) Close() error {
	var errs []error
	if s.redis != nil {
		errs = append(errs, s.redis.Close())
	}
	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}
	return errors.Join(errs...)
}
