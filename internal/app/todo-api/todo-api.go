package todoapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/magabrotheeeer/todo-api/internal/config"
	"github.com/magabrotheeeer/todo-api/internal/http/middlewarectx"
	"github.com/magabrotheeeer/todo-api/internal/lib/jwt"
	"github.com/magabrotheeeer/todo-api/internal/lib/password"
	"github.com/magabrotheeeer/todo-api/internal/lib/sl"
	"github.com/magabrotheeeer/todo-api/internal/migrations"
	"github.com/magabrotheeeer/todo-api/internal/rabbitmq"
	"github.com/magabrotheeeer/todo-api/internal/ratelimit"
	authservice "github.com/magabrotheeeer/todo-api/internal/services/auth"
	todoservice "github.com/magabrotheeeer/todo-api/internal/services/todo"
	userservice "github.com/magabrotheeeer/todo-api/internal/services/user"
	"github.com/magabrotheeeer/todo-api/internal/storage/repository"
)

const shutdownTimeout = 15 * time.Second

type eventPublisher interface {
	authservice.EventPublisher
	io.Closer
}

// App — HTTP-сервер сервиса задач вместе с его подключениями.
type App struct {
	server  *http.Server
	logger  *slog.Logger
	db      *repository.Storage
	closers []io.Closer
}

// New подключается к хранилищу, применяет миграции и собирает маршруты.
// Redis и RabbitMQ необязательны: без адреса redis лимит запросов считается
// в памяти процесса, без URL брокера события не публикуются.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "todoapi.New"

	db, err := repository.New(ctx, cfg.StorageConnectionString, cfg.StorageTimeout)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	app := &App{logger: logger, db: db}

	limiter := newLimiter(ctx, cfg, logger)
	if c, ok := limiter.(io.Closer); ok {
		app.closers = append(app.closers, c)
	}

	events := newPublisher(ctx, cfg, logger)
	app.closers = append(app.closers, events)

	hasher := password.NewHasher(password.CostFor(cfg.Env, cfg.BcryptCost))
	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL, cfg.Issuer, cfg.Audience)

	authService := authservice.NewAuthService(db, hasher, jwtMaker, events, authservice.Lockout{
		MaxAttempts: cfg.LockoutMaxAttempts,
		Window:      cfg.LockoutWindow,
	}, logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, Deps{
		Auth:     authService,
		Users:    userservice.NewUserService(db),
		Todos:    todoservice.NewTodoService(db),
		Limiter:  limiter,
		Health:   db,
		Metrics:  middlewarectx.NewMetrics(reg),
		Gatherer: reg,
		Session: middlewarectx.SessionOptions{
			CookieEnabled: cfg.CookieSessions(),
			CookieName:    cfg.CookieName,
			Secure:        cfg.IsProduction(),
			TTL:           cfg.TokenTTL,
		},
		IncludeToken: !cfg.IsProduction(),
	})

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

func newLimiter(ctx context.Context, cfg *config.Config, logger *slog.Logger) ratelimit.Limiter {
	if cfg.AddressRedis == "" {
		logger.Info("redis is not configured, using in-process rate limiter")
		return ratelimit.NewLocalLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}
	limiter, err := ratelimit.NewRedisLimiter(ctx, cfg.RedisConnection, cfg.RateLimit)
	if err != nil {
		logger.Warn("redis is unavailable, using in-process rate limiter", sl.Err(err))
		return ratelimit.NewLocalLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}
	return limiter
}

func newPublisher(ctx context.Context, cfg *config.Config, logger *slog.Logger) eventPublisher {
	if cfg.RabbitMQ.URL == "" {
		return rabbitmq.NoopPublisher{}
	}
	publisher, err := rabbitmq.NewPublisher(ctx, cfg.RabbitMQ.URL, cfg.ConnectRetries, cfg.RetryDelay)
	if err != nil {
		logger.Warn("rabbitmq is unavailable, account events are disabled", sl.Err(err))
		return rabbitmq.NoopPublisher{}
	}
	return publisher
}

// Run запускает HTTP-сервер и блокируется до его остановки или отмены ctx.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.Error("failed to close connection", sl.Err(err))
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close storage", sl.Err(err))
	}
}
