// Package todoapi собирает HTTP-приложение сервиса задач.
package todoapi

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/todo-api/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/todo-api/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/todo-api/internal/http/handlers/health"
	"github.com/magabrotheeeer/todo-api/internal/http/handlers/todo/create"
	"github.com/magabrotheeeer/todo-api/internal/http/handlers/todo/list"
	"github.com/magabrotheeeer/todo-api/internal/http/handlers/todo/read"
	"github.com/magabrotheeeer/todo-api/internal/http/handlers/todo/remove"
	"github.com/magabrotheeeer/todo-api/internal/http/handlers/todo/update"
	userlist "github.com/magabrotheeeer/todo-api/internal/http/handlers/users/list"
	"github.com/magabrotheeeer/todo-api/internal/http/handlers/users/profile"
	"github.com/magabrotheeeer/todo-api/internal/http/middlewarectx"
	"github.com/magabrotheeeer/todo-api/internal/models"
	"github.com/magabrotheeeer/todo-api/internal/ratelimit"
)

// AuthService — регистрация, вход и проверка токенов.
type AuthService interface {
	register.Service
	login.Service
	middlewarectx.TokenVerifier
}

// UserService — просмотр учетных записей.
type UserService interface {
	userlist.Service
	profile.Service
}

// TodoService — операции с задачами.
type TodoService interface {
	create.Service
	list.Service
	read.Service
	update.Service
	remove.Service
}

// Deps — зависимости маршрутов.
type Deps struct {
	Auth     AuthService
	Users    UserService
	Todos    TodoService
	Limiter  ratelimit.Limiter
	Health   health.Pinger
	Metrics  *middlewarectx.Metrics
	Gatherer prometheus.Gatherer
	Session  middlewarectx.SessionOptions

	// IncludeToken возвращает токен в теле ответа на вход.
	IncludeToken bool
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		deps.Metrics.Middleware,
	)

	session := middlewarectx.SessionMiddleware(deps.Auth, logger, deps.Session)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(deps.Limiter, logger))
			r.Post("/users/createUser", register.New(logger, deps.Auth, deps.Session).ServeHTTP)
			r.Post("/users/loginUser", login.New(logger, deps.Auth, deps.Session, deps.IncludeToken).ServeHTTP)
		})

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(session)
			r.With(middlewarectx.RequireRole(models.RoleAdmin, logger)).
				Get("/users", userlist.New(logger, deps.Users).ServeHTTP)
			r.Get("/users/fetchSingleUser", profile.New(logger, deps.Users).ServeHTTP)

			r.Post("/todos", create.New(logger, deps.Todos).ServeHTTP)
			r.Get("/todos", list.New(logger, deps.Todos).ServeHTTP)
			r.Get("/todos/{id}", read.New(logger, deps.Todos).ServeHTTP)
			r.Put("/todos/{id}", update.New(logger, deps.Todos).ServeHTTP)
			r.Delete("/todos/{id}", remove.New(logger, deps.Todos).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger, deps.Health).ServeHTTP)
	r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
