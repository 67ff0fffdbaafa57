package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/todo-api/internal/http/response"
	"github.com/magabrotheeeer/todo-api/internal/lib/apperr"
)

// RequireRole пропускает только пользователей с ролью role.
// Должен стоять после SessionMiddleware.
func RequireRole(role string, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := log.With(
				slog.String("op", "middlewarectx.RequireRole"),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			id, ok := IdentityFrom(r.Context())
			if !ok {
				response.WriteError(w, r, log, apperr.ErrTokenMissing)
				return
			}
			if id.Role != role {
				log.Info("role required", slog.String("role", role), slog.String("user_uid", id.UserUID))
				response.WriteError(w, r, log, apperr.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
