// Package middlewarectx содержит HTTP middleware сервиса.
//
// SessionMiddleware извлекает токен сессии из запроса, проверяет его и кладет
// идентичность пользователя в контекст. Обработчики получают ее через IdentityFrom.
// В случае ошибки проверки возвращается HTTP 401 с причиной отказа.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/todo-api/internal/http/response"
	"github.com/magabrotheeeer/todo-api/internal/lib/apperr"
	"github.com/magabrotheeeer/todo-api/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// IdentityKey — ключ идентичности пользователя в контексте.
const IdentityKey Key = "identity"

// AltTokenHeader — дополнительный заголовок с токеном для старых клиентов.
const AltTokenHeader = "auth-token"

// TokenVerifier проверяет токен сессии.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*models.Identity, error)
}

// SessionOptions задает передачу токена через http-only cookie.
type SessionOptions struct {
	CookieEnabled bool
	CookieName    string
	Secure        bool
	TTL           time.Duration
}

// SetCookie выставляет cookie с токеном, если cookie включены.
func (o SessionOptions) SetCookie(w http.ResponseWriter, token string) {
	if !o.CookieEnabled || o.CookieName == "" {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     o.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(o.TTL.Seconds()),
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// WithIdentity возвращает контекст с идентичностью пользователя.
func WithIdentity(ctx context.Context, id models.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, id)
}

// IdentityFrom извлекает идентичность пользователя из контекста.
func IdentityFrom(ctx context.Context) (models.Identity, bool) {
	id, ok := ctx.Value(IdentityKey).(models.Identity)
	return id, ok && id.UserUID != ""
}

// SessionMiddleware возвращает middleware, которое пропускает дальше только запросы
// с валидным токеном сессии.
//
// Токен ищется в заголовке Authorization (Bearer), затем в заголовке auth-token,
// затем в cookie, если cookie включены.
func SessionMiddleware(verifier TokenVerifier, log *slog.Logger, opts SessionOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			token := extractToken(r, opts)
			if token == "" {
				response.WriteError(w, r, log, apperr.ErrTokenMissing)
				return
			}

			identity, err := verifier.VerifyToken(r.Context(), token)
			if err != nil {
				response.WriteError(w, r, log, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), *identity)))
		})
	}
}

func extractToken(r *http.Request, opts SessionOptions) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	if t := strings.TrimSpace(r.Header.Get(AltTokenHeader)); t != "" {
		return t
	}
	if opts.CookieEnabled && opts.CookieName != "" {
		if c, err := r.Cookie(opts.CookieName); err == nil {
			return c.Value
		}
	}
	return ""
}
