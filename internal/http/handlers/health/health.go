// Package health реализует проверку готовности сервиса.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/magabrotheeeer/todo-api/internal/http/response"
	"github.com/magabrotheeeer/todo-api/internal/lib/sl"
)

// Pinger проверяет доступность зависимости.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	log *slog.Logger
	db  Pinger
}

func New(log *slog.Logger, db Pinger) *Handler {
	return &Handler{log: log, db: db}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.log.Error("database unavailable", slog.String("op", op), sl.Err(err))
		response.Write(w, r, http.StatusServiceUnavailable, response.Error("database unavailable"))
		return
	}
	response.Write(w, r, http.StatusOK, response.OK("ok", map[string]any{
		"status": "ok",
	}))
}
