// Package remove реализует HTTP-обработчик удаления задачи.
package remove

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/todo-api/internal/http/middlewarectx"
	"github.com/magabrotheeeer/todo-api/internal/http/response"
	"github.com/magabrotheeeer/todo-api/internal/lib/apperr"
)

// Service описывает удаление задачи.
type Service interface {
	Delete(ctx context.Context, ownerUID, id string) error
}

// Handler обрабатывает запросы на удаление задачи.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить задачу
// @Tags Todos
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID задачи"
// @Success 200 {object} response.Response "Задача удалена"
// @Failure 401 {object} response.ErrorResponse "Требуется авторизация"
// @Failure 403 {object} response.ErrorResponse "Задача принадлежит другому пользователю"
// @Failure 404 {object} response.ErrorResponse "Задача не найдена"
// @Router /todos/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.todo.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, ok := middlewarectx.IdentityFrom(r.Context())
	if !ok {
		response.WriteError(w, r, log, apperr.ErrTokenMissing)
		return
	}

	todoID := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), id.UserUID, todoID); err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	log.Info("todo deleted", slog.String("todo_id", todoID))
	response.Write(w, r, http.StatusOK, response.OK("todo deleted", nil))
}
