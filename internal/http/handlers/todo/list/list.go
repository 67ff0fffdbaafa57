// Package list реализует HTTP-обработчик списка задач текущего пользователя.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/todo-api/internal/http/middlewarectx"
	"github.com/magabrotheeeer/todo-api/internal/http/response"
	"github.com/magabrotheeeer/todo-api/internal/lib/apperr"
	"github.com/magabrotheeeer/todo-api/internal/models"
)

type Service interface {
	List(ctx context.Context, ownerUID string) ([]*models.Todo, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список задач
// @Description Возвращает задачи текущего пользователя, новые первыми.
// @Tags Todos
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Задачи"
// @Failure 401 {object} response.ErrorResponse "Требуется авторизация"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /todos [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.todo.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, ok := middlewarectx.IdentityFrom(r.Context())
	if !ok {
		response.WriteError(w, r, log, apperr.ErrTokenMissing)
		return
	}

	todos, err := h.service.List(r.Context(), id.UserUID)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	log.Debug("todos listed", slog.Int("count", len(todos)))
	response.Write(w, r, http.StatusOK, response.OK("todos fetched", todos))
}
