// Package read реализует HTTP-обработчик получения задачи по ID.
//
// Отсутствующая задача дает 404, чужая — 403.
package read

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/todo-api/internal/http/middlewarectx"
	"github.com/magabrotheeeer/todo-api/internal/http/response"
	"github.com/magabrotheeeer/todo-api/internal/lib/apperr"
	"github.com/magabrotheeeer/todo-api/internal/models"
)

// Service описывает интерфейс бизнес-логики чтения задачи.
type Service interface {
	Get(ctx context.Context, ownerUID, id string) (*models.Todo, error)
}

// Handler обрабатывает запросы на получение задачи.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получить задачу
// @Tags Todos
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID задачи"
// @Success 200 {object} response.Response "Задача"
// @Failure 401 {object} response.ErrorResponse "Требуется авторизация"
// @Failure 403 {object} response.ErrorResponse "Задача принадлежит другому пользователю"
// @Failure 404 {object} response.ErrorResponse "Задача не найдена"
// @Router /todos/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.todo.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, ok := middlewarectx.IdentityFrom(r.Context())
	if !ok {
		response.WriteError(w, r, log, apperr.ErrTokenMissing)
		return
	}

	res, err := h.service.Get(r.Context(), id.UserUID, chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	response.Write(w, r, http.StatusOK, response.OK("todo fetched", res))
}
