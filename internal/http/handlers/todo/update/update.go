// Package update реализует HTTP-обработчик частичного обновления задачи.
package update

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/todo-api/internal/http/middlewarectx"
	"github.com/magabrotheeeer/todo-api/internal/http/response"
	"github.com/magabrotheeeer/todo-api/internal/lib/apperr"
	"github.com/magabrotheeeer/todo-api/internal/lib/sl"
	"github.com/magabrotheeeer/todo-api/internal/models"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	Update(ctx context.Context, ownerUID, id string, patch models.TodoPatch) (*models.Todo, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Обновить задачу
// @Description Пустые или отсутствующие поля не изменяются.
// @Tags Todos
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID задачи"
// @Param request body models.TodoPatch true "Новые значения"
// @Success 200 {object} response.Response "Обновленная задача"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Требуется авторизация"
// @Failure 403 {object} response.ErrorResponse "Задача принадлежит другому пользователю"
// @Failure 404 {object} response.ErrorResponse "Задача не найдена"
// @Router /todos/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.todo.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, ok := middlewarectx.IdentityFrom(r.Context())
	if !ok {
		response.WriteError(w, r, log, apperr.ErrTokenMissing)
		return
	}

	var patch models.TodoPatch
	if err := render.DecodeJSON(r.Body, &patch); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.Write(w, r, http.StatusBadRequest, response.Error(response.MsgInvalidBody))
		return
	}

	updated, err := h.service.Update(r.Context(), id.UserUID, chi.URLParam(r, "id"), patch)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	log.Info("todo updated", slog.String("todo_id", updated.ID))
	response.Write(w, r, http.StatusOK, response.OK("todo updated", updated))
}
