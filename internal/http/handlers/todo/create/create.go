// Package create реализует HTTP-обработчик создания задачи.
package create

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/todo-api/internal/http/middlewarectx"
	"github.com/magabrotheeeer/todo-api/internal/http/response"
	"github.com/magabrotheeeer/todo-api/internal/lib/apperr"
	"github.com/magabrotheeeer/todo-api/internal/lib/sl"
	"github.com/magabrotheeeer/todo-api/internal/models"
	"github.com/magabrotheeeer/todo-api/internal/services/todo"
)

// Request — тело запроса на создание задачи.
type Request struct {
	Title   string `json:"title" example:"Buy milk"`
	Content string `json:"content,omitempty" example:"2 liters"`
}

// Service описывает создание задачи.
type Service interface {
	Create(ctx context.Context, ownerUID string, in todo.CreateInput) (*models.Todo, error)
}

// Handler обрабатывает запросы на создание задачи.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Создать задачу
// @Tags Todos
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Новая задача"
// @Success 201 {object} response.Response "Задача создана"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Требуется авторизация"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /todos [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.todo.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, ok := middlewarectx.IdentityFrom(r.Context())
	if !ok {
		response.WriteError(w, r, log, apperr.ErrTokenMissing)
		return
	}

	var req Request
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.Write(w, r, http.StatusBadRequest, response.Error(response.MsgInvalidBody))
		return
	}

	created, err := h.service.Create(r.Context(), id.UserUID, todo.CreateInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	log.Info("todo created", slog.String("todo_id", created.ID))
	response.Write(w, r, http.StatusCreated, response.OK("todo created", created))
}
