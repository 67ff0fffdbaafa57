// Package list реализует HTTP-обработчик постраничного списка пользователей.
// Доступен только администраторам.
package list

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/todo-api/internal/http/response"
	"github.com/magabrotheeeer/todo-api/internal/lib/sl"
	"github.com/magabrotheeeer/todo-api/internal/models"
)

// Query — параметры пагинации.
type Query struct {
	Limit  int `validate:"min=0"`
	Offset int `validate:"min=0"`
}

// Service описывает получение списка пользователей.
type Service interface {
	List(ctx context.Context, limit, offset int) (*models.UserPage, error)
}

// Handler обрабатывает запросы списка пользователей.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Список пользователей
// @Description Возвращает страницу пользователей. Требуется роль admin.
// @Tags Users
// @Produce  json
// @Security BearerAuth
// @Param limit query int false "Размер страницы (по умолчанию 10, максимум 100)"
// @Param offset query int false "Смещение"
// @Success 200 {object} response.Response "Страница пользователей"
// @Failure 400 {object} response.ErrorResponse "Некорректные параметры"
// @Failure 401 {object} response.ErrorResponse "Требуется авторизация"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	q, err := parseQuery(r)
	if err != nil {
		log.Info("failed to parse query", sl.Err(err))
		response.Write(w, r, http.StatusBadRequest, response.Error(response.MsgValidation, err.Error()))
		return
	}
	if err = h.validate.Struct(q); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			response.Write(w, r, http.StatusBadRequest, response.ValidationError(verrs))
			return
		}
		response.WriteError(w, r, log, err)
		return
	}

	page, err := h.service.List(r.Context(), q.Limit, q.Offset)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	response.Write(w, r, http.StatusOK, response.OK("users fetched", page))
}

func parseQuery(r *http.Request) (Query, error) {
	var q Query
	var err error
	values := r.URL.Query()
	if v := values.Get("limit"); v != "" {
		if q.Limit, err = strconv.Atoi(v); err != nil {
			return q, errors.New("limit must be an integer")
		}
	}
	if v := values.Get("offset"); v != "" {
		if q.Offset, err = strconv.Atoi(v); err != nil {
			return q, errors.New("offset must be an integer")
		}
	}
	return q, nil
}
