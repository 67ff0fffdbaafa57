// Package register реализует HTTP-обработчик регистрации пользователя.
//
// После успешной регистрации клиент сразу получает токен сессии.
package register

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/todo-api/internal/http/middlewarectx"
	"github.com/magabrotheeeer/todo-api/internal/http/response"
	"github.com/magabrotheeeer/todo-api/internal/lib/sl"
	"github.com/magabrotheeeer/todo-api/internal/models"
	"github.com/magabrotheeeer/todo-api/internal/services/auth"
)

// Request — входные данные для регистрации.
type Request struct {
	Name     string `json:"name" example:"Ann Smith"`
	Email    string `json:"email" example:"ann@example.com"`
	Password string `json:"password" example:"Secret1!"`
	Phone    string `json:"phone,omitempty" example:"+15551234567"`
}

// Service описывает бизнес-логику регистрации.
type Service interface {
	Register(ctx context.Context, in auth.RegisterInput) (*models.User, string, error)
}

// Handler обрабатывает запросы на регистрацию.
type Handler struct {
	log     *slog.Logger
	service Service
	session middlewarectx.SessionOptions
}

// New создает новый Handler.
func New(log *slog.Logger, service Service, session middlewarectx.SessionOptions) *Handler {
	return &Handler{
		log:     log,
		service: service,
		session: session,
	}
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Description Создает учетную запись и возвращает токен сессии. Все ошибки валидации возвращаются списком.
// @Tags Users
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные нового пользователя"
// @Success 201 {object} response.Response "Пользователь создан"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 409 {object} response.ErrorResponse "Email уже зарегистрирован"
// @Failure 429 {object} response.ErrorResponse "Слишком много запросов"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users/createUser [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.Write(w, r, http.StatusBadRequest, response.Error(response.MsgInvalidBody))
		return
	}

	user, token, err := h.service.Register(r.Context(), auth.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	h.session.SetCookie(w, token)
	log.Info("user registered", slog.String("user_uid", user.UUID))
	response.Write(w, r, http.StatusCreated, response.OK("user registered", map[string]any{
		"token": token,
		"user":  user,
	}))
}
