// Package login реализует HTTP-обработчик входа пользователя по email и паролю.
//
// При успешном входе возвращается профиль пользователя. Токен сессии отдается
// в теле ответа (вне продакшена) и/или в http-only cookie.
package login

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
)

// Request — структура входных данных для авторизации.
type Request struct {
	Email    string `json:"email" example:"ann@example.com"`
	Password string `json:"password" example:"Secret1!"`
}

// Service описывает интерфейс бизнес-логики аутентификации.
type Service interface {
	Login(ctx context.Context, email, password string) (*models.User, string, error)
}

// Handler обрабатывает HTTP-запросы для авторизации.
type Handler struct {
	log          *slog.Logger
	service      Service
	session      middlewarectx.SessionOptions
	includeToken bool // отдавать ли токен в теле ответа
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, session middlewarectx.SessionOptions, includeToken bool) *Handler {
	return &Handler{
		log:          log,
		service:      service,
		session:      session,
		includeToken: includeToken,
	}
}

// ServeHTTP godoc
// @Summary Авторизация пользователя
// @Description Аутентифицирует пользователя по email и паролю.
// @Tags Users
// @Accept  json
// @Produce  json
// @Param request body Request true "Учетные данные пользователя"
// @Success 200 {object} response.Response "Успешная авторизация"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Неверный email или пароль"
// @Failure 423 {object} response.ErrorResponse "Вход временно заблокирован"
// @Failure 429 {object} response.ErrorResponse "Слишком много запросов"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users/loginUser [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

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

	user, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	h.session.SetCookie(w, token)

	data := map[string]any{"user": user}
	if h.includeToken {
		data["token"] = token
	}

	log.Info("login success", slog.String("user_uid", user.UUID))
	response.Write(w, r, http.StatusOK, response.OK("login successful", data))
}
