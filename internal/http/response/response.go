// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON-ответов HTTP-обработчиков.
//
// Все ответы имеют вид {success, message, data?, errors?, timestamp}.
// WriteError сопоставляет доменные ошибки из apperr со статусами HTTP.
package response

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/todo-api/internal/lib/apperr"
	"github.com/magabrotheeeer/todo-api/internal/lib/sl"
)

// Response описывает стандартную структуру JSON-ответа сервера.
type Response struct {
	Success   bool     `json:"success" example:"true"`
	Message   string   `json:"message" example:"todo created"`
	Data      any      `json:"data,omitempty"`
	Errors    []string `json:"errors,omitempty"`
	Timestamp string   `json:"timestamp" example:"2024-01-01T12:00:00Z"`
}

// ErrorResponse — структура ошибки для Swagger-документации.
type ErrorResponse struct {
	Success   bool     `json:"success" example:"false"`
	Message   string   `json:"message" example:"invalid request body"`
	Errors    []string `json:"errors,omitempty"`
	Timestamp string   `json:"timestamp" example:"2024-01-01T12:00:00Z"`
}

// Сообщения, которые не раскрывают внутренних деталей.
const (
	MsgInvalidBody = "invalid request body"
	MsgInternal    = "internal server error"
	MsgValidation  = "validation failed"
)

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// OK возвращает успешный Response с сообщением и данными.
func OK(message string, data any) Response {
	return Response{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: timestamp(),
	}
}

// Error возвращает Response с ошибкой.
func Error(message string, errs ...string) Response {
	return Response{
		Success:   false,
		Message:   message,
		Errors:    errs,
		Timestamp: timestamp(),
	}
}

// ValidationError формирует ответ на основе ошибок валидации тегов запроса.
func ValidationError(errs validator.ValidationErrors) Response {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("field %s must be at least %s", err.Field(), err.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("field %s must be at most %s", err.Field(), err.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is not valid", err.Field()))
		}
	}
	return Error(MsgValidation, msgs...)
}

// Write отправляет resp со статусом status.
func Write(w http.ResponseWriter, r *http.Request, status int, resp Response) {
	render.Status(r, status)
	render.JSON(w, r, resp)
}

// StatusFor возвращает HTTP-статус и безопасное сообщение для ошибки err.
func StatusFor(err error) (int, string) {
	if verr, ok := apperr.AsValidation(err); ok && verr != nil {
		return http.StatusBadRequest, MsgValidation
	}
	switch {
	case errors.Is(err, apperr.ErrTokenMissing):
		return http.StatusUnauthorized, apperr.ErrTokenMissing.Error()
	case errors.Is(err, apperr.ErrTokenExpired):
		return http.StatusUnauthorized, apperr.ErrTokenExpired.Error()
	case errors.Is(err, apperr.ErrTokenInvalid):
		return http.StatusUnauthorized, apperr.ErrTokenInvalid.Error()
	case errors.Is(err, apperr.ErrInvalidCredentials):
		return http.StatusUnauthorized, apperr.ErrInvalidCredentials.Error()
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden, "access denied"
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict, "user with this email already exists"
	case errors.Is(err, apperr.ErrLocked):
		return http.StatusLocked, "account is temporarily locked, try again later"
	default:
		return http.StatusInternalServerError, MsgInternal
	}
}

// WriteError отправляет ответ с ошибкой err. Внутренние ошибки логируются
// через log, клиенту уходит только общее сообщение.
func WriteError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	status, msg := StatusFor(err)

	var reasons []string
	if verr, ok := apperr.AsValidation(err); ok {
		reasons = verr.Reasons
	}

	switch {
	case status >= http.StatusInternalServerError:
		log.Error("request failed", sl.Err(err))
	default:
		log.Info("request rejected", slog.Int("status", status), sl.Err(err))
	}

	Write(w, r, status, Error(msg, reasons...))
}
