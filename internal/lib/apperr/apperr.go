// Package apperr описывает доменные ошибки сервиса.
//
// Ожидаемые исходы (ошибки валидации, конфликты, отказ в доступе) возвращаются
// как значения этих типов и сопоставляются через errors.Is / errors.As.
// Всё, что не относится к перечисленным ошибкам, считается внутренней ошибкой.
package apperr

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound — запись не существует.
	ErrNotFound = errors.New("not found")
	// ErrForbidden — запись существует, но принадлежит другому пользователю.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict — нарушение уникальности (например, email уже занят).
	ErrConflict = errors.New("already exists")
	// ErrInvalidCredentials — неверный email или пароль. Сообщение одинаковое для всех причин.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrLocked — учетная запись временно заблокирована после неудачных попыток входа.
	ErrLocked = errors.New("account is temporarily locked")

	// ErrTokenMissing — запрос не содержит токена.
	ErrTokenMissing = errors.New("authentication required")
	// ErrTokenExpired — срок действия токена истек.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid — токен поврежден или подпись не совпадает.
	ErrTokenInvalid = errors.New("invalid token")
)

// ValidationError содержит полный список причин, по которым входные данные отклонены.
type ValidationError struct {
	Reasons []string
}

// NewValidationError создает ValidationError из списка причин.
func NewValidationError(reasons ...string) *ValidationError {
	return &ValidationError{Reasons: reasons}
}

func (e *ValidationError) Error() string {
	if len(e.Reasons) == 0 {
		return "validation failed"
	}
	return "validation failed: " + strings.Join(e.Reasons, "; ")
}

// IsTokenError сообщает, относится ли err к ошибкам токена.
func IsTokenError(err error) bool {
	return errors.Is(err, ErrTokenMissing) ||
		errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrTokenInvalid)
}

// AsValidation извлекает ValidationError из цепочки ошибок.
func AsValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
