// Package models содержит доменные модели сервиса: учетную запись пользователя,
// задачу (todo) и идентичность, извлеченную из токена сессии.
package models

import "time"

// Роли пользователей.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User представляет зарегистрированного пользователя системы.
// Хэш пароля и служебные поля входа никогда не сериализуются в ответы.
type User struct {
	UUID                string     `json:"id"`
	Name                string     `json:"name"`
	Email               string     `json:"email"`
	Phone               string     `json:"phone,omitempty"`
	PasswordHash        string     `json:"-"`
	Role                string     `json:"role"`
	IsLocked            bool       `json:"-"`
	FailedLoginAttempts int        `json:"-"`
	LastFailedLogin     *time.Time `json:"-"`
	LastLogin           *time.Time `json:"last_login,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// Identity — пользователь, от имени которого выполняется запрос.
type Identity struct {
	UserUID string
	Role    string
}

// IsAdmin сообщает, обладает ли идентичность ролью администратора.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// UserPage — страница списка пользователей.
type UserPage struct {
	Users  []*User `json:"users"`
	Total  int     `json:"total"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
}
