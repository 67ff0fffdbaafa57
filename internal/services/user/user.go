// Package user содержит операции над учетными записями: постраничный список и профиль.
package user

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/todo-api/internal/models"
)

// Границы размера страницы списка пользователей.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// UserRepository описывает чтение учетных записей из хранилища.
type UserRepository interface {
	ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error)
	CountUsers(ctx context.Context) (int, error)
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// UserService — сервис учетных записей.
type UserService struct {
	users UserRepository
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(users UserRepository) *UserService {
	return &UserService{users: users}
}

// List возвращает страницу пользователей. Некорректный limit заменяется на
// DefaultLimit, слишком большой урезается до MaxLimit, отрицательный offset до нуля.
func (s *UserService) List(ctx context.Context, limit, offset int) (*models.UserPage, error) {
	const op = "user.List"

	switch {
	case limit <= 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}

	users, err := s.users.ListUsers(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	total, err := s.users.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.UserPage{
		Users:  users,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}

// Profile возвращает учетную запись пользователя userUID.
func (s *UserService) Profile(ctx context.Context, userUID string) (*models.User, error) {
	const op = "user.Profile"
	u, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}
