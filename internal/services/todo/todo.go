// Package todo содержит операции над задачами пользователя.
//
// Каждая операция над конкретной задачей сначала проверяет ее существование,
// затем владельца: отсутствующая задача дает apperr.ErrNotFound, чужая —
// apperr.ErrForbidden. Права администратора здесь не учитываются.
package todo

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/todo-api/internal/lib/apperr"
	"github.com/magabrotheeeer/todo-api/internal/models"
)

// TodoRepository описывает хранилище задач.
type TodoRepository interface {
	CreateTodo(ctx context.Context, todo models.Todo) (*models.Todo, error)
	GetTodo(ctx context.Context, id string) (*models.Todo, error)
	ListTodos(ctx context.Context, userUID string) ([]*models.Todo, error)
	// UpdateTodo перезаписывает задачу, только если она принадлежит todo.UserUID.
	UpdateTodo(ctx context.Context, todo models.Todo) (*models.Todo, error)
	DeleteTodo(ctx context.Context, id, userUID string) error
}

// CreateInput — данные новой задачи.
type CreateInput struct {
	Title   string
	Content string
}

// TodoService — сервис задач.
type TodoService struct {
	todos TodoRepository
}

// NewTodoService создает новый экземпляр TodoService.
func NewTodoService(todos TodoRepository) *TodoService {
	return &TodoService{todos: todos}
}

// Create создает задачу владельца ownerUID.
func (s *TodoService) Create(ctx context.Context, ownerUID string, in CreateInput) (*models.Todo, error) {
	const op = "todo.Create"

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperr.NewValidationError("title is required")
	}

	created, err := s.todos.CreateTodo(ctx, models.Todo{
		Title:   title,
		Content: strings.TrimSpace(in.Content),
		UserUID: ownerUID,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// List возвращает задачи владельца, новые первыми.
func (s *TodoService) List(ctx context.Context, ownerUID string) ([]*models.Todo, error) {
	const op = "todo.List"
	todos, err := s.todos.ListTodos(ctx, ownerUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return todos, nil
}

// Get возвращает задачу id, если она принадлежит ownerUID.
func (s *TodoService) Get(ctx context.Context, ownerUID, id string) (*models.Todo, error) {
	const op = "todo.Get"
	todo, err := s.owned(ctx, ownerUID, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return todo, nil
}

// Update применяет patch к задаче id. Пустые после обрезки пробелов поля не меняются.
func (s *TodoService) Update(ctx context.Context, ownerUID, id string, patch models.TodoPatch) (*models.Todo, error) {
	const op = "todo.Update"

	todo, err := s.owned(ctx, ownerUID, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if v, ok := nonBlank(patch.Title); ok {
		todo.Title = v
	}
	if v, ok := nonBlank(patch.Content); ok {
		todo.Content = v
	}

	updated, err := s.todos.UpdateTodo(ctx, *todo)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// Delete удаляет задачу id, если она принадлежит ownerUID.
func (s *TodoService) Delete(ctx context.Context, ownerUID, id string) error {
	const op = "todo.Delete"

	if _, err := s.owned(ctx, ownerUID, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.todos.DeleteTodo(ctx, id, ownerUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *TodoService) owned(ctx context.Context, ownerUID, id string) (*models.Todo, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperr.ErrNotFound
	}
	todo, err := s.todos.GetTodo(ctx, id)
	if err != nil {
		return nil, err
	}
	if todo.UserUID != ownerUID {
		return nil, apperr.ErrForbidden
	}
	return todo, nil
}

func nonBlank(v *string) (string, bool) {
	if v == nil {
		return "", false
	}
	s := strings.TrimSpace(*v)
	return s, s != ""
}
