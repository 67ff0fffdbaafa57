package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/todo-api/internal/lib/apperr"
	"github.com/magabrotheeeer/todo-api/internal/models"
)

const todoColumns = `id, title, content, user_uid, created_at, updated_at`

// CreateTodo сохраняет новую задачу. ID и даты назначает база.
func (s *Storage) CreateTodo(ctx context.Context, todo models.Todo) (*models.Todo, error) {
	const op = "storage.CreateTodo"
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `INSERT INTO todos (title, content, user_uid)
			  VALUES ($1, $2, $3)
			  RETURNING ` + todoColumns
	created, err := scanTodo(s.DB.QueryRowContext(ctx, query, todo.Title, todo.Content, todo.UserUID))
	if err != nil {
		return nil, mapError(op, err)
	}
	return created, nil
}

// GetTodo возвращает задачу по ID независимо от владельца.
func (s *Storage) GetTodo(ctx context.Context, id string) (*models.Todo, error) {
	const op = "storage.GetTodo"
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + todoColumns + `
			  FROM todos
			  WHERE id = $1`
	todo, err := scanTodo(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(op, err)
	}
	return todo, nil
}

// ListTodos возвращает задачи владельца, новые первыми.
func (s *Storage) ListTodos(ctx context.Context, userUID string) ([]*models.Todo, error) {
	const op = "storage.ListTodos"
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + todoColumns + `
			  FROM todos
			  WHERE user_uid = $1
			  ORDER BY created_at DESC, id DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, mapError(op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Todo, 0)
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, mapError(op, err)
		}
		result = append(result, todo)
	}
	if err = rows.Err(); err != nil {
		return nil, mapError(op, err)
	}
	return result, nil
}

// UpdateTodo перезаписывает title и content задачи todo.ID, если она всё ещё
// принадлежит todo.UserUID. Если задачи уже нет, возвращает apperr.ErrNotFound.
func (s *Storage) UpdateTodo(ctx context.Context, todo models.Todo) (*models.Todo, error) {
	const op = "storage.UpdateTodo"
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `UPDATE todos
			  SET title = $1, content = $2, updated_at = clock_timestamp()
			  WHERE id = $3 AND user_uid = $4
			  RETURNING ` + todoColumns
	updated, err := scanTodo(s.DB.QueryRowContext(ctx, query, todo.Title, todo.Content, todo.ID, todo.UserUID))
	if err != nil {
		return nil, mapError(op, err)
	}
	return updated, nil
}

// DeleteTodo удаляет задачу id владельца userUID.
func (s *Storage) DeleteTodo(ctx context.Context, id, userUID string) error {
	const op = "storage.DeleteTodo"
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.DB.ExecContext(ctx, `DELETE FROM todos WHERE id = $1 AND user_uid = $2`, id, userUID)
	if err != nil {
		return mapError(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return mapError(op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	}
	return nil
}

func scanTodo(row rowScanner) (*models.Todo, error) {
	var t models.Todo
	if err := row.Scan(&t.ID, &t.Title, &t.Content, &t.UserUID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
