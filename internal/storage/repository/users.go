package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/magabrotheeeer/todo-api/internal/models"
)

const userColumns = `uid, name, email, phone, password_hash, role, is_locked,
			      failed_login_attempts, last_failed_login, last_login, created_at, updated_at`

// CreateUser сохраняет нового пользователя. UID и даты назначает база.
// Занятый email (без учета регистра) возвращает apperr.ErrConflict.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	const op = "storage.CreateUser"
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	role := user.Role
	if role == "" {
		role = models.RoleUser
	}

	query := `INSERT INTO users (name, email, phone, password_hash, role)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING ` + userColumns
	row := s.DB.QueryRowContext(ctx, query,
		user.Name, user.Email, nullString(user.Phone), user.PasswordHash, role)
	created, err := scanUser(row)
	if err != nil {
		return nil, mapError(op, err)
	}
	return created, nil
}

// GetUserByEmail возвращает пользователя по email без учета регистра.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE lower(email) = lower($1)`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, mapError(op, err)
	}
	return u, nil
}

// GetUser возвращает пользователя по его UID.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUser"
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE uid = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, userUID))
	if err != nil {
		return nil, mapError(op, err)
	}
	return u, nil
}

// ListUsers возвращает страницу пользователей, новые первыми.
func (s *Storage) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	const op = "storage.ListUsers"
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + userColumns + `
			  FROM users
			  ORDER BY created_at DESC, uid DESC
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, mapError(op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.User, 0, limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, mapError(op, err)
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, mapError(op, err)
	}
	return result, nil
}

// CountUsers возвращает общее количество пользователей.
func (s *Storage) CountUsers(ctx context.Context) (int, error) {
	const op = "storage.CountUsers"
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var total int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return 0, mapError(op, err)
	}
	return total, nil
}

// RecordLoginFailure увеличивает счетчик неудачных входов. Если предыдущая неудача
// была раньше windowStart, счетчик начинается заново.
func (s *Storage) RecordLoginFailure(ctx context.Context, userUID string, at, windowStart time.Time) error {
	const op = "storage.RecordLoginFailure"
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `UPDATE users
			  SET failed_login_attempts = CASE
			          WHEN last_failed_login IS NULL OR last_failed_login < $3 THEN 1
			          ELSE failed_login_attempts + 1
			      END,
			      last_failed_login = $2,
			      updated_at = now()
			  WHERE uid = $1`
	if _, err := s.DB.ExecContext(ctx, query, userUID, at, windowStart); err != nil {
		return mapError(op, err)
	}
	return nil
}

// RecordLoginSuccess сбрасывает счетчик неудачных входов и фиксирует время входа.
func (s *Storage) RecordLoginSuccess(ctx context.Context, userUID string, at time.Time) error {
	const op = "storage.RecordLoginSuccess"
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `UPDATE users
			  SET failed_login_attempts = 0,
			      last_failed_login = NULL,
			      last_login = $2,
			      updated_at = now()
			  WHERE uid = $1`
	if _, err := s.DB.ExecContext(ctx, query, userUID, at); err != nil {
		return mapError(op, err)
	}
	return nil
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		u                          models.User
		phone                      sql.NullString
		lastFailedLogin, lastLogin sql.NullTime
	)
	if err := row.Scan(&u.UUID, &u.Name, &u.Email, &phone, &u.PasswordHash, &u.Role,
		&u.IsLocked, &u.FailedLoginAttempts, &lastFailedLogin, &lastLogin,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Phone = phone.String
	if lastFailedLogin.Valid {
		u.LastFailedLogin = &lastFailedLogin.Time
	}
	if lastLogin.Valid {
		u.LastLogin = &lastLogin.Time
	}
	return &u, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

