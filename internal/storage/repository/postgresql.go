// Package repository реализует хранилище данных на основе PostgreSQL
// для учетных записей пользователей и их задач.
//
// Каждый вызов ограничен таймаутом хранилища. Изменения задач выполняются
// одним атомарным запросом с условием на id и владельца.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/magabrotheeeer/todo-api/internal/lib/apperr"
)

const (
	pgUniqueViolation   = "23505"
	pgInvalidTextFormat = "22P02"
	defaultTimeout      = 5 * time.Second
)

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB      *sql.DB
	timeout time.Duration
}

// New открывает подключение к PostgreSQL и проверяет его.
func New(ctx context.Context, storageConnectionString string, timeout time.Duration) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s := NewWithDB(db, timeout)
	pingCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err = db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s, nil
}

// NewWithDB оборачивает уже открытое соединение.
func NewWithDB(db *sql.DB, timeout time.Duration) *Storage {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Storage{DB: db, timeout: timeout}
}

// Close закрывает соединение с базой.
func (s *Storage) Close() error {
	return s.DB.Close()
}

// Ping проверяет доступность базы.
func (s *Storage) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.DB.PingContext(ctx)
}

func (s *Storage) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// mapError приводит ошибки драйвера к доменным ошибкам.
func mapError(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s: %w", op, apperr.ErrConflict)
		case pgInvalidTextFormat:
			return fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

type rowScanner interface {
	Scan(dest ...any) error
}
