package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/todo-api/internal/migrations"
	"github.com/magabrotheeeer/todo-api/internal/models"
	"github.com/magabrotheeeer/todo-api/internal/storage/pgtest"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя и возвращает его UID
func (f *TestDataFactory) CreateUser(t *testing.T, name, email, role string) string {
	var uid string
	err := f.storage.DB.QueryRow(`INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4) RETURNING uid`,
		name, email, "hashedpassword", role).Scan(&uid)
	require.NoError(t, err)
	return uid
}

// CreateTodo создает тестовую задачу и возвращает ее ID
func (f *TestDataFactory) CreateTodo(t *testing.T, userUID, title string) string {
	var id string
	err := f.storage.DB.QueryRow(`INSERT INTO todos (title, content, user_uid)
		VALUES ($1, $2, $3) RETURNING id`,
		title, "content of "+title, userUID).Scan(&id)
	require.NoError(t, err)
	return id
}

// TestVerification содержит общие функции для проверки результатов тестов
type TestVerification struct {
	storage *Storage
}

// NewTestVerification создает новый объект для проверки результатов
func NewTestVerification(storage *Storage) *TestVerification {
	return &TestVerification{storage: storage}
}

// VerifyTodoCount проверяет количество задач с данным ID
func (v *TestVerification) VerifyTodoCount(t *testing.T, id string, want int) {
	var count int
	err := v.storage.DB.QueryRow("SELECT COUNT(*) FROM todos WHERE id = $1", id).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, want, count)
}

// VerifyFailedAttempts проверяет счетчик неудачных входов пользователя
func (v *TestVerification) VerifyFailedAttempts(t *testing.T, userUID string, want int) {
	var attempts int
	err := v.storage.DB.QueryRow("SELECT failed_login_attempts FROM users WHERE uid = $1", userUID).Scan(&attempts)
	require.NoError(t, err)
	require.Equal(t, want, attempts)
}

// setupTestDatabase поднимает PostgreSQL в контейнере и применяет миграции
func setupTestDatabase(t *testing.T) *Storage {
	_, db := pgtest.Start(t)

	root, err := filepath.Abs("../../..")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(db, filepath.Join(root, "migrations")))

	return NewWithDB(db, 5*time.Second)
}

func newUser(name, email string) models.User {
	return models.User{
		Name:         name,
		Email:        email,
		PasswordHash: "$2a$10$hash",
	}
}
