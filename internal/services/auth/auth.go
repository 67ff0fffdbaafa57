// Package auth содержит логику регистрации, входа и проверки токенов сессии.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/todo-api/internal/lib/apperr"
	"github.com/magabrotheeeer/todo-api/internal/lib/credentials"
	"github.com/magabrotheeeer/todo-api/internal/lib/jwt"
	"github.com/magabrotheeeer/todo-api/internal/lib/sl"
	"github.com/magabrotheeeer/todo-api/internal/models"
	"github.com/magabrotheeeer/todo-api/internal/rabbitmq"
)

// UserRepository описывает контракт хранилища учетных записей.
type UserRepository interface {
	// CreateUser сохраняет пользователя. Занятый email дает apperr.ErrConflict.
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	// GetUserByEmail ищет пользователя по email без учета регистра.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	RecordLoginFailure(ctx context.Context, userUID string, at, windowStart time.Time) error
	RecordLoginSuccess(ctx context.Context, userUID string, at time.Time) error
}

// PasswordHasher хеширует и сверяет пароли.
type PasswordHasher interface {
	GetHash(password string) (string, error)
	CompareHash(originalHash, externalPassword string) error
	CompareDummy(externalPassword string)
}

// EventPublisher публикует события учетных записей.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// Lockout задает временную блокировку входа после серии неудачных попыток.
// MaxAttempts <= 0 отключает блокировку.
type Lockout struct {
	MaxAttempts int
	Window      time.Duration
}

// RegisterInput — данные для регистрации.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// AuthService отвечает за регистрацию, вход и проверку JWT.
type AuthService struct {
	users    UserRepository
	hasher   PasswordHasher
	jwtMaker jwt.Maker
	events   EventPublisher
	lockout  Lockout
	log      *slog.Logger
	now      func() time.Time
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, hasher PasswordHasher, jwtMaker jwt.Maker,
	events EventPublisher, lockout Lockout, log *slog.Logger) *AuthService {
	if events == nil {
		events = rabbitmq.NoopPublisher{}
	}
	return &AuthService{
		users:    users,
		hasher:   hasher,
		jwtMaker: jwtMaker,
		events:   events,
		lockout:  lockout,
		log:      log,
		now:      time.Now,
	}
}

// Register проверяет данные, создает пользователя с ролью "user" и выдает ему токен.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	const op = "auth.Register"

	res := credentials.Registration(credentials.RegistrationInput{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		Phone:    in.Phone,
	})
	if !res.Valid {
		return nil, "", apperr.NewValidationError(res.Errors...)
	}

	_, err := s.users.GetUserByEmail(ctx, res.Email)
	switch {
	case err == nil:
		return nil, "", fmt.Errorf("%s: %w", op, apperr.ErrConflict)
	case !errors.Is(err, apperr.ErrNotFound):
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := s.hasher.GetHash(in.Password)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.users.CreateUser(ctx, models.User{
		Name:         res.Name,
		Email:        res.Email,
		Phone:        res.Phone,
		PasswordHash: hashed,
		Role:         models.RoleUser,
	})
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.jwtMaker.GenerateToken(user.UUID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	event := rabbitmq.UserRegistered{
		UserUID:      user.UUID,
		Email:        user.Email,
		Name:         user.Name,
		RegisteredAt: user.CreatedAt,
	}
	if err := s.events.Publish(ctx, rabbitmq.UserRegisteredRouting, event); err != nil {
		s.log.Warn("failed to publish user.registered event", slog.String("op", op), sl.Err(err))
	}

	return user, token, nil
}

// Login проверяет email и пароль и выдает токен.
//
// Неизвестный email, заблокированная администратором учетная запись и неверный
// пароль дают одну и ту же apperr.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*models.User, string, error) {
	const op = "auth.Login"

	res := credentials.Login(email, rawPassword)
	if !res.Valid {
		return nil, "", apperr.NewValidationError(res.Errors...)
	}

	user, err := s.users.GetUserByEmail(ctx, res.Email)
	if errors.Is(err, apperr.ErrNotFound) {
		s.hasher.CompareDummy(rawPassword)
		return nil, "", fmt.Errorf("%s: %w", op, apperr.ErrInvalidCredentials)
	}
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	now := s.now().UTC()
	if s.temporarilyLocked(user, now) {
		return nil, "", fmt.Errorf("%s: %w", op, apperr.ErrLocked)
	}

	if err = s.hasher.CompareHash(user.PasswordHash, rawPassword); err != nil {
		windowStart := now.Add(-s.lockout.Window)
		if recErr := s.users.RecordLoginFailure(ctx, user.UUID, now, windowStart); recErr != nil {
			s.log.Error("failed to record login failure", slog.String("op", op), sl.Err(recErr))
		}
		return nil, "", fmt.Errorf("%s: %w", op, apperr.ErrInvalidCredentials)
	}
	if user.IsLocked {
		s.log.Info("login attempt on locked account", slog.String("user_uid", user.UUID))
		return nil, "", fmt.Errorf("%s: %w", op, apperr.ErrInvalidCredentials)
	}

	if err = s.users.RecordLoginSuccess(ctx, user.UUID, now); err != nil {
		s.log.Error("failed to record login success", slog.String("op", op), sl.Err(err))
	} else {
		user.FailedLoginAttempts = 0
		user.LastFailedLogin = nil
		user.LastLogin = &now
	}

	token, err := s.jwtMaker.GenerateToken(user.UUID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return user, token, nil
}

// VerifyToken проверяет токен сессии и возвращает идентичность пользователя.
func (s *AuthService) VerifyToken(_ context.Context, token string) (*models.Identity, error) {
	if token == "" {
		return nil, apperr.ErrTokenMissing
	}
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, err
	}
	if claims.UserUID == "" {
		return nil, apperr.ErrTokenInvalid
	}
	return &models.Identity{UserUID: claims.UserUID, Role: claims.Role}, nil
}

func (s *AuthService) temporarilyLocked(user *models.User, now time.Time) bool {
	if s.lockout.MaxAttempts <= 0 || user.LastFailedLogin == nil {
		return false
	}
	if user.FailedLoginAttempts < s.lockout.MaxAttempts {
		return false
	}
	return now.Sub(*user.LastFailedLogin) < s.lockout.Window
}
