// Package sl содержит вспомогательные функции для работы с логгером slog:
// создание логгера под окружение запуска и формирование атрибутов ошибок.
package sl

import (
	"io"
	"log/slog"
	"os"
)

// Окружения запуска сервиса.
const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// Err возвращает slog.Attr с ключом "error" и значением текста ошибки.
//
// Пример:
//
//	log.Error("failed to do something", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// SetupLogger создает логгер для окружения env с выводом в os.Stdout.
func SetupLogger(env string) *slog.Logger {
	return NewLogger(env, os.Stdout)
}

// NewLogger создает логгер для окружения env с выводом в w.
//
// local — текстовый вывод уровня debug, dev — JSON уровня debug,
// prod и всё остальное — JSON уровня info.
func NewLogger(env string, w io.Writer) *slog.Logger {
	switch env {
	case EnvLocal:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case EnvDev:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
}

// NewDiscardLogger возвращает логгер, который ничего не пишет. Используется в тестах.
func NewDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}
