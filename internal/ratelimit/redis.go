package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/todo-api/internal/config"
)

const keyPrefix = "ratelimit:"

// incrWindow увеличивает счетчик и ставит TTL окна, если его нет,
// за один вызов. Ключ без TTL (например, после сбоя) тоже получает окно.
var incrWindow = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if redis.call("PTTL", KEYS[1]) < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return n
`)

// RedisLimiter — счетчик запросов в фиксированном окне на redis.
type RedisLimiter struct {
	Db     *redis.Client
	limit  int64
	window time.Duration
}

// NewRedisLimiter подключается к redis и проверяет соединение.
func NewRedisLimiter(ctx context.Context, cfg config.RedisConnection, rl config.RateLimit) (*RedisLimiter, error) {
	const op = "ratelimit.NewRedisLimiter"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &RedisLimiter{Db: db, limit: int64(rl.Requests), window: rl.Window}, nil
}

// Allow увеличивает счетчик окна для key. Окно начинается с первого запроса.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	const op = "ratelimit.Allow"
	k := keyPrefix + key

	count, err := incrWindow.Run(ctx, l.Db, []string{k}, l.window.Milliseconds()).Int64()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return count <= l.limit, nil
}

// Close закрывает соединение с redis.
func (l *RedisLimiter) Close() error {
	return l.Db.Close()
}
