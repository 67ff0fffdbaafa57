// Package ratelimit ограничивает частоту запросов по ключу (обычно IP клиента).
//
// RedisLimiter считает запросы в фиксированном окне и разделяет счетчики между
// экземплярами сервиса. LocalLimiter работает в памяти процесса и используется,
// когда redis не настроен.
package ratelimit

import "context"

// Limiter решает, можно ли пропустить очередной запрос с ключом key.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
