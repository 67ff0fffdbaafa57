package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LocalLimiter держит отдельный token bucket на каждый ключ.
type LocalLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	every    rate.Limit
	burst    int
	idle     time.Duration
	lastScan time.Time
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLocalLimiter разрешает requests запросов за window на ключ.
func NewLocalLimiter(requests int, window time.Duration) *LocalLimiter {
	if requests <= 0 {
		requests = 1
	}
	return &LocalLimiter{
		buckets: make(map[string]*bucket),
		every:   rate.Every(window / time.Duration(requests)),
		burst:   requests,
		idle:    window,
	}
}

func (l *LocalLimiter) Allow(_ context.Context, key string) (bool, error) {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastScan) > l.idle {
		l.evict(now)
	}

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.every, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1), nil
}

// evict удаляет корзины, к которым не обращались дольше окна: они уже полные.
func (l *LocalLimiter) evict(now time.Time) {
	for k, b := range l.buckets {
		if now.Sub(b.lastSeen) > l.idle {
			delete(l.buckets, k)
		}
	}
	l.lastScan = now
}
