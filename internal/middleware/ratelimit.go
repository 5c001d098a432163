package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CounterStore counts hits for a key within a fixed window.
type CounterStore interface {
	Incr(ctx context.Context, key string, window time.Duration) (int, error)
}

type visitor struct {
	count       int
	windowStart time.Time
	lastSeen    time.Time
}

// MemoryStore keeps per-key fixed-window counters in process. A background
// sweep drops keys idle for longer than a window until Close is called.
type MemoryStore struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	window   time.Duration
	now      func() time.Time
	stop     chan struct{}
	once     sync.Once
}

func NewMemoryStore(window time.Duration) *MemoryStore {
	if window <= 0 {
		window = time.Minute
	}
	s := &MemoryStore{
		visitors: make(map[string]*visitor),
		window:   window,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	go s.cleanup()
	return s
}

func (s *MemoryStore) cleanup() {
	ticker := time.NewTicker(s.window)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stop:
			return
		}
	}
}

func (s *MemoryStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, v := range s.visitors {
		if now.Sub(v.lastSeen) > s.window {
			delete(s.visitors, key)
		}
	}
}

// Close stops the background sweep. It is safe to call more than once.
func (s *MemoryStore) Close() {
	s.once.Do(func() { close(s.stop) })
}

// Incr counts a hit in the window that started with the key's first hit.
// The count restarts once that window has elapsed, however busy the key is.
func (s *MemoryStore) Incr(_ context.Context, key string, window time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	v, exists := s.visitors[key]
	if !exists || now.Sub(v.windowStart) >= window {
		s.visitors[key] = &visitor{count: 1, windowStart: now, lastSeen: now}
		return 1, nil
	}

	v.count++
	v.lastSeen = now
	return v.count, nil
}

// RedisStore shares counters between instances with INCR and EXPIRE.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "ratelimit:"}
}

func (s *RedisStore) Incr(ctx context.Context, key string, window time.Duration) (int, error) {
	k := s.prefix + key
	n, err := s.client.Incr(ctx, k).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment rate counter: %w", err)
	}
	if n == 1 {
		if err := s.client.Expire(ctx, k, window).Err(); err != nil {
			return 0, fmt.Errorf("failed to set rate counter expiry: %w", err)
		}
	}
	return int(n), nil
}

type RateLimiter struct {
	store  CounterStore
	limit  int
	window time.Duration
	log    *zap.Logger
}

func NewRateLimiter(store CounterStore, limit int, window time.Duration, log *zap.Logger) *RateLimiter {
	return &RateLimiter{store: store, limit: limit, window: window, log: log}
}

// Middleware rejects a client once it exceeds limit requests per window.
// A failing store lets the request through.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)

		count, err := rl.store.Incr(r.Context(), ip, rl.window)
		if err != nil {
			rl.log.Warn("Rate limiter unavailable", zap.String("ip", ip), zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}

		if count > rl.limit {
			w.Header().Set("Retry-After", fmt.Sprintf("%d", int(rl.window.Seconds())))
			writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests. Please try again later.", r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
