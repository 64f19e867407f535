package ratelimit

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// checkScript runs the fixed-window decision atomically.
// KEYS[1] counter key; ARGV[1] max; ARGV[2] window in ms.
// Returns {allowed, count, ttl_ms}.
var checkScript = redis.NewScript(`
local count = redis.call('GET', KEYS[1])
if not count then
	redis.call('SET', KEYS[1], 1, 'PX', ARGV[2])
	return {1, 1, tonumber(ARGV[2])}
end
local ttl = redis.call('PTTL', KEYS[1])
if ttl < 0 then
	redis.call('SET', KEYS[1], 1, 'PX', ARGV[2])
	return {1, 1, tonumber(ARGV[2])}
end
count = tonumber(count)
if count >= tonumber(ARGV[1]) then
	return {0, count, ttl}
end
count = redis.call('INCR', KEYS[1])
return {1, count, ttl}
`)

// RedisOption configures a RedisLimiter
type RedisOption func(*RedisLimiter)

// WithKeyPrefix sets the namespace for counter keys
func WithKeyPrefix(prefix string) RedisOption {
	return func(r *RedisLimiter) { r.prefix = strings.Trim(prefix, ":") }
}

// WithRedisLogger sets the logger used for backend errors
func WithRedisLogger(log zerolog.Logger) RedisOption {
	return func(r *RedisLimiter) { r.log = log }
}

// WithRedisClock overrides the time source used to compute ResetAt
func WithRedisClock(now func() time.Time) RedisOption {
	return func(r *RedisLimiter) { r.now = now }
}

// RedisLimiter is a fixed-window limiter shared by every instance using the same redis.
// Counters expire with the window, so no sweep is needed.
type RedisLimiter struct {
	rdb    *redis.Client
	prefix string
	max    int
	window time.Duration
	log    zerolog.Logger
	now    func() time.Time
}

var _ Checker = (*RedisLimiter)(nil)

// NewRedis creates a redis-backed limiter admitting maxRequests per window per identifier
func NewRedis(rdb *redis.Client, maxRequests int, window time.Duration, opts ...RedisOption) *RedisLimiter {
	r := &RedisLimiter{
		rdb:    rdb,
		prefix: "ratelimit",
		max:    maxRequests,
		window: window,
		log:    zerolog.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *RedisLimiter) key(identifier string) string {
	return r.prefix + ":" + identifier
}

// Check records a request from identifier and returns the verdict.
// When redis is unreachable the request is admitted.
func (r *RedisLimiter) Check(ctx context.Context, identifier string) Result {
	now := r.now()

	res, err := checkScript.Run(ctx, r.rdb, []string{r.key(identifier)}, r.max, r.window.Milliseconds()).Int64Slice()
	if err != nil || len(res) != 3 {
		r.log.Error().Err(err).Str("identifier", identifier).Msg("Rate limit check failed, allowing request")
		return Result{Success: true, Limit: r.max, Remaining: r.max - 1, ResetAt: now.Add(r.window)}
	}

	allowed, count, ttl := res[0] == 1, int(res[1]), time.Duration(res[2])*time.Millisecond
	resetAt := now.Add(ttl)

	if !allowed {
		return Result{Success: false, Limit: r.max, Remaining: 0, ResetAt: resetAt}
	}
	return Result{Success: true, Limit: r.max, Remaining: r.max - count, ResetAt: resetAt}
}

// Reset forgets identifier's current window
func (r *RedisLimiter) Reset(ctx context.Context, identifier string) error {
	return r.rdb.Del(ctx, r.key(identifier)).Err()
}

// Clear removes every counter under the key prefix
func (r *RedisLimiter) Clear(ctx context.Context) error {
	iter := r.rdb.Scan(ctx, 0, r.prefix+":*", 100).Iterator()
	var batch []string
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == 100 {
			if err := r.rdb.Del(ctx, batch...).Err(); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(batch) > 0 {
		return r.rdb.Del(ctx, batch...).Err()
	}
	return nil
}
