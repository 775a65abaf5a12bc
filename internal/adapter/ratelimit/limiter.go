package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces bucket hashes in Redis.
const keyPrefix = "ratelimit:tb:"

// tokenBucket refills at ARGV[1] tokens per second up to ARGV[2] and tries to take one token.
// Bucket state is a hash {last_refill, tokens}; idle buckets expire after ARGV[4] seconds.
var tokenBucket = redis.NewScript(`
local key = KEYS[1]
local rate = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local ttl = tonumber(ARGV[4])

local bucket = redis.call('HMGET', key, 'last_refill', 'tokens')
local last_refill = tonumber(bucket[1]) or now
local tokens = tonumber(bucket[2]) or capacity

local elapsed = math.max(0, now - last_refill)
tokens = math.min(capacity, tokens + elapsed * rate)

local allowed = 0
if tokens >= 1 then
	tokens = tokens - 1
	allowed = 1
end

redis.call('HSET', key, 'last_refill', tostring(now), 'tokens', tostring(tokens))
redis.call('EXPIRE', key, ttl)
return allowed
`)

// Config holds token bucket parameters.
type Config struct {
	RequestsPerSecond float64
	BurstCapacity     int
}

// Limiter is a Redis-backed token bucket shared by every server instance.
type Limiter struct {
	client redis.Scripter
	config Config
	ttl    int
	now    func() time.Time
}

// New creates a Limiter. Buckets are kept in Redis long enough to refill completely.
func New(client redis.Scripter, config Config) *Limiter {
	ttl := 60
	if config.RequestsPerSecond > 0 {
		if full := int(float64(config.BurstCapacity)/config.RequestsPerSecond) + 1; full > ttl {
			ttl = full
		}
	}
	return &Limiter{
		client: client,
		config: config,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Config returns the bucket parameters.
func (l *Limiter) Config() Config {
	return l.config
}

// Allow takes one token from the bucket identified by key.
// The error is non-nil only when Redis could not be consulted.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	now := float64(l.now().UnixMicro()) / 1e6

	allowed, err := tokenBucket.Run(ctx, l.client, []string{keyPrefix + key},
		l.config.RequestsPerSecond,
		l.config.BurstCapacity,
		now,
		l.ttl,
	).Int64()
	if err != nil {
		return false, fmt.Errorf("rate limiter script failed: %w", err)
	}

	return allowed == 1, nil
}
