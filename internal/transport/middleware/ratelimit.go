package middleware

import (
	"context"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/endocyclic/investor-portal/internal/domain"
)

// idleBucketTTL is how long an untouched bucket survives pruning.
const idleBucketTTL = 10 * time.Minute

// RateLimiter throttles the sign-in, registration and contact endpoints per
// client IP with token buckets. Buckets are keyed by limit name and IP, so
// each named limit is independent.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[bucketKey]*bucket
	now     func() time.Time
}

type bucketKey struct {
	limit string
	ip    string
}

type bucket struct {
	tokens   float64
	capacity float64
	perSec   float64
	seen     time.Time
}

// NewRateLimiter creates an empty limiter. Idle buckets are only dropped
// while Run is active.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		buckets: make(map[bucketKey]*bucket),
		now:     time.Now,
	}
}

// Run prunes idle buckets every interval until ctx is done.
func (rl *RateLimiter) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			rl.prune()
		}
	}
}

// Limit returns middleware that admits at most maxPerMinute requests of the
// named limit per client IP, with bursts up to the same number. A
// non-positive maxPerMinute disables the limit.
func (rl *RateLimiter) Limit(name string, maxPerMinute int) Middleware {
	return func(next http.Handler) http.Handler {
		if maxPerMinute <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wait, ok := rl.take(bucketKey{limit: name, ip: clientIP(r)}, maxPerMinute)
			if !ok {
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				writeError(w, http.StatusTooManyRequests, domain.MsgTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// take spends one token. When the bucket is empty it reports how long until
// the next token is available.
func (rl *RateLimiter) take(key bucketKey, maxPerMinute int) (time.Duration, bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{
			tokens:   float64(maxPerMinute),
			capacity: float64(maxPerMinute),
			perSec:   float64(maxPerMinute) / 60,
			seen:     now,
		}
		rl.buckets[key] = b
	}

	b.tokens = math.Min(b.capacity, b.tokens+now.Sub(b.seen).Seconds()*b.perSec)
	b.seen = now

	if b.tokens < 1 {
		return time.Duration((1 - b.tokens) / b.perSec * float64(time.Second)), false
	}
	b.tokens--
	return 0, true
}

func (rl *RateLimiter) prune() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	var n int
	for k, b := range rl.buckets {
		if now.Sub(b.seen) > idleBucketTTL {
			delete(rl.buckets, k)
			n++
		}
	}
	return n
}

// clientIP strips the port from the remote address. The server runs behind
// a proxy that rewrites RemoteAddr, so forwarding headers are not trusted.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
