package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/dacapperclub/pickboard/utils"
)

// clientLimiter pairs a token bucket with an idle expiry so the map does not
// grow unbounded with one-off client addresses.
type clientLimiter struct {
	limiter *rate.Limiter
	expires time.Time
}

// Limiter applies a per-client-address rate limit for one route class. Each
// class gets its own instance, so a burst on one class never consumes budget
// on another. The bucket holds cap tokens and refills cap per window, which
// means a burst from one address gets exactly cap requests through before 429.
type Limiter struct {
	every   rate.Limit
	burst   int
	message string

	mu      sync.Mutex
	clients map[string]*clientLimiter
}

const limiterIdleTTL = 5 * time.Minute

// NewLimiter creates a limiter for one route class. message is the 429 body;
// an empty message falls back to the generic one.
func NewLimiter(window time.Duration, limit int, message string) *Limiter {
	if limit < 1 {
		limit = 1
	}
	if message == "" {
		message = "rate limit exceeded"
	}
	return &Limiter{
		every:   rate.Every(window / time.Duration(limit)),
		burst:   limit,
		message: message,
		clients: make(map[string]*clientLimiter),
	}
}

// Handle returns the gin middleware for this limiter. It must run before
// authentication so over-limit callers never reach the token checks.
func (l *Limiter) Handle() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !l.allow(ctx.ClientIP()) {
			utils.Fail(ctx, http.StatusTooManyRequests, l.message)
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

func (l *Limiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.cleanupExpiredLocked()

	cl, ok := l.clients[ip]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(l.every, l.burst)}
		l.clients[ip] = cl
	}
	cl.expires = time.Now().Add(limiterIdleTTL)
	return cl.limiter.Allow()
}

func (l *Limiter) cleanupExpiredLocked() {
	now := time.Now()
	for key, cl := range l.clients {
		if now.After(cl.expires) {
			delete(l.clients, key)
		}
	}
}
