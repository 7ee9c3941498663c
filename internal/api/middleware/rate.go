package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/crownweb/contact-relay/internal/api/constants"
	"github.com/crownweb/contact-relay/internal/api/dto/v1/contact"
	"github.com/crownweb/contact-relay/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines the per-client window policy for the send endpoint
type RateLimitConfig struct {
	// Maximum requests per window
	Max int
	// Window duration; the counter resets when it elapses
	Window time.Duration
}

// clientWindow is the per-address counter with its reset timestamp
type clientWindow struct {
	count   int
	resetAt time.Time
}

// windowStore keeps per-client windows in memory. State is process-local and
// resets on restart.
type windowStore struct {
	mu      sync.Mutex
	clients map[string]*clientWindow
	max     int
	window  time.Duration
}

func newWindowStore(config RateLimitConfig) *windowStore {
	store := &windowStore{
		clients: make(map[string]*clientWindow),
		max:     config.Max,
		window:  config.Window,
	}

	// Evict expired windows so the map does not grow unbounded
	go store.cleanupExpired()

	return store
}

func (s *windowStore) cleanupExpired() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		s.mu.Lock()
		now := time.Now()
		for ip, w := range s.clients {
			if now.After(w.resetAt) {
				delete(s.clients, ip)
			}
		}
		s.mu.Unlock()
	}
}

// take counts a request for the given address and reports whether it is
// allowed, how many requests remain, and when the window resets.
func (s *windowStore) take(ip string) (allowed bool, remaining int, resetAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	w, exists := s.clients[ip]
	if !exists || now.After(w.resetAt) {
		w = &clientWindow{resetAt: now.Add(s.window)}
		s.clients[ip] = w
	}

	if w.count >= s.max {
		return false, 0, w.resetAt
	}

	w.count++
	return true, s.max - w.count, w.resetAt
}

// RateLimitMiddleware bounds requests per client address over a rolling
// window. Exceeding the limit answers immediately with the throttling
// message; the validator and dispatcher are never reached.
// Standard RateLimit-* headers are set; legacy X-RateLimit-* headers are not.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	store := newWindowStore(config)

	return func(c *gin.Context) {
		allowed, remaining, resetAt := store.take(utils.GetRealIP(c))

		c.Header("RateLimit-Limit", strconv.Itoa(config.Max))
		c.Header("RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("RateLimit-Reset", strconv.Itoa(int(time.Until(resetAt).Seconds())))

		if !allowed {
			c.AbortWithStatusJSON(http.StatusOK, contact.SendResponse{
				Success: false,
				Message: constants.MsgTooManyRequests,
			})
			return
		}

		c.Next()
	}
}

// GlobalRateLimitConfig defines the coarse all-routes token bucket
type GlobalRateLimitConfig struct {
	// Requests per second
	RPS int
	// Burst size (number of requests that can be made in a single burst)
	Burst int
}

// GlobalRateLimitMiddleware guards every route, static files included, with a
// shared token bucket. It is a capacity backstop, not the per-client policy.
func GlobalRateLimitMiddleware(config GlobalRateLimitConfig) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(config.RPS), config.Burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusOK, contact.SendResponse{
				Success: false,
				Message: constants.MsgTooManyRequests,
			})
			return
		}

		c.Next()
	}
}
