package httpapi

import (
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/ensaio/internal/logger"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RequestID tags each request with an ID, reusing the caller's X-Request-ID if set.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)
		c.Set(requestIDKey, requestID)
		c.Next()
	}
}

// GetRequestID returns the ID set by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// Recovery turns a handler panic into a 500 response.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				requestID := GetRequestID(c)
				logger.Warn("panic recovered: %v request_id=%s %s %s\n%s",
					err, requestID, c.Request.Method, c.Request.URL.Path, debug.Stack())
				c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{
					Error:     "internal server error",
					RequestID: requestID,
				})
			}
		}()
		c.Next()
	}
}

// RequestLogger logs method, path, status and latency of every request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if q := c.Request.URL.RawQuery; q != "" {
			path += "?" + q
		}

		c.Next()

		status := c.Writer.Status()
		line := "%s %s -> %d (%dms) client=%s request_id=%s"
		args := []any{
			c.Request.Method, path, status, time.Since(start).Milliseconds(),
			c.ClientIP(), GetRequestID(c),
		}
		if status >= http.StatusInternalServerError {
			logger.Warn(line, args...)
		} else {
			logger.Info(line, args...)
		}
	}
}

// clientLimiter tracks one token bucket per client IP.
type clientLimiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	clients  map[string]*clientEntry
	lastScan time.Time
}

type clientEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// idleClientTTL is how long an idle client's bucket is kept.
const idleClientTTL = 10 * time.Minute

func newClientLimiter(perSecond float64, burst int) *clientLimiter {
	return &clientLimiter{
		limit:    rate.Limit(perSecond),
		burst:    burst,
		clients:  make(map[string]*clientEntry),
		lastScan: time.Now(),
	}
}

func (l *clientLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if now.Sub(l.lastScan) > idleClientTTL {
		for key, entry := range l.clients {
			if now.Sub(entry.lastSeen) > idleClientTTL {
				delete(l.clients, key)
			}
		}
		l.lastScan = now
	}

	entry, ok := l.clients[ip]
	if !ok {
		entry = &clientEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter.Allow()
}

// RateLimit rejects requests beyond perSecond (with burst) per client IP.
// A non-positive rate disables limiting.
func RateLimit(perSecond float64, burst int) gin.HandlerFunc {
	if perSecond <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if burst < 1 {
		burst = 1
	}
	limiter := newClientLimiter(perSecond, burst)

	return func(c *gin.Context) {
		if !limiter.allow(c.ClientIP()) {
			logger.Warn("rate limit exceeded: client=%s request_id=%s", c.ClientIP(), GetRequestID(c))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errorResponse{
				Error:     "rate limit exceeded, try again later",
				RequestID: GetRequestID(c),
			})
			return
		}
		c.Next()
	}
}
