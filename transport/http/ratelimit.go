package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

var (
	ErrTooManyRequests = errors.New("too many requests")
)

var rateLimitExempt = []string{"/assets", "/public"}

// RateLimiter counts requests per client IP in fixed windows.
type RateLimiter struct {
	store  *cache.Cache
	window time.Duration
	max    int
}

func NewRateLimiter(window time.Duration, max int) *RateLimiter {
	if window <= 0 {
		window = 15 * time.Minute
	}

	if max <= 0 {
		max = 100
	}

	return &RateLimiter{
		store:  cache.New(window, window),
		window: window,
		max:    max,
	}
}

// Hit records a request for key and returns the count within the window.
func (rl *RateLimiter) Hit(key string) int {
	// Add only succeeds for the first hit of a window and fixes its expiry.
	rl.store.Add(key, 0, rl.window)

	n, err := rl.store.IncrementInt(key, 1)
	if err != nil {
		rl.store.Set(key, 1, rl.window)
		return 1
	}

	return n
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, prefix := range rateLimitExempt {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		n := rl.Hit(c.ClientIP())

		remaining := rl.max - n
		if remaining < 0 {
			remaining = 0
		}

		c.Header("RateLimit-Limit", strconv.Itoa(rl.max))
		c.Header("RateLimit-Remaining", strconv.Itoa(remaining))

		if n > rl.max {
			c.Abort()
			c.Error(ErrTooManyRequests)
			c.String(http.StatusTooManyRequests, "Too many requests, please try again later.")
			return
		}

		c.Next()
	}
}
