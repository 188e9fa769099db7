package ratelimiter

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Middleware returns a gin middleware enforcing the rate limit per client
// IP. Rejected requests get the standard error envelope with a Retry-After
// header.
func Middleware(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := c.ClientIP()

		if !rl.IsAllowed(clientID) {
			remaining, resetTime := rl.GetRequestInfo(clientID)

			c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", rl.Limit()))
			c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
			c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", resetTime.Unix()))
			c.Header("Retry-After", fmt.Sprintf("%d", int(time.Until(resetTime).Seconds())+1))

			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   true,
				"code":    "RATE_LIMIT_EXCEEDED",
				"message": "rate limit exceeded, try again later",
			})
			return
		}

		remaining, resetTime := rl.GetRequestInfo(clientID)
		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", rl.Limit()))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", resetTime.Unix()))

		c.Next()
	}
}
