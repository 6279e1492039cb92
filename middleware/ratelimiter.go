package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/didip/tollbooth"
	"github.com/didip/tollbooth/limiter"
	"github.com/gin-gonic/gin"

	"github.com/mmo-observer/mmo_uploader/models"
)

// DefaultIPLookups reads proxy headers before the socket address, so clients
// behind a reverse proxy get their own buckets.
var DefaultIPLookups = []string{"X-Forwarded-For", "X-Real-IP", "RemoteAddr"}

// RateLimitMiddleware allows maxRequests per minute per client IP, resolved
// through ipLookups in order.
func RateLimitMiddleware(maxRequests float64, ipLookups []string) gin.HandlerFunc {
	if len(ipLookups) == 0 {
		ipLookups = DefaultIPLookups
	}

	perSecond := maxRequests / 60.0
	lmt := tollbooth.NewLimiter(perSecond, &limiter.ExpirableOptions{DefaultExpirationTTL: time.Minute})
	lmt.SetBurst(int(maxRequests))
	lmt.SetIPLookups(ipLookups)

	return func(c *gin.Context) {
		httpError := tollbooth.LimitByRequest(lmt, c.Writer, c.Request)
		if httpError != nil {
			log.Printf("[ratelimit] rejected %s %s from %s", c.Request.Method, c.Request.URL.Path, c.ClientIP())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{
				Error: "The API is at capacity, try again later.",
			})
			return
		}
		c.Next()
	}
}
