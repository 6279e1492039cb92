package middleware

import (
	"log"
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mmo-observer/mmo_uploader/models"
)

// DomainWhitelistMiddleware only lets through requests whose Host, port
// ignored, is one of allowedDomains.
func DomainWhitelistMiddleware(allowedDomains []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedDomains))
	for _, domain := range allowedDomains {
		allowed[strings.ToLower(hostOnly(domain))] = struct{}{}
	}

	return func(c *gin.Context) {
		host := strings.ToLower(hostOnly(c.Request.Host))
		if _, ok := allowed[host]; !ok {
			log.Printf("[whitelist] rejected host %q", c.Request.Host)
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{Error: "Permission denied"})
			return
		}

		c.Next()
	}
}

func hostOnly(hostport string) string {
	if host, _, err := net.SplitHostPort(hostport); err == nil {
		return host
	}
	return strings.Trim(hostport, "[]")
}
