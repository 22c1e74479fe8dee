package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// ConfigCORS allows the given origins. With none configured every origin is
// allowed.
func ConfigCORS(allowedDomains []string) gin.HandlerFunc {
	conf := cors.DefaultConfig()
	if len(allowedDomains) == 0 {
		conf.AllowAllOrigins = true
	} else {
		conf.AllowOrigins = allowedDomains
	}
	conf.AllowHeaders = append(conf.AllowHeaders, "X-Request-ID")
	conf.ExposeHeaders = []string{"X-Request-ID"}

	return cors.New(conf)
}
