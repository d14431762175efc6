package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
)

// RequestLogger logs one line per request once it has been served.
func RequestLogger(c *gin.Context) {
	start := time.Now()

	c.Next()

	status := c.Writer.Status()
	evt := log.Info()
	if status >= http.StatusInternalServerError {
		evt = log.Error()
	}

	evt.
		Str("method", c.Request.Method).
		Str("path", c.FullPath()).
		Int("status", status).
		Dur("latency", time.Since(start)).
		Str("ip", c.ClientIP()).
		Msg("request")
}

// withCORS lets the configured browser origins reach the http endpoints.
func withCORS(allowedOrigins []string, next http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
	}).Handler(next)
}
