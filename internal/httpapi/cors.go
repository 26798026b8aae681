package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSConfig defines configuration for CORS middleware
type CORSConfig struct {
	AllowedOrigins []string
}

// CORSMiddleware applies the cards UI policy: listed origins may use any
// method and any header. "*" in AllowedOrigins allows every origin, but the
// response still names the actual origin.
func CORSMiddleware(corsConfig CORSConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "" {
			c.Next()
			return
		}

		allowed := false
		for _, allowedOrigin := range corsConfig.AllowedOrigins {
			if allowedOrigin == "*" || strings.EqualFold(allowedOrigin, origin) {
				allowed = true
				break
			}
		}

		if allowed {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")
			h.Set("Access-Control-Allow-Methods", allowMethods(c.Request))
			h.Set("Access-Control-Allow-Headers", allowHeaders(c.Request))
			h.Set("Access-Control-Max-Age", "86400")
		}

		// Answer preflight here so it never reaches the routes
		if c.Request.Method == http.MethodOptions && c.Request.Header.Get("Access-Control-Request-Method") != "" {
			if allowed {
				c.AbortWithStatus(http.StatusNoContent)
			} else {
				c.AbortWithStatus(http.StatusForbidden)
			}
			return
		}

		c.Next()
	}
}

// any method: echo the requested one on preflight
func allowMethods(r *http.Request) string {
	if m := r.Header.Get("Access-Control-Request-Method"); m != "" {
		return m
	}

	return "GET, POST, PUT, PATCH, DELETE, OPTIONS"
}

// any header: echo the requested ones on preflight
func allowHeaders(r *http.Request) string {
	if h := r.Header.Get("Access-Control-Request-Headers"); h != "" {
		return h
	}

	return "*"
}
