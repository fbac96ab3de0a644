// Package demo implements read-only mode: the catalog can be browsed but
// nothing can be created, edited or deleted.
package demo

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Message is the text shown when a write is rejected.
const Message = "This action is disabled in demo mode"

// Middleware blocks write operations in demo mode.
// Read-only operations (GET, HEAD, OPTIONS) are always allowed. Paths
// that begin with an allowed prefix pass through for any method.
type Middleware struct {
	enabled       bool
	allowedPrefix []string
}

// NewMiddleware creates a demo mode middleware.
func NewMiddleware(enabled bool, allowedPrefixes ...string) *Middleware {
	return &Middleware{enabled: enabled, allowedPrefix: allowedPrefixes}
}

// IsEnabled returns whether demo mode is active.
func (m *Middleware) IsEnabled() bool {
	return m.enabled
}

// Handler returns a Gin middleware that blocks write operations.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.enabled {
			c.Next()
			return
		}

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		if m.isAllowedPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		m.respondBlocked(c)
	}
}

func (m *Middleware) isAllowedPath(path string) bool {
	for _, allowed := range m.allowedPrefix {
		if strings.HasPrefix(path, allowed) {
			return true
		}
	}
	return false
}

// respondBlocked sends a 403 response, as JSON for API clients.
func (m *Middleware) respondBlocked(c *gin.Context) {
	accept := c.GetHeader("Accept")
	if strings.HasPrefix(c.Request.URL.Path, "/api/") || strings.Contains(accept, "application/json") {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":     Message,
			"demo_mode": true,
		})
		return
	}

	c.String(http.StatusForbidden, Message)
	c.Abort()
}

// ContextKeyDemoMode stores the demo flag in the gin context.
const ContextKeyDemoMode = "demo_mode"

// InjectContext middleware adds demo mode flag to context for template rendering.
func (m *Middleware) InjectContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyDemoMode, m.enabled)
		c.Next()
	}
}
