package http

import (
	"github.com/mrlokans/shelfsync/internal/demo"
	"github.com/mrlokans/shelfsync/internal/sessions"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Catalog
	Books   BookCatalog
	Authors AuthorCatalog

	// Observability
	Health HealthChecker
	Audit  AuditReader

	// Task queue client (optional)
	Tasks TaskRunner
	// AuditRetentionDays is passed to manually triggered audit cleanups.
	AuditRetentionDays int

	// Sessions back flash messages; nil disables them.
	SessionManager *sessions.SessionManager

	// CSRF protection for HTML forms; empty disables it.
	CSRFSecret    []byte
	SecureCookies bool

	// DemoMiddleware blocks writes when enabled (optional)
	DemoMiddleware *demo.Middleware

	// UI paths
	TemplatesPath string
	StaticPath    string

	// Application info
	Version string
}

// flashStore returns the session manager as a FlashStore, or a nil
// interface when sessions are disabled.
func (cfg RouterConfig) flashStore() FlashStore {
	if cfg.SessionManager == nil {
		return nil
	}
	return cfg.SessionManager
}
