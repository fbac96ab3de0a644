// Package sessions carries short-lived per-browser state, such as the
// flash message shown after a redirect, in an scs session backed by the
// catalog's SQLite database.
package sessions

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"github.com/mrlokans/shelfsync/internal/config"
)

// Session data keys
const (
	SessionKeyFlash      = "flash"
	SessionKeyFlashLevel = "flash_level"
)

// Flash levels understood by the layout template.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash is a one-time message rendered on the next page.
type Flash struct {
	Message string
	Level   string
}

// SessionManager wraps scs.SessionManager with application-specific methods.
type SessionManager struct {
	*scs.SessionManager
}

// NewSessionManager creates a configured session manager.
// The sqlDB parameter should be the underlying *sql.DB from GORM.
func NewSessionManager(sqlDB *sql.DB, cfg config.Session) (*SessionManager, error) {
	_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, err
	}

	sm := scs.New()
	sm.Store = sqlite3store.New(sqlDB)

	if cfg.Lifetime > 0 {
		sm.Lifetime = cfg.Lifetime
	}

	sm.Cookie.Name = "shelfsync_session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"

	return &SessionManager{SessionManager: sm}, nil
}

// SetFlash stores a message for the next rendered page.
func (sm *SessionManager) SetFlash(ctx context.Context, level, message string) {
	sm.Put(ctx, SessionKeyFlash, message)
	sm.Put(ctx, SessionKeyFlashLevel, level)
}

// PopFlash returns and clears the pending flash message, or nil when there
// is none.
func (sm *SessionManager) PopFlash(ctx context.Context) *Flash {
	message := sm.PopString(ctx, SessionKeyFlash)
	level := sm.PopString(ctx, SessionKeyFlashLevel)
	if message == "" {
		return nil
	}
	if level == "" {
		level = FlashSuccess
	}
	return &Flash{Message: message, Level: level}
}
