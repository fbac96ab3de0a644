package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/shelfsync/internal/audit"
	"github.com/mrlokans/shelfsync/internal/database"
	"github.com/mrlokans/shelfsync/internal/database/authors"
	"github.com/mrlokans/shelfsync/internal/database/books"
	"github.com/mrlokans/shelfsync/internal/database/links"
	"github.com/mrlokans/shelfsync/internal/http"
	"github.com/mrlokans/shelfsync/internal/services"
	"github.com/mrlokans/shelfsync/internal/sessions"
	"github.com/mrlokans/shelfsync/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ services.BookStore = (*books.Repository)(nil)
var _ services.AuthorStore = (*authors.Repository)(nil)
var _ services.UnitOfWork = (*database.UnitOfWork)(nil)

// =============================================================================
// Catalog Services
// =============================================================================

var _ http.BookCatalog = (*services.BookService)(nil)
var _ http.AuthorCatalog = (*services.AuthorService)(nil)

// =============================================================================
// Audit
// =============================================================================

var _ services.AuditLogger = (*audit.Service)(nil)
var _ http.AuditReader = (*audit.Service)(nil)
var _ tasks.SweepRecorder = (*audit.Service)(nil)
var _ tasks.AuditEventCleaner = (*audit.Service)(nil)

// =============================================================================
// Infrastructure
// =============================================================================

var _ http.HealthChecker = (*database.Database)(nil)
var _ http.FlashStore = (*sessions.SessionManager)(nil)
var _ http.TaskRunner = (*tasks.Client)(nil)
var _ tasks.LinkSweeper = (*links.Repository)(nil)
