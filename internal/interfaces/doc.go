// Package interfaces documents the core abstractions used throughout the application.
//
// This package consolidates interface documentation to help contributors
// find extension points and how to implement new functionality.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - BookStore: Book persistence with author links (internal/services/interfaces.go)
//   - AuthorStore: Author persistence with book links (internal/services/interfaces.go)
//   - UnitOfWork: Store access inside one transaction (internal/services/interfaces.go)
//
// ## Catalog Interfaces
//
//   - BookCatalog / AuthorCatalog: What HTTP controllers need from the
//     catalog services (internal/http/stores.go)
//   - AuditLogger: Records successful catalog writes (internal/services/interfaces.go)
//   - AuditReader: Lists audit events (internal/http/stores.go)
//
// ## Maintenance Interfaces
//
//   - LinkSweeper: Removes dangling join rows (internal/tasks/sweep_links.go)
//   - SweepRecorder: Records sweep outcomes (internal/tasks/sweep_links.go)
//   - AuditEventCleaner: Prunes old audit events (internal/tasks/cleanup_audit.go)
//   - TaskRunner: Enqueues maintenance tasks from HTTP (internal/http/tasks.go)
//
// ## Infrastructure Interfaces
//
//   - HealthChecker: Database ping and row counts (internal/http/health.go)
//   - FlashStore: One-time messages across redirects (internal/http/stores.go)
//
// # Adding a New Related Entity
//
// To add an entity linked to books the same way authors are (e.g., genres):
//
//  1. Define the entity in internal/entities/ with a many2many tag that
//     names its own join table, on both sides of the relation.
//
//  2. Add a view model and projector pair in internal/catalog/, reusing
//     SelectByIDs for the reconciliation.
//
//  3. Create sub-package internal/database/genres/:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  4. Expose the store through services.UnitOfWork and add a service.
//
//  5. Add a compile-time check:
//
//     var _ services.GenreStore = (*genres.Repository)(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// This pattern is used throughout the codebase. See checks.go for examples.
package interfaces
