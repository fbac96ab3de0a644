// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations, stats
//	├── unit_of_work.go  # Transaction-scoped repository access
//	├── books/           # Book CRUD and author links
//	├── authors/         # Author CRUD and book links
//	├── links/           # book_authors integrity checks
//	└── audit/           # Audit event storage
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	// Initialize database connection
//	db, err := database.NewDatabase("./shelfsync.db")
//
//	// Create domain-specific repositories
//	booksRepo := books.NewRepository(db.DB)
//	linksRepo := links.NewRepository(db.DB)
//
//	// Use repositories
//	book, err := booksRepo.GetBookByID(id)
//	removed, err := linksRepo.DeleteDanglingLinks()
//
// # Transactions
//
// Catalog services never hold repositories directly. They receive a
// UnitOfWork and run every write through Transaction, so a scalar update
// and the association replacement commit or roll back together:
//
//	uow := database.NewUnitOfWork(db.DB)
//	err := uow.Transaction(func(tx services.UnitOfWork) error {
//		book, err := tx.Books().GetBookByID(id)
//		...
//		return tx.Books().UpdateBook(book)
//	})
//
// # Interface Implementations
//
//   - books.Repository: implements services.BookStore
//   - authors.Repository: implements services.AuthorStore
//   - UnitOfWork: implements services.UnitOfWork
package database
