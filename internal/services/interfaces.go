package services

import (
	"github.com/google/uuid"

	"github.com/mrlokans/shelfsync/internal/entities"
)

// BookStore defines database operations for books. Lookups of a missing
// book return an error wrapping catalog.ErrNotFound.
type BookStore interface {
	GetBookByID(id uuid.UUID) (*entities.Book, error)
	GetAllBooks() ([]entities.Book, error)
	ListBooks() ([]entities.Book, error)
	CreateBook(book *entities.Book) error
	UpdateBook(book *entities.Book) error
	DeleteBook(id uuid.UUID) (*entities.Book, error)
}

// AuthorStore defines database operations for authors.
type AuthorStore interface {
	GetAuthorByID(id uuid.UUID) (*entities.Author, error)
	GetAllAuthors() ([]entities.Author, error)
	ListAuthors() ([]entities.Author, error)
	CreateAuthor(author *entities.Author) error
	UpdateAuthor(author *entities.Author) error
	DeleteAuthor(id uuid.UUID) (*entities.Author, error)
}

// UnitOfWork gives access to the stores and groups writes into one
// transaction.
type UnitOfWork interface {
	Books() BookStore
	Authors() AuthorStore
	Transaction(fn func(uow UnitOfWork) error) error
}

// AuditLogger records successful catalog changes.
type AuditLogger interface {
	LogCreate(entityType string, entityID uuid.UUID, name string)
	LogUpdate(entityType string, entityID uuid.UUID, name string, linked int)
	LogDelete(entityType string, entityID uuid.UUID, name string)
}
