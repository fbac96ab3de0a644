// Package books provides database operations for book management.
//
// This package implements the BookStore interface defined in
// internal/services/interfaces.go.
//
// # Interface Implementation
//
//	var _ services.BookStore = (*Repository)(nil)
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.GetBookByID(id)
package books

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mrlokans/shelfsync/internal/catalog"
	"github.com/mrlokans/shelfsync/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func authorsByName(db *gorm.DB) *gorm.DB {
	return db.Order("name ASC")
}

// GetBookByID retrieves a book with its authors.
func (r *Repository) GetBookByID(id uuid.UUID) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Preload("Authors", authorsByName).First(&book, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("book %s: %w", id, catalog.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetAllBooks retrieves all books with their authors, ordered by title.
func (r *Repository) GetAllBooks() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Preload("Authors", authorsByName).Order("title ASC").Find(&books).Error
	return books, err
}

// ListBooks retrieves all books without associations. This is the
// candidate pool offered when linking books to an author.
func (r *Repository) ListBooks() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Order("title ASC").Find(&books).Error
	return books, err
}

// CreateBook inserts a book and links it to book.Authors. The authors
// must already exist; they are referenced, not upserted.
func (r *Repository) CreateBook(book *entities.Book) error {
	return r.db.Omit("Authors.*").Create(book).Error
}

// UpdateBook saves the title and replaces the stored author links with
// book.Authors. Call it inside a transaction so both writes commit together.
func (r *Repository) UpdateBook(book *entities.Book) error {
	if err := r.db.Model(&entities.Book{}).Where("id = ?", book.ID).Update("title", book.Title).Error; err != nil {
		return fmt.Errorf("update book title: %w", err)
	}

	authors := r.db.Model(book).Association("Authors")
	if len(book.Authors) == 0 {
		if err := authors.Clear(); err != nil {
			return fmt.Errorf("clear book authors: %w", err)
		}
		return nil
	}
	if err := authors.Replace(book.Authors); err != nil {
		return fmt.Errorf("replace book authors: %w", err)
	}
	return nil
}

// DeleteBook removes a book and its author links. The authors themselves
// are kept. Returns the deleted book as it was loaded.
func (r *Repository) DeleteBook(id uuid.UUID) (*entities.Book, error) {
	book, err := r.GetBookByID(id)
	if err != nil {
		return nil, err
	}
	if err := r.db.Model(book).Association("Authors").Clear(); err != nil {
		return nil, fmt.Errorf("unlink book authors: %w", err)
	}
	if err := r.db.Delete(&entities.Book{}, "id = ?", book.ID).Error; err != nil {
		return nil, fmt.Errorf("delete book: %w", err)
	}
	return book, nil
}
