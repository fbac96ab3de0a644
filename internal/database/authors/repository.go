// Package authors provides database operations for author management.
//
// This package implements the AuthorStore interface defined in
// internal/services/interfaces.go.
//
//	var _ services.AuthorStore = (*Repository)(nil)
package authors

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mrlokans/shelfsync/internal/catalog"
	"github.com/mrlokans/shelfsync/internal/entities"
)

// Repository handles all author database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new authors repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func booksByTitle(db *gorm.DB) *gorm.DB {
	return db.Order("title ASC")
}

// GetAuthorByID retrieves an author with their books.
func (r *Repository) GetAuthorByID(id uuid.UUID) (*entities.Author, error) {
	var author entities.Author
	err := r.db.Preload("Books", booksByTitle).First(&author, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("author %s: %w", id, catalog.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// GetAllAuthors retrieves all authors with their books, ordered by name.
func (r *Repository) GetAllAuthors() ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.Preload("Books", booksByTitle).Order("name ASC").Find(&authors).Error
	return authors, err
}

// ListAuthors retrieves all authors without associations, for use as the
// candidate pool when linking authors to a book.
func (r *Repository) ListAuthors() ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.Order("name ASC").Find(&authors).Error
	return authors, err
}

// CreateAuthor inserts an author and links them to author.Books.
func (r *Repository) CreateAuthor(author *entities.Author) error {
	return r.db.Omit("Books.*").Create(author).Error
}

// UpdateAuthor saves the name and replaces the stored book links.
func (r *Repository) UpdateAuthor(author *entities.Author) error {
	if err := r.db.Model(&entities.Author{}).Where("id = ?", author.ID).Update("name", author.Name).Error; err != nil {
		return fmt.Errorf("update author name: %w", err)
	}

	books := r.db.Model(author).Association("Books")
	if len(author.Books) == 0 {
		if err := books.Clear(); err != nil {
			return fmt.Errorf("clear author books: %w", err)
		}
		return nil
	}
	if err := books.Replace(author.Books); err != nil {
		return fmt.Errorf("replace author books: %w", err)
	}
	return nil
}

// DeleteAuthor removes an author and their book links, keeping the books.
func (r *Repository) DeleteAuthor(id uuid.UUID) (*entities.Author, error) {
	author, err := r.GetAuthorByID(id)
	if err != nil {
		return nil, err
	}
	if err := r.db.Model(author).Association("Books").Clear(); err != nil {
		return nil, fmt.Errorf("unlink author books: %w", err)
	}
	if err := r.db.Delete(&entities.Author{}, "id = ?", author.ID).Error; err != nil {
		return nil, fmt.Errorf("delete author: %w", err)
	}
	return author, nil
}
