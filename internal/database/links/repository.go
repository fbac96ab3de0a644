// Package links maintains the book_authors join table.
package links

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/shelfsync/internal/entities"
)

// Repository handles integrity checks on book/author links.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new links repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

const danglingLinksCondition = `book_id NOT IN (SELECT id FROM books)
	OR author_id NOT IN (SELECT id FROM authors)`

// CountLinks returns the number of book/author links.
func (r *Repository) CountLinks() (int64, error) {
	var count int64
	err := r.db.Table(entities.BookAuthorsTable).Count(&count).Error
	return count, err
}

// CountDanglingLinks returns the number of links whose book or author no
// longer exists.
func (r *Repository) CountDanglingLinks() (int64, error) {
	var count int64
	err := r.db.Table(entities.BookAuthorsTable).Where(danglingLinksCondition).Count(&count).Error
	return count, err
}

// DeleteDanglingLinks removes links whose book or author no longer exists.
// Returns the number of deleted links.
func (r *Repository) DeleteDanglingLinks() (int64, error) {
	result := r.db.Exec(fmt.Sprintf("DELETE FROM %s WHERE %s", entities.BookAuthorsTable, danglingLinksCondition))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
