package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Book and Author share a single join table (book_authors), so both
// traversal directions read the same rows.
type Book struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"index;size:200;not null" json:"title"`
	Authors   []Author  `gorm:"many2many:book_authors;constraint:OnDelete:CASCADE;" json:"authors,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Author struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"index;size:100;not null" json:"name"`
	Books     []Book    `gorm:"many2many:book_authors;constraint:OnDelete:CASCADE;" json:"books,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookAuthorsTable is the join table backing Book.Authors and Author.Books.
const BookAuthorsTable = "book_authors"

func (b *Book) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func (a *Author) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
