package catalog

import "github.com/google/uuid"

// DefaultDepth expands one level of relations: a book view carries its
// authors, but those authors do not carry their books.
const DefaultDepth = 1

const (
	MaxTitleLength = 200
	MaxNameLength  = 100
)

// BookViewModel is the display and edit shape of a book.
type BookViewModel struct {
	ID        uuid.UUID         `json:"id"`
	Title     string            `json:"title" validate:"required,max=200"`
	AuthorIDs []uuid.UUID       `json:"author_ids"`
	Authors   []AuthorViewModel `json:"authors"`
}

// AuthorViewModel is the display and edit shape of an author.
type AuthorViewModel struct {
	ID      uuid.UUID       `json:"id"`
	Name    string          `json:"name" validate:"required,max=100"`
	BookIDs []uuid.UUID     `json:"book_ids"`
	Books   []BookViewModel `json:"books"`
}

// HasAuthor reports whether id is among the selected author IDs.
// Used by the edit form to pre-check options.
func (vm BookViewModel) HasAuthor(id uuid.UUID) bool {
	return containsID(vm.AuthorIDs, id)
}

// HasBook reports whether id is among the selected book IDs.
func (vm AuthorViewModel) HasBook(id uuid.UUID) bool {
	return containsID(vm.BookIDs, id)
}
