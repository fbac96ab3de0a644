package catalog

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/mrlokans/shelfsync/internal/entities"
)

// SelectByIDs returns the members of pool whose identifier appears in ids,
// in pool order. Duplicate ids collapse and ids with no match in pool are
// ignored. A nil or empty ids selects nothing.
func SelectByIDs[T any](pool []T, ids []uuid.UUID, idOf func(T) uuid.UUID) []T {
	if len(ids) == 0 || len(pool) == 0 {
		return []T{}
	}

	wanted := lo.SliceToMap(ids, func(id uuid.UUID) (uuid.UUID, struct{}) {
		return id, struct{}{}
	})

	selected := lo.Filter(pool, func(item T, _ int) bool {
		_, ok := wanted[idOf(item)]
		return ok
	})
	return lo.UniqBy(selected, idOf)
}

func authorID(a entities.Author) uuid.UUID { return a.ID }

func bookID(b entities.Book) uuid.UUID { return b.ID }

// ReconcileBookAuthors replaces the book's whole author set with the
// authors from pool named by ids. Previously linked authors that are not
// selected are unlinked. The change is in memory only; the store persists
// it when the book is updated.
func ReconcileBookAuthors(book *entities.Book, ids []uuid.UUID, pool []entities.Author) (*entities.Book, error) {
	if book == nil {
		return nil, fmt.Errorf("reconcile book authors: nil book: %w", ErrInvalidArgument)
	}
	book.Authors = SelectByIDs(pool, ids, authorID)
	return book, nil
}

// ReconcileAuthorBooks replaces the author's whole book set with the books
// from pool named by ids.
func ReconcileAuthorBooks(author *entities.Author, ids []uuid.UUID, pool []entities.Book) (*entities.Author, error) {
	if author == nil {
		return nil, fmt.Errorf("reconcile author books: nil author: %w", ErrInvalidArgument)
	}
	author.Books = SelectByIDs(pool, ids, bookID)
	return author, nil
}
