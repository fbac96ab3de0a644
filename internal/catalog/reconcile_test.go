package catalog

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/shelfsync/internal/entities"
)

func newAuthors(names ...string) []entities.Author {
	authors := make([]entities.Author, 0, len(names))
	for _, name := range names {
		authors = append(authors, entities.Author{ID: uuid.New(), Name: name})
	}
	return authors
}

func TestSelectByIDs(t *testing.T) {
	pool := newAuthors("A1", "A2", "A3")

	t.Run("nil ids select nothing", func(t *testing.T) {
		selected := SelectByIDs(pool, nil, authorID)
		assert.NotNil(t, selected)
		assert.Empty(t, selected)
	})

	t.Run("keeps pool order", func(t *testing.T) {
		selected := SelectByIDs(pool, []uuid.UUID{pool[2].ID, pool[0].ID}, authorID)
		assert.Equal(t, []uuid.UUID{pool[0].ID, pool[2].ID}, AuthorIDs(selected))
	})

	t.Run("duplicate ids collapse", func(t *testing.T) {
		selected := SelectByIDs(pool, []uuid.UUID{pool[1].ID, pool[1].ID, pool[1].ID}, authorID)
		require.Len(t, selected, 1)
		assert.Equal(t, "A2", selected[0].Name)
	})

	t.Run("duplicate pool entries collapse", func(t *testing.T) {
		doubled := append(append([]entities.Author{}, pool...), pool[0])
		selected := SelectByIDs(doubled, []uuid.UUID{pool[0].ID}, authorID)
		assert.Len(t, selected, 1)
	})

	t.Run("unknown ids are ignored", func(t *testing.T) {
		selected := SelectByIDs(pool, []uuid.UUID{uuid.New(), pool[1].ID}, authorID)
		assert.Equal(t, []uuid.UUID{pool[1].ID}, AuthorIDs(selected))
	})

	t.Run("empty pool selects nothing", func(t *testing.T) {
		selected := SelectByIDs([]entities.Author{}, []uuid.UUID{pool[0].ID}, authorID)
		assert.Empty(t, selected)
	})
}

func TestReconcileBookAuthors(t *testing.T) {
	t.Run("replaces the whole author set", func(t *testing.T) {
		pool := newAuthors("A1", "A2")
		book := &entities.Book{ID: uuid.New(), Title: "B1", Authors: []entities.Author{pool[0]}}

		updated, err := ReconcileBookAuthors(book, []uuid.UUID{pool[1].ID}, pool)
		require.NoError(t, err)
		assert.Same(t, book, updated)
		assert.Equal(t, []uuid.UUID{pool[1].ID}, AuthorIDs(book.Authors))
	})

	t.Run("empty ids clear all authors", func(t *testing.T) {
		pool := newAuthors("A1", "A2")
		book := &entities.Book{ID: uuid.New(), Title: "B1", Authors: pool}

		_, err := ReconcileBookAuthors(book, []uuid.UUID{}, pool)
		require.NoError(t, err)
		assert.Empty(t, book.Authors)

		book.Authors = pool
		_, err = ReconcileBookAuthors(book, nil, pool)
		require.NoError(t, err)
		assert.Empty(t, book.Authors)
	})

	t.Run("is idempotent", func(t *testing.T) {
		pool := newAuthors("A1", "A2", "A3")
		ids := []uuid.UUID{pool[0].ID, pool[2].ID}
		book := &entities.Book{ID: uuid.New(), Title: "B1"}

		_, err := ReconcileBookAuthors(book, ids, pool)
		require.NoError(t, err)
		first := AuthorIDs(book.Authors)

		_, err = ReconcileBookAuthors(book, ids, pool)
		require.NoError(t, err)
		assert.Equal(t, first, AuthorIDs(book.Authors))
	})

	t.Run("links only resolvable ids", func(t *testing.T) {
		pool := newAuthors("A1")
		book := &entities.Book{ID: uuid.New(), Title: "B1"}

		_, err := ReconcileBookAuthors(book, []uuid.UUID{uuid.New(), pool[0].ID}, pool)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{pool[0].ID}, AuthorIDs(book.Authors))
	})

	t.Run("nil book is an invalid argument", func(t *testing.T) {
		_, err := ReconcileBookAuthors(nil, nil, nil)
		assert.True(t, errors.Is(err, ErrInvalidArgument))
	})
}

func TestReconcileAuthorBooks(t *testing.T) {
	books := []entities.Book{
		{ID: uuid.New(), Title: "B1"},
		{ID: uuid.New(), Title: "B2"},
	}
	author := &entities.Author{ID: uuid.New(), Name: "A1", Books: []entities.Book{books[0]}}

	_, err := ReconcileAuthorBooks(author, []uuid.UUID{books[1].ID}, books)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{books[1].ID}, BookIDs(author.Books))

	_, err = ReconcileAuthorBooks(nil, nil, books)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
