package services_test

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/shelfsync/internal/catalog"
	"github.com/mrlokans/shelfsync/internal/database"
	"github.com/mrlokans/shelfsync/internal/entities"
	"github.com/mrlokans/shelfsync/internal/services"
)

type recordedEvent struct {
	action     string
	entityType string
	id         uuid.UUID
	name       string
	linked     int
}

// recordingAudit is an in-memory services.AuditLogger.
type recordingAudit struct {
	events []recordedEvent
}

func (r *recordingAudit) LogCreate(entityType string, id uuid.UUID, name string) {
	r.events = append(r.events, recordedEvent{action: "create", entityType: entityType, id: id, name: name})
}

func (r *recordingAudit) LogUpdate(entityType string, id uuid.UUID, name string, linked int) {
	r.events = append(r.events, recordedEvent{action: "update", entityType: entityType, id: id, name: name, linked: linked})
}

func (r *recordingAudit) LogDelete(entityType string, id uuid.UUID, name string) {
	r.events = append(r.events, recordedEvent{action: "delete", entityType: entityType, id: id, name: name})
}

type fixture struct {
	db      *database.Database
	books   *services.BookService
	authors *services.AuthorService
	audit   *recordingAudit
}

func setupServices(t *testing.T) *fixture {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "catalog.db"), database.WithLogLevel(logger.Silent))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	uow := database.NewUnitOfWork(db.DB)
	audit := &recordingAudit{}
	return &fixture{
		db:      db,
		books:   services.NewBookService(uow, audit),
		authors: services.NewAuthorService(uow, audit),
		audit:   audit,
	}
}

func (f *fixture) author(t *testing.T, name string) catalog.AuthorViewModel {
	t.Helper()
	vm, err := f.authors.Create(catalog.AuthorViewModel{Name: name})
	require.NoError(t, err)
	return vm
}

func TestBookService_CreateWithAuthors(t *testing.T) {
	f := setupServices(t)
	a1 := f.author(t, "A1")
	a2 := f.author(t, "A2")

	book, err := f.books.Create(catalog.BookViewModel{
		Title:     "Dune",
		AuthorIDs: []uuid.UUID{a1.ID, a2.ID},
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, book.ID)
	assert.ElementsMatch(t, []uuid.UUID{a1.ID, a2.ID}, book.AuthorIDs)

	for _, id := range []uuid.UUID{a1.ID, a2.ID} {
		author, err := f.authors.Get(id)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{book.ID}, author.BookIDs)
	}
}

func TestBookService_CreateIgnoresPayloadID(t *testing.T) {
	f := setupServices(t)
	payloadID := uuid.New()

	book, err := f.books.Create(catalog.BookViewModel{ID: payloadID, Title: "Emma"})
	require.NoError(t, err)
	assert.NotEqual(t, payloadID, book.ID)
	assert.NotEqual(t, uuid.Nil, book.ID)
}

func TestBookService_CreateValidation(t *testing.T) {
	f := setupServices(t)

	_, err := f.books.Create(catalog.BookViewModel{Title: "   "})
	ve, ok := catalog.IsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "title")

	books, err := f.books.List()
	require.NoError(t, err)
	assert.Empty(t, books)
	assert.Empty(t, f.audit.events)
}

func TestBookService_CreateDropsUnknownAuthors(t *testing.T) {
	f := setupServices(t)
	a1 := f.author(t, "A1")

	book, err := f.books.Create(catalog.BookViewModel{
		Title:     "Partly Known",
		AuthorIDs: []uuid.UUID{a1.ID, uuid.New(), a1.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a1.ID}, book.AuthorIDs)
}

func TestBookService_UpdateReplacesAuthors(t *testing.T) {
	f := setupServices(t)
	a1 := f.author(t, "A1")
	a2 := f.author(t, "A2")
	a3 := f.author(t, "A3")

	book, err := f.books.Create(catalog.BookViewModel{Title: "B", AuthorIDs: []uuid.UUID{a1.ID, a2.ID}})
	require.NoError(t, err)

	updated, err := f.books.Update(book.ID, catalog.BookViewModel{
		ID:        book.ID,
		Title:     "B2",
		AuthorIDs: []uuid.UUID{a2.ID, a3.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "B2", updated.Title)
	assert.ElementsMatch(t, []uuid.UUID{a2.ID, a3.ID}, updated.AuthorIDs)

	first, err := f.authors.Get(a1.ID)
	require.NoError(t, err)
	assert.Empty(t, first.BookIDs)

	third, err := f.authors.Get(a3.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{book.ID}, third.BookIDs)

	t.Run("idempotent", func(t *testing.T) {
		again, err := f.books.Update(book.ID, catalog.BookViewModel{
			ID:        book.ID,
			Title:     "B2",
			AuthorIDs: []uuid.UUID{a2.ID, a3.ID},
		})
		require.NoError(t, err)
		assert.ElementsMatch(t, updated.AuthorIDs, again.AuthorIDs)

		stats, err := f.db.GetStats()
		require.NoError(t, err)
		assert.Equal(t, int64(2), stats.Links)
	})

	t.Run("empty list clears", func(t *testing.T) {
		cleared, err := f.books.Update(book.ID, catalog.BookViewModel{ID: book.ID, Title: "B2"})
		require.NoError(t, err)
		assert.Empty(t, cleared.AuthorIDs)

		stats, err := f.db.GetStats()
		require.NoError(t, err)
		assert.Equal(t, int64(0), stats.Links)
		assert.Equal(t, int64(3), stats.Authors)
	})
}

func TestBookService_UpdateErrors(t *testing.T) {
	f := setupServices(t)
	book, err := f.books.Create(catalog.BookViewModel{Title: "Kept"})
	require.NoError(t, err)

	t.Run("id mismatch is checked before validation", func(t *testing.T) {
		_, err := f.books.Update(book.ID, catalog.BookViewModel{ID: uuid.New(), Title: ""})
		assert.ErrorIs(t, err, catalog.ErrBadRequest)
	})

	t.Run("validation failure leaves the book untouched", func(t *testing.T) {
		_, err := f.books.Update(book.ID, catalog.BookViewModel{ID: book.ID, Title: ""})
		_, ok := catalog.IsValidationError(err)
		assert.True(t, ok)

		found, err := f.books.Get(book.ID)
		require.NoError(t, err)
		assert.Equal(t, "Kept", found.Title)
	})

	t.Run("missing book", func(t *testing.T) {
		id := uuid.New()
		_, err := f.books.Update(id, catalog.BookViewModel{ID: id, Title: "Ghost"})
		assert.ErrorIs(t, err, catalog.ErrNotFound)
	})
}

func TestBookService_DeleteKeepsAuthors(t *testing.T) {
	f := setupServices(t)
	a1 := f.author(t, "A1")
	book, err := f.books.Create(catalog.BookViewModel{Title: "B", AuthorIDs: []uuid.UUID{a1.ID}})
	require.NoError(t, err)

	require.NoError(t, f.books.Delete(book.ID))

	_, err = f.books.Get(book.ID)
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	author, err := f.authors.Get(a1.ID)
	require.NoError(t, err)
	assert.Empty(t, author.BookIDs)

	assert.ErrorIs(t, f.books.Delete(book.ID), catalog.ErrNotFound)
}

func TestBookService_ListAndCandidates(t *testing.T) {
	f := setupServices(t)
	a1 := f.author(t, "Zed")
	f.author(t, "Amy")
	_, err := f.books.Create(catalog.BookViewModel{Title: "T", AuthorIDs: []uuid.UUID{a1.ID}})
	require.NoError(t, err)

	books, err := f.books.List()
	require.NoError(t, err)
	require.Len(t, books, 1)
	require.Len(t, books[0].Authors, 1)
	assert.Equal(t, "Zed", books[0].Authors[0].Name)
	assert.Empty(t, books[0].Authors[0].Books)

	candidates, err := f.books.Candidates()
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "Amy", candidates[0].Name)
}

func TestAuthorService_UpdateAndDelete(t *testing.T) {
	f := setupServices(t)
	b1, err := f.books.Create(catalog.BookViewModel{Title: "B1"})
	require.NoError(t, err)
	b2, err := f.books.Create(catalog.BookViewModel{Title: "B2"})
	require.NoError(t, err)

	author, err := f.authors.Create(catalog.AuthorViewModel{Name: "Writer", BookIDs: []uuid.UUID{b1.ID}})
	require.NoError(t, err)

	updated, err := f.authors.Update(author.ID, catalog.AuthorViewModel{
		ID:      author.ID,
		Name:    "Renamed",
		BookIDs: []uuid.UUID{b2.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, []uuid.UUID{b2.ID}, updated.BookIDs)

	book, err := f.books.Get(b2.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{author.ID}, book.AuthorIDs)

	require.NoError(t, f.authors.Delete(author.ID))
	book, err = f.books.Get(b2.ID)
	require.NoError(t, err)
	assert.Empty(t, book.AuthorIDs)

	_, err = f.authors.Update(b1.ID, catalog.AuthorViewModel{ID: author.ID, Name: "x"})
	assert.ErrorIs(t, err, catalog.ErrBadRequest)
}

func TestServices_AuditTrail(t *testing.T) {
	f := setupServices(t)
	author := f.author(t, "Audited")
	_, err := f.authors.Update(author.ID, catalog.AuthorViewModel{ID: author.ID, Name: "Audited Again"})
	require.NoError(t, err)
	require.NoError(t, f.authors.Delete(author.ID))

	require.Len(t, f.audit.events, 3)
	assert.Equal(t, "create", f.audit.events[0].action)
	assert.Equal(t, "update", f.audit.events[1].action)
	assert.Equal(t, "Audited Again", f.audit.events[1].name)
	assert.Equal(t, "delete", f.audit.events[2].action)
	assert.Equal(t, author.ID, f.audit.events[2].id)
}

func TestServices_NilAuditLogger(t *testing.T) {
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "noaudit.db"), database.WithLogLevel(logger.Silent))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := services.NewBookService(database.NewUnitOfWork(db.DB), nil)
	book, err := svc.Create(catalog.BookViewModel{Title: "Quiet"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(book.ID))

	var count int64
	db.DB.Model(&entities.AuditEvent{}).Count(&count)
	assert.Zero(t, count)
}
