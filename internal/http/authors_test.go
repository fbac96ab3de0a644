package http

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorsPages_IndexAndDetails(t *testing.T) {
	tc := setupCatalog(t)
	ada := tc.author(t, "Ada")
	tc.author(t, "Bob")
	tc.book(t, "Notes", ada)
	router := tc.router(t)

	w := doGet(router, "/authors")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "authors:2;Ada[Notes,];Bob[];", w.Body.String())

	w = doGet(router, "/authors/"+ada.ID.String())
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "author:Ada;book:Notes;", w.Body.String())

	w = doGet(router, "/authors/"+uuid.New().String())
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthorsPages_CreateWithBooks(t *testing.T) {
	tc := setupCatalog(t)
	notes := tc.book(t, "Notes")
	router := tc.router(t)

	w := doForm(router, "/authors", url.Values{
		"name":     {"Ada"},
		"book_ids": {notes.ID.String()},
	})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/authors", w.Header().Get("Location"))

	book, err := tc.books.Get(notes.ID)
	require.NoError(t, err)
	require.Len(t, book.Authors, 1)
	assert.Equal(t, "Ada", book.Authors[0].Name)
}

func TestAuthorsPages_CreateValidation(t *testing.T) {
	tc := setupCatalog(t)
	tc.book(t, "Notes")

	w := doForm(tc.router(t), "/authors", url.Values{"name": {""}})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "option:Notes=false;")
	assert.Contains(t, w.Body.String(), "error:name is required;")
}

func TestAuthorsPages_UpdateAndDelete(t *testing.T) {
	tc := setupCatalog(t)
	notes := tc.book(t, "Notes")
	diary := tc.book(t, "Diary")
	ada := tc.author(t, "Ada")
	router := tc.router(t)

	w := doGet(router, "/authors/"+ada.ID.String()+"/edit")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "form:Ada;editing:true;option:Diary=false;option:Notes=false;", w.Body.String())

	w = doForm(router, "/authors/"+ada.ID.String()+"/edit", url.Values{
		"id":       {ada.ID.String()},
		"name":     {"Ada Lovelace"},
		"book_ids": {notes.ID.String(), diary.ID.String()},
	})
	assert.Equal(t, http.StatusSeeOther, w.Code)

	got, err := tc.authors.Get(ada.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", got.Name)
	assert.ElementsMatch(t, []uuid.UUID{notes.ID, diary.ID}, got.BookIDs)

	w = doGet(router, "/authors/"+ada.ID.String()+"/delete")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "delete:Ada Lovelace", w.Body.String())

	w = doForm(router, "/authors/"+ada.ID.String()+"/delete", url.Values{})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/authors", w.Header().Get("Location"))

	book, err := tc.books.Get(notes.ID)
	require.NoError(t, err)
	assert.Empty(t, book.Authors)
}

func TestAuthorsPages_UpdateIDMismatch(t *testing.T) {
	tc := setupCatalog(t)
	ada := tc.author(t, "Ada")

	w := doForm(tc.router(t), "/authors/"+ada.ID.String()+"/edit", url.Values{
		"id":   {"not-a-uuid"},
		"name": {"Eve"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	got, err := tc.authors.Get(ada.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)
}
