package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/shelfsync/internal/catalog"
)

// BooksController serves the book pages. Every form post redirects to the
// list on success and re-renders the form with 422 on validation errors.
type BooksController struct {
	books BookCatalog
	flash FlashStore
}

func NewBooksController(books BookCatalog, flash FlashStore) *BooksController {
	return &BooksController{books: books, flash: flash}
}

// Index handles GET /books
func (bc *BooksController) Index(c *gin.Context) {
	books, err := bc.books.List()
	if err != nil {
		renderInternalError(c, err, "list books")
		return
	}

	renderHTML(c, http.StatusOK, "books", gin.H{
		"Books":      books,
		"TotalBooks": len(books),
	})
}

// Details handles GET /books/:id
func (bc *BooksController) Details(c *gin.Context) {
	id, ok := pageRouteID(c)
	if !ok {
		return
	}

	book, err := bc.books.Get(id)
	if err != nil {
		renderCatalogError(c, err, "book details")
		return
	}

	renderHTML(c, http.StatusOK, "book", gin.H{"Book": book})
}

// New handles GET /books/new
func (bc *BooksController) New(c *gin.Context) {
	bc.renderForm(c, http.StatusOK, catalog.BookViewModel{}, nil, false)
}

// Create handles POST /books
func (bc *BooksController) Create(c *gin.Context) {
	var form bookForm
	if err := c.ShouldBind(&form); err != nil {
		renderBadRequest(c, "The form could not be read.")
		return
	}
	vm := form.viewModel()

	created, err := bc.books.Create(vm)
	if err != nil {
		if ve, ok := catalog.IsValidationError(err); ok {
			bc.renderForm(c, http.StatusUnprocessableEntity, vm, ve.Fields, false)
			return
		}
		renderCatalogError(c, err, "create book")
		return
	}

	redirectWithFlash(c, bc.flash, "/books", "Book \""+created.Title+"\" created")
}

// Edit handles GET /books/:id/edit
func (bc *BooksController) Edit(c *gin.Context) {
	id, ok := pageRouteID(c)
	if !ok {
		return
	}

	book, err := bc.books.Get(id)
	if err != nil {
		renderCatalogError(c, err, "edit book")
		return
	}

	bc.renderForm(c, http.StatusOK, book, nil, true)
}

// Update handles POST /books/:id/edit
func (bc *BooksController) Update(c *gin.Context) {
	id, ok := pageRouteID(c)
	if !ok {
		return
	}

	var form bookForm
	if err := c.ShouldBind(&form); err != nil {
		renderBadRequest(c, "The form could not be read.")
		return
	}
	vm := form.viewModel()

	updated, err := bc.books.Update(id, vm)
	if err != nil {
		if ve, ok := catalog.IsValidationError(err); ok {
			bc.renderForm(c, http.StatusUnprocessableEntity, vm, ve.Fields, true)
			return
		}
		renderCatalogError(c, err, "update book")
		return
	}

	redirectWithFlash(c, bc.flash, "/books", "Book \""+updated.Title+"\" saved")
}

// Delete handles GET /books/:id/delete
func (bc *BooksController) Delete(c *gin.Context) {
	id, ok := pageRouteID(c)
	if !ok {
		return
	}

	book, err := bc.books.Get(id)
	if err != nil {
		renderCatalogError(c, err, "delete book")
		return
	}

	renderHTML(c, http.StatusOK, "book_delete", gin.H{"Book": book})
}

// DeleteConfirmed handles POST /books/:id/delete. A book that is already
// gone is not an error; the user lands on the list either way.
func (bc *BooksController) DeleteConfirmed(c *gin.Context) {
	id, ok := pageRouteID(c)
	if !ok {
		return
	}

	if err := bc.books.Delete(id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.Redirect(http.StatusSeeOther, "/books")
			return
		}
		renderInternalError(c, err, "delete book")
		return
	}

	redirectWithFlash(c, bc.flash, "/books", "Book deleted")
}

// renderForm renders the create/edit form with the full author pool. The
// pool is loaded again on every render, including after a failed submit.
func (bc *BooksController) renderForm(c *gin.Context, status int, vm catalog.BookViewModel, errs map[string]string, editing bool) {
	pool, err := bc.books.Candidates()
	if err != nil {
		renderInternalError(c, err, "load authors")
		return
	}

	renderHTML(c, status, "book_form", gin.H{
		"Book":    vm,
		"Authors": authorOptions(pool, vm),
		"Errors":  errs,
		"Editing": editing,
	})
}
