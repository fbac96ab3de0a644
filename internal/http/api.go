package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/shelfsync/internal/catalog"
)

// BooksAPIController exposes the book catalog as JSON.
type BooksAPIController struct {
	books BookCatalog
}

func NewBooksAPIController(books BookCatalog) *BooksAPIController {
	return &BooksAPIController{books: books}
}

// List handles GET /api/books
func (bc *BooksAPIController) List(c *gin.Context) {
	books, err := bc.books.List()
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": books, "total": len(books)})
}

// Get handles GET /api/books/:id
func (bc *BooksAPIController) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.books.Get(id)
	if err != nil {
		respondCatalogError(c, err, "book")
		return
	}
	c.JSON(http.StatusOK, book)
}

// Create handles POST /api/books
func (bc *BooksAPIController) Create(c *gin.Context) {
	var vm catalog.BookViewModel
	if err := c.ShouldBindJSON(&vm); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	book, err := bc.books.Create(vm)
	if err != nil {
		respondCatalogError(c, err, "book")
		return
	}
	respondCreated(c, book)
}

// Update handles PUT /api/books/:id
func (bc *BooksAPIController) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var vm catalog.BookViewModel
	if err := c.ShouldBindJSON(&vm); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	book, err := bc.books.Update(id, vm)
	if err != nil {
		respondCatalogError(c, err, "book")
		return
	}
	c.JSON(http.StatusOK, book)
}

// Delete handles DELETE /api/books/:id
func (bc *BooksAPIController) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := bc.books.Delete(id); err != nil {
		respondCatalogError(c, err, "book")
		return
	}
	respondSuccess(c, "book deleted")
}

// AuthorsAPIController exposes the author catalog as JSON.
type AuthorsAPIController struct {
	authors AuthorCatalog
}

func NewAuthorsAPIController(authors AuthorCatalog) *AuthorsAPIController {
	return &AuthorsAPIController{authors: authors}
}

// List handles GET /api/authors
func (ac *AuthorsAPIController) List(c *gin.Context) {
	authors, err := ac.authors.List()
	if err != nil {
		respondInternalError(c, err, "list authors")
		return
	}
	c.JSON(http.StatusOK, gin.H{"authors": authors, "total": len(authors)})
}

// Get handles GET /api/authors/:id
func (ac *AuthorsAPIController) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	author, err := ac.authors.Get(id)
	if err != nil {
		respondCatalogError(c, err, "author")
		return
	}
	c.JSON(http.StatusOK, author)
}

// Create handles POST /api/authors
func (ac *AuthorsAPIController) Create(c *gin.Context) {
	var vm catalog.AuthorViewModel
	if err := c.ShouldBindJSON(&vm); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	author, err := ac.authors.Create(vm)
	if err != nil {
		respondCatalogError(c, err, "author")
		return
	}
	respondCreated(c, author)
}

// Update handles PUT /api/authors/:id
func (ac *AuthorsAPIController) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var vm catalog.AuthorViewModel
	if err := c.ShouldBindJSON(&vm); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	author, err := ac.authors.Update(id, vm)
	if err != nil {
		respondCatalogError(c, err, "author")
		return
	}
	c.JSON(http.StatusOK, author)
}

// Delete handles DELETE /api/authors/:id
func (ac *AuthorsAPIController) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := ac.authors.Delete(id); err != nil {
		respondCatalogError(c, err, "author")
		return
	}
	respondSuccess(c, "author deleted")
}
