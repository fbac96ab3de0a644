package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/shelfsync/internal/catalog"
)

// AuthorsController serves the author pages; it mirrors BooksController.
type AuthorsController struct {
	authors AuthorCatalog
	flash   FlashStore
}

func NewAuthorsController(authors AuthorCatalog, flash FlashStore) *AuthorsController {
	return &AuthorsController{authors: authors, flash: flash}
}

// Index handles GET /authors
func (ac *AuthorsController) Index(c *gin.Context) {
	authors, err := ac.authors.List()
	if err != nil {
		renderInternalError(c, err, "list authors")
		return
	}

	renderHTML(c, http.StatusOK, "authors", gin.H{
		"Authors":      authors,
		"TotalAuthors": len(authors),
	})
}

// Details handles GET /authors/:id
func (ac *AuthorsController) Details(c *gin.Context) {
	id, ok := pageRouteID(c)
	if !ok {
		return
	}

	author, err := ac.authors.Get(id)
	if err != nil {
		renderCatalogError(c, err, "author details")
		return
	}

	renderHTML(c, http.StatusOK, "author", gin.H{"Author": author})
}

// New handles GET /authors/new
func (ac *AuthorsController) New(c *gin.Context) {
	ac.renderForm(c, http.StatusOK, catalog.AuthorViewModel{}, nil, false)
}

// Create handles POST /authors
func (ac *AuthorsController) Create(c *gin.Context) {
	var form authorForm
	if err := c.ShouldBind(&form); err != nil {
		renderBadRequest(c, "The form could not be read.")
		return
	}
	vm := form.viewModel()

	created, err := ac.authors.Create(vm)
	if err != nil {
		if ve, ok := catalog.IsValidationError(err); ok {
			ac.renderForm(c, http.StatusUnprocessableEntity, vm, ve.Fields, false)
			return
		}
		renderCatalogError(c, err, "create author")
		return
	}

	redirectWithFlash(c, ac.flash, "/authors", "Author \""+created.Name+"\" created")
}

// Edit handles GET /authors/:id/edit
func (ac *AuthorsController) Edit(c *gin.Context) {
	id, ok := pageRouteID(c)
	if !ok {
		return
	}

	author, err := ac.authors.Get(id)
	if err != nil {
		renderCatalogError(c, err, "edit author")
		return
	}

	ac.renderForm(c, http.StatusOK, author, nil, true)
}

// Update handles POST /authors/:id/edit
func (ac *AuthorsController) Update(c *gin.Context) {
	id, ok := pageRouteID(c)
	if !ok {
		return
	}

	var form authorForm
	if err := c.ShouldBind(&form); err != nil {
		renderBadRequest(c, "The form could not be read.")
		return
	}
	vm := form.viewModel()

	updated, err := ac.authors.Update(id, vm)
	if err != nil {
		if ve, ok := catalog.IsValidationError(err); ok {
			ac.renderForm(c, http.StatusUnprocessableEntity, vm, ve.Fields, true)
			return
		}
		renderCatalogError(c, err, "update author")
		return
	}

	redirectWithFlash(c, ac.flash, "/authors", "Author \""+updated.Name+"\" saved")
}

// Delete handles GET /authors/:id/delete
func (ac *AuthorsController) Delete(c *gin.Context) {
	id, ok := pageRouteID(c)
	if !ok {
		return
	}

	author, err := ac.authors.Get(id)
	if err != nil {
		renderCatalogError(c, err, "delete author")
		return
	}

	renderHTML(c, http.StatusOK, "author_delete", gin.H{"Author": author})
}

// DeleteConfirmed handles POST /authors/:id/delete
func (ac *AuthorsController) DeleteConfirmed(c *gin.Context) {
	id, ok := pageRouteID(c)
	if !ok {
		return
	}

	if err := ac.authors.Delete(id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.Redirect(http.StatusSeeOther, "/authors")
			return
		}
		renderInternalError(c, err, "delete author")
		return
	}

	redirectWithFlash(c, ac.flash, "/authors", "Author deleted")
}

func (ac *AuthorsController) renderForm(c *gin.Context, status int, vm catalog.AuthorViewModel, errs map[string]string, editing bool) {
	pool, err := ac.authors.Candidates()
	if err != nil {
		renderInternalError(c, err, "load books")
		return
	}

	renderHTML(c, status, "author_form", gin.H{
		"Author":  vm,
		"Books":   bookOptions(pool, vm),
		"Errors":  errs,
		"Editing": editing,
	})
}
