package http

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/shelfsync/internal/catalog"
	"github.com/mrlokans/shelfsync/internal/database"
	"github.com/mrlokans/shelfsync/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testTemplates renders just enough of each page for assertions.
const testTemplates = `
{{define "flash"}}{{with .Flash}}flash:{{.Message}};{{end}}{{end}}
{{define "books"}}{{template "flash" .}}books:{{.TotalBooks}};{{range .Books}}{{.Title}}[{{range .Authors}}{{.Name}},{{end}}];{{end}}{{end}}
{{define "book"}}book:{{.Book.Title}};{{range .Book.Authors}}author:{{.Name}};{{end}}{{end}}
{{define "book_form"}}form:{{.Book.Title}};editing:{{.Editing}};{{range .Authors}}option:{{.Label}}={{.Selected}};{{end}}{{range $k, $v := .Errors}}error:{{$k}} {{$v}};{{end}}{{.csrfField}}{{end}}
{{define "book_delete"}}delete:{{.Book.Title}}{{end}}
{{define "authors"}}{{template "flash" .}}authors:{{.TotalAuthors}};{{range .Authors}}{{.Name}}[{{range .Books}}{{.Title}},{{end}}];{{end}}{{end}}
{{define "author"}}author:{{.Author.Name}};{{range .Author.Books}}book:{{.Title}};{{end}}{{end}}
{{define "author_form"}}form:{{.Author.Name}};editing:{{.Editing}};{{range .Books}}option:{{.Label}}={{.Selected}};{{end}}{{range $k, $v := .Errors}}error:{{$k}} {{$v}};{{end}}{{end}}
{{define "author_delete"}}delete:{{.Author.Name}}{{end}}
{{define "audit"}}audit:{{.TotalEvents}};page:{{.CurrentPage}}/{{.TotalPages}};{{range .Events}}{{.Action}};{{end}}{{end}}
{{define "not_found"}}not found{{end}}
{{define "bad_request"}}bad request:{{.Message}}{{end}}
{{define "error"}}error:{{.Error}}{{end}}
`

type testCatalog struct {
	db      *database.Database
	books   *services.BookService
	authors *services.AuthorService
}

func setupCatalog(t *testing.T) *testCatalog {
	t.Helper()

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "catalog.db"), database.WithLogLevel(logger.Silent))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	uow := database.NewUnitOfWork(db.DB)
	return &testCatalog{
		db:      db,
		books:   services.NewBookService(uow, nil),
		authors: services.NewAuthorService(uow, nil),
	}
}

func (tc *testCatalog) routerConfig() RouterConfig {
	return RouterConfig{
		Books:   tc.books,
		Authors: tc.authors,
		Health:  tc.db,
		Version: "test",
	}
}

func (tc *testCatalog) router(t *testing.T) *gin.Engine {
	t.Helper()
	return newTestRouter(t, tc.routerConfig())
}

func newTestRouter(t *testing.T, cfg RouterConfig) *gin.Engine {
	t.Helper()
	tmpl := template.Must(template.New("").Funcs(templateFuncs()).Parse(testTemplates))
	return newRouter(cfg, tmpl)
}

func (tc *testCatalog) author(t *testing.T, name string) catalog.AuthorViewModel {
	t.Helper()
	vm, err := tc.authors.Create(catalog.AuthorViewModel{Name: name})
	require.NoError(t, err)
	return vm
}

func (tc *testCatalog) book(t *testing.T, title string, authors ...catalog.AuthorViewModel) catalog.BookViewModel {
	t.Helper()
	vm := catalog.BookViewModel{Title: title}
	for _, a := range authors {
		vm.AuthorIDs = append(vm.AuthorIDs, a.ID)
	}
	created, err := tc.books.Create(vm)
	require.NoError(t, err)
	return created
}

func doGet(router http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func doForm(router http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)
	return w
}

func doJSON(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}
