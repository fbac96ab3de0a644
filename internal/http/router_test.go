package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/shelfsync/internal/config"
	"github.com/mrlokans/shelfsync/internal/demo"
	"github.com/mrlokans/shelfsync/internal/sessions"
)

func TestRouter_FlashAfterCreate(t *testing.T) {
	tc := setupCatalog(t)
	sqlDB, err := tc.db.DB.DB()
	require.NoError(t, err)
	sm, err := sessions.NewSessionManager(sqlDB, config.Session{})
	require.NoError(t, err)

	cfg := tc.routerConfig()
	cfg.SessionManager = sm
	router := newTestRouter(t, cfg)

	w := doForm(router, "/books", url.Values{"title": {"Notes"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	get := func() string {
		req := httptest.NewRequest(http.MethodGet, "/books", nil)
		for _, cookie := range cookies {
			req.AddCookie(cookie)
		}
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr.Body.String()
	}

	first := get()
	assert.True(t, strings.HasPrefix(first, "flash:Book "), first)
	assert.Contains(t, first, "created;books:1;")
	assert.Equal(t, "books:1;Notes[];", get())
}

func TestRouter_CSRFProtectsFormsOnly(t *testing.T) {
	tc := setupCatalog(t)
	cfg := tc.routerConfig()
	cfg.CSRFSecret = []byte("0123456789abcdef0123456789abcdef")
	router := newTestRouter(t, cfg)

	t.Run("form post without token is rejected", func(t *testing.T) {
		w := doForm(router, "/books", url.Values{"title": {"Notes"}})
		assert.Equal(t, http.StatusForbidden, w.Code)

		books, err := tc.books.List()
		require.NoError(t, err)
		assert.Empty(t, books)
	})

	t.Run("forms carry the token field", func(t *testing.T) {
		w := doGet(router, "/books/new")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `type="hidden"`)
	})

	t.Run("api is not behind csrf", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/books", `{"title":"Notes"}`)
		assert.Equal(t, http.StatusCreated, w.Code)
	})
}

func TestRouter_DemoModeBlocksWrites(t *testing.T) {
	tc := setupCatalog(t)
	cfg := tc.routerConfig()
	cfg.DemoMiddleware = demo.NewMiddleware(true)
	router := newTestRouter(t, cfg)

	w := doForm(router, "/books", url.Values{"title": {"Notes"}})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(router, http.MethodPost, "/api/books", `{"title":"Notes"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), `"demo_mode":true`)

	w = doGet(router, "/books")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "books:0;", w.Body.String())
}

func TestRouter_SecurityHeadersAndNoRoute(t *testing.T) {
	tc := setupCatalog(t)
	router := tc.router(t)

	w := doGet(router, "/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not found", w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Content-Type-Options"))

	w = doGet(router, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"version": "test"`)
}
