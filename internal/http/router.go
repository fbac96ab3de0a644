package http

import (
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/shelfsync/internal/security"
)

// templateFuncs are the helpers available to every HTML template.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatTime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("2006-01-02 15:04")
		},
		"subtract": func(a, b int) int {
			return a - b
		},
		"add": func(a, b int) int {
			return a + b
		},
	}
}

// NewRouter creates and configures the HTTP router with all endpoints.
// Templates are loaded from cfg.TemplatesPath.
func NewRouter(cfg RouterConfig) *gin.Engine {
	tmpl := template.Must(template.New("").Funcs(templateFuncs()).ParseGlob(cfg.TemplatesPath + "/*.html"))
	return newRouter(cfg, tmpl)
}

func newRouter(cfg RouterConfig, tmpl *template.Template) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(security.SecurityHeadersMiddleware())
	if cfg.SecureCookies {
		router.Use(security.StrictTransportSecurityMiddleware(31536000))
	}

	// Session runs before CSRF so the CSRF request replacement keeps the
	// session context
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	// Apply demo mode middleware if enabled
	if cfg.DemoMiddleware != nil && cfg.DemoMiddleware.IsEnabled() {
		router.Use(cfg.DemoMiddleware.InjectContext())
		router.Use(cfg.DemoMiddleware.Handler())
	}

	if tmpl != nil {
		router.SetHTMLTemplate(tmpl)
	}

	// Serve static files
	if cfg.StaticPath != "" {
		router.Static("/static", cfg.StaticPath)
	}

	flash := cfg.flashStore()

	// Health endpoints
	health := NewHealthController(cfg.Health, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", Ping)

	// HTML pages. Forms in this group carry a CSRF token.
	pages := router.Group("/")
	if len(cfg.CSRFSecret) > 0 {
		pages.Use(security.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}
	pages.Use(FlashMiddleware(flash))

	pages.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/books")
	})

	if cfg.Books != nil {
		books := NewBooksController(cfg.Books, flash)
		pages.GET("/books", books.Index)
		pages.GET("/books/new", books.New)
		pages.POST("/books", books.Create)
		pages.GET("/books/:id", books.Details)
		pages.GET("/books/:id/edit", books.Edit)
		pages.POST("/books/:id/edit", books.Update)
		pages.GET("/books/:id/delete", books.Delete)
		pages.POST("/books/:id/delete", books.DeleteConfirmed)

		booksAPI := NewBooksAPIController(cfg.Books)
		router.GET("/api/books", booksAPI.List)
		router.POST("/api/books", booksAPI.Create)
		router.GET("/api/books/:id", booksAPI.Get)
		router.PUT("/api/books/:id", booksAPI.Update)
		router.DELETE("/api/books/:id", booksAPI.Delete)
	}

	if cfg.Authors != nil {
		authors := NewAuthorsController(cfg.Authors, flash)
		pages.GET("/authors", authors.Index)
		pages.GET("/authors/new", authors.New)
		pages.POST("/authors", authors.Create)
		pages.GET("/authors/:id", authors.Details)
		pages.GET("/authors/:id/edit", authors.Edit)
		pages.POST("/authors/:id/edit", authors.Update)
		pages.GET("/authors/:id/delete", authors.Delete)
		pages.POST("/authors/:id/delete", authors.DeleteConfirmed)

		authorsAPI := NewAuthorsAPIController(cfg.Authors)
		router.GET("/api/authors", authorsAPI.List)
		router.POST("/api/authors", authorsAPI.Create)
		router.GET("/api/authors/:id", authorsAPI.Get)
		router.PUT("/api/authors/:id", authorsAPI.Update)
		router.DELETE("/api/authors/:id", authorsAPI.Delete)
	}

	// Audit log
	if cfg.Audit != nil {
		auditController := NewAuditController(cfg.Audit)
		pages.GET("/audit", auditController.AuditLogPage)
		router.GET("/api/audit", auditController.GetAuditEvents)
	}

	// Task management endpoints
	if cfg.Tasks != nil {
		tasksController := NewTasksController(cfg.Tasks, cfg.AuditRetentionDays)
		router.GET("/api/tasks/types", tasksController.ListTaskTypes)
		router.GET("/api/tasks/:id", tasksController.GetTaskStatus)
		router.POST("/api/tasks/:type/run", tasksController.RunTask)
	}

	router.NoRoute(func(c *gin.Context) {
		if isAPIPath(c.Request.URL.Path) {
			respondNotFound(c, "route")
			return
		}
		renderNotFound(c)
	})

	return router
}

func isAPIPath(path string) bool {
	return strings.HasPrefix(path, "/api/")
}
