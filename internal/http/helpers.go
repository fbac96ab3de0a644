package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mrlokans/shelfsync/internal/catalog"
	"github.com/mrlokans/shelfsync/internal/demo"
	"github.com/mrlokans/shelfsync/internal/security"
	"github.com/mrlokans/shelfsync/internal/sessions"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context (validation errors, etc.)
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// PaginatedResponse wraps paginated data with metadata.
type PaginatedResponse struct {
	Data       any   `json:"data"`
	Total      int64 `json:"total"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
	HasMore    bool  `json:"has_more"`
	TotalPages int   `json:"total_pages,omitempty"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondValidationFailed sends a 400 response listing per-field messages.
func respondValidationFailed(c *gin.Context, ve *catalog.ValidationError) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "validation failed",
		Code:    "validation_failed",
		Details: ve.Fields,
	})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondCatalogError maps a catalog error onto the JSON API.
func respondCatalogError(c *gin.Context, err error, resource string) {
	if ve, ok := catalog.IsValidationError(err); ok {
		respondValidationFailed(c, ve)
		return
	}
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		respondNotFound(c, resource)
	case errors.Is(err, catalog.ErrBadRequest):
		respondBadRequest(c, resource+" id does not match payload id")
	default:
		respondInternalError(c, err, resource)
	}
}

// --- Success Response Helpers ---

// respondSuccess sends a 200 OK response with a message.
func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, SuccessResponse{Message: message})
}

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// respondAccepted sends a 202 Accepted response (for async operations).
func respondAccepted(c *gin.Context, message string, data any) {
	c.JSON(http.StatusAccepted, SuccessResponse{Message: message, Data: data})
}

// --- Parameter Parsing ---

// parseUUIDParam extracts a UUID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns uuid.Nil, false.
func parseUUIDParam(c *gin.Context, paramName string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(paramName))
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return uuid.Nil, false
	}
	return id, true
}

// pageRouteID extracts the UUID of an HTML page route. A malformed value
// names no record, so the not-found page is rendered.
func pageRouteID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		renderNotFound(c)
		return uuid.Nil, false
	}
	return id, true
}

// --- HTML Rendering ---

// page is the data every HTML template receives in addition to its own.
func page(c *gin.Context, data gin.H) gin.H {
	if data == nil {
		data = gin.H{}
	}
	data[security.CSRFTemplateField] = security.CSRFTokenField(c)
	data["DemoMode"] = c.GetBool(demo.ContextKeyDemoMode)
	if flash, ok := c.Get(contextKeyFlash); ok {
		data["Flash"] = flash
	}
	return data
}

func renderHTML(c *gin.Context, status int, name string, data gin.H) {
	c.HTML(status, name, page(c, data))
}

func renderNotFound(c *gin.Context) {
	renderHTML(c, http.StatusNotFound, "not_found", nil)
}

func renderBadRequest(c *gin.Context, message string) {
	renderHTML(c, http.StatusBadRequest, "bad_request", gin.H{"Message": message})
}

func renderInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	renderHTML(c, http.StatusInternalServerError, "error", gin.H{"Error": "Something went wrong"})
}

// renderCatalogError maps a catalog error onto an error page. Validation
// errors are handled by the form handlers before reaching here.
func renderCatalogError(c *gin.Context, err error, context string) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		renderNotFound(c)
	case errors.Is(err, catalog.ErrBadRequest):
		renderBadRequest(c, "The submitted record does not match the page it was sent to.")
	default:
		renderInternalError(c, err, context)
	}
}

// --- Flash Messages ---

const contextKeyFlash = "flash"

// FlashMiddleware pops the pending flash message, if any, into the gin
// context so page() can hand it to the template.
func FlashMiddleware(store FlashStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store != nil && c.Request.Method == http.MethodGet {
			if flash := store.PopFlash(c.Request.Context()); flash != nil {
				c.Set(contextKeyFlash, flash)
			}
		}
		c.Next()
	}
}

// redirectWithFlash stores a success message and redirects with 303 so
// the browser follows up with a GET.
func redirectWithFlash(c *gin.Context, store FlashStore, location, message string) {
	if store != nil {
		store.SetFlash(c.Request.Context(), sessions.FlashSuccess, message)
	}
	c.Redirect(http.StatusSeeOther, location)
}
