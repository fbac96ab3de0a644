package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mrlokans/shelfsync/internal/entities"
)

type AuditController struct {
	audit AuditReader
}

func NewAuditController(audit AuditReader) *AuditController {
	return &AuditController{
		audit: audit,
	}
}

// auditQuery holds the filters shared by the page and the API.
type auditQuery struct {
	page       int
	limit      int
	eventType  string
	entityType string
	entityID   uuid.UUID
}

func parseAuditQuery(c *gin.Context, defaultLimit int) auditQuery {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = defaultLimit
	}

	q := auditQuery{
		page:      page,
		limit:     limit,
		eventType: c.Query("type"),
	}
	if id, err := uuid.Parse(c.Query("entity_id")); err == nil {
		q.entityType = c.Query("entity")
		q.entityID = id
	}
	return q
}

func (ac *AuditController) load(q auditQuery) ([]entities.AuditEvent, int64, error) {
	offset := (q.page - 1) * q.limit
	switch {
	case q.entityID != uuid.Nil:
		return ac.audit.GetEventsForEntity(q.entityType, q.entityID, q.limit, offset)
	case q.eventType != "":
		return ac.audit.GetEventsByType(entities.AuditEventType(q.eventType), q.limit, offset)
	default:
		return ac.audit.GetEvents(q.limit, offset)
	}
}

func totalPages(total int64, limit int) int {
	pages := (int(total) + limit - 1) / limit
	if pages < 1 {
		pages = 1
	}
	return pages
}

// AuditLogPage renders the audit log UI
// GET /audit
func (ac *AuditController) AuditLogPage(c *gin.Context) {
	q := parseAuditQuery(c, 25)

	events, total, err := ac.load(q)
	if err != nil {
		renderInternalError(c, err, "load audit events")
		return
	}

	renderHTML(c, http.StatusOK, "audit", gin.H{
		"Events":      events,
		"CurrentPage": q.page,
		"TotalPages":  totalPages(total, q.limit),
		"TotalEvents": total,
		"EventType":   q.eventType,
		"EventTypes":  getEventTypes(),
	})
}

// GetAuditEvents returns paginated audit events as JSON
// GET /api/audit
func (ac *AuditController) GetAuditEvents(c *gin.Context) {
	q := parseAuditQuery(c, 25)

	events, total, err := ac.load(q)
	if err != nil {
		respondInternalError(c, err, "load audit events")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events":       events,
		"page":         q.page,
		"limit":        q.limit,
		"total_pages":  totalPages(total, q.limit),
		"total_events": total,
	})
}

func getEventTypes() []EventTypeOption {
	return []EventTypeOption{
		{Value: "", Label: "All Events"},
		{Value: string(entities.AuditEventCreate), Label: "Create"},
		{Value: string(entities.AuditEventUpdate), Label: "Update"},
		{Value: string(entities.AuditEventDelete), Label: "Delete"},
		{Value: string(entities.AuditEventSweep), Label: "Link Sweep"},
	}
}

type EventTypeOption struct {
	Value string
	Label string
}
