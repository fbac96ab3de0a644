package audit

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/mrlokans/shelfsync/internal/database/audit"
	"github.com/mrlokans/shelfsync/internal/entities"
)

// Service provides high-level audit logging functionality.
type Service struct {
	repo *audit.Repository
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// record writes the event and only logs failures; a catalog change that
// already committed is never reported as failed because its audit row was
// lost.
func (s *Service) record(event *entities.AuditEvent) {
	if err := s.repo.LogEvent(event); err != nil {
		log.Printf("Failed to log audit event %s: %v", event.Action, err)
	}
}

// LogCreate records the creation of a book or author.
func (s *Service) LogCreate(entityType string, entityID uuid.UUID, name string) {
	s.record(&entities.AuditEvent{
		EventType:   entities.AuditEventCreate,
		Action:      entityType + "_create",
		Description: "Created " + entityType + ": " + name,
		EntityType:  entityType,
		EntityID:    entityID.String(),
		Status:      entities.AuditStatusSuccess,
	})
}

// LogUpdate records an edit together with the size of the new link set.
func (s *Service) LogUpdate(entityType string, entityID uuid.UUID, name string, linked int) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventUpdate,
		Action:      entityType + "_update",
		Description: "Updated " + entityType + ": " + name,
		EntityType:  entityType,
		EntityID:    entityID.String(),
		Status:      entities.AuditStatusSuccess,
	}
	if mdBytes, err := json.Marshal(map[string]any{"linked": linked}); err == nil {
		event.Metadata = string(mdBytes)
	}
	s.record(event)
}

// LogDelete records a deletion event.
func (s *Service) LogDelete(entityType string, entityID uuid.UUID, name string) {
	s.record(&entities.AuditEvent{
		EventType:   entities.AuditEventDelete,
		Action:      entityType + "_delete",
		Description: "Deleted " + entityType + ": " + name,
		EntityType:  entityType,
		EntityID:    entityID.String(),
		Status:      entities.AuditStatusSuccess,
	})
}

// LogSweep records a join-table integrity sweep. err marks the event failed.
func (s *Service) LogSweep(removed int64, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventSweep,
		Action:      "link_sweep",
		Description: "Removed dangling book/author links",
		EntityType:  entities.BookAuthorsTable,
		Status:      entities.AuditStatusSuccess,
	}
	if mdBytes, e := json.Marshal(map[string]any{"removed": removed}); e == nil {
		event.Metadata = string(mdBytes)
	}
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}
	s.record(event)
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(limit, offset)
}

// GetEventsByType retrieves audit events filtered by type.
func (s *Service) GetEventsByType(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEventsByType(eventType, limit, offset)
}

// GetEventsForEntity retrieves the history of a single book or author.
func (s *Service) GetEventsForEntity(entityType string, entityID uuid.UUID, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEventsForEntity(entityType, entityID.String(), limit, offset)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(cutoff)
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
