package http

import (
	"context"

	"github.com/google/uuid"

	"github.com/mrlokans/shelfsync/internal/catalog"
	"github.com/mrlokans/shelfsync/internal/entities"
	"github.com/mrlokans/shelfsync/internal/sessions"
)

// This file consolidates the interfaces HTTP controllers depend on.
// services.BookService and services.AuthorService satisfy the catalog ones.

// BookCatalog is the book side of the catalog.
type BookCatalog interface {
	List() ([]catalog.BookViewModel, error)
	Get(id uuid.UUID) (catalog.BookViewModel, error)
	Candidates() ([]entities.Author, error)
	Create(vm catalog.BookViewModel) (catalog.BookViewModel, error)
	Update(routeID uuid.UUID, vm catalog.BookViewModel) (catalog.BookViewModel, error)
	Delete(id uuid.UUID) error
}

// AuthorCatalog is the author side of the catalog.
type AuthorCatalog interface {
	List() ([]catalog.AuthorViewModel, error)
	Get(id uuid.UUID) (catalog.AuthorViewModel, error)
	Candidates() ([]entities.Book, error)
	Create(vm catalog.AuthorViewModel) (catalog.AuthorViewModel, error)
	Update(routeID uuid.UUID, vm catalog.AuthorViewModel) (catalog.AuthorViewModel, error)
	Delete(id uuid.UUID) error
}

// AuditReader lists recorded audit events.
type AuditReader interface {
	GetEvents(limit, offset int) ([]entities.AuditEvent, int64, error)
	GetEventsByType(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error)
	GetEventsForEntity(entityType string, entityID uuid.UUID, limit, offset int) ([]entities.AuditEvent, int64, error)
}

// FlashStore carries one-time messages across a redirect.
// Implemented by sessions.SessionManager.
type FlashStore interface {
	SetFlash(ctx context.Context, level, message string)
	PopFlash(ctx context.Context) *sessions.Flash
}
