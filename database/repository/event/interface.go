package eventRepo

import (
	"context"

	"slotwise/models"
)

// EventTypeRepository defines data access for event-type records.
type EventTypeRepository interface {
	// GetByID fetches one event type regardless of active flag.
	GetByID(ctx context.Context, eventTypeID string) (*models.EventType, error)
	// ListByHost returns a host's event types, optionally restricted to
	// active ones, ordered by lowercased name.
	ListByHost(ctx context.Context, hostID string, activeOnly bool) ([]models.EventType, error)
	Create(ctx context.Context, et *models.EventType) error
	Update(ctx context.Context, et *models.EventType) error
	Delete(ctx context.Context, hostID, eventTypeID string) error
	EnsureIndexes() error
}
