package scheduleRepo

import (
	"context"

	"slotwise/models"
)

// ScheduleRepository defines data access for host working-hours policies.
type ScheduleRepository interface {
	// GetByHost fetches the host's schedule. A host has at most one
	// schedule document; all its rules share one timezone.
	GetByHost(ctx context.Context, hostID string) (*models.HostSchedule, error)
	Upsert(ctx context.Context, sched *models.HostSchedule) error
	EnsureIndexes() error
}
