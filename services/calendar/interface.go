package calendar

import (
	"context"
	"time"

	"slotwise/models"
)

// CalendarProvider fetches a host's busy intervals from one external
// calendar over a bounded time window. The provider protocol behind it is
// opaque; every implementation exposes the same shape.
type CalendarProvider interface {
	// ID identifies the source in degraded-availability reporting.
	ID() string
	// BusyIntervals returns the host's busy ranges intersecting [from, to).
	BusyIntervals(ctx context.Context, hostID string, from, to time.Time) ([]models.Interval, error)
}

// FetchResult is one best-effort busy snapshot across all configured
// sources. Degraded is set when at least one source failed or timed out;
// the intervals of failing sources are simply absent.
type FetchResult struct {
	Intervals     []models.BusyInterval
	Degraded      bool
	FailedSources []string
}
