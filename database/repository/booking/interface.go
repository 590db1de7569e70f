package bookingRepo

import (
	"context"

	"slotwise/models"
)

// BookingRepository defines data access for confirmed bookings. It is the
// only writer of booking rows; the resolution engine consumes it read-only.
type BookingRepository interface {
	// FindOverlapping returns the host's confirmed bookings intersecting
	// [from, to), the busy snapshot one resolution call works from.
	FindOverlapping(ctx context.Context, hostID string, iv models.Interval) ([]models.Booking, error)
	// CreateGuarded inserts the booking inside a transaction that
	// re-counts overlapping bookings for the host first. It returns
	// ErrOverlap when another booking already occupies any part of the
	// interval, so two concurrent commits can never both land.
	CreateGuarded(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	Delete(ctx context.Context, bookingID string) error
	EnsureIndexes() error
}
