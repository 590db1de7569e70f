package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingRepo "slotwise/database/repository/booking"
	"slotwise/models"
	"slotwise/services/availability"
	"slotwise/utils"
)

// Commit re-validates the chosen slot against the live busy state and
// reserves it. The per-host lock is held across the narrow re-resolution
// and the guarded insert, and the insert itself re-counts overlaps in its
// transaction, so two concurrent commits for intersecting slots cannot
// both succeed.
func (s *DefaultBookingService) Commit(ctx context.Context, req models.CommitRequest) (*models.Booking, error) {
	logger := utils.GetLogger()

	slot, err := models.NewInterval(req.Slot.Start, req.Slot.End)
	if err != nil {
		return nil, NewValidationError(err.Error())
	}

	et, err := s.Events.GetByID(ctx, req.EventTypeID)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("event type %s not found", req.EventTypeID))
	}
	if et.HostID != req.HostID {
		return nil, NewValidationError("event type does not belong to this host")
	}
	if !et.IsActive {
		return nil, NewValidationError("event type is not active")
	}
	if slot.Duration() != et.Duration() {
		return nil, NewValidationError(fmt.Sprintf(
			"slot length %s does not match event duration %dm", slot.Duration(), et.DurationMinutes))
	}

	sched, err := s.Schedules.GetByHost(ctx, req.HostID)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("no schedule configured for host %s", req.HostID))
	}

	// Window membership is policy, not a race: a slot outside working
	// hours is a bad request, not a lost race.
	windows, err := availability.ExpandWindows(sched, slot.Start, slot.End, s.Engine.NowInstant())
	if err != nil {
		return nil, NewValidationError(err.Error())
	}
	inWindow := false
	for _, w := range windows {
		if w.Contains(slot) {
			inWindow = true
			break
		}
	}
	if !inWindow {
		return nil, NewValidationError("slot is outside the host's currently valid working hours")
	}

	release, err := s.Locker.Acquire(ctx, req.HostID)
	if err != nil {
		return nil, fmt.Errorf("serializing commit for host %s: %w", req.HostID, err)
	}
	defer release()

	ok, err := s.Engine.CheckSlot(ctx, sched, req.HostID, slot)
	if err != nil {
		return nil, fmt.Errorf("re-validating slot: %w", err)
	}
	if !ok {
		return nil, NewSlotTakenError("the chosen time was just taken, please pick another slot")
	}

	booking := &models.Booking{
		ID:          uuid.New().String(),
		HostID:      req.HostID,
		EventTypeID: req.EventTypeID,
		Interval:    slot,
		Visitor:     req.Visitor,
		CreatedAt:   time.Now(),
	}
	if err := s.Bookings.CreateGuarded(ctx, booking); err != nil {
		if errors.Is(err, bookingRepo.ErrOverlap) {
			return nil, NewSlotTakenError("the chosen time was just taken, please pick another slot")
		}
		return nil, fmt.Errorf("persisting booking: %w", err)
	}

	s.invalidateHostAvailability(ctx, req.HostID)

	logger.Info("booking committed",
		zap.String("bookingID", booking.ID),
		zap.String("hostID", booking.HostID),
		zap.Time("start", booking.Interval.Start))
	return booking, nil
}

// Cancel removes a booking. The freed time becomes bookable again, so any
// cached availability for the host is invalidated.
func (s *DefaultBookingService) Cancel(ctx context.Context, bookingID string) error {
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return NewValidationError(fmt.Sprintf("booking %s not found", bookingID))
	}
	if err := s.Bookings.Delete(ctx, bookingID); err != nil {
		return fmt.Errorf("deleting booking %s: %w", bookingID, err)
	}
	s.invalidateHostAvailability(ctx, b.HostID)
	return nil
}
