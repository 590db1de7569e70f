package availability

import (
	"context"
	"fmt"
	"iter"
	"sync"
	"time"

	"go.uber.org/zap"

	bookingRepo "slotwise/database/repository/booking"
	eventRepo "slotwise/database/repository/event"
	scheduleRepo "slotwise/database/repository/schedule"
	"slotwise/models"
	"slotwise/services/calendar"
	"slotwise/utils"
)

// Engine computes the bookable start times for one host and event type. It
// owns no persisted state: the output is a pure function of the busy
// snapshot, the working-hours policy and the current instant.
type Engine struct {
	Events    eventRepo.EventTypeRepository
	Schedules scheduleRepo.ScheduleRepository
	Bookings  bookingRepo.BookingRepository
	Calendar  *calendar.SourceAdapter

	// GranularityMinutes is the default slot step when the query does not
	// carry one. 0 steps by the event duration.
	GranularityMinutes int
	// MaxRangeDays bounds the query window; larger ranges are rejected
	// before any fetch.
	MaxRangeDays int

	// Now is the clock; defaults to time.Now. Tests pin it.
	Now func() time.Time
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// NowInstant exposes the engine's clock to collaborators that must share
// the same notion of "now".
func (e *Engine) NowInstant() time.Time {
	return e.now()
}

// Resolve answers one booking-page request: an ordered slice of slots in
// chronological order plus the degraded status of the busy snapshot.
func (e *Engine) Resolve(ctx context.Context, q models.SlotQuery) (models.AvailabilityResult, error) {
	logger := utils.GetLogger()

	if err := e.validateRange(q); err != nil {
		return models.AvailabilityResult{}, err
	}

	visitorLoc, err := time.LoadLocation(q.VisitorTimezone)
	if err != nil {
		return models.AvailabilityResult{}, NewValidationError(fmt.Sprintf("unknown visitor timezone %q", q.VisitorTimezone))
	}

	et, err := e.Events.GetByID(ctx, q.EventTypeID)
	if err != nil {
		return models.AvailabilityResult{}, NewValidationError(fmt.Sprintf("event type %s not found", q.EventTypeID))
	}
	if et.HostID != q.HostID {
		return models.AvailabilityResult{}, NewValidationError("event type does not belong to this host")
	}
	if !et.IsActive {
		return models.AvailabilityResult{}, NewValidationError("event type is not active")
	}

	sched, err := e.Schedules.GetByHost(ctx, q.HostID)
	if err != nil {
		return models.AvailabilityResult{}, NewValidationError(fmt.Sprintf("no schedule configured for host %s", q.HostID))
	}

	free, fetch, err := e.freeIntervals(ctx, sched, q.HostID, q.RangeStart, q.RangeEnd)
	if err != nil {
		return models.AvailabilityResult{}, err
	}

	step := e.step(q, et)
	result := models.AvailabilityResult{
		Slots:         []models.Slot{},
		Degraded:      fetch.Degraded,
		FailedSources: fetch.FailedSources,
	}
	for slot := range SlotSeq(free, et.Duration(), step) {
		slot.StartLocal = slot.Start.In(visitorLoc).Format(time.RFC3339)
		slot.EndLocal = slot.End.In(visitorLoc).Format(time.RFC3339)
		result.Slots = append(result.Slots, slot)
	}

	logger.Debug("availability resolved",
		zap.String("hostID", q.HostID),
		zap.String("eventTypeID", q.EventTypeID),
		zap.Int("slots", len(result.Slots)),
		zap.Bool("degraded", result.Degraded))
	return result, nil
}

// CheckSlot re-runs a narrow resolution restricted to the chosen slot's
// window against the live busy state. It reports whether the slot is still
// entirely free and inside a currently valid working window.
func (e *Engine) CheckSlot(ctx context.Context, sched *models.HostSchedule, hostID string, slot models.Interval) (bool, error) {
	free, fetch, err := e.freeIntervals(ctx, sched, hostID, slot.Start, slot.End)
	if err != nil {
		return false, err
	}
	if fetch.Degraded {
		// External feeds are best-effort; the booking store remains the
		// authoritative busy source and still fails the check hard.
		utils.GetLogger().Warn("slot re-check ran with degraded calendar visibility",
			zap.String("hostID", hostID),
			zap.Strings("failedSources", fetch.FailedSources))
	}
	for _, f := range free {
		if f.Contains(slot) {
			return true, nil
		}
	}
	return false, nil
}

// freeIntervals fetches calendar busy intervals and confirmed bookings
// concurrently, pads them with the schedule's buffers, merges, and
// subtracts them from the expanded working windows.
func (e *Engine) freeIntervals(ctx context.Context, sched *models.HostSchedule, hostID string, from, to time.Time) ([]models.Interval, calendar.FetchResult, error) {
	var (
		wg         sync.WaitGroup
		fetch      calendar.FetchResult
		booked     []models.Booking
		bookingErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		fetch = e.Calendar.FetchBusy(ctx, hostID, from, to)
	}()
	go func() {
		defer wg.Done()
		booked, bookingErr = e.Bookings.FindOverlapping(ctx, hostID, models.Interval{Start: from, End: to})
	}()
	wg.Wait()

	if bookingErr != nil {
		// Unlike a calendar source, the booking store is authoritative;
		// resolving without it could offer taken slots.
		return nil, fetch, fmt.Errorf("fetching confirmed bookings: %w", bookingErr)
	}

	busy := fetch.Intervals
	for _, b := range booked {
		busy = append(busy, b.AsBusy())
	}
	busy = PadBusy(busy,
		time.Duration(sched.BufferBeforeMinutes)*time.Minute,
		time.Duration(sched.BufferAfterMinutes)*time.Minute)

	windows, err := ExpandWindows(sched, from, to, e.now())
	if err != nil {
		return nil, fetch, err
	}

	return SubtractBusy(windows, MergeBusy(busy)), fetch, nil
}

// SlotSeq lazily enumerates candidate slots over the free intervals:
// within each free interval, starts advance by step and a slot is emitted
// only when it fits entirely. The sequence is finite, restartable and
// strictly chronological for sorted disjoint input.
func SlotSeq(free []models.Interval, duration, step time.Duration) iter.Seq[models.Slot] {
	return func(yield func(models.Slot) bool) {
		if duration <= 0 {
			return
		}
		if step <= 0 {
			step = duration
		}
		for _, f := range free {
			for start := f.Start; !start.Add(duration).After(f.End); start = start.Add(step) {
				if !yield(models.Slot{Start: start, End: start.Add(duration)}) {
					return
				}
			}
		}
	}
}

func (e *Engine) step(q models.SlotQuery, et *models.EventType) time.Duration {
	switch {
	case q.GranularityMinutes > 0:
		return time.Duration(q.GranularityMinutes) * time.Minute
	case e.GranularityMinutes > 0:
		return time.Duration(e.GranularityMinutes) * time.Minute
	default:
		return et.Duration()
	}
}

func (e *Engine) validateRange(q models.SlotQuery) error {
	if !q.RangeStart.Before(q.RangeEnd) {
		return NewValidationError("range start must precede range end")
	}
	maxDays := e.MaxRangeDays
	if maxDays <= 0 {
		maxDays = 186
	}
	if q.RangeEnd.Sub(q.RangeStart) > time.Duration(maxDays)*24*time.Hour {
		return NewRangeTooLargeError(fmt.Sprintf("query range exceeds %d days", maxDays))
	}
	return nil
}
