package availability

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slotwise/models"
	"slotwise/services/calendar"
)

// fakeEventRepo serves a fixed set of event types.
type fakeEventRepo struct {
	events map[string]models.EventType
}

func (f *fakeEventRepo) GetByID(_ context.Context, id string) (*models.EventType, error) {
	et, ok := f.events[id]
	if !ok {
		return nil, fmt.Errorf("event type %s not found", id)
	}
	return &et, nil
}

func (f *fakeEventRepo) ListByHost(_ context.Context, hostID string, activeOnly bool) ([]models.EventType, error) {
	var out []models.EventType
	for _, et := range f.events {
		if et.HostID == hostID && (!activeOnly || et.IsActive) {
			out = append(out, et)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) Create(_ context.Context, et *models.EventType) error {
	f.events[et.ID] = *et
	return nil
}

func (f *fakeEventRepo) Update(_ context.Context, et *models.EventType) error {
	f.events[et.ID] = *et
	return nil
}

func (f *fakeEventRepo) Delete(_ context.Context, _, id string) error {
	delete(f.events, id)
	return nil
}

func (f *fakeEventRepo) EnsureIndexes() error { return nil }

// fakeScheduleRepo serves one schedule per host.
type fakeScheduleRepo struct {
	schedules map[string]models.HostSchedule
}

func (f *fakeScheduleRepo) GetByHost(_ context.Context, hostID string) (*models.HostSchedule, error) {
	s, ok := f.schedules[hostID]
	if !ok {
		return nil, fmt.Errorf("no schedule for host %s", hostID)
	}
	return &s, nil
}

func (f *fakeScheduleRepo) Upsert(_ context.Context, s *models.HostSchedule) error {
	f.schedules[s.HostID] = *s
	return nil
}

func (f *fakeScheduleRepo) EnsureIndexes() error { return nil }

// fakeBookingRepo holds bookings in memory.
type fakeBookingRepo struct {
	bookings []models.Booking
}

func (f *fakeBookingRepo) FindOverlapping(_ context.Context, hostID string, iv models.Interval) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.HostID == hostID && b.Interval.Overlaps(iv) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) CreateGuarded(_ context.Context, b *models.Booking) error {
	f.bookings = append(f.bookings, *b)
	return nil
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	for _, b := range f.bookings {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, fmt.Errorf("booking %s not found", id)
}

func (f *fakeBookingRepo) Delete(_ context.Context, id string) error {
	for i, b := range f.bookings {
		if b.ID == id {
			f.bookings = append(f.bookings[:i], f.bookings[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("booking %s not found", id)
}

func (f *fakeBookingRepo) EnsureIndexes() error { return nil }

// stubProvider returns canned intervals or a canned error.
type stubProvider struct {
	id        string
	intervals []models.Interval
	err       error
	delay     time.Duration
}

func (p *stubProvider) ID() string { return p.id }

func (p *stubProvider) BusyIntervals(ctx context.Context, _ string, _, _ time.Time) ([]models.Interval, error) {
	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return p.intervals, p.err
}

const (
	testHost  = "host-1"
	testEvent = "event-30min"
)

// newTestEngine wires an engine around a Monday 09:00-12:00 UTC schedule
// and a 30-minute event type, with "now" pinned before the query range.
func newTestEngine(bookings *fakeBookingRepo, providers ...calendar.CalendarProvider) *Engine {
	return &Engine{
		Events: &fakeEventRepo{events: map[string]models.EventType{
			testEvent: {ID: testEvent, HostID: testHost, Name: "Intro call", DurationMinutes: 30, IsActive: true},
		}},
		Schedules: &fakeScheduleRepo{schedules: map[string]models.HostSchedule{
			testHost: {
				HostID:   testHost,
				Timezone: "UTC",
				Rules:    []models.WorkingHoursRule{{Weekday: time.Monday, StartMinute: 9 * 60, EndMinute: 12 * 60}},
			},
		}},
		Bookings:           bookings,
		Calendar:           &calendar.SourceAdapter{Providers: providers, Timeout: time.Second},
		GranularityMinutes: 15,
		MaxRangeDays:       186,
		Now:                func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) },
	}
}

func mondayQuery() models.SlotQuery {
	return models.SlotQuery{
		HostID:          testHost,
		EventTypeID:     testEvent,
		RangeStart:      time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		RangeEnd:        time.Date(2026, 3, 2, 23, 59, 0, 0, time.UTC),
		VisitorTimezone: "UTC",
	}
}

func slotStarts(slots []models.Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Start.UTC().Format("15:04")
	}
	return out
}

func TestResolveAroundExistingBooking(t *testing.T) {
	// Working hours Mon 09:00-12:00 UTC, one booking 10:00-10:30,
	// 30-minute event, 15-minute granularity.
	bookings := &fakeBookingRepo{bookings: []models.Booking{{
		ID:     "b-1",
		HostID: testHost,
		Interval: models.Interval{
			Start: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC),
		},
	}}}
	engine := newTestEngine(bookings)

	result, err := engine.Resolve(context.Background(), mondayQuery())
	require.NoError(t, err)
	assert.False(t, result.Degraded)
	assert.Equal(t,
		[]string{"09:00", "09:15", "09:30", "10:30", "10:45", "11:00", "11:15", "11:30"},
		slotStarts(result.Slots))
}

func TestResolveEmptyBusyTilesWindow(t *testing.T) {
	engine := newTestEngine(&fakeBookingRepo{})

	result, err := engine.Resolve(context.Background(), mondayQuery())
	require.NoError(t, err)
	require.NotEmpty(t, result.Slots)

	// First slot at the window start, last one ending exactly at its end,
	// each start 15 minutes after the previous.
	assert.Equal(t, "09:00", result.Slots[0].Start.UTC().Format("15:04"))
	last := result.Slots[len(result.Slots)-1]
	assert.Equal(t, "12:00", last.End.UTC().Format("15:04"))
	for i := 1; i < len(result.Slots); i++ {
		assert.Equal(t, 15*time.Minute, result.Slots[i].Start.Sub(result.Slots[i-1].Start))
	}
}

func TestResolveNoSlotOverlapsBufferedBusy(t *testing.T) {
	calBusy := []models.Interval{
		{Start: time.Date(2026, 3, 2, 9, 40, 0, 0, time.UTC), End: time.Date(2026, 3, 2, 9, 55, 0, 0, time.UTC)},
		{Start: time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC), End: time.Date(2026, 3, 2, 11, 10, 0, 0, time.UTC)},
	}
	engine := newTestEngine(&fakeBookingRepo{}, &stubProvider{id: "ics", intervals: calBusy})
	sched, _ := engine.Schedules.GetByHost(context.Background(), testHost)
	sched.BufferBeforeMinutes = 10
	sched.BufferAfterMinutes = 10
	require.NoError(t, engine.Schedules.(*fakeScheduleRepo).Upsert(context.Background(), sched))

	result, err := engine.Resolve(context.Background(), mondayQuery())
	require.NoError(t, err)
	require.NotEmpty(t, result.Slots)

	for _, slot := range result.Slots {
		for _, b := range calBusy {
			padded := b.Pad(10*time.Minute, 10*time.Minute)
			assert.False(t, slot.Interval().Overlaps(padded),
				"slot %s overlaps buffered busy %v", slot.Start, padded)
		}
	}
}

func TestResolveSplitDayScheduleAvoidsBusyTime(t *testing.T) {
	// Afternoon rule stored before the morning one; busy time in the
	// morning window must still be subtracted and slots stay chronological.
	calBusy := models.Interval{
		Start: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC),
	}
	engine := newTestEngine(&fakeBookingRepo{}, &stubProvider{id: "ics", intervals: []models.Interval{calBusy}})
	engine.Schedules.(*fakeScheduleRepo).schedules[testHost] = models.HostSchedule{
		HostID:   testHost,
		Timezone: "UTC",
		Rules: []models.WorkingHoursRule{
			{Weekday: time.Monday, StartMinute: 13 * 60, EndMinute: 17 * 60},
			{Weekday: time.Monday, StartMinute: 9 * 60, EndMinute: 12 * 60},
		},
	}

	result, err := engine.Resolve(context.Background(), mondayQuery())
	require.NoError(t, err)
	require.NotEmpty(t, result.Slots)

	for _, slot := range result.Slots {
		assert.False(t, slot.Interval().Overlaps(calBusy),
			"slot %s overlaps busy %v", slot.Start, calBusy)
	}
	for i := 1; i < len(result.Slots); i++ {
		assert.True(t, result.Slots[i].Start.After(result.Slots[i-1].Start),
			"slots out of order at %d", i)
	}
	assert.Equal(t,
		[]string{"09:00", "09:15", "09:30", "11:00", "11:15", "11:30"},
		slotStarts(result.Slots[:6]))
}

func TestResolveIsDeterministic(t *testing.T) {
	bookings := &fakeBookingRepo{bookings: []models.Booking{{
		ID:     "b-1",
		HostID: testHost,
		Interval: models.Interval{
			Start: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC),
		},
	}}}
	engine := newTestEngine(bookings)

	first, err := engine.Resolve(context.Background(), mondayQuery())
	require.NoError(t, err)
	second, err := engine.Resolve(context.Background(), mondayQuery())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolveDegradedSourcePassesThrough(t *testing.T) {
	engine := newTestEngine(&fakeBookingRepo{},
		&stubProvider{id: "flaky", err: fmt.Errorf("connection refused")},
		&stubProvider{id: "healthy", intervals: nil},
	)

	result, err := engine.Resolve(context.Background(), mondayQuery())
	require.NoError(t, err)
	assert.True(t, result.Degraded)
	assert.Equal(t, []string{"flaky"}, result.FailedSources)
	assert.NotEmpty(t, result.Slots, "degraded resolution still yields slots")
}

func TestResolveDurationLongerThanAnyGap(t *testing.T) {
	engine := newTestEngine(&fakeBookingRepo{})
	engine.Events.(*fakeEventRepo).events["event-long"] = models.EventType{
		ID: "event-long", HostID: testHost, Name: "Workshop", DurationMinutes: 4 * 60, IsActive: true,
	}

	q := mondayQuery()
	q.EventTypeID = "event-long"
	result, err := engine.Resolve(context.Background(), q)
	require.NoError(t, err)
	assert.Empty(t, result.Slots)
}

func TestResolveRangeInPastIsEmpty(t *testing.T) {
	engine := newTestEngine(&fakeBookingRepo{})
	engine.Now = func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) }

	result, err := engine.Resolve(context.Background(), mondayQuery())
	require.NoError(t, err)
	assert.Empty(t, result.Slots)
}

func TestResolveRejectsOversizedRange(t *testing.T) {
	engine := newTestEngine(&fakeBookingRepo{})

	q := mondayQuery()
	q.RangeEnd = q.RangeStart.AddDate(1, 0, 0)
	_, err := engine.Resolve(context.Background(), q)
	require.Error(t, err)
	assert.Equal(t, CodeRangeTooLarge, ErrorCode(err))
}

func TestResolveRejectsInactiveEventType(t *testing.T) {
	engine := newTestEngine(&fakeBookingRepo{})
	engine.Events.(*fakeEventRepo).events[testEvent] = models.EventType{
		ID: testEvent, HostID: testHost, DurationMinutes: 30, IsActive: false,
	}

	_, err := engine.Resolve(context.Background(), mondayQuery())
	require.Error(t, err)
	assert.Equal(t, CodeValidation, ErrorCode(err))
}

func TestResolveRejectsUnknownVisitorZone(t *testing.T) {
	engine := newTestEngine(&fakeBookingRepo{})

	q := mondayQuery()
	q.VisitorTimezone = "Nowhere/Invalid"
	_, err := engine.Resolve(context.Background(), q)
	require.Error(t, err)
	assert.Equal(t, CodeValidation, ErrorCode(err))
}

func TestResolveAppliesVisitorZoneAtBoundary(t *testing.T) {
	engine := newTestEngine(&fakeBookingRepo{})

	q := mondayQuery()
	q.VisitorTimezone = "America/New_York"
	result, err := engine.Resolve(context.Background(), q)
	require.NoError(t, err)
	require.NotEmpty(t, result.Slots)

	// 09:00 UTC is 04:00 in New York (EST on 2026-03-02); the instant
	// itself stays untouched.
	assert.Equal(t, "09:00", result.Slots[0].Start.UTC().Format("15:04"))
	assert.Equal(t, "2026-03-02T04:00:00-05:00", result.Slots[0].StartLocal)
}

func TestSlotSeqIsLazyAndRestartable(t *testing.T) {
	free := []models.Interval{{
		Start: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
	}}
	seq := SlotSeq(free, 30*time.Minute, 15*time.Minute)

	// Early break stops enumeration.
	var taken []models.Slot
	for s := range seq {
		taken = append(taken, s)
		if len(taken) == 2 {
			break
		}
	}
	require.Len(t, taken, 2)

	// Restarting the same sequence yields the full set again.
	var all []models.Slot
	for s := range seq {
		all = append(all, s)
	}
	assert.Len(t, all, 11)
	assert.Equal(t, taken[0], all[0])
	assert.Equal(t, taken[1], all[1])
}

func TestSlotSeqStepDefaultsToDuration(t *testing.T) {
	free := []models.Interval{{
		Start: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
	}}

	var starts []string
	for s := range SlotSeq(free, time.Hour, 0) {
		starts = append(starts, s.Start.UTC().Format("15:04"))
	}
	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, starts)
}
