package availability

import (
	"time"

	"slotwise/models"
)

// ExpandWindows resolves a host's weekly working-hours rules into absolute
// instants over [rangeStart, rangeEnd). Each rule's local minutes are
// anchored to the specific calendar date in the host's zone, so a window on
// a DST transition day is exactly as long as the wall clock says, not as a
// fixed offset would pretend. Windows starting before now plus the
// minimum-notice lead are clipped; days without rules contribute nothing.
// The result is sorted by start and disjoint even when a day's rules are
// stored out of order or overlap, which downstream subtraction relies on.
func ExpandWindows(sched *models.HostSchedule, rangeStart, rangeEnd, now time.Time) ([]models.Interval, error) {
	loc, err := sched.Location()
	if err != nil {
		return nil, err
	}

	notBefore := now.Add(time.Duration(sched.MinNoticeMinutes) * time.Minute)
	if notBefore.Before(rangeStart) {
		notBefore = rangeStart
	}

	var windows []models.Interval

	// Walk whole calendar days in the host zone; the range boundaries fall
	// mid-day, so start one day early and clip.
	first := rangeStart.In(loc)
	day := time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, loc)
	for ; day.Before(rangeEnd); day = day.AddDate(0, 0, 1) {
		for _, rule := range sched.RulesFor(day.Weekday()) {
			start := localMinute(day, rule.StartMinute, loc)
			end := localMinute(day, rule.EndMinute, loc)
			if !start.Before(end) {
				// A DST jump can swallow the whole window.
				continue
			}

			if start.Before(notBefore) {
				start = notBefore
			}
			if end.After(rangeEnd) {
				end = rangeEnd
			}
			if !start.Before(end) {
				continue
			}
			windows = append(windows, models.Interval{Start: start, End: end})
		}
	}
	return mergeIntervals(windows), nil
}

// localMinute resolves "m minutes from midnight" on the given date against
// the host's zone. time.Date normalizes instants that do not exist on
// spring-forward days, which is exactly the semantics we want.
func localMinute(day time.Time, m int, loc *time.Location) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), 0, m, 0, 0, loc)
}
