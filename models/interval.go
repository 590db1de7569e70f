package models

import (
	"fmt"
	"time"
)

// Interval is a half-open time range [Start, End) on absolute instants.
// All comparison and arithmetic happen on instants; wall-clock values are
// a display concern only.
type Interval struct {
	Start time.Time `bson:"start" json:"start"`
	End   time.Time `bson:"end" json:"end"`
}

// NewInterval builds a validated interval. Start must precede End.
func NewInterval(start, end time.Time) (Interval, error) {
	if !start.Before(end) {
		return Interval{}, fmt.Errorf("invalid interval: start %s is not before end %s", start, end)
	}
	return Interval{Start: start, End: end}, nil
}

// Duration returns the absolute length of the interval.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Overlaps reports whether two half-open intervals share any instant.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// Contains reports whether other lies entirely within iv.
func (iv Interval) Contains(other Interval) bool {
	return !other.Start.Before(iv.Start) && !other.End.After(iv.End)
}

// Abuts reports whether the two intervals touch without overlapping.
func (iv Interval) Abuts(other Interval) bool {
	return iv.End.Equal(other.Start) || other.End.Equal(iv.Start)
}

// Pad widens the interval by before/after. Negative padding is ignored.
func (iv Interval) Pad(before, after time.Duration) Interval {
	if before > 0 {
		iv.Start = iv.Start.Add(-before)
	}
	if after > 0 {
		iv.End = iv.End.Add(after)
	}
	return iv
}

// BusySourceKind discriminates where a busy interval came from.
type BusySourceKind string

const (
	BusySourceCalendar BusySourceKind = "external_calendar"
	BusySourceBooking  BusySourceKind = "booking"
)

// BusySource identifies the origin of a busy interval: either an external
// calendar provider or an already-confirmed booking.
type BusySource struct {
	Kind       BusySourceKind `json:"kind"`
	ProviderID string         `json:"providerId,omitempty"` // set when Kind == external_calendar
	BookingID  string         `json:"bookingId,omitempty"`  // set when Kind == booking
}

// BusyInterval is an Interval tagged with its source. The resolution engine
// operates on the union of busy intervals and never inspects the source.
type BusyInterval struct {
	Interval
	Source BusySource `json:"source"`
}

// CalendarBusy tags an interval as coming from an external calendar provider.
func CalendarBusy(iv Interval, providerID string) BusyInterval {
	return BusyInterval{Interval: iv, Source: BusySource{Kind: BusySourceCalendar, ProviderID: providerID}}
}

// BookingBusy tags an interval as coming from a confirmed booking.
func BookingBusy(iv Interval, bookingID string) BusyInterval {
	return BusyInterval{Interval: iv, Source: BusySource{Kind: BusySourceBooking, BookingID: bookingID}}
}
