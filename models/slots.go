package models

import "time"

// Slot is a candidate bookable start time of the requested duration.
// Slots are ephemeral engine output; a slot becomes a Booking only through
// the commit protocol. StartLocal/EndLocal are display values in the
// visitor's zone, attached at the presentation boundary only.
type Slot struct {
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	StartLocal string    `json:"startLocal,omitempty"`
	EndLocal   string    `json:"endLocal,omitempty"`
}

// Interval views the slot as a plain interval.
func (s Slot) Interval() Interval {
	return Interval{Start: s.Start, End: s.End}
}

// SlotQuery carries one booking-page availability request.
type SlotQuery struct {
	HostID          string
	EventTypeID     string
	RangeStart      time.Time
	RangeEnd        time.Time
	VisitorTimezone string
	// GranularityMinutes overrides the configured slot step when > 0.
	// 0 means "use the configured default"; the engine steps by the
	// event duration when both are unset.
	GranularityMinutes int
}

// AvailabilityResult is the collected outcome of one resolution call.
// Degraded means one or more calendar sources were unreachable and the
// slot list was computed without full busy visibility.
type AvailabilityResult struct {
	Slots         []Slot   `json:"slots"`
	Degraded      bool     `json:"degraded"`
	FailedSources []string `json:"failedSources,omitempty"`
}
