package models

import (
	"fmt"
	"time"
)

// WorkingHoursRule is one weekly recurring availability window, expressed in
// the host's local wall-clock as minutes from midnight (e.g. 540 for 9:00 AM),
// mirroring how timeslot templates are stored.
type WorkingHoursRule struct {
	Weekday     time.Weekday `bson:"weekday" json:"weekday"`
	StartMinute int          `bson:"startMinute" json:"startMinute"`
	EndMinute   int          `bson:"endMinute" json:"endMinute"`
}

// Validate checks the rule's internal consistency.
func (r WorkingHoursRule) Validate() error {
	if r.Weekday < time.Sunday || r.Weekday > time.Saturday {
		return fmt.Errorf("invalid weekday %d", r.Weekday)
	}
	if r.StartMinute < 0 || r.EndMinute > 24*60 || r.StartMinute >= r.EndMinute {
		return fmt.Errorf("invalid window [%d, %d) minutes", r.StartMinute, r.EndMinute)
	}
	return nil
}

// HostSchedule holds a host's working-hours policy: weekly rules resolved
// against a single configured timezone, plus notice and buffer settings.
// Invariant: one zone for all of a host's rules.
type HostSchedule struct {
	HostID              string             `bson:"hostId" json:"hostId"`
	Timezone            string             `bson:"timezone" json:"timezone"` // IANA zone name, e.g. "Europe/Berlin"
	Rules               []WorkingHoursRule `bson:"rules" json:"rules"`
	MinNoticeMinutes    int                `bson:"minNoticeMinutes" json:"minNoticeMinutes"`
	BufferBeforeMinutes int                `bson:"bufferBeforeMinutes" json:"bufferBeforeMinutes"`
	BufferAfterMinutes  int                `bson:"bufferAfterMinutes" json:"bufferAfterMinutes"`
	UpdatedAt           time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Location resolves the host's configured zone.
func (s HostSchedule) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("host %s has unresolvable timezone %q: %w", s.HostID, s.Timezone, err)
	}
	return loc, nil
}

// RulesFor returns the rules applying to one weekday.
func (s HostSchedule) RulesFor(day time.Weekday) []WorkingHoursRule {
	var out []WorkingHoursRule
	for _, r := range s.Rules {
		if r.Weekday == day {
			out = append(out, r)
		}
	}
	return out
}
