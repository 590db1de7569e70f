package models

import "time"

// VisitorInfo identifies the person booking a slot with a host.
type VisitorInfo struct {
	Name     string `bson:"name" json:"name"`
	Email    string `bson:"email" json:"email"`
	Timezone string `bson:"timezone,omitempty" json:"timezone,omitempty"`
	Notes    string `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Booking is a confirmed reservation of a slot. It is created only by the
// commit protocol; once written it feeds back into every future resolution
// for the host as a busy interval.
type Booking struct {
	ID          string      `bson:"id" json:"id"`
	HostID      string      `bson:"hostId" json:"hostId"`
	EventTypeID string      `bson:"eventTypeId" json:"eventTypeId"`
	Interval    Interval    `bson:"interval" json:"interval"`
	Visitor     VisitorInfo `bson:"visitor" json:"visitor"`
	CreatedAt   time.Time   `bson:"createdAt" json:"createdAt"`
}

// AsBusy views the booking as a tagged busy interval.
func (b Booking) AsBusy() BusyInterval {
	return BookingBusy(b.Interval, b.ID)
}

// CommitRequest is the payload of a booking confirmation: the slot the
// visitor picked plus who they are.
type CommitRequest struct {
	HostID      string      `json:"hostId" binding:"required"`
	EventTypeID string      `json:"eventTypeId" binding:"required"`
	Slot        Slot        `json:"slot" binding:"required"`
	Visitor     VisitorInfo `json:"visitor" binding:"required"`
}
