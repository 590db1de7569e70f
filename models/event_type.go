package models

import "time"

// EventType is a bookable meeting kind a host offers on their public page.
type EventType struct {
	ID              string    `bson:"id" json:"id"`
	HostID          string    `bson:"hostId" json:"hostId"`
	Name            string    `bson:"name" json:"name"`
	Description     string    `bson:"description,omitempty" json:"description,omitempty"`
	DurationMinutes int       `bson:"durationMinutes" json:"durationMinutes"`
	IsActive        bool      `bson:"isActive" json:"isActive"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Duration returns the event length as a time.Duration.
func (e EventType) Duration() time.Duration {
	return time.Duration(e.DurationMinutes) * time.Minute
}

// CreateEventTypeRequest defines the payload for creating an event type.
type CreateEventTypeRequest struct {
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"durationMinutes" binding:"required,gt=0"`
	IsActive        *bool  `json:"isActive"`
}

// UpdateEventTypeRequest defines the payload for updating an event type.
// Nil fields are left unchanged.
type UpdateEventTypeRequest struct {
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	DurationMinutes *int    `json:"durationMinutes"`
	IsActive        *bool   `json:"isActive"`
}
