package model

import "time"

const (
	EventCreated          = "booking.created"
	EventAccepted         = "booking.accepted"
	EventRecipientDecline = "recipient.declined"
	EventDeclined         = "booking.declined"
	EventCanceled         = "booking.canceled"
	EventOverridden       = "booking.overridden"
	EventExpired          = "booking.expired"
	EventCompleted        = "booking.completed"
)

// Event is published to the booking events topic, keyed by booking id.
type Event struct {
	Type       string    `json:"type"`
	BookingID  string    `json:"booking_id"`
	SitterID   string    `json:"sitter_id,omitempty"`
	SitterIDs  []string  `json:"sitter_ids,omitempty"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}
