package models

import (
	"errors"
	"strings"
	"time"
)

// RSVP is a guest attendance confirmation for an event. Guests append
// responses from the public page; owners only read the aggregate list.
type RSVP struct {
	ID          int       `json:"id" db:"id"`
	EventID     int       `json:"event_id" db:"event_id"`
	GuestName   string    `json:"guest_name" db:"guest_name"`
	IsAttending bool      `json:"is_attending" db:"is_attending"`
	PlusOnes    int       `json:"plus_ones" db:"plus_ones"`
	Message     string    `json:"message" db:"message"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// RSVPCreateRequest is a guest's submitted confirmation
type RSVPCreateRequest struct {
	GuestName   string `json:"guest_name"`
	IsAttending bool   `json:"is_attending"`
	PlusOnes    int    `json:"plus_ones"`
	Message     string `json:"message"`
}

// Validate validates a guest RSVP submission
func (r *RSVPCreateRequest) Validate() error {
	if strings.TrimSpace(r.GuestName) == "" {
		return errors.New("guest name is required")
	}
	if len(r.GuestName) > 255 {
		return errors.New("guest name must be less than 255 characters")
	}
	if r.PlusOnes < 0 {
		return errors.New("party size cannot be negative")
	}
	if r.PlusOnes > 20 {
		return errors.New("party size cannot exceed 20")
	}
	if len(r.Message) > 2000 {
		return errors.New("message must be less than 2000 characters")
	}
	return nil
}
