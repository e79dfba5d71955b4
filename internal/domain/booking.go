package domain

import "time"

// BookingStatus is the booking state machine exposed by the API
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Valid reports whether the status is one the API accepts
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}

// Booking ties a user to an event. Embedded User/Event are optional; some
// endpoints return ids only.
type Booking struct {
	ID          uint          `json:"id"`
	UserID      uint          `json:"user_id"`
	User        *User         `json:"user,omitempty"`
	EventID     uint          `json:"event_id"`
	Event       *Event        `json:"event,omitempty"`
	BookingDate time.Time     `json:"booking_date"`
	Status      BookingStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// BookingPage is the canonical payload for every booking list call
type BookingPage struct {
	Bookings   []Booking `json:"bookings"`
	TotalPages int       `json:"total_pages"`
	Total      int       `json:"total"`
}
