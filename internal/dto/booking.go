package dto

import (
	"github.com/robaa12/mawid-client/internal/domain"
)

// CreateBookingRequest is the POST /bookings payload
type CreateBookingRequest struct {
	EventID uint `json:"event_id"`
}

// Validate runs the client-side schema checks before any request is sent
func (r *CreateBookingRequest) Validate() error {
	if r.EventID == 0 {
		return &domain.ValidationError{Field: "event_id", Message: "event id is required"}
	}
	return nil
}

// UpdateBookingStatusRequest is the PUT /bookings/:id/status payload
type UpdateBookingStatusRequest struct {
	Status domain.BookingStatus `json:"status"`
}

// Validate runs the client-side schema checks before any request is sent
func (r *UpdateBookingStatusRequest) Validate() error {
	if !r.Status.Valid() {
		return &domain.ValidationError{Field: "status", Message: "status must be pending, confirmed or cancelled"}
	}
	return nil
}
