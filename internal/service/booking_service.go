package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/robaa12/mawid-client/internal/domain"
	"github.com/robaa12/mawid-client/internal/dto"
	"github.com/robaa12/mawid-client/internal/envelope"
	"github.com/robaa12/mawid-client/internal/transport"
	"github.com/robaa12/mawid-client/pkg/logger"
)

// BookingService calls the booking endpoints
type BookingService struct {
	tp  *transport.Client
	log *logger.Logger
}

// NewBookingService creates a BookingService
func NewBookingService(tp *transport.Client) *BookingService {
	return &BookingService{tp: tp, log: logger.Get()}
}

// UserBookings fetches the caller's own bookings
func (s *BookingService) UserBookings(ctx context.Context, page, pageSize int) (domain.BookingPage, error) {
	raw, err := s.tp.Get(ctx, "/bookings", pageQuery(page, pageSize))
	if err != nil {
		return domain.BookingPage{}, err
	}
	return envelope.BookingList(raw), nil
}

// AdminBookings fetches all bookings (admin only)
func (s *BookingService) AdminBookings(ctx context.Context, page, pageSize int) (domain.BookingPage, error) {
	raw, err := s.tp.Get(ctx, "/bookings/admin", pageQuery(page, pageSize))
	if err != nil {
		return domain.BookingPage{}, err
	}
	return envelope.BookingList(raw), nil
}

// EventBookings lists bookings for one event. There is no dedicated server
// endpoint; the admin list is filtered by event id client-side, so Total
// reflects the filtered count, not the server total.
func (s *BookingService) EventBookings(ctx context.Context, eventID uint, page, pageSize int) (domain.BookingPage, error) {
	all, err := s.AdminBookings(ctx, page, pageSize)
	if err != nil {
		return domain.BookingPage{}, err
	}

	filtered := make([]domain.Booking, 0, len(all.Bookings))
	for _, booking := range all.Bookings {
		if booking.EventID == eventID {
			filtered = append(filtered, booking)
		}
	}
	return domain.BookingPage{
		Bookings:   filtered,
		TotalPages: all.TotalPages,
		Total:      len(filtered),
	}, nil
}

// Create books the given event for the authenticated user
func (s *BookingService) Create(ctx context.Context, eventID uint) (domain.Booking, error) {
	req := dto.CreateBookingRequest{EventID: eventID}
	if err := req.Validate(); err != nil {
		return domain.Booking{}, err
	}
	raw, err := s.tp.Post(ctx, "/bookings", req)
	if err != nil {
		return domain.Booking{}, err
	}
	return envelope.BookingDetail(raw)
}

// CheckEvent returns the caller's booking for an event, if any. A 404 from
// the server means "not booked" and surfaces as the APIError it is.
func (s *BookingService) CheckEvent(ctx context.Context, eventID uint) (domain.Booking, error) {
	raw, err := s.tp.Get(ctx, fmt.Sprintf("/bookings/event/%d", eventID), nil)
	if err != nil {
		return domain.Booking{}, err
	}
	return envelope.BookingDetail(raw)
}

// UpdateStatus confirms or cancels a booking. The returned booking is the
// server's record; nothing is mutated client-side beforehand.
func (s *BookingService) UpdateStatus(ctx context.Context, id uint, status domain.BookingStatus) (domain.Booking, error) {
	req := dto.UpdateBookingStatusRequest{Status: status}
	if err := req.Validate(); err != nil {
		return domain.Booking{}, err
	}
	raw, err := s.tp.Put(ctx, fmt.Sprintf("/bookings/%d/status", id), req)
	if err != nil {
		return domain.Booking{}, err
	}
	return envelope.BookingDetail(raw)
}

func pageQuery(page, pageSize int) url.Values {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(pageSize))
	return query
}
