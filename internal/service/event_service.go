package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/robaa12/mawid-client/internal/domain"
	"github.com/robaa12/mawid-client/internal/dto"
	"github.com/robaa12/mawid-client/internal/envelope"
	"github.com/robaa12/mawid-client/internal/transport"
	"github.com/robaa12/mawid-client/pkg/logger"
)

// EventService calls the event and category endpoints and hands back
// canonical payloads only.
type EventService struct {
	tp  *transport.Client
	log *logger.Logger
}

// NewEventService creates an EventService
func NewEventService(tp *transport.Client) *EventService {
	return &EventService{tp: tp, log: logger.Get()}
}

// List fetches events with pagination and optional category filter
// (categoryID zero means no filter).
func (s *EventService) List(ctx context.Context, page, pageSize int, categoryID uint) (domain.EventPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(pageSize))
	if categoryID != 0 {
		query.Set("category_id", strconv.FormatUint(uint64(categoryID), 10))
	}
	raw, err := s.tp.Get(ctx, "/events", query)
	if err != nil {
		return domain.EventPage{}, err
	}
	return envelope.EventList(raw), nil
}

// Recent fetches the server-cached recent events
func (s *EventService) Recent(ctx context.Context, pageSize int) (domain.EventPage, error) {
	query := url.Values{}
	query.Set("page_size", strconv.Itoa(pageSize))
	raw, err := s.tp.Get(ctx, "/events/recent", query)
	if err != nil {
		return domain.EventPage{}, err
	}
	return envelope.EventList(raw), nil
}

// Search fetches events matching a keyword
func (s *EventService) Search(ctx context.Context, q string, page, pageSize int) (domain.EventPage, error) {
	query := url.Values{}
	query.Set("q", q)
	query.Set("page", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(pageSize))
	raw, err := s.tp.Get(ctx, "/events/search", query)
	if err != nil {
		return domain.EventPage{}, err
	}
	return envelope.EventList(raw), nil
}

// Get fetches a single event by id
func (s *EventService) Get(ctx context.Context, id uint) (domain.Event, error) {
	raw, err := s.tp.Get(ctx, fmt.Sprintf("/events/%d", id), nil)
	if err != nil {
		return domain.Event{}, err
	}
	return envelope.EventDetail(raw)
}

// Create creates an event (admin only). The API expects multipart here even
// without an image.
func (s *EventService) Create(ctx context.Context, input dto.EventInput) (domain.Event, error) {
	if err := input.Validate(); err != nil {
		return domain.Event{}, err
	}
	raw, err := s.tp.PostForm(ctx, "/events", eventForm(input))
	if err != nil {
		return domain.Event{}, err
	}
	return envelope.EventDetail(raw)
}

// Update updates an event (admin only): multipart when an image is attached,
// JSON otherwise.
func (s *EventService) Update(ctx context.Context, id uint, input dto.EventInput) (domain.Event, error) {
	if err := input.Validate(); err != nil {
		return domain.Event{}, err
	}
	path := fmt.Sprintf("/events/%d", id)

	var (
		raw []byte
		err error
	)
	if input.HasImage() {
		raw, err = s.tp.PutForm(ctx, path, eventForm(input))
	} else {
		raw, err = s.tp.Put(ctx, path, eventJSON(input))
	}
	if err != nil {
		return domain.Event{}, err
	}
	return envelope.EventDetail(raw)
}

// Delete deletes an event (admin only)
func (s *EventService) Delete(ctx context.Context, id uint) error {
	_, err := s.tp.Delete(ctx, fmt.Sprintf("/events/%d", id))
	return err
}

// Categories fetches all event categories
func (s *EventService) Categories(ctx context.Context) ([]domain.Category, error) {
	raw, err := s.tp.Get(ctx, "/events/categories", nil)
	if err != nil {
		return nil, err
	}
	return envelope.CategoryList(raw), nil
}

// CreateCategory creates a category (admin only)
func (s *EventService) CreateCategory(ctx context.Context, input dto.CategoryInput) (domain.Category, error) {
	if err := input.Validate(); err != nil {
		return domain.Category{}, err
	}
	raw, err := s.tp.Post(ctx, "/events/categories", input)
	if err != nil {
		return domain.Category{}, err
	}
	return envelope.CategoryDetail(raw)
}

// UpdateCategory updates a category (admin only)
func (s *EventService) UpdateCategory(ctx context.Context, id uint, input dto.CategoryInput) (domain.Category, error) {
	if err := input.Validate(); err != nil {
		return domain.Category{}, err
	}
	raw, err := s.tp.Put(ctx, fmt.Sprintf("/events/categories/%d", id), input)
	if err != nil {
		return domain.Category{}, err
	}
	return envelope.CategoryDetail(raw)
}

// DeleteCategory deletes a category (admin only)
func (s *EventService) DeleteCategory(ctx context.Context, id uint) error {
	_, err := s.tp.Delete(ctx, fmt.Sprintf("/events/categories/%d", id))
	return err
}

// eventForm builds the multipart payload the write endpoints expect
func eventForm(input dto.EventInput) *transport.Form {
	form := transport.NewForm().
		AddField("name", input.Name).
		AddField("description", input.Description).
		AddField("category_id", strconv.FormatUint(uint64(input.CategoryID), 10)).
		AddField("venue", input.Venue).
		AddField("price", strconv.FormatFloat(input.Price, 'f', -1, 64)).
		AddField("event_date", input.EventDate.UTC().Format(time.RFC3339))
	if len(input.Tags) > 0 {
		form.AddField("tags", strings.Join(input.Tags, ","))
	}
	if input.HasImage() {
		form.AddFile("image", input.ImageName, input.Image)
	}
	return form
}

// eventJSON builds the JSON payload for image-less updates
func eventJSON(input dto.EventInput) map[string]any {
	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}
	return map[string]any{
		"name":        input.Name,
		"description": input.Description,
		"category_id": input.CategoryID,
		"event_date":  input.EventDate.UTC().Format(time.RFC3339),
		"venue":       input.Venue,
		"price":       input.Price,
		"tags":        tags,
	}
}
