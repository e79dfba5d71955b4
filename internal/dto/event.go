package dto

import (
	"io"
	"strings"
	"time"

	"github.com/robaa12/mawid-client/internal/domain"
)

// EventInput carries the fields for event create/update. Create always goes
// out as multipart; update is JSON unless an image is attached.
type EventInput struct {
	Name        string
	Description string
	CategoryID  uint
	EventDate   time.Time
	Venue       string
	Price       float64
	Tags        []string

	// Optional image upload
	ImageName string
	Image     io.Reader
}

// HasImage reports whether an image upload is attached
func (i *EventInput) HasImage() bool {
	return i.Image != nil
}

// Validate runs the client-side schema checks before any request is sent
func (i *EventInput) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return &domain.ValidationError{Field: "name", Message: "event name is required"}
	}
	if i.CategoryID == 0 {
		return &domain.ValidationError{Field: "category_id", Message: "category is required"}
	}
	if i.EventDate.IsZero() {
		return &domain.ValidationError{Field: "event_date", Message: "event date is required"}
	}
	if i.Price < 0 {
		return &domain.ValidationError{Field: "price", Message: "price cannot be negative"}
	}
	if i.HasImage() && strings.TrimSpace(i.ImageName) == "" {
		return &domain.ValidationError{Field: "image", Message: "image filename is required"}
	}
	return nil
}

// CategoryInput carries the fields for category create/update
type CategoryInput struct {
	Name string `json:"name"`
}

// Validate runs the client-side schema checks before any request is sent
func (i *CategoryInput) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return &domain.ValidationError{Field: "name", Message: "category name is required"}
	}
	return nil
}
