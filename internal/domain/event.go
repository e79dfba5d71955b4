package domain

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Money is a price in the API's currency unit. The backend is not consistent
// about the JSON encoding of prices (number, quoted number, null, absent), so
// decoding is tolerant: anything unparseable becomes zero.
type Money float64

// UnmarshalJSON implements tolerant price decoding
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*m = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*m = 0
		return nil
	}
	*m = Money(f)
	return nil
}

// MarshalJSON encodes the price as a plain JSON number
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(m))
}

// Event represents a bookable event
type Event struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CategoryID  uint      `json:"category_id"`
	Category    *Category `json:"category,omitempty"`
	EventDate   time.Time `json:"event_date"`
	Venue       string    `json:"venue"`
	Price       Money     `json:"price"`
	ImageURL    string    `json:"image_url"`
	Tags        []Tag     `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Category represents an event category
type Category struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Tag represents an event tag
type Tag struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// EventPage is the canonical payload for every event list call
type EventPage struct {
	Events     []Event `json:"events"`
	TotalPages int     `json:"total_pages"`
}
