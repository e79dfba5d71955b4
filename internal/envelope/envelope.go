// Package envelope unwraps the backend's inconsistent response shapes into
// one canonical payload per resource. The backend answers with any of:
//
//  1. {success: true, data: <payload>}
//  2. the payload directly, keyed by its resource name (events, bookings, token)
//  3. a raw JSON array
//  4. an object whose values include exactly one array-valued field
//
// Shapes are tried in that order and the first match wins. List resources
// degrade to an empty page when nothing matches so consumers can render an
// empty state; single-entity resources surface a FormatError.
package envelope

import (
	"bytes"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/robaa12/mawid-client/internal/domain"
	"github.com/robaa12/mawid-client/pkg/logger"
)

// AuthPayload is the canonical login/register payload
type AuthPayload struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// unwrapSuccess applies shape 1: {success: true, data: <payload>}.
func unwrapSuccess(raw []byte) (json.RawMessage, bool) {
	var env struct {
		Success *bool           `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, false
	}
	if env.Success != nil && *env.Success && len(env.Data) > 0 {
		return env.Data, true
	}
	return nil, false
}

// asObject decodes raw into a field map when it is a JSON object
func asObject(raw []byte) (map[string]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, false
	}
	return obj, true
}

func isArray(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// singleArrayField applies shape 4: an object whose values include exactly
// one array-valued field.
func singleArrayField(obj map[string]json.RawMessage) (json.RawMessage, bool) {
	var found json.RawMessage
	count := 0
	for _, value := range obj {
		if isArray(value) {
			found = value
			count++
		}
	}
	if count == 1 {
		return found, true
	}
	return nil, false
}

// payload resolves shape 1 and hands back the body to match further shapes
// against.
func payload(raw []byte) json.RawMessage {
	if data, ok := unwrapSuccess(raw); ok {
		return data
	}
	return raw
}

func intField(obj map[string]json.RawMessage, key string, fallback int) int {
	value, ok := obj[key]
	if !ok {
		return fallback
	}
	var n int
	if err := json.Unmarshal(value, &n); err != nil {
		return fallback
	}
	return n
}

// EventList normalizes any event list response to {events, total_pages}.
// Unrecognized bodies yield an empty page, never an error.
func EventList(raw []byte) domain.EventPage {
	body := payload(raw)

	if obj, ok := asObject(body); ok {
		if eventsRaw, ok := obj["events"]; ok {
			var events []domain.Event
			if err := json.Unmarshal(eventsRaw, &events); err == nil {
				if events == nil {
					events = []domain.Event{}
				}
				return domain.EventPage{Events: events, TotalPages: intField(obj, "total_pages", 1)}
			}
		}
		if arr, ok := singleArrayField(obj); ok {
			var events []domain.Event
			if err := json.Unmarshal(arr, &events); err == nil {
				return domain.EventPage{Events: events, TotalPages: intField(obj, "total_pages", 1)}
			}
		}
	} else if isArray(body) {
		var events []domain.Event
		if err := json.Unmarshal(body, &events); err == nil {
			return domain.EventPage{Events: events, TotalPages: 1}
		}
	}

	logger.Get().Warn("unrecognized event list response, returning empty page",
		zap.ByteString("body", truncate(raw)))
	return domain.EventPage{Events: []domain.Event{}, TotalPages: 0}
}

// EventDetail normalizes a single-event response. Price coercion to a number
// (zero when absent or invalid) happens in the Money decoder.
func EventDetail(raw []byte) (domain.Event, error) {
	body := payload(raw)

	obj, ok := asObject(body)
	if !ok {
		return domain.Event{}, &domain.FormatError{Resource: "event"}
	}
	// some write paths nest the entity one level deeper
	if nested, ok := obj["event"]; ok {
		body = nested
	}

	var event domain.Event
	if err := json.Unmarshal(body, &event); err != nil || event.ID == 0 {
		return domain.Event{}, &domain.FormatError{Resource: "event"}
	}
	return event, nil
}

// CategoryList normalizes the categories response to a bare slice.
func CategoryList(raw []byte) []domain.Category {
	body := payload(raw)

	if isArray(body) {
		var categories []domain.Category
		if err := json.Unmarshal(body, &categories); err == nil {
			return categories
		}
	} else if obj, ok := asObject(body); ok {
		arr, ok := obj["categories"]
		if !ok {
			arr, ok = singleArrayField(obj)
		}
		if ok {
			var categories []domain.Category
			if err := json.Unmarshal(arr, &categories); err == nil {
				return categories
			}
		}
	}

	logger.Get().Warn("unrecognized category list response, returning empty list",
		zap.ByteString("body", truncate(raw)))
	return []domain.Category{}
}

// CategoryDetail normalizes a single-category response
func CategoryDetail(raw []byte) (domain.Category, error) {
	body := payload(raw)

	obj, ok := asObject(body)
	if !ok {
		return domain.Category{}, &domain.FormatError{Resource: "category"}
	}
	if nested, ok := obj["category"]; ok {
		body = nested
	}

	var category domain.Category
	if err := json.Unmarshal(body, &category); err != nil || category.ID == 0 {
		return domain.Category{}, &domain.FormatError{Resource: "category"}
	}
	return category, nil
}

// BookingList normalizes any booking list response to
// {bookings, total_pages, total}.
func BookingList(raw []byte) domain.BookingPage {
	body := payload(raw)

	if obj, ok := asObject(body); ok {
		bookingsRaw, ok := obj["bookings"]
		if !ok {
			bookingsRaw, ok = singleArrayField(obj)
		}
		if ok {
			var bookings []domain.Booking
			if err := json.Unmarshal(bookingsRaw, &bookings); err == nil {
				if bookings == nil {
					bookings = []domain.Booking{}
				}
				return domain.BookingPage{
					Bookings:   bookings,
					TotalPages: intField(obj, "total_pages", 1),
					Total:      intField(obj, "total", len(bookings)),
				}
			}
		}
	} else if isArray(body) {
		var bookings []domain.Booking
		if err := json.Unmarshal(body, &bookings); err == nil {
			return domain.BookingPage{Bookings: bookings, TotalPages: 1, Total: len(bookings)}
		}
	}

	logger.Get().Warn("unrecognized booking list response, returning empty page",
		zap.ByteString("body", truncate(raw)))
	return domain.BookingPage{Bookings: []domain.Booking{}, TotalPages: 0, Total: 0}
}

// BookingDetail normalizes a single-booking response (create, status update)
func BookingDetail(raw []byte) (domain.Booking, error) {
	body := payload(raw)

	obj, ok := asObject(body)
	if !ok {
		return domain.Booking{}, &domain.FormatError{Resource: "booking"}
	}
	if nested, ok := obj["booking"]; ok {
		body = nested
	}

	var booking domain.Booking
	if err := json.Unmarshal(body, &booking); err != nil || booking.ID == 0 {
		return domain.Booking{}, &domain.FormatError{Resource: "booking"}
	}
	return booking, nil
}

// UserList accepts both {users: [...]} and a bare array
func UserList(raw []byte) []domain.User {
	body := payload(raw)

	if isArray(body) {
		var users []domain.User
		if err := json.Unmarshal(body, &users); err == nil {
			return users
		}
	} else if obj, ok := asObject(body); ok {
		arr, ok := obj["users"]
		if !ok {
			arr, ok = singleArrayField(obj)
		}
		if ok {
			var users []domain.User
			if err := json.Unmarshal(arr, &users); err == nil {
				return users
			}
		}
	}

	logger.Get().Warn("unrecognized user list response, returning empty list",
		zap.ByteString("body", truncate(raw)))
	return []domain.User{}
}

// UserDetail normalizes a single-user response (profile, get, update)
func UserDetail(raw []byte) (domain.User, error) {
	body := payload(raw)

	obj, ok := asObject(body)
	if !ok {
		return domain.User{}, &domain.FormatError{Resource: "user"}
	}
	if nested, ok := obj["user"]; ok {
		body = nested
	}

	var user domain.User
	if err := json.Unmarshal(body, &user); err != nil || user.ID == 0 {
		return domain.User{}, &domain.FormatError{Resource: "user"}
	}
	return user, nil
}

// AuthData normalizes login/register responses. The token must be present;
// its absence is the caller's AuthError, not a FormatError, so the shape
// check here only guarantees a recognizable body.
func AuthData(raw []byte) (AuthPayload, error) {
	body := payload(raw)

	obj, ok := asObject(body)
	if !ok {
		return AuthPayload{}, &domain.FormatError{Resource: "auth"}
	}
	if _, ok := obj["token"]; !ok {
		return AuthPayload{}, &domain.FormatError{Resource: "auth"}
	}

	var auth AuthPayload
	if err := json.Unmarshal(body, &auth); err != nil {
		return AuthPayload{}, &domain.FormatError{Resource: "auth"}
	}
	return auth, nil
}

// truncate keeps anomaly logs bounded
func truncate(raw []byte) []byte {
	const limit = 512
	if len(raw) > limit {
		return raw[:limit]
	}
	return raw
}
