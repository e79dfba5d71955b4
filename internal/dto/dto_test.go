package dto

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robaa12/mawid-client/internal/domain"
)

func TestLoginRequestValidate(t *testing.T) {
	tests := []struct {
		name      string
		req       LoginRequest
		wantField string
	}{
		{"valid", LoginRequest{Email: "aya@example.com", Password: "secret"}, ""},
		{"empty email", LoginRequest{Password: "secret"}, "email"},
		{"malformed email", LoginRequest{Email: "not-an-email", Password: "secret"}, "email"},
		{"missing at-domain", LoginRequest{Email: "aya@", Password: "secret"}, "email"},
		{"empty password", LoginRequest{Email: "aya@example.com"}, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()

			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestRegisterRequestValidate(t *testing.T) {
	valid := RegisterRequest{Name: "Aya", Email: "aya@example.com", Password: "secret1"}

	tests := []struct {
		name      string
		mutate    func(*RegisterRequest)
		wantField string
	}{
		{"valid", func(r *RegisterRequest) {}, ""},
		{"empty name", func(r *RegisterRequest) { r.Name = "" }, "name"},
		{"one-char name", func(r *RegisterRequest) { r.Name = "A" }, "name"},
		{"whitespace name", func(r *RegisterRequest) { r.Name = "   " }, "name"},
		{"bad email", func(r *RegisterRequest) { r.Email = "nope" }, "email"},
		{"short password", func(r *RegisterRequest) { r.Password = "12345" }, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := req.Validate()

			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestEventInputValidate(t *testing.T) {
	valid := EventInput{
		Name:       "GopherCon",
		CategoryID: 2,
		EventDate:  time.Date(2026, 6, 1, 19, 0, 0, 0, time.UTC),
		Price:      25,
	}

	tests := []struct {
		name      string
		mutate    func(*EventInput)
		wantField string
	}{
		{"valid", func(i *EventInput) {}, ""},
		{"empty name", func(i *EventInput) { i.Name = " " }, "name"},
		{"missing category", func(i *EventInput) { i.CategoryID = 0 }, "category_id"},
		{"zero date", func(i *EventInput) { i.EventDate = time.Time{} }, "event_date"},
		{"negative price", func(i *EventInput) { i.Price = -1 }, "price"},
		{"image without filename", func(i *EventInput) {
			i.Image = strings.NewReader("png")
			i.ImageName = ""
		}, "image"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := valid
			tt.mutate(&input)

			err := input.Validate()

			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestEventInputHasImage(t *testing.T) {
	input := EventInput{}
	assert.False(t, input.HasImage())

	input.Image = strings.NewReader("png")
	assert.True(t, input.HasImage())
}

func TestBookingRequestsValidate(t *testing.T) {
	create := CreateBookingRequest{}
	assert.Error(t, create.Validate())
	create.EventID = 7
	assert.NoError(t, create.Validate())

	update := UpdateBookingStatusRequest{Status: "archived"}
	assert.Error(t, update.Validate())
	update.Status = domain.BookingStatusCancelled
	assert.NoError(t, update.Validate())
}

func TestUpdateUserRequestValidate(t *testing.T) {
	assert.Error(t, (&UpdateUserRequest{}).Validate())
	assert.Error(t, (&UpdateUserRequest{Email: "nope"}).Validate())
	assert.Error(t, (&UpdateUserRequest{Role: "owner"}).Validate())
	assert.Error(t, (&UpdateUserRequest{Name: "A"}).Validate())
	assert.NoError(t, (&UpdateUserRequest{Role: domain.RoleAdmin}).Validate())
	assert.NoError(t, (&UpdateUserRequest{Name: "Aya", Email: "aya@example.com"}).Validate())
}
