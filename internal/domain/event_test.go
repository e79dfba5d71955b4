package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Money
	}{
		{"plain number", `{"price":25.5}`, 25.5},
		{"integer", `{"price":25}`, 25},
		{"quoted number", `{"price":"25.5"}`, 25.5},
		{"null", `{"price":null}`, 0},
		{"empty string", `{"price":""}`, 0},
		{"garbage string", `{"price":"free"}`, 0},
		{"absent", `{}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var event Event
			require.NoError(t, json.Unmarshal([]byte(tt.body), &event))
			assert.Equal(t, tt.want, event.Price)
		})
	}
}

func TestMoneyMarshal(t *testing.T) {
	data, err := json.Marshal(Money(25.5))
	require.NoError(t, err)
	assert.Equal(t, "25.5", string(data))
}

func TestUserIsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: RoleUser}).IsAdmin())
	assert.False(t, (*User)(nil).IsAdmin())
}

func TestBookingStatusValid(t *testing.T) {
	assert.True(t, BookingStatusPending.Valid())
	assert.True(t, BookingStatusConfirmed.Valid())
	assert.True(t, BookingStatusCancelled.Valid())
	assert.False(t, BookingStatus("archived").Valid())
	assert.False(t, BookingStatus("").Valid())
}

func TestSessionPopulated(t *testing.T) {
	var session Session
	assert.False(t, session.Populated())

	session = Session{User: &User{ID: 1}, Token: "tok"}
	assert.True(t, session.Populated())

	session.Clear()
	assert.False(t, session.Populated())
	assert.Nil(t, session.User)
	assert.Empty(t, session.Token)
}
