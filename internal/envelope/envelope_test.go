package envelope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robaa12/mawid-client/internal/domain"
)

func TestEventList_Shapes(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantLen    int
		wantPages  int
		wantFirst  string
	}{
		{
			name:      "success envelope with data",
			body:      `{"success":true,"data":{"events":[{"id":1,"name":"GopherCon"}],"total_pages":3}}`,
			wantLen:   1,
			wantPages: 3,
			wantFirst: "GopherCon",
		},
		{
			name:      "resource key at top level",
			body:      `{"events":[{"id":1,"name":"GopherCon"},{"id":2,"name":"DevFest"}],"total_pages":5}`,
			wantLen:   2,
			wantPages: 5,
			wantFirst: "GopherCon",
		},
		{
			name:      "raw array",
			body:      `[{"id":7,"name":"Meetup"}]`,
			wantLen:   1,
			wantPages: 1,
			wantFirst: "Meetup",
		},
		{
			name:      "single array field under different key",
			body:      `{"results":[{"id":9,"name":"Workshop"}],"count":1}`,
			wantLen:   1,
			wantPages: 1,
			wantFirst: "Workshop",
		},
		{
			name:      "matched shape without total_pages defaults to one",
			body:      `{"events":[{"id":1,"name":"GopherCon"}]}`,
			wantLen:   1,
			wantPages: 1,
			wantFirst: "GopherCon",
		},
		{
			name:      "matched shape with null events",
			body:      `{"events":null,"total_pages":0}`,
			wantLen:   0,
			wantPages: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := EventList([]byte(tt.body))

			require.NotNil(t, page.Events)
			assert.Len(t, page.Events, tt.wantLen)
			assert.Equal(t, tt.wantPages, page.TotalPages)
			if tt.wantFirst != "" {
				assert.Equal(t, tt.wantFirst, page.Events[0].Name)
			}
		})
	}
}

func TestEventList_UnrecognizedDegradesToEmpty(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"garbage", `not json at all`},
		{"object with no arrays", `{"message":"hello"}`},
		{"object with two array fields", `{"a":[1],"b":[2]}`},
		{"bare string", `"events"`},
		{"empty body", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := EventList([]byte(tt.body))

			require.NotNil(t, page.Events)
			assert.Empty(t, page.Events)
			assert.Equal(t, 0, page.TotalPages)
		})
	}
}

func TestEventDetail(t *testing.T) {
	t.Run("success envelope", func(t *testing.T) {
		event, err := EventDetail([]byte(`{"success":true,"data":{"id":4,"name":"GopherCon","price":25.5}}`))

		require.NoError(t, err)
		assert.Equal(t, uint(4), event.ID)
		assert.Equal(t, domain.Money(25.5), event.Price)
	})

	t.Run("nested under event key", func(t *testing.T) {
		event, err := EventDetail([]byte(`{"event":{"id":4,"name":"GopherCon"}}`))

		require.NoError(t, err)
		assert.Equal(t, uint(4), event.ID)
	})

	t.Run("bare object", func(t *testing.T) {
		event, err := EventDetail([]byte(`{"id":4,"name":"GopherCon"}`))

		require.NoError(t, err)
		assert.Equal(t, "GopherCon", event.Name)
	})

	t.Run("missing id is a format error", func(t *testing.T) {
		_, err := EventDetail([]byte(`{"name":"GopherCon"}`))

		assert.True(t, domain.IsFormatError(err))
	})

	t.Run("array body is a format error", func(t *testing.T) {
		_, err := EventDetail([]byte(`[{"id":4}]`))

		assert.True(t, domain.IsFormatError(err))
	})
}

func TestBookingList(t *testing.T) {
	t.Run("full page with totals", func(t *testing.T) {
		body := `{"success":true,"data":{"bookings":[{"id":1,"event_id":2,"status":"confirmed"}],"total_pages":4,"total":31}}`

		page := BookingList([]byte(body))

		require.Len(t, page.Bookings, 1)
		assert.Equal(t, 4, page.TotalPages)
		assert.Equal(t, 31, page.Total)
		assert.Equal(t, domain.BookingStatusConfirmed, page.Bookings[0].Status)
	})

	t.Run("total defaults to slice length", func(t *testing.T) {
		page := BookingList([]byte(`{"bookings":[{"id":1},{"id":2}]}`))

		assert.Equal(t, 2, page.Total)
		assert.Equal(t, 1, page.TotalPages)
	})

	t.Run("raw array", func(t *testing.T) {
		page := BookingList([]byte(`[{"id":1},{"id":2},{"id":3}]`))

		assert.Len(t, page.Bookings, 3)
		assert.Equal(t, 3, page.Total)
	})

	t.Run("unrecognized degrades to empty", func(t *testing.T) {
		page := BookingList([]byte(`{"oops":true}`))

		require.NotNil(t, page.Bookings)
		assert.Empty(t, page.Bookings)
		assert.Equal(t, 0, page.TotalPages)
		assert.Equal(t, 0, page.Total)
	})
}

func TestCategoryList(t *testing.T) {
	t.Run("raw array", func(t *testing.T) {
		categories := CategoryList([]byte(`[{"id":1,"name":"Music"},{"id":2,"name":"Tech"}]`))

		require.Len(t, categories, 2)
		assert.Equal(t, "Tech", categories[1].Name)
	})

	t.Run("categories key inside envelope", func(t *testing.T) {
		categories := CategoryList([]byte(`{"success":true,"data":{"categories":[{"id":1,"name":"Music"}]}}`))

		require.Len(t, categories, 1)
		assert.Equal(t, "Music", categories[0].Name)
	})

	t.Run("unrecognized degrades to empty", func(t *testing.T) {
		categories := CategoryList([]byte(`42`))

		require.NotNil(t, categories)
		assert.Empty(t, categories)
	})
}

func TestUserList(t *testing.T) {
	t.Run("bare array", func(t *testing.T) {
		users := UserList([]byte(`[{"id":1,"name":"Aya","role":"admin"}]`))

		require.Len(t, users, 1)
		assert.True(t, users[0].IsAdmin())
	})

	t.Run("users key", func(t *testing.T) {
		users := UserList([]byte(`{"users":[{"id":1,"name":"Aya"},{"id":2,"name":"Omar"}]}`))

		require.Len(t, users, 2)
		assert.Equal(t, "Omar", users[1].Name)
	})

	t.Run("envelope around users key", func(t *testing.T) {
		users := UserList([]byte(`{"success":true,"data":{"users":[{"id":1,"name":"Aya"}]}}`))

		require.Len(t, users, 1)
	})

	t.Run("unrecognized degrades to empty", func(t *testing.T) {
		users := UserList([]byte(`{"user":{"id":1}}`))

		require.NotNil(t, users)
		assert.Empty(t, users)
	})
}

func TestUserDetail(t *testing.T) {
	t.Run("nested under user key", func(t *testing.T) {
		user, err := UserDetail([]byte(`{"success":true,"data":{"user":{"id":3,"email":"aya@example.com"}}}`))

		require.NoError(t, err)
		assert.Equal(t, uint(3), user.ID)
	})

	t.Run("missing id is a format error", func(t *testing.T) {
		_, err := UserDetail([]byte(`{"email":"aya@example.com"}`))

		assert.True(t, domain.IsFormatError(err))
	})
}

func TestAuthData(t *testing.T) {
	t.Run("token and user", func(t *testing.T) {
		body := `{"success":true,"data":{"token":"abc123","user":{"id":1,"role":"user","email":"aya@example.com"}}}`

		auth, err := AuthData([]byte(body))

		require.NoError(t, err)
		assert.Equal(t, "abc123", auth.Token)
		require.NotNil(t, auth.User)
		assert.Equal(t, "aya@example.com", auth.User.Email)
	})

	t.Run("token at top level without envelope", func(t *testing.T) {
		auth, err := AuthData([]byte(`{"token":"abc123","user":{"id":1}}`))

		require.NoError(t, err)
		assert.Equal(t, "abc123", auth.Token)
	})

	t.Run("missing token key is a format error", func(t *testing.T) {
		_, err := AuthData([]byte(`{"user":{"id":1}}`))

		assert.True(t, domain.IsFormatError(err))
	})

	t.Run("non-object body is a format error", func(t *testing.T) {
		_, err := AuthData([]byte(`["token"]`))

		assert.True(t, domain.IsFormatError(err))
	})
}
