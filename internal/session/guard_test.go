package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name            string
		access          Access
		isAuthenticated bool
		isAdmin         bool
		wantAllow       bool
		wantRedirect    string
	}{
		{"public always passes", AccessPublic, false, false, true, ""},
		{"public passes authenticated", AccessPublic, true, false, true, ""},
		{"authenticated route without session", AccessAuthenticated, false, false, false, RouteLogin},
		{"authenticated route with session", AccessAuthenticated, true, false, true, ""},
		{"admin route without session", AccessAdmin, false, false, false, RouteLogin},
		{"admin route as plain user", AccessAdmin, true, false, false, RouteHome},
		{"admin route as admin", AccessAdmin, true, true, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := Authorize(tt.access, tt.isAuthenticated, tt.isAdmin)

			assert.Equal(t, tt.wantAllow, decision.Allow)
			assert.Equal(t, tt.wantRedirect, decision.Redirect)
		})
	}
}

func TestManagerAuthorizeUsesCurrentView(t *testing.T) {
	m, _, _ := newTestManager(&fakeAuthAPI{}, time.Now())

	decision := m.Authorize(AccessAdmin)

	assert.False(t, decision.Allow)
	assert.Equal(t, RouteLogin, decision.Redirect)
}
