package session

// Access is the protection level a route declares
type Access int

const (
	// AccessPublic routes always pass.
	AccessPublic Access = iota
	// AccessAuthenticated routes require a session.
	AccessAuthenticated
	// AccessAdmin routes require a session with the admin role.
	AccessAdmin
)

// Decision is the guard's verdict. Denials always redirect, never error.
type Decision struct {
	Allow    bool
	Redirect string
}

// Authorize is the route guard: it decides from (isAuthenticated, isAdmin)
// alone. Unauthenticated callers go to the login route; authenticated
// non-admins hitting an admin route go home.
func Authorize(access Access, isAuthenticated, isAdmin bool) Decision {
	switch access {
	case AccessAuthenticated:
		if !isAuthenticated {
			return Decision{Redirect: RouteLogin}
		}
	case AccessAdmin:
		if !isAuthenticated {
			return Decision{Redirect: RouteLogin}
		}
		if !isAdmin {
			return Decision{Redirect: RouteHome}
		}
	}
	return Decision{Allow: true}
}

// Authorize applies the guard against the manager's current view
func (m *Manager) Authorize(access Access) Decision {
	view := m.Snapshot()
	return Authorize(access, view.IsAuthenticated, view.IsAdmin)
}
