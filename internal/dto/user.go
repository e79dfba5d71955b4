package dto

import (
	"strings"

	"github.com/robaa12/mawid-client/internal/domain"
)

// UpdateUserRequest is the PUT /users/:id payload (admin only)
type UpdateUserRequest struct {
	Name  string      `json:"name,omitempty"`
	Email string      `json:"email,omitempty"`
	Role  domain.Role `json:"role,omitempty"`
}

// Validate runs the client-side schema checks before any request is sent
func (r *UpdateUserRequest) Validate() error {
	if r.Name == "" && r.Email == "" && r.Role == "" {
		return &domain.ValidationError{Message: "nothing to update"}
	}
	if r.Email != "" && !emailRegex.MatchString(r.Email) {
		return &domain.ValidationError{Field: "email", Message: "invalid email format"}
	}
	if r.Role != "" && r.Role != domain.RoleAdmin && r.Role != domain.RoleUser {
		return &domain.ValidationError{Field: "role", Message: "role must be admin or user"}
	}
	if r.Name != "" && len(strings.TrimSpace(r.Name)) < 2 {
		return &domain.ValidationError{Field: "name", Message: "name must be at least 2 characters"}
	}
	return nil
}
