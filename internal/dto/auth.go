package dto

import (
	"regexp"
	"strings"

	"github.com/robaa12/mawid-client/internal/domain"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// LoginRequest is the /auth/login payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate runs the client-side schema checks before any request is sent
func (r *LoginRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return &domain.ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(r.Email) {
		return &domain.ValidationError{Field: "email", Message: "invalid email format"}
	}
	if r.Password == "" {
		return &domain.ValidationError{Field: "password", Message: "password is required"}
	}
	return nil
}

// RegisterRequest is the /auth/register payload
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate runs the client-side schema checks before any request is sent
func (r *RegisterRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return &domain.ValidationError{Field: "name", Message: "name is required"}
	}
	if len(strings.TrimSpace(r.Name)) < 2 {
		return &domain.ValidationError{Field: "name", Message: "name must be at least 2 characters"}
	}
	if !emailRegex.MatchString(r.Email) {
		return &domain.ValidationError{Field: "email", Message: "invalid email format"}
	}
	if len(r.Password) < 6 {
		return &domain.ValidationError{Field: "password", Message: "password must be at least 6 characters"}
	}
	return nil
}
