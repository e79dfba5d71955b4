package service

import (
	"context"

	"github.com/robaa12/mawid-client/internal/domain"
	"github.com/robaa12/mawid-client/internal/dto"
	"github.com/robaa12/mawid-client/internal/envelope"
	"github.com/robaa12/mawid-client/internal/transport"
	"github.com/robaa12/mawid-client/pkg/logger"
)

// AuthService calls the authentication endpoints. Session state handling
// lives in the session manager; this layer only talks wire shapes.
type AuthService struct {
	tp  *transport.Client
	log *logger.Logger
}

// NewAuthService creates an AuthService
func NewAuthService(tp *transport.Client) *AuthService {
	return &AuthService{tp: tp, log: logger.Get()}
}

// Login exchanges credentials for a token + user payload
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*envelope.AuthPayload, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	raw, err := s.tp.Post(ctx, "/auth/login", req)
	if err != nil {
		return nil, err
	}
	auth, err := envelope.AuthData(raw)
	if err != nil {
		return nil, err
	}
	return &auth, nil
}

// Register creates an account and returns a token + user payload
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*envelope.AuthPayload, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	raw, err := s.tp.Post(ctx, "/auth/register", req)
	if err != nil {
		return nil, err
	}
	auth, err := envelope.AuthData(raw)
	if err != nil {
		return nil, err
	}
	return &auth, nil
}

// Profile fetches the authenticated user
func (s *AuthService) Profile(ctx context.Context) (domain.User, error) {
	raw, err := s.tp.Get(ctx, "/auth/profile", nil)
	if err != nil {
		return domain.User{}, err
	}
	return envelope.UserDetail(raw)
}
