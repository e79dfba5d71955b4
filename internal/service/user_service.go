package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/robaa12/mawid-client/internal/domain"
	"github.com/robaa12/mawid-client/internal/dto"
	"github.com/robaa12/mawid-client/internal/envelope"
	"github.com/robaa12/mawid-client/internal/transport"
	"github.com/robaa12/mawid-client/pkg/logger"
)

// UserService calls the admin user endpoints
type UserService struct {
	tp  *transport.Client
	log *logger.Logger
}

// NewUserService creates a UserService
func NewUserService(tp *transport.Client) *UserService {
	return &UserService{tp: tp, log: logger.Get()}
}

// List fetches users with pagination (admin only). Note the endpoint uses
// `limit`, not `page_size`.
func (s *UserService) List(ctx context.Context, page, limit int) ([]domain.User, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	raw, err := s.tp.Get(ctx, "/users", query)
	if err != nil {
		return nil, err
	}
	return envelope.UserList(raw), nil
}

// Get fetches a user by id (admin only)
func (s *UserService) Get(ctx context.Context, id uint) (domain.User, error) {
	raw, err := s.tp.Get(ctx, fmt.Sprintf("/users/%d", id), nil)
	if err != nil {
		return domain.User{}, err
	}
	return envelope.UserDetail(raw)
}

// Update updates a user (admin only)
func (s *UserService) Update(ctx context.Context, id uint, req dto.UpdateUserRequest) (domain.User, error) {
	if err := req.Validate(); err != nil {
		return domain.User{}, err
	}
	raw, err := s.tp.Put(ctx, fmt.Sprintf("/users/%d", id), req)
	if err != nil {
		return domain.User{}, err
	}
	return envelope.UserDetail(raw)
}
