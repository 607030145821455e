// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/carterperez-dev/mercadito/internal/auth"
	"github.com/carterperez-dev/mercadito/internal/core"
	"github.com/carterperez-dev/mercadito/internal/middleware"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetByUsername(
	ctx context.Context,
	username string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) Create(
	ctx context.Context,
	params auth.CreateUserParams,
) (*auth.UserInfo, error) {
	user := &User{
		Email:        strings.ToLower(params.Email),
		Username:     params.Username,
		PasswordHash: params.PasswordHash,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Phone:        params.Phone,
		Address:      params.Address,
		City:         params.City,
		Province:     params.Province,
		PostalCode:   params.PostalCode,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

// LoadByUsername resolves the token subject into the request identity.
func (s *Service) LoadByUsername(
	ctx context.Context,
	username string,
) (*middleware.CurrentUser, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	return &middleware.CurrentUser{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Active:   user.IsActive,
	}, nil
}

// GetPublicProfile hides deactivated accounts from public lookups.
func (s *Service) GetPublicProfile(
	ctx context.Context,
	username string,
) (*User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if !user.IsActive {
		return nil, fmt.Errorf("get public profile: %w", core.ErrNotFound)
	}

	return user, nil
}

// EnsureActive reports whether the user exists and is active.
// Deactivated accounts read as absent to other domains.
func (s *Service) EnsureActive(ctx context.Context, userID int64) error {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !user.IsActive {
		return fmt.Errorf("ensure active: %w", core.ErrNotFound)
	}

	return nil
}

func (s *Service) GetProfile(ctx context.Context, userID int64) (*User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *Service) UpdateProfile(
	ctx context.Context,
	userID int64,
	req UpdateUserRequest,
) (*User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	req.ApplyTo(user)

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) DeactivateMe(ctx context.Context, userID int64) error {
	if userID == 0 {
		return fmt.Errorf("deactivate: %w", core.ErrUnauthorized)
	}

	return s.repo.Deactivate(ctx, userID)
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		PasswordHash: u.PasswordHash,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
	}
}

var (
	_ auth.UserProvider     = (*Service)(nil)
	_ middleware.UserLoader = (*Service)(nil)
)
