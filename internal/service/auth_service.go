package service

import (
	"context"
	"errors"
	"strings"

	"github.com/dafibh/condo/condo-backend/internal/domain"
	"github.com/dafibh/condo/condo-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// AuthService handles users, registration and access
type AuthService struct {
	userRepo domain.UserRepository
	unitRepo domain.UnitRepository
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo domain.UserRepository, unitRepo domain.UnitRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		unitRepo: unitRepo,
	}
}

// AuthResult represents the result of an authentication operation
type AuthResult struct {
	User      *domain.User
	IsNewUser bool
}

// AuthenticateUser registers the Auth0 identity on first login. New users
// are inactive residents until an administrator activates them.
func (s *AuthService) AuthenticateUser(ctx context.Context, auth0ID, email string, name *string) (*AuthResult, error) {
	_, lookupErr := s.userRepo.GetByAuth0ID(ctx, auth0ID)
	isNew := errors.Is(lookupErr, domain.ErrUserNotFound)
	if lookupErr != nil && !isNew {
		return nil, lookupErr
	}

	user, err := s.userRepo.CreateOrGetByAuth0ID(ctx, &domain.User{
		Auth0ID:  auth0ID,
		Email:    email,
		Name:     name,
		IsActive: false,
	})
	if err != nil {
		log.Error().Err(err).Str("auth0_id", auth0ID).Msg("Failed to create or get user")
		return nil, err
	}

	if isNew {
		log.Info().Str("user_id", user.ID.String()).Msg("Registered new user pending activation")
	} else {
		log.Info().Str("user_id", user.ID.String()).Msg("Existing user authenticated")
	}
	return &AuthResult{User: user, IsNewUser: isNew}, nil
}

// Principal loads the request identity for an Auth0 subject. Inactive
// users are refused.
func (s *AuthService) Principal(ctx context.Context, auth0ID string) (*domain.Principal, error) {
	user, err := s.userRepo.GetByAuth0ID(ctx, auth0ID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}
	return &domain.Principal{
		UserID:     user.ID,
		Role:       user.Role(),
		UnitNumber: user.UnitNumber,
	}, nil
}

// ChannelForAuth0ID maps a user to the websocket channel it may listen on
func (s *AuthService) ChannelForAuth0ID(ctx context.Context, auth0ID string) (int32, error) {
	p, err := s.Principal(ctx, auth0ID)
	if err != nil {
		return 0, err
	}
	if p.IsAdmin() {
		return websocket.AdminChannel, nil
	}
	if p.UnitNumber == nil {
		return 0, domain.ErrForbidden
	}
	return *p.UnitNumber, nil
}

// GetUserByID retrieves a user by their ID
func (s *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetUserByAuth0ID retrieves a user by their Auth0 ID
func (s *AuthService) GetUserByAuth0ID(ctx context.Context, auth0ID string) (*domain.User, error) {
	return s.userRepo.GetByAuth0ID(ctx, auth0ID)
}

// UpdateProfile lets a user set their display name and phone number.
// The phone format is checked by the request validator; blank values clear
// the field.
func (s *AuthService) UpdateProfile(ctx context.Context, id uuid.UUID, name, phone *string) (*domain.User, error) {
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			name = nil
		} else {
			name = &trimmed
		}
	}
	if phone != nil {
		trimmed := strings.ReplaceAll(strings.TrimSpace(*phone), " ", "")
		if trimmed == "" {
			phone = nil
		} else {
			phone = &trimmed
		}
	}
	return s.userRepo.UpdateProfile(ctx, id, name, phone)
}

// ListUsers returns every registered user
func (s *AuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.List(ctx)
}

// UpdateAccess activates, promotes or links a user to a unit
func (s *AuthService) UpdateAccess(ctx context.Context, id uuid.UUID, update domain.UserAccessUpdate) (*domain.User, error) {
	if update.UnitNumber != nil && !update.ClearUnit {
		if _, err := s.unitRepo.GetByNumber(ctx, *update.UnitNumber); err != nil {
			return nil, err
		}
	}
	user, err := s.userRepo.UpdateAccess(ctx, id, update)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("user_id", user.ID.String()).
		Bool("active", user.IsActive).
		Bool("staff", user.IsStaff).
		Msg("User access updated")
	return user, nil
}
