package service

import (
	"context"
	"testing"

	"github.com/dafibh/condo/condo-backend/internal/domain"
	"github.com/dafibh/condo/condo-backend/internal/testutil"
	"github.com/dafibh/condo/condo-backend/internal/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool {
	return &b
}

func TestAuthService_AuthenticateUser_NewUserIsInactive(t *testing.T) {
	ctx := context.Background()
	users := testutil.NewMockUserRepository()
	svc := NewAuthService(users, testutil.NewMockUnitRepository())

	result, err := svc.AuthenticateUser(ctx, "auth0|1", "anna@example.com", strPtr("Anna"))
	require.NoError(t, err)
	assert.True(t, result.IsNewUser)
	assert.False(t, result.User.IsActive)
	assert.Equal(t, domain.RoleResident, result.User.Role())

	again, err := svc.AuthenticateUser(ctx, "auth0|1", "anna@example.com", nil)
	require.NoError(t, err)
	assert.False(t, again.IsNewUser)
	assert.Equal(t, result.User.ID, again.User.ID)

	_, err = svc.Principal(ctx, "auth0|1")
	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestAuthService_Principal_And_Channel(t *testing.T) {
	ctx := context.Background()
	users := testutil.NewMockUserRepository()
	users.AddUser(&domain.User{Auth0ID: "admin", IsActive: true, IsStaff: true})
	users.AddUser(&domain.User{Auth0ID: "resident", IsActive: true, UnitNumber: int32Ptr(15)})
	users.AddUser(&domain.User{Auth0ID: "unlinked", IsActive: true})
	svc := NewAuthService(users, testutil.NewMockUnitRepository())

	p, err := svc.Principal(ctx, "resident")
	require.NoError(t, err)
	assert.False(t, p.IsAdmin())
	assert.True(t, p.CanAccessUnit(15))
	assert.False(t, p.CanAccessUnit(16))

	ch, err := svc.ChannelForAuth0ID(ctx, "resident")
	require.NoError(t, err)
	assert.Equal(t, int32(15), ch)

	ch, err = svc.ChannelForAuth0ID(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, websocket.AdminChannel, ch)

	_, err = svc.ChannelForAuth0ID(ctx, "unlinked")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.ChannelForAuth0ID(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	users := testutil.NewMockUserRepository()
	user := &domain.User{Auth0ID: "auth0|1", IsActive: true}
	users.AddUser(user)
	svc := NewAuthService(users, testutil.NewMockUnitRepository())

	updated, err := svc.UpdateProfile(ctx, user.ID, strPtr("  Anna  "), strPtr("600 700 800"))
	require.NoError(t, err)
	assert.Equal(t, "Anna", *updated.Name)
	assert.Equal(t, "600700800", *updated.Phone)

	cleared, err := svc.UpdateProfile(ctx, user.ID, strPtr("   "), strPtr("  "))
	require.NoError(t, err)
	assert.Nil(t, cleared.Name)
	assert.Nil(t, cleared.Phone)
}

func TestAuthService_UpdateAccess(t *testing.T) {
	ctx := context.Background()
	users := testutil.NewMockUserRepository()
	units := testutil.NewMockUnitRepository()
	units.AddUnit(&domain.Unit{Number: 15})
	user := &domain.User{Auth0ID: "auth0|1"}
	users.AddUser(user)
	svc := NewAuthService(users, units)

	_, err := svc.UpdateAccess(ctx, user.ID, domain.UserAccessUpdate{UnitNumber: int32Ptr(99)})
	assert.ErrorIs(t, err, domain.ErrUnitNotFound)

	updated, err := svc.UpdateAccess(ctx, user.ID, domain.UserAccessUpdate{IsActive: boolPtr(true), UnitNumber: int32Ptr(15)})
	require.NoError(t, err)
	assert.True(t, updated.IsActive)
	require.NotNil(t, updated.UnitNumber)
	assert.Equal(t, int32(15), *updated.UnitNumber)

	p, err := svc.Principal(ctx, "auth0|1")
	require.NoError(t, err)
	assert.True(t, p.CanAccessUnit(15))

	updated, err = svc.UpdateAccess(ctx, user.ID, domain.UserAccessUpdate{ClearUnit: true, IsStaff: boolPtr(true)})
	require.NoError(t, err)
	assert.Nil(t, updated.UnitNumber)
	assert.Equal(t, domain.RoleAdmin, updated.Role())
}
