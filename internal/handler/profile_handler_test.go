package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userByEmail(t *testing.T, users []UserResponse, email string) UserResponse {
	t.Helper()
	for _, u := range users {
		if u.Email == email {
			return u
		}
	}
	t.Fatalf("user %s not listed", email)
	return UserResponse{}
}

func TestProfileHandler_ActivatePendingUser(t *testing.T) {
	env := newTestEnv(t)
	env.seedUnit15()

	rec := env.do(t, http.MethodGet, "/api/v1/profile", pendingToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/users", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	pending := userByEmail(t, decode[[]UserResponse](t, rec), pendingToken+"@example.com")
	assert.False(t, pending.IsActive)

	active := true
	rec = env.do(t, http.MethodPatch, "/api/v1/users/"+pending.ID, adminToken, UpdateAccessRequest{IsActive: &active})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[UserResponse](t, rec)
	assert.True(t, updated.IsActive)
	assert.Equal(t, "resident", updated.Role)

	rec = env.do(t, http.MethodGet, "/api/v1/profile", pendingToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NotNil(t, decode[UserResponse](t, rec).UnitNumber)
}

func TestProfileHandler_UpdateAccessErrors(t *testing.T) {
	env := newTestEnv(t)
	env.seedUnit15()

	rec := env.do(t, http.MethodGet, "/api/v1/users", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	unlinked := userByEmail(t, decode[[]UserResponse](t, rec), unlinkedToken+"@example.com")

	missing := int32(99)
	rec = env.do(t, http.MethodPatch, "/api/v1/users/"+unlinked.ID, adminToken, UpdateAccessRequest{UnitNumber: &missing})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPatch, "/api/v1/users/not-a-uuid", adminToken, UpdateAccessRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPatch, "/api/v1/users/"+unlinked.ID, residentToken, UpdateAccessRequest{})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestProfileHandler_UpdateProfile(t *testing.T) {
	env := newTestEnv(t)

	name := "  Anna  "
	phone := "600 100 200"
	rec := env.do(t, http.MethodPut, "/api/v1/profile", residentToken, UpdateProfileRequest{Name: &name, Phone: &phone})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	user := decode[UserResponse](t, rec)
	require.NotNil(t, user.Name)
	require.NotNil(t, user.Phone)
	assert.Equal(t, "Anna", *user.Name)
	assert.Equal(t, "600100200", *user.Phone)

	for _, bad := range []string{"12", "12345678", "1234567890", "12345678a", "600-100-200", "-12345678", "1234.5678"} {
		phone := bad
		rec = env.do(t, http.MethodPut, "/api/v1/profile", residentToken, UpdateProfileRequest{Phone: &phone})
		require.Equal(t, http.StatusBadRequest, rec.Code, bad)
		assert.Equal(t, "phone", decode[ProblemDetails](t, rec).Errors[0].Field, bad)
	}
}
