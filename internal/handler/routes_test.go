package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoutes_AccessControl(t *testing.T) {
	env := newTestEnv(t)
	env.seedUnit15()

	tests := []struct {
		name   string
		method string
		target string
		token  string
		want   int
	}{
		{"no token", http.MethodGet, "/api/v1/units", "", http.StatusUnauthorized},
		{"inactive user", http.MethodGet, "/api/v1/ledger/balance", pendingToken, http.StatusForbidden},
		{"unknown user", http.MethodGet, "/api/v1/ledger/balance", "stranger", http.StatusForbidden},
		{"resident on admin route", http.MethodGet, "/api/v1/units", residentToken, http.StatusForbidden},
		{"resident settles", http.MethodPost, "/api/v1/settlements", residentToken, http.StatusForbidden},
		{"resident appends", http.MethodPost, "/api/v1/ledger/entries", residentToken, http.StatusForbidden},
		{"admin lists units", http.MethodGet, "/api/v1/units", adminToken, http.StatusOK},
		{"resident reads own balance", http.MethodGet, "/api/v1/ledger/balance", residentToken, http.StatusOK},
		{"unlinked resident", http.MethodGet, "/api/v1/ledger/balance", unlinkedToken, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, tt.method, tt.target, tt.token, nil)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestRoutes_CallbackWorksBeforeActivation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/auth/callback", "brand-new", nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[AuthCallbackResponse](t, rec)
	assert.True(t, resp.IsNewUser)
	assert.False(t, resp.User.IsActive)
	assert.Equal(t, "resident", resp.User.Role)

	// still refused everywhere else until an admin activates the account
	rec = env.do(t, http.MethodGet, "/api/v1/fees", "brand-new", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
