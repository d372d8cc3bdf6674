package websocket

import (
	"context"
	"errors"
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/dafibh/condo/condo-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTokens struct {
	subject string
	claims  interface{}
	err     error
}

func (s *stubTokens) ValidateToken(ctx context.Context, token string) (interface{}, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.claims != nil {
		return s.claims, nil
	}
	return &validator.ValidatedClaims{RegisteredClaims: validator.RegisteredClaims{Subject: s.subject}}, nil
}

type stubChannels map[string]int32

func (s stubChannels) ChannelForAuth0ID(ctx context.Context, auth0ID string) (int32, error) {
	channel, ok := s[auth0ID]
	if !ok {
		return 0, domain.ErrForbidden
	}
	return channel, nil
}

func TestSubscriptionAuthenticator(t *testing.T) {
	channels := stubChannels{"auth0|resident": 15, "auth0|staff": AdminChannel}

	tests := []struct {
		name        string
		tokens      *stubTokens
		wantChannel int32
		wantErr     error
	}{
		{name: "resident joins own unit", tokens: &stubTokens{subject: "auth0|resident"}, wantChannel: 15},
		{name: "staff joins admin channel", tokens: &stubTokens{subject: "auth0|staff"}, wantChannel: AdminChannel},
		{name: "unlinked account", tokens: &stubTokens{subject: "auth0|nobody"}, wantErr: ErrNoChannel},
		{name: "expired token", tokens: &stubTokens{err: errors.New("token is expired")}, wantErr: ErrInvalidToken},
		{name: "unexpected claims", tokens: &stubTokens{claims: "raw"}, wantErr: ErrInvalidToken},
		{name: "empty subject", tokens: &stubTokens{subject: ""}, wantErr: ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := NewSubscriptionAuthenticator(tt.tokens, channels)
			channel, err := auth.ValidateToken(context.Background(), "token")
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantChannel, channel)
		})
	}
}
