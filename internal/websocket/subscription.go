package websocket

import (
	"context"
	"errors"
	"fmt"

	"github.com/auth0/go-jwt-middleware/v2/validator"
)

var (
	// ErrInvalidToken is returned when the subscription token does not verify
	ErrInvalidToken = errors.New("invalid token")

	// ErrNoChannel is returned when the token's user may not subscribe
	ErrNoChannel = errors.New("no channel for user")
)

// TokenValidator checks a raw bearer token
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (interface{}, error)
}

// ChannelLookup resolves the channel an authenticated user listens on
type ChannelLookup interface {
	ChannelForAuth0ID(ctx context.Context, auth0ID string) (channel int32, err error)
}

// SubscriptionAuthenticator turns the token passed on the websocket URL into
// the channel the caller may listen on. Residents get their unit, staff the
// admin channel; inactive or unlinked accounts get ErrNoChannel.
type SubscriptionAuthenticator struct {
	tokens TokenValidator
	lookup ChannelLookup
}

// NewSubscriptionAuthenticator creates a SubscriptionAuthenticator
func NewSubscriptionAuthenticator(tokens TokenValidator, lookup ChannelLookup) *SubscriptionAuthenticator {
	return &SubscriptionAuthenticator{tokens: tokens, lookup: lookup}
}

// ValidateToken verifies token and returns the caller's channel
func (a *SubscriptionAuthenticator) ValidateToken(ctx context.Context, token string) (int32, error) {
	claims, err := a.tokens.ValidateToken(ctx, token)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	validated, ok := claims.(*validator.ValidatedClaims)
	if !ok || validated.RegisteredClaims.Subject == "" {
		return 0, ErrInvalidToken
	}

	channel, err := a.lookup.ChannelForAuth0ID(ctx, validated.RegisteredClaims.Subject)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNoChannel, err)
	}
	return channel, nil
}
