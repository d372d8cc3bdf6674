package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/dafibh/condo/condo-backend/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// CustomClaims contains the custom claims from Auth0 JWT
type CustomClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Validate implements validator.CustomClaims
func (c CustomClaims) Validate(ctx context.Context) error {
	return nil
}

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// ClaimsKey is the context key for JWT claims
	ClaimsKey contextKey = "claims"
	// Auth0IDKey is the context key for the Auth0 user ID (subject)
	Auth0IDKey contextKey = "auth0_id"
	// PrincipalKey is the context key for the resolved caller identity
	PrincipalKey contextKey = "principal"
)

// TokenValidator validates a raw bearer token. *validator.Validator satisfies it.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (interface{}, error)
}

// PrincipalProvider resolves the caller identity for an Auth0 subject
type PrincipalProvider interface {
	Principal(ctx context.Context, auth0ID string) (*domain.Principal, error)
}

// AuthMiddleware provides JWT validation and principal loading
type AuthMiddleware struct {
	validator  TokenValidator
	principals PrincipalProvider
}

// NewAuth0Validator builds an RS256 validator against the tenant's JWKS.
// The HTTP middleware and websocket subscriptions share one instance so the
// key cache is fetched once.
func NewAuth0Validator(domain, audience string) (*validator.Validator, error) {
	issuerURL, err := url.Parse("https://" + domain + "/")
	if err != nil {
		return nil, err
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)

	return validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{audience},
		validator.WithCustomClaims(func() validator.CustomClaims {
			return &CustomClaims{}
		}),
		validator.WithAllowedClockSkew(time.Minute),
	)
}

// NewAuthMiddlewareWithValidator builds the middleware around an existing validator
func NewAuthMiddlewareWithValidator(v TokenValidator, principals PrincipalProvider) *AuthMiddleware {
	return &AuthMiddleware{validator: v, principals: principals}
}

// Authenticate returns an Echo middleware that validates JWT tokens.
// It does not require a registered user, so the login callback can use it.
func (m *AuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return unauthorizedError(c, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return unauthorizedError(c, "invalid authorization header format")
			}

			claims, err := m.validator.ValidateToken(c.Request().Context(), parts[1])
			if err != nil {
				log.Debug().Err(err).Msg("Token validation failed")
				return unauthorizedError(c, "invalid token")
			}

			validatedClaims, ok := claims.(*validator.ValidatedClaims)
			if !ok {
				return unauthorizedError(c, "invalid claims")
			}

			ctx := context.WithValue(c.Request().Context(), ClaimsKey, validatedClaims)
			ctx = context.WithValue(ctx, Auth0IDKey, validatedClaims.RegisteredClaims.Subject)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// LoadPrincipal resolves the authenticated subject to an active user.
// Must run after Authenticate.
func (m *AuthMiddleware) LoadPrincipal() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth0ID := GetAuth0ID(c)
			if auth0ID == "" {
				return unauthorizedError(c, "not authenticated")
			}

			principal, err := m.principals.Principal(c.Request().Context(), auth0ID)
			switch {
			case errors.Is(err, domain.ErrUserNotFound):
				return forbiddenError(c, "account is not registered")
			case errors.Is(err, domain.ErrUserInactive):
				return forbiddenError(c, "account is awaiting activation")
			case err != nil:
				log.Error().Err(err).Str("auth0_id", auth0ID).Msg("Principal lookup failed")
				return c.JSON(http.StatusInternalServerError, problemDetails{
					Type:   errorTypeInternal,
					Title:  "Internal Server Error",
					Status: http.StatusInternalServerError,
				})
			}

			ctx := context.WithValue(c.Request().Context(), PrincipalKey, principal)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// RequireAdmin lets only staff principals through
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !GetPrincipal(c).IsAdmin() {
				return forbiddenError(c, "administrator access required")
			}
			return next(c)
		}
	}
}

// GetAuth0ID extracts the Auth0 user ID from the context
func GetAuth0ID(c echo.Context) string {
	if id, ok := c.Request().Context().Value(Auth0IDKey).(string); ok {
		return id
	}
	return ""
}

// GetClaims extracts the validated claims from the context
func GetClaims(c echo.Context) *validator.ValidatedClaims {
	if claims, ok := c.Request().Context().Value(ClaimsKey).(*validator.ValidatedClaims); ok {
		return claims
	}
	return nil
}

// GetCustomClaims extracts the custom claims from the context
func GetCustomClaims(c echo.Context) *CustomClaims {
	claims := GetClaims(c)
	if claims == nil {
		return nil
	}
	if custom, ok := claims.CustomClaims.(*CustomClaims); ok {
		return custom
	}
	return nil
}

// GetPrincipal returns the caller identity, or nil before LoadPrincipal ran
func GetPrincipal(c echo.Context) *domain.Principal {
	if p, ok := c.Request().Context().Value(PrincipalKey).(*domain.Principal); ok {
		return p
	}
	return nil
}

// WithPrincipal stores p on the request context
func WithPrincipal(c echo.Context, p *domain.Principal) {
	ctx := context.WithValue(c.Request().Context(), PrincipalKey, p)
	c.SetRequest(c.Request().WithContext(ctx))
}
