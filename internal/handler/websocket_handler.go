package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dafibh/condo/condo-backend/internal/websocket"
	ws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ChannelValidator validates a token and returns the event channel its
// user listens on
type ChannelValidator interface {
	ValidateToken(ctx context.Context, token string) (channel int32, err error)
}

// BearerProtocol is offered as a subprotocol, followed by the access token,
// by browser clients that cannot set an Authorization header on the upgrade
const BearerProtocol = "condo.bearer"

// WebSocketHandler serves the live event stream
type WebSocketHandler struct {
	hub            *websocket.Hub
	validator      ChannelValidator
	allowedOrigins map[string]bool
	upgrader       ws.Upgrader
}

// NewWebSocketHandler creates a new WebSocketHandler
func NewWebSocketHandler(hub *websocket.Hub, validator ChannelValidator, allowedOrigins []string) *WebSocketHandler {
	originMap := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		originMap[origin] = true
	}

	h := &WebSocketHandler{
		hub:            hub,
		validator:      validator,
		allowedOrigins: originMap,
	}

	h.upgrader = ws.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Subprotocols:    []string{BearerProtocol},
		CheckOrigin:     h.checkOrigin,
	}

	return h
}

func (h *WebSocketHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		// non-browser clients
		return true
	}
	if h.allowedOrigins[origin] {
		return true
	}

	log.Warn().
		Str("origin", origin).
		Msg("WebSocket connection rejected: origin not allowed")
	return false
}

// subscriptionToken reads the access token from the Authorization header,
// the subprotocol list or the token query parameter, in that order
func subscriptionToken(r *http.Request) string {
	if auth := r.Header.Get(echo.HeaderAuthorization); len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	protocols := ws.Subprotocols(r)
	for i, p := range protocols {
		if p == BearerProtocol && i+1 < len(protocols) {
			return protocols[i+1]
		}
	}
	return r.URL.Query().Get("token")
}

// HandleWS handles WebSocket connection requests at GET /ws. Admins join the
// admin channel, residents the channel of their unit. The connection stays
// open until the peer leaves or the hub shuts down.
func (h *WebSocketHandler) HandleWS(c echo.Context) error {
	token := subscriptionToken(c.Request())
	if token == "" {
		log.Debug().Msg("WebSocket connection rejected: missing token")
		return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}

	channel, err := h.validator.ValidateToken(c.Request().Context(), token)
	if errors.Is(err, websocket.ErrNoChannel) {
		log.Debug().Err(err).Msg("WebSocket connection rejected: no channel")
		return echo.NewHTTPError(http.StatusForbidden, "no channel for user")
	}
	if err != nil {
		log.Debug().Err(err).Msg("WebSocket connection rejected: invalid token")
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Error().Err(err).Msg("WebSocket upgrade failed")
		return err
	}

	client := websocket.NewClient(conn, channel, h.hub)
	log.Info().
		Int32("channel", channel).
		Str("client_id", client.ID()).
		Msg("WebSocket client connected")

	// Serve blocks until the subscriber disconnects
	client.Serve()

	log.Info().
		Int32("channel", channel).
		Str("client_id", client.ID()).
		Msg("WebSocket client disconnected")
	return nil
}
