package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dafibh/condo/condo-backend/internal/websocket"
	ws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChannelValidator struct {
	channel int32
	err     error
}

func (s *stubChannelValidator) ValidateToken(ctx context.Context, token string) (int32, error) {
	return s.channel, s.err
}

var testAllowedOrigins = []string{"http://localhost:3000", "https://condo.app"}

func serveWS(t *testing.T, v ChannelValidator, target string) error {
	t.Helper()
	h := NewWebSocketHandler(websocket.NewHub(), v, testAllowedOrigins)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return h.HandleWS(echo.New().NewContext(req, rec))
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected *echo.HTTPError, got %T", err)
	return httpErr.Code
}

func TestWebSocketHandler_HandleWS_MissingToken(t *testing.T) {
	err := serveWS(t, &stubChannelValidator{channel: 7}, "/ws")
	assert.Equal(t, http.StatusUnauthorized, httpStatus(t, err))
}

func TestWebSocketHandler_HandleWS_InvalidToken(t *testing.T) {
	err := serveWS(t, &stubChannelValidator{err: websocket.ErrInvalidToken}, "/ws?token=bad")
	assert.Equal(t, http.StatusUnauthorized, httpStatus(t, err))
}

func TestWebSocketHandler_HandleWS_NoChannel(t *testing.T) {
	err := serveWS(t, &stubChannelValidator{err: websocket.ErrNoChannel}, "/ws?token=resident-without-unit")
	assert.Equal(t, http.StatusForbidden, httpStatus(t, err))
}

func TestWebSocketHandler_HandleWS_ValidToken_NoUpgrade(t *testing.T) {
	err := serveWS(t, &stubChannelValidator{channel: websocket.AdminChannel}, "/ws?token=valid")

	// not an upgrade request, so auth passes and the upgrader fails
	require.Error(t, err)
	_, isHTTP := err.(*echo.HTTPError)
	assert.False(t, isHTTP)
}

func TestWebSocketHandler_CheckOrigin(t *testing.T) {
	h := NewWebSocketHandler(websocket.NewHub(), &stubChannelValidator{}, testAllowedOrigins)

	tests := []struct {
		name     string
		origin   string
		expected bool
	}{
		{"allowed origin", "http://localhost:3000", true},
		{"allowed origin https", "https://condo.app", true},
		{"disallowed origin", "https://evil.com", false},
		{"no origin header", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ws", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			assert.Equal(t, tt.expected, h.checkOrigin(req))
		})
	}
}

func TestSubscriptionToken(t *testing.T) {
	tests := []struct {
		name   string
		header http.Header
		target string
		want   string
	}{
		{"authorization header", http.Header{"Authorization": {"Bearer abc"}}, "/ws?token=query", "abc"},
		{"subprotocol", http.Header{"Sec-Websocket-Protocol": {BearerProtocol + ", abc"}}, "/ws?token=query", "abc"},
		{"subprotocol without token", http.Header{"Sec-Websocket-Protocol": {BearerProtocol}}, "/ws", ""},
		{"query parameter", nil, "/ws?token=query", "query"},
		{"nothing", nil, "/ws", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			for k, v := range tt.header {
				req.Header[k] = v
			}
			assert.Equal(t, tt.want, subscriptionToken(req))
		})
	}
}

func TestWebSocketHandler_DeliversUnitEvents(t *testing.T) {
	hub := websocket.NewHub()
	t.Cleanup(hub.Close)
	v := &stubChannelValidator{channel: 15}

	e := echo.New()
	e.GET("/ws", NewWebSocketHandler(hub, v, testAllowedOrigins).HandleWS)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	dialer := ws.Dialer{Subprotocols: []string{BearerProtocol, "resident-token"}}
	conn, resp, err := dialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	assert.Equal(t, BearerProtocol, resp.Header.Get("Sec-Websocket-Protocol"))

	require.Eventually(t, func() bool { return hub.ClientCount(15) == 1 }, time.Second, 10*time.Millisecond)

	websocket.PublishToUnit(hub, 16, websocket.LedgerEntryCreated(map[string]string{"balance": "10.00"}))
	websocket.PublishToUnit(hub, 15, websocket.LedgerEntryCreated(map[string]string{"balance": "60.00"}))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var evt struct {
		Type    string            `json:"type"`
		Payload map[string]string `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(raw, &evt))
	assert.Equal(t, "ledger_entry.created", evt.Type)
	assert.Equal(t, "60.00", evt.Payload["balance"])
}
