package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeWs_DeliversUnicastToConnection(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	userID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeWs(hub, w, r, userID)
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Give the registration a moment to land before sending
	require.Eventually(t, func() bool {
		hub.SendToUser(userID, []byte(`{"title":"New Property Found! 🏠"}`))
		_ = conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
		msgType, body, err := conn.ReadMessage()
		if err != nil {
			return false
		}
		assert.Equal(t, websocket.TextMessage, msgType)
		return string(body) == `{"title":"New Property Found! 🏠"}`
	}, 3*time.Second, 50*time.Millisecond)
}

func TestServeWs_InboundMessagesAreDiscarded(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	userID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeWs(hub, w, r, userID)
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// The read pump ignores client chatter; the connection stays usable
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("ignore me")))

	require.Eventually(t, func() bool {
		hub.SendToUser(userID, []byte("still alive"))
		_ = conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
		_, body, err := conn.ReadMessage()
		return err == nil && string(body) == "still alive"
	}, 3*time.Second, 50*time.Millisecond)
}

func TestServeWs_RejectsPlainHTTPRequest(t *testing.T) {
	hub := NewHub()
	req := httptest.NewRequest(http.MethodGet, "/notifications/ws", nil)
	w := httptest.NewRecorder()

	ServeWs(hub, w, req, uuid.New())

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
