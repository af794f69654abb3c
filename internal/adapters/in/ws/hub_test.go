package ws_test

import (
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fulfillment/internal/adapters/in/ws"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/notification"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, server *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return decoded
}

func TestHub_BroadcastsEvents(t *testing.T) {
	// Given
	hub := ws.NewHub(slog.New(slog.DiscardHandler))
	server := httptest.NewServer(hub)
	defer server.Close()
	defer hub.Close()

	all := dial(t, server, "")
	onlyOther := dial(t, server, "?orderId=ORDER2")
	onlyFirst := dial(t, server, "?orderId=ORDER1")
	require.Eventually(t, func() bool { return hub.Clients() == 3 }, time.Second, 10*time.Millisecond)

	// When
	err := hub.Notify(t.Context(), notification.Event{
		ID:      kernel.NewUUID(),
		Type:    notification.TypeOrderDispatched,
		OrderID: "ORDER1",
		Message: "shipped",
	})
	require.NoError(t, err)

	// Then
	assert.Equal(t, "ORDER1", readEvent(t, all)["orderId"])
	assert.Equal(t, "shipped", readEvent(t, onlyFirst)["message"])

	require.NoError(t, onlyOther.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, _, err = onlyOther.ReadMessage()
	assert.Error(t, err, "filtered client must not receive other orders' events")
}

func TestHub_ForgetsDisconnectedClients(t *testing.T) {
	hub := ws.NewHub(slog.New(slog.DiscardHandler))
	server := httptest.NewServer(hub)
	defer server.Close()

	conn := dial(t, server, "")
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())

	assert.Eventually(t, func() bool { return hub.Clients() == 0 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "websocket", hub.Name())
}

func TestHub_CloseDisconnectsClients(t *testing.T) {
	hub := ws.NewHub(slog.New(slog.DiscardHandler))
	server := httptest.NewServer(hub)
	defer server.Close()

	conn := dial(t, server, "")
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	hub.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
	assert.Equal(t, 0, hub.Clients())
}
