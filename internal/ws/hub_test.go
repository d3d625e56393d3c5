package ws

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lagosride/internal/modules/pricing"
)

func dial(t *testing.T, hub *Hub, snapshot []pricing.ZoneSurge) *websocket.Conn {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/live", hub.Handler(func() []pricing.ZoneSurge { return snapshot }))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/live"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readZones(t *testing.T, conn *websocket.Conn) ZonesMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg ZonesMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestHub_SendsSnapshotThenUpdates(t *testing.T) {
	hub := NewHub(nil)
	initial := []pricing.ZoneSurge{{Name: "Yaba", Demand: 30, Supply: 25, Multiplier: 1}}
	conn := dial(t, hub, initial)

	got := readZones(t, conn)
	assert.Equal(t, "zones", got.Type)
	assert.Equal(t, initial, got.Zones)
	assert.Equal(t, 1, hub.Connected())

	next := []pricing.ZoneSurge{{Name: "Yaba", Demand: 32, Supply: 24, Multiplier: 1.25}}
	require.NoError(t, hub.ZonesUpdated(context.Background(), next))
	assert.Equal(t, next, readZones(t, conn).Zones)
}

func TestHub_UnregistersOnClose(t *testing.T) {
	hub := NewHub(nil)
	conn := dial(t, hub, nil)
	readZones(t, conn)
	require.NoError(t, conn.Close())

	assert.Eventually(t, func() bool { return hub.Connected() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_BroadcastNeverBlocks(t *testing.T) {
	hub := NewHub(nil)
	stuck := &client{send: make(chan []byte, 1)}
	hub.register(stuck)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			_ = hub.ZonesUpdated(context.Background(), nil)
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a full client buffer")
	}
	assert.Len(t, stuck.send, 1)
}
