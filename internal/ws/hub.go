// README: WebSocket hub pushing live zone surge tables to admin dashboards.
package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"lagosride/internal/modules/pricing"
)

const (
	sendBuffer   = 16
	pingInterval = 30 * time.Second
	writeWait    = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ZonesMessage is the frame sent on connect and after every tick.
type ZonesMessage struct {
	Type  string              `json:"type"`
	Zones []pricing.ZoneSurge `json:"zones"`
}

type client struct {
	send chan []byte
}

type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	logger  *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{clients: make(map[*client]struct{}), logger: logger.Named("ws")}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) Connected() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ZonesUpdated broadcasts to every dashboard. Slow clients miss frames rather than
// stalling the ticker.
func (h *Hub) ZonesUpdated(_ context.Context, zones []pricing.ZoneSurge) error {
	msg, err := encodeZones(zones)
	if err != nil {
		return err
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.logger.Debug("dropping frame for slow client")
		}
	}
	return nil
}

// Handler upgrades the request and streams zone tables, starting with snapshot().
func (h *Hub) Handler(snapshot func() []pricing.ZoneSurge) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			h.logger.Warn("websocket upgrade failed", zap.Error(err))
			return
		}
		defer conn.Close()

		cl := &client{send: make(chan []byte, sendBuffer)}
		h.register(cl)
		defer h.unregister(cl)

		initial, err := encodeZones(snapshot())
		if err != nil {
			h.logger.Error("encode zone snapshot", zap.Error(err))
			return
		}
		cl.send <- initial

		go writePump(cl, conn)
		readPump(conn)
	}
}

func encodeZones(zones []pricing.ZoneSurge) ([]byte, error) {
	msg, err := json.Marshal(ZonesMessage{Type: "zones", Zones: zones})
	if err != nil {
		return nil, fmt.Errorf("encode zones: %w", err)
	}
	return msg, nil
}

func writePump(c *client, conn *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-c.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards client frames until the connection closes.
func readPump(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
