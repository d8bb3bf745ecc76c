package status

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/padview/padview/api/types/v1alpha1"
	"github.com/padview/padview/internal/padviewd/cycle"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The API is bound to the device's own network; all origins may
		// observe it.
		return true
	},
}

// connection is a middleman between one websocket subscriber and the hub.
// Subscribers only receive; anything they send is discarded.
type connection struct {
	ws     *websocket.Conn
	send   chan []byte
	hub    *Hub
	logger zerolog.Logger
}

func (c *connection) cleanup() {
	c.hub.unregister <- c
	if err := c.ws.Close(); err != nil {
		c.logger.Debug().Err(err).Msg("error closing websocket connection")
	}
}

// readPump drains the connection to process control frames and detect
// disconnects.
func (c *connection) readPump() {
	defer c.cleanup()

	c.ws.SetReadLimit(maxMessageSize)
	if err := c.ws.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("failed to set read deadline")
		return
	}
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug().Err(err).Msg("websocket read error")
			}
			return
		}
	}
}

func (c *connection) write(mt int, payload []byte) error {
	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.ws.WriteMessage(mt, payload)
}

func (c *connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.ws.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("error closing websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				if err := c.write(websocket.CloseMessage, []byte{}); err != nil {
					c.logger.Debug().Err(err).Msg("failed to write close message")
				}
				return
			}
			if err := c.write(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, []byte{}); err != nil {
				return
			}
		}
	}
}

// Hub maintains the set of active subscribers and broadcasts stream messages.
type Hub struct {
	connections map[*connection]bool
	register    chan *connection
	unregister  chan *connection
	broadcast   chan []byte
	logger      zerolog.Logger
}

func newHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:   make(chan []byte, 16),
		register:    make(chan *connection),
		unregister:  make(chan *connection),
		connections: make(map[*connection]bool),
		logger:      logger.With().Str("component", "status-stream").Logger(),
	}
}

func (h *Hub) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			h.connections[c] = true
			h.logger.Info().Int("connections", len(h.connections)).Msg("stream subscriber connected")
		case c := <-h.unregister:
			if _, ok := h.connections[c]; ok {
				delete(h.connections, c)
				close(c.send)
				h.logger.Info().Int("connections", len(h.connections)).Msg("stream subscriber disconnected")
			}
		case m := <-h.broadcast:
			for c := range h.connections {
				select {
				case c.send <- m:
				default:
					// Slow subscriber; drop it rather than block the stream.
					close(c.send)
					delete(h.connections, c)
				}
			}
		}
	}
}

// send marshals and broadcasts a stream message. Drops the message when the
// hub is saturated; the stream is advisory, never load-bearing.
func (h *Hub) send(msg *v1alpha1.StreamMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to marshal stream message")
		return
	}
	select {
	case h.broadcast <- data:
	default:
	}
}

// ServeWs upgrades a status stream subscription.
func (h *Handler) ServeWs(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	c := &connection{
		ws:     ws,
		send:   make(chan []byte, 256),
		hub:    h.hub,
		logger: h.logger,
	}
	c.hub.register <- c

	go c.writePump()
	c.readPump()
}

// PublishState broadcasts a cycle state transition to stream subscribers.
// Implements the cycle's Publisher hook.
func (h *Handler) PublishState(cycle.Snapshot) {
	status := h.currentStatus()
	h.hub.send(&v1alpha1.StreamMessage{
		Type:      v1alpha1.StreamMessageState,
		Status:    &status,
		Timestamp: time.Now(),
	})
}
