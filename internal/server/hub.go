package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const pingInterval = 30 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Event is one render progress update pushed to websocket subscribers
type Event struct {
	Type          string `json:"type"` // "progress" or "done"
	Scene         string `json:"scene"`
	CompletedRows int    `json:"completedRows,omitempty"`
	TotalRows     int    `json:"totalRows,omitempty"`
	Elapsed       string `json:"elapsed,omitempty"`
	URL           string `json:"url,omitempty"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans render progress events out to websocket subscribers. A
// subscriber whose send buffer fills up is dropped rather than allowed to
// stall a render.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]bool
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{clients: make(map[*client]bool)}
}

// Broadcast sends an event to every connected subscriber
func (h *Hub) Broadcast(event Event) {
	msg, err := json.Marshal(event)
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			close(c.send)
			delete(h.clients, c)
		}
	}
}

// ServeWS upgrades the request to a websocket and registers the subscriber
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade:", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, 256)}
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()

	go h.readLoop(c)
	go h.writeLoop(c)
}

// readLoop drains inbound frames so pongs and closes are processed;
// subscribers never send application messages
func (h *Hub) readLoop(c *client) {
	defer func() {
		h.mu.Lock()
		delete(h.clients, c)
		h.mu.Unlock()
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writeLoop delivers queued events and keeps the connection alive with
// periodic pings
func (h *Hub) writeLoop(c *client) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			_ = c.conn.WriteMessage(websocket.TextMessage, msg)
		case <-ticker.C:
			_ = c.conn.WriteMessage(websocket.PingMessage, []byte{})
		}
	}
}
