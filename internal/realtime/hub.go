package realtime

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"stitch-backend/internal/metrics"

	"github.com/gorilla/websocket"
)

// Change event types
const (
	EventInsert = "INSERT"
	EventUpdate = "UPDATE"
	EventDelete = "DELETE"
)

// Change is one mutation notification. Subscribers treat it as a refetch
// trigger: consistency comes from re-reading the collection, not from
// applying deltas, and no ordering is guaranteed.
type Change struct {
	EventType string      `json:"event_type"`
	Table     string      `json:"table"`
	New       interface{} `json:"new,omitempty"`
	Old       interface{} `json:"old,omitempty"`
}

// subscription narrows a client's feed to one table, optionally matching a
// single column value (e.g. orders where buyer_id=7).
type subscription struct {
	Table       string `json:"table"`
	FilterCol   string `json:"filter_col,omitempty"`
	FilterValue string `json:"filter_value,omitempty"`
}

type client struct {
	conn *websocket.Conn
	subs []subscription
	send chan Change
	mu   sync.Mutex
}

// Hub fans mutation notifications out to subscribed websocket clients.
type Hub struct {
	clients   map[*client]bool
	clientsMu sync.Mutex
	broadcast chan Change
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*client]bool),
		broadcast: make(chan Change, 64),
	}
}

// Run dispatches broadcast changes to matching clients. Call in a goroutine.
func (h *Hub) Run() {
	for change := range h.broadcast {
		h.clientsMu.Lock()
		for c := range h.clients {
			if c.matches(change) {
				select {
				case c.send <- change:
				default:
					// Slow consumer, drop it. Clients refetch on reconnect.
					close(c.send)
					delete(h.clients, c)
					metrics.RealtimeClients.Dec()
				}
			}
		}
		h.clientsMu.Unlock()
	}
}

// Publish queues a change notification. Never blocks the calling service;
// when the broadcast queue is full the change is dropped and logged.
func (h *Hub) Publish(change Change) {
	select {
	case h.broadcast <- change:
	default:
		log.Printf("[Realtime] Broadcast queue full, dropping %s on %s", change.EventType, change.Table)
	}
}

// HandleWebSocket upgrades the connection and serves the client's feed. The
// client sends one JSON array of subscriptions as its first message.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Realtime] Upgrade failed: %v", err)
		return
	}

	c := &client{
		conn: conn,
		send: make(chan Change, 16),
	}

	// Table subscriptions can also arrive as query params for simple clients.
	if table := r.URL.Query().Get("table"); table != "" {
		c.subs = append(c.subs, subscription{
			Table:       table,
			FilterCol:   r.URL.Query().Get("filter_col"),
			FilterValue: r.URL.Query().Get("filter_value"),
		})
	}

	h.clientsMu.Lock()
	h.clients[c] = true
	h.clientsMu.Unlock()
	metrics.RealtimeClients.Inc()

	go c.writeLoop()
	c.readLoop(h)
}

func (c *client) matches(change Change) bool {
	if len(c.subs) == 0 {
		return true // no subscriptions means everything
	}
	for _, sub := range c.subs {
		if sub.Table != change.Table {
			continue
		}
		if sub.FilterCol == "" {
			return true
		}
		if rowMatches(change.New, sub.FilterCol, sub.FilterValue) ||
			rowMatches(change.Old, sub.FilterCol, sub.FilterValue) {
			return true
		}
	}
	return false
}

// rowMatches checks a filter column against the JSON form of a row.
func rowMatches(row interface{}, col, value string) bool {
	if row == nil {
		return false
	}
	raw, err := json.Marshal(row)
	if err != nil {
		return false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return false
	}
	v, ok := fields[col]
	if !ok {
		return false
	}
	var asString string
	if err := json.Unmarshal(v, &asString); err == nil {
		return asString == value
	}
	return string(v) == value
}

func (c *client) writeLoop() {
	for change := range c.send {
		c.mu.Lock()
		err := c.conn.WriteJSON(change)
		c.mu.Unlock()
		if err != nil {
			return
		}
	}
}

func (c *client) readLoop(h *Hub) {
	defer func() {
		h.clientsMu.Lock()
		if _, ok := h.clients[c]; ok {
			close(c.send)
			delete(h.clients, c)
			metrics.RealtimeClients.Dec()
		}
		h.clientsMu.Unlock()
		c.conn.Close()
	}()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var subs []subscription
		if err := json.Unmarshal(data, &subs); err != nil {
			continue // ignore malformed subscription updates
		}
		h.clientsMu.Lock()
		c.subs = subs
		h.clientsMu.Unlock()
	}
}
