package progress

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// UI is served from a different origin in every deployment.
		return true
	},
}

// Update is one job status transition pushed to subscribers.
type Update struct {
	Type      string `json:"type"`
	JobID     string `json:"job_id"`
	Status    string `json:"status"`
	ModelUsed string `json:"model_used,omitempty"`
	Error     string `json:"error,omitempty"`
}

type client struct {
	conn  *websocket.Conn
	jobID string
	send  chan []byte
}

// Hub fans job status updates out to websocket subscribers, keyed by
// job id.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[*client]bool
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[string]map[*client]bool),
	}
}

// Publish broadcasts an update to every subscriber of the job. Clients
// whose send buffer is full are dropped rather than blocking the worker.
func (h *Hub) Publish(update Update) {
	update.Type = "job_update"

	messageBytes, err := json.Marshal(update)
	if err != nil {
		log.Printf("❌ [Progress] Error marshaling update: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.subs[update.JobID] {
		select {
		case c.send <- messageBytes:
		default:
			close(c.send)
			delete(h.subs[update.JobID], c)
		}
	}
}

func (h *Hub) addClient(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs[c.jobID] == nil {
		h.subs[c.jobID] = make(map[*client]bool)
	}
	h.subs[c.jobID][c] = true

	log.Printf("👤 [Progress] Subscriber joined job %s (subscribers: %d)", c.jobID, len(h.subs[c.jobID]))
}

func (h *Hub) removeClient(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if set, ok := h.subs[c.jobID]; ok {
		if set[c] {
			delete(set, c)
			close(c.send)
		}
		if len(set) == 0 {
			delete(h.subs, c.jobID)
		}
	}
}

// ServeWS upgrades the connection and subscribes it to one job's
// updates. GET /ws?job=<job_id>
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	jobID := r.URL.Query().Get("job")
	if jobID == "" {
		http.Error(w, "Missing job parameter", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("❌ [Progress] WebSocket upgrade failed: %v", err)
		return
	}

	c := &client{
		conn:  conn,
		jobID: jobID,
		send:  make(chan []byte, 16),
	}

	h.addClient(c)

	go c.writePump()
	go c.readPump(h)
}

// readPump discards inbound frames; its job is noticing disconnects.
func (c *client) readPump(h *Hub) {
	defer func() {
		h.removeClient(c)
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("❌ [Progress] WebSocket error: %v", err)
			}
			break
		}
	}
}

func (c *client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("❌ [Progress] WebSocket write error: %v", err)
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
