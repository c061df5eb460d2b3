package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"

	"github.com/room4-2/frontdesk/domain"
	"github.com/room4-2/frontdesk/messages"
	"github.com/room4-2/frontdesk/response"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 64
)

// Hub fans avatar state, captions and structured replies out to every
// connected display.
type Hub struct {
	httpServer *http.Server
	upgrader   websocket.Upgrader
	port       int
	maxClients int

	mu      sync.RWMutex
	clients map[*client]struct{}
	state   domain.AvatarState
}

type client struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// NewHub builds a presenter hub. An empty origin list or "*" accepts any origin.
func NewHub(port int, allowedOrigins []string, maxClients int) *Hub {
	h := &Hub{
		port:       port,
		maxClients: maxClients,
		clients:    make(map[*client]struct{}),
		state:      domain.AvatarIdle,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin: func(r *http.Request) bool {
				if len(allowedOrigins) == 0 {
					return true
				}
				origin := r.Header.Get("Origin")
				for _, allowed := range allowedOrigins {
					if allowed == "*" || allowed == origin {
						return true
					}
				}
				return false
			},
		},
	}

	h.httpServer = &http.Server{
		Addr:        fmt.Sprintf(":%d", port),
		Handler:     h.Handler(),
		ReadTimeout: 10 * time.Second,
	}
	return h
}

// Handler exposes /ws and /health.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.handleWebSocket)
	mux.HandleFunc("/health", h.handleHealth)
	return mux
}

// Start begins listening for connections
func (h *Hub) Start() error {
	log.Printf("🚀 Presenter hub starting on port %d", h.port)
	log.Printf("📡 WebSocket endpoint: ws://localhost:%d/ws", h.port)
	err := h.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown closes every display connection and stops the server.
func (h *Hub) Shutdown(ctx context.Context) error {
	log.Println("🛑 Shutting down presenter hub...")
	h.mu.Lock()
	for c := range h.clients {
		c.close()
		delete(h.clients, c)
	}
	h.mu.Unlock()
	return h.httpServer.Shutdown(ctx)
}

// SetState implements domain.Presenter.
func (h *Hub) SetState(state domain.AvatarState) {
	h.mu.Lock()
	h.state = state
	h.mu.Unlock()
	h.broadcast(messages.NewStateMessage(state))
}

// State is the last state pushed to displays.
func (h *Hub) State() domain.AvatarState {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state
}

// Caption implements domain.Captioner.
func (h *Hub) Caption(text string) {
	h.broadcast(messages.NewCaptionMessage(text))
}

// ShowReply pushes a structured reply to displays.
func (h *Hub) ShowReply(r response.Reply) {
	h.broadcast(messages.NewReplyMessage(r))
}

// ClientCount returns the number of connected displays.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) broadcast(msg *messages.ServerMessage) {
	data, err := sonic.Marshal(msg)
	if err != nil {
		log.Printf("⚠️ Failed to marshal %s message: %v", msg.Type, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		queue(c, data)
	}
}

// queue never blocks; a slow display loses messages rather than stalling
// the conversation.
func queue(c *client, data []byte) {
	select {
	case c.send <- data:
	case <-c.done:
	default:
		log.Printf("⚠️ Display send buffer full, dropping message")
	}
}

func (h *Hub) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}

	h.mu.Lock()
	if h.maxClients > 0 && len(h.clients) >= h.maxClients {
		h.mu.Unlock()
		data, _ := sonic.Marshal(messages.NewErrorMessage(messages.ErrCodeTooManyClients, "display limit reached"))
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		_ = conn.WriteMessage(websocket.TextMessage, data)
		conn.Close()
		return
	}
	h.clients[c] = struct{}{}
	state := h.state
	h.mu.Unlock()

	log.Printf("✅ Display connected from %s", r.RemoteAddr)

	if data, err := sonic.Marshal(messages.NewStateMessage(state)); err == nil {
		queue(c, data)
	}

	go h.writePump(c)
	h.readPump(c)

	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	c.close()
	log.Printf("🔌 Display disconnected from %s", r.RemoteAddr)
}

func (h *Hub) readPump(c *client) {
	c.conn.SetReadLimit(4 * 1024)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}
		h.handleClientMessage(c, data)
	}
}

func (h *Hub) handleClientMessage(c *client, data []byte) {
	var msg messages.ClientMessage
	if err := sonic.Unmarshal(data, &msg); err != nil {
		h.reply(c, messages.NewErrorMessage(messages.ErrCodeInvalidMessage, "invalid JSON"))
		return
	}
	if msg.Type != "control" {
		h.reply(c, messages.NewErrorMessage(messages.ErrCodeInvalidMessage, "unknown message type: "+msg.Type))
		return
	}

	var ctrl messages.ControlPayload
	if err := sonic.Unmarshal(msg.Payload, &ctrl); err != nil {
		h.reply(c, messages.NewErrorMessage(messages.ErrCodeInvalidMessage, "invalid control payload"))
		return
	}
	switch ctrl.Action {
	case "ping":
		h.reply(c, messages.NewStatusMessage("pong", ""))
	default:
		h.reply(c, messages.NewErrorMessage(messages.ErrCodeInvalidMessage, "unknown action: "+ctrl.Action))
	}
}

func (h *Hub) reply(c *client, msg *messages.ServerMessage) {
	data, err := sonic.Marshal(msg)
	if err != nil {
		return
	}
	queue(c, data)
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case data := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Printf("WebSocket write error: %v", err)
				c.close()
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.close()
				return
			}
		}
	}
}

func (h *Hub) handleHealth(w http.ResponseWriter, r *http.Request) {
	body, err := sonic.Marshal(map[string]interface{}{
		"status":  "ok",
		"clients": h.ClientCount(),
		"state":   h.State(),
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
