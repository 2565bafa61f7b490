package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/wricardo/snake-game/game/driver"
	"github.com/wricardo/snake-game/game/engine"
	"github.com/wricardo/snake-game/game/service"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// Time allowed for the game service to apply an inbound command.
	commandTimeout = 5 * time.Second

	// Frames queued for the hub before new ones are dropped.
	broadcastBuffer = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message is sent to clients
type Message struct {
	SessionID string            `json:"session_id"`
	Event     string            `json:"event"`
	State     *engine.GameState `json:"state,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// Inbound is a message from a client: either a key name or a command
type Inbound struct {
	Key       string `json:"key,omitempty"`
	Command   string `json:"command,omitempty"`
	Direction string `json:"direction,omitempty"`
}

// InputHandler applies client input to a session
type InputHandler interface {
	Start(ctx context.Context, sessionID string) (*engine.GameState, error)
	TogglePause(ctx context.Context, sessionID string) (*engine.GameState, error)
	Reset(ctx context.Context, sessionID string) (*engine.GameState, error)
	Turn(ctx context.Context, sessionID, direction string) (*engine.GameState, error)
	PressKey(ctx context.Context, sessionID, key string) (*service.KeyResult, error)
}

// Client represents a WebSocket client
type Client struct {
	id        string
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	sessionID string
}

// unicast is a message for one client
type unicast struct {
	client *Client
	data   []byte
}

// Hub maintains the set of active clients and broadcasts messages
type Hub struct {
	// Registered clients by session ID
	sessions map[string]map[*Client]bool

	// Messages for every client of a session
	broadcast chan *Message

	// Messages for a single client
	direct chan unicast

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	handlerMu sync.RWMutex
	handler   InputHandler
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		sessions:   make(map[string]map[*Client]bool),
		broadcast:  make(chan *Message, broadcastBuffer),
		direct:     make(chan unicast, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// SetInputHandler sets where client input is sent
func (h *Hub) SetInputHandler(handler InputHandler) {
	h.handlerMu.Lock()
	defer h.handlerMu.Unlock()
	h.handler = handler
}

func (h *Hub) inputHandler() InputHandler {
	h.handlerMu.RLock()
	defer h.handlerMu.RUnlock()
	return h.handler
}

// Run starts the hub's event loop
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for _, clients := range h.sessions {
				for client := range clients {
					h.unregisterClient(client)
				}
			}
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)

		case msg := <-h.direct:
			h.sendTo(msg.client, msg.data)
		}
	}
}

// RendererFor returns a renderer that broadcasts a session's frames
func (h *Hub) RendererFor(sessionID string) driver.Renderer {
	return driver.RendererFunc(func(frame driver.Frame) {
		h.Publish(sessionID, frame)
	})
}

// Publish queues a frame for the clients of a session. It never blocks; the
// frame is dropped when the hub is backed up.
func (h *Hub) Publish(sessionID string, frame driver.Frame) {
	message := &Message{
		SessionID: sessionID,
		Event:     string(frame.Event),
		State:     frame.State,
	}

	select {
	case h.broadcast <- message:
	default:
		log.Printf("WebSocket hub busy, dropped %s frame for session %s", frame.Event, sessionID)
	}
}

// ServeWS upgrades the request and attaches the client to a session. The
// initial state, if any, is sent before anything else.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, sessionID string, initial *engine.GameState) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		id:        uuid.NewString(),
		hub:       h,
		conn:      conn,
		send:      make(chan []byte, 256),
		sessionID: sessionID,
	}

	if initial != nil {
		if data, err := json.Marshal(&Message{SessionID: sessionID, Event: "state", State: initial}); err == nil {
			client.send <- data
		}
	}

	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// registerClient adds a client to a session
func (h *Hub) registerClient(client *Client) {
	if h.sessions[client.sessionID] == nil {
		h.sessions[client.sessionID] = make(map[*Client]bool)
	}
	h.sessions[client.sessionID][client] = true

	log.Printf("Client %s registered for session %s (total clients: %d)",
		client.id, client.sessionID, len(h.sessions[client.sessionID]))
}

// unregisterClient removes a client from a session
func (h *Hub) unregisterClient(client *Client) {
	if clients, ok := h.sessions[client.sessionID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client.send)

			if len(clients) == 0 {
				delete(h.sessions, client.sessionID)
			}

			log.Printf("Client %s unregistered from session %s (remaining clients: %d)",
				client.id, client.sessionID, len(clients))
		}
	}
}

// broadcastMessage sends a message to all clients in a session
func (h *Hub) broadcastMessage(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Failed to marshal broadcast message: %v", err)
		return
	}

	for client := range h.sessions[message.SessionID] {
		h.sendTo(client, data)
	}
}

// sendTo queues data for a registered client, dropping clients that fall behind
func (h *Hub) sendTo(client *Client, data []byte) {
	if !h.sessions[client.sessionID][client] {
		return
	}
	select {
	case client.send <- data:
	default:
		h.unregisterClient(client)
	}
}

// reply queues a message for one client through the hub
func (c *Client) reply(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Failed to marshal reply: %v", err)
		return
	}
	c.hub.direct <- unicast{client: c, data: data}
}

// handleInbound applies one client message. Game frames reach the client
// through the session's renderer; only errors are answered directly.
func (c *Client) handleInbound(raw []byte) {
	var in Inbound
	if err := json.Unmarshal(raw, &in); err != nil {
		c.reply(&Message{SessionID: c.sessionID, Event: "error", Error: "invalid message: " + err.Error()})
		return
	}

	handler := c.hub.inputHandler()
	if handler == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	var err error
	switch {
	case in.Key != "":
		_, err = handler.PressKey(ctx, c.sessionID, in.Key)
	case in.Direction != "":
		_, err = handler.Turn(ctx, c.sessionID, in.Direction)
	case in.Command == "start":
		_, err = handler.Start(ctx, c.sessionID)
	case in.Command == "pause":
		_, err = handler.TogglePause(ctx, c.sessionID)
	case in.Command == "reset":
		_, err = handler.Reset(ctx, c.sessionID)
	default:
		c.reply(&Message{SessionID: c.sessionID, Event: "error", Error: "unknown command: " + in.Command})
		return
	}

	if err != nil {
		c.reply(&Message{SessionID: c.sessionID, Event: "error", Error: err.Error()})
	}
}

// readPump pumps messages from the WebSocket connection to the game
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error (client %s): %v", c.id, err)
			}
			break
		}
		c.handleInbound(raw)
	}
}

// writePump pumps messages from the hub to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
