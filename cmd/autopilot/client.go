package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"github.com/wricardo/snake-game/game/engine"
)

// SessionResponse is the part of a session the autopilot reads
type SessionResponse struct {
	ID        string            `json:"id"`
	GameState *engine.GameState `json:"game_state"`
}

// Frame is one WebSocket message from the server
type Frame struct {
	SessionID string            `json:"session_id"`
	Event     string            `json:"event"`
	State     *engine.GameState `json:"state,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// Client talks to a snake server
type Client struct {
	baseURL   string
	sessionID string
	client    *http.Client
	conn      *websocket.Conn
}

// NewClient creates a client for the server at baseURL
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// CreateSession creates a session with an optional config
func (c *Client) CreateSession(configID string) (*engine.GameState, error) {
	var reqBody []byte
	if configID != "" {
		var err error
		reqBody, err = json.Marshal(map[string]string{"config_id": configID})
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
	}

	resp, err := c.client.Post(c.baseURL+"/api/sessions", "application/json", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("create session failed: %s - %s", resp.Status, string(body))
	}

	var session SessionResponse
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("parse session response: %w", err)
	}

	c.sessionID = session.ID
	return session.GameState, nil
}

// UseSession follows an existing session
func (c *Client) UseSession(id string) {
	c.sessionID = id
}

// SessionID returns the followed session
func (c *Client) SessionID() string {
	return c.sessionID
}

// Connect opens the session's WebSocket
func (c *Client) Connect() error {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return err
	}

	scheme := "ws"
	if base.Scheme == "https" {
		scheme = "wss"
	}
	wsURL := url.URL{Scheme: scheme, Host: base.Host, Path: "/ws", RawQuery: url.Values{"session": {c.sessionID}}.Encode()}

	conn, _, err := websocket.DefaultDialer.Dial(wsURL.String(), nil)
	if err != nil {
		return fmt.Errorf("connect websocket: %w", err)
	}
	c.conn = conn
	return nil
}

// Next blocks for the next frame
func (c *Client) Next() (*Frame, error) {
	var frame Frame
	if err := c.conn.ReadJSON(&frame); err != nil {
		return nil, err
	}
	return &frame, nil
}

// Command sends start, pause or reset
func (c *Client) Command(name string) error {
	return c.conn.WriteJSON(map[string]string{"command": name})
}

// Turn queues a direction
func (c *Client) Turn(d engine.Direction) error {
	return c.conn.WriteJSON(map[string]string{"direction": d.String()})
}

// Close closes the WebSocket
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}
