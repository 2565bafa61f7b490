package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/snake-game/game/engine"
	"github.com/wricardo/snake-game/game/service"
)

const instructions = `Snake - MCP Interface

This is a thin client that proxies all requests to the REST API server.
The game runs in real time on the server: once started, the snake keeps
moving every "speed" milliseconds whether or not you call a tool.

GAME OBJECTIVE:
Steer the snake (H = head, o = body) to the food (*). Each food eaten
scores one point, grows the snake by one segment and makes it faster.
Hitting a wall or the snake's own body ends the game.

AVAILABLE TOOLS:
- create_session: Create new game session
- list_sessions: List all active sessions
- get_session: Get session details
- game_state: Get current game state with an ASCII board
- start_game: Start a new game (ignored while one is running)
- toggle_pause: Pause or resume the running game
- reset_game: Stop and reset to the initial state
- turn: Queue a direction (up/down/left/right) for the next step
- press_key: Send a raw key name (ArrowUp, w, Space, Enter, r)
- change_config: Switch the session to another configuration
- high_score: Get the best score ever recorded
- list_configs: List available configurations
- game_instructions: Get the full rules

NOTE: A turn that reverses the current direction is ignored, and only the
last turn queued before a step takes effect.`

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Snake",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(instructions),
	)

	c.registerTools()
}

func sessionOnly() mcp.ToolInputSchema {
	return mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"session_id": map[string]interface{}{
				"type":        "string",
				"description": "Session ID",
			},
		},
		Required: []string{"session_id"},
	}
}

func noArgs() mcp.ToolInputSchema {
	return mcp.ToolInputSchema{
		Type:       "object",
		Properties: map[string]interface{}{},
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the config to use, e.g. classic, fast, large (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: noArgs(),
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: sessionOnly(),
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current game state",
		InputSchema: sessionOnly(),
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "start_game",
		Description: "Start a new game; ignored while a game is running",
		InputSchema: sessionOnly(),
	}, c.handleStart)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "toggle_pause",
		Description: "Pause or resume the running game",
		InputSchema: sessionOnly(),
	}, c.handleTogglePause)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Stop the game and reset it to the initial state",
		InputSchema: sessionOnly(),
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "turn",
		Description: "Queue a direction change for the next step",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"up", "down", "left", "right"},
					"description": "Direction to turn",
				},
			},
			Required: []string{"session_id", "direction"},
		},
	}, c.handleTurn)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "press_key",
		Description: "Press a key as a browser would report it (ArrowUp, w, Space, Enter, r)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"key": map[string]interface{}{
					"type":        "string",
					"description": "Key name",
				},
			},
			Required: []string{"session_id", "key"},
		},
	}, c.handlePressKey)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "change_config",
		Description: "Switch a session to another configuration; the game is reset",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the config to load",
				},
			},
			Required: []string{"session_id", "config_id"},
		},
	}, c.handleChangeConfig)

	// Scores and configuration
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "high_score",
		Description: "Get the best score recorded across all games",
		InputSchema: noArgs(),
	}, c.handleHighScore)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available game configurations",
		InputSchema: noArgs(),
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: noArgs(),
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// apiCall makes an HTTP request to the REST API
func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

func sessionPath(args map[string]interface{}, suffix string) (string, error) {
	sessionID, _ := args["session_id"].(string)
	if sessionID == "" {
		return "", fmt.Errorf("session_id is required")
	}
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix, nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	configID, _ := args["config_id"].(string)

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var resp struct {
		Sessions []*service.SessionInfo `json:"sessions"`
	}
	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &resp); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(resp.Sessions) == 0 {
		return mcp.NewToolResultText("No active sessions"), nil
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("Active sessions: %d\n", len(resp.Sessions)))
	for _, s := range resp.Sessions {
		score := 0
		status := "idle"
		if s.GameState != nil {
			score = s.GameState.Score
			status = statusLabel(s.GameState)
		}
		result.WriteString(fmt.Sprintf("- %s (config: %s, score: %d, %s)\n", s.ID, s.ConfigName, score, status))
	}
	return mcp.NewToolResultText(result.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", path, nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "/state")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var state engine.GameState
	if err := c.apiCall(ctx, "GET", path, nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

// control posts to a session control endpoint and formats the returned state
func (c *Client) control(ctx context.Context, request mcp.CallToolRequest, suffix string) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), suffix)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var resp struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}
	if err := c.apiCall(ctx, "POST", path, nil, &resp); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(resp.Message + "\n\n" + formatGameState(resp.State)), nil
}

func (c *Client) handleStart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.control(ctx, request, "/start")
}

func (c *Client) handleTogglePause(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.control(ctx, request, "/pause")
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.control(ctx, request, "/reset")
}

func (c *Client) handleTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path, err := sessionPath(args, "/turn")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	direction, _ := args["direction"].(string)

	var state engine.GameState
	if err := c.apiCall(ctx, "POST", path, map[string]string{"direction": direction}, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Turn %s queued\n\n%s", direction, formatGameState(&state))), nil
}

func (c *Client) handlePressKey(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path, err := sessionPath(args, "/key")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	key, _ := args["key"].(string)

	var result service.KeyResult
	if err := c.apiCall(ctx, "POST", path, map[string]string{"key": key}, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatKeyResult(&result)), nil
}

func (c *Client) handleChangeConfig(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path, err := sessionPath(args, "/config")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	configID, _ := args["config_id"].(string)

	var session service.SessionInfo
	if err := c.apiCall(ctx, "PUT", path, map[string]string{"config_id": configID}, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleHighScore(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var hs service.HighScoreInfo
	if err := c.apiCall(ctx, "GET", "/api/highscore", nil, &hs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Best score: %d", hs.BestScore)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result strings.Builder
	result.WriteString("Available configurations:\n")
	for _, cfg := range configs {
		result.WriteString(fmt.Sprintf("- %s: %s (%dx%d grid, speed %dms -%dms per food down to %dms)\n",
			cfg.ConfigID, cfg.Name, cfg.GridCells, cfg.GridCells,
			cfg.InitialSpeed, cfg.SpeedIncrement, cfg.MinSpeed))
		if cfg.Description != "" {
			result.WriteString("  " + cfg.Description + "\n")
		}
	}
	return mcp.NewToolResultText(result.String()), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := `# Snake

## Board
The board is a square grid of cells. (0,0) is the top-left corner; x grows
to the right and y grows downward. A new game starts with a short snake
lying horizontally on the start row, its head on the right, moving right.

## Symbols
- H: snake head
- o: snake body
- *: food
- .: empty cell

## Rules
1. Every step moves the head one cell in the current direction.
2. Moving into a wall or into the snake's body ends the game.
3. Moving onto the food scores 1 point, grows the snake by 1 segment and
   shortens the step interval by the config's speed increment, down to its
   minimum speed.
4. New food appears on a random free cell.
5. A turn takes effect on the next step. Reversing straight back into the
   snake's neck is not allowed and is ignored.
6. The best score is remembered across games.

## Controls
- start_game / Enter: start a new game when none is running
- toggle_pause / Space: pause or resume
- reset_game / r: stop and reset the board
- turn / arrow keys / WASD: change direction

## Strategy
- Poll game_state often: the snake keeps moving between calls.
- Pause while planning a route, then resume and turn.
- Speed increases with every food, so plan turns earlier as the score grows.`

	return mcp.NewToolResultText(text), nil
}

// Formatters

func formatSessionInfo(session *service.SessionInfo) string {
	result := fmt.Sprintf("Session ID: %s\nConfig: %s\nCreated: %s",
		session.ID, session.ConfigName, session.CreatedAt.Format(time.RFC3339))
	if session.GameState != nil {
		result += "\n\n" + formatGameState(session.GameState)
	}
	return result
}

func statusLabel(state *engine.GameState) string {
	switch {
	case state.GameOver:
		return "game over"
	case state.Running && state.Paused:
		return "paused"
	case state.Running:
		return "running"
	default:
		return "idle"
	}
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var result strings.Builder

	head := "-"
	if len(state.Snake) > 0 {
		head = state.Snake[0].String()
	}
	result.WriteString(fmt.Sprintf("Status: %s | Score: %d | Best: %d | Speed: %dms | Length: %d | Head: %s | Heading: %s\n\n",
		statusLabel(state), state.Score, state.BestScore, state.Speed,
		len(state.Snake), head, state.Direction))

	result.WriteString(formatBoard(state))

	if state.GameOver {
		result.WriteString("\nGAME OVER")
		if state.Collision != engine.NoCollision {
			result.WriteString(fmt.Sprintf(" (hit %s)", state.Collision))
		}
		if state.NewBest {
			result.WriteString(" - new best score!")
		}
	}

	return result.String()
}

// formatBoard draws the grid with the snake and food
func formatBoard(state *engine.GameState) string {
	cells := state.GridCells
	if cells <= 0 {
		return ""
	}

	board := make([][]byte, cells)
	for y := range board {
		board[y] = bytes.Repeat([]byte{'.'}, cells)
	}
	if state.HasFood && state.InBounds(state.Food) {
		board[state.Food.Y][state.Food.X] = '*'
	}
	for i, segment := range state.Snake {
		if !state.InBounds(segment) {
			continue
		}
		if i == 0 {
			board[segment.Y][segment.X] = 'H'
		} else {
			board[segment.Y][segment.X] = 'o'
		}
	}

	var result strings.Builder
	for _, row := range board {
		result.Write(row)
		result.WriteString("\n")
	}
	return result.String()
}

func formatKeyResult(result *service.KeyResult) string {
	if !result.Handled {
		return fmt.Sprintf("Key %q ignored (action: %s)", result.Key, result.Action)
	}
	text := fmt.Sprintf("Key %q -> %s", result.Key, result.Action)
	if result.GameState != nil {
		text += "\n\n" + formatGameState(result.GameState)
	}
	return text
}
