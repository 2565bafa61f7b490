package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/wricardo/snake-game/game/engine"
	"github.com/wricardo/snake-game/game/service"
)

func callRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("Expected result content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}
	return text.Text
}

func sampleState() *engine.GameState {
	return &engine.GameState{
		Snake:     []engine.Cell{{X: 3, Y: 2}, {X: 2, Y: 2}, {X: 1, Y: 2}},
		Direction: engine.Right,
		Pending:   engine.Right,
		Food:      engine.Cell{X: 4, Y: 0},
		HasFood:   true,
		Score:     2,
		BestScore: 7,
		Speed:     140,
		Running:   true,
		GridCells: 5,
	}
}

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	if client == nil {
		t.Fatal("Expected client to be created")
	}

	if client.baseURL != baseURL {
		t.Errorf("Expected baseURL %s, got %s", baseURL, client.baseURL)
	}

	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}

	if client.GetMCPServer() == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Unexpected request %s with content type %q", r.Method, r.Header.Get("Content-Type"))
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"echo": body["direction"]})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var result map[string]string
	err := client.apiCall(context.Background(), "POST", "/api/test", map[string]string{"direction": "up"}, &result)
	if err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}
	if result["echo"] != "up" {
		t.Errorf("Expected echo up, got %v", result)
	}
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://127.0.0.1:1")

	if err := client.apiCall(context.Background(), "GET", "/api", nil, nil); err == nil {
		t.Error("Expected error for unreachable server")
	}
}

func TestClient_apiCall_HTTPError(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"error field", `{"error":"session not found: abcd"}`, "session not found: abcd"},
		{"no error field", `{}`, "API error: 404"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			err := NewClient(server.URL).apiCall(context.Background(), "GET", "/api/sessions/abcd", nil, nil)
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("Expected error %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestClient_createSession(t *testing.T) {
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/sessions" || r.Method != "POST" {
			t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(service.SessionInfo{
			ID:         "ab12",
			ConfigName: gotBody["config_id"],
			CreatedAt:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			GameState:  sampleState(),
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.handleCreateSession(context.Background(), callRequest("create_session", map[string]interface{}{"config_id": "fast"}))
	if err != nil {
		t.Fatalf("handleCreateSession failed: %v", err)
	}

	text := resultText(t, result)
	for _, want := range []string{"Session ID: ab12", "Config: fast", "Score: 2"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in result, got: %s", want, text)
		}
	}
	if gotBody["config_id"] != "fast" {
		t.Errorf("Expected config_id fast in request, got %v", gotBody)
	}
}

func TestClient_controls(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		switch {
		case strings.HasSuffix(r.URL.Path, "/turn"):
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			if body["direction"] != "up" {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(map[string]string{"error": "invalid direction"})
				return
			}
			json.NewEncoder(w).Encode(sampleState())
		default:
			json.NewEncoder(w).Encode(map[string]interface{}{"message": "Game started", "state": sampleState()})
		}
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	result, _ := client.handleStart(ctx, callRequest("start_game", map[string]interface{}{"session_id": "ab12"}))
	if text := resultText(t, result); !strings.HasPrefix(text, "Game started") {
		t.Errorf("Unexpected start result: %s", text)
	}

	result, _ = client.handleTurn(ctx, callRequest("turn", map[string]interface{}{"session_id": "ab12", "direction": "up"}))
	if result.IsError {
		t.Errorf("Unexpected turn error: %s", resultText(t, result))
	}

	result, _ = client.handleTurn(ctx, callRequest("turn", map[string]interface{}{"session_id": "ab12", "direction": "north"}))
	if !result.IsError || !strings.Contains(resultText(t, result), "invalid direction") {
		t.Errorf("Expected invalid direction error, got %s", resultText(t, result))
	}

	result, _ = client.handleTogglePause(ctx, callRequest("toggle_pause", map[string]interface{}{}))
	if !result.IsError {
		t.Error("Expected an error without session_id")
	}

	want := []string{"POST /api/sessions/ab12/start", "POST /api/sessions/ab12/turn", "POST /api/sessions/ab12/turn"}
	if strings.Join(paths, ",") != strings.Join(want, ",") {
		t.Errorf("Expected requests %v, got %v", want, paths)
	}
}

func TestFormatGameState(t *testing.T) {
	result := formatGameState(sampleState())

	for _, want := range []string{"Status: running", "Score: 2", "Best: 7", "Speed: 140ms", "Length: 3", "Head: (3,2)"} {
		if !strings.Contains(result, want) {
			t.Errorf("Expected %q in result, got: %s", want, result)
		}
	}

	board := "....*\n.....\n.ooH.\n.....\n.....\n"
	if !strings.Contains(result, board) {
		t.Errorf("Expected board\n%s\ngot:\n%s", board, result)
	}
}

func TestFormatGameState_GameOver(t *testing.T) {
	state := sampleState()
	state.Running = false
	state.GameOver = true
	state.Collision = engine.WallCollision
	state.NewBest = true

	result := formatGameState(state)
	for _, want := range []string{"Status: game over", "GAME OVER (hit wall)", "new best score"} {
		if !strings.Contains(result, want) {
			t.Errorf("Expected %q in result, got: %s", want, result)
		}
	}

	if formatGameState(nil) != "No game state available" {
		t.Error("Expected placeholder for nil state")
	}
}

func TestFormatKeyResult(t *testing.T) {
	ignored := formatKeyResult(&service.KeyResult{Key: "x", Action: "none"})
	if !strings.Contains(ignored, "ignored") {
		t.Errorf("Expected ignored key, got %s", ignored)
	}

	handled := formatKeyResult(&service.KeyResult{Key: "ArrowUp", Action: "up", Handled: true, GameState: sampleState()})
	if !strings.Contains(handled, `"ArrowUp" -> up`) || !strings.Contains(handled, "Score: 2") {
		t.Errorf("Unexpected handled key result: %s", handled)
	}
}

func TestClient_handleGameInstructions(t *testing.T) {
	client := NewClient("http://localhost:8080")

	result, err := client.handleGameInstructions(context.Background(), callRequest("game_instructions", map[string]interface{}{}))
	if err != nil {
		t.Fatalf("handleGameInstructions failed: %v", err)
	}

	text := resultText(t, result)
	for _, content := range []string{"# Snake", "## Symbols", "## Rules", "## Controls", "Reversing"} {
		if !strings.Contains(text, content) {
			t.Errorf("Expected '%s' in instructions", content)
		}
	}
}
