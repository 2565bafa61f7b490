package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/wricardo/snake-game/game/driver"
	"github.com/wricardo/snake-game/game/engine"
	"github.com/wricardo/snake-game/game/service"
	"github.com/wricardo/snake-game/transport/websocket"
)

// MockGameService implements service.GameService for testing
type MockGameService struct {
	// Session Management
	CreateSessionFunc func(ctx context.Context, configName string) (*service.SessionInfo, error)
	GetSessionFunc    func(ctx context.Context, sessionID string) (*service.SessionInfo, error)
	ListSessionsFunc  func(ctx context.Context) ([]*service.SessionInfo, error)
	DeleteSessionFunc func(ctx context.Context, sessionID string) error

	// Game Controls
	StartFunc        func(ctx context.Context, sessionID string) (*engine.GameState, error)
	TogglePauseFunc  func(ctx context.Context, sessionID string) (*engine.GameState, error)
	ResetFunc        func(ctx context.Context, sessionID string) (*engine.GameState, error)
	TurnFunc         func(ctx context.Context, sessionID, direction string) (*engine.GameState, error)
	PressKeyFunc     func(ctx context.Context, sessionID, key string) (*service.KeyResult, error)
	ChangeConfigFunc func(ctx context.Context, sessionID, configName string) (*service.SessionInfo, error)

	// Game State
	GetGameStateFunc func(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetHighScoreFunc func(ctx context.Context) (*service.HighScoreInfo, error)

	// Configuration
	ListConfigsFunc func(ctx context.Context) ([]*service.ConfigInfo, error)
	LoadConfigFunc  func(ctx context.Context, configName string) (*engine.GameConfig, error)
}

func (m *MockGameService) CreateSession(ctx context.Context, configName string) (*service.SessionInfo, error) {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx, configName)
	}
	return &service.SessionInfo{ID: "test-session", ConfigName: configName, CreatedAt: time.Now()}, nil
}

func (m *MockGameService) GetSession(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, sessionID)
	}
	return &service.SessionInfo{ID: sessionID, ConfigName: "classic", CreatedAt: time.Now()}, nil
}

func (m *MockGameService) ListSessions(ctx context.Context) ([]*service.SessionInfo, error) {
	if m.ListSessionsFunc != nil {
		return m.ListSessionsFunc(ctx)
	}
	return []*service.SessionInfo{}, nil
}

func (m *MockGameService) DeleteSession(ctx context.Context, sessionID string) error {
	if m.DeleteSessionFunc != nil {
		return m.DeleteSessionFunc(ctx, sessionID)
	}
	return nil
}

func (m *MockGameService) Start(ctx context.Context, sessionID string) (*engine.GameState, error) {
	if m.StartFunc != nil {
		return m.StartFunc(ctx, sessionID)
	}
	return &engine.GameState{Running: true}, nil
}

func (m *MockGameService) TogglePause(ctx context.Context, sessionID string) (*engine.GameState, error) {
	if m.TogglePauseFunc != nil {
		return m.TogglePauseFunc(ctx, sessionID)
	}
	return &engine.GameState{Running: true, Paused: true}, nil
}

func (m *MockGameService) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	if m.ResetFunc != nil {
		return m.ResetFunc(ctx, sessionID)
	}
	return &engine.GameState{}, nil
}

func (m *MockGameService) Turn(ctx context.Context, sessionID, direction string) (*engine.GameState, error) {
	if m.TurnFunc != nil {
		return m.TurnFunc(ctx, sessionID, direction)
	}
	return &engine.GameState{}, nil
}

func (m *MockGameService) PressKey(ctx context.Context, sessionID, key string) (*service.KeyResult, error) {
	if m.PressKeyFunc != nil {
		return m.PressKeyFunc(ctx, sessionID, key)
	}
	return &service.KeyResult{Key: key}, nil
}

func (m *MockGameService) ChangeConfig(ctx context.Context, sessionID, configName string) (*service.SessionInfo, error) {
	if m.ChangeConfigFunc != nil {
		return m.ChangeConfigFunc(ctx, sessionID, configName)
	}
	return &service.SessionInfo{ID: sessionID, ConfigName: configName}, nil
}

func (m *MockGameService) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	if m.GetGameStateFunc != nil {
		return m.GetGameStateFunc(ctx, sessionID)
	}
	return &engine.GameState{}, nil
}

func (m *MockGameService) GetHighScore(ctx context.Context) (*service.HighScoreInfo, error) {
	if m.GetHighScoreFunc != nil {
		return m.GetHighScoreFunc(ctx)
	}
	return &service.HighScoreInfo{Key: "snakeHighScore"}, nil
}

func (m *MockGameService) ListConfigs(ctx context.Context) ([]*service.ConfigInfo, error) {
	if m.ListConfigsFunc != nil {
		return m.ListConfigsFunc(ctx)
	}
	return []*service.ConfigInfo{}, nil
}

func (m *MockGameService) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	if m.LoadConfigFunc != nil {
		return m.LoadConfigFunc(ctx, configName)
	}
	config := engine.DefaultGameConfig()
	config.Name = configName
	return config, nil
}

// Test helpers
func setupTestServer(mockService *MockGameService) *Server {
	return NewServer(mockService, websocket.NewHub())
}

func makeRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	if err := json.Unmarshal(w.Body.Bytes(), target); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	return w
}

// Session Management Tests

func TestCreateSession(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    map[string]string
		setupMock      func(*MockGameService)
		expectedStatus int
		expectedConfig string
	}{
		{
			name:           "Create session with default config",
			requestBody:    nil,
			expectedStatus: http.StatusCreated,
			expectedConfig: "",
		},
		{
			name:           "Create session with config_id",
			requestBody:    map[string]string{"config_id": "fast"},
			expectedStatus: http.StatusCreated,
			expectedConfig: "fast",
		},
		{
			name:           "Create session with deprecated config_name",
			requestBody:    map[string]string{"config_name": "large"},
			expectedStatus: http.StatusCreated,
			expectedConfig: "large",
		},
		{
			name:        "Unknown config",
			requestBody: map[string]string{"config_id": "nope"},
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, configName string) (*service.SessionInfo, error) {
					return nil, fmt.Errorf("%w: 'nope'", service.ErrConfigNotFound)
				}
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "Handle service error",
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, configName string) (*service.SessionInfo, error) {
					return nil, fmt.Errorf("service error")
				}
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockGameService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			w := serve(setupTestServer(mockService), makeRequest("POST", "/api/sessions", tt.requestBody))

			if w.Code != tt.expectedStatus {
				t.Fatalf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if w.Code == http.StatusCreated {
				var resp service.SessionInfo
				parseResponse(t, w, &resp)
				if resp.ConfigName != tt.expectedConfig {
					t.Errorf("Expected config %q, got %q", tt.expectedConfig, resp.ConfigName)
				}
			}
		})
	}
}

func TestListSessions(t *testing.T) {
	now := time.Now()
	sessions := func() []*service.SessionInfo {
		return []*service.SessionInfo{
			{ID: "old", CreatedAt: now.Add(-2 * time.Hour), LastAccessedAt: now.Add(-time.Minute), GameState: &engine.GameState{Score: 5}},
			{ID: "new", CreatedAt: now, LastAccessedAt: now.Add(-time.Hour), GameState: &engine.GameState{Score: 1}},
			{ID: "mid", CreatedAt: now.Add(-time.Hour), LastAccessedAt: now, GameState: &engine.GameState{Score: 9}},
		}
	}

	tests := []struct {
		name      string
		query     string
		wantOrder []string
		wantTotal int
	}{
		{"default sorts by access desc", "", []string{"mid", "old", "new"}, 3},
		{"created asc", "?sort=created&order=asc", []string{"old", "mid", "new"}, 3},
		{"score desc", "?sort=score", []string{"mid", "old", "new"}, 3},
		{"limit", "?sort=score&limit=1", []string{"mid"}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockGameService{
				ListSessionsFunc: func(ctx context.Context) ([]*service.SessionInfo, error) { return sessions(), nil },
			}

			w := serve(setupTestServer(mockService), makeRequest("GET", "/api/sessions"+tt.query, nil))
			if w.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d", w.Code)
			}

			var resp struct {
				Count    int                   `json:"count"`
				Total    int                   `json:"total"`
				Sessions []service.SessionInfo `json:"sessions"`
			}
			parseResponse(t, w, &resp)

			if resp.Total != tt.wantTotal || resp.Count != len(tt.wantOrder) {
				t.Errorf("Expected count %d of %d, got %d of %d", len(tt.wantOrder), tt.wantTotal, resp.Count, resp.Total)
			}
			for i, id := range tt.wantOrder {
				if resp.Sessions[i].ID != id {
					t.Errorf("Position %d: expected %s, got %s", i, id, resp.Sessions[i].ID)
				}
			}
		})
	}
}

func TestGetAndDeleteSession(t *testing.T) {
	mockService := &MockGameService{
		GetSessionFunc: func(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
			if sessionID != "abcd" {
				return nil, service.ErrSessionNotFound
			}
			return &service.SessionInfo{ID: "abcd"}, nil
		},
		DeleteSessionFunc: func(ctx context.Context, sessionID string) error {
			if sessionID != "abcd" {
				return service.ErrSessionNotFound
			}
			return nil
		},
	}
	server := setupTestServer(mockService)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{"GET", "/api/sessions/abcd", http.StatusOK},
		{"GET", "/api/sessions/zzzz", http.StatusNotFound},
		{"DELETE", "/api/sessions/abcd", http.StatusOK},
		{"DELETE", "/api/sessions/zzzz", http.StatusNotFound},
	}
	for _, tt := range tests {
		if w := serve(server, makeRequest(tt.method, tt.path, nil)); w.Code != tt.want {
			t.Errorf("%s %s: expected %d, got %d", tt.method, tt.path, tt.want, w.Code)
		}
	}
}

// Game Control Tests

func TestControls(t *testing.T) {
	var calls []string
	mockService := &MockGameService{
		StartFunc: func(ctx context.Context, id string) (*engine.GameState, error) {
			calls = append(calls, "start:"+id)
			return &engine.GameState{Running: true}, nil
		},
		TogglePauseFunc: func(ctx context.Context, id string) (*engine.GameState, error) {
			calls = append(calls, "pause:"+id)
			return &engine.GameState{Running: true, Paused: true}, nil
		},
		ResetFunc: func(ctx context.Context, id string) (*engine.GameState, error) {
			calls = append(calls, "reset:"+id)
			return &engine.GameState{}, nil
		},
	}
	server := setupTestServer(mockService)

	tests := []struct {
		path        string
		wantMessage string
	}{
		{"/api/sessions/abcd/start", "Game started"},
		{"/api/sessions/abcd/pause", "Game paused"},
		{"/api/sessions/abcd/reset", "Game reset"},
	}
	for _, tt := range tests {
		w := serve(server, makeRequest("POST", tt.path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("POST %s: expected 200, got %d", tt.path, w.Code)
		}
		var resp struct {
			Message string            `json:"message"`
			State   *engine.GameState `json:"state"`
		}
		parseResponse(t, w, &resp)
		if resp.Message != tt.wantMessage || resp.State == nil {
			t.Errorf("POST %s: got message %q state %v", tt.path, resp.Message, resp.State)
		}
	}

	want := "start:abcd,pause:abcd,reset:abcd"
	if got := strings.Join(calls, ","); got != want {
		t.Errorf("Expected calls %s, got %s", want, got)
	}

	t.Run("GET is not allowed", func(t *testing.T) {
		if w := serve(server, makeRequest("GET", "/api/sessions/abcd/start", nil)); w.Code != http.StatusMethodNotAllowed {
			t.Errorf("Expected 405, got %d", w.Code)
		}
		if w := serve(server, makeRequest("DELETE", "/api/highscore", nil)); w.Code != http.StatusMethodNotAllowed {
			t.Errorf("Expected 405 for DELETE /api/highscore, got %d", w.Code)
		}
	})

	t.Run("unknown API path is not found", func(t *testing.T) {
		if w := serve(server, makeRequest("GET", "/api/nothing-here", nil)); w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})
}

func TestPauseMessages(t *testing.T) {
	tests := []struct {
		state engine.GameState
		want  string
	}{
		{engine.GameState{Running: true, Paused: true}, "Game paused"},
		{engine.GameState{Running: true}, "Game resumed"},
		{engine.GameState{}, "No game running"},
	}
	for _, tt := range tests {
		state := tt.state
		mockService := &MockGameService{
			TogglePauseFunc: func(ctx context.Context, id string) (*engine.GameState, error) { return &state, nil },
		}
		w := serve(setupTestServer(mockService), makeRequest("POST", "/api/sessions/abcd/pause", nil))
		var resp map[string]interface{}
		parseResponse(t, w, &resp)
		if resp["message"] != tt.want {
			t.Errorf("Expected %q, got %v", tt.want, resp["message"])
		}
	}
}

func TestTurn(t *testing.T) {
	mockService := &MockGameService{
		TurnFunc: func(ctx context.Context, id, direction string) (*engine.GameState, error) {
			dir, err := engine.ParseDirection(direction)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", service.ErrInvalidDirection, direction)
			}
			return &engine.GameState{Pending: dir}, nil
		},
	}
	server := setupTestServer(mockService)

	tests := []struct {
		name string
		body interface{}
		want int
	}{
		{"valid direction", map[string]string{"direction": "up"}, http.StatusOK},
		{"invalid direction", map[string]string{"direction": "north"}, http.StatusBadRequest},
		{"missing body", nil, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := serve(server, makeRequest("POST", "/api/sessions/abcd/turn", tt.body)); w.Code != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, w.Code)
			}
		})
	}
}

func TestKey(t *testing.T) {
	mockService := &MockGameService{
		PressKeyFunc: func(ctx context.Context, id, key string) (*service.KeyResult, error) {
			return &service.KeyResult{Key: key, Action: "up", Captured: true, Handled: true}, nil
		},
	}

	w := serve(setupTestServer(mockService), makeRequest("POST", "/api/sessions/abcd/key", map[string]string{"key": "ArrowUp"}))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var resp service.KeyResult
	parseResponse(t, w, &resp)
	if resp.Key != "ArrowUp" || resp.Action != "up" || !resp.Captured {
		t.Errorf("Unexpected key result: %+v", resp)
	}
}

func TestChangeConfig(t *testing.T) {
	server := setupTestServer(&MockGameService{})

	w := serve(server, makeRequest("PUT", "/api/sessions/abcd/config", map[string]string{"config_id": "large"}))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var resp service.SessionInfo
	parseResponse(t, w, &resp)
	if resp.ConfigName != "large" {
		t.Errorf("Expected config large, got %q", resp.ConfigName)
	}

	if w := serve(server, makeRequest("PUT", "/api/sessions/abcd/config", map[string]string{})); w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without config_id, got %d", w.Code)
	}
}

func TestStoppedSessionIsGone(t *testing.T) {
	mockService := &MockGameService{
		GetGameStateFunc: func(ctx context.Context, id string) (*engine.GameState, error) {
			return nil, fmt.Errorf("session %s: %w", id, driver.ErrDriverStopped)
		},
	}
	w := serve(setupTestServer(mockService), makeRequest("GET", "/api/sessions/abcd/state", nil))
	if w.Code != http.StatusGone {
		t.Errorf("Expected 410, got %d", w.Code)
	}
}

// Other Endpoint Tests

func TestHighScoreAndKeys(t *testing.T) {
	mockService := &MockGameService{
		GetHighScoreFunc: func(ctx context.Context) (*service.HighScoreInfo, error) {
			return &service.HighScoreInfo{BestScore: 12, Key: "snakeHighScore"}, nil
		},
	}
	server := setupTestServer(mockService)

	w := serve(server, makeRequest("GET", "/api/highscore", nil))
	var hs service.HighScoreInfo
	parseResponse(t, w, &hs)
	if hs.BestScore != 12 {
		t.Errorf("Expected best 12, got %d", hs.BestScore)
	}

	w = serve(server, makeRequest("GET", "/api/keys", nil))
	var keys map[string][]string
	parseResponse(t, w, &keys)
	if len(keys["captured"]) != 9 {
		t.Errorf("Expected 9 captured keys, got %v", keys["captured"])
	}
}

func TestConfigs(t *testing.T) {
	mockService := &MockGameService{
		ListConfigsFunc: func(ctx context.Context) ([]*service.ConfigInfo, error) {
			return []*service.ConfigInfo{{ConfigID: "classic", Name: "Classic", GridCells: 20}}, nil
		},
		LoadConfigFunc: func(ctx context.Context, name string) (*engine.GameConfig, error) {
			if name != "classic" {
				return nil, service.ErrConfigNotFound
			}
			return engine.DefaultGameConfig(), nil
		},
	}
	server := setupTestServer(mockService)

	w := serve(server, makeRequest("GET", "/api/configs", nil))
	var configs []service.ConfigInfo
	parseResponse(t, w, &configs)
	if len(configs) != 1 || configs[0].ConfigID != "classic" {
		t.Errorf("Unexpected configs: %+v", configs)
	}

	w = serve(server, makeRequest("GET", "/api/configs/classic", nil))
	var config engine.GameConfig
	parseResponse(t, w, &config)
	if config.InitialSpeed != 150 {
		t.Errorf("Expected initial speed 150, got %d", config.InitialSpeed)
	}

	if w := serve(server, makeRequest("GET", "/api/configs/none", nil)); w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestHealthAndStatic(t *testing.T) {
	server := setupTestServer(&MockGameService{})

	if w := serve(server, makeRequest("GET", "/api/health", nil)); w.Code != http.StatusOK {
		t.Errorf("Expected healthy, got %d", w.Code)
	}

	w := serve(server, makeRequest("GET", "/", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "<canvas") {
		t.Errorf("Expected the browser client, got %d", w.Code)
	}
}

func TestWebSocketRequiresSession(t *testing.T) {
	mockService := &MockGameService{
		GetSessionFunc: func(ctx context.Context, id string) (*service.SessionInfo, error) {
			return nil, service.ErrSessionNotFound
		},
	}
	server := setupTestServer(mockService)

	if w := serve(server, makeRequest("GET", "/ws", nil)); w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without session, got %d", w.Code)
	}
	if w := serve(server, makeRequest("GET", "/ws?session=zzzz", nil)); w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown session, got %d", w.Code)
	}
}
