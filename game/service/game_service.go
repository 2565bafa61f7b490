package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/wricardo/snake-game/game/driver"
	"github.com/wricardo/snake-game/game/engine"
)

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionAlreadyExists = errors.New("session already exists")
	ErrConfigNotFound       = errors.New("configuration not found")
	ErrInvalidConfig        = errors.New("invalid configuration")
	ErrInvalidDirection     = errors.New("invalid direction")
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Controls
	Start(ctx context.Context, sessionID string) (*engine.GameState, error)
	TogglePause(ctx context.Context, sessionID string) (*engine.GameState, error)
	Reset(ctx context.Context, sessionID string) (*engine.GameState, error)
	Turn(ctx context.Context, sessionID, direction string) (*engine.GameState, error)
	PressKey(ctx context.Context, sessionID, key string) (*KeyResult, error)
	ChangeConfig(ctx context.Context, sessionID, configName string) (*SessionInfo, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetHighScore(ctx context.Context) (*HighScoreInfo, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *engine.GameConfig) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// ConfigManager handles game configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.GameConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.GameConfig
}

// Session represents an active game session. Its driver runs until Stop is called.
type Session struct {
	ID        string
	Driver    *driver.Driver
	CreatedAt time.Time
	Stop      context.CancelFunc

	mu           sync.Mutex
	lastAccessed time.Time
}

// Touch records an access at t
func (s *Session) Touch(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAccessed = t
}

// LastAccessed returns the time of the latest access
func (s *Session) LastAccessed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAccessed
}
