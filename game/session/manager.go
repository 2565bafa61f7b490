package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/wricardo/snake-game/game/driver"
	"github.com/wricardo/snake-game/game/engine"
	"github.com/wricardo/snake-game/game/scores"
	"github.com/wricardo/snake-game/game/service"
)

var (
	ErrSessionNotFound      = service.ErrSessionNotFound
	ErrSessionAlreadyExists = service.ErrSessionAlreadyExists
)

// maxIDAttempts bounds the retries when a generated ID collides
const maxIDAttempts = 16

// RendererFactory returns the renderer for a new session's driver
type RendererFactory func(sessionID string) driver.Renderer

// SchedulerFactory returns the tick scheduler for a new session's driver
type SchedulerFactory func() driver.Scheduler

// Manager handles game session lifecycle
type Manager struct {
	sessions     map[string]*service.Session
	board        *scores.Board
	newRenderer  RendererFactory
	newScheduler SchedulerFactory
	mu           sync.RWMutex
}

// Option configures a Manager
type Option func(*Manager)

// WithBoard shares a best score board between all sessions
func WithBoard(board *scores.Board) Option {
	return func(m *Manager) {
		m.board = board
	}
}

// WithRendererFactory attaches a renderer to every new session
func WithRendererFactory(f RendererFactory) Option {
	return func(m *Manager) {
		m.newRenderer = f
	}
}

// WithSchedulerFactory overrides the tick scheduler of new sessions
func WithSchedulerFactory(f SchedulerFactory) Option {
	return func(m *Manager) {
		m.newScheduler = f
	}
}

// NewManager creates a new session manager
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		sessions: make(map[string]*service.Session),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.board == nil {
		m.board = scores.NewBoard(scores.NewMemoryStore())
	}
	if m.newScheduler == nil {
		m.newScheduler = func() driver.Scheduler { return driver.NewTickerScheduler() }
	}
	return m
}

// Create creates a session with the given ID and configuration and starts
// its driver. An empty ID is replaced by a generated one.
func (m *Manager) Create(id string, config *engine.GameConfig) (*service.Session, error) {
	eng, err := engine.NewEngine(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		if id, err = m.uniqueSessionID(); err != nil {
			return nil, err
		}
	} else if m.sessionExists(id) {
		return nil, ErrSessionAlreadyExists
	}

	opts := []driver.Option{
		driver.WithName(id),
		driver.WithBoard(m.board),
		driver.WithScheduler(m.newScheduler()),
	}
	if m.newRenderer != nil {
		opts = append(opts, driver.WithRenderer(m.newRenderer(id)))
	}
	d := driver.New(eng, opts...)

	ctx, cancel := context.WithCancel(context.Background())
	go d.Run(ctx)

	now := time.Now()
	session := &service.Session{
		ID:        id,
		Driver:    d,
		CreatedAt: now,
		Stop:      cancel,
	}
	session.Touch(now)
	m.sessions[strings.ToLower(id)] = session

	log.Printf("Session %s created (%s)", id, config.Name)
	return session, nil
}

// Get retrieves a session by ID (case-insensitive)
func (m *Manager) Get(id string) (*service.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[strings.ToLower(id)]
	if !exists {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// List returns all active sessions
func (m *Manager) List() []*service.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}

	return result
}

// Delete stops a session's driver and removes it
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lowerID := strings.ToLower(id)
	session, exists := m.sessions[lowerID]
	if !exists {
		return ErrSessionNotFound
	}

	session.Stop()
	delete(m.sessions, lowerID)
	log.Printf("Session %s deleted", session.ID)
	return nil
}

// UpdateLastAccessed updates the last accessed time for a session
func (m *Manager) UpdateLastAccessed(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.sessions[strings.ToLower(id)]
	if !exists {
		return ErrSessionNotFound
	}

	session.Touch(time.Now())
	return nil
}

// CleanupExpiredSessions stops and removes sessions that haven't been
// accessed in the given duration
func (m *Manager) CleanupExpiredSessions(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0

	for id, session := range m.sessions {
		if session.LastAccessed().Before(cutoff) {
			session.Stop()
			delete(m.sessions, id)
			removed++
		}
	}

	return removed
}

// Close stops every session
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, session := range m.sessions {
		session.Stop()
		delete(m.sessions, id)
	}
}

// Count returns the number of active sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Board returns the best score board shared by all sessions
func (m *Manager) Board() *scores.Board {
	return m.board
}

// uniqueSessionID generates an unused ID; the caller holds the lock
func (m *Manager) uniqueSessionID() (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := generateSessionID()
		if !m.sessionExists(id) {
			return id, nil
		}
	}
	return "", fmt.Errorf("failed to generate a unique session ID after %d attempts", maxIDAttempts)
}

// generateSessionID generates a random 4-character session ID
func generateSessionID() string {
	// Generate 2 random bytes (4 hex characters)
	bytes := make([]byte, 2)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// sessionExists checks if a session exists (case-insensitive)
func (m *Manager) sessionExists(id string) bool {
	_, exists := m.sessions[strings.ToLower(id)]
	return exists
}
