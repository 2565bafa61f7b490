package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/wricardo/snake-game/game/driver"
	"github.com/wricardo/snake-game/game/engine"
	"github.com/wricardo/snake-game/game/input"
	"github.com/wricardo/snake-game/game/scores"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	board    *scores.Board
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager, board *scores.Board) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		board:    board,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

// loadConfig resolves a config name, listing the alternatives when it is unknown
func (s *gameServiceImpl) loadConfig(configName string) (*engine.GameConfig, error) {
	if configName == "" {
		return s.configs.GetDefault(), nil
	}

	config, err := s.configs.LoadConfig(configName)
	if err == nil {
		return config, nil
	}
	if errors.Is(err, ErrConfigNotFound) {
		availableConfigs, listErr := s.configs.ListConfigs()
		if listErr == nil && len(availableConfigs) > 0 {
			var configIDs []string
			for _, cfg := range availableConfigs {
				configIDs = append(configIDs, cfg.ConfigID)
			}
			return nil, fmt.Errorf("%w: '%s' (available: %v)", ErrConfigNotFound, configName, configIDs)
		}
		return nil, fmt.Errorf("%w: '%s'", ErrConfigNotFound, configName)
	}
	return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
}

// session looks up a session and marks it as accessed
func (s *gameServiceImpl) session(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return sess, nil
}

func (s *gameServiceImpl) info(ctx context.Context, sess *Session) (*SessionInfo, error) {
	state, err := sess.Driver.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sess.ID, err)
	}
	config := sess.Driver.Config()
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     s.getConfigID(config.Name),
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessed(),
		GameState:      state,
		GameConfig:     config,
	}, nil
}

// CreateSession creates a new game session with its own driver
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	config, err := s.loadConfig(configName)
	if err != nil {
		return nil, err
	}

	sess, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	info, err := s.info(ctx, sess)
	if err != nil {
		return nil, err
	}
	if configName != "" {
		info.ConfigName = configName
	}
	return info, nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return s.info(ctx, sess)
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		info, err := s.info(ctx, sess)
		if err != nil {
			// Session stopped while listing
			if errors.Is(err, driver.ErrDriverStopped) {
				continue
			}
			return nil, err
		}
		result = append(result, info)
	}

	return result, nil
}

// DeleteSession stops and removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(sessionID)
}

// command sends one command to a session's driver
func (s *gameServiceImpl) command(ctx context.Context, sessionID string, cmd driver.Command) (*engine.GameState, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	state, err := sess.Driver.Do(ctx, cmd)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sess.ID, err)
	}
	return state, nil
}

// Start begins a new game unless one is already running
func (s *gameServiceImpl) Start(ctx context.Context, sessionID string) (*engine.GameState, error) {
	return s.command(ctx, sessionID, driver.CmdStart{})
}

// TogglePause pauses or resumes a running game
func (s *gameServiceImpl) TogglePause(ctx context.Context, sessionID string) (*engine.GameState, error) {
	return s.command(ctx, sessionID, driver.CmdTogglePause{})
}

// Reset stops the game and restores the initial position
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	return s.command(ctx, sessionID, driver.CmdReset{})
}

// Turn steers the snake of a running game
func (s *gameServiceImpl) Turn(ctx context.Context, sessionID, direction string) (*engine.GameState, error) {
	dir, err := engine.ParseDirection(direction)
	if err != nil {
		return nil, fmt.Errorf("%w: %q (use up, down, left or right)", ErrInvalidDirection, direction)
	}
	return s.command(ctx, sessionID, driver.CmdTurn{Direction: dir})
}

// PressKey applies a browser key name. Unmapped keys leave the game untouched.
func (s *gameServiceImpl) PressKey(ctx context.Context, sessionID, key string) (*KeyResult, error) {
	action := input.FromKeyName(key)

	state, err := s.command(ctx, sessionID, driver.CmdKey{Action: action})
	if err != nil {
		return nil, err
	}

	return &KeyResult{
		Key:       key,
		Action:    action.String(),
		Captured:  input.Captured(key),
		Handled:   action != input.None,
		GameState: state,
	}, nil
}

// ChangeConfig switches a session to another configuration and resets its game
func (s *gameServiceImpl) ChangeConfig(ctx context.Context, sessionID, configName string) (*SessionInfo, error) {
	config, err := s.loadConfig(configName)
	if err != nil {
		return nil, err
	}

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	if _, err := sess.Driver.Do(ctx, driver.CmdLoadConfig{Config: config}); err != nil {
		return nil, fmt.Errorf("session %s: %w", sess.ID, err)
	}
	return s.info(ctx, sess)
}

// GetGameState returns a snapshot of a session's game
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Driver.Snapshot(ctx)
}

// GetHighScore returns the best score shared by all sessions
func (s *gameServiceImpl) GetHighScore(ctx context.Context) (*HighScoreInfo, error) {
	return &HighScoreInfo{
		BestScore: s.board.Best(),
		Key:       scores.HighScoreKey,
	}, nil
}

// ListConfigs returns available configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.loadConfig(configName)
}
