package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/wricardo/snake-game/game/engine"
	"github.com/wricardo/snake-game/game/service"
)

var (
	ErrConfigNotFound = service.ErrConfigNotFound
	ErrInvalidConfig  = service.ErrInvalidConfig
)

// DefaultConfigID is the preset used when no configuration is named
const DefaultConfigID = "classic"

// Manager handles game configuration loading and caching
type Manager struct {
	configDir     string
	defaultConfig *engine.GameConfig
	configs       map[string]*engine.GameConfig
	mu            sync.RWMutex
}

// NewManager creates a new configuration manager
func NewManager(configDir string) (*Manager, error) {
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*engine.GameConfig),
	}

	if err := m.loadDefaultConfig(); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	return m, nil
}

// configID normalizes a config name to its file stem
func configID(name string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(name)), ".json")
}

// LoadConfig loads a configuration by name
func (m *Manager) LoadConfig(name string) (*engine.GameConfig, error) {
	id := configID(name)
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return nil, ErrConfigNotFound
	}

	m.mu.RLock()
	if config, exists := m.configs[id]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if config, exists := m.configs[id]; exists {
		return config, nil
	}

	configPath := filepath.Join(m.configDir, id+".json")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config engine.GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrInvalidConfig, filepath.Base(configPath), err)
	}

	if err := engine.ValidateGameConfig(&config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	m.configs[id] = &config
	return &config, nil
}

// ListConfigs returns information about all valid configurations, sorted by id
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var configs []*service.ConfigInfo

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		id := strings.TrimSuffix(entry.Name(), ".json")
		config, err := m.LoadConfig(id)
		if err != nil {
			log.Printf("Skipping config %s: %v", entry.Name(), err)
			continue
		}

		configs = append(configs, &service.ConfigInfo{
			Filename:       entry.Name(),
			ConfigID:       configID(id),
			Name:           config.Name,
			Description:    config.Description,
			GridCells:      config.GridCells(),
			InitialSpeed:   config.InitialSpeed,
			SpeedIncrement: config.SpeedIncrement,
			MinSpeed:       config.MinSpeed,
		})
	}

	sort.Slice(configs, func(i, j int) bool {
		return configs[i].ConfigID < configs[j].ConfigID
	})

	return configs, nil
}

// GetDefault returns the default configuration
func (m *Manager) GetDefault() *engine.GameConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// SetDefault sets the default configuration by name
func (m *Manager) SetDefault(name string) error {
	config, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = config
	return nil
}

// loadDefaultConfig picks classic.json, then the first valid preset, then
// the built-in classic configuration
func (m *Manager) loadDefaultConfig() error {
	config, err := m.LoadConfig(DefaultConfigID)
	if err == nil {
		m.defaultConfig = config
		return nil
	}

	configs, listErr := m.ListConfigs()
	if listErr == nil && len(configs) > 0 {
		if config, err = m.LoadConfig(configs[0].ConfigID); err == nil {
			m.defaultConfig = config
			return nil
		}
	}

	m.defaultConfig = engine.DefaultGameConfig()
	return nil
}
