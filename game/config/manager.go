package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"memorymatch/game/engine"
)

var (
	ErrLevelNotFound = errors.New("level not found")
	ErrThemeNotFound = errors.New("theme not found")
	ErrInvalidConfig = errors.New("invalid configuration")
)

const (
	levelsFile = "levels.json"
	themesFile = "themes.json"
)

// Manager handles level and theme configuration loading and caching
type Manager struct {
	configDir string
	levels    map[int]*engine.LevelConfig
	themes    map[string][]string
	mu        sync.RWMutex
}

// NewManager creates a new configuration manager. Levels and themes are
// read from configDir when present, otherwise the built-in defaults are
// used. Every level must be coverable by every theme; a partial file
// that breaks that rule is rejected at startup rather than at deal time.
func NewManager(configDir string) (*Manager, error) {
	m := &Manager{
		configDir: configDir,
		levels:    make(map[int]*engine.LevelConfig),
		themes:    make(map[string][]string),
	}

	if err := m.Reload(); err != nil {
		return nil, err
	}

	return m, nil
}

// Reload re-reads the configuration files from disk, replacing the
// cached levels and themes atomically. On any error the previous cache
// is kept.
func (m *Manager) Reload() error {
	levels, err := m.loadLevels()
	if err != nil {
		return fmt.Errorf("failed to load levels: %w", err)
	}

	themes, err := m.loadThemes()
	if err != nil {
		return fmt.Errorf("failed to load themes: %w", err)
	}

	// Cross-check: every theme must cover the largest level
	for _, level := range levels {
		for name, symbols := range themes {
			if err := engine.ValidateThemeCoverage(level, name, symbols); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
			}
		}
	}

	m.mu.Lock()
	m.levels = levels
	m.themes = themes
	m.mu.Unlock()
	return nil
}

// Level returns the configuration for a single level.
func (m *Manager) Level(id int) (*engine.LevelConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	level, exists := m.levels[id]
	if !exists {
		return nil, fmt.Errorf("%w: level %d", ErrLevelNotFound, id)
	}
	return level, nil
}

// Levels returns all configured levels ordered by id.
func (m *Manager) Levels() []*engine.LevelConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()

	levels := make([]*engine.LevelConfig, 0, len(m.levels))
	for _, level := range m.levels {
		levels = append(levels, level)
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i].ID < levels[j].ID })
	return levels
}

// Theme returns the symbol set for a named theme.
func (m *Manager) Theme(name string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	symbols, exists := m.themes[name]
	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}
	return symbols, nil
}

// Themes returns the names of all configured themes, sorted.
func (m *Manager) Themes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.themes))
	for name := range m.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultLevel returns the lowest configured level.
func (m *Manager) DefaultLevel() *engine.LevelConfig {
	levels := m.Levels()
	if len(levels) == 0 {
		return nil
	}
	return levels[0]
}

// SaveLevels writes the current level table to disk.
func (m *Manager) SaveLevels() error {
	m.mu.RLock()
	levels := make([]*engine.LevelConfig, 0, len(m.levels))
	for _, level := range m.levels {
		levels = append(levels, level)
	}
	m.mu.RUnlock()
	sort.Slice(levels, func(i, j int) bool { return levels[i].ID < levels[j].ID })

	data, err := json.MarshalIndent(levels, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal levels: %w", err)
	}

	path := filepath.Join(m.configDir, levelsFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write levels file: %w", err)
	}
	return nil
}

func (m *Manager) loadLevels() (map[int]*engine.LevelConfig, error) {
	path := filepath.Join(m.configDir, levelsFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultLevels(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", levelsFile, err)
	}

	var list []*engine.LevelConfig
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", levelsFile, err)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: %s defines no levels", ErrInvalidConfig, levelsFile)
	}

	levels := make(map[int]*engine.LevelConfig, len(list))
	for _, level := range list {
		if err := engine.ValidateLevelConfig(level); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		if _, dup := levels[level.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate level id %d", ErrInvalidConfig, level.ID)
		}
		levels[level.ID] = level
	}
	return levels, nil
}

func (m *Manager) loadThemes() (map[string][]string, error) {
	path := filepath.Join(m.configDir, themesFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultThemes(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", themesFile, err)
	}

	var themes map[string][]string
	if err := json.Unmarshal(data, &themes); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", themesFile, err)
	}
	if len(themes) == 0 {
		return nil, fmt.Errorf("%w: %s defines no themes", ErrInvalidConfig, themesFile)
	}
	return themes, nil
}
