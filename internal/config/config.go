// Package config loads the settings of the inputhook demo and relay.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"inputhook/internal/logger"
)

// Config represents the application configuration
type Config struct {
	Hook    HookConfig    `json:"hook" toml:"hook"`
	Relay   RelayConfig   `json:"relay" toml:"relay"`
	API     APIConfig     `json:"api" toml:"api"`
	Hotkeys HotkeyConfig  `json:"hotkeys" toml:"hotkeys"`
	Logging LoggingConfig `json:"logging" toml:"logging"`
}

// HookConfig tunes the hook engine
type HookConfig struct {
	// MultiClickMS overrides the platform double-click interval; 0 keeps it.
	MultiClickMS int `json:"multi_click_ms" toml:"multi_click_ms"`

	// ClickTolerancePX is how far the pointer may travel between clicks
	// that still count as one multi-click.
	ClickTolerancePX int `json:"click_tolerance_px" toml:"click_tolerance_px"`

	// EnableInjection allows PostEvent from the API and the relay.
	EnableInjection bool `json:"enable_injection" toml:"enable_injection"`
}

// Relay roles
const (
	RoleNone    = ""
	RoleCapture = "capture"
	RoleInject  = "inject"
)

// RelayConfig forwards events between two machines
type RelayConfig struct {
	// Role is "capture" (send local events), "inject" (post received
	// events) or empty to disable the relay.
	Role string `json:"role" toml:"role"`

	// Peer is the capture side's "host:port", used by the inject side.
	Peer string `json:"peer,omitempty" toml:"peer,omitempty"`

	// Port is the UDP port the capture side listens on.
	Port int `json:"port" toml:"port"`
}

// APIConfig controls the HTTP/WebSocket server
type APIConfig struct {
	Enabled bool   `json:"enabled" toml:"enabled"`
	Port    int    `json:"port" toml:"port"`
	Token   string `json:"token,omitempty" toml:"token,omitempty"`
}

// HotkeyConfig lists the global chords
type HotkeyConfig struct {
	// KillSwitch disables the hook when pressed, e.g. "Ctrl+Alt+Shift+Escape".
	KillSwitch string `json:"kill_switch" toml:"kill_switch"`
}

// LoggingConfig selects the minimum level printed by the demo
type LoggingConfig struct {
	Level string `json:"level" toml:"level"`
}

// DefaultConfig returns a new Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Hook: HookConfig{
			ClickTolerancePX: 4,
			EnableInjection:  true,
		},
		Relay: RelayConfig{
			Port: 18081,
		},
		API: APIConfig{
			Enabled: false,
			Port:    18080,
		},
		Hotkeys: HotkeyConfig{
			KillSwitch: "Ctrl+Alt+Shift+Escape",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports settings that cannot work together.
func (c *Config) Validate() error {
	switch c.Relay.Role {
	case RoleNone, RoleCapture:
	case RoleInject:
		if c.Relay.Peer == "" {
			return fmt.Errorf("config: relay role %q needs a peer", c.Relay.Role)
		}
	default:
		return fmt.Errorf("config: unknown relay role %q", c.Relay.Role)
	}
	if c.Hook.MultiClickMS < 0 || c.Hook.ClickTolerancePX < 0 {
		return fmt.Errorf("config: click settings must not be negative")
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Manager handles loading and saving configuration
type Manager struct {
	mu         sync.Mutex
	configPath string
	config     *Config
	onChanged  func()
}

// NewManager creates a manager for the default configuration file.
func NewManager() (*Manager, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return NewManagerAt(configPath), nil
}

// NewManagerAt creates a manager for path. Files ending in .toml are read
// and written as TOML, anything else as JSON.
func NewManagerAt(path string) *Manager {
	return &Manager{
		configPath: path,
		config:     DefaultConfig(),
	}
}

// getConfigPath returns the path to the configuration file
func getConfigPath() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, "Library", "Application Support", "inputhook")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		configDir = filepath.Join(appData, "inputhook")
	default:
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(dir, "inputhook")
	}

	return filepath.Join(configDir, "config.json"), nil
}

// Path returns the file the manager reads and writes.
func (m *Manager) Path() string { return m.configPath }

func (m *Manager) isTOML() bool {
	return strings.EqualFold(filepath.Ext(m.configPath), ".toml")
}

// Load reads the configuration from disk. A missing file keeps the defaults.
func (m *Manager) Load() error {
	m.mu.Lock()
	data, err := os.ReadFile(m.configPath)
	if os.IsNotExist(err) {
		m.mu.Unlock()
		return nil
	}
	if err != nil {
		m.mu.Unlock()
		return err
	}

	cfg := DefaultConfig()
	if m.isTOML() {
		_, err = toml.Decode(string(data), cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		m.mu.Unlock()
		return fmt.Errorf("config: load %s: %w", m.configPath, err)
	}
	m.config = cfg
	onChanged := m.onChanged
	m.mu.Unlock()

	if onChanged != nil {
		onChanged()
	}
	return nil
}

// Save writes the configuration to disk
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var (
		data []byte
		err  error
	)
	if m.isTOML() {
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(m.config)
		data = buf.Bytes()
	} else {
		data, err = json.MarshalIndent(m.config, "", "  ")
	}
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(m.configPath), 0755); err != nil {
		return err
	}
	logger.Infof("[CONFIG] Saving configuration to %s (%d bytes)", m.configPath, len(data))
	return os.WriteFile(m.configPath, data, 0644)
}

// Get returns a copy of the current configuration
func (m *Manager) Get() Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.config
}

// Set updates the configuration
func (m *Manager) Set(config *Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	c := *config
	m.config = &c
	onChanged := m.onChanged
	m.mu.Unlock()
	if onChanged != nil {
		onChanged()
	}
	return nil
}

// RegisterChangeCallback registers a function to be called when config changes
func (m *Manager) RegisterChangeCallback(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChanged = fn
}
