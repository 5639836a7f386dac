package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// ServerURL is the base URL of the board API, including the /api/v1 prefix
	ServerURL string `yaml:"server_url"`

	// WebSocketURL is the realtime endpoint. Derived from ServerURL when empty.
	WebSocketURL string `yaml:"websocket_url"`

	KeyMappings KeyMappings `yaml:"key_mappings"`
	ColorScheme ColorScheme `yaml:"theme"`
}

// DefaultServerURL points at a locally running board server
const DefaultServerURL = "http://localhost:8082/api/v1"

// Load loads config from the user's config directory.
// Returns default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return defaultConfig(), nil
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return defaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	// Fill in any missing values with defaults
	config.applyDefaults()

	return &config, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

func defaultConfig() *Config {
	config := &Config{
		ServerURL:   DefaultServerURL,
		KeyMappings: DefaultKeyMappings(),
		ColorScheme: DefaultColorScheme(),
	}
	config.applyDefaults()
	return config
}

// LogDir returns the directory log files are written to, following the
// same XDG-first resolution as the config file.
func LogDir() (string, error) {
	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		return filepath.Join(stateHome, "tablero", "logs"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".local", "state", "tablero", "logs"), nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "tablero", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "tablero", "config.yaml"), nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.ServerURL == "" {
		c.ServerURL = DefaultServerURL
	}
	if c.WebSocketURL == "" {
		c.WebSocketURL = deriveWebSocketURL(c.ServerURL)
	}
	c.KeyMappings.applyDefaults()
	c.ColorScheme.applyDefaults()
}

// deriveWebSocketURL turns an http(s) API base URL into the matching
// ws(s) realtime endpoint.
func deriveWebSocketURL(serverURL string) string {
	ws := serverURL
	switch {
	case len(ws) > 8 && ws[:8] == "https://":
		ws = "wss://" + ws[8:]
	case len(ws) > 7 && ws[:7] == "http://":
		ws = "ws://" + ws[7:]
	}
	return ws + "/ws"
}
