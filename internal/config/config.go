package config

import (
	"fmt"
	"log"
	"maps"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// DefaultTheme is used when the config names no theme
const DefaultTheme = "default"

// Setting keys read by the grid
const (
	KeyRows           = "rows"
	KeyColumns        = "columns"
	KeyFloatingTop    = "floating_top"
	KeyFloatingBottom = "floating_bottom"
	KeyFloatingLeft   = "floating_left"
	KeyFloatingRight  = "floating_right"
	KeyDateFormat     = "date_format"
	KeyTree           = "tree"
)

// Config holds application configuration
type Config struct {
	Theme    string            `toml:"theme"`
	Settings map[string]string `toml:"settings"`

	// Session settings (not persisted to TOML, overrides persisted settings)
	sessionSettings map[string]string
}

// GridSettings are the typed grid settings with defaults applied.
type GridSettings struct {
	Rows           int
	Columns        int
	FloatingTop    int
	FloatingBottom int
	FloatingLeft   int
	FloatingRight  int
	DateFormat     string
	Tree           bool
}

// Load loads the config file from the standard location
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return defaultConfig(), nil
	}
	return LoadFromFile(configPath)
}

// LoadFromFile loads config from a specific file. A missing file gives the
// default config.
func LoadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := defaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if config.Theme == "" {
		config.Theme = DefaultTheme
	}
	if config.Settings == nil {
		config.Settings = make(map[string]string)
	}
	return config, nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// defaultConfig returns the default configuration
func defaultConfig() *Config {
	return &Config{
		Theme:           DefaultTheme,
		Settings:        make(map[string]string),
		sessionSettings: make(map[string]string),
	}
}

// GetConfigDir returns the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "tui-grid"), nil
}

// SetSession sets a value for this session only. It overrides the persisted
// setting and is never saved.
func (c *Config) SetSession(key, value string) {
	if c.sessionSettings == nil {
		c.sessionSettings = make(map[string]string)
	}
	c.sessionSettings[key] = value
}

// Get retrieves a configuration value, checking session settings first.
// Returns empty string if not found in either source.
func (c *Config) Get(key string) string {
	if val, ok := c.sessionSettings[key]; ok {
		return val
	}
	return c.Settings[key]
}

// GetInt returns the setting as an int, or def when it is unset or not a
// number.
func (c *Config) GetInt(key string, def int) int {
	val := c.Get(key)
	if val == "" {
		return def
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		log.Printf("Ignoring setting %s=%q: %v", key, val, err)
		return def
	}
	return n
}

// GetBool returns the setting as a bool, or def when it is unset or not a
// boolean.
func (c *Config) GetBool(key string, def bool) bool {
	val := c.Get(key)
	if val == "" {
		return def
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		log.Printf("Ignoring setting %s=%q: %v", key, val, err)
		return def
	}
	return b
}

// DefaultRows and DefaultColumns size the grid when the config does not.
const (
	DefaultRows    = 1_000_000
	DefaultColumns = 1_000
)

// Grid returns the grid settings. Counts below zero are raised to zero. An
// empty DateFormat leaves the model's default.
func (c *Config) Grid() GridSettings {
	count := func(key string, def int) int {
		return max(0, c.GetInt(key, def))
	}
	return GridSettings{
		Rows:           count(KeyRows, DefaultRows),
		Columns:        count(KeyColumns, DefaultColumns),
		FloatingTop:    count(KeyFloatingTop, 0),
		FloatingBottom: count(KeyFloatingBottom, 0),
		FloatingLeft:   count(KeyFloatingLeft, 0),
		FloatingRight:  count(KeyFloatingRight, 0),
		DateFormat:     c.Get(KeyDateFormat),
		Tree:           c.GetBool(KeyTree, false),
	}
}

// GetAll returns all configuration values (both persisted and session)
// Session settings override persisted settings with the same key
func (c *Config) GetAll() map[string]string {
	result := make(map[string]string, len(c.Settings)+len(c.sessionSettings))
	maps.Copy(result, c.Settings)
	maps.Copy(result, c.sessionSettings)
	return result
}

// SaveToFile persists the theme and the Settings map, not the session
// settings.
func (c *Config) SaveToFile(filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Save persists the configuration to the standard location
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	return c.SaveToFile(configPath)
}
