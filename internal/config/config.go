package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"cocktailgrip/internal/eventbus"
)

// DefaultAPIBaseURL is the public TheCocktailDB v1 API with the shared test key
const DefaultAPIBaseURL = "https://www.thecocktaildb.com/api/json/v1/1"

// Config represents the application configuration
type Config struct {
	Version     int        `toml:"version"`
	APIBaseURL  string     `toml:"api_base_url"`
	StoragePath string     `toml:"storage_path"` // durable key-value storage file
	HTTPTimeout string     `toml:"http_timeout"` // Go duration, "0s" means no timeout
	LogFile     string     `toml:"log_file"`
	LogLevel    string     `toml:"log_level"`
	UISettings  UISettings `toml:"ui"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowIngredients bool `toml:"show_ingredients"`
	ConfirmQuit     bool `toml:"confirm_quit"`
}

// Timeout parses HTTPTimeout. Empty or invalid values mean no timeout.
func (c *Config) Timeout() time.Duration {
	if c.HTTPTimeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.HTTPTimeout)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// Validate checks values that cannot be defaulted silently
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("api_base_url must not be empty")
	}
	if c.StoragePath == "" {
		return fmt.Errorf("storage_path must not be empty")
	}
	if c.HTTPTimeout != "" {
		if _, err := time.ParseDuration(c.HTTPTimeout); err != nil {
			return fmt.Errorf("invalid http_timeout %q: %w", c.HTTPTimeout, err)
		}
	}
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service for the default location
// (<user config dir>/cocktailgrip/config.toml)
func NewConfigService() ConfigService {
	return &configService{
		filePath: filepath.Join(appDir(), "config.toml"),
	}
}

// NewConfigServiceAt creates a config service for an explicit file path
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

// WithBus attaches an event bus to a config service
func WithBus(svc ConfigService, bus eventbus.EventBus) ConfigService {
	if cs, ok := svc.(*configService); ok {
		cs.bus = bus
	}
	return svc
}

// Path returns the file this service loads from and saves to
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file. A missing file yields the
// default configuration, which is written back so the user can edit it.
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := cs.Save(cfg); err != nil {
			return nil, err
		}
		cs.publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
		return cfg, nil
	}

	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}

	cs.publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	cs.publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	return nil
}

// LoadFromPath loads configuration from a specific path. Keys missing from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (cs *configService) publish(event eventbus.DomainEvent) {
	if cs.bus != nil {
		cs.bus.Publish(event)
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:     1,
		APIBaseURL:  DefaultAPIBaseURL,
		StoragePath: filepath.Join(appDir(), "storage.json"),
		HTTPTimeout: "0s",
		LogFile:     "cocktailgrip.log",
		LogLevel:    "info",
		UISettings: UISettings{
			ShowIngredients: true,
			ConfirmQuit:     false,
		},
	}
}

// appDir returns the per-user application directory
func appDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "cocktailgrip")
}
