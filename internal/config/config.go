package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
	"github.com/treykane/logicalroot/internal/logging"
)

const (
	configDirName  = ".logicalroot"
	configFileName = "config.json"
	keymapFileName = "keymap.json"
	exportDirName  = "exports"
)

// Assistant provider names.
const (
	ProviderOpenAI    = "openai"
	ProviderHeuristic = "heuristic"
	ProviderOff       = "off"
)

// Environment variables consulted for the assistant API key, in order, when
// the config does not name one.
const (
	EnvAPIKey       = "LOGICALROOT_API_KEY"
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
)

var ErrNotConfigured = errors.New("logicalroot is not configured")

var log = logging.New("config")

var validate = validator.New()

// Config stores user-defined settings.
type Config struct {
	Assistant    Assistant         `json:"assistant"`
	ExportDir    string            `json:"export_dir"`
	Keybindings  map[string]string `json:"keybindings,omitempty"`
	KeymapFile   string            `json:"keymap_file,omitempty"`
	DisableMouse bool              `json:"disable_mouse,omitempty"`
}

// Assistant configures the suggestion and audit collaborator.
type Assistant struct {
	Provider          string `json:"provider" validate:"oneof=openai heuristic off"`
	BaseURL           string `json:"base_url,omitempty" validate:"omitempty,url"`
	Model             string `json:"model,omitempty"`
	APIKeyEnv         string `json:"api_key_env,omitempty"`
	TimeoutSeconds    int    `json:"timeout_seconds,omitempty" validate:"gte=0,lte=600"`
	RequestsPerMinute int    `json:"requests_per_minute,omitempty" validate:"gte=0,lte=600"`
}

// Default returns the settings used when no config file exists.
func Default() Config {
	cfg := Config{
		Assistant: Assistant{
			Provider:          ProviderHeuristic,
			TimeoutSeconds:    30,
			RequestsPerMinute: 20,
		},
	}
	if dir, err := configDir(); err == nil {
		cfg.ExportDir = filepath.Join(dir, exportDirName)
		cfg.KeymapFile = filepath.Join(dir, keymapFileName)
	}
	return cfg
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, configDirName), nil
}

// ConfigPath returns the configuration file path.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Exists reports whether the config file exists.
func Exists() (bool, error) {
	path, err := ConfigPath()
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat config path: %w", err)
}

// Load reads and validates the saved configuration.
func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	return LoadFrom(path)
}

// LoadFrom reads and validates the configuration at path. Fields missing
// from the file keep their Default values.
func LoadFrom(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, ErrNotConfigured
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	log.Debug("loaded config", "path", path, "provider", cfg.Assistant.Provider)
	return cfg, nil
}

// Save writes configuration to the default path.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(path, cfg)
}

// SaveTo writes configuration to path.
func SaveTo(path string, cfg Config) error {
	if err := cfg.normalize(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	log.Info("saved config", "path", path)
	return nil
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c.Assistant); err != nil {
		return fmt.Errorf("invalid assistant settings: %w", err)
	}
	return nil
}

func (c *Config) normalize() error {
	c.Assistant.Provider = strings.ToLower(strings.TrimSpace(c.Assistant.Provider))
	if c.Assistant.Provider == "" {
		c.Assistant.Provider = ProviderHeuristic
	}
	c.Assistant.BaseURL = strings.TrimSpace(c.Assistant.BaseURL)
	c.Assistant.Model = strings.TrimSpace(c.Assistant.Model)
	if err := c.Validate(); err != nil {
		return err
	}

	if strings.TrimSpace(c.ExportDir) == "" {
		c.ExportDir = Default().ExportDir
	}
	dir, err := NormalizePath(c.ExportDir)
	if err != nil {
		return fmt.Errorf("invalid export_dir: %w", err)
	}
	c.ExportDir = dir

	if strings.TrimSpace(c.KeymapFile) != "" {
		keymap, err := NormalizePath(c.KeymapFile)
		if err != nil {
			return fmt.Errorf("invalid keymap_file: %w", err)
		}
		c.KeymapFile = keymap
	}
	return nil
}

// APIKey resolves the assistant key from the environment.
func (c Config) APIKey() string {
	names := []string{EnvAPIKey, EnvOpenAIAPIKey}
	if env := strings.TrimSpace(c.Assistant.APIKeyEnv); env != "" {
		names = []string{env}
	}
	for _, name := range names {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	return ""
}

// NormalizePath expands ~ and returns a clean absolute path.
func NormalizePath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", errors.New("path is required")
	}

	expanded, err := expandHome(trimmed)
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", err
	}

	return filepath.Clean(abs), nil
}

func expandHome(path string) (string, error) {
	if path == "~" {
		return os.UserHomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
	}
	return path, nil
}
