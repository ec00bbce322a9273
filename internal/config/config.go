package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	DB     DBConfig     `yaml:"db"`
	Log    LogConfig    `yaml:"log"`
	Model  ModelConfig  `yaml:"model"`
	Bridge BridgeConfig `yaml:"bridge"`
	MCP    MCPConfig    `yaml:"mcp"`
}

type ServerConfig struct {
	Host string `yaml:"host" env:"DOCUGEN_SERVER_HOST"`
	Port int    `yaml:"port" env:"DOCUGEN_SERVER_PORT"`
}

type DBConfig struct {
	Path string `yaml:"path" env:"DOCUGEN_DB_PATH"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"DOCUGEN_LOG_LEVEL"`
	Path  string `yaml:"path" env:"DOCUGEN_LOG_PATH"`
}

// ModelConfig configures the generative model and its call policy.
type ModelConfig struct {
	APIKey      string        `yaml:"api_key" env:"DOCUGEN_MODEL_API_KEY"`
	Name        string        `yaml:"name" env:"DOCUGEN_MODEL_NAME"`
	BaseURL     string        `yaml:"base_url" env:"DOCUGEN_MODEL_BASE_URL"`
	Timeout     time.Duration `yaml:"timeout" env:"DOCUGEN_MODEL_TIMEOUT"`
	MaxAttempts int           `yaml:"max_attempts" env:"DOCUGEN_MODEL_MAX_ATTEMPTS"`
}

// BridgeConfig holds the shared secret expected from field tools.
type BridgeConfig struct {
	Token string `yaml:"token" env:"DOCUGEN_BRIDGE_TOKEN"`
}

// MCPConfig configures the MCP endpoint. An empty AuthToken disables bearer auth.
type MCPConfig struct {
	Enabled   bool   `yaml:"enabled" env:"DOCUGEN_MCP_ENABLED"`
	AuthToken string `yaml:"auth_token" env:"DOCUGEN_MCP_AUTH_TOKEN"`
}

// Default returns the configuration used before any file or environment override.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "docugen.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Model: ModelConfig{
			Name:        "gemini-2.5-flash",
			Timeout:     90 * time.Second,
			MaxAttempts: 3,
		},
		MCP: MCPConfig{
			Enabled: true,
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
// It does not validate; callers run Validate for the surface they start.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("DOCUGEN_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.Model.APIKey == "" {
		cfg.Model.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// Validate checks everything the HTTP server needs before it starts.
func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Model.APIKey) == "" {
		errs = append(errs, errors.New("model API key is required (DOCUGEN_MODEL_API_KEY or GEMINI_API_KEY)"))
	}
	if strings.TrimSpace(c.Bridge.Token) == "" {
		errs = append(errs, errors.New("bridge token is required (DOCUGEN_BRIDGE_TOKEN)"))
	}
	if err := c.ValidateStorage(); err != nil {
		errs = append(errs, err)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid server port %d", c.Server.Port))
	}
	if c.Model.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("model timeout must be positive, got %s", c.Model.Timeout))
	}
	if c.Model.MaxAttempts <= 0 {
		errs = append(errs, fmt.Errorf("model max attempts must be positive, got %d", c.Model.MaxAttempts))
	}

	return errors.Join(errs...)
}

// ValidateStorage checks the settings shared by every command touching the database.
func (c Config) ValidateStorage() error {
	if strings.TrimSpace(c.DB.Path) == "" {
		return errors.New("database path is required (DOCUGEN_DB_PATH)")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	return nil
}
