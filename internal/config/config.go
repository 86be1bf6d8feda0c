// Package config provides configuration management for the VibeGen studio
// service. Configuration is loaded from environment variables with sensible
// defaults; a .env file in the working directory is honored when present.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	// Default values
	DefaultPort     = 8790
	DefaultLogLevel = "info"
	DefaultDataDir  = ".vibegen"

	// DefaultGatewayURL is the hosted completion gateway.
	DefaultGatewayURL = "https://ai.gateway.lovable.dev"

	// Environment variable names
	EnvPort       = "VIBEGEN_PORT"
	EnvLogLevel   = "VIBEGEN_LOG_LEVEL"
	EnvDataDir    = "VIBEGEN_DATA_DIR"
	EnvGatewayURL = "VIBEGEN_GATEWAY_URL"
	EnvGatewayKey = "VIBEGEN_GATEWAY_KEY"
	EnvModel      = "VIBEGEN_MODEL"
	EnvStylesFile = "VIBEGEN_STYLES_FILE"
	EnvRedisAddr  = "VIBEGEN_REDIS_ADDR"
	EnvHeadless   = "VIBEGEN_HEADLESS"

	// Database filename
	DBFilename = "vibegen.db"
)

// Config defines the application configuration interface
type Config interface {
	Port() int
	LogLevel() string
	DataDir() string
	DBPath() string
	GatewayURL() string
	GatewayKey() string
	Model() string
	StylesFile() string
	RedisAddr() string
	Headless() bool
}

// EnvConfig reads configuration from environment variables
type EnvConfig struct {
	port       int
	logLevel   string
	dataDir    string
	gatewayURL string
	gatewayKey string
	model      string
	stylesFile string
	redisAddr  string
	headless   bool
}

// New creates a new EnvConfig with defaults and environment variable
// overrides. A .env file is loaded first if one exists; real environment
// variables win over .env entries.
func New() (*EnvConfig, error) {
	// godotenv never overrides variables already set in the environment.
	_ = godotenv.Load()

	cfg := &EnvConfig{
		port:       DefaultPort,
		logLevel:   DefaultLogLevel,
		dataDir:    defaultDataDir(),
		gatewayURL: DefaultGatewayURL,
	}

	if p := os.Getenv(EnvPort); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvPort, err)
		}
		if port < 1 || port > 65535 {
			return nil, fmt.Errorf("invalid %s: port must be between 1 and 65535", EnvPort)
		}
		cfg.port = port
	}

	if ll := os.Getenv(EnvLogLevel); ll != "" {
		cfg.logLevel = ll
	}

	if dd := os.Getenv(EnvDataDir); dd != "" {
		cfg.dataDir = dd
	}

	if gw := os.Getenv(EnvGatewayURL); gw != "" {
		cfg.gatewayURL = gw
	}

	cfg.gatewayKey = os.Getenv(EnvGatewayKey)
	cfg.model = os.Getenv(EnvModel)
	cfg.stylesFile = os.Getenv(EnvStylesFile)
	cfg.redisAddr = os.Getenv(EnvRedisAddr)

	if h := os.Getenv(EnvHeadless); h != "" {
		headless, err := strconv.ParseBool(h)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvHeadless, err)
		}
		cfg.headless = headless
	}

	return cfg, nil
}

// Port returns the HTTP server port
func (c *EnvConfig) Port() int {
	return c.port
}

// LogLevel returns the log level (debug, info, warn, error)
func (c *EnvConfig) LogLevel() string {
	return c.logLevel
}

// DataDir returns the data directory path
func (c *EnvConfig) DataDir() string {
	return c.dataDir
}

// DBPath returns the full path to the SQLite database file
func (c *EnvConfig) DBPath() string {
	return filepath.Join(c.dataDir, DBFilename)
}

// GatewayURL returns the completion gateway base URL
func (c *EnvConfig) GatewayURL() string {
	return c.gatewayURL
}

// GatewayKey returns the completion gateway API key
func (c *EnvConfig) GatewayKey() string {
	return c.gatewayKey
}

// Model returns the model override, or empty for the client default
func (c *EnvConfig) Model() string {
	return c.model
}

// StylesFile returns the optional style overrides YAML path
func (c *EnvConfig) StylesFile() string {
	return c.stylesFile
}

// RedisAddr returns the optional redis address for event publishing
func (c *EnvConfig) RedisAddr() string {
	return c.redisAddr
}

// Headless reports whether the tray icon should be skipped
func (c *EnvConfig) Headless() bool {
	return c.headless
}

// defaultDataDir returns the default data directory path
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home is not available
		return DefaultDataDir
	}
	return filepath.Join(home, DefaultDataDir)
}

// Version information (set at build time via ldflags)
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)
