package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
)

const (
	defaultLogLevel = "warn"
	defaultBus      = "session"

	envPlayer   = "MPRIS_REMOTE_PLAYER"
	envLogLevel = "MPRIS_REMOTE_LOG_LEVEL"
	envBus      = "MPRIS_REMOTE_BUS"
)

// Options carries values given on the command line. Empty fields fall through.
type Options struct {
	// Path overrides the config file location
	Path     string
	Player   string
	LogLevel string
}

// fileConfig mirrors config.toml
type fileConfig struct {
	Player   string `toml:"player"`
	LogLevel string `toml:"log_level"`
	Bus      string `toml:"bus"`
}

// AppConfig holds application configuration
type AppConfig struct {
	player   string
	logLevel string
	bus      string
}

// Load builds the configuration from defaults, the config file, the environment
// and finally the command line options, in that order of precedence.
func Load(opts Options) (*AppConfig, error) {
	cfg := &AppConfig{
		logLevel: defaultLogLevel,
		bus:      defaultBus,
	}

	path := opts.Path
	if path == "" {
		path = configPath()
	}

	// With no home directory and no explicit path there is no file layer
	if path != "" {
		fc, err := readFile(path, opts.Path != "")
		if err != nil {
			return nil, err
		}
		cfg.apply(fc.Player, fc.LogLevel, fc.Bus)
	}
	cfg.apply(os.Getenv(envPlayer), os.Getenv(envLogLevel), os.Getenv(envBus))
	cfg.apply(opts.Player, opts.LogLevel, "")

	switch cfg.bus {
	case "session", "system":
	default:
		return nil, fmt.Errorf("invalid bus %q: must be session or system", cfg.bus)
	}

	return cfg, nil
}

// Log records the effective configuration
func (c *AppConfig) Log(logger *zap.Logger) {
	logger.Debug("Configuration loaded",
		zap.String("player", c.player),
		zap.String("logLevel", c.logLevel),
		zap.String("bus", c.bus))
}

func (c *AppConfig) apply(player, logLevel, bus string) {
	if player != "" {
		c.player = player
	}
	if logLevel != "" {
		c.logLevel = strings.ToLower(logLevel)
	}
	if bus != "" {
		c.bus = strings.ToLower(bus)
	}
}

// readFile decodes the TOML file at path. A missing file is only an error
// when the path was given explicitly.
func readFile(path string, explicit bool) (fileConfig, error) {
	var fc fileConfig

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return fc, nil
		}
		return fc, fmt.Errorf("failed to read config: %w", err)
	}
	if info.IsDir() {
		return fc, fmt.Errorf("config path is a directory: %s", path)
	}

	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return fc, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return fc, nil
}

// configPath returns the default config file location, or "" when neither
// XDG_CONFIG_HOME nor the home directory is known
func configPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "mpris-remote", "config.toml")
	}

	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "mpris-remote", "config.toml")
}

// GetPlayer returns the default player name
func (c *AppConfig) GetPlayer() string {
	return c.player
}

// GetLogLevel returns the log level name
func (c *AppConfig) GetLogLevel() string {
	return c.logLevel
}

// GetBus returns the bus to connect to
func (c *AppConfig) GetBus() string {
	return c.bus
}
