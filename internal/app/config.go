package app

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/zerowrap"
	"github.com/spf13/viper"

	"github.com/bnema/citybike/internal/adapters/out/httpfetch"
	"github.com/bnema/citybike/internal/domain"
)

// previewEnabled is the literal value of the preview flag that disables
// network calls.
const previewEnabled = "1"

// Config holds the application configuration.
type Config struct {
	API struct {
		URL       string        `mapstructure:"url"`
		Timeout   time.Duration `mapstructure:"timeout"`
		UserAgent string        `mapstructure:"user_agent"`
	} `mapstructure:"api"`

	// Preview is set by design-time hosts; "1" disables network calls.
	Preview string `mapstructure:"preview"`

	Logging struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
		File   struct {
			Enabled    bool   `mapstructure:"enabled"`
			Path       string `mapstructure:"path"`
			MaxSize    int    `mapstructure:"max_size"`
			MaxBackups int    `mapstructure:"max_backups"`
			MaxAge     int    `mapstructure:"max_age"`
		} `mapstructure:"file"`
	} `mapstructure:"logging"`
}

// RunNetworkCalls reports whether the presenter may fetch from the network.
func (c Config) RunNetworkCalls() bool {
	return c.Preview != previewEnabled
}

// Overrides are command-line values that take precedence over the config.
type Overrides struct {
	ConfigPath string
	URL        string
	Preview    bool
	LogLevel   string
}

// initConfig loads configuration from file and environment, then applies
// command-line overrides.
func initConfig(o Overrides) (Config, error) {
	v := viper.New()
	if err := loadConfig(v, o.ConfigPath); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if o.URL != "" {
		cfg.API.URL = o.URL
	}
	if o.Preview {
		cfg.Preview = previewEnabled
	}
	if o.LogLevel != "" {
		cfg.Logging.Level = o.LogLevel
	}

	if cfg.API.Timeout <= 0 {
		return Config{}, fmt.Errorf("api.timeout must be positive, got %s", cfg.API.Timeout)
	}

	return cfg, nil
}

// loadConfig loads configuration from file and sets defaults.
func loadConfig(v *viper.Viper, configPath string) error {
	v.SetDefault("api.url", domain.NetworksURL)
	v.SetDefault("api.timeout", httpfetch.DefaultTimeout)
	v.SetDefault("api.user_agent", "")
	v.SetDefault("preview", "")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file.enabled", false)
	v.SetDefault("logging.file.path", "")
	v.SetDefault("logging.file.max_size", 10)
	v.SetDefault("logging.file.max_backups", 3)
	v.SetDefault("logging.file.max_age", 28)

	ConfigureViper(v, configPath)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("CITYBIKE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return nil
}

// initLogger initializes the zerowrap logger. Interactive sessions own the
// terminal, so without a log file they log nothing.
func initLogger(cfg Config, interactive bool) (zerowrap.Logger, func(), error) {
	logConfig := zerowrap.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	}

	if cfg.Logging.File.Enabled {
		logPath := cfg.Logging.File.Path
		if logPath == "" {
			logPath = filepath.Join(DefaultDataDir(), "citybike.log")
		}

		log, cleanup, err := zerowrap.NewWithFile(logConfig, zerowrap.FileConfig{
			Enabled:    true,
			Path:       logPath,
			MaxSize:    cfg.Logging.File.MaxSize,
			MaxBackups: cfg.Logging.File.MaxBackups,
			MaxAge:     cfg.Logging.File.MaxAge,
			Compress:   true,
		})
		if err != nil {
			return zerowrap.Default(), func() {}, fmt.Errorf("failed to create logger with file: %w", err)
		}
		return log, cleanup, nil
	}

	if interactive {
		logConfig.Level = "disabled"
	}

	return zerowrap.New(logConfig), func() {}, nil
}
