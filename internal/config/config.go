// Package config holds application configuration: Fyne preferences for the
// GUI and a viper-backed file/env configuration for the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ytget/app-inspector/internal/retry"
)

const appName = "app-inspector"

// EnvPrefix prefixes environment overrides of config keys
const EnvPrefix = "APPINSPECTOR"

// Config is the CLI configuration
type Config struct {
	Log           LogConfig           `mapstructure:"log"`
	Device        DeviceConfig        `mapstructure:"device"`
	Checksum      ChecksumConfig      `mapstructure:"checksum"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	Metrics       MetricsConfig       `mapstructure:"metrics"`
	UI            UIConfig            `mapstructure:"ui"`
}

// LogConfig controls the structured logger
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DeviceConfig selects how shell commands reach the device.
// On Android commands always run locally. Elsewhere they go through adb,
// and an empty ADBPath uses "adb" from PATH.
type DeviceConfig struct {
	Serial  string `mapstructure:"serial"`
	ADBPath string `mapstructure:"adb_path"`
}

// ChecksumConfig is the retry policy of checksum computation
type ChecksumConfig struct {
	MaxAttempts  int           `mapstructure:"max_attempts"`
	InitialDelay time.Duration `mapstructure:"initial_delay"`
	MaxDelay     time.Duration `mapstructure:"max_delay"`
	Factor       float64       `mapstructure:"factor"`
}

// Policy converts the section into a retry policy
func (c ChecksumConfig) Policy() retry.Policy {
	return retry.Policy{
		MaxAttempts:  c.MaxAttempts,
		InitialDelay: c.InitialDelay,
		MaxDelay:     c.MaxDelay,
		Factor:       c.Factor,
	}
}

// NotificationsConfig sizes the per-listener notification buffers
type NotificationsConfig struct {
	Buffer int `mapstructure:"buffer"`
}

// MetricsConfig enables the Prometheus endpoint when Addr is set
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// UIConfig holds presentation settings
type UIConfig struct {
	Language string `mapstructure:"language"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Device: DeviceConfig{},
		Checksum: ChecksumConfig{
			MaxAttempts:  2,
			InitialDelay: 200 * time.Millisecond,
			MaxDelay:     500 * time.Millisecond,
			Factor:       2.0,
		},
		Notifications: NotificationsConfig{
			Buffer: DefaultNotificationBuffer,
		},
		Metrics: MetricsConfig{},
		UI: UIConfig{
			Language: "en",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("log.level", defaults.Log.Level)
	viper.SetDefault("log.format", defaults.Log.Format)

	viper.SetDefault("device.serial", defaults.Device.Serial)
	viper.SetDefault("device.adb_path", defaults.Device.ADBPath)

	viper.SetDefault("checksum.max_attempts", defaults.Checksum.MaxAttempts)
	viper.SetDefault("checksum.initial_delay", defaults.Checksum.InitialDelay)
	viper.SetDefault("checksum.max_delay", defaults.Checksum.MaxDelay)
	viper.SetDefault("checksum.factor", defaults.Checksum.Factor)

	viper.SetDefault("notifications.buffer", defaults.Notifications.Buffer)
	viper.SetDefault("metrics.addr", defaults.Metrics.Addr)
	viper.SetDefault("ui.language", defaults.UI.Language)
}

// ReadInConfig points the global viper instance at cfgFile, or at
// config.yaml in the config directory when cfgFile is empty, and binds
// APPINSPECTOR_* environment variables. A missing file is not an error.
func ReadInConfig(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix(EnvPrefix)
	// e.g. APPINSPECTOR_DEVICE_SERIAL for device.serial
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every invalid field
func (c *Config) Validate() error {
	var errs []error
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}
	if err := c.Checksum.Policy().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("checksum: %w", err))
	}
	if c.Notifications.Buffer < MinNotificationBuffer {
		errs = append(errs, fmt.Errorf("notifications.buffer must be at least %d, got %d", MinNotificationBuffer, c.Notifications.Buffer))
	}
	return errors.Join(errs...)
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + appName
	}
	return filepath.Join(home, ".config", appName)
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// StateFilePath returns the path of the CLI's persisted selection
func StateFilePath() string {
	return filepath.Join(ConfigDir(), "state.yaml")
}
