// Package config loads raddecode's static configuration: logging, tracing,
// metrics, the HTTP debug server, the audit trail database, and where the
// attribute dictionary comes from. Dynamic state — the dictionary's own
// contents, the unknown-descriptor cache — lives elsewhere; this package
// only resolves the server's own settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is raddecode's top-level configuration.
//
// Sources, highest precedence first:
//  1. Environment variables (RADDECODE_*)
//  2. Configuration file (YAML)
//  3. Defaults
type Config struct {
	Logging    LoggingConfig    `mapstructure:"logging" validate:"required" yaml:"logging"`
	Telemetry  TelemetryConfig  `mapstructure:"telemetry" yaml:"telemetry"`
	Metrics    MetricsConfig    `mapstructure:"metrics" yaml:"metrics"`
	HTTPAPI    HTTPAPIConfig    `mapstructure:"http_api" yaml:"http_api"`
	Dictionary DictionaryConfig `mapstructure:"dictionary" validate:"required" yaml:"dictionary"`
	Audit      AuditConfig      `mapstructure:"audit" yaml:"audit"`
	RADIUS     RADIUSConfig     `mapstructure:"radius" validate:"required" yaml:"radius"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error" yaml:"level"`
	Format string `mapstructure:"format" validate:"required,oneof=text json" yaml:"format"`
	Output string `mapstructure:"output" validate:"required" yaml:"output"`
}

// TelemetryConfig controls OpenTelemetry tracing around DecodePair.
type TelemetryConfig struct {
	Enabled    bool    `mapstructure:"enabled" yaml:"enabled"`
	Endpoint   string  `mapstructure:"endpoint" yaml:"endpoint"`
	Insecure   bool    `mapstructure:"insecure" yaml:"insecure"`
	SampleRate float64 `mapstructure:"sample_rate" validate:"omitempty,gte=0,lte=1" yaml:"sample_rate"`

	Profiling ProfilingConfig `mapstructure:"profiling" yaml:"profiling"`
}

// ProfilingConfig controls opt-in Pyroscope continuous profiling.
type ProfilingConfig struct {
	Enabled      bool     `mapstructure:"enabled" yaml:"enabled"`
	Endpoint     string   `mapstructure:"endpoint" yaml:"endpoint"`
	ProfileTypes []string `mapstructure:"profile_types" yaml:"profile_types"`
}

// MetricsConfig configures the Prometheus metrics endpoint.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	Port    int  `mapstructure:"port" validate:"omitempty,min=1,max=65535" yaml:"port"`
}

// HTTPAPIConfig configures the decode/inspect debug server.
type HTTPAPIConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Addr    string `mapstructure:"addr" yaml:"addr"`
}

// DictionaryConfig controls where attribute descriptors are loaded from.
type DictionaryConfig struct {
	// Source is one of "builtin", "file", "s3".
	Source string `mapstructure:"source" validate:"required,oneof=builtin file s3" yaml:"source"`

	// Path is the dictionary file path (Source=file). Source=s3 reads its
	// object key from S3.Key instead.
	Path string `mapstructure:"path" yaml:"path"`

	// Watch enables fsnotify-based live reload when Source=file.
	Watch bool `mapstructure:"watch" yaml:"watch"`

	S3 S3Config `mapstructure:"s3" yaml:"s3"`

	// UnknownCachePath names a badger directory for the unknown-descriptor
	// cache (pkg/radius/dictionary/unknowncache). No command reads this
	// setting: the cache is not opened whether it is empty or set.
	UnknownCachePath string `mapstructure:"unknown_cache_path" yaml:"unknown_cache_path"`
}

// S3Config names the object storage location of a shared dictionary file.
type S3Config struct {
	Bucket string `mapstructure:"bucket" yaml:"bucket"`
	Key    string `mapstructure:"key" yaml:"key"`
	Region string `mapstructure:"region" yaml:"region"`
}

// AuditConfig controls the decode audit trail database.
type AuditConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	DSN     string `mapstructure:"dsn" yaml:"dsn"`
}

// RADIUSConfig holds the shared secret and vector material needed to
// unwrap obfuscated attribute values.
type RADIUSConfig struct {
	Secret              string        `mapstructure:"secret" validate:"required" yaml:"secret"`
	TunnelPasswordZeros bool          `mapstructure:"tunnel_password_zeros" yaml:"tunnel_password_zeros"`
	MaxAttrLen          int           `mapstructure:"max_attr_len" validate:"omitempty,gt=0" yaml:"max_attr_len"`
	ShutdownTimeout     time.Duration `mapstructure:"shutdown_timeout" validate:"omitempty,gt=0" yaml:"shutdown_timeout"`
}

// Load loads configuration from configPath (or the default location if
// empty), environment variables, and defaults, then validates it.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)

	found, err := readConfigFile(v)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if !found {
		ApplyDefaults(cfg)
		if err := Validate(cfg); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
		return cfg, nil
	}

	if err := v.Unmarshal(cfg, viper.DecodeHook(durationDecodeHook())); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// MustLoad loads configuration, returning an actionable error pointing the
// operator at `raddecode init` if no config file exists at the default path.
func MustLoad(configPath string) (*Config, error) {
	if configPath == "" {
		if !DefaultConfigExists() {
			return nil, fmt.Errorf("no configuration file found at default location: %s\n\n"+
				"initialize one first:\n  raddecode init\n\n"+
				"or point at an existing file:\n  raddecode <command> --config /path/to/config.yaml",
				GetDefaultConfigPath())
		}
		configPath = GetDefaultConfigPath()
	} else if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}
	return Load(configPath)
}

// SaveConfig writes cfg to path in YAML, with owner-only permissions since
// RADIUS.Secret is sensitive.
func SaveConfig(cfg *Config, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func setupViper(v *viper.Viper, configPath string) {
	v.SetEnvPrefix("RADDECODE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		return
	}
	v.AddConfigPath(getConfigDir())
	v.SetConfigName("config")
	v.SetConfigType("yaml")
}

func readConfigFile(v *viper.Viper) (bool, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return false, nil
		}
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read config file: %w", err)
	}
	return true, nil
}

// durationDecodeHook lets config files write human-readable durations like
// "30s" or "5m" for time.Duration fields instead of raw nanosecond counts.
func durationDecodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if to != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}
		switch v := data.(type) {
		case string:
			return time.ParseDuration(v)
		case int:
			return time.Duration(v), nil
		case int64:
			return time.Duration(v), nil
		case float64:
			return time.Duration(v), nil
		default:
			return data, nil
		}
	}
}

func getConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "raddecode")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "raddecode")
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}

// DefaultConfigExists reports whether a config file exists at the default location.
func DefaultConfigExists() bool {
	_, err := os.Stat(GetDefaultConfigPath())
	return err == nil
}

// GetConfigDir exposes the configuration directory for the init command.
func GetConfigDir() string {
	return getConfigDir()
}

var validate = validator.New()

// Validate runs struct-tag validation over cfg.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return err
	}
	if cfg.Dictionary.Source == "file" && cfg.Dictionary.Path == "" {
		return fmt.Errorf("dictionary.path is required when dictionary.source is \"file\"")
	}
	if cfg.Dictionary.Source == "s3" && (cfg.Dictionary.S3.Bucket == "" || cfg.Dictionary.S3.Key == "") {
		return fmt.Errorf("dictionary.s3.bucket and dictionary.s3.key are required when dictionary.source is \"s3\"")
	}
	return nil
}
