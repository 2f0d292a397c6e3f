package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.RADIUS.Secret = "testing123"
	ApplyDefaults(cfg)
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "stdout", cfg.Logging.Output)
	assert.Equal(t, "builtin", cfg.Dictionary.Source)
	assert.Equal(t, 128*1024, cfg.RADIUS.MaxAttrLen)
}

func TestValidate_ValidConfig(t *testing.T) {
	require.NoError(t, Validate(validConfig()))
}

func TestValidate_MissingSecret(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	assert.Error(t, Validate(cfg))
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "VERBOSE"
	assert.Error(t, Validate(cfg))
}

func TestValidate_FileDictionaryRequiresPath(t *testing.T) {
	cfg := validConfig()
	cfg.Dictionary.Source = "file"
	assert.Error(t, Validate(cfg))

	cfg.Dictionary.Path = "/etc/raddecode/dictionary"
	assert.NoError(t, Validate(cfg))
}

func TestValidate_S3DictionaryRequiresBucketAndKey(t *testing.T) {
	cfg := validConfig()
	cfg.Dictionary.Source = "s3"
	assert.Error(t, Validate(cfg))

	cfg.Dictionary.S3.Bucket = "dictionaries"
	cfg.Dictionary.S3.Key = "radius/dictionary"
	assert.NoError(t, Validate(cfg))
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("RADDECODE_RADIUS_SECRET", "testing123")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "testing123", cfg.RADIUS.Secret)
	assert.Equal(t, "builtin", cfg.Dictionary.Source)
}
