package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		JWTSecret:  "secure-secret-at-least-32-chars-long",
		Port:       "8375",
		BaseURL:    "http://localhost:8375",
		DBPassword: "secure-password",
		DBSSLMode:  "require",
		RedisURL:   "localhost:6379",
		Env:        "development",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"valid development config", func(c *Config) {}, false},
		{"missing port", func(c *Config) { c.Port = "" }, true},
		{"missing JWT secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"relative base URL", func(c *Config) { c.BaseURL = "localhost:8375" }, true},
		{"empty base URL is allowed", func(c *Config) { c.BaseURL = "" }, false},
		{"default JWT secret in production", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = "your-secret-key-change-in-production"
		}, true},
		{"short JWT secret in production", func(c *Config) {
			c.Env = "prod"
			c.JWTSecret = "short"
		}, true},
		{"default DB password in production", func(c *Config) {
			c.Env = "production"
			c.DBPassword = "password"
		}, true},
		{"strong secrets in production", func(c *Config) { c.Env = "production" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8375", cfg.Port)
	assert.Equal(t, "http://localhost:8375", cfg.BaseURL)
	assert.Equal(t, "typehero", cfg.DBName)
	assert.Equal(t, "development", cfg.Env)
	assert.False(t, cfg.TracingEnabled)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("PORT", "9000")
	t.Setenv("DB_NAME", "typehero_test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "typehero_test", cfg.DBName)
}
