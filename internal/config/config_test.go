package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Env:                "development",
		Port:               "8000",
		DBPassword:         "secure-password",
		DBSSLMode:          "require",
		AccessTokenSecret:  "access-secret-at-least-32-chars-long!!",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenSecret: "refresh-secret-at-least-32-chars-long!",
		RefreshTokenExpiry: 240 * time.Hour,
		MediaProvider:      "cloudinary",
		MaxUploadSizeMB:    200,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
	}{
		{"valid development config", func(_ *Config) {}, false},
		{"missing port", func(c *Config) { c.Port = "" }, true},
		{"missing access secret", func(c *Config) { c.AccessTokenSecret = "" }, true},
		{"same access and refresh secret", func(c *Config) { c.RefreshTokenSecret = c.AccessTokenSecret }, true},
		{"zero access expiry", func(c *Config) { c.AccessTokenExpiry = 0 }, true},
		{"unknown media provider", func(c *Config) { c.MediaProvider = "s3" }, true},
		{"minio media provider", func(c *Config) { c.MediaProvider = "minio" }, false},
		{"zero upload size", func(c *Config) { c.MaxUploadSizeMB = 0 }, true},
		{"production with strong settings", func(c *Config) { c.Env = "production" }, false},
		{"production with default secret", func(c *Config) {
			c.Env = "production"
			c.AccessTokenSecret = defaultAccessSecret
		}, true},
		{"production with short secret", func(c *Config) {
			c.Env = "prod"
			c.RefreshTokenSecret = "short"
		}, true},
		{"production with weak db password", func(c *Config) {
			c.Env = "production"
			c.DBPassword = "password"
		}, true},
		{"production with ssl disabled", func(c *Config) {
			c.Env = "production"
			c.DBSSLMode = "disable"
		}, true},
		{"development with ssl disabled", func(c *Config) { c.DBSSLMode = "disable" }, false},
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

func TestSetDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	var c Config
	require.NoError(t, v.Unmarshal(&c))

	assert.Equal(t, "8000", c.Port)
	assert.Equal(t, 15*time.Minute, c.AccessTokenExpiry)
	assert.Equal(t, 240*time.Hour, c.RefreshTokenExpiry)
	assert.Equal(t, 2*time.Minute, c.MediaUploadTimeout)
	assert.Equal(t, 25, c.DBMaxOpenConns)
	assert.NoError(t, c.Validate())
}

func TestLoadConfig_Normalization(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("DB_SSLMODE", "  DISABLE  ")
	t.Setenv("MEDIA_PROVIDER", " MinIO ")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "disable", c.DBSSLMode)
	assert.Equal(t, "minio", c.MediaProvider)
}

func TestConfig_UploadLimitBytes(t *testing.T) {
	c := validConfig()
	c.MaxUploadSizeMB = 2
	assert.Equal(t, 2*1024*1024, c.UploadLimitBytes())
}
