// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultAccessSecret  = "access-secret-change-in-production"
	defaultRefreshSecret = "refresh-secret-change-in-production"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Port           string `mapstructure:"PORT"`
	Env            string `mapstructure:"APP_ENV"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`

	DBHost                   string `mapstructure:"DB_HOST"`
	DBPort                   string `mapstructure:"DB_PORT"`
	DBUser                   string `mapstructure:"DB_USER"`
	DBPassword               string `mapstructure:"DB_PASSWORD"`
	DBName                   string `mapstructure:"DB_NAME"`
	DBSSLMode                string `mapstructure:"DB_SSLMODE"`
	DBMaxOpenConns           int    `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns           int    `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBConnMaxLifetimeMinutes int    `mapstructure:"DB_CONN_MAX_LIFETIME_MINUTES"`
	RedisURL                 string `mapstructure:"REDIS_URL"`

	AccessTokenSecret  string        `mapstructure:"ACCESS_TOKEN_SECRET"`
	AccessTokenExpiry  time.Duration `mapstructure:"ACCESS_TOKEN_EXPIRY"`
	RefreshTokenSecret string        `mapstructure:"REFRESH_TOKEN_SECRET"`
	RefreshTokenExpiry time.Duration `mapstructure:"REFRESH_TOKEN_EXPIRY"`

	MediaProvider         string        `mapstructure:"MEDIA_PROVIDER"`
	CloudinaryCloudName   string        `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey      string        `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret   string        `mapstructure:"CLOUDINARY_API_SECRET"`
	MinioEndpoint         string        `mapstructure:"MINIO_ENDPOINT"`
	MinioAccessKey        string        `mapstructure:"MINIO_ACCESS_KEY"`
	MinioSecretKey        string        `mapstructure:"MINIO_SECRET_KEY"`
	MinioBucket           string        `mapstructure:"MINIO_BUCKET"`
	MinioUseSSL           bool          `mapstructure:"MINIO_USE_SSL"`
	MinioPublicURL        string        `mapstructure:"MINIO_PUBLIC_URL"`
	UploadTmpDir          string        `mapstructure:"UPLOAD_TMP_DIR"`
	MaxUploadSizeMB       int           `mapstructure:"MAX_UPLOAD_SIZE_MB"`
	MediaUploadTimeout    time.Duration `mapstructure:"MEDIA_UPLOAD_TIMEOUT"`
	MediaUploadsPerSecond float64       `mapstructure:"MEDIA_UPLOADS_PER_SECOND"`

	SeedDemo bool `mapstructure:"SEED_DEMO"`

	TracingEnabled      bool    `mapstructure:"TRACING_ENABLED"`
	TracingExporter     string  `mapstructure:"TRACING_EXPORTER"`
	OTLPEndpoint        string  `mapstructure:"OTLP_ENDPOINT"`
	TracingSamplerRatio float64 `mapstructure:"TRACING_SAMPLER_RATIO"`
}

// LoadConfig loads application configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	v.AddConfigPath("../..")
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AutomaticEnv()

	// The base file is optional; env vars and defaults are enough to boot.
	_ = v.ReadInConfig()

	env := v.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	if env != "development" && env != "test" {
		v.SetConfigName("config." + env)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("required profile-specific config 'config.%s.yml' not found: %w", env, err)
		}
		log.Printf("Loaded profile-specific configuration: config.%s.yml", env)
	}

	SetDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	config.DBSSLMode = strings.ToLower(strings.TrimSpace(config.DBSSLMode))
	config.MediaProvider = strings.ToLower(strings.TrimSpace(config.MediaProvider))

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// SetDefaults registers development defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8000")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "user")
	v.SetDefault("DB_PASSWORD", "password")
	v.SetDefault("DB_NAME", "vidtube")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME_MINUTES", 5)
	v.SetDefault("REDIS_URL", "localhost:6379")

	v.SetDefault("ACCESS_TOKEN_SECRET", defaultAccessSecret)
	v.SetDefault("ACCESS_TOKEN_EXPIRY", "15m")
	v.SetDefault("REFRESH_TOKEN_SECRET", defaultRefreshSecret)
	v.SetDefault("REFRESH_TOKEN_EXPIRY", "240h")

	v.SetDefault("MEDIA_PROVIDER", "cloudinary")
	v.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	v.SetDefault("CLOUDINARY_API_KEY", "")
	v.SetDefault("CLOUDINARY_API_SECRET", "")
	v.SetDefault("MINIO_ENDPOINT", "")
	v.SetDefault("MINIO_ACCESS_KEY", "")
	v.SetDefault("MINIO_SECRET_KEY", "")
	v.SetDefault("MINIO_PUBLIC_URL", "")
	v.SetDefault("MINIO_BUCKET", "vidtube")
	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("UPLOAD_TMP_DIR", "./public/temp")
	v.SetDefault("MAX_UPLOAD_SIZE_MB", 200)
	v.SetDefault("MEDIA_UPLOAD_TIMEOUT", "2m")
	v.SetDefault("MEDIA_UPLOADS_PER_SECOND", 5.0)

	v.SetDefault("SEED_DEMO", false)

	v.SetDefault("TRACING_ENABLED", false)
	v.SetDefault("TRACING_EXPORTER", "stdout")
	v.SetDefault("OTLP_ENDPOINT", "localhost:4318")
	v.SetDefault("TRACING_SAMPLER_RATIO", 1.0)
}

// IsProduction reports whether the config targets a production deployment.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// Validate ensures that required configuration values are present and meet security standards.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.AccessTokenSecret == "" {
		return errors.New("ACCESS_TOKEN_SECRET is required")
	}
	if c.RefreshTokenSecret == "" {
		return errors.New("REFRESH_TOKEN_SECRET is required")
	}
	if c.AccessTokenSecret == c.RefreshTokenSecret {
		return errors.New("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must differ")
	}
	if c.AccessTokenExpiry <= 0 || c.RefreshTokenExpiry <= 0 {
		return errors.New("token expiries must be positive durations")
	}

	switch strings.ToLower(c.MediaProvider) {
	case "cloudinary", "minio":
	default:
		return fmt.Errorf("MEDIA_PROVIDER must be 'cloudinary' or 'minio', got %q", c.MediaProvider)
	}
	if c.MaxUploadSizeMB <= 0 {
		return errors.New("MAX_UPLOAD_SIZE_MB must be positive")
	}

	if c.IsProduction() {
		if c.AccessTokenSecret == defaultAccessSecret || c.RefreshTokenSecret == defaultRefreshSecret {
			return errors.New("token secrets must be changed from the default value in production")
		}
		if len(c.AccessTokenSecret) < 32 || len(c.RefreshTokenSecret) < 32 {
			return errors.New("token secrets must be at least 32 characters in production")
		}
		if c.DBPassword == "password" || c.DBPassword == "" {
			return errors.New("a strong DB_PASSWORD is required in production")
		}
		if c.DBSSLMode == "disable" || c.DBSSLMode == "" {
			return errors.New("DB_SSLMODE must enable SSL in production")
		}
		if c.AllowedOrigins == "*" {
			log.Println("WARNING: ALLOWED_ORIGINS is set to '*' in production. This is insecure.")
		}
	} else if len(c.AccessTokenSecret) < 32 {
		log.Println("WARNING: ACCESS_TOKEN_SECRET is shorter than 32 characters. Consider using a stronger secret for production.")
	}

	return nil
}

// UploadLimitBytes returns the maximum accepted request body size.
func (c *Config) UploadLimitBytes() int {
	return c.MaxUploadSizeMB * 1024 * 1024
}
