// Package bootstrap wires the external dependencies shared by the binaries.
package bootstrap

import (
	"context"
	"fmt"

	"vidtube/internal/cache"
	"vidtube/internal/config"
	"vidtube/internal/database"
	"vidtube/internal/media"
	"vidtube/internal/middleware"
	"vidtube/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SkipMedia leaves Runtime.Uploader nil, for tools that never upload.
	SkipMedia bool
	// SeedDemo fills an empty development database with demo channels.
	SeedDemo bool
}

// Runtime holds the connected dependencies.
type Runtime struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Uploader media.Uploader
}

// InitRuntime connects to the database, Redis and the media host. Redis is
// optional: when it cannot be reached Runtime.Redis is nil and callers
// degrade.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*Runtime, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	rt := &Runtime{DB: db}

	if cfg.RedisURL != "" {
		rdb, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			middleware.Logger.Warn("Redis unavailable, continuing without it", "error", err)
		} else {
			rt.Redis = rdb
		}
	}

	if !opts.SkipMedia {
		up, err := media.New(ctx, cfg)
		if err != nil {
			rt.Close()
			return nil, fmt.Errorf("media provider: %w", err)
		}
		rt.Uploader = up
	}

	if opts.SeedDemo && cfg.Env == "development" {
		if err := seedIfEmpty(db); err != nil {
			rt.Close()
			return nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}
	return rt, nil
}

// Close releases the database and Redis connections.
func (r *Runtime) Close() {
	if err := database.Close(r.DB); err != nil {
		middleware.Logger.Error("error closing sql DB", "error", err)
	}
	if r.Redis != nil {
		if err := r.Redis.Close(); err != nil {
			middleware.Logger.Error("error closing redis", "error", err)
		}
	}
}

func seedIfEmpty(db *gorm.DB) error {
	var users int64
	if err := db.Table("users").Count(&users).Error; err != nil {
		return err
	}
	if users > 0 {
		return nil
	}
	_, err := seed.NewSeeder(db).Run(seed.Options{
		Users:            10,
		VideosPerUser:    4,
		CommentsPerVideo: 3,
		TweetsPerUser:    2,
	})
	return err
}
