// Command admin provides database maintenance utilities for VidTube.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"vidtube/internal/cache"
	"vidtube/internal/config"
	"vidtube/internal/database"
	"vidtube/internal/models"
	"vidtube/internal/repository"
	"vidtube/internal/seed"

	"github.com/urfave/cli/v3"
	"gorm.io/gorm"
)

func main() {
	app := &cli.Command{
		Name:  "vidtube-admin",
		Usage: "Maintain the VidTube database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "sqlite",
				Usage: "Use the SQLite database at this path instead of PostgreSQL",
			},
			&cli.StringFlag{
				Name:    "redis",
				Usage:   "Redis address or URL holding cached channel data",
				Sources: cli.EnvVars("REDIS_URL"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "Create or update every table",
				Action: runMigrate,
			},
			{
				Name:  "seed",
				Usage: "Populate the database with demo channels",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "users", Value: 20, Usage: "Number of users to create"},
					&cli.IntFlag{Name: "videos", Value: 5, Usage: "Videos per user"},
					&cli.IntFlag{Name: "comments", Value: 3, Usage: "Comments per video"},
					&cli.IntFlag{Name: "tweets", Value: 2, Usage: "Tweets per user"},
					&cli.Int64Flag{Name: "seed", Usage: "Random seed for reproducible data"},
					&cli.BoolFlag{Name: "clean", Usage: "Delete existing rows first"},
				},
				Action: runSeed,
			},
			{
				Name:      "stats",
				Usage:     "Print user totals, or a channel's dashboard stats",
				ArgsUsage: "[channel_id]",
				Action:    runStats,
			},
			{
				Name:      "deactivate-user",
				Usage:     "Soft-delete a user so their content drops out of listings",
				ArgsUsage: "<user_id>",
				Action:    runDeactivate,
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatalf("admin: %v", err)
	}
}

func openDB(cmd *cli.Command) (*gorm.DB, error) {
	if path := cmd.String("sqlite"); path != "" {
		return database.OpenSQLite(path)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return database.Connect(cfg)
}

func withDB(cmd *cli.Command, fn func(db *gorm.DB) error) error {
	db, err := openDB(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()
	return fn(db)
}

func runMigrate(_ context.Context, cmd *cli.Command) error {
	return withDB(cmd, database.Migrate)
}

func runSeed(_ context.Context, cmd *cli.Command) error {
	return withDB(cmd, func(db *gorm.DB) error {
		sum, err := seed.NewSeeder(db).Run(seed.Options{
			Users:            int(cmd.Int("users")),
			VideosPerUser:    int(cmd.Int("videos")),
			CommentsPerVideo: int(cmd.Int("comments")),
			TweetsPerUser:    int(cmd.Int("tweets")),
			Seed:             cmd.Int64("seed"),
			Clean:            cmd.Bool("clean"),
		})
		if err != nil {
			return err
		}
		fmt.Printf("Seeded %d users, %d videos, %d comments, %d tweets, %d playlists, %d subscriptions, %d likes\n",
			sum.Users, sum.Videos, sum.Comments, sum.Tweets, sum.Playlists, sum.Subscriptions, sum.Likes)
		fmt.Printf("All seeded users have the password: %s\n", seed.DefaultPassword)
		return nil
	})
}

func runStats(ctx context.Context, cmd *cli.Command) error {
	return withDB(cmd, func(db *gorm.DB) error {
		if cmd.Args().Len() == 0 {
			n, err := repository.NewUserRepository(db).Count(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Active users: %d\n", n)
			return nil
		}

		id, err := parseUserID(cmd.Args().First())
		if err != nil {
			return err
		}
		stats, err := repository.NewDashboardRepository(db).ChannelStats(ctx, id)
		if err != nil {
			return err
		}
		fmt.Printf("Channel %d: %d videos, %d views, %d likes, %d subscribers\n",
			id, stats.TotalVideos, stats.TotalViews, stats.TotalLikes, stats.TotalSubscribers)
		return nil
	})
}

func runDeactivate(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("usage: deactivate-user <user_id>")
	}
	id, err := parseUserID(cmd.Args().First())
	if err != nil {
		return err
	}
	return withDB(cmd, func(db *gorm.DB) error {
		store, closeStore, err := openStore(ctx, cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		user, err := deactivateUser(ctx, db, store, id)
		if err != nil {
			return err
		}
		fmt.Printf("Deactivated user %d (%s)\n", user.ID, user.Username)
		return nil
	})
}

// openStore connects to Redis when --redis or REDIS_URL is set. Otherwise the
// returned store is a no-op.
func openStore(ctx context.Context, cmd *cli.Command) (*cache.Store, func(), error) {
	addr := cmd.String("redis")
	if addr == "" {
		return cache.NewStore(nil), func() {}, nil
	}
	rdb, err := cache.Connect(ctx, addr)
	if err != nil {
		return nil, nil, err
	}
	return cache.NewStore(rdb), func() { _ = rdb.Close() }, nil
}

// deactivateUser soft-deletes the user and drops their cached channel
// profile and subscriber count.
func deactivateUser(ctx context.Context, db *gorm.DB, store *cache.Store, id uint) (*models.User, error) {
	users := repository.NewUserRepository(db)
	user, err := users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := users.Delete(ctx, id); err != nil {
		return nil, err
	}
	store.Invalidate(ctx, cache.ChannelProfileKey(user.Username), cache.SubscriberCountKey(user.ID))
	return user, nil
}

func parseUserID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid user id %q", raw)
	}
	return uint(id), nil
}
