//go:build integration
// +build integration

package repository

import (
	"context"
	"testing"
	"time"

	"vidtube/internal/database"
	"vidtube/internal/models"
	"vidtube/internal/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

func setupPostgres(t *testing.T) *gorm.DB {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("vidtube_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("Failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.OpenPostgres(connStr)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func TestPostgres_ListingToggleAndCascade(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	seedVideo(t, db, alice, "Postgres Tips", 3, true)
	video := seedVideo(t, db, bob, "postgres internals", 7, true)

	plan := query.New("videos").
		Where(query.Eq{Column: "is_published", Value: true}, query.Contains{Columns: []string{"title"}, Term: "POSTGRES"}).
		JoinOn(query.OwnerJoin("owner_id", "Owner")).
		OrderBy(query.Sort{Column: "views", Desc: true})
	videos, total, err := NewVideoRepository(db).List(ctx, plan)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, videos, 2)
	assert.Equal(t, "bob", videos[0].Owner.Username)

	subs := NewSubscriptionRepository(db)
	added, err := subs.Toggle(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, added)
	added, err = subs.Toggle(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, added)

	likes := NewLikeRepository(db)
	_, err = likes.Toggle(ctx, alice.ID, models.LikeTargetVideo, video.ID)
	require.NoError(t, err)

	users := NewUserRepository(db)
	require.NoError(t, users.AddToHistory(ctx, alice.ID, video.ID))
	require.NoError(t, users.AddToHistory(ctx, alice.ID, video.ID))

	require.NoError(t, NewVideoRepository(db).Delete(ctx, video.ID))
	var count int64
	db.Model(&models.Like{}).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.WatchHistoryEntry{}).Count(&count)
	assert.Zero(t, count)

	err = users.Create(ctx, &models.User{Username: "alice", Email: "x@example.com", FullName: "x", Avatar: "a", Password: "p"})
	assert.Equal(t, 409, models.StatusFor(err))
}
