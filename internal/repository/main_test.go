package repository

import (
	"context"
	"fmt"
	"testing"

	"vidtube/internal/database"
	"vidtube/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gormDB, mock
}

func setupSQLite(t *testing.T) *gorm.DB {
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		FullName: "User " + username,
		Avatar:   "https://cdn.example.com/" + username + ".png",
		Password: "hashed",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedVideo(t *testing.T, db *gorm.DB, owner *models.User, title string, views int64, published bool) *models.Video {
	video := &models.Video{
		VideoFile:   fmt.Sprintf("https://cdn.example.com/%s.mp4", title),
		Thumbnail:   fmt.Sprintf("https://cdn.example.com/%s.jpg", title),
		Title:       title,
		Description: "about " + title,
		Duration:    42,
		Views:       views,
		IsPublished: published,
		OwnerID:     owner.ID,
	}
	require.NoError(t, NewVideoRepository(db).Create(context.Background(), video))
	return video
}
