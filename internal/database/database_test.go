package database

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"vidtube/internal/config"
	"vidtube/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestConfigurePool(t *testing.T) {
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)

	cfg := &config.Config{
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           5,
		DBConnMaxLifetimeMinutes: 15,
	}
	require.NoError(t, configurePool(db, cfg))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 10, sqlDB.Stats().MaxOpenConnections)
	require.NoError(t, Close(db))
}

func TestOpenSQLite_MigratesEveryModel(t *testing.T) {
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer func() { _ = Close(db) }()

	for _, m := range PersistentModels() {
		assert.True(t, db.Migrator().HasTable(m), "missing table for %T", m)
	}
	assert.True(t, db.Migrator().HasIndex(&models.Subscription{}, "idx_subscriber_channel"))
	assert.True(t, db.Migrator().HasIndex(&models.Like{}, "idx_like_video"))
}

func TestDSN(t *testing.T) {
	cfg := &config.Config{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "vidtube"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=vidtube sslmode=disable", DSN(cfg))

	cfg.DBSSLMode = "require"
	assert.Contains(t, DSN(cfg), "sslmode=require")
}

func TestCustomGormLogger_Trace(t *testing.T) {
	var buf bytes.Buffer
	l := NewGormLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	ctx := context.Background()
	sql := func() (string, int64) { return "SELECT 1", 1 }

	l.Trace(ctx, time.Now(), sql, nil)
	assert.Empty(t, buf.String(), "fast successful queries are not logged at warn level")

	l.Trace(ctx, time.Now(), sql, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String(), "record-not-found is ignored")

	l.Trace(ctx, time.Now(), sql, errors.New("syntax error"))
	assert.Contains(t, buf.String(), "GORM query error")

	buf.Reset()
	l.Trace(ctx, time.Now().Add(-time.Second), sql, nil)
	assert.Contains(t, buf.String(), "GORM slow query")

	buf.Reset()
	l.LogMode(logger.Silent).Trace(ctx, time.Now(), sql, errors.New("ignored"))
	assert.Empty(t, buf.String())
}
