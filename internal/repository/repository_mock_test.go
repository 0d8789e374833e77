package repository

import (
	"context"
	"regexp"
	"testing"

	"vidtube/internal/models"
	"vidtube/internal/query"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideoRepository_IncrementViews_SQL(t *testing.T) {
	t.Run("published", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewVideoRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "videos" SET "views"=views + $1 WHERE id = $2 AND is_published = $3`)).
			WithArgs(1, 7, true).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.IncrementViews(context.Background(), 7))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing or unpublished", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewVideoRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "videos" SET "views"=views + $1`)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := repo.IncrementViews(context.Background(), 7)
		assert.Equal(t, 404, models.StatusFor(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSubscriptionRepository_Toggle_SQL(t *testing.T) {
	t.Run("existing pair is removed with one delete", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewSubscriptionRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "subscriptions" WHERE subscriber_id = $1 AND channel_id = $2`)).
			WithArgs(1, 2).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		added, err := repo.Toggle(context.Background(), 1, 2)
		require.NoError(t, err)
		assert.False(t, added)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent pair is inserted on conflict do nothing", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewSubscriptionRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "subscriptions"`)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`INSERT INTO "subscriptions" .* ON CONFLICT DO NOTHING`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectCommit()

		added, err := repo.Toggle(context.Background(), 1, 2)
		require.NoError(t, err)
		assert.True(t, added)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestVideoRepository_List_EmptyCountSkipsPageQuery(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewVideoRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "videos" JOIN users AS owner ON owner.id = videos.owner_id AND owner.deleted_at IS NULL WHERE "videos"."is_published" = $1`)).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	plan := query.New("videos").
		Where(query.Eq{Column: "is_published", Value: true}).
		JoinOn(query.OwnerJoin("owner_id", "Owner"))

	videos, total, err := repo.List(context.Background(), plan)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NotNil(t, videos)
	assert.Empty(t, videos)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_UniqueViolation(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.User{Username: "dup", Email: "dup@example.com"})
	assert.Equal(t, 409, models.StatusFor(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
