package repository

import (
	"context"
	"testing"

	"vidtube/internal/models"
	"vidtube/internal/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func publishedVideosPlan() *query.Plan {
	return query.New("videos").
		Where(query.Eq{Column: "is_published", Value: true}).
		JoinOn(query.OwnerJoin("owner_id", "Owner"))
}

func TestVideoList_OmitsDeletedOwners(t *testing.T) {
	db := setupSQLite(t)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	seedVideo(t, db, alice, "alpha", 0, true)
	seedVideo(t, db, bob, "bravo", 0, true)
	seedVideo(t, db, bob, "charlie", 0, true)

	require.NoError(t, NewUserRepository(db).Delete(ctx, bob.ID))

	videos, total, err := NewVideoRepository(db).List(ctx, publishedVideosPlan())
	require.NoError(t, err)
	assert.EqualValues(t, 1, total, "count drops records whose owner is gone")
	require.Len(t, videos, 1)
	assert.Equal(t, "alpha", videos[0].Title)
	require.NotNil(t, videos[0].Owner)
	assert.Equal(t, "alice", videos[0].Owner.Username)
	assert.Equal(t, alice.Avatar, videos[0].Owner.Avatar)
}

func TestVideoList_FiltersSortAndPages(t *testing.T) {
	db := setupSQLite(t)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	seedVideo(t, db, alice, "Go Concurrency", 30, true)
	seedVideo(t, db, alice, "go generics", 10, true)
	seedVideo(t, db, alice, "Rust intro", 20, true)
	seedVideo(t, db, alice, "Go draft", 99, false)
	seedVideo(t, db, bob, "GO for bob", 5, true)

	repo := NewVideoRepository(db)

	t.Run("case insensitive search", func(t *testing.T) {
		plan := publishedVideosPlan().
			Where(query.Contains{Columns: []string{"title", "description"}, Term: "go"}).
			OrderBy(query.Sort{Column: "views", Desc: false})
		videos, total, err := repo.List(ctx, plan)
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		require.Len(t, videos, 3)
		assert.Equal(t, "GO for bob", videos[0].Title)
		assert.Equal(t, "go generics", videos[1].Title)
		assert.Equal(t, "Go Concurrency", videos[2].Title)
	})

	t.Run("owner filter", func(t *testing.T) {
		plan := publishedVideosPlan().Where(query.Eq{Column: "owner_id", Value: bob.ID})
		videos, total, err := repo.List(ctx, plan)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, videos, 1)
		assert.Equal(t, bob.ID, videos[0].OwnerID)
	})

	t.Run("pagination keeps totals", func(t *testing.T) {
		plan := publishedVideosPlan().
			OrderBy(query.Sort{Column: "views", Desc: true}).
			Paginate(query.Page{Number: 2, Size: 3})
		videos, total, err := repo.List(ctx, plan)
		require.NoError(t, err)
		assert.EqualValues(t, 4, total)
		require.Len(t, videos, 1)
		assert.Equal(t, "GO for bob", videos[0].Title)
	})

	t.Run("wildcards are literal", func(t *testing.T) {
		plan := publishedVideosPlan().Where(query.Contains{Columns: []string{"title"}, Term: "%"})
		videos, total, err := repo.List(ctx, plan)
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, videos)
	})
}

func TestVideoRepository_ViewsAndHistory(t *testing.T) {
	db := setupSQLite(t)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	viewer := seedUser(t, db, "viewer")
	first := seedVideo(t, db, alice, "first", 0, true)
	second := seedVideo(t, db, alice, "second", 0, true)
	draft := seedVideo(t, db, alice, "draft", 0, false)

	videos := NewVideoRepository(db)
	users := NewUserRepository(db)

	require.NoError(t, videos.IncrementViews(ctx, first.ID))
	require.NoError(t, videos.IncrementViews(ctx, first.ID))
	got, err := videos.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, got.Views)

	err = videos.IncrementViews(ctx, draft.ID)
	assert.Equal(t, 404, models.StatusFor(err))

	require.NoError(t, users.AddToHistory(ctx, viewer.ID, second.ID))
	require.NoError(t, users.AddToHistory(ctx, viewer.ID, first.ID))
	require.NoError(t, users.AddToHistory(ctx, viewer.ID, second.ID))
	require.NoError(t, users.AddToHistory(ctx, viewer.ID, draft.ID))

	history, err := users.WatchHistory(ctx, viewer.ID)
	require.NoError(t, err)
	require.Len(t, history, 2, "another channel's draft stays hidden")
	assert.Equal(t, second.ID, history[0].ID)
	assert.Equal(t, first.ID, history[1].ID)
	require.NotNil(t, history[0].Owner)
	assert.Equal(t, "alice", history[0].Owner.Username)
}

func TestVideoRepository_DeleteCascades(t *testing.T) {
	db := setupSQLite(t)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	video := seedVideo(t, db, alice, "doomed", 0, true)
	keep := seedVideo(t, db, alice, "kept", 0, true)

	comment := &models.Comment{Content: "hi", VideoID: video.ID, OwnerID: bob.ID}
	require.NoError(t, NewCommentRepository(db).Create(ctx, comment))

	likes := NewLikeRepository(db)
	_, err := likes.Toggle(ctx, bob.ID, models.LikeTargetVideo, video.ID)
	require.NoError(t, err)
	_, err = likes.Toggle(ctx, alice.ID, models.LikeTargetComment, comment.ID)
	require.NoError(t, err)
	_, err = likes.Toggle(ctx, bob.ID, models.LikeTargetVideo, keep.ID)
	require.NoError(t, err)

	playlist := &models.Playlist{Name: "mix", Description: "d", OwnerID: bob.ID}
	playlists := NewPlaylistRepository(db)
	require.NoError(t, playlists.Create(ctx, playlist))
	require.NoError(t, playlists.AddVideo(ctx, playlist.ID, video.ID))
	require.NoError(t, NewUserRepository(db).AddToHistory(ctx, bob.ID, video.ID))

	require.NoError(t, NewVideoRepository(db).Delete(ctx, video.ID))

	var count int64
	db.Model(&models.Comment{}).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.Like{}).Count(&count)
	assert.EqualValues(t, 1, count, "only the like on the surviving video remains")
	db.Model(&models.PlaylistVideo{}).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.WatchHistoryEntry{}).Count(&count)
	assert.Zero(t, count)

	err = NewVideoRepository(db).Delete(ctx, video.ID)
	assert.Equal(t, 404, models.StatusFor(err))
}

func TestSubscriptionRepository_Toggle(t *testing.T) {
	db := setupSQLite(t)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")
	repo := NewSubscriptionRepository(db)

	added, err := repo.Toggle(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, added)

	subscribed, err := repo.IsSubscribed(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, subscribed)

	added, err = repo.Toggle(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, added)

	subscribed, err = repo.IsSubscribed(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, subscribed)

	_, err = repo.Toggle(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	_, err = repo.Toggle(ctx, carol.ID, alice.ID)
	require.NoError(t, err)

	count, err := repo.CountSubscribers(ctx, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	count, err = repo.CountSubscriptions(ctx, bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	plan := query.New("subscriptions").
		Where(query.Eq{Column: "channel_id", Value: alice.ID}).
		JoinOn(&query.Join{Table: "users", Alias: "subscriber", LocalKey: "subscriber_id", Live: true, Preload: "Subscriber"})
	subs, total, err := repo.List(ctx, plan)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, subs, 2)
	require.NotNil(t, subs[0].Subscriber)
	assert.Equal(t, "carol", subs[0].Subscriber.Username)
}

func TestSubscriptionRepository_DuplicateInsertRejectedByIndex(t *testing.T) {
	db := setupSQLite(t)
	sub := models.Subscription{SubscriberID: 1, ChannelID: 2}
	require.NoError(t, db.Create(&sub).Error)

	dup := models.Subscription{SubscriberID: 1, ChannelID: 2}
	err := translate(db.Create(&dup).Error, "Subscription", 2)
	assert.Equal(t, 409, models.StatusFor(err))
}

func TestLikeRepository_Toggle(t *testing.T) {
	db := setupSQLite(t)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	video := seedVideo(t, db, alice, "likeable", 0, true)
	draft := seedVideo(t, db, alice, "hidden", 0, false)
	repo := NewLikeRepository(db)

	added, err := repo.Toggle(ctx, bob.ID, models.LikeTargetVideo, video.ID)
	require.NoError(t, err)
	assert.True(t, added)
	_, err = repo.Toggle(ctx, bob.ID, models.LikeTargetVideo, draft.ID)
	require.NoError(t, err)

	// Same numeric id on another target kind is an independent like.
	added, err = repo.Toggle(ctx, bob.ID, models.LikeTargetTweet, video.ID)
	require.NoError(t, err)
	assert.True(t, added)

	liked, err := repo.LikedVideos(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, liked, 1)
	assert.Equal(t, video.ID, liked[0].ID)

	count, err := repo.CountForVideo(ctx, video.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	added, err = repo.Toggle(ctx, bob.ID, models.LikeTargetVideo, video.ID)
	require.NoError(t, err)
	assert.False(t, added)

	count, err = repo.CountForVideo(ctx, video.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPlaylistRepository_Membership(t *testing.T) {
	db := setupSQLite(t)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	v1 := seedVideo(t, db, alice, "one", 0, true)
	v2 := seedVideo(t, db, alice, "two", 0, true)
	draft := seedVideo(t, db, alice, "draft", 0, false)
	bob := seedUser(t, db, "bob")
	repo := NewPlaylistRepository(db)

	playlist := &models.Playlist{Name: "favs", Description: "best", OwnerID: alice.ID}
	require.NoError(t, repo.Create(ctx, playlist))

	require.NoError(t, repo.AddVideo(ctx, playlist.ID, v2.ID))
	require.NoError(t, repo.AddVideo(ctx, playlist.ID, v1.ID))
	require.NoError(t, repo.AddVideo(ctx, playlist.ID, v2.ID))
	require.NoError(t, repo.AddVideo(ctx, playlist.ID, draft.ID))

	videos, err := repo.Videos(ctx, playlist.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, v2.ID, videos[0].ID)
	assert.Equal(t, v1.ID, videos[1].ID)
	assert.Equal(t, "alice", videos[0].Owner.Username)

	videos, err = repo.Videos(ctx, playlist.ID, 0)
	require.NoError(t, err)
	assert.Len(t, videos, 2, "guests do not see drafts")

	videos, err = repo.Videos(ctx, playlist.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, videos, 3)
	assert.Equal(t, draft.ID, videos[2].ID)
	require.NoError(t, repo.RemoveVideo(ctx, playlist.ID, draft.ID))

	require.NoError(t, repo.RemoveVideo(ctx, playlist.ID, v2.ID))
	require.NoError(t, repo.RemoveVideo(ctx, playlist.ID, v2.ID))
	videos, err = repo.Videos(ctx, playlist.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, videos, 1)

	require.NoError(t, repo.Update(ctx, playlist.ID, map[string]any{"name": "renamed"}))
	got, err := repo.GetByID(ctx, playlist.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Name)
	assert.Equal(t, "alice", got.Owner.Username)

	require.NoError(t, repo.Delete(ctx, playlist.ID))
	var count int64
	db.Model(&models.PlaylistVideo{}).Count(&count)
	assert.Zero(t, count)

	_, err = repo.GetByID(ctx, playlist.ID)
	assert.Equal(t, 404, models.StatusFor(err))
}

func TestCommentAndTweetDeleteRemoveLikes(t *testing.T) {
	db := setupSQLite(t)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	video := seedVideo(t, db, alice, "v", 0, true)
	likes := NewLikeRepository(db)

	comment := &models.Comment{Content: "c", VideoID: video.ID, OwnerID: alice.ID}
	require.NoError(t, NewCommentRepository(db).Create(ctx, comment))
	tweet := &models.Tweet{Content: "t", OwnerID: alice.ID}
	require.NoError(t, NewTweetRepository(db).Create(ctx, tweet))

	_, err := likes.Toggle(ctx, alice.ID, models.LikeTargetComment, comment.ID)
	require.NoError(t, err)
	_, err = likes.Toggle(ctx, alice.ID, models.LikeTargetTweet, tweet.ID)
	require.NoError(t, err)

	require.NoError(t, NewCommentRepository(db).Delete(ctx, comment.ID))
	require.NoError(t, NewTweetRepository(db).Delete(ctx, tweet.ID))

	var count int64
	db.Model(&models.Like{}).Count(&count)
	assert.Zero(t, count)
}

func TestCommentList_ByVideo(t *testing.T) {
	db := setupSQLite(t)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	video := seedVideo(t, db, alice, "v", 0, true)
	other := seedVideo(t, db, alice, "w", 0, true)
	repo := NewCommentRepository(db)

	for i, owner := range []*models.User{alice, bob, bob} {
		require.NoError(t, repo.Create(ctx, &models.Comment{Content: string(rune('a' + i)), VideoID: video.ID, OwnerID: owner.ID}))
	}
	require.NoError(t, repo.Create(ctx, &models.Comment{Content: "elsewhere", VideoID: other.ID, OwnerID: alice.ID}))

	plan := query.New("comments").
		Where(query.Eq{Column: "video_id", Value: video.ID}).
		JoinOn(query.OwnerJoin("owner_id", "Owner")).
		Paginate(query.Page{Number: 1, Size: 2})
	comments, total, err := repo.List(ctx, plan)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, comments, 2)
	assert.Equal(t, "c", comments[0].Content, "newest first")
	assert.Equal(t, "bob", comments[0].Owner.Username)

	require.NoError(t, repo.UpdateContent(ctx, comments[0].ID, "edited"))
	got, err := repo.GetByID(ctx, comments[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Content)
}

func TestUserRepository(t *testing.T) {
	db := setupSQLite(t)
	ctx := context.Background()
	repo := NewUserRepository(db)
	alice := seedUser(t, db, "alice")

	t.Run("duplicate username is a conflict", func(t *testing.T) {
		err := repo.Create(ctx, &models.User{Username: "alice", Email: "other@example.com", FullName: "x", Avatar: "a", Password: "p"})
		assert.Equal(t, 409, models.StatusFor(err))
	})

	t.Run("lookup by either identifier", func(t *testing.T) {
		u, err := repo.GetByLogin(ctx, "", "alice")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, u.ID)

		u, err = repo.GetByLogin(ctx, "alice@example.com", "")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, u.ID)

		exists, err := repo.ExistsByLogin(ctx, "nobody@example.com", "alice")
		require.NoError(t, err)
		assert.True(t, exists)

		_, err = repo.GetByLogin(ctx, "nobody@example.com", "nobody")
		assert.Equal(t, 404, models.StatusFor(err))
	})

	t.Run("update fields", func(t *testing.T) {
		require.NoError(t, repo.Update(ctx, alice.ID, map[string]any{"full_name": "Alice A"}))
		u, err := repo.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "Alice A", u.FullName)

		err = repo.Update(ctx, 9999, map[string]any{"full_name": "ghost"})
		assert.Equal(t, 404, models.StatusFor(err))
	})

	t.Run("soft delete hides the user", func(t *testing.T) {
		bob := seedUser(t, db, "bob")
		require.NoError(t, repo.Delete(ctx, bob.ID))
		_, err := repo.GetByID(ctx, bob.ID)
		assert.Equal(t, 404, models.StatusFor(err))

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})
}

func TestDashboardRepository_ChannelStats(t *testing.T) {
	db := setupSQLite(t)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	repo := NewDashboardRepository(db)

	stats, err := repo.ChannelStats(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ChannelStats{}, *stats)

	v1 := seedVideo(t, db, alice, "one", 10, true)
	seedVideo(t, db, alice, "two", 5, false)
	seedVideo(t, db, bob, "not mine", 100, true)
	_, err = NewLikeRepository(db).Toggle(ctx, bob.ID, models.LikeTargetVideo, v1.ID)
	require.NoError(t, err)
	_, err = NewSubscriptionRepository(db).Toggle(ctx, bob.ID, alice.ID)
	require.NoError(t, err)

	stats, err = repo.ChannelStats(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ChannelStats{TotalVideos: 2, TotalViews: 15, TotalLikes: 1, TotalSubscribers: 1}, *stats)
}
