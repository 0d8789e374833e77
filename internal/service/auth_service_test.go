package service

import (
	"context"
	"errors"
	"testing"

	"vidtube/internal/media"
	"vidtube/internal/media/mediatest"
	"vidtube/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func registerInput(username string) RegisterInput {
	return RegisterInput{
		Username:   username,
		Email:      username + "@Example.com",
		FullName:   "Full " + username,
		Password:   "secret123",
		AvatarPath: "/tmp/avatar.png",
	}
}

func TestAuthService_Register(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("stores normalized user with hashed password", func(t *testing.T) {
		user, err := env.authSvc.Register(ctx, registerInput("Alice"))
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.NotEqual(t, "secret123", user.Password)
		assert.Empty(t, user.CoverImage)

		stored, err := env.users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret123")))
	})

	t.Run("duplicate username or email conflicts", func(t *testing.T) {
		in := registerInput("alice")
		in.Email = "other@example.com"
		_, err := env.authSvc.Register(ctx, in)
		assertCode(t, err, models.CodeConflict)
	})

	t.Run("validation", func(t *testing.T) {
		in := registerInput("bob")
		in.AvatarPath = ""
		_, err := env.authSvc.Register(ctx, in)
		assertValidationError(t, err)

		in = registerInput("bob")
		in.Password = "short"
		_, err = env.authSvc.Register(ctx, in)
		assertValidationError(t, err)

		in = registerInput("bob")
		in.FullName = "  "
		_, err = env.authSvc.Register(ctx, in)
		assertValidationError(t, err)
	})

	t.Run("cover failure removes avatar", func(t *testing.T) {
		in := registerInput("carol")
		in.CoverPath = "/tmp/cover.png"
		before := env.uploader.UploadCount()

		// The avatar is the first upload; fail the next one.
		up := &failAfter{Fake: env.uploader, remaining: 1, err: errors.New("quota")}
		svc := NewAuthService(env.users, env.tokens, up).WithBcryptCost(bcrypt.MinCost)

		_, err := svc.Register(ctx, in)
		assertCode(t, err, models.CodeInternal)
		assert.Equal(t, before+1, env.uploader.UploadCount())
		assert.Len(t, env.uploader.DestroyedIDs(), 1)

		_, err = env.users.GetByUsername(ctx, "carol")
		assertCode(t, err, models.CodeNotFound)
	})
}

func TestAuthService_LoginRefreshLogout(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.authSvc.Register(ctx, registerInput("alice"))
	require.NoError(t, err)

	_, _, err = env.authSvc.Login(ctx, LoginInput{Username: "nobody", Password: "secret123"})
	assertCode(t, err, models.CodeNotFound)
	_, _, err = env.authSvc.Login(ctx, LoginInput{Username: "alice", Password: "wrong-pass1"})
	assertCode(t, err, models.CodeUnauthorized)
	_, _, err = env.authSvc.Login(ctx, LoginInput{Password: "secret123"})
	assertValidationError(t, err)

	user, pair, err := env.authSvc.Login(ctx, LoginInput{Email: "ALICE@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.Equal(t, pair.RefreshToken, user.RefreshToken)

	id, err := env.tokens.VerifyAccess(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)

	rotated, err := env.authSvc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	_, err = env.authSvc.Refresh(ctx, pair.RefreshToken)
	assertCode(t, err, models.CodeUnauthorized)
	_, err = env.authSvc.Refresh(ctx, "garbage")
	assertCode(t, err, models.CodeUnauthorized)
	_, err = env.authSvc.Refresh(ctx, "")
	assertCode(t, err, models.CodeUnauthorized)

	require.NoError(t, env.authSvc.Logout(ctx, user.ID, rotated.AccessToken))
	_, err = env.authSvc.Refresh(ctx, rotated.RefreshToken)
	assertCode(t, err, models.CodeUnauthorized)
}

func TestAuthService_ChangePassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user, err := env.authSvc.Register(ctx, registerInput("alice"))
	require.NoError(t, err)

	err = env.authSvc.ChangePassword(ctx, user.ID, "not-it-123", "newsecret456")
	assertValidationError(t, err)
	assert.Equal(t, "Invalid old password", err.(*models.AppError).Message)

	err = env.authSvc.ChangePassword(ctx, user.ID, "secret123", "weak")
	assertValidationError(t, err)

	require.NoError(t, env.authSvc.ChangePassword(ctx, user.ID, "secret123", "newsecret456"))
	_, _, err = env.authSvc.Login(ctx, LoginInput{Username: "alice", Password: "secret123"})
	assertCode(t, err, models.CodeUnauthorized)
	_, _, err = env.authSvc.Login(ctx, LoginInput{Username: "alice", Password: "newsecret456"})
	require.NoError(t, err)
}

func TestUserService_Account(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user, err := env.authSvc.Register(ctx, registerInput("alice"))
	require.NoError(t, err)
	oldAvatar := user.AvatarPublicID

	updated, err := env.userSvc.UpdateAvatar(ctx, user.ID, "/tmp/new.png")
	require.NoError(t, err)
	assert.NotEqual(t, oldAvatar, updated.AvatarPublicID)
	assert.Equal(t, []string{oldAvatar}, env.uploader.DestroyedIDs())

	_, err = env.userSvc.UpdateAvatar(ctx, user.ID, "")
	assertValidationError(t, err)

	updated, err = env.userSvc.UpdateCoverImage(ctx, user.ID, "/tmp/cover.png")
	require.NoError(t, err)
	assert.NotEmpty(t, updated.CoverImage)
	assert.Len(t, env.uploader.DestroyedIDs(), 1, "no previous cover to destroy")

	updated, err = env.userSvc.UpdateAccount(ctx, UpdateAccountInput{UserID: user.ID, FullName: "Alice A", Email: "A@new.io"})
	require.NoError(t, err)
	assert.Equal(t, "a@new.io", updated.Email)

	_, err = env.userSvc.UpdateAccount(ctx, UpdateAccountInput{UserID: user.ID, FullName: "Alice", Email: "bad"})
	assertValidationError(t, err)
}

// failAfter passes the first remaining uploads to the fake, then fails.
type failAfter struct {
	*mediatest.Fake
	remaining int
	err       error
}

func (f *failAfter) Upload(ctx context.Context, localPath string, kind media.Kind) (*media.Asset, error) {
	if f.remaining == 0 {
		return nil, f.err
	}
	f.remaining--
	return f.Fake.Upload(ctx, localPath, kind)
}
