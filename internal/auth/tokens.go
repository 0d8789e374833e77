// Package auth issues and verifies the access and refresh JWTs used by the API.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"vidtube/internal/config"
	"vidtube/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	Issuer   = "vidtube-api"
	Audience = "vidtube-client"

	blacklistPrefix = "blacklist:"
)

var (
	// ErrInvalidToken covers malformed, expired and wrongly signed tokens.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrRevokedToken is returned for tokens revoked by logout.
	ErrRevokedToken = errors.New("token has been revoked")
)

// Claims are the JWT claims carried by both token kinds.
type Claims struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	FullName string `json:"fullName,omitempty"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim.
func (c *Claims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 32)
	if err != nil || id == 0 {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}

// TokenPair is what login and refresh hand back to the client.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenManager signs and verifies tokens. Access and refresh tokens use
// separate secrets; revoked access tokens are tracked in Redis by jti.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	rdb           *redis.Client
	now           func() time.Time
}

// NewTokenManager builds a TokenManager from config. rdb may be nil, in
// which case revocation is not enforced.
func NewTokenManager(cfg *config.Config, rdb *redis.Client) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(cfg.AccessTokenSecret),
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		accessTTL:     cfg.AccessTokenExpiry,
		refreshTTL:    cfg.RefreshTokenExpiry,
		rdb:           rdb,
		now:           time.Now,
	}
}

// RefreshTTL is the lifetime of refresh tokens, used for cookie max-age.
func (m *TokenManager) RefreshTTL() time.Duration { return m.refreshTTL }

// AccessTTL is the lifetime of access tokens.
func (m *TokenManager) AccessTTL() time.Duration { return m.accessTTL }

// IssuePair signs a fresh access and refresh token for user.
func (m *TokenManager) IssuePair(user *models.User) (*TokenPair, error) {
	access, err := m.sign(m.claims(user, m.accessTTL), m.accessSecret)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := m.sign(m.claims(&models.User{ID: user.ID}, m.refreshTTL), m.refreshSecret)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (m *TokenManager) claims(user *models.User, ttl time.Duration) *Claims {
	now := m.now()
	return &Claims{
		Username: user.Username,
		Email:    user.Email,
		FullName: user.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			Issuer:    Issuer,
			Audience:  jwt.ClaimStrings{Audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        fmt.Sprintf("%d-%s", now.Unix(), uuid.New().String()[:8]),
		},
	}
}

func (m *TokenManager) sign(claims *Claims, secret []byte) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (m *TokenManager) parse(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithAudience(Audience),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if _, err := claims.UserID(); err != nil {
		return nil, err
	}
	return claims, nil
}

// ParseAccess verifies an access token and checks it was not revoked.
func (m *TokenManager) ParseAccess(ctx context.Context, tokenString string) (*Claims, error) {
	claims, err := m.parse(tokenString, m.accessSecret)
	if err != nil {
		return nil, err
	}
	if m.rdb != nil && claims.ID != "" {
		n, err := m.rdb.Exists(ctx, blacklistPrefix+claims.ID).Result()
		if err == nil && n > 0 {
			return nil, ErrRevokedToken
		}
	}
	return claims, nil
}

// VerifyAccess returns the user ID carried by a valid access token.
func (m *TokenManager) VerifyAccess(ctx context.Context, tokenString string) (uint, error) {
	claims, err := m.ParseAccess(ctx, tokenString)
	if err != nil {
		return 0, err
	}
	return claims.UserID()
}

// ParseRefresh verifies a refresh token.
func (m *TokenManager) ParseRefresh(tokenString string) (*Claims, error) {
	return m.parse(tokenString, m.refreshSecret)
}

// Revoke blacklists an access token until it would have expired anyway.
func (m *TokenManager) Revoke(ctx context.Context, tokenString string) error {
	if m.rdb == nil {
		return nil
	}
	claims, err := m.parse(tokenString, m.accessSecret)
	if err != nil {
		return err
	}
	ttl := claims.ExpiresAt.Time.Sub(m.now())
	if ttl <= 0 {
		return nil
	}
	return m.rdb.Set(ctx, blacklistPrefix+claims.ID, "1", ttl).Err()
}
