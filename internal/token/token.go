package token

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrTokenNotFound is returned when a token is absent or has been revoked.
var ErrTokenNotFound = errors.New("token not found")

// keyPrefix namespaces token keys in Redis.
const keyPrefix = "auth_token:"

// tokenBytes is the entropy of an issued token (hex-encoded to twice this length).
const tokenBytes = 32

// Service issues, resolves, and revokes opaque bearer tokens.
// Tokens are stored server-side in Redis with no expiration: a token
// stays valid until it is explicitly revoked.
type Service struct {
	rdb *redis.Client
}

// New creates a new token Service backed by the given Redis client.
func New(rdb *redis.Client) *Service {
	return &Service{rdb: rdb}
}

// Issue generates a new unguessable token bound to userID and stores it.
// Every call issues a fresh token; multiple active tokens per user are allowed.
func (s *Service) Issue(ctx context.Context, userID uuid.UUID) (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	tokenString := hex.EncodeToString(buf)

	if err := s.rdb.Set(ctx, keyPrefix+tokenString, userID.String(), 0).Err(); err != nil {
		return "", err
	}

	return tokenString, nil
}

// Resolve returns the user id a token is bound to.
// Returns ErrTokenNotFound for unknown or revoked tokens.
func (s *Service) Resolve(ctx context.Context, tokenString string) (uuid.UUID, error) {
	val, err := s.rdb.Get(ctx, keyPrefix+tokenString).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, ErrTokenNotFound
		}
		return uuid.Nil, err
	}

	userID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, ErrTokenNotFound
	}

	return userID, nil
}

// Revoke deletes the token record. Revoking an unknown token is not an error.
func (s *Service) Revoke(ctx context.Context, tokenString string) error {
	return s.rdb.Del(ctx, keyPrefix+tokenString).Err()
}

// GetTokenFromRequest extracts the token string from the Authorization header
func (s *Service) GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("authorization header missing")
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", errors.New("invalid authorization header format")
	}

	return parts[1], nil
}
