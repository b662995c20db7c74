package token

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestTokenService(t *testing.T) {
	ctx := context.Background()

	// Start Redis container
	req := testcontainers.ContainerRequest{
		Image:        "redis:7.0-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}
	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	assert.NoError(t, err)
	defer redisC.Terminate(ctx)

	host, err := redisC.Host(ctx)
	assert.NoError(t, err)
	port, err := redisC.MappedPort(ctx, "6379")
	assert.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port.Port()),
	})
	defer rdb.Close()

	err = rdb.Ping(ctx).Err()
	assert.NoError(t, err)

	svc := New(rdb)

	t.Run("Issue and Resolve", func(t *testing.T) {
		userID := uuid.New()

		tokenString, err := svc.Issue(ctx, userID)
		assert.NoError(t, err)
		assert.Len(t, tokenString, tokenBytes*2)

		got, err := svc.Resolve(ctx, tokenString)
		assert.NoError(t, err)
		assert.Equal(t, userID, got)
	})

	t.Run("Each login gets a distinct token", func(t *testing.T) {
		userID := uuid.New()

		first, err := svc.Issue(ctx, userID)
		assert.NoError(t, err)
		second, err := svc.Issue(ctx, userID)
		assert.NoError(t, err)
		assert.NotEqual(t, first, second)

		// Both remain valid
		got, err := svc.Resolve(ctx, first)
		assert.NoError(t, err)
		assert.Equal(t, userID, got)
		got, err = svc.Resolve(ctx, second)
		assert.NoError(t, err)
		assert.Equal(t, userID, got)
	})

	t.Run("Unknown token", func(t *testing.T) {
		_, err := svc.Resolve(ctx, "deadbeef")
		assert.ErrorIs(t, err, ErrTokenNotFound)
	})

	t.Run("Revoked token never resolves again", func(t *testing.T) {
		userID := uuid.New()

		tokenString, err := svc.Issue(ctx, userID)
		assert.NoError(t, err)

		err = svc.Revoke(ctx, tokenString)
		assert.NoError(t, err)

		_, err = svc.Resolve(ctx, tokenString)
		assert.ErrorIs(t, err, ErrTokenNotFound)
	})

	t.Run("Revoking one token leaves others valid", func(t *testing.T) {
		userID := uuid.New()

		keep, err := svc.Issue(ctx, userID)
		assert.NoError(t, err)
		drop, err := svc.Issue(ctx, userID)
		assert.NoError(t, err)

		err = svc.Revoke(ctx, drop)
		assert.NoError(t, err)

		got, err := svc.Resolve(ctx, keep)
		assert.NoError(t, err)
		assert.Equal(t, userID, got)
	})

	t.Run("Revoking an unknown token is not an error", func(t *testing.T) {
		err := svc.Revoke(ctx, "neverissued")
		assert.NoError(t, err)
	})
}

func TestGetTokenFromRequest(t *testing.T) {
	svc := &Service{}
	ctx := context.Background()

	tests := []struct {
		name        string
		authHeader  string
		expected    string
		expectError bool
	}{
		{
			name:       "valid bearer token",
			authHeader: "Bearer abc123",
			expected:   "abc123",
		},
		{
			name:       "lowercase scheme",
			authHeader: "bearer abc123",
			expected:   "abc123",
		},
		{
			name:        "missing header",
			authHeader:  "",
			expectError: true,
		},
		{
			name:        "wrong scheme",
			authHeader:  "Basic abc123",
			expectError: true,
		},
		{
			name:        "no token after scheme",
			authHeader:  "Bearer",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/user", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			got, err := svc.GetTokenFromRequest(ctx, req)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}
