package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

var Client *redis.Client

// InitRedis initializes Redis connection
func InitRedis(addr, password string, db int) error {
	Client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx := context.Background()
	if err := Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logrus.Info("Redis connected")
	return nil
}

// Close closes the Redis connection
func Close() error {
	if Client != nil {
		return Client.Close()
	}
	return nil
}

func revokedKey(jti string) string {
	return "session:revoked:" + jti
}

// RevokeSession marks a token's jti as revoked until the token would
// have expired anyway. Used by logout.
func RevokeSession(ctx context.Context, jti string, ttl time.Duration) error {
	if Client == nil {
		return fmt.Errorf("redis not initialized")
	}
	if ttl <= 0 {
		// Token already expired; nothing to revoke
		return nil
	}
	return Client.Set(ctx, revokedKey(jti), "1", ttl).Err()
}

// IsSessionRevoked reports whether the jti was revoked. A redis error
// fails open: token expiry still bounds the session lifetime.
func IsSessionRevoked(ctx context.Context, jti string) bool {
	if Client == nil || jti == "" {
		return false
	}
	n, err := Client.Exists(ctx, revokedKey(jti)).Result()
	if err != nil {
		logrus.WithError(err).Warn("session revocation check failed")
		return false
	}
	return n > 0
}
