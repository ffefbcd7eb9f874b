package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

type LoginChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
}

func NewLoginChecker(ttl time.Duration, redisClient *redis.Client) *LoginChecker {
	return &LoginChecker{
		ttl:         ttl,
		redisClient: redisClient,
	}
}

func (c *LoginChecker) IsLogged(ctx context.Context, token string) (bool, error) {
	sessionKey := sessionKeyPrefix + token
	cmd := c.redisClient.Exists(ctx, sessionKey)
	if err := cmd.Err(); err != nil {
		return false, err
	}
	return cmd.Val() > 0, nil
}

// UserIDFromToken resolves the session token to its owning user.
// Returns ErrNotLoggedIn for unknown or expired tokens.
func (c *LoginChecker) UserIDFromToken(ctx context.Context, token string) (uuid.UUID, error) {
	sessionKey := sessionKeyPrefix + token
	cmd := c.redisClient.Get(ctx, sessionKey)
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, ErrNotLoggedIn
		}
		return uuid.Nil, err
	}

	userID, err := uuid.Parse(cmd.Val())
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse session user id: %w", err)
	}

	return userID, nil
}
