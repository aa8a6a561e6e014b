package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fitlog/fitlog/internal/model"
)

const (
	// sessionPrefix is the Redis key prefix for session entries.
	sessionPrefix = "session:"
	// userSessionsPrefix is the Redis key prefix for per-user token sets.
	userSessionsPrefix = "sessions:user:"
)

// ErrSessionNotFound indicates the token has no live session.
var ErrSessionNotFound = errors.New("session not found")

// sessionKey builds the Redis key for a session token.
func sessionKey(token string) string {
	return sessionPrefix + token
}

// userSessionsKey builds the Redis key for a user's token set.
func userSessionsKey(userID int64) string {
	return userSessionsPrefix + strconv.FormatInt(userID, 10)
}

// SaveSession stores the principal under the token and indexes the token in
// the user's session set so all of a user's sessions can be revoked at once.
func (c *Cache) SaveSession(ctx context.Context, token string, p *model.Principal, ttl time.Duration) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal principal: %w", err)
	}

	pipe := c.client.TxPipeline()
	pipe.Set(ctx, sessionKey(token), data, ttl)
	pipe.SAdd(ctx, userSessionsKey(p.UserID), token)
	// The index outlives the longest session slightly; stale members are
	// dropped on the next revocation sweep.
	pipe.Expire(ctx, userSessionsKey(p.UserID), ttl+time.Hour)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// GetSession resolves a token to its principal.
func (c *Cache) GetSession(ctx context.Context, token string) (*model.Principal, error) {
	data, err := c.client.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	var p model.Principal
	if err := json.Unmarshal(data, &p); err != nil {
		// Corrupted entry - treat as missing
		return nil, ErrSessionNotFound
	}

	return &p, nil
}

// DeleteSession removes a single session. Deleting an absent session is not
// an error.
func (c *Cache) DeleteSession(ctx context.Context, token string) error {
	p, err := c.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil
		}
		return err
	}

	pipe := c.client.TxPipeline()
	pipe.Del(ctx, sessionKey(token))
	pipe.SRem(ctx, userSessionsKey(p.UserID), token)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteUserSessions revokes every live session of the user.
func (c *Cache) DeleteUserSessions(ctx context.Context, userID int64) error {
	setKey := userSessionsKey(userID)

	tokens, err := c.client.SMembers(ctx, setKey).Result()
	if err != nil {
		return fmt.Errorf("list user sessions: %w", err)
	}

	pipe := c.client.TxPipeline()
	for _, token := range tokens {
		pipe.Del(ctx, sessionKey(token))
	}
	pipe.Del(ctx, setKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete user sessions: %w", err)
	}
	return nil
}
