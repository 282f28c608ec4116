package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Yordanos7/gym-app-V2-pro/internal/telemetry/tracing"
)

// SessionChecker resolves a session token to the user that owns it.
type SessionChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
	now         func() time.Time
}

func NewSessionChecker(ttl time.Duration, redisClient *redis.Client) *SessionChecker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SessionChecker{
		ttl:         ttl,
		redisClient: redisClient,
		now:         time.Now,
	}
}

func (c *SessionChecker) CurrentUser(ctx context.Context, token string) (_ *SessionUser, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.checker.currentuser")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if token == "" {
		return nil, ErrSessionNotFound
	}

	fields, err := c.redisClient.HGetAll(ctx, sessionKey(token)).Result()
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if len(fields) == 0 || fields["user_id"] == "" {
		return nil, ErrSessionNotFound
	}

	createdAtUnix, err := strconv.ParseInt(fields["created_at"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse session created at: %w", err)
	}
	if c.now().Sub(time.Unix(createdAtUnix, 0)) > c.ttl {
		return nil, ErrSessionNotFound
	}

	return &SessionUser{
		ID:    fields["user_id"],
		Name:  fields["name"],
		Email: fields["email"],
	}, nil
}
