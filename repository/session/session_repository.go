package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/muhammadheryan/pos-terminal/model"
	"github.com/redis/go-redis/v9"
)

// SessionRepository stores logged-in cashier sessions in Redis.
type SessionRepository interface {
	SetSession(ctx context.Context, session *model.Session, ttl time.Duration) error
	GetSession(ctx context.Context, sessionID string) (*model.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

type redisRepo struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) SessionRepository {
	return &redisRepo{client: client}
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}

// SetSession stores the session with time-to-live
func (r *redisRepo) SetSession(ctx context.Context, session *model.Session, ttl time.Duration) error {
	body, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, sessionKey(session.ID), body, ttl).Err()
}

// GetSession returns nil without error when the session does not exist or expired.
func (r *redisRepo) GetSession(ctx context.Context, sessionID string) (*model.Session, error) {
	body, err := r.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var session model.Session
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *redisRepo) DeleteSession(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, sessionKey(sessionID)).Err()
}
