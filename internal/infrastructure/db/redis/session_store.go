package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/salon/booking-api/internal/core/domain"
)

const sessionKeyPrefix = "session:"

// expireSessionScript moves expires_at back to ARGV[1] only when it is later,
// so logout never revives or extends a session. ARGV[2] is the retention in
// milliseconds (0 keeps the key forever).
const expireSessionScript = `
local current = redis.call("HGET", KEYS[1], "expires_at")
if not current then
  return 0
end
local at = tonumber(ARGV[1])
if tonumber(current) > at then
  redis.call("HSET", KEYS[1], "expires_at", ARGV[1])
  local retention = tonumber(ARGV[2])
  if retention > 0 then
    redis.call("PEXPIREAT", KEYS[1], at + retention)
  end
  return 1
end
return 0
`

var expireSessionLua = redis.NewScript(expireSessionScript)

// SessionStore keeps sessions as Redis hashes keyed by token. Expired
// sessions stay readable as rows until the optional retention elapses.
type SessionStore struct {
	client    *redis.Client
	retention time.Duration
}

// NewSessionStore wraps client. A zero retention never removes keys.
func NewSessionStore(client *redis.Client, retention time.Duration) *SessionStore {
	return &SessionStore{client: client, retention: retention}
}

func (s *SessionStore) key(token string) string {
	return sessionKeyPrefix + token
}

func (s *SessionStore) Create(ctx context.Context, sess *domain.Session) error {
	key := s.key(sess.Token)
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, key,
			"user_id", sess.UserID,
			"expires_at", sess.ExpiresAt.UnixMilli(),
			"created_at", sess.CreatedAt.UnixMilli(),
		)
		if s.retention > 0 {
			p.PExpireAt(ctx, key, sess.ExpiresAt.Add(s.retention))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis create session: %w", err)
	}
	return nil
}

func (s *SessionStore) FindActive(ctx context.Context, token string, now time.Time) (*domain.Session, error) {
	fields, err := s.client.HGetAll(ctx, s.key(token)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis find session: %w", err)
	}
	if len(fields) == 0 {
		return nil, domain.ErrSessionNotFound
	}

	sess, err := decodeSession(token, fields)
	if err != nil {
		return nil, err
	}
	if !sess.ValidAt(now) {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

func (s *SessionStore) Expire(ctx context.Context, token string, at time.Time) error {
	err := expireSessionLua.Run(ctx, s.client, []string{s.key(token)}, at.UnixMilli(), s.retention.Milliseconds()).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("redis expire session: %w", err)
	}
	return nil
}

func decodeSession(token string, fields map[string]string) (*domain.Session, error) {
	userID, err := strconv.ParseInt(fields["user_id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("redis session: bad user_id: %w", err)
	}
	expires, err := strconv.ParseInt(fields["expires_at"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("redis session: bad expires_at: %w", err)
	}
	created, _ := strconv.ParseInt(fields["created_at"], 10, 64)

	return &domain.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.UnixMilli(expires).UTC(),
		CreatedAt: time.UnixMilli(created).UTC(),
	}, nil
}
