package redis

import (
	"context"
	"fmt"
	"time"

	"pizzabot/internal/dialog"

	goredis "github.com/redis/go-redis/v9"
)

const activeSessionsKey = "active_sessions"

// NewClient connects and pings. Callers treat an error as "run without
// Redis".
func NewClient(ctx context.Context, addr, password string) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis at %s: %w", addr, err)
	}
	return client, nil
}

// SessionMirror keeps a "session:<id>" hash per live conversation, with the
// session timeout as TTL, and the set of active conversation ids.
type SessionMirror struct {
	client *goredis.Client
}

func NewSessionMirror(client *goredis.Client) *SessionMirror {
	return &SessionMirror{client: client}
}

func sessionKey(conversationID string) string {
	return "session:" + conversationID
}

func (m *SessionMirror) Touch(ctx context.Context, info dialog.SessionInfo, ttl time.Duration) error {
	key := sessionKey(info.ConversationID)
	_, err := m.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.HSet(ctx, key, map[string]interface{}{
			"state":         info.State,
			"customer_name": info.Name,
			"has_phone":     info.Phone != "",
			"last_activity": info.LastActivity.UTC().Format(time.RFC3339),
			"status":        "active",
		})
		pipe.SAdd(ctx, activeSessionsKey, info.ConversationID)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("mirroring session %s: %w", info.ConversationID, err)
	}
	return nil
}

func (m *SessionMirror) Remove(ctx context.Context, conversationID string) error {
	_, err := m.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Del(ctx, sessionKey(conversationID))
		pipe.SRem(ctx, activeSessionsKey, conversationID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("removing mirrored session %s: %w", conversationID, err)
	}
	return nil
}

// ActiveSessions lists the conversation ids currently mirrored.
func (m *SessionMirror) ActiveSessions(ctx context.Context) ([]string, error) {
	return m.client.SMembers(ctx, activeSessionsKey).Result()
}
