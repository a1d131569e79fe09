package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/skillbridge/marketplace-go/models"
)

const (
	historyKeyPrefix = "chat:history:" // chat:history:{project_id}
	historyTTL       = 24 * time.Hour
)

// MessageCache mirrors a room's ordered history in a Redis list so
// hydration on join does not hit the database. The database stays the
// source of truth: the key is only ever created by Fill with the full
// history, and Push appends with RPUSHX so a cold or evicted key stays
// absent until the next rebuild.
type MessageCache struct {
	client *redis.Client
}

// New returns nil when addr is empty; a nil cache disables caching and
// every method is a safe no-op.
func New(addr, password string) *MessageCache {
	if addr == "" {
		return nil
	}
	return &MessageCache{
		client: redis.NewClient(&redis.Options{Addr: addr, Password: password}),
	}
}

// NewWithClient is the seam for tests (miniredis).
func NewWithClient(client *redis.Client) *MessageCache {
	return &MessageCache{client: client}
}

// Get returns the cached history, oldest first. ok is false on a cold
// key or any Redis failure; callers fall back to the store.
func (c *MessageCache) Get(ctx context.Context, projectID uint) ([]models.Message, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.LRange(ctx, c.key(projectID), 0, -1).Result()
	if err != nil || len(raw) == 0 {
		return nil, false
	}
	messages := make([]models.Message, 0, len(raw))
	for _, item := range raw {
		var msg models.Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, false
		}
		messages = append(messages, msg)
	}
	return messages, true
}

// Fill replaces the cached history with the given full sequence.
func (c *MessageCache) Fill(ctx context.Context, projectID uint, messages []models.Message) error {
	if c == nil {
		return nil
	}
	key := c.key(projectID)
	pipe := c.client.TxPipeline()
	pipe.Del(ctx, key)
	for _, msg := range messages {
		data, err := json.Marshal(msg)
		if err != nil {
			return fmt.Errorf("marshal message: %w", err)
		}
		pipe.RPush(ctx, key, data)
	}
	pipe.Expire(ctx, key, historyTTL)
	_, err := pipe.Exec(ctx)
	return err
}

// Push appends one message to an already-warm history. It deliberately
// does nothing when the key is absent so a partial list can never be
// served as full history.
func (c *MessageCache) Push(ctx context.Context, projectID uint, msg models.Message) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	key := c.key(projectID)
	if err := c.client.RPushX(ctx, key, data).Err(); err != nil {
		return err
	}
	return c.client.Expire(ctx, key, historyTTL).Err()
}

// Invalidate drops the cached history; the next read rebuilds it.
func (c *MessageCache) Invalidate(ctx context.Context, projectID uint) error {
	if c == nil {
		return nil
	}
	return c.client.Del(ctx, c.key(projectID)).Err()
}

func (c *MessageCache) key(projectID uint) string {
	return fmt.Sprintf("%s%d", historyKeyPrefix, projectID)
}
