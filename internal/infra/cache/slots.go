package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// SlotsCache кеширует ответ эндпоинта доступных слотов на 60 секунд.
// Ошибки Redis не фатальны: при недоступном кеше слоты считаются заново.
type SlotsCache struct {
	rdb *redis.Client
}

// NewSlotsCache creates a slots cache over the given redis client
func NewSlotsCache(rdb *redis.Client) *SlotsCache {
	return &SlotsCache{rdb: rdb}
}

// Get returns the cached slot list for a date.
// Второе значение false означает промах кеша.
func (c *SlotsCache) Get(ctx context.Context, date string) ([]string, bool, error) {
	raw, err := c.rdb.Get(ctx, fmt.Sprintf(KeySlots, date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("slots cache: get: %w", err)
	}

	var slots []string
	if err := json.Unmarshal(raw, &slots); err != nil {
		// Битое значение в кеше - считаем промахом
		return nil, false, nil
	}

	return slots, true, nil
}

// Set stores the slot list for a date with the standard TTL
func (c *SlotsCache) Set(ctx context.Context, date string, slots []string) error {
	raw, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("slots cache: marshal: %w", err)
	}

	if err := c.rdb.Set(ctx, fmt.Sprintf(KeySlots, date), raw, TTLSlots).Err(); err != nil {
		return fmt.Errorf("slots cache: set: %w", err)
	}

	return nil
}

// Invalidate drops the cached slots for a date.
// Вызывается после создания записи, чтобы занятый слот исчез сразу.
func (c *SlotsCache) Invalidate(ctx context.Context, date string) error {
	if err := c.rdb.Del(ctx, fmt.Sprintf(KeySlots, date)).Err(); err != nil {
		return fmt.Errorf("slots cache: invalidate: %w", err)
	}
	return nil
}
