package cache

import (
	"github.com/redis/go-redis/v9"
)

// NewClient creates a redis client for the slots cache and verification sessions
func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}
