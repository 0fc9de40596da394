package redisclient

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"franchise-service/internal/models"

	"github.com/go-redis/redis/v8"
)

const profileCacheTTL = 15 * time.Minute

type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis client
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// CacheProfile stores a customer profile with a TTL
func (c *Client) CacheProfile(ctx context.Context, profile *models.CustomerProfile) error {
	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	return c.rdb.Set(ctx, profileKey(profile.ID), payload, profileCacheTTL).Err()
}

// CachedProfile retrieves a cached profile; (nil, nil) on cache miss
func (c *Client) CachedProfile(ctx context.Context, customerID string) (*models.CustomerProfile, error) {
	payload, err := c.rdb.Get(ctx, profileKey(customerID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var profile models.CustomerProfile
	if err := json.Unmarshal(payload, &profile); err != nil {
		return nil, fmt.Errorf("unmarshal cached profile: %w", err)
	}
	return &profile, nil
}

// InvalidateProfile drops a cached profile
func (c *Client) InvalidateProfile(ctx context.Context, customerID string) error {
	return c.rdb.Del(ctx, profileKey(customerID)).Err()
}

// AcquireLock acquires a distributed advisory lock
func (c *Client) AcquireLock(ctx context.Context, lockKey string, ttl time.Duration) (bool, error) {
	return c.rdb.SetNX(ctx, fmt.Sprintf("lock:%s", lockKey), "1", ttl).Result()
}

// ReleaseLock releases a distributed advisory lock
func (c *Client) ReleaseLock(ctx context.Context, lockKey string) error {
	return c.rdb.Del(ctx, fmt.Sprintf("lock:%s", lockKey)).Err()
}

func profileKey(customerID string) string {
	return fmt.Sprintf("customer:%s", customerID)
}
