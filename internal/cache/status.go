package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"devinv/internal/model"
)

// StatusCache keeps the most recent measured status per device in Redis.
// All operations are best-effort; a cache failure never fails the caller.
type StatusCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logrus.Entry
}

// New connects to Redis and returns a StatusCache
func New(addr, password string, db int, ttl time.Duration, logger *logrus.Entry) (*StatusCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &StatusCache{
		client: client,
		ttl:    ttl,
		logger: logger.WithField("component", "status-cache"),
	}, nil
}

func statusKey(id int) string {
	return fmt.Sprintf("device:status:%d", id)
}

// SetStatus records the latest measured status for a device
func (c *StatusCache) SetStatus(ctx context.Context, id int, status model.DeviceStatus) {
	if err := c.client.Set(ctx, statusKey(id), string(status), c.ttl).Err(); err != nil {
		c.logger.Warnf("Failed to cache status for device %d: %v", id, err)
	}
}

// GetStatus returns the last cached status for a device, if any
func (c *StatusCache) GetStatus(ctx context.Context, id int) (model.DeviceStatus, bool) {
	val, err := c.client.Get(ctx, statusKey(id)).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		c.logger.Warnf("Failed to read cached status for device %d: %v", id, err)
		return "", false
	}
	if !model.ValidDeviceStatus(val) {
		return "", false
	}
	return model.DeviceStatus(val), true
}

// Invalidate drops the cached status for a device
func (c *StatusCache) Invalidate(ctx context.Context, id int) {
	if err := c.client.Del(ctx, statusKey(id)).Err(); err != nil {
		c.logger.Warnf("Failed to invalidate cached status for device %d: %v", id, err)
	}
}

// Close closes the Redis connection
func (c *StatusCache) Close() error {
	return c.client.Close()
}
