package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/khanhvu/devconnect/internal/application/service"
	"github.com/khanhvu/devconnect/internal/config"
	"github.com/khanhvu/devconnect/pkg/logger"
)

func NewRedisClient(cfg config.Config, log logger.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("cannot connect Redis: %w", err)
	}

	log.Info("Connected to Redis.")
	return rdb, nil
}

const (
	profileListKey = "devconnect:profiles:all"
	profileListTTL = 5 * time.Minute
)

type redisProfileCache struct {
	rdb *redis.Client
}

func NewRedisProfileCache(rdb *redis.Client) service.ProfileCache {
	return &redisProfileCache{rdb: rdb}
}

func (c *redisProfileCache) GetList(ctx context.Context) ([]byte, bool, error) {
	payload, err := c.rdb.Get(ctx, profileListKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}
	return payload, true, nil
}

func (c *redisProfileCache) SetList(ctx context.Context, payload []byte) error {
	return c.rdb.Set(ctx, profileListKey, payload, profileListTTL).Err()
}

func (c *redisProfileCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, profileListKey).Err()
}
