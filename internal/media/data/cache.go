package data

import (
	"context"
	"encoding/json"
	"time"

	"github.com/casemedia/casemedia-backend/internal/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisReadModelCache 基于 Redis 的读模型缓存，实现 biz.ReadModelCache。
// 缓存只是加速层：任何 Redis 故障都静默降级为穿透查询
type RedisReadModelCache struct {
	client *redis.Client
	logger *logger.Logger
}

// NewRedisReadModelCache 创建读模型缓存
func NewRedisReadModelCache(client *redis.Client, log *logger.Logger) *RedisReadModelCache {
	return &RedisReadModelCache{
		client: client,
		logger: log,
	}
}

// GetStrings 读取字符串列表缓存，未命中或出错返回 false
func (c *RedisReadModelCache) GetStrings(ctx context.Context, key string) ([]string, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		c.logger.Warn("cache entry corrupted", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	return values, true
}

// SetStrings 写入字符串列表缓存
func (c *RedisReadModelCache) SetStrings(ctx context.Context, key string, values []string, ttl time.Duration) {
	data, err := json.Marshal(values)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate 删除缓存键
func (c *RedisReadModelCache) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
