package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/coocood/freecache"
	"github.com/prezlink/prezlink/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

type Cacher interface {
	Get(key string, value interface{}) error
	Set(key string, value interface{}, expiration time.Duration) error
	Delete(keys ...string) error
}

func NewCache(ctx context.Context, conf *config.CacheConfig) Cacher {
	var cacher Cacher
	if conf.RedisAddr == "" {
		cacher = NewMemoryCache(conf.MaxSize)
	} else {
		cacher = NewRedisCache(ctx, redis.NewClient(&redis.Options{
			Addr:            conf.RedisAddr,
			Password:        conf.RedisPass,
			DialTimeout:     5 * time.Second,
			ReadTimeout:     3 * time.Second,
			WriteTimeout:    3 * time.Second,
			PoolSize:        10,
			MinIdleConns:    5,
			MaxIdleConns:    10,
			ConnMaxIdleTime: 5 * time.Minute,
			ConnMaxLifetime: 1 * time.Hour,
		}))
	}
	return cacher
}

type MemoryCache struct {
	cache  *freecache.Cache
	prefix string
}

func NewMemoryCache(size int) *MemoryCache {
	return &MemoryCache{
		cache:  freecache.NewCache(size),
		prefix: "prezlink:",
	}
}

func (m *MemoryCache) Get(key string, value interface{}) error {
	data, err := m.cache.Get([]byte(m.prefix + key))
	if err != nil {
		return err
	}
	return msgpack.Unmarshal(data, value)
}

func (m *MemoryCache) Set(key string, value interface{}, expiration time.Duration) error {
	data, err := msgpack.Marshal(value)
	if err != nil {
		return err
	}
	return m.cache.Set([]byte(m.prefix+key), data, int(expiration.Seconds()))
}

func (m *MemoryCache) Delete(keys ...string) error {
	for _, key := range keys {
		m.cache.Del([]byte(m.prefix + key))
	}
	return nil
}

type RedisCache struct {
	client *redis.Client
	ctx    context.Context
	prefix string
}

func NewRedisCache(ctx context.Context, client *redis.Client) *RedisCache {
	return &RedisCache{
		client: client,
		prefix: "prezlink:",
		ctx:    ctx,
	}
}

func (r *RedisCache) Get(key string, value interface{}) error {
	data, err := r.client.Get(r.ctx, r.prefix+key).Bytes()
	if err != nil {
		return err
	}
	return msgpack.Unmarshal(data, value)
}

func (r *RedisCache) Set(key string, value interface{}, expiration time.Duration) error {
	data, err := msgpack.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(r.ctx, r.prefix+key, data, expiration).Err()
}

func (r *RedisCache) Delete(keys ...string) error {
	prefixed := make([]string, len(keys))
	for i := range keys {
		prefixed[i] = r.prefix + keys[i]
	}
	return r.client.Del(r.ctx, prefixed...).Err()
}

func Fetch[T any](cache Cacher, key string, expiration time.Duration, fn func() (T, error)) (T, error) {
	var zero, value T
	err := cache.Get(key, &value)
	if err != nil {
		if errors.Is(err, freecache.ErrNotFound) || errors.Is(err, redis.Nil) {
			value, err = fn()
			if err != nil {
				return zero, err
			}
			cache.Set(key, &value, expiration)
			return value, nil
		}
		return zero, err
	}
	return value, nil
}

func Key(args ...interface{}) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = fmt.Sprintf("%v", arg)
	}
	return strings.Join(parts, ":")
}
