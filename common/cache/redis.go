package cache

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/blake2b"
)

// ErrMiss 缓存未命中
var ErrMiss = errors.New("缓存未命中")

// Store 共享的结果缓存，多个 gate 实例之间复用分析结果
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// RedisStore 基于 redis 的 Store
type RedisStore struct {
	cli    redis.Cmdable
	closer func() error
	prefix string
	ttl    time.Duration
}

type RedisOptions struct {
	Addr     string
	Password string // 如果没有密码，这个字段为空字符串，Redis会忽略
	DB       int
	PoolSize int
	Prefix   string
	TTL      time.Duration
}

// NewRedisStore 连接 redis 并检查连通性
func NewRedisStore(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	cli := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
		PoolSize: opts.PoolSize,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := cli.Ping(pingCtx).Err(); err != nil {
		_ = cli.Close()
		return nil, fmt.Errorf("redis 连接错误: %w", err)
	}
	return NewRedisStoreFromClient(cli, opts.Prefix, opts.TTL, cli.Close), nil
}

// NewRedisStoreFromClient 使用已有客户端，closer 可为 nil
func NewRedisStoreFromClient(cli redis.Cmdable, prefix string, ttl time.Duration, closer func() error) *RedisStore {
	return &RedisStore{cli: cli, closer: closer, prefix: prefix, ttl: ttl}
}

// Key 返回 key 在 redis 中的实际键名：前缀加 blake2b 摘要的前 16 字节
func (r *RedisStore) Key(key string) string {
	sum := blake2b.Sum256([]byte(key))
	return r.prefix + hex.EncodeToString(sum[:16])
}

func (r *RedisStore) Get(ctx context.Context, key string) (string, error) {
	v, err := r.cli.Get(ctx, r.Key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrMiss
	}
	if err != nil {
		return "", fmt.Errorf("redis 读取失败: %w", err)
	}
	return v, nil
}

func (r *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := r.cli.Set(ctx, r.Key(key), value, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis 写入失败: %w", err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer()
}
