package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Cameron2125/HackathonApp/config"
)

var (
	// ErrCacheMiss 缓存未命中
	ErrCacheMiss = errors.New("缓存未命中")
	// ErrStaleFill 回填期间 tag 已被失效，放弃写入
	ErrStaleFill = errors.New("缓存回填已过期")
)

// Client Redis 客户端封装
// 当前用于文档读缓存与接口限流
type Client struct {
	rdb    goredis.UniversalClient
	logger *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── 读缓存 ──

// GetBytes 读取缓存值，不存在时返回 ErrCacheMiss
func (c *Client) GetBytes(ctx context.Context, key string) ([]byte, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, ErrCacheMiss
	}
	return b, err
}

func tagVersionKey(tag string) string {
	return tag + ":ver"
}

// TagVersion 读取 tag 的当前版本号，每次 InvalidateTag 递增；从未失效过时为 0
func (c *Client) TagVersion(ctx context.Context, tag string) (int64, error) {
	v, err := c.rdb.Get(ctx, tagVersionKey(tag)).Int64()
	if errors.Is(err, goredis.Nil) {
		return 0, nil
	}
	return v, err
}

// SetBytes 写入缓存值，并把 key 登记到 tag 集合中便于整体失效
// 仅当 tag 版本仍等于 version 时写入，否则返回 ErrStaleFill
func (c *Client) SetBytes(ctx context.Context, tag, key string, val []byte, ttl time.Duration, version int64) error {
	verKey := tagVersionKey(tag)
	err := c.rdb.Watch(ctx, func(tx *goredis.Tx) error {
		cur, err := tx.Get(ctx, verKey).Int64()
		if err != nil && !errors.Is(err, goredis.Nil) {
			return err
		}
		if cur != version {
			return ErrStaleFill
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, key, val, ttl)
			pipe.SAdd(ctx, tag, key)
			pipe.Expire(ctx, tag, ttl*2)
			return nil
		})
		return err
	}, verKey)
	if errors.Is(err, goredis.TxFailedErr) {
		return ErrStaleFill
	}
	return err
}

// InvalidateTag 递增 tag 版本并删除其下登记的全部缓存 key
func (c *Client) InvalidateTag(ctx context.Context, tag string) error {
	if err := c.rdb.Incr(ctx, tagVersionKey(tag)).Err(); err != nil {
		return err
	}
	keys, err := c.rdb.SMembers(ctx, tag).Result()
	if err != nil {
		return err
	}
	keys = append(keys, tag)
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return err
	}
	c.logger.Debug("缓存标签已失效", zap.String("tag", tag), zap.Int("keys", len(keys)-1))
	return nil
}

// ── 限流 ──

// CheckRateLimit 滑动窗口限流：窗口内请求数不超过 limit 时返回 true
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now()
	min := strconv.FormatInt(now.Add(-window).UnixNano(), 10)

	pipe := c.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", min)
	pipe.ZAdd(ctx, key, goredis.Z{Score: float64(now.UnixNano()), Member: uuid.NewString()})
	count := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return count.Val() <= int64(limit), nil
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}
