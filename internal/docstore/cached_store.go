package docstore

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/Cameron2125/HackathonApp/pkg/redis"
)

// Cache 读缓存所需的最小能力，*redis.Client 实现该接口
type Cache interface {
	GetBytes(ctx context.Context, key string) ([]byte, error)
	TagVersion(ctx context.Context, tag string) (int64, error)
	SetBytes(ctx context.Context, tag, key string, val []byte, ttl time.Duration, version int64) error
	InvalidateTag(ctx context.Context, tag string) error
}

// cachedStore 读穿透缓存装饰器
//
// Fetch / Get 先查缓存，未命中时读底层存储并回填；
// 任何写操作成功后失效整个集合的缓存并递增集合版本。
// 回填以读底层之前的版本为条件，读取期间发生写入则放弃回填。
// 缓存故障只记日志，不影响读写。
type cachedStore struct {
	next   Store
	cache  Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedStore 为 next 加上读缓存
func NewCachedStore(next Store, cache Cache, ttl time.Duration, logger *zap.Logger) Store {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &cachedStore{next: next, cache: cache, ttl: ttl, logger: logger}
}

func collectionTag(collection string) string {
	return "docstore:tag:" + collection
}

func fetchKey(collection string, filters []Filter) (string, error) {
	sorted := make([]Filter, len(filters))
	copy(sorted, filters)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Field < sorted[j].Field })

	pairs := make([][2]any, len(sorted))
	for i, f := range sorted {
		pairs[i] = [2]any{f.Field, f.Value}
	}
	b, err := sonic.Marshal(pairs)
	if err != nil {
		return "", err
	}
	sum := sha1.Sum(b)
	return fmt.Sprintf("docstore:%s:q:%s", collection, hex.EncodeToString(sum[:])), nil
}

func (s *cachedStore) Fetch(ctx context.Context, collection string, filters ...Filter) ([]Record, error) {
	key, err := fetchKey(collection, filters)
	if err != nil {
		return s.next.Fetch(ctx, collection, filters...)
	}

	if b, err := s.cache.GetBytes(ctx, key); err == nil {
		var recs []Record
		if err := sonic.Unmarshal(b, &recs); err == nil {
			return recs, nil
		}
	} else if !errors.Is(err, redis.ErrCacheMiss) {
		s.logger.Warn("读取文档缓存失败", zap.String("collection", collection), zap.Error(err))
	}

	version, versionErr := s.cache.TagVersion(ctx, collectionTag(collection))
	recs, err := s.next.Fetch(ctx, collection, filters...)
	if err != nil {
		return nil, err
	}
	if versionErr == nil {
		s.store(ctx, collection, key, recs, version)
	}
	return recs, nil
}

func (s *cachedStore) Get(ctx context.Context, collection, id string) (*Record, error) {
	key := fmt.Sprintf("docstore:%s:id:%s", collection, id)

	if b, err := s.cache.GetBytes(ctx, key); err == nil {
		var rec Record
		if err := sonic.Unmarshal(b, &rec); err == nil {
			return &rec, nil
		}
	} else if !errors.Is(err, redis.ErrCacheMiss) {
		s.logger.Warn("读取文档缓存失败", zap.String("collection", collection), zap.Error(err))
	}

	version, versionErr := s.cache.TagVersion(ctx, collectionTag(collection))
	rec, err := s.next.Get(ctx, collection, id)
	if err != nil {
		return nil, err
	}
	if versionErr == nil {
		s.store(ctx, collection, key, rec, version)
	}
	return rec, nil
}

func (s *cachedStore) store(ctx context.Context, collection, key string, v any, version int64) {
	b, err := sonic.Marshal(v)
	if err != nil {
		return
	}
	err = s.cache.SetBytes(ctx, collectionTag(collection), key, b, s.ttl, version)
	switch {
	case err == nil:
	case errors.Is(err, redis.ErrStaleFill):
		s.logger.Debug("集合已变更，放弃回填", zap.String("collection", collection))
	default:
		s.logger.Warn("写入文档缓存失败", zap.String("collection", collection), zap.Error(err))
	}
}

func (s *cachedStore) invalidate(ctx context.Context, collection string) {
	if err := s.cache.InvalidateTag(ctx, collectionTag(collection)); err != nil {
		s.logger.Warn("失效文档缓存失败", zap.String("collection", collection), zap.Error(err))
	}
}

func (s *cachedStore) Create(ctx context.Context, collection string, fields map[string]any) (string, error) {
	id, err := s.next.Create(ctx, collection, fields)
	if err != nil {
		return "", err
	}
	s.invalidate(ctx, collection)
	return id, nil
}

func (s *cachedStore) Set(ctx context.Context, collection, id string, fields map[string]any) error {
	if err := s.next.Set(ctx, collection, id, fields); err != nil {
		return err
	}
	s.invalidate(ctx, collection)
	return nil
}

func (s *cachedStore) Update(ctx context.Context, collection, id string, partial map[string]any) error {
	if err := s.next.Update(ctx, collection, id, partial); err != nil {
		return err
	}
	s.invalidate(ctx, collection)
	return nil
}

func (s *cachedStore) Delete(ctx context.Context, collection, id string) error {
	if err := s.next.Delete(ctx, collection, id); err != nil {
		return err
	}
	s.invalidate(ctx, collection)
	return nil
}
