package repository

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Cameron2125/HackathonApp/internal/docstore"
	"github.com/Cameron2125/HackathonApp/internal/model"
)

// UserRepository 用户资料数据访问接口（文档 ID = 用户 ID）
type UserRepository interface {
	Get(ctx context.Context, uid string) (*model.UserProfile, error)
	Upsert(ctx context.Context, p *model.UserProfile) error
}

type userRepo struct {
	store  docstore.Store
	logger *zap.Logger
}

// NewUserRepo 创建 UserRepository 实例
func NewUserRepo(store docstore.Store, logger *zap.Logger) UserRepository {
	return &userRepo{store: store, logger: logger}
}

func setUserID(p *model.UserProfile, id string) { p.ID = id }

func (r *userRepo) Get(ctx context.Context, uid string) (*model.UserProfile, error) {
	return getOne(ctx, r.store, model.CollectionUsers, uid, setUserID)
}

func (r *userRepo) Upsert(ctx context.Context, p *model.UserProfile) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	fields, err := docstore.Encode(p)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, model.CollectionUsers, p.ID, fields)
}

// ── Communities ──

// CommunityRepository 社区数据访问接口
type CommunityRepository interface {
	List(ctx context.Context) ([]model.Community, error)
	GetByID(ctx context.Context, id string) (*model.Community, error)
	Ensure(ctx context.Context, c *model.Community) error
}

type communityRepo struct {
	store  docstore.Store
	logger *zap.Logger
}

// NewCommunityRepo 创建 CommunityRepository 实例
func NewCommunityRepo(store docstore.Store, logger *zap.Logger) CommunityRepository {
	return &communityRepo{store: store, logger: logger}
}

func setCommunityID(c *model.Community, id string) { c.ID = id }

func (r *communityRepo) List(ctx context.Context) ([]model.Community, error) {
	recs, err := r.store.Fetch(ctx, model.CollectionCommunities)
	if err != nil {
		return nil, err
	}
	return decodeAll(r.logger, model.CollectionCommunities, recs, setCommunityID), nil
}

func (r *communityRepo) GetByID(ctx context.Context, id string) (*model.Community, error) {
	return getOne(ctx, r.store, model.CollectionCommunities, id, setCommunityID)
}

// Ensure 以 c.ID 写入社区文档（已存在时替换）
func (r *communityRepo) Ensure(ctx context.Context, c *model.Community) error {
	fields, err := docstore.Encode(c)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, model.CollectionCommunities, c.ID, fields)
}
