package repository

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Cameron2125/HackathonApp/internal/docstore"
	"github.com/Cameron2125/HackathonApp/internal/model"
)

// ClassRepository 课程数据访问接口
type ClassRepository interface {
	Create(ctx context.Context, c *model.Class) error
	GetByID(ctx context.Context, id string) (*model.Class, error)
	ListByOwner(ctx context.Context, uid string) ([]model.Class, error)
	Delete(ctx context.Context, id string) error
}

type classRepo struct {
	store  docstore.Store
	logger *zap.Logger
}

// NewClassRepo 创建 ClassRepository 实例
func NewClassRepo(store docstore.Store, logger *zap.Logger) ClassRepository {
	return &classRepo{store: store, logger: logger}
}

func setClassID(c *model.Class, id string) { c.ID = id }

func (r *classRepo) Create(ctx context.Context, c *model.Class) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	fields, err := docstore.Encode(c)
	if err != nil {
		return err
	}
	id, err := r.store.Create(ctx, model.CollectionClasses, fields)
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

func (r *classRepo) GetByID(ctx context.Context, id string) (*model.Class, error) {
	return getOne(ctx, r.store, model.CollectionClasses, id, setClassID)
}

func (r *classRepo) ListByOwner(ctx context.Context, uid string) ([]model.Class, error) {
	recs, err := r.store.Fetch(ctx, model.CollectionClasses, docstore.Where("UID", uid))
	if err != nil {
		return nil, err
	}
	return decodeAll(r.logger, model.CollectionClasses, recs, setClassID), nil
}

func (r *classRepo) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, model.CollectionClasses, id)
}
