package repository

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Cameron2125/HackathonApp/internal/docstore"
	"github.com/Cameron2125/HackathonApp/internal/model"
)

// AssignmentRepository 作业数据访问接口
type AssignmentRepository interface {
	Create(ctx context.Context, a *model.Assignment) error
	GetByID(ctx context.Context, id string) (*model.Assignment, error)
	ListByOwner(ctx context.Context, uid string) ([]model.Assignment, error)
	SetCompleted(ctx context.Context, id string, completed bool) error
}

type assignmentRepo struct {
	store  docstore.Store
	logger *zap.Logger
}

// NewAssignmentRepo 创建 AssignmentRepository 实例
func NewAssignmentRepo(store docstore.Store, logger *zap.Logger) AssignmentRepository {
	return &assignmentRepo{store: store, logger: logger}
}

func setAssignmentID(a *model.Assignment, id string) { a.ID = id }

func (r *assignmentRepo) Create(ctx context.Context, a *model.Assignment) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	fields, err := docstore.Encode(a)
	if err != nil {
		return err
	}
	id, err := r.store.Create(ctx, model.CollectionAssignments, fields)
	if err != nil {
		return err
	}
	a.ID = id
	return nil
}

func (r *assignmentRepo) GetByID(ctx context.Context, id string) (*model.Assignment, error) {
	return getOne(ctx, r.store, model.CollectionAssignments, id, setAssignmentID)
}

func (r *assignmentRepo) ListByOwner(ctx context.Context, uid string) ([]model.Assignment, error) {
	recs, err := r.store.Fetch(ctx, model.CollectionAssignments, docstore.Where("UID", uid))
	if err != nil {
		return nil, err
	}
	return decodeAll(r.logger, model.CollectionAssignments, recs, setAssignmentID), nil
}

func (r *assignmentRepo) SetCompleted(ctx context.Context, id string, completed bool) error {
	return r.store.Update(ctx, model.CollectionAssignments, id, map[string]any{"completed": completed})
}

// ── MiscTasks ──

// MiscTaskRepository 待办数据访问接口
type MiscTaskRepository interface {
	Create(ctx context.Context, m *model.MiscTask) error
	GetByID(ctx context.Context, id string) (*model.MiscTask, error)
	ListByOwner(ctx context.Context, uid string) ([]model.MiscTask, error)
	SetCompleted(ctx context.Context, id string, completed bool) error
}

type miscTaskRepo struct {
	store  docstore.Store
	logger *zap.Logger
}

// NewMiscTaskRepo 创建 MiscTaskRepository 实例
func NewMiscTaskRepo(store docstore.Store, logger *zap.Logger) MiscTaskRepository {
	return &miscTaskRepo{store: store, logger: logger}
}

func setMiscTaskID(m *model.MiscTask, id string) { m.ID = id }

func (r *miscTaskRepo) Create(ctx context.Context, m *model.MiscTask) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	fields, err := docstore.Encode(m)
	if err != nil {
		return err
	}
	id, err := r.store.Create(ctx, model.CollectionMiscTasks, fields)
	if err != nil {
		return err
	}
	m.ID = id
	return nil
}

func (r *miscTaskRepo) GetByID(ctx context.Context, id string) (*model.MiscTask, error) {
	return getOne(ctx, r.store, model.CollectionMiscTasks, id, setMiscTaskID)
}

func (r *miscTaskRepo) ListByOwner(ctx context.Context, uid string) ([]model.MiscTask, error) {
	recs, err := r.store.Fetch(ctx, model.CollectionMiscTasks, docstore.Where("UID", uid))
	if err != nil {
		return nil, err
	}
	return decodeAll(r.logger, model.CollectionMiscTasks, recs, setMiscTaskID), nil
}

func (r *miscTaskRepo) SetCompleted(ctx context.Context, id string, completed bool) error {
	return r.store.Update(ctx, model.CollectionMiscTasks, id, map[string]any{"completed": completed})
}
