package repository

import (
	"context"

	"go.uber.org/zap"

	"github.com/Cameron2125/HackathonApp/internal/docstore"
	"github.com/Cameron2125/HackathonApp/internal/model"
)

// QuestionRepository 社区问题数据访问接口
type QuestionRepository interface {
	Create(ctx context.Context, q *model.Question) error
	GetByID(ctx context.Context, id string) (*model.Question, error)
	ListByCommunity(ctx context.Context, cid string) ([]model.Question, error)
	HasAny(ctx context.Context, cid string) (bool, error)
	UpdateVotes(ctx context.Context, id string, upvotes, downvotes int) error
	SetAnswered(ctx context.Context, id string, answered bool, responseMID string) error
	Delete(ctx context.Context, id string) error
}

type questionRepo struct {
	store  docstore.Store
	logger *zap.Logger
}

// NewQuestionRepo 创建 QuestionRepository 实例
func NewQuestionRepo(store docstore.Store, logger *zap.Logger) QuestionRepository {
	return &questionRepo{store: store, logger: logger}
}

func setQuestionID(q *model.Question, id string) { q.ID = id }

func (r *questionRepo) Create(ctx context.Context, q *model.Question) error {
	fields, err := docstore.Encode(q)
	if err != nil {
		return err
	}
	id, err := r.store.Create(ctx, model.CollectionQuestions, fields)
	if err != nil {
		return err
	}
	q.ID = id
	return nil
}

func (r *questionRepo) GetByID(ctx context.Context, id string) (*model.Question, error) {
	return getOne(ctx, r.store, model.CollectionQuestions, id, setQuestionID)
}

func (r *questionRepo) ListByCommunity(ctx context.Context, cid string) ([]model.Question, error) {
	recs, err := r.store.Fetch(ctx, model.CollectionQuestions, docstore.Where("CID", cid))
	if err != nil {
		return nil, err
	}
	return decodeAll(r.logger, model.CollectionQuestions, recs, setQuestionID), nil
}

func (r *questionRepo) HasAny(ctx context.Context, cid string) (bool, error) {
	recs, err := r.store.Fetch(ctx, model.CollectionQuestions, docstore.Where("CID", cid))
	if err != nil {
		return false, err
	}
	return len(recs) > 0, nil
}

func (r *questionRepo) UpdateVotes(ctx context.Context, id string, upvotes, downvotes int) error {
	return r.store.Update(ctx, model.CollectionQuestions, id, map[string]any{
		"Upvotes":   upvotes,
		"Downvotes": downvotes,
	})
}

func (r *questionRepo) SetAnswered(ctx context.Context, id string, answered bool, responseMID string) error {
	return r.store.Update(ctx, model.CollectionQuestions, id, map[string]any{
		"Answered":    answered,
		"ResponseMID": responseMID,
	})
}

func (r *questionRepo) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, model.CollectionQuestions, id)
}

// ── Messages ──

// MessageRepository 回复数据访问接口
type MessageRepository interface {
	Create(ctx context.Context, m *model.Message) error
	GetByID(ctx context.Context, id string) (*model.Message, error)
	ListByQuestion(ctx context.Context, qid string) ([]model.Message, error)
	UpdateVotes(ctx context.Context, id string, likes, dislikes int) error
	Delete(ctx context.Context, id string) error
}

type messageRepo struct {
	store  docstore.Store
	logger *zap.Logger
}

// NewMessageRepo 创建 MessageRepository 实例
func NewMessageRepo(store docstore.Store, logger *zap.Logger) MessageRepository {
	return &messageRepo{store: store, logger: logger}
}

func setMessageID(m *model.Message, id string) { m.ID = id }

func (r *messageRepo) Create(ctx context.Context, m *model.Message) error {
	fields, err := docstore.Encode(m)
	if err != nil {
		return err
	}
	id, err := r.store.Create(ctx, model.CollectionMessages, fields)
	if err != nil {
		return err
	}
	m.ID = id
	return nil
}

func (r *messageRepo) GetByID(ctx context.Context, id string) (*model.Message, error) {
	return getOne(ctx, r.store, model.CollectionMessages, id, setMessageID)
}

func (r *messageRepo) ListByQuestion(ctx context.Context, qid string) ([]model.Message, error) {
	recs, err := r.store.Fetch(ctx, model.CollectionMessages, docstore.Where("QID", qid))
	if err != nil {
		return nil, err
	}
	return decodeAll(r.logger, model.CollectionMessages, recs, setMessageID), nil
}

func (r *messageRepo) UpdateVotes(ctx context.Context, id string, likes, dislikes int) error {
	return r.store.Update(ctx, model.CollectionMessages, id, map[string]any{
		"Likes":    likes,
		"Dislikes": dislikes,
	})
}

func (r *messageRepo) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, model.CollectionMessages, id)
}
