package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Document documents 表的一行：collection + document_id 唯一定位一份 JSONB 文档
type Document struct {
	Collection string            `gorm:"primaryKey;type:varchar(64)"`
	DocumentID string            `gorm:"primaryKey;column:document_id;type:varchar(128)"`
	Data       datatypes.JSONMap `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt  time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
	DeletedAt  gorm.DeletedAt    `gorm:"index"`
}

func (Document) TableName() string { return "documents" }

type gormStore struct {
	db *gorm.DB
}

// NewGormStore 基于 PostgreSQL JSONB 的文档存储
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Fetch(ctx context.Context, collection string, filters ...Filter) ([]Record, error) {
	db := s.db.WithContext(ctx).Where("collection = ?", collection)

	// 等值过滤使用 JSONB 包含运算，可命中 jsonb_path_ops GIN 索引
	if len(filters) > 0 {
		cond := make(map[string]any, len(filters))
		for _, f := range filters {
			cond[f.Field] = f.Value
		}
		b, err := sonic.Marshal(cond)
		if err != nil {
			return nil, fmt.Errorf("过滤条件无法编码: %w", err)
		}
		db = db.Where("data @> ?::jsonb", string(b))
	}

	var docs []Document
	if err := db.Order("created_at ASC, document_id ASC").Find(&docs).Error; err != nil {
		return nil, err
	}

	out := make([]Record, 0, len(docs))
	for i := range docs {
		out = append(out, Record{ID: docs[i].DocumentID, Fields: map[string]any(docs[i].Data)})
	}
	return out, nil
}

func (s *gormStore) Get(ctx context.Context, collection, id string) (*Record, error) {
	var doc Document
	err := s.db.WithContext(ctx).
		Where("collection = ? AND document_id = ?", collection, id).
		First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &Record{ID: doc.DocumentID, Fields: map[string]any(doc.Data)}, nil
}

func (s *gormStore) Create(ctx context.Context, collection string, fields map[string]any) (string, error) {
	doc := Document{
		Collection: collection,
		DocumentID: uuid.NewString(),
		Data:       datatypes.JSONMap(fields),
	}
	if err := s.db.WithContext(ctx).Create(&doc).Error; err != nil {
		return "", err
	}
	return doc.DocumentID, nil
}

func (s *gormStore) Set(ctx context.Context, collection, id string, fields map[string]any) error {
	doc := Document{
		Collection: collection,
		DocumentID: id,
		Data:       datatypes.JSONMap(fields),
	}
	// 已存在（含软删除）时整体替换并恢复
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "collection"}, {Name: "document_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"data":       doc.Data,
			"updated_at": gorm.Expr("NOW()"),
			"deleted_at": nil,
		}),
	}).Create(&doc).Error
}

func (s *gormStore) Update(ctx context.Context, collection, id string, partial map[string]any) error {
	b, err := sonic.Marshal(partial)
	if err != nil {
		return fmt.Errorf("文档无法编码: %w", err)
	}

	result := s.db.WithContext(ctx).
		Model(&Document{}).
		Where("collection = ? AND document_id = ?", collection, id).
		Updates(map[string]any{
			"data":       gorm.Expr("data || ?::jsonb", string(b)),
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) Delete(ctx context.Context, collection, id string) error {
	result := s.db.WithContext(ctx).
		Where("collection = ? AND document_id = ?", collection, id).
		Delete(&Document{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
