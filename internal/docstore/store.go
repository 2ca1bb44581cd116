package docstore

import (
	"context"

	apperrors "github.com/Cameron2125/HackathonApp/pkg/errors"
)

// ErrNotFound 记录不存在
var ErrNotFound = apperrors.ErrRecordNotFound

// Record 文档记录：ID + 任意字段
type Record struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

// Filter 字段等值过滤，多个 Filter 之间为 AND
type Filter struct {
	Field string
	Value any
}

// Where 构造等值过滤条件
func Where(field string, value any) Filter {
	return Filter{Field: field, Value: value}
}

// Store 外部文档存储
// 不约束文档结构，结构校验由调用方（Decode）负责
type Store interface {
	// Fetch 读取集合内全部或满足过滤条件的记录，按创建顺序返回
	Fetch(ctx context.Context, collection string, filters ...Filter) ([]Record, error)
	Get(ctx context.Context, collection, id string) (*Record, error)
	// Create 插入记录并返回生成的 ID
	Create(ctx context.Context, collection string, fields map[string]any) (string, error)
	// Set 以调用方指定的 ID 创建或整体替换记录
	Set(ctx context.Context, collection, id string, fields map[string]any) error
	// Update 局部更新，仅覆盖给出的字段
	Update(ctx context.Context, collection, id string, partial map[string]any) error
	Delete(ctx context.Context, collection, id string) error
}
