package docstore

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type memoryDoc struct {
	seq    uint64
	fields map[string]any
}

// memoryStore 进程内文档存储（store.driver=memory 与单元测试使用）
type memoryStore struct {
	mu   sync.RWMutex
	seq  uint64
	data map[string]map[string]*memoryDoc
}

// NewMemoryStore 创建内存文档存储
func NewMemoryStore() Store {
	return &memoryStore{data: make(map[string]map[string]*memoryDoc)}
}

func (s *memoryStore) Fetch(ctx context.Context, collection string, filters ...Filter) ([]Record, error) {
	want := make([]any, len(filters))
	for i, f := range filters {
		v, err := normalize(f.Value)
		if err != nil {
			return nil, fmt.Errorf("过滤条件 %s 无法编码: %w", f.Field, err)
		}
		want[i] = v
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	type hit struct {
		id  string
		doc *memoryDoc
	}
	var hits []hit
	for id, doc := range s.data[collection] {
		if matches(doc.fields, filters, want) {
			hits = append(hits, hit{id: id, doc: doc})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].doc.seq < hits[j].doc.seq })

	out := make([]Record, 0, len(hits))
	for _, h := range hits {
		out = append(out, Record{ID: h.id, Fields: copyFields(h.doc.fields)})
	}
	return out, nil
}

func matches(fields map[string]any, filters []Filter, want []any) bool {
	for i, f := range filters {
		got, ok := fields[f.Field]
		if !ok || !reflect.DeepEqual(got, want[i]) {
			return false
		}
	}
	return true
}

func (s *memoryStore) Get(ctx context.Context, collection, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.data[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return &Record{ID: id, Fields: copyFields(doc.fields)}, nil
}

func (s *memoryStore) Create(ctx context.Context, collection string, fields map[string]any) (string, error) {
	id := uuid.NewString()
	if err := s.Set(ctx, collection, id, fields); err != nil {
		return "", err
	}
	return id, nil
}

func (s *memoryStore) Set(ctx context.Context, collection, id string, fields map[string]any) error {
	norm, err := normalizeFields(fields)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	coll, ok := s.data[collection]
	if !ok {
		coll = make(map[string]*memoryDoc)
		s.data[collection] = coll
	}
	if doc, ok := coll[id]; ok {
		doc.fields = norm
		return nil
	}
	s.seq++
	coll[id] = &memoryDoc{seq: s.seq, fields: norm}
	return nil
}

func (s *memoryStore) Update(ctx context.Context, collection, id string, partial map[string]any) error {
	norm, err := normalizeFields(partial)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.data[collection][id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range norm {
		doc.fields[k] = v
	}
	return nil
}

func (s *memoryStore) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[collection][id]; !ok {
		return ErrNotFound
	}
	delete(s.data[collection], id)
	return nil
}

func normalizeFields(fields map[string]any) (map[string]any, error) {
	v, err := normalize(fields)
	if err != nil {
		return nil, fmt.Errorf("文档无法编码: %w", err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		m = map[string]any{}
	}
	return m, nil
}

func copyFields(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
