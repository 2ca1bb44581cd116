package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Cameron2125/HackathonApp/config"
	"github.com/Cameron2125/HackathonApp/internal/docstore"
	"github.com/Cameron2125/HackathonApp/internal/repository"
)

// ── 测试辅助 ──

// 2024-01-01 是周一
var testNow = time.Date(2024, 1, 1, 10, 15, 0, 0, time.UTC)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func testCalendarConfig() *config.CalendarConfig {
	return &config.CalendarConfig{
		Timezone:             "UTC",
		RowHeight:            60,
		DefaultClassDuration: time.Hour,
		WindowDays:           7,
		WeekStart:            0,
		DayStripBatch:        30,
		DayStripThreshold:    7,
		NowRefreshInterval:   time.Minute,
	}
}

func testForumConfig() *config.ForumConfig {
	return &config.ForumConfig{RemovalMargin: 5, DefaultCommunity: "100"}
}

// newTestRepo 基于内存文档存储的真实 Repository
func newTestRepo() (*repository.Repository, docstore.Store) {
	store := docstore.NewMemoryStore()
	return repository.NewRepository(store, zap.NewNop()), store
}

var errStoreDown = errors.New("存储不可用")

// failingStore 所有操作均返回 errStoreDown
type failingStore struct{}

func (failingStore) Fetch(context.Context, string, ...docstore.Filter) ([]docstore.Record, error) {
	return nil, errStoreDown
}

func (failingStore) Get(context.Context, string, string) (*docstore.Record, error) {
	return nil, errStoreDown
}

func (failingStore) Create(context.Context, string, map[string]any) (string, error) {
	return "", errStoreDown
}

func (failingStore) Set(context.Context, string, string, map[string]any) error {
	return errStoreDown
}

func (failingStore) Update(context.Context, string, string, map[string]any) error {
	return errStoreDown
}

func (failingStore) Delete(context.Context, string, string) error {
	return errStoreDown
}
