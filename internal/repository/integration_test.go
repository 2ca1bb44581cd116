//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Cameron2125/HackathonApp/internal/docstore"
	"github.com/Cameron2125/HackathonApp/internal/model"
	"github.com/Cameron2125/HackathonApp/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=planner password=planner_password dbname=planner_test sslmode=disable TimeZone=UTC"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	if err := testDB.AutoMigrate(&docstore.Document{}); err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	os.Exit(code)
}

func cleanup(t *testing.T, collections ...string) {
	t.Helper()
	testDB.Unscoped().Where("collection IN ?", collections).Delete(&docstore.Document{})
}

// ═══════════════════════════════════════════════════════════
// Test: JSONB Document Store
// ═══════════════════════════════════════════════════════════

func TestGormStore_FilterAndPartialUpdate(t *testing.T) {
	defer cleanup(t, model.CollectionAssignments)
	ctx := context.Background()
	repo := repository.NewRepository(docstore.NewGormStore(testDB), zap.NewNop())

	a := &model.Assignment{UID: "it-user", Name: "Essay", DueDate: "2024-01-05T23:59"}
	if err := repo.Assignment.Create(ctx, a); err != nil {
		t.Fatalf("Create 失败: %v", err)
	}
	_ = repo.Assignment.Create(ctx, &model.Assignment{UID: "someone-else", Name: "Other", DueDate: "2024-01-06"})

	list, err := repo.Assignment.ListByOwner(ctx, "it-user")
	if err != nil {
		t.Fatalf("ListByOwner 失败: %v", err)
	}
	if len(list) != 1 || list[0].ID != a.ID {
		t.Fatalf("JSONB 包含过滤期望 1 条，实际=%+v", list)
	}

	if err := repo.Assignment.SetCompleted(ctx, a.ID, true); err != nil {
		t.Fatalf("SetCompleted 失败: %v", err)
	}
	got, err := repo.Assignment.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetByID 失败: %v", err)
	}
	if !got.Completed || got.Name != "Essay" {
		t.Errorf("局部更新应保留其余字段，实际=%+v", got)
	}
}

func TestGormStore_SoftDeleteAndSet(t *testing.T) {
	defer cleanup(t, model.CollectionUsers, model.CollectionQuestions)
	ctx := context.Background()
	store := docstore.NewGormStore(testDB)
	repo := repository.NewRepository(store, zap.NewNop())

	q := &model.Question{CID: "it-community", Question: "Q?"}
	if err := repo.Question.Create(ctx, q); err != nil {
		t.Fatalf("Create 失败: %v", err)
	}
	if err := repo.Question.Delete(ctx, q.ID); err != nil {
		t.Fatalf("Delete 失败: %v", err)
	}
	if _, err := repo.Question.GetByID(ctx, q.ID); !errors.Is(err, docstore.ErrNotFound) {
		t.Errorf("软删除后期望 ErrNotFound，实际=%v", err)
	}
	if err := repo.Question.Delete(ctx, q.ID); !errors.Is(err, docstore.ErrNotFound) {
		t.Errorf("重复删除期望 ErrNotFound，实际=%v", err)
	}

	p := &model.UserProfile{ID: "it-uid", Email: "a@school.edu"}
	if err := repo.User.Upsert(ctx, p); err != nil {
		t.Fatalf("Upsert 失败: %v", err)
	}
	p.Name = "Ada"
	if err := repo.User.Upsert(ctx, p); err != nil {
		t.Fatalf("第二次 Upsert 失败: %v", err)
	}
	got, err := repo.User.Get(ctx, "it-uid")
	if err != nil {
		t.Fatalf("Get 失败: %v", err)
	}
	if got.Name != "Ada" {
		t.Errorf("期望 Name=Ada，实际=%s", got.Name)
	}
}
