package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// migrationsTable 独立的版本表名，与同库其他服务互不干扰
const migrationsTable = "planner_schema_migrations"

// RunMigrations 将 documents 文档表迁移到最新版本
// 多实例同时启动时由 advisory lock 串行化
func RunMigrations(db *sql.DB, logger *zap.Logger) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("加载迁移文件失败: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{
		MigrationsTable:  migrationsTable,
		StatementTimeout: 30 * time.Second,
	})
	if err != nil {
		return fmt.Errorf("创建迁移驱动失败: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("初始化迁移实例失败: %w", err)
	}

	m.LockTimeout = time.Minute

	before, _, _ := m.Version()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("执行迁移失败: %w", err)
	}

	version, dirty, err := m.Version()
	switch {
	case err != nil && !errors.Is(err, migrate.ErrNilVersion):
		return fmt.Errorf("读取迁移版本失败: %w", err)
	case dirty:
		// dirty 需人工介入，继续启动会读到半成品表结构
		return fmt.Errorf("文档表迁移处于 dirty 状态: version=%d", version)
	case version == before:
		logger.Info("文档表已是最新版本", zap.Uint("version", version))
	default:
		logger.Info("文档表迁移完成", zap.Uint("from", before), zap.Uint("to", version))
	}

	return nil
}
