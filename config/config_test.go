package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("写入配置文件失败: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "auth:\n  jwt_secret: test-secret-key-for-config\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load 应成功: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("期望默认端口 8080，实际=%d", cfg.Server.Port)
	}
	if cfg.Calendar.RowHeight != 60 {
		t.Errorf("期望默认行高 60，实际=%v", cfg.Calendar.RowHeight)
	}
	if cfg.Calendar.DefaultClassDuration != time.Hour {
		t.Errorf("期望默认课程时长 1h，实际=%v", cfg.Calendar.DefaultClassDuration)
	}
	if cfg.Calendar.WindowDays != 7 {
		t.Errorf("期望窗口 7 天，实际=%d", cfg.Calendar.WindowDays)
	}
	if cfg.Calendar.DayStripBatch != 30 {
		t.Errorf("期望日期条批量 30，实际=%d", cfg.Calendar.DayStripBatch)
	}
	if cfg.Calendar.NowRefreshInterval != 60*time.Second {
		t.Errorf("期望刷新间隔 60s，实际=%v", cfg.Calendar.NowRefreshInterval)
	}
	if cfg.Forum.RemovalMargin != 5 {
		t.Errorf("期望删除阈值 5，实际=%d", cfg.Forum.RemovalMargin)
	}
	if cfg.Store.Driver != "postgres" {
		t.Errorf("期望默认存储驱动 postgres，实际=%s", cfg.Store.Driver)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, "auth:\n  jwt_secret: test-secret-key-for-config\n")
	t.Setenv("PLANNER_STORE_DRIVER", "memory")
	t.Setenv("PLANNER_SERVER_PORT", "9090")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load 应成功: %v", err)
	}
	if cfg.Store.Driver != "memory" {
		t.Errorf("期望环境变量覆盖 store.driver=memory，实际=%s", cfg.Store.Driver)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("期望环境变量覆盖端口 9090，实际=%d", cfg.Server.Port)
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 8080\n")

	if _, err := Load(path); err == nil {
		t.Fatal("缺少 jwt_secret 时应返回错误")
	}
}

func TestValidate_BadCalendar(t *testing.T) {
	path := writeConfig(t, "auth:\n  jwt_secret: test-secret-key-for-config\ncalendar:\n  week_start: 9\n")

	if _, err := Load(path); err == nil {
		t.Fatal("week_start 越界时应返回错误")
	}
}

func TestCalendarLocation(t *testing.T) {
	c := CalendarConfig{Timezone: "Local"}
	loc, err := c.Location()
	if err != nil || loc != time.Local {
		t.Errorf("Local 应解析为系统时区，实际=%v err=%v", loc, err)
	}

	c.Timezone = "Not/AZone"
	if _, err := c.Location(); err == nil {
		t.Error("无效时区应返回错误")
	}
}
