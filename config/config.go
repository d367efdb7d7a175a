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
	Store    StoreConfig    `mapstructure:"store"`
	Database DatabaseConfig `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Portal   PortalConfig   `mapstructure:"portal"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Port int        `mapstructure:"port"`
	CORS CORSConfig `mapstructure:"cors"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// StoreConfig 记录存储配置
type StoreConfig struct {
	Driver string `mapstructure:"driver"` // memory | postgres
	Seed   bool   `mapstructure:"seed"`   // 存储为空时写入初始数据
}

// DatabaseConfig PostgreSQL 数据库配置（仅 store.driver=postgres 时使用）
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

// RedisConfig Redis 配置
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig 会话认证配置
type AuthConfig struct {
	JWTSecret       string        `mapstructure:"jwt_secret"`
	SessionTTL      time.Duration `mapstructure:"session_ttl"`
	Mode            string        `mapstructure:"mode"` // mock | password
	MockDelay       time.Duration `mapstructure:"mock_delay"`
	MockUserEmail   string        `mapstructure:"mock_user_email"`
	LoginTimeout    time.Duration `mapstructure:"login_timeout"`
	LoginRateLimit  int           `mapstructure:"login_rate_limit"`
	LoginRateWindow time.Duration `mapstructure:"login_rate_window"`
	SeedPassword    string        `mapstructure:"seed_password"`
	Cookie          CookieConfig  `mapstructure:"cookie"`
}

// CookieConfig Cookie 安全配置
type CookieConfig struct {
	Secure bool   `mapstructure:"secure"`
	Domain string `mapstructure:"domain"`
}

// PortalConfig 门户业务配置
type PortalConfig struct {
	Deadline    string `mapstructure:"deadline"` // 提交截止日期 "2006-01-02"
	Timezone    string `mapstructure:"timezone"`
	DefaultSPOC string `mapstructure:"default_spoc"`
	RecentLimit int    `mapstructure:"recent_limit"`
}

// DeadlineDate 解析截止日期（已在 Validate 中校验格式）
func (p *PortalConfig) DeadlineDate() time.Time {
	loc := p.Location()
	d, _ := time.ParseInLocation("2006-01-02", p.Deadline, loc)
	return d
}

// Location 门户使用的时区，无法加载时回退 UTC
func (p *PortalConfig) Location() *time.Location {
	if p.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load 从配置文件与环境变量加载配置
// 优先级：环境变量 > 配置文件 > 默认值
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── 默认值 ──
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:5173"})

	v.SetDefault("store.driver", "memory")
	v.SetDefault("store.seed", true)

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "incamp")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "Asia/Kolkata")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 60)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.jwt_secret", "") // 需显式声明，否则 Unmarshal 读不到 INCAMP_AUTH_JWT_SECRET
	v.SetDefault("auth.session_ttl", "12h")
	v.SetDefault("auth.mode", "mock")
	v.SetDefault("auth.mock_delay", "500ms")
	v.SetDefault("auth.mock_user_email", "rajesh.kumar@university.edu")
	v.SetDefault("auth.login_timeout", "5s")
	v.SetDefault("auth.login_rate_limit", 10)
	v.SetDefault("auth.login_rate_window", "1m")
	v.SetDefault("auth.seed_password", "incamp@2024")
	v.SetDefault("auth.cookie.secure", false)
	v.SetDefault("auth.cookie.domain", "")

	v.SetDefault("portal.deadline", "2024-02-05")
	v.SetDefault("portal.timezone", "Asia/Kolkata")
	v.SetDefault("portal.default_spoc", "")
	v.SetDefault("portal.recent_limit", 5)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

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
	v.SetEnvPrefix("INCAMP")
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
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("配置校验失败: auth.jwt_secret 长度不能少于 16 字符")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("配置校验失败: server.port 必须在 1-65535 之间")
	}
	switch c.Store.Driver {
	case "memory", "postgres":
	default:
		return fmt.Errorf("配置校验失败: store.driver 仅支持 memory | postgres，实际=%q", c.Store.Driver)
	}
	switch c.Auth.Mode {
	case "mock", "password":
	default:
		return fmt.Errorf("配置校验失败: auth.mode 仅支持 mock | password，实际=%q", c.Auth.Mode)
	}
	if c.Auth.LoginTimeout <= 0 {
		return fmt.Errorf("配置校验失败: auth.login_timeout 必须大于 0")
	}
	if _, err := time.Parse("2006-01-02", c.Portal.Deadline); err != nil {
		return fmt.Errorf("配置校验失败: portal.deadline 格式应为 YYYY-MM-DD: %w", err)
	}
	return nil
}
