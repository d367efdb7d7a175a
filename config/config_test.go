package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080},
		Store:  StoreConfig{Driver: "memory"},
		Auth: AuthConfig{
			JWTSecret:    "test-secret-key-for-unit-testing",
			Mode:         "mock",
			LoginTimeout: 5 * time.Second,
		},
		Portal: PortalConfig{Deadline: "2024-02-05"},
	}
}

func TestValidate_OK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("Validate 应成功: %v", err)
	}
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"密钥过短", func(c *Config) { c.Auth.JWTSecret = "short" }},
		{"端口越界", func(c *Config) { c.Server.Port = 70000 }},
		{"未知存储", func(c *Config) { c.Store.Driver = "mongo" }},
		{"未知认证模式", func(c *Config) { c.Auth.Mode = "ldap" }},
		{"登录超时为零", func(c *Config) { c.Auth.LoginTimeout = 0 }},
		{"截止日期格式错误", func(c *Config) { c.Portal.Deadline = "05/02/2024" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			if err := c.Validate(); err == nil {
				t.Error("期望校验失败")
			}
		})
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("auth:\n  jwt_secret: file-secret-0123456789\nportal:\n  deadline: \"2024-03-01\"\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("写入配置文件失败: %v", err)
	}

	t.Setenv("INCAMP_SERVER_PORT", "9090")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load 应成功: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("期望环境变量覆盖 Port=9090，实际=%d", cfg.Server.Port)
	}
	if cfg.Portal.Deadline != "2024-03-01" {
		t.Errorf("期望 Deadline=2024-03-01，实际=%s", cfg.Portal.Deadline)
	}
	if cfg.Auth.MockDelay != 500*time.Millisecond {
		t.Errorf("期望默认 MockDelay=500ms，实际=%v", cfg.Auth.MockDelay)
	}
	if cfg.Store.Driver != "memory" {
		t.Errorf("期望默认 Driver=memory，实际=%s", cfg.Store.Driver)
	}
}

func TestDeadlineDate(t *testing.T) {
	p := PortalConfig{Deadline: "2024-02-05", Timezone: "UTC"}
	d := p.DeadlineDate()
	if d.Year() != 2024 || d.Month() != time.February || d.Day() != 5 {
		t.Errorf("截止日期解析错误: %v", d)
	}
}
