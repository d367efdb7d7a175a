package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Rajyalaxmi29/incamp-dept-hub/config"
	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/api/handler"
	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/api/middleware"
	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/api/router"
	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/repository"
	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/service"
	"github.com/Rajyalaxmi29/incamp-dept-hub/pkg/database"
	"github.com/Rajyalaxmi29/incamp-dept-hub/pkg/jwt"
	applogger "github.com/Rajyalaxmi29/incamp-dept-hub/pkg/logger"
	"github.com/Rajyalaxmi29/incamp-dept-hub/pkg/redis"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("store", cfg.Store.Driver),
		zap.String("auth_mode", cfg.Auth.Mode),
	)

	// 3. 记录存储
	repo, db := openStore(cfg, logger)

	// 3.1 初始数据
	if cfg.Store.Seed {
		seedStore(cfg, repo, logger)
	}

	// 4. 连接 Redis（可选：关闭或失败时黑名单与登录限流不可用）
	var (
		rdb       *redis.Client
		blacklist service.TokenBlacklist
		limiter   middleware.RateLimiter
	)
	if cfg.Redis.Enabled {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("Redis 连接失败，Token 黑名单与登录限流将不可用", zap.Error(err))
			rdb = nil
		} else {
			blacklist = rdb
			limiter = rdb
		}
	}

	// 5. 初始化 JWT 管理器
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 6. 依赖注入: Repository → Service → Handler
	svc := service.NewService(cfg, repo, jwtMgr, blacklist, logger)
	h := handler.NewHandler(svc, &cfg.Auth)

	// 7. 初始化路由
	engine := router.Setup(cfg, h, svc.Auth, limiter, logger)

	// 8. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 9. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	if db != nil {
		if sqlDB, _ := db.DB(); sqlDB != nil {
			sqlDB.Close()
		}
	}
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}

// openStore 按 store.driver 打开记录存储；memory 模式下返回的 db 为 nil
func openStore(cfg *config.Config, logger *zap.Logger) (*repository.Repository, *gorm.DB) {
	if cfg.Store.Driver != "postgres" {
		logger.Info("使用内存存储，重启后数据丢失")
		return repository.NewMemoryRepository(), nil
	}

	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}
	logger.Info("数据库连接成功")

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	return repository.NewRepository(db), db
}

func seedStore(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Auth.SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Fatal("生成初始密码失败", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	seeded, err := repo.Seed(ctx, string(hash), cfg.Portal.Location())
	if err != nil {
		logger.Fatal("写入初始数据失败", zap.Error(err))
	}
	if seeded {
		logger.Info("已写入初始数据")
	}
}
