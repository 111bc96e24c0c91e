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

	"github.com/zolt46/work-time-back/config"
	"github.com/zolt46/work-time-back/internal/api/handler"
	"github.com/zolt46/work-time-back/internal/api/router"
	"github.com/zolt46/work-time-back/internal/model"
	"github.com/zolt46/work-time-back/internal/repository"
	"github.com/zolt46/work-time-back/internal/service"
	"github.com/zolt46/work-time-back/pkg/database"
	"github.com/zolt46/work-time-back/pkg/jwt"
	applogger "github.com/zolt46/work-time-back/pkg/logger"
	"github.com/zolt46/work-time-back/pkg/redis"
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
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 连接数据库
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}
	logger.Info("数据库连接成功")

	// 3.1 执行数据库迁移
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	// 4. 连接 Redis（可选：连接失败时降级运行，不中断启动）
	var rdb *redis.Client
	rdb, err = redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 连接失败，Token 黑名单与限流功能将不可用", zap.Error(err))
		rdb = nil
	}

	// 5. 初始化 JWT 管理器
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 6. 依赖注入: Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(repo, jwtMgr, rdb, logger)
	h := handler.NewHandler(svc, db, rdb)

	// 6.1 首次启动引导 MASTER 账号
	if err := bootstrapMaster(context.Background(), repo, &cfg.Bootstrap, logger); err != nil {
		logger.Fatal("MASTER 账号引导失败", zap.Error(err))
	}

	// 7. 初始化路由
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

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

	// 关闭数据库连接
	closeDB, _ := db.DB()
	if closeDB != nil {
		closeDB.Close()
	}

	// 关闭 Redis 连接
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}

// bootstrapMaster 系统中不存在任何用户时，按配置创建初始 MASTER 账号
func bootstrapMaster(ctx context.Context, repo *repository.Repository, cfg *config.BootstrapConfig, logger *zap.Logger) error {
	if cfg.MasterLoginID == "" || cfg.MasterPassword == "" {
		return nil
	}

	users, err := repo.User.List(ctx)
	if err != nil {
		return fmt.Errorf("查询用户列表失败: %w", err)
	}
	if len(users) > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.MasterPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("密码加密失败: %w", err)
	}

	err = repo.Tx(ctx, func(txRepo *repository.Repository) error {
		master := &model.User{
			Name:   cfg.MasterName,
			Role:   model.RoleMaster,
			Active: true,
		}
		if err := txRepo.User.Create(ctx, master); err != nil {
			return err
		}
		return txRepo.User.CreateAuthAccount(ctx, &model.AuthAccount{
			UserID:       master.UserID,
			LoginID:      cfg.MasterLoginID,
			PasswordHash: string(hash),
		})
	})
	if err != nil {
		return fmt.Errorf("创建初始 MASTER 账号失败: %w", err)
	}

	logger.Info("已创建初始 MASTER 账号", zap.String("login_id", cfg.MasterLoginID))
	return nil
}
