package main

import (
	"TodoGo/config"
	"TodoGo/routes"
	"TodoGo/services"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	conf, err := loadConfig()
	if err != nil {
		return fmt.Errorf("无法加载配置: %w", err)
	}
	defer config.Logger.Sync()

	// 初始化数据库
	database := config.NewDatabase(conf)
	defer database.Close()
	if err := database.Migrate(); err != nil {
		return fmt.Errorf("无法初始化数据库: %w", err)
	}
	db, err := database.Conn()
	if err != nil {
		return err
	}

	// 初始化Redis
	redisClient, err := config.NewRedisClient(cmd.Context(), conf)
	if err != nil {
		return fmt.Errorf("无法初始化Redis: %w", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	taskService := services.NewTaskService(db, services.NewTaskCache(redisClient, conf.CacheTTL()))
	r := routes.NewRouter(conf, taskService)

	// 创建HTTP服务器
	srv := &http.Server{
		Addr:    ":" + conf.ServerPort,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		config.Logger.Infow("启动服务器", "port", conf.ServerPort, "driver", conf.DBDriver, "cache", redisClient != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 等待中断信号以实现优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("服务器启动失败: %w", err)
	case <-quit:
	}
	config.Logger.Info("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("服务器关闭失败: %w", err)
	}

	config.Logger.Info("服务器已关闭")
	return nil
}
