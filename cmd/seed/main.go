package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/fantaAstic/cs310-final/config"
	"github.com/fantaAstic/cs310-final/internal/model"
	"github.com/fantaAstic/cs310-final/internal/repository"
	"github.com/fantaAstic/cs310-final/internal/seed"
	"github.com/fantaAstic/cs310-final/internal/service"
	"github.com/fantaAstic/cs310-final/pkg/database"
	applogger "github.com/fantaAstic/cs310-final/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径（默认 ./config/config.yaml）")
	catalogPath := flag.String("file", "config/catalog.example.yaml", "模块目录 YAML 文件")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	catalog, err := seed.LoadFile(*catalogPath)
	if err != nil {
		logger.Fatal("加载模块目录失败", zap.String("file", *catalogPath), zap.Error(err))
	}

	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}
	if sqlDB, _ := db.DB(); sqlDB != nil {
		defer sqlDB.Close()
	}
	if err := database.Migrate(db, &cfg.Database, logger, model.AllModels()...); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	repo := repository.NewRepository(db)
	catalogSvc := service.NewCatalogService(repo, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	modules, topics := catalog.Models()
	result, err := catalogSvc.Import(ctx, modules, topics)
	if err != nil {
		logger.Fatal("导入模块目录失败", zap.Error(err))
	}
	for _, e := range result.Errors {
		logger.Warn("跳过无效记录", zap.String("sheet", e.Sheet), zap.Int("row", e.Row), zap.String("reason", e.Reason))
	}

	logger.Info("种子数据导入完成",
		zap.String("file", *catalogPath),
		zap.Int("modules", result.Modules),
		zap.Int("topics", result.Topics),
		zap.Int("failed", result.Failed),
	)
}
