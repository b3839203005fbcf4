package main

import (
	"context"
	"fmt"
	"log"

	_ "LiveScore/internal/adapter/cricinfodesktop"
	_ "LiveScore/internal/adapter/cricinforss"
	_ "LiveScore/internal/adapter/criczop"
	_ "LiveScore/internal/adapter/espnscores"

	"LiveScore/internal/adapter"
	"LiveScore/internal/api"
	"LiveScore/internal/cache"
	"LiveScore/internal/config"
	"LiveScore/internal/service"
	"LiveScore/internal/utils/logger"

	"github.com/facebookgo/clock"
	"github.com/sirupsen/logrus"
)

func main() {
	// 1. 加载配置文件（.env / APP_* 覆盖 config.yaml）
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("加载配置文件失败: %v", err)
	}

	// 2. 初始化日志
	logrusLogger := logger.New(cfg.Log)
	logrusLogger.WithFields(logrus.Fields{
		"tz":      cfg.App.TZ,
		"sources": cfg.Sources.Enabled,
	}).Info("配置文件加载成功")

	// 3. 按 sources.enabled 顺序初始化来源适配器
	registry := adapter.NewSourceRegistry(cfg, logrusLogger)
	if registry.Count() == 0 {
		logrusLogger.Warn("没有可用的来源适配器，列表将始终为空")
	}

	// 4. 进程级缓存与聚合服务（共用一个时钟）
	clk := clock.New()
	scores := service.NewScoresService(cfg.App, registry, cache.New(clk), clk, logrusLogger)

	// 可选：后台预热列表缓存
	if interval := cfg.App.WarmInterval(); interval > 0 {
		service.NewListWarmer(scores, cfg.App.WarmTimezones, clk, logrusLogger).Start(context.Background(), interval)
		logrusLogger.WithField("interval", interval.String()).Info("列表预热已开启")
	}

	// 5. 注册路由（debug 模式挂载 pprof）
	r := api.NewRouter(cfg.Server, api.NewLiveScoreHandler(scores, logrusLogger), logrusLogger)
	logrusLogger.Infof("Gin运行模式: %s", cfg.Server.Mode)

	// 6. 启动服务
	port := cfg.Server.Port
	logrusLogger.Infof("服务启动成功，端口：%d", port)
	if err := r.Run(fmt.Sprintf(":%d", port)); err != nil {
		logrusLogger.Fatalf("启动服务失败: %v", err)
	}
}
