package api

import (
	"LiveScore/internal/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NewRouter 注册中间件与路由；debug 模式下额外挂载 pprof
func NewRouter(cfg config.ServerConfig, handler *LiveScoreHandler, logger *logrus.Logger) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	r := gin.Default()

	// 前端直接调用，放开所有来源
	r.Use(cors.Default())

	if gin.Mode() == gin.DebugMode {
		pprof.Register(r)
		logger.Info("已注册 pprof 路由")
	}

	r.GET("/healthz", handler.Healthz)
	r.GET("/live-score", handler.ListMatches)
	r.GET("/live-score/:match_id", handler.GetMatchDetail)
	return r
}
