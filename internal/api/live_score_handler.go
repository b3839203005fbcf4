package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"LiveScore/internal/model"
	"LiveScore/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const matchNotFoundDetail = "Match not found (try fetching /live-score first)."

// ScoresProvider 比分查询能力（由 service.ScoresService 实现）
type ScoresProvider interface {
	GetMatchList(ctx context.Context, timezone string) (*model.MatchListResult, error)
	GetMatchDetail(ctx context.Context, matchID uint32, timezone string) (*model.MatchDetailResult, error)
}

// LiveScoreHandler 比分列表与详情接口
type LiveScoreHandler struct {
	scores ScoresProvider
	logger *logrus.Logger
}

// NewLiveScoreHandler 创建 LiveScoreHandler
func NewLiveScoreHandler(scores ScoresProvider, logger *logrus.Logger) *LiveScoreHandler {
	return &LiveScoreHandler{
		scores: scores,
		logger: logger,
	}
}

// ListMatches 比赛列表
// GET /live-score?timezone=Asia/Kolkata
func (h *LiveScoreHandler) ListMatches(c *gin.Context) {
	tz := c.Query("timezone")

	result, err := h.scores.GetMatchList(c.Request.Context(), tz)
	if err != nil {
		h.writeError(c, err, logrus.Fields{"timezone": tz})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetMatchDetail 比赛详情 + 页面摘录
// GET /live-score/:match_id?timezone=Asia/Kolkata
func (h *LiveScoreHandler) GetMatchDetail(c *gin.Context) {
	raw := c.Param("match_id")
	matchID, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "match_id must be a non-negative integer"})
		return
	}
	tz := c.Query("timezone")

	result, err := h.scores.GetMatchDetail(c.Request.Context(), uint32(matchID), tz)
	if err != nil {
		h.writeError(c, err, logrus.Fields{"match_id": matchID, "timezone": tz})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Healthz 存活检查
func (h *LiveScoreHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *LiveScoreHandler) writeError(c *gin.Context, err error, fields logrus.Fields) {
	switch {
	case errors.Is(err, service.ErrInvalidTimezone):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrMatchNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": matchNotFoundDetail})
	default:
		h.logger.WithError(err).WithFields(fields).Error("比分查询失败")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
