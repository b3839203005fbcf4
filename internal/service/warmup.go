package service

import (
	"context"
	"time"

	"github.com/facebookgo/clock"
	"github.com/sirupsen/logrus"
)

// ListWarmer 定时为若干时区预构建比赛列表，让用户请求尽量命中缓存
type ListWarmer struct {
	scores    *ScoresService
	timezones []string
	clock     clock.Clock
	logger    *logrus.Logger
}

// NewListWarmer 创建预热任务；timezones 为空时只预热默认时区
func NewListWarmer(scores *ScoresService, timezones []string, clk clock.Clock, logger *logrus.Logger) *ListWarmer {
	if len(timezones) == 0 {
		timezones = []string{""}
	}
	if clk == nil {
		clk = clock.New()
	}
	return &ListWarmer{
		scores:    scores,
		timezones: timezones,
		clock:     clk,
		logger:    logger,
	}
}

// Run 依次预热每个时区；单个时区失败不阻塞整次运行，返回成功数量
func (w *ListWarmer) Run(ctx context.Context) int {
	warmed := 0
	for _, tz := range w.timezones {
		if ctx.Err() != nil {
			break
		}
		res, err := w.scores.GetMatchList(ctx, tz)
		if err != nil {
			w.logger.WithError(err).WithField("timezone", tz).Warn("ListWarmer: 预热失败，跳过")
			continue
		}
		w.logger.WithFields(logrus.Fields{"timezone": res.Timezone, "items": len(res.Items)}).Debug("ListWarmer: 预热完成")
		warmed++
	}
	return warmed
}

// Start 立即执行一次，之后每个 interval 执行一次，直到 ctx 结束
func (w *ListWarmer) Start(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := w.clock.Ticker(interval)
		defer ticker.Stop()

		w.Run(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.Run(ctx)
			}
		}
	}()
}
