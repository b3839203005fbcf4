package interfaces

import (
	"context"

	"LiveScore/internal/config"
	"LiveScore/internal/model"

	"github.com/sirupsen/logrus"
)

// SourceAdapter 所有来源必须实现的核心接口。
// FetchMatches 不返回 error：网络或解析失败一律吸收为空（或部分）结果，
// 保证一个来源挂掉不会影响其他来源。
type SourceAdapter interface {
	GetName() model.SourceType                                            // 来源名称
	FetchMatches(ctx context.Context, cycle model.FetchCycle) []model.Match // 抓取并归一化
}

// DetailExcerptFetcher 可选能力：把单场比赛页面解析为简短的文本摘录
type DetailExcerptFetcher interface {
	OwnsURL(matchURL string) bool                                            // 该 URL 是否属于本来源
	FetchMatchDetailExcerpt(ctx context.Context, matchURL string) (string, error) // 拉取摘录
}

// Factory 来源适配器工厂函数签名
// 入参：抓取通用配置、来源独立配置、日志实例
type Factory func(fetch config.FetchConfig, src config.SourceConfig, logger *logrus.Logger) SourceAdapter
