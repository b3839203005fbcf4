package cricinforss

import (
	"context"
	"net/http"
	"strings"

	"LiveScore/internal/adapter"
	"LiveScore/internal/config"
	"LiveScore/internal/interfaces"
	"LiveScore/internal/model"
	"LiveScore/internal/utils/httpclient"
	"LiveScore/internal/utils/parsing"

	"github.com/mmcdole/gofeed"
	"github.com/sirupsen/logrus"
)

// DefaultFeedURLs 未配置 urls 时按顺序尝试
var DefaultFeedURLs = []string{
	"https://www.espncricinfo.com/rss/livescores.xml",
	"https://static.cricinfo.com/rss/livescores.xml",
}

var _ interfaces.SourceAdapter = (*Adapter)(nil)

func init() {
	adapter.Register(model.SourceCricinfoRSS, NewCricinfoRSSAdapter)
}

// Adapter 比分 RSS 源：每个带链接的条目即一场比赛
type Adapter struct {
	urls       []string
	userAgent  string
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewCricinfoRSSAdapter(fetch config.FetchConfig, src config.SourceConfig, logger *logrus.Logger) interfaces.SourceAdapter {
	urls := src.URLs
	if len(urls) == 0 {
		urls = DefaultFeedURLs
	}
	return &Adapter{
		urls:       urls,
		userAgent:  fetch.UserAgent,
		httpClient: httpclient.NewHTTPClient(fetch, src, logger),
		logger:     logger,
	}
}

// GetName ========== 实现SourceAdapter接口 ==========
func (a *Adapter) GetName() model.SourceType {
	return model.SourceCricinfoRSS
}

func (a *Adapter) FetchMatches(ctx context.Context, cycle model.FetchCycle) []model.Match {
	log := a.logger.WithFields(logrus.Fields{"source": a.GetName(), "cycle_id": cycle.ID})

	feed := a.fetchFirstFeed(ctx, log)
	if feed == nil {
		log.Warn("所有 RSS 地址均不可用，返回空列表")
		return nil
	}

	matches := make([]model.Match, 0, len(feed.Items))
	for _, item := range feed.Items {
		if m, ok := a.convertItem(item); ok {
			matches = append(matches, m)
		}
	}
	log.WithField("count", len(matches)).Debug("RSS 解析完成")
	return matches
}

// fetchFirstFeed 依次尝试各地址，返回第一个成功解析的 feed
func (a *Adapter) fetchFirstFeed(ctx context.Context, log *logrus.Entry) *gofeed.Feed {
	parser := gofeed.NewParser()
	for _, feedURL := range a.urls {
		body, err := httpclient.FetchText(ctx, a.httpClient, feedURL, a.userAgent)
		if err != nil {
			log.WithError(err).WithField("url", feedURL).Warn("拉取 RSS 失败，尝试下一个地址")
			continue
		}
		feed, err := parser.ParseString(body)
		if err != nil {
			log.WithError(err).WithField("url", feedURL).Warn("解析 RSS 失败，尝试下一个地址")
			continue
		}
		return feed
	}
	return nil
}

func (a *Adapter) convertItem(item *gofeed.Item) (model.Match, bool) {
	link := strings.TrimSpace(item.Link)
	if link == "" {
		return model.Match{}, false
	}
	if normalized := parsing.NormalizeURL(link, ""); normalized != "" {
		link = normalized
	}

	title := strings.TrimSpace(item.Title)
	desc := strings.TrimSpace(item.Description)
	block := strings.TrimSpace(title + " " + desc)
	start, end := parsing.ParseDateRange(block)

	return model.Match{
		MatchID:      parsing.DeriveMatchID(a.GetName(), link),
		Source:       a.GetName(),
		URL:          link,
		Title:        title,
		Description:  desc,
		Status:       parsing.ClassifyStatus(block),
		StartDate:    start,
		EndDate:      end,
		ScoreSummary: title,
	}, true
}
