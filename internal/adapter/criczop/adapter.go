package criczop

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"LiveScore/internal/adapter"
	"LiveScore/internal/config"
	"LiveScore/internal/interfaces"
	"LiveScore/internal/model"
	"LiveScore/internal/utils/httpclient"
	"LiveScore/internal/utils/parsing"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultBaseURL = "https://www.criczop.com"

	livePath     = "/live-cricket-score"
	schedulePath = "/cricket-schedule"
	resultsPath  = "/cricket-match-results"

	// 直播候选的 slug 日期窗口：早于今天 2 天以上或晚于今天 7 天以上的不拉取
	maxDaysBehind = 2
	maxDaysAhead  = 7
	minLivePool   = 8
)

func init() {
	adapter.Register(model.SourceCriczop, NewCriczopAdapter)
}

// Adapter 三个列表页发现候选 URL，直播候选逐个拉取比赛页校验
type Adapter struct {
	baseURL        string
	userAgent      string
	maxConcurrency int
	maxLiveVerify  int
	maxUpcoming    int
	maxResults     int
	httpClient     *http.Client
	logger         *logrus.Logger
}

var (
	_ interfaces.SourceAdapter        = (*Adapter)(nil)
	_ interfaces.DetailExcerptFetcher = (*Adapter)(nil)
)

func NewCriczopAdapter(fetch config.FetchConfig, src config.SourceConfig, logger *logrus.Logger) interfaces.SourceAdapter {
	a := &Adapter{
		baseURL:        strings.TrimRight(src.BaseURL, "/"),
		userAgent:      fetch.UserAgent,
		maxConcurrency: fetch.MaxConcurrency,
		maxLiveVerify:  fetch.MaxLiveVerify,
		maxUpcoming:    fetch.MaxUpcoming,
		maxResults:     fetch.MaxResults,
		httpClient:     httpclient.NewHTTPClient(fetch, src, logger),
		logger:         logger,
	}
	if a.baseURL == "" {
		a.baseURL = DefaultBaseURL
	}
	if a.maxConcurrency <= 0 {
		a.maxConcurrency = 1
	}
	return a
}

// GetName ========== 实现SourceAdapter接口 ==========
func (a *Adapter) GetName() model.SourceType {
	return model.SourceCriczop
}

// candidateLists 三个列表页得到的候选 URL
type candidateLists struct {
	live     []string
	upcoming []string
	results  []string
}

func (a *Adapter) FetchMatches(ctx context.Context, cycle model.FetchCycle) []model.Match {
	log := a.logger.WithFields(logrus.Fields{"source": a.GetName(), "cycle_id": cycle.ID})

	lists := a.fetchLists(ctx, log)
	log.WithFields(logrus.Fields{
		"live_candidates": len(lists.live),
		"upcoming":        len(lists.upcoming),
		"results":         len(lists.results),
	}).Debug("候选 URL 收集完成")

	matches := a.verifyLive(ctx, cycle, lists.live, log)
	matches = append(matches, a.buildRecords(lists.upcoming, model.StatusUpcoming)...)
	matches = append(matches, a.buildRecords(lists.results, model.StatusResult)...)
	return matches
}

// fetchLists 任一列表页失败只影响对应分组
func (a *Adapter) fetchLists(ctx context.Context, log *logrus.Entry) candidateLists {
	var lists candidateLists

	if urls, err := a.listPage(ctx, livePath); err != nil {
		log.WithError(err).Warn("直播列表页拉取失败")
	} else {
		lists.live = capList(filter(urls, isScorecardURL), 2*max(a.maxLiveVerify, minLivePool))
	}

	if urls, err := a.listPage(ctx, schedulePath); err != nil {
		log.WithError(err).Warn("赛程列表页拉取失败")
	} else {
		lists.upcoming = capList(filter(urls, isMatchInfoURL), a.maxUpcoming)
	}

	if urls, err := a.listPage(ctx, resultsPath); err != nil {
		log.WithError(err).Warn("赛果列表页拉取失败")
	} else {
		lists.results = capList(filter(urls, isScorecardURL), a.maxResults)
	}
	return lists
}

func (a *Adapter) listPage(ctx context.Context, path string) ([]string, error) {
	body, err := httpclient.FetchText(ctx, a.httpClient, a.baseURL+path, a.userAgent)
	if err != nil {
		return nil, err
	}
	return extractMatchURLs(body, a.baseURL), nil
}

// verifyLive 并发拉取直播候选页，只保留页面确认为 LIVE 的比赛；结果保持候选顺序
func (a *Adapter) verifyLive(ctx context.Context, cycle model.FetchCycle, candidates []string, log *logrus.Entry) []model.Match {
	candidates = capList(candidates, a.maxLiveVerify)
	verified := make([]*model.Match, len(candidates))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(a.maxConcurrency)

	for idx, matchURL := range candidates {
		idx, matchURL := idx, matchURL
		slugDate := parsing.DateFromURLSlug(matchURL)
		if !withinLiveWindow(slugDate, cycle.Today) {
			continue
		}
		g.Go(func() error {
			body, err := httpclient.FetchText(gCtx, a.httpClient, matchURL, a.userAgent)
			if err != nil {
				log.WithError(err).WithField("url", matchURL).Debug("比赛页拉取失败，跳过")
				return nil // 单页失败不影响其他候选
			}
			page, err := parseMatchPage(body)
			if err != nil || page.status != model.StatusLive {
				return nil
			}
			verified[idx] = &model.Match{
				MatchID:      parsing.DeriveMatchID(a.GetName(), matchURL),
				Source:       a.GetName(),
				URL:          matchURL,
				Title:        page.title,
				Series:       page.series,
				Status:       model.StatusLive,
				StartDate:    slugDate,
				EndDate:      slugDate,
				ScoreSummary: parsing.Truncate(page.excerpt, maxLiveSummary),
			}
			return nil
		})
	}
	_ = g.Wait()

	var out []model.Match
	for _, m := range verified {
		if m != nil {
			out = append(out, *m)
		}
	}
	return out
}

// buildRecords 赛程/赛果不拉取比赛页，日期取自 URL slug
func (a *Adapter) buildRecords(urls []string, status model.MatchStatus) []model.Match {
	out := make([]model.Match, 0, len(urls))
	for _, u := range urls {
		d := parsing.DateFromURLSlug(u)
		out = append(out, model.Match{
			MatchID:   parsing.DeriveMatchID(a.GetName(), u),
			Source:    a.GetName(),
			URL:       u,
			Status:    status,
			StartDate: d,
			EndDate:   d,
		})
	}
	return out
}

// OwnsURL ========== 实现DetailExcerptFetcher接口 ==========
func (a *Adapter) OwnsURL(matchURL string) bool {
	u, err := url.Parse(matchURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if base, err := url.Parse(a.baseURL); err == nil && strings.EqualFold(base.Hostname(), host) {
		return true
	}
	return host == "criczop.com" || strings.HasSuffix(host, ".criczop.com")
}

// FetchMatchDetailExcerpt 页面顶部摘录（去掉导航），最多 60 行
func (a *Adapter) FetchMatchDetailExcerpt(ctx context.Context, matchURL string) (string, error) {
	body, err := httpclient.FetchText(ctx, a.httpClient, matchURL, a.userAgent)
	if err != nil {
		return "", err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("解析比赛页失败 %s: %w", matchURL, err)
	}
	return parsing.ExcerptTop(parsing.TextLines(doc.Selection), detailLines, true), nil
}

// withinLiveWindow 无 slug 日期时总是拉取
func withinLiveWindow(slugDate, today model.Date) bool {
	if slugDate.IsZero() {
		return true
	}
	return !slugDate.Before(today.AddDays(-maxDaysBehind).Time) && !slugDate.After(today.AddDays(maxDaysAhead).Time)
}

func filter(urls []string, keep func(string) bool) []string {
	var out []string
	for _, u := range urls {
		if keep(u) {
			out = append(out, u)
		}
	}
	return out
}

func capList(urls []string, n int) []string {
	if n < 0 {
		n = 0
	}
	if len(urls) > n {
		return urls[:n]
	}
	return urls
}
