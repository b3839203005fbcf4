package espnscores

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"LiveScore/internal/adapter"
	"LiveScore/internal/config"
	"LiveScore/internal/interfaces"
	"LiveScore/internal/model"
	"LiveScore/internal/utils/httpclient"
	"LiveScore/internal/utils/parsing"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
)

// DefaultScoreboardURLs 未配置 urls 时按顺序尝试
var DefaultScoreboardURLs = []string{
	"https://www.espn.com/cricket/scores",
	"https://www.espn.in/cricket/scores",
	"https://www.espn.co.uk/cricket/scores",
}

const (
	DefaultBaseURL = "https://www.espn.com"

	maxClimb        = 7
	minCardText     = 60
	maxCardText     = 900
	maxDescription  = 260
	maxScoreSummary = 220
	excerptLines    = 40
)

func init() {
	adapter.Register(model.SourceESPNScores, NewESPNScoresAdapter)
}

// Adapter 记分板列表页 + 比赛页详情摘录
type Adapter struct {
	urls       []string
	baseURL    string
	hosts      map[string]struct{}
	userAgent  string
	httpClient *http.Client
	logger     *logrus.Logger
}

var (
	_ interfaces.SourceAdapter        = (*Adapter)(nil)
	_ interfaces.DetailExcerptFetcher = (*Adapter)(nil)
)

func NewESPNScoresAdapter(fetch config.FetchConfig, src config.SourceConfig, logger *logrus.Logger) interfaces.SourceAdapter {
	a := &Adapter{
		urls:       src.URLs,
		baseURL:    DefaultBaseURL,
		hosts:      make(map[string]struct{}),
		userAgent:  fetch.UserAgent,
		httpClient: httpclient.NewHTTPClient(fetch, src, logger),
		logger:     logger,
	}
	if len(a.urls) == 0 {
		a.urls = DefaultScoreboardURLs
	}
	if src.BaseURL != "" {
		a.baseURL = src.BaseURL
	}
	for _, raw := range append([]string{a.baseURL}, a.urls...) {
		if u, err := url.Parse(raw); err == nil && u.Host != "" {
			a.hosts[strings.ToLower(u.Hostname())] = struct{}{}
		}
	}
	return a
}

// GetName ========== 实现SourceAdapter接口 ==========
func (a *Adapter) GetName() model.SourceType {
	return model.SourceESPNScores
}

func (a *Adapter) FetchMatches(ctx context.Context, cycle model.FetchCycle) []model.Match {
	log := a.logger.WithFields(logrus.Fields{"source": a.GetName(), "cycle_id": cycle.ID})

	var doc *goquery.Document
	for _, pageURL := range a.urls {
		body, err := httpclient.FetchText(ctx, a.httpClient, pageURL, a.userAgent)
		if err != nil {
			log.WithError(err).WithField("url", pageURL).Warn("拉取记分板失败，尝试下一个地址")
			continue
		}
		if doc, err = goquery.NewDocumentFromReader(strings.NewReader(body)); err != nil {
			log.WithError(err).WithField("url", pageURL).Warn("解析记分板失败，尝试下一个地址")
			continue
		}
		break
	}
	if doc == nil {
		log.Warn("所有记分板地址均不可用，返回空列表")
		return nil
	}

	matches := a.parseDocument(doc)
	log.WithField("count", len(matches)).Debug("记分板解析完成")
	return matches
}

func (a *Adapter) parseDocument(doc *goquery.Document) []model.Match {
	var matches []model.Match
	index := make(map[uint32]int)

	doc.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		if !strings.Contains(href, "/cricket/series/") || !strings.Contains(href, "/game/") {
			return
		}
		matchURL := parsing.NormalizeURL(href, a.baseURL)
		if matchURL == "" {
			return
		}

		block := parsing.SpacedText(findCard(link))
		start, end := parsing.ParseDateRange(block)
		m := model.Match{
			MatchID:       parsing.DeriveMatchID(a.GetName(), matchURL),
			Source:        a.GetName(),
			URL:           matchURL,
			Description:   parsing.Truncate(block, maxDescription),
			Status:        parsing.ClassifyStatus(block),
			StartDate:     start,
			EndDate:       end,
			ScoreSummary:  parsing.Truncate(parsing.SpacedText(link), maxScoreSummary),
			ResultSummary: parsing.ResultSentence(block),
		}

		// 同一场比赛常有多个链接（比分、记分表、集锦）：位置取第一次出现，内容取最后一次
		if i, seen := index[m.MatchID]; seen {
			matches[i] = m
			return
		}
		index[m.MatchID] = len(matches)
		matches = append(matches, m)
	})
	return matches
}

// findCard 向上查找比赛卡片
func findCard(link *goquery.Selection) *goquery.Selection {
	node := link
	for i := 0; i < maxClimb && node.Length() > 0; i++ {
		n := utf8.RuneCountInString(parsing.SpacedText(node))
		if n >= minCardText && n <= maxCardText {
			return node
		}
		node = node.Parent()
	}
	if p := link.Parent(); p.Length() > 0 {
		return p
	}
	return link
}

// OwnsURL ========== 实现DetailExcerptFetcher接口 ==========
func (a *Adapter) OwnsURL(matchURL string) bool {
	u, err := url.Parse(matchURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if _, ok := a.hosts[host]; ok {
		return true
	}
	return strings.HasPrefix(host, "espn.") || strings.Contains(host, ".espn.")
}

// FetchMatchDetailExcerpt 比赛页全文的前 40 行
func (a *Adapter) FetchMatchDetailExcerpt(ctx context.Context, matchURL string) (string, error) {
	body, err := httpclient.FetchText(ctx, a.httpClient, matchURL, a.userAgent)
	if err != nil {
		return "", err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("解析比赛页失败 %s: %w", matchURL, err)
	}
	return parsing.HeadLines(parsing.TextLines(doc.Selection), excerptLines), nil
}
