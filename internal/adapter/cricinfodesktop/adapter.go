package cricinfodesktop

import (
	"context"
	"net/http"
	"regexp"
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

const (
	DefaultPageURL = "https://www.espncricinfo.com/ci/engine/match/scores/desktop.html"
	DefaultBaseURL = "https://www.espncricinfo.com"

	matchLinkMarker  = "/ci/engine/match/"
	maxClimb         = 6
	minContainerText = 40
	maxContainerText = 600
	maxDescription   = 260
)

// scoreFragmentRe 第一个 "245/6 (45.2 ov)" 形式的比分片段
var scoreFragmentRe = regexp.MustCompile(`(\d+/\d+.*?ov\)?)`)

var _ interfaces.SourceAdapter = (*Adapter)(nil)

func init() {
	adapter.Register(model.SourceCricinfoDesktop, NewCricinfoDesktopAdapter)
}

// Adapter 桌面版比分列表页
type Adapter struct {
	pageURL    string
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewCricinfoDesktopAdapter(fetch config.FetchConfig, src config.SourceConfig, logger *logrus.Logger) interfaces.SourceAdapter {
	a := &Adapter{
		pageURL:    DefaultPageURL,
		baseURL:    DefaultBaseURL,
		userAgent:  fetch.UserAgent,
		httpClient: httpclient.NewHTTPClient(fetch, src, logger),
		logger:     logger,
	}
	if len(src.URLs) > 0 {
		a.pageURL = src.URLs[0]
	}
	if src.BaseURL != "" {
		a.baseURL = src.BaseURL
	}
	return a
}

// GetName ========== 实现SourceAdapter接口 ==========
func (a *Adapter) GetName() model.SourceType {
	return model.SourceCricinfoDesktop
}

func (a *Adapter) FetchMatches(ctx context.Context, cycle model.FetchCycle) []model.Match {
	log := a.logger.WithFields(logrus.Fields{"source": a.GetName(), "cycle_id": cycle.ID})

	body, err := httpclient.FetchText(ctx, a.httpClient, a.pageURL, a.userAgent)
	if err != nil {
		log.WithError(err).Warn("拉取比分列表页失败")
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		log.WithError(err).Warn("解析比分列表页失败")
		return nil
	}

	matches := a.parseDocument(doc)
	log.WithField("count", len(matches)).Debug("列表页解析完成")
	return matches
}

func (a *Adapter) parseDocument(doc *goquery.Document) []model.Match {
	var matches []model.Match
	doc.Find(`a[href*="` + matchLinkMarker + `"]`).Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		matchURL := parsing.NormalizeURL(href, a.baseURL)
		if matchURL == "" {
			return
		}

		block := parsing.SpacedText(pickContainer(link))
		start, end := parsing.ParseDateRange(block)

		var score string
		if m := scoreFragmentRe.FindStringSubmatch(block); m != nil {
			score = m[1]
		}

		matches = append(matches, model.Match{
			MatchID:      parsing.DeriveMatchID(a.GetName(), matchURL),
			Source:       a.GetName(),
			URL:          matchURL,
			Description:  parsing.Truncate(block, maxDescription),
			Status:       parsing.ClassifyStatus(block),
			StartDate:    start,
			EndDate:      end,
			ScoreSummary: score,
		})
	})
	return matches
}

// pickContainer 从链接向上找文本长度合适的容器（行/卡片），找不到时用直接父节点
func pickContainer(link *goquery.Selection) *goquery.Selection {
	node := link
	for i := 0; i < maxClimb && node.Length() > 0; i++ {
		n := utf8.RuneCountInString(parsing.SpacedText(node))
		if n >= minContainerText && n <= maxContainerText {
			return node
		}
		node = node.Parent()
	}
	if p := link.Parent(); p.Length() > 0 {
		return p
	}
	return link
}
