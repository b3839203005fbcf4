package criczop

import (
	"strings"

	"LiveScore/internal/model"
	"LiveScore/internal/utils/parsing"

	"github.com/PuerkitoBio/goquery"
)

const (
	liveMarker       = "● live"
	liveExcerptLines = 35
	maxLiveSummary   = 500
	detailLines      = 60
)

// matchPage 比赛页解析结果
type matchPage struct {
	status  model.MatchStatus
	title   string
	series  string
	excerpt string
}

func parseMatchPage(html string) (*matchPage, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	title, series := parseHeading(doc)
	return &matchPage{
		status:  classifyMatchPage(html, doc),
		title:   title,
		series:  series,
		excerpt: parsing.ExcerptTop(parsing.TextLines(doc.Selection), liveExcerptLines, false),
	}, nil
}

// classifyMatchPage 比赛页状态：未开赛 > 已结束 > 进行中
func classifyMatchPage(html string, doc *goquery.Document) model.MatchStatus {
	text := strings.ToLower(parsing.SpacedText(doc.Selection))
	lowerHTML := strings.ToLower(html)

	switch {
	case strings.Contains(text, "match yet to start"):
		return model.StatusUpcoming
	case strings.Contains(lowerHTML, "winning-indicator"),
		strings.Contains(text, "won by"),
		strings.Contains(text, "match drawn"),
		strings.Contains(text, "no result"):
		return model.StatusResult
	case strings.Contains(text, liveMarker), strings.Contains(lowerHTML, liveMarker):
		return model.StatusLive
	default:
		return model.StatusUnknown
	}
}

// parseHeading h1 形如 "#India vs Australia, 1st ODI: Live Scores: Australia tour of India"
func parseHeading(doc *goquery.Document) (title, series string) {
	h1 := doc.Find("h1").First()
	if h1.Length() == 0 {
		return "", ""
	}
	heading := parsing.SpacedText(h1)
	left, right, ok := strings.Cut(heading, "Live Scores:")
	if !ok {
		return heading, ""
	}
	title = strings.TrimSpace(strings.ReplaceAll(left, "#", ""))
	title = strings.TrimRight(title, ":")
	return title, strings.TrimSpace(right)
}
