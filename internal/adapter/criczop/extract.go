package criczop

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"

	"LiveScore/internal/utils/parsing"

	"github.com/PuerkitoBio/goquery"
)

// rawMatchPathRe 两个结构化通道都取不到链接时，对原始 HTML 做兜底扫描
var rawMatchPathRe = regexp.MustCompile(`(?i)/(?:live-cricket-score|scorecard)/[^"'\s<>]+`)

// isMatchURL 只保留比赛页：排除 fantasy/预测文章
func isMatchURL(u string) bool {
	lower := strings.ToLower(u)
	if strings.Contains(lower, "dream-11") || strings.Contains(lower, "team-prediction") {
		return false
	}
	if strings.Contains(lower, "/live-cricket-score/") &&
		(strings.HasSuffix(lower, "/match-scorecard") || strings.HasSuffix(lower, "/match-info")) {
		return true
	}
	return strings.Contains(lower, "/scorecard/")
}

func isScorecardURL(u string) bool {
	lower := strings.ToLower(u)
	return strings.HasSuffix(lower, "/match-scorecard") || strings.Contains(lower, "/scorecard/")
}

func isMatchInfoURL(u string) bool {
	return strings.HasSuffix(strings.ToLower(u), "/match-info")
}

// extractMatchURLs 合并 __NEXT_DATA__ 与正文链接两个通道，规范化后去重排序
func extractMatchURLs(html, base string) []string {
	found := make(map[string]struct{})
	add := func(raw string) {
		u := parsing.NormalizeURL(raw, base)
		if u != "" && isMatchURL(u) {
			found[u] = struct{}{}
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err == nil {
		for _, s := range nextDataStrings(doc) {
			if strings.Contains(s, "/live-cricket-score/") || strings.Contains(s, "/scorecard/") {
				add(s)
			}
		}

		root := doc.Find("main").First()
		if root.Length() == 0 {
			root = doc.Find("body").First()
		}
		if root.Length() == 0 {
			root = doc.Selection
		}
		root.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			add(href)
		})
	}

	if len(found) == 0 {
		for _, p := range rawMatchPathRe.FindAllString(html, -1) {
			add(p)
		}
	}

	urls := make([]string, 0, len(found))
	for u := range found {
		urls = append(urls, u)
	}
	sort.Strings(urls)
	return urls
}

// nextDataStrings 解析 Next.js 内嵌的 __NEXT_DATA__，返回其中所有字符串值
func nextDataStrings(doc *goquery.Document) []string {
	script := doc.Find("script#__NEXT_DATA__").First()
	if script.Length() == 0 {
		return nil
	}
	var data any
	if err := json.Unmarshal([]byte(script.Text()), &data); err != nil {
		return nil
	}

	var out []string
	var walk func(v any)
	walk = func(v any) {
		switch x := v.(type) {
		case map[string]any:
			for _, child := range x {
				walk(child)
			}
		case []any:
			for _, child := range x {
				walk(child)
			}
		case string:
			out = append(out, x)
		}
	}
	walk(data)
	return out
}
