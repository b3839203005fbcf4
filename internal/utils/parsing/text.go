package parsing

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// scorecardMarkers 摘录到这些标记前为止，后面是大段记分表
var scorecardMarkers = []string{"batting scorecard", "bowling scorecard", "fall of wickets"}

// navTokens 页面导航等无意义行
var navTokens = map[string]struct{}{
	"INFO": {}, "SCORECARD": {}, "SQUADS": {}, "COMMENTARY": {}, "POINTS TABLE": {},
	"Schedule": {}, "Logout": {},
}

var skippedTags = map[string]struct{}{"script": {}, "style": {}, "noscript": {}, "template": {}}

// TextLines 按文档顺序返回所有非空文本节点（已去首尾空白）
func TextLines(sel *goquery.Selection) []string {
	var lines []string
	var walk func(s *goquery.Selection)
	walk = func(s *goquery.Selection) {
		s.Contents().Each(func(_ int, c *goquery.Selection) {
			name := goquery.NodeName(c)
			if name == "#text" {
				if t := strings.TrimSpace(c.Text()); t != "" {
					lines = append(lines, t)
				}
				return
			}
			if _, skip := skippedTags[name]; skip {
				return
			}
			walk(c)
		})
	}
	walk(sel)
	return lines
}

// SpacedText 文本节点以单个空格拼接，用于分类与日期解析
func SpacedText(sel *goquery.Selection) string {
	return strings.Join(TextLines(sel), " ")
}

// ExcerptTop 从页面顶部截取摘要：遇到记分表标记即停止，可选过滤导航行，最多 maxLines 行
func ExcerptTop(lines []string, maxLines int, dropNav bool) string {
	cut := len(lines)
	for i, ln := range lines {
		lower := strings.ToLower(ln)
		for _, marker := range scorecardMarkers {
			if strings.Contains(lower, marker) {
				cut = i
				break
			}
		}
		if cut != len(lines) {
			break
		}
	}

	out := make([]string, 0, maxLines)
	for _, ln := range lines[:cut] {
		if len(out) >= maxLines {
			break
		}
		if dropNav {
			if _, nav := navTokens[ln]; nav || strings.HasSuffix(ln, "┃ Info") {
				continue
			}
		}
		out = append(out, ln)
	}
	return strings.Join(out, "\n")
}

// HeadLines 前 n 行
func HeadLines(lines []string, n int) string {
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}

// Truncate 按字符（rune）截断
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
