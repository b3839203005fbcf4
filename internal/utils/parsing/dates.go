package parsing

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"LiveScore/internal/model"
)

var monthAbbr = map[string]time.Month{
	"Jan": time.January, "Feb": time.February, "Mar": time.March, "Apr": time.April,
	"May": time.May, "Jun": time.June, "Jul": time.July, "Aug": time.August,
	"Sep": time.September, "Oct": time.October, "Nov": time.November, "Dec": time.December,
}

var monthFull = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June, "july": time.July,
	"august": time.August, "september": time.September, "october": time.October,
	"november": time.November, "december": time.December,
}

var (
	// "Dec 27 2025"、"Dec 26-30 2025"、"Dec 26-27, 2025"
	shortRangeRe = regexp.MustCompile(`\b([A-Z][a-z]{2})\s+(\d{1,2})(?:-(\d{1,2}))?,?\s+(\d{4})\b`)
	// "December 27, 2025"
	longDateRe = regexp.MustCompile(`\b([A-Z][a-z]+)\s+(\d{1,2}),\s+(\d{4})\b`)
	// "/...-31-december-2025/..."
	slugDateRe = regexp.MustCompile(`-(\d{1,2})-(january|february|march|april|may|june|july|august|september|october|november|december)-(\d{4})(?:/|$)`)
)

// ParseDateRange 尽力解析文本中的日期范围；无法解析时返回两个零值，不会报错
func ParseDateRange(text string) (start, end model.Date) {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\u00a0", " "))

	if m := shortRangeRe.FindStringSubmatch(text); m != nil {
		month, ok := monthAbbr[m[1]]
		if !ok {
			return model.Date{}, model.Date{}
		}
		year, _ := strconv.Atoi(m[4])
		d1, _ := strconv.Atoi(m[2])
		first, ok := model.NewDate(year, month, d1)
		if !ok {
			return model.Date{}, model.Date{}
		}
		if m[3] == "" {
			return first, first
		}
		d2, _ := strconv.Atoi(m[3])
		last, ok := model.NewDate(year, month, d2)
		if !ok {
			return model.Date{}, model.Date{}
		}
		return first, last
	}

	if m := longDateRe.FindStringSubmatch(text); m != nil && len(m[1]) >= 3 {
		month, ok := monthAbbr[m[1][:3]]
		if !ok {
			return model.Date{}, model.Date{}
		}
		year, _ := strconv.Atoi(m[3])
		day, _ := strconv.Atoi(m[2])
		if d, ok := model.NewDate(year, month, day); ok {
			return d, d
		}
	}

	return model.Date{}, model.Date{}
}

// DateFromURLSlug 从 URL 路径里的 "-DD-monthname-YYYY" 片段取日期；不存在或不合法返回零值
func DateFromURLSlug(rawURL string) model.Date {
	path := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		path = u.Path
	}
	m := slugDateRe.FindStringSubmatch(strings.ToLower(path))
	if m == nil {
		return model.Date{}
	}
	day, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[3])
	d, _ := model.NewDate(year, monthFull[m[2]], day)
	return d
}
