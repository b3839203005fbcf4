package parsing

import (
	"regexp"
	"strings"

	"LiveScore/internal/model"
)

// resultCues 命中任一即判定为 RESULT，优先级最高
var resultCues = []string{"won by", "match drawn", "abandoned", "no result", "tied", "stumps -", "result"}

// scorePatterns 比分类线索：26/1、152 & 132、(3.1/20 ov、Day 2、innings、tea/lunch
var scorePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d+/\d+\b`),
	regexp.MustCompile(`\b\d+\s*&\s*\d+\b`),
	regexp.MustCompile(`\(\d+(\.\d+)?/\d+\s*ov`),
	regexp.MustCompile(`(?i)\bday\s+\d+\b`),
	regexp.MustCompile(`(?i)\binnings\b`),
	regexp.MustCompile(`(?i)\btea\b|\blunch\b`),
}

// ClassifyStatus 按固定优先级从自由文本判定状态：RESULT > UPCOMING > LIVE > UNKNOWN
func ClassifyStatus(text string) model.MatchStatus {
	t := strings.ToLower(text)

	for _, cue := range resultCues {
		if strings.Contains(t, cue) {
			return model.StatusResult
		}
	}

	if strings.Contains(t, "starts at") || (strings.Contains(t, "start") && strings.Contains(t, "local time")) {
		return model.StatusUpcoming
	}

	for _, p := range scorePatterns {
		if p.MatchString(text) {
			return model.StatusLive
		}
	}
	return model.StatusUnknown
}

var wonByRe = regexp.MustCompile(`(?i)\bwon by\b`)

var sentenceSeps = []string{". ", " | ", "•"}

// ResultSentence 取出包含 "won by" 的那一句；没有则返回空串
func ResultSentence(text string) string {
	loc := wonByRe.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	idx := loc[0]

	start := 0
	for _, sep := range sentenceSeps {
		if i := strings.LastIndex(text[:idx], sep); i >= 0 && i+len(sep) > start {
			start = i + len(sep)
		}
	}
	end := len(text)
	for _, sep := range sentenceSeps {
		if i := strings.Index(text[idx:], sep); i >= 0 && idx+i < end {
			end = idx + i
		}
	}
	return strings.TrimSpace(text[start:end])
}
