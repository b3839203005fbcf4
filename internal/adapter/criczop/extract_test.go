package criczop

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const base = "https://www.criczop.com"

func TestIsMatchURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{base + "/live-cricket-score/a-vs-b/match-scorecard", true},
		{base + "/live-cricket-score/a-vs-b/match-info", true},
		{base + "/live-cricket-score/a-vs-b/commentary", false},
		{base + "/scorecard/a-vs-b-123", true},
		{base + "/cricket-news/a-vs-b-dream-11-prediction/scorecard/x", false},
		{base + "/live-cricket-score/a-vs-b-team-prediction/match-info", false},
		{base + "/cricket-schedule", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isMatchURL(tt.url), tt.url)
	}
}

func TestExtractMatchURLs_RegexFallback(t *testing.T) {
	html := `<html><body><div data-x='/live-cricket-score/a-vs-b-5-january-2026/match-info'></div></body></html>`
	assert.Equal(t,
		[]string{base + "/live-cricket-score/a-vs-b-5-january-2026/match-info"},
		extractMatchURLs(html, base))
}

func TestExtractMatchURLs_DedupesAndSorts(t *testing.T) {
	html := `<html><head>
<script id="__NEXT_DATA__" type="application/json">{"a":["/scorecard/z-1","https://www.criczop.com/scorecard/a-1/"]}</script>
</head><body>
<a href="/scorecard/a-1?tab=live">A</a>
<a href="http://www.criczop.com/scorecard/m-1#top">M</a>
<a href="mailto:hi@criczop.com">mail</a>
</body></html>`
	assert.Equal(t, []string{
		base + "/scorecard/a-1",
		base + "/scorecard/m-1",
		base + "/scorecard/z-1",
	}, extractMatchURLs(html, base))
}

func TestExtractMatchURLs_BadNextData(t *testing.T) {
	html := `<html><head><script id="__NEXT_DATA__">{not json</script></head>
<body><main><a href="/scorecard/a-1">A</a></main></body></html>`
	assert.Equal(t, []string{base + "/scorecard/a-1"}, extractMatchURLs(html, base))
}
