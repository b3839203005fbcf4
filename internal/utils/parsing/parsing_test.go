package parsing

import (
	"strings"
	"testing"
	"time"

	"LiveScore/internal/model"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		name string
		text string
		want model.MatchStatus
	}{
		{"won by", "India won by 6 wickets", model.StatusResult},
		{"result outranks score", "ENG 250 all out, won by 40 runs", model.StatusResult},
		{"result outranks score fraction", "AUS 312/7 & 120/3 - match drawn", model.StatusResult},
		{"abandoned", "Match abandoned due to rain", model.StatusResult},
		{"no result", "No result", model.StatusResult},
		{"stumps", "Stumps - Day 2: PAK 210/4", model.StatusResult},
		{"starts at", "Match starts at 14:00", model.StatusUpcoming},
		{"start and local time", "Scheduled to start 09:30 local time", model.StatusUpcoming},
		{"score fraction", "IND 26/1 (3.1 ov)", model.StatusLive},
		{"ampersand innings", "SA 152 & 132", model.StatusLive},
		{"overs", "NZ (3.1/20 ov, target 180)", model.StatusLive},
		{"day n", "Day 3 - session 2", model.StatusLive},
		{"innings word", "2nd Innings in progress", model.StatusLive},
		{"tea", "Tea break", model.StatusLive},
		{"lunch", "LUNCH taken", model.StatusLive},
		{"starts at suppresses live cues", "Day 1 starts at 10:00", model.StatusUpcoming},
		{"plain", "India vs Australia", model.StatusUnknown},
		{"empty", "", model.StatusUnknown},
		{"teammate is not tea", "teammates warming up", model.StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyStatus(tt.text))
			// pure: same text → same status
			assert.Equal(t, ClassifyStatus(tt.text), ClassifyStatus(tt.text))
		})
	}
}

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantStart model.Date
		wantEnd   model.Date
	}{
		{"single day", "1st Test, Dec 27 2025, MCG", model.MustDate(2025, 12, 27), model.MustDate(2025, 12, 27)},
		{"day range", "Dec 26-30 2025", model.MustDate(2025, 12, 26), model.MustDate(2025, 12, 30)},
		{"day range with comma", "Dec 26-27, 2025", model.MustDate(2025, 12, 26), model.MustDate(2025, 12, 27)},
		{"long month", "Played on December 27, 2025", model.MustDate(2025, 12, 27), model.MustDate(2025, 12, 27)},
		{"nbsp", "Jan\u00a03\u00a02026", model.MustDate(2026, 1, 3), model.MustDate(2026, 1, 3)},
		{"unknown abbreviation", "Xyz 12 2025", model.Date{}, model.Date{}},
		{"impossible day", "Feb 30 2025", model.Date{}, model.Date{}},
		{"impossible range end", "Feb 27-31 2025", model.Date{}, model.Date{}},
		{"impossible long date", "February 30, 2025", model.Date{}, model.Date{}},
		{"no date", "India vs Australia", model.Date{}, model.Date{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := ParseDateRange(tt.text)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestDateFromURLSlug(t *testing.T) {
	tests := []struct {
		url  string
		want model.Date
	}{
		{"https://www.criczop.com/live-cricket-score/ind-vs-aus-1st-test-31-december-2025/match-scorecard", model.MustDate(2025, 12, 31)},
		{"https://www.criczop.com/live-cricket-score/eng-vs-nz-5-January-2026", model.MustDate(2026, 1, 5)},
		{"https://www.criczop.com/live-cricket-score/ind-vs-aus-30-february-2025/match-info", model.Date{}},
		{"https://www.criczop.com/scorecard/ind-vs-aus-12345", model.Date{}},
		{"https://www.criczop.com/live-cricket-score/x-31-december-2025-extra/match-info", model.Date{}},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, DateFromURLSlug(tt.url))
		})
	}
}

func TestDeriveMatchID(t *testing.T) {
	a := DeriveMatchID(model.SourceCriczop, "https://www.criczop.com/scorecard/a-1")
	b := DeriveMatchID(model.SourceCriczop, "https://www.criczop.com/scorecard/a-1")
	c := DeriveMatchID(model.SourceCriczop, "https://www.criczop.com/scorecard/a-2")
	d := DeriveMatchID(model.SourceESPNScores, "https://www.criczop.com/scorecard/a-1")

	assert.Equal(t, a, b, "same input must give the same id")
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, d)
	// CRC-32/IEEE of "a|b"
	assert.Equal(t, uint32(0x96624e8b), DeriveMatchID("a", "b"))
}

func TestNormalizeURL(t *testing.T) {
	base := "https://www.criczop.com"
	tests := []struct {
		raw  string
		want string
	}{
		{"/scorecard/ind-vs-aus-1/", "https://www.criczop.com/scorecard/ind-vs-aus-1"},
		{"http://www.criczop.com/live-cricket-score/x/match-info?tab=1#top", "https://www.criczop.com/live-cricket-score/x/match-info"},
		{"https://www.espn.com/cricket/series/1/game/2/", "https://www.espn.com/cricket/series/1/game/2"},
		{"javascript:void(0)", ""},
		{"mailto:a@b.c", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeURL(tt.raw, base))
		})
	}

	assert.Equal(t, "", NormalizeURL("/relative/only", ""), "relative link without base has no host")
}

func TestResultSentence(t *testing.T) {
	assert.Equal(t, "India won by 6 wickets (with 12 balls remaining)",
		ResultSentence("IND 180/4 | India won by 6 wickets (with 12 balls remaining) | Player of the match: X"))
	assert.Equal(t, "Australia won by 40 runs",
		ResultSentence("1st Test. Australia won by 40 runs. Series level 1-1"))
	assert.Equal(t, "", ResultSentence("India vs Australia, Day 2"))
}

const samplePage = `<html><head><title>t</title><script>var x = "won by";</script></head>
<body>
<nav><a>INFO</a><a>SCORECARD</a><a>SQUADS</a></nav>
<h1>India vs Australia, 1st Test Live Scores: Border-Gavaskar Trophy</h1>
<div>● Live</div>
<p>IND 210/4 (62 ov)</p>
<p>Match Centre ┃ Info</p>
<h2>Batting Scorecard</h2>
<table><tr><td>Rohit</td><td>45</td></tr></table>
</body></html>`

func TestTextLinesAndExcerpt(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(samplePage))
	require.NoError(t, err)

	lines := TextLines(doc.Selection)
	assert.NotContains(t, strings.Join(lines, "\n"), `var x`, "script text is skipped")
	assert.Contains(t, lines, "IND 210/4 (62 ov)")

	excerpt := ExcerptTop(lines, 35, true)
	assert.NotContains(t, excerpt, "INFO")
	assert.NotContains(t, excerpt, "Match Centre ┃ Info")
	assert.NotContains(t, excerpt, "Rohit", "excerpt stops before the scorecard table")
	assert.Contains(t, excerpt, "IND 210/4 (62 ov)")

	raw := ExcerptTop(lines, 35, false)
	assert.Contains(t, raw, "INFO")

	assert.Equal(t, 2, len(strings.Split(ExcerptTop(lines, 2, false), "\n")))
}

func TestSpacedText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<div><span>IND</span> <b>26/1</b>
	<i>(3.1 ov)</i></div>`))
	require.NoError(t, err)
	assert.Equal(t, "IND 26/1 (3.1 ov)", SpacedText(doc.Find("div")))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abcdef", 3))
	assert.Equal(t, "ab", Truncate("ab", 3))
	assert.Equal(t, "●L", Truncate("●Live", 2))
	assert.Equal(t, "", Truncate("x", 0))
}

func TestDateOfUsesLocalCalendarDay(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	// 20:00 UTC on Dec 26 is already Dec 27 in India
	now := time.Date(2025, 12, 26, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, model.MustDate(2025, 12, 27), model.DateOf(now.In(loc)))
}
