package service

import (
	"testing"

	"LiveScore/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_Idempotent(t *testing.T) {
	m := model.Match{
		MatchID:      7,
		Source:       model.SourceESPNScores,
		URL:          "https://www.espn.com/cricket/series/1/game/2",
		Title:        "A vs B",
		Status:       model.StatusLive,
		StartDate:    model.MustDate(2026, 1, 3),
		ScoreSummary: "120/3",
	}
	assert.Equal(t, m, Merge(m, m))
}

func TestMerge_FillsEmptyFieldsOnly(t *testing.T) {
	prev := model.Match{MatchID: 1, Source: "a", URL: "u1", Title: "A vs B", Status: model.StatusUnknown}
	incoming := model.Match{
		MatchID:       1,
		Source:        "b",
		URL:           "u2",
		Title:         "Other title",
		Series:        "Test Series",
		ResultSummary: "A won by 3 runs",
		StartDate:     model.MustDate(2026, 1, 1),
		EndDate:       model.MustDate(2026, 1, 5),
		Status:        model.StatusResult,
	}

	got := Merge(prev, incoming)
	assert.Equal(t, "A vs B", got.Title, "non-empty prev field wins")
	assert.Equal(t, "Test Series", got.Series)
	assert.Equal(t, "A won by 3 runs", got.ResultSummary)
	assert.Equal(t, model.MustDate(2026, 1, 1), got.StartDate)
	assert.Equal(t, model.MustDate(2026, 1, 5), got.EndDate)
	assert.Equal(t, model.StatusResult, got.Status)
	assert.Equal(t, "u2", got.URL)
	assert.Equal(t, model.SourceType("b"), got.Source)
}

func TestMerge_StatusRules(t *testing.T) {
	tests := []struct {
		name           string
		prev, incoming model.MatchStatus
		want           model.MatchStatus
	}{
		{"unknown never downgrades", model.StatusLive, model.StatusUnknown, model.StatusLive},
		{"known replaces unknown", model.StatusUnknown, model.StatusUpcoming, model.StatusUpcoming},
		{"conflicting known keeps prior", model.StatusLive, model.StatusResult, model.StatusLive},
		{"both unknown", model.StatusUnknown, model.StatusUnknown, model.StatusUnknown},
		{"empty prev takes incoming", "", model.StatusUnknown, model.StatusUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(model.Match{Status: tt.prev}, model.Match{Status: tt.incoming})
			assert.Equal(t, tt.want, got.Status)
		})
	}
}

func TestMerge_EmptyURLKeepsPrevious(t *testing.T) {
	got := Merge(model.Match{URL: "u1", Source: "a"}, model.Match{})
	assert.Equal(t, "u1", got.URL)
	assert.Equal(t, model.SourceType("a"), got.Source)
}

func TestMergeAll_ThreeSourcesOneMatch(t *testing.T) {
	matches := []model.Match{
		{MatchID: 42, Source: "s1", URL: "u", Status: model.StatusUnknown, Title: "A vs B"},
		{MatchID: 9, Source: "s1", URL: "other", Status: model.StatusUpcoming},
		{MatchID: 42, Source: "s2", URL: "u", Status: model.StatusLive, ScoreSummary: "120/3"},
		{MatchID: 42, Source: "s3", URL: "u", Status: model.StatusUnknown, Series: "Test Series"},
	}

	merged := MergeAll(matches)
	require.Len(t, merged, 2)
	assert.Equal(t, uint32(42), merged[0].MatchID, "first-seen order is preserved")
	assert.Equal(t, uint32(9), merged[1].MatchID)

	got := merged[0]
	assert.Equal(t, model.StatusLive, got.Status)
	assert.Equal(t, "A vs B", got.Title)
	assert.Equal(t, "120/3", got.ScoreSummary)
	assert.Equal(t, "Test Series", got.Series)
	assert.Equal(t, model.SourceType("s3"), got.Source)
}

func TestMergeAll_Empty(t *testing.T) {
	assert.Empty(t, MergeAll(nil))
}
