package model

import (
	"time"

	"github.com/google/uuid"
)

// Match 单场比赛的归一化记录；合并前每个来源各一条，合并后每场一条
type Match struct {
	MatchID       uint32      `json:"match_id"`       // CRC-32 of "source|url"
	Source        SourceType  `json:"source"`         // adapter that produced or last updated the record
	URL           string      `json:"url"`            // canonical page URL
	Series        string      `json:"series,omitempty"`
	Title         string      `json:"title,omitempty"`
	Description   string      `json:"description,omitempty"`
	Status        MatchStatus `json:"status"`
	StartDate     Date        `json:"start_date"`
	EndDate       Date        `json:"end_date"`
	ScoreSummary  string      `json:"score_summary,omitempty"`  // usually set while LIVE
	ResultSummary string      `json:"result_summary,omitempty"` // usually set once RESULT
	Note          string      `json:"note,omitempty"`
}

// MatchListResult 列表接口返回，同时是列表缓存的值
type MatchListResult struct {
	Mode        ListMode  `json:"mode"`
	Timezone    string    `json:"timezone"`
	GeneratedAt time.Time `json:"generated_at"`
	Items       []Match   `json:"items"`

	Live     []Match `json:"live"`
	Upcoming []Match `json:"upcoming"`
	Results  []Match `json:"results"`
	Recent   []Match `json:"recent"`
}

// Find 在所有分组中按 match_id 查找
func (r *MatchListResult) Find(matchID uint32) (Match, bool) {
	for _, bucket := range [][]Match{r.Items, r.Live, r.Upcoming, r.Results, r.Recent} {
		for _, m := range bucket {
			if m.MatchID == matchID {
				return m, true
			}
		}
	}
	return Match{}, false
}

// MatchDetailResult 详情接口返回
type MatchDetailResult struct {
	Match          Match     `json:"match"`
	FetchedAt      time.Time `json:"fetched_at"`
	Timezone       string    `json:"timezone"`
	RawTextExcerpt string    `json:"raw_text_excerpt,omitempty"`
}

// URLMap match_id → url，列表构建时顺带写入，TTL 比列表缓存长
type URLMap map[uint32]string

// FetchCycle 一次列表构建开始时计算一次，所有适配器共享同一个 now/today
type FetchCycle struct {
	ID       uuid.UUID
	Now      time.Time
	Today    Date
	Location *time.Location
}

// NewFetchCycle 以 loc 时区下的 now 生成本轮周期
func NewFetchCycle(now time.Time, loc *time.Location) FetchCycle {
	local := now.In(loc)
	return FetchCycle{
		ID:       uuid.New(),
		Now:      local,
		Today:    DateOf(local),
		Location: loc,
	}
}
