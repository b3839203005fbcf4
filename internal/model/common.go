package model

// SourceType 上游来源标识，与配置 sources.enabled 中的名称一致
type SourceType string

const (
	SourceCricinfoRSS     SourceType = "cricinfo_rss"     // Cricinfo live scores RSS
	SourceCricinfoDesktop SourceType = "cricinfo_desktop" // Cricinfo classic desktop scores page
	SourceESPNScores      SourceType = "espn_scores"      // ESPN cricket scoreboard
	SourceCriczop         SourceType = "criczop"          // Criczop list pages + match pages
	SourceResolved        SourceType = "resolved"         // detail lookups rebuilt from the url-map
)

// MatchStatus 比赛状态
type MatchStatus string

const (
	StatusLive     MatchStatus = "LIVE"
	StatusUpcoming MatchStatus = "UPCOMING"
	StatusResult   MatchStatus = "RESULT"
	StatusUnknown  MatchStatus = "UNKNOWN"
)

// IsKnown 是否为确定的状态（非 UNKNOWN）
func (s MatchStatus) IsKnown() bool {
	return s != "" && s != StatusUnknown
}

// ListMode 列表展示模式
type ListMode string

const (
	ModeLive     ListMode = "live"
	ModeUpcoming ListMode = "upcoming"
	ModeMixed    ListMode = "mixed"
)
