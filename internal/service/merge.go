package service

import (
	"LiveScore/internal/model"
)

// Merge 合并同一 match_id 的两条记录（prev 先出现）。
// 字段：prev 非空保留，空则用 incoming 补齐；
// 状态：UNKNOWN 不覆盖确定状态，确定状态覆盖 UNKNOWN，两个确定状态冲突时保留 prev；
// url/source：incoming 非空时总是采用 incoming。
func Merge(prev, incoming model.Match) model.Match {
	out := prev

	fillString(&out.Series, incoming.Series)
	fillString(&out.Title, incoming.Title)
	fillString(&out.Description, incoming.Description)
	fillString(&out.ScoreSummary, incoming.ScoreSummary)
	fillString(&out.ResultSummary, incoming.ResultSummary)
	fillString(&out.Note, incoming.Note)
	fillDate(&out.StartDate, incoming.StartDate)
	fillDate(&out.EndDate, incoming.EndDate)

	if !out.Status.IsKnown() && incoming.Status != "" {
		if incoming.Status.IsKnown() || out.Status == "" {
			out.Status = incoming.Status
		}
	}

	if incoming.URL != "" {
		out.URL = incoming.URL
	}
	if incoming.Source != "" {
		out.Source = incoming.Source
	}
	return out
}

// MergeAll 按 match_id 分组合并，保持首次出现顺序
func MergeAll(matches []model.Match) []model.Match {
	index := make(map[uint32]int, len(matches))
	out := make([]model.Match, 0, len(matches))
	for _, m := range matches {
		if i, ok := index[m.MatchID]; ok {
			out[i] = Merge(out[i], m)
			continue
		}
		index[m.MatchID] = len(out)
		out = append(out, m)
	}
	return out
}

func fillString(dst *string, v string) {
	if *dst == "" && v != "" {
		*dst = v
	}
}

func fillDate(dst *model.Date, v model.Date) {
	if dst.IsZero() && !v.IsZero() {
		*dst = v
	}
}
