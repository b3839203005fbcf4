package service

import (
	"sort"

	"LiveScore/internal/model"
)

// IsToday 判断比赛是否属于 today：
// 起止都有时 start ≤ today ≤ end；只有 start 时 start == today；只有 end 时 end == today；
// 没有任何日期时乐观地算作今天
func IsToday(m model.Match, today model.Date) bool {
	hasStart, hasEnd := !m.StartDate.IsZero(), !m.EndDate.IsZero()
	switch {
	case hasStart && hasEnd:
		return !m.StartDate.After(today.Time) && !today.After(m.EndDate.Time)
	case hasStart:
		return m.StartDate.Equal(today.Time)
	case hasEnd:
		return m.EndDate.Equal(today.Time)
	default:
		return true
	}
}

// SelectList 按"今天"分桶并决定展示模式；返回的结果未填 timezone/generated_at
func SelectList(matches []model.Match, today model.Date, maxRecent, maxFuture int) *model.MatchListResult {
	res := &model.MatchListResult{
		Items:    []model.Match{},
		Live:     []model.Match{},
		Upcoming: []model.Match{},
		Results:  []model.Match{},
		Recent:   []model.Match{},
	}

	anyToday := false
	for _, m := range matches {
		if !IsToday(m, today) {
			continue
		}
		anyToday = true
		switch m.Status {
		case model.StatusLive:
			res.Live = append(res.Live, m)
		case model.StatusUpcoming:
			res.Upcoming = append(res.Upcoming, m)
		case model.StatusResult:
			res.Results = append(res.Results, m)
		}
	}

	switch {
	case !anyToday:
		res.Mode = model.ModeMixed
		res.Recent = recentMatches(matches, today, maxRecent)
		res.Upcoming = futureMatches(matches, today, maxFuture)
		res.Items = concat(res.Recent, res.Upcoming)
	case len(res.Live) > 0:
		res.Mode = model.ModeLive
		res.Items = concat(res.Live, res.Upcoming, res.Results)
	case len(res.Upcoming) > 0:
		res.Mode = model.ModeUpcoming
		res.Items = concat(res.Upcoming, res.Results)
	default:
		res.Mode = model.ModeMixed
		res.Items = concat(res.Results)
	}
	return res
}

// recentMatches 已结束的比赛，按结束（或开始）日期倒序取前 n 条
func recentMatches(matches []model.Match, today model.Date, n int) []model.Match {
	past := []model.Match{}
	for _, m := range matches {
		endedBefore := !m.EndDate.IsZero() && m.EndDate.Before(today.Time)
		finishedBefore := !m.StartDate.IsZero() && m.StartDate.Before(today.Time) && m.Status == model.StatusResult
		if endedBefore || finishedBefore {
			past = append(past, m)
		}
	}
	sort.SliceStable(past, func(i, j int) bool {
		return lastDay(past[i]).After(lastDay(past[j]).Time)
	})
	return head(past, n)
}

// futureMatches 未开始的比赛，按开始日期正序取前 n 条，无日期的排最后
func futureMatches(matches []model.Match, today model.Date, n int) []model.Match {
	future := []model.Match{}
	for _, m := range matches {
		if (!m.StartDate.IsZero() && m.StartDate.After(today.Time)) || m.Status == model.StatusUpcoming {
			future = append(future, m)
		}
	}
	sort.SliceStable(future, func(i, j int) bool {
		a, b := future[i].StartDate, future[j].StartDate
		switch {
		case a.IsZero():
			return false
		case b.IsZero():
			return true
		default:
			return a.Before(b.Time)
		}
	})
	return head(future, n)
}

func lastDay(m model.Match) model.Date {
	if !m.EndDate.IsZero() {
		return m.EndDate
	}
	return m.StartDate
}

func head(matches []model.Match, n int) []model.Match {
	if n < 0 {
		n = 0
	}
	if len(matches) > n {
		return matches[:n]
	}
	return matches
}

func concat(buckets ...[]model.Match) []model.Match {
	out := []model.Match{}
	for _, b := range buckets {
		out = append(out, b...)
	}
	return out
}
