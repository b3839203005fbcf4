package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"LiveScore/internal/adapter"
	"LiveScore/internal/cache"
	"LiveScore/internal/config"
	"LiveScore/internal/interfaces"
	"LiveScore/internal/model"
	"LiveScore/internal/utils/parsing"

	"github.com/facebookgo/clock"
	"github.com/sirupsen/logrus"
)

var (
	// ErrInvalidTimezone 请求的时区名称无法解析
	ErrInvalidTimezone = errors.New("invalid timezone")
	// ErrMatchNotFound 刷新一次列表后仍无法从 url-map 找到该 match_id
	ErrMatchNotFound = errors.New("match not found")
)

const urlMapKey = "urlmap"

// ScoresService 比分聚合服务：并发抓取所有来源、合并、分桶，并缓存列表/详情结果
type ScoresService struct {
	cfg      config.AppConfig
	registry *adapter.SourceRegistry
	cache    *cache.TTLCache
	clock    clock.Clock
	logger   *logrus.Logger
}

// NewScoresService 创建 ScoresService；clk 为 nil 时使用真实时钟
func NewScoresService(cfg config.AppConfig, registry *adapter.SourceRegistry, c *cache.TTLCache, clk clock.Clock, logger *logrus.Logger) *ScoresService {
	if clk == nil {
		clk = clock.New()
	}
	return &ScoresService{
		cfg:      cfg,
		registry: registry,
		cache:    c,
		clock:    clk,
		logger:   logger,
	}
}

// GetMatchList 返回当天（按请求时区）的比赛列表，命中缓存时直接返回
func (s *ScoresService) GetMatchList(ctx context.Context, timezone string) (*model.MatchListResult, error) {
	loc, err := s.resolveLocation(timezone)
	if err != nil {
		return nil, err
	}
	cycle := model.NewFetchCycle(s.clock.Now(), loc)

	key := listKey(loc, cycle.Today)
	if cached, ok := cache.GetAs[*model.MatchListResult](s.cache, key); ok {
		s.logger.WithField("key", key).Debug("列表缓存命中")
		return cached, nil
	}

	log := s.logger.WithFields(logrus.Fields{"cycle_id": cycle.ID, "timezone": loc.String(), "today": cycle.Today.String()})
	start := time.Now()

	// 结果会写入共享缓存：上游请求只受 fetch.timeout 约束，不随单个调用方取消
	merged := MergeAll(s.fetchAll(context.WithoutCancel(ctx), cycle, log))
	s.storeURLMap(merged)

	res := SelectList(merged, cycle.Today, s.cfg.MaxRecent, s.cfg.MaxFuture)
	res.Timezone = loc.String()
	res.GeneratedAt = cycle.Now

	s.cache.Set(key, res, s.cfg.ListCacheTTL())
	log.WithFields(logrus.Fields{
		"mode":     res.Mode,
		"matches":  len(merged),
		"items":    len(res.Items),
		"duration": time.Since(start).String(),
	}).Info("比赛列表构建完成")
	return res, nil
}

// GetMatchDetail 按 match_id 返回比赛详情与页面摘录
func (s *ScoresService) GetMatchDetail(ctx context.Context, matchID uint32, timezone string) (*model.MatchDetailResult, error) {
	loc, err := s.resolveLocation(timezone)
	if err != nil {
		return nil, err
	}

	key := detailKey(loc, matchID)
	if cached, ok := cache.GetAs[*model.MatchDetailResult](s.cache, key); ok {
		s.logger.WithField("key", key).Debug("详情缓存命中")
		return cached, nil
	}

	log := s.logger.WithFields(logrus.Fields{"match_id": matchID, "timezone": loc.String()})

	matchURL, ok := s.lookupURL(matchID)
	if !ok {
		// url-map 里没有：刷新一次列表后再查一次
		log.Debug("url-map 未命中，刷新列表")
		if _, err := s.GetMatchList(ctx, loc.String()); err != nil {
			return nil, err
		}
		if matchURL, ok = s.lookupURL(matchID); !ok {
			return nil, fmt.Errorf("%w: %d", ErrMatchNotFound, matchID)
		}
	}

	excerpt := ""
	if fetcher := s.pickFetcher(matchURL); fetcher != nil {
		text, err := fetcher.FetchMatchDetailExcerpt(context.WithoutCancel(ctx), matchURL)
		if err != nil {
			log.WithError(err).WithField("url", matchURL).Warn("详情摘录拉取失败，返回空摘录")
		}
		excerpt = parsing.Truncate(text, s.cfg.DetailExcerptMaxChars)
	}

	now := s.clock.Now().In(loc)
	res := &model.MatchDetailResult{
		Match:          s.matchFromList(loc, model.DateOf(now), matchID, matchURL),
		FetchedAt:      now,
		Timezone:       loc.String(),
		RawTextExcerpt: excerpt,
	}
	s.cache.Set(key, res, s.cfg.DetailCacheTTL())
	return res, nil
}

// fetchAll 每个来源一个 goroutine；结果按来源顺序拼接，保证合并结果确定
func (s *ScoresService) fetchAll(ctx context.Context, cycle model.FetchCycle, log *logrus.Entry) []model.Match {
	adapters := s.registry.Adapters()
	results := make([][]model.Match, len(adapters))

	var wg sync.WaitGroup
	for i, a := range adapters {
		i, a := i, a
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					log.WithField("source", a.GetName()).Errorf("来源抓取 panic: %v", r)
				}
			}()
			started := time.Now()
			results[i] = a.FetchMatches(ctx, cycle)
			log.WithFields(logrus.Fields{
				"source":   a.GetName(),
				"count":    len(results[i]),
				"duration": time.Since(started).String(),
			}).Debug("来源抓取完成")
		}()
	}
	wg.Wait()

	var all []model.Match
	for _, r := range results {
		all = append(all, r...)
	}
	return all
}

// storeURLMap 与旧映射取并集后写回；新值覆盖旧值
func (s *ScoresService) storeURLMap(matches []model.Match) {
	next := model.URLMap{}
	if prev, ok := cache.GetAs[model.URLMap](s.cache, urlMapKey); ok {
		for id, u := range prev {
			next[id] = u
		}
	}
	for _, m := range matches {
		if m.URL != "" {
			next[m.MatchID] = m.URL
		}
	}
	s.cache.Set(urlMapKey, next, s.cfg.URLMapTTL())
}

func (s *ScoresService) lookupURL(matchID uint32) (string, bool) {
	urls, ok := cache.GetAs[model.URLMap](s.cache, urlMapKey)
	if !ok {
		return "", false
	}
	u, ok := urls[matchID]
	return u, ok && u != ""
}

// pickFetcher 优先选择声明拥有该 URL 的来源，否则用第一个支持详情的来源
func (s *ScoresService) pickFetcher(matchURL string) interfaces.DetailExcerptFetcher {
	fetchers := s.registry.DetailFetchers()
	for _, f := range fetchers {
		if f.OwnsURL(matchURL) {
			return f
		}
	}
	if len(fetchers) > 0 {
		return fetchers[0]
	}
	return nil
}

// matchFromList 当天列表缓存里有合并后的记录时直接使用，否则只给出 id/url
func (s *ScoresService) matchFromList(loc *time.Location, today model.Date, matchID uint32, matchURL string) model.Match {
	if list, ok := cache.GetAs[*model.MatchListResult](s.cache, listKey(loc, today)); ok {
		if m, found := list.Find(matchID); found {
			return m
		}
	}
	return model.Match{
		MatchID: matchID,
		Source:  model.SourceResolved,
		URL:     matchURL,
		Status:  model.StatusUnknown,
	}
}

// resolveLocation 空串使用默认时区
func (s *ScoresService) resolveLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = s.cfg.TZ
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidTimezone, name, err)
	}
	return loc, nil
}

func listKey(loc *time.Location, today model.Date) string {
	return fmt.Sprintf("list:%s:%s", loc.String(), today.String())
}

func detailKey(loc *time.Location, matchID uint32) string {
	return fmt.Sprintf("detail:%s:%d", loc.String(), matchID)
}
