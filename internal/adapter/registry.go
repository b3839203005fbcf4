package adapter

import (
	"LiveScore/internal/config"
	"LiveScore/internal/interfaces"
	"LiveScore/internal/model"
	"fmt"

	"github.com/sirupsen/logrus"
)

// SourceRegistry 按配置顺序持有已初始化的来源适配器；顺序即抓取结果的合并顺序
type SourceRegistry struct {
	cfg      *config.Config
	logger   *logrus.Logger
	adapters []interfaces.SourceAdapter
}

func NewSourceRegistry(cfg *config.Config, logger *logrus.Logger) *SourceRegistry {
	r := &SourceRegistry{
		cfg:    cfg,
		logger: logger,
	}
	r.initAdaptersFromFactories()
	return r
}

// NewSourceRegistryWith 直接用给定适配器构建（测试与自定义组合使用）
func NewSourceRegistryWith(logger *logrus.Logger, adapters ...interfaces.SourceAdapter) *SourceRegistry {
	return &SourceRegistry{logger: logger, adapters: adapters}
}

// initAdaptersFromFactories 遍历 sources.enabled，匹配工厂函数创建实例
func (r *SourceRegistry) initAdaptersFromFactories() {
	r.logger.WithField("factory_sources", ListFactories()).Debug("adapter包中已注册的工厂函数")

	seen := make(map[model.SourceType]bool)
	for _, name := range r.cfg.Sources.Enabled {
		source := model.SourceType(name)
		if seen[source] {
			r.logger.WithField("source", source).Warn("来源重复配置，忽略")
			continue
		}
		seen[source] = true

		factory, ok := GetFactory(source)
		if !ok {
			r.logger.WithField("source", source).Error("未找到对应的工厂函数（init未注册？）")
			continue
		}

		adapterIns := factory(r.cfg.Fetch, r.cfg.Source(name), r.logger)
		if adapterIns == nil {
			r.logger.WithField("source", source).Error("工厂函数返回nil适配器实例")
			continue
		}

		if adapterIns.GetName() != source {
			r.logger.WithFields(logrus.Fields{
				"config_source":  source,
				"adapter_source": adapterIns.GetName(),
			}).Error("适配器来源名与配置不匹配")
			continue
		}

		r.adapters = append(r.adapters, adapterIns)
	}

	r.logger.WithField("sources", r.ListSources()).Info("来源适配器初始化完成")
}

// Adapters 返回全部适配器（配置顺序）
func (r *SourceRegistry) Adapters() []interfaces.SourceAdapter {
	out := make([]interfaces.SourceAdapter, len(r.adapters))
	copy(out, r.adapters)
	return out
}

// DetailFetchers 返回支持详情摘录的适配器（配置顺序）
func (r *SourceRegistry) DetailFetchers() []interfaces.DetailExcerptFetcher {
	return interfaces.DetailFetchers(r.adapters)
}

// ListSources 已初始化的来源名列表
func (r *SourceRegistry) ListSources() []model.SourceType {
	sources := make([]model.SourceType, 0, len(r.adapters))
	for _, a := range r.adapters {
		sources = append(sources, a.GetName())
	}
	return sources
}

// GetAdapter 获取指定来源的适配器实例
func (r *SourceRegistry) GetAdapter(source model.SourceType) (interfaces.SourceAdapter, error) {
	for _, a := range r.adapters {
		if a.GetName() == source {
			return a, nil
		}
	}
	return nil, fmt.Errorf("来源%s未初始化适配器实例（已初始化：%v）", source, r.ListSources())
}

// Count 已初始化实例数量
func (r *SourceRegistry) Count() int {
	return len(r.adapters)
}
