// internal/adapter/adapter.go
package adapter

import (
	"LiveScore/internal/interfaces"
	"LiveScore/internal/model"
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
)

// ========== 全局工厂函数注册表（各来源包在 init 中注册） ==========
var (
	factoryMu       sync.RWMutex
	factoryRegistry = make(map[model.SourceType]interfaces.Factory)
)

// Register 供适配器init函数调用，注册工厂函数
func Register(source model.SourceType, factory interfaces.Factory) {
	if factory == nil {
		panic(fmt.Sprintf("来源%s的工厂函数不能为nil", source))
	}
	factoryMu.Lock()
	defer factoryMu.Unlock()
	if _, exists := factoryRegistry[source]; exists {
		logrus.Warnf("来源%s的适配器已注册，将覆盖原有实现", source)
	}
	factoryRegistry[source] = factory
	logrus.Debugf("来源%s工厂函数注册成功", source)
}

// GetFactory 获取指定来源的工厂函数
func GetFactory(source model.SourceType) (interfaces.Factory, bool) {
	factoryMu.RLock()
	defer factoryMu.RUnlock()
	factory, ok := factoryRegistry[source]
	return factory, ok
}

// ListFactories 列出所有已注册工厂函数的来源（按名称排序）
func ListFactories() []model.SourceType {
	factoryMu.RLock()
	defer factoryMu.RUnlock()
	sources := make([]model.SourceType, 0, len(factoryRegistry))
	for s := range factoryRegistry {
		sources = append(sources, s)
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i] < sources[j] })
	return sources
}
