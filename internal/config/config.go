package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构体（完全匹配config.yaml）
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`  // 服务器配置
	Log     LogConfig     `mapstructure:"log"`     // 日志配置
	App     AppConfig     `mapstructure:"app"`     // 聚合/缓存参数
	Fetch   FetchConfig   `mapstructure:"fetch"`   // 上游抓取参数
	Sources SourcesConfig `mapstructure:"sources"` // 多来源独立配置
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port int    `mapstructure:"port"` // 服务端口
	Mode string `mapstructure:"mode"` // Gin运行模式：debug/release/test
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug/info/warn/error
	Format string `mapstructure:"format"` // text/json
}

// AppConfig 聚合服务参数
type AppConfig struct {
	TZ                    string `mapstructure:"tz"`                       // 默认时区，用于计算"今天"
	ListCacheTTLSeconds   int    `mapstructure:"list_cache_ttl_seconds"`   // 列表缓存 TTL
	DetailCacheTTLSeconds int    `mapstructure:"detail_cache_ttl_seconds"` // 详情缓存 TTL
	URLMapTTLSeconds      int    `mapstructure:"url_map_ttl_seconds"`      // match_id→url 映射 TTL
	MaxRecent             int    `mapstructure:"max_recent"`               // mixed 模式最近赛果条数
	MaxFuture             int    `mapstructure:"max_future"`               // mixed 模式未来赛程条数
	DetailExcerptMaxChars int    `mapstructure:"detail_excerpt_max_chars"` // 详情摘录最大字符数

	WarmIntervalSeconds int      `mapstructure:"warm_interval_seconds"` // 列表预热间隔，0 表示关闭
	WarmTimezones       []string `mapstructure:"warm_timezones"`        // 预热的时区，空则只预热默认时区
}

// FetchConfig 上游抓取通用参数
type FetchConfig struct {
	TimeoutSeconds int    `mapstructure:"timeout_seconds"` // 单次请求超时（秒）
	UserAgent      string `mapstructure:"user_agent"`      // 请求 UA
	Proxy          string `mapstructure:"proxy"`           // 全局代理地址（来源可单独覆盖）
	MaxConcurrency int    `mapstructure:"max_concurrency"` // 直播校验并发上限
	MaxLiveVerify  int    `mapstructure:"max_live_verify"` // 最多校验的直播候选数
	MaxUpcoming    int    `mapstructure:"max_upcoming"`    // 赛程候选上限
	MaxResults     int    `mapstructure:"max_results"`     // 赛果候选上限
}

// SourcesConfig 来源列表与各来源配置
type SourcesConfig struct {
	Enabled  []string                `mapstructure:"enabled"`  // 启用的来源，顺序即抓取与合并顺序
	Settings map[string]SourceConfig `mapstructure:"settings"` // 来源名 → 独立配置
}

// SourceConfig 单个来源的独立配置
type SourceConfig struct {
	URLs           []string `mapstructure:"urls"`            // 候选页面地址，按顺序尝试
	BaseURL        string   `mapstructure:"base_url"`        // 相对链接的基础地址
	TimeoutSeconds int      `mapstructure:"timeout_seconds"` // 覆盖 fetch.timeout_seconds
	Proxy          string   `mapstructure:"proxy"`           // 覆盖 fetch.proxy
}

// DefaultUserAgent 与浏览器一致的 UA，部分站点会拒绝默认 Go UA
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// LoadConfig 加载配置文件（config/config.yaml），敏感项与调优项可由 .env / APP_* 覆盖
func LoadConfig() (*Config, error) {
	// 1. 加载 .env（若存在），env 中的值会覆盖 config.yaml 中同名字段
	_ = godotenv.Load() // 忽略错误（.env 可不存在）

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	return load(v)
}

// LoadConfigFrom 从指定路径加载（测试与工具使用）
func LoadConfigFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	// 2. 默认值：配置文件缺失时也能启动
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 3. 用 env 覆盖（优先级 env > yaml）
	overrideFromEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.mode", "release")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("app.tz", "Asia/Kolkata")
	v.SetDefault("app.list_cache_ttl_seconds", 20)
	v.SetDefault("app.detail_cache_ttl_seconds", 20)
	v.SetDefault("app.url_map_ttl_seconds", 3600)
	v.SetDefault("app.max_recent", 5)
	v.SetDefault("app.max_future", 5)
	v.SetDefault("app.detail_excerpt_max_chars", 1200)
	v.SetDefault("app.warm_interval_seconds", 0)

	v.SetDefault("fetch.timeout_seconds", 12)
	v.SetDefault("fetch.user_agent", DefaultUserAgent)
	v.SetDefault("fetch.max_concurrency", 5)
	v.SetDefault("fetch.max_live_verify", 12)
	v.SetDefault("fetch.max_upcoming", 20)
	v.SetDefault("fetch.max_results", 20)

	v.SetDefault("sources.enabled", []string{"cricinfo_rss", "cricinfo_desktop", "espn_scores", "criczop"})
}

// overrideFromEnv 用 APP_* 环境变量覆盖配置
func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("APP_TZ"); v != "" {
		cfg.App.TZ = v
	}
	envInt("APP_LIST_CACHE_TTL_SECONDS", &cfg.App.ListCacheTTLSeconds)
	envInt("APP_DETAIL_CACHE_TTL_SECONDS", &cfg.App.DetailCacheTTLSeconds)
	envInt("APP_URL_MAP_TTL_SECONDS", &cfg.App.URLMapTTLSeconds)
	envInt("APP_WARM_INTERVAL_SECONDS", &cfg.App.WarmIntervalSeconds)
	envInt("APP_FETCH_TIMEOUT_SECONDS", &cfg.Fetch.TimeoutSeconds)
	envInt("APP_MAX_CONCURRENCY", &cfg.Fetch.MaxConcurrency)
	envInt("APP_MAX_LIVE_VERIFY", &cfg.Fetch.MaxLiveVerify)
	envInt("APP_MAX_UPCOMING", &cfg.Fetch.MaxUpcoming)
	envInt("APP_MAX_RESULTS", &cfg.Fetch.MaxResults)
	envInt("APP_PORT", &cfg.Server.Port)
	if v := os.Getenv("APP_USER_AGENT"); v != "" {
		cfg.Fetch.UserAgent = v
	}
	if v := os.Getenv("APP_PROXY"); v != "" {
		cfg.Fetch.Proxy = v
	}
	if v := os.Getenv("APP_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("APP_SOURCES"); v != "" {
		var names []string
		for _, n := range strings.Split(v, ",") {
			if n = strings.TrimSpace(n); n != "" {
				names = append(names, n)
			}
		}
		cfg.Sources.Enabled = names
	}
}

func envInt(key string, dst *int) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	if n, err := strconv.Atoi(v); err == nil {
		*dst = n
	}
}

// Validate 启动前校验；默认时区非法属于配置错误，直接失败
func (c *Config) Validate() error {
	if _, err := time.LoadLocation(c.App.TZ); err != nil {
		return fmt.Errorf("默认时区 %q 非法: %w", c.App.TZ, err)
	}
	if c.Fetch.MaxConcurrency <= 0 {
		return fmt.Errorf("fetch.max_concurrency 必须大于 0，当前 %d", c.Fetch.MaxConcurrency)
	}
	return nil
}

// Source 返回来源配置，未配置时返回零值
func (c *Config) Source(name string) SourceConfig {
	if c.Sources.Settings == nil {
		return SourceConfig{}
	}
	return c.Sources.Settings[name]
}

// ListCacheTTL 列表缓存 TTL
func (a AppConfig) ListCacheTTL() time.Duration {
	return time.Duration(a.ListCacheTTLSeconds) * time.Second
}

// DetailCacheTTL 详情缓存 TTL
func (a AppConfig) DetailCacheTTL() time.Duration {
	return time.Duration(a.DetailCacheTTLSeconds) * time.Second
}

// URLMapTTL url-map 缓存 TTL
func (a AppConfig) URLMapTTL() time.Duration {
	return time.Duration(a.URLMapTTLSeconds) * time.Second
}

// WarmInterval 列表预热间隔
func (a AppConfig) WarmInterval() time.Duration {
	return time.Duration(a.WarmIntervalSeconds) * time.Second
}

// Timeout 来源级超时优先，否则使用全局超时
func (f FetchConfig) Timeout(src SourceConfig) time.Duration {
	if src.TimeoutSeconds > 0 {
		return time.Duration(src.TimeoutSeconds) * time.Second
	}
	return time.Duration(f.TimeoutSeconds) * time.Second
}

// ProxyFor 来源级代理优先
func (f FetchConfig) ProxyFor(src SourceConfig) string {
	if src.Proxy != "" {
		return src.Proxy
	}
	return f.Proxy
}
