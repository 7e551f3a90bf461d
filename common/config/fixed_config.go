package config

import (
	"fmt"
	"strings"
	"sync"

	"yakuchecker/common/log"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

var Conf = Default()

var (
	mu        sync.RWMutex
	listeners []func(*Config)
)

type Config struct {
	AppName    string      `mapstructure:"appName"`
	Log        LogConf     `mapstructure:"log"`
	HttpPort   int         `mapstructure:"httpPort"`
	MetricPort int         `mapstructure:"metricPort"`
	Engine     EngineConf  `mapstructure:"engine"`
	Redis      RedisConf   `mapstructure:"redis"`
	Monitor    MonitorConf `mapstructure:"monitor"`
	RateLimit  RateLimit   `mapstructure:"rateLimit"`
}

type LogConf struct {
	Level string `mapstructure:"level"`
}

// EngineConf 计算引擎配置
type EngineConf struct {
	CacheMaxCost   int64 `mapstructure:"cacheMaxCost"`   // 向听缓存条目上限
	CacheTTL       int   `mapstructure:"cacheTTL"`       // 单位是秒
	Workers        int   `mapstructure:"workers"`        // worker 数量
	QueueSize      int   `mapstructure:"queueSize"`      // 任务队列大小
	AnalyzeTimeout int   `mapstructure:"analyzeTimeout"` // 单位是毫秒
	BatchLimit     int   `mapstructure:"batchLimit"`     // 单次批量请求的手牌数上限
}

// RedisConf addr 为空时不启用
type RedisConf struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"poolSize"`
	TTL      int    `mapstructure:"ttl"` // 单位是秒
}

// RateLimit 按客户端 IP 限流，rate 为 0 时不启用
type RateLimit struct {
	Rate  int `mapstructure:"rate"`  // 每秒请求数
	Burst int `mapstructure:"burst"` // 桶容量
}

type MonitorConf struct {
	Interval int `mapstructure:"interval"` // 单位是秒
}

// Default 默认配置
func Default() *Config {
	return &Config{
		AppName:    "yakuchecker",
		Log:        LogConf{Level: "info"},
		HttpPort:   8080,
		MetricPort: 6060,
		Engine: EngineConf{
			CacheMaxCost:   1 << 20,
			CacheTTL:       600,
			Workers:        8,
			QueueSize:      256,
			AnalyzeTimeout: 30000,
			BatchLimit:     64,
		},
		Redis:     RedisConf{TTL: 3600, PoolSize: 16},
		Monitor:   MonitorConf{Interval: 10},
		RateLimit: RateLimit{Burst: 20},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("appName", d.AppName)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("httpPort", d.HttpPort)
	v.SetDefault("metricPort", d.MetricPort)
	v.SetDefault("engine.cacheMaxCost", d.Engine.CacheMaxCost)
	v.SetDefault("engine.cacheTTL", d.Engine.CacheTTL)
	v.SetDefault("engine.workers", d.Engine.Workers)
	v.SetDefault("engine.queueSize", d.Engine.QueueSize)
	v.SetDefault("engine.analyzeTimeout", d.Engine.AnalyzeTimeout)
	v.SetDefault("engine.batchLimit", d.Engine.BatchLimit)
	v.SetDefault("redis.addr", d.Redis.Addr)
	v.SetDefault("redis.password", d.Redis.Password)
	v.SetDefault("redis.db", d.Redis.DB)
	v.SetDefault("redis.poolSize", d.Redis.PoolSize)
	v.SetDefault("redis.ttl", d.Redis.TTL)
	v.SetDefault("monitor.interval", d.Monitor.Interval)
	v.SetDefault("rateLimit.rate", d.RateLimit.Rate)
	v.SetDefault("rateLimit.burst", d.RateLimit.Burst)
}

// Load 读取配置文件（可为空，只用默认值和环境变量），并监听文件变化
func Load(configFile string) error {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	cfg, err := unmarshal(v)
	if err != nil {
		return err
	}
	set(cfg)

	if configFile != "" {
		v.OnConfigChange(func(in fsnotify.Event) {
			cfg, err := unmarshal(v)
			if err != nil {
				log.Warn("配置热更新失败，保留旧配置: %v", err)
				return
			}
			set(cfg)
		})
		v.WatchConfig()
	}
	return nil
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 检查配置取值
func (c *Config) Validate() error {
	if c.HttpPort <= 0 || c.HttpPort > 65535 {
		return fmt.Errorf("httpPort 不合法: %d", c.HttpPort)
	}
	if c.Engine.Workers <= 0 {
		return fmt.Errorf("engine.workers 必须大于 0")
	}
	if c.Engine.QueueSize <= 0 {
		return fmt.Errorf("engine.queueSize 必须大于 0")
	}
	if c.Engine.AnalyzeTimeout <= 0 {
		return fmt.Errorf("engine.analyzeTimeout 必须大于 0")
	}
	if c.Engine.CacheMaxCost <= 0 {
		return fmt.Errorf("engine.cacheMaxCost 必须大于 0")
	}
	return nil
}

func set(cfg *Config) {
	mu.Lock()
	Conf = cfg
	ls := append([]func(*Config){}, listeners...)
	mu.Unlock()
	for _, l := range ls {
		l(cfg)
	}
}

// Get 并发安全地读取当前配置
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	return Conf
}

// OnChange 注册配置变更回调（例如调整日志级别）
func OnChange(fn func(*Config)) {
	mu.Lock()
	listeners = append(listeners, fn)
	mu.Unlock()
}
