package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"yakuchecker/common/cache"
	"yakuchecker/common/config"
	"yakuchecker/common/http"
	"yakuchecker/common/log"
	"yakuchecker/common/workerpool"
	"yakuchecker/framework/game/engines/mahjong"
	"yakuchecker/gate/api"
	"yakuchecker/gate/monitor"
)

const (
	limiterMaxCost = 100000
	limiterTTL     = 10 * time.Minute
)

// Components gate 运行所需的全部组件
type Components struct {
	Server   *http.HttpServer
	Pool     *workerpool.Pool
	Memo     *cache.GeneralCache // 向听数下界缓存
	Results  *cache.GeneralCache // 分析结果缓存
	Limiters *cache.GeneralCache // 按 IP 的限流器，未开启限流时为 nil
	Store    cache.Store
	Monitor  *monitor.Monitor
	Searcher *mahjong.Searcher
}

// Build 按配置装配组件，不启动任何监听
func Build(ctx context.Context, conf *config.Config) (*Components, error) {
	ttl := time.Duration(conf.Engine.CacheTTL) * time.Second
	memo, err := cache.NewGeneralCache(conf.Engine.CacheMaxCost, 0)
	if err != nil {
		return nil, err
	}
	results, err := cache.NewGeneralCache(conf.Engine.CacheMaxCost, ttl)
	if err != nil {
		memo.Close()
		return nil, err
	}

	comp := &Components{
		Pool:     workerpool.New(conf.Engine.Workers, conf.Engine.QueueSize),
		Memo:     memo,
		Results:  results,
		Searcher: mahjong.NewSearcher(mahjong.WithCache(memo)),
	}
	if conf.RateLimit.Rate > 0 {
		limiters, err := cache.NewGeneralCache(limiterMaxCost, limiterTTL)
		if err != nil {
			results.Close()
			memo.Close()
			return nil, err
		}
		comp.Limiters = limiters
	}
	comp.Monitor = monitor.NewMonitor(comp.Pool, time.Duration(conf.Monitor.Interval)*time.Second)

	if conf.Redis.Addr != "" {
		store, err := cache.NewRedisStore(ctx, cache.RedisOptions{
			Addr:     conf.Redis.Addr,
			Password: conf.Redis.Password,
			DB:       conf.Redis.DB,
			PoolSize: conf.Redis.PoolSize,
			Prefix:   conf.AppName + ":",
			TTL:      time.Duration(conf.Redis.TTL) * time.Second,
		})
		if err != nil {
			// 共享缓存不可用时只使用本地缓存
			log.Warn("redis 不可用，仅使用本地缓存: %v", err)
		} else {
			comp.Store = store
			log.Info("redis 共享缓存已启用: %s", conf.Redis.Addr)
		}
	}

	// 使用 common 封装的 gin 库 http-server
	comp.Server = http.NewHttpServer(
		http.WithPort(conf.HttpPort),
		http.WithMode(conf.Log.Level),
	)

	// 中间处理器注册
	comp.Server.Use(
		http.RequestIDMiddleware(),
		http.LoggerMiddleware(),
		http.RecoveryMiddleware(),
		http.CorsMiddleware(),
		http.RateLimitMiddleware(conf.RateLimit.Rate, conf.RateLimit.Burst, comp.Limiters),
	)

	evaluator := &api.Evaluator{
		Searcher:   comp.Searcher,
		Pool:       comp.Pool,
		Results:    comp.Results,
		Store:      comp.Store,
		BatchLimit: conf.Engine.BatchLimit,
	}
	health := &api.Health{Load: comp.Monitor, RedisEnabled: comp.Store != nil}
	api.RegisterRoutes(comp.Server, evaluator, health, time.Duration(conf.Engine.AnalyzeTimeout)*time.Millisecond)

	return comp, nil
}

// Close 释放组件，HTTP 服务需先关闭
func (c *Components) Close() {
	c.Monitor.Stop()
	c.Pool.Shutdown()
	if c.Store != nil {
		if err := c.Store.Close(); err != nil {
			log.Error("redis 关闭失败: %v", err)
		}
	}
	if c.Limiters != nil {
		c.Limiters.Close()
	}
	c.Results.Close()
	c.Memo.Close()
}

func Run(ctx context.Context) error {
	comp, err := Build(ctx, config.Get())
	if err != nil {
		return err
	}

	// 日志级别随配置热更新
	config.OnChange(func(c *config.Config) {
		log.SetLevel(c.Log.Level)
		log.Info("配置已更新, log.level=%s", c.Log.Level)
	})

	go comp.Monitor.Start(ctx)

	go func() {
		log.Info(fmt.Sprintf("启动 HTTP 服务器，端口: %d", comp.Server.GetPort()))
		if err := comp.Server.Start(); err != nil {
			log.Fatal(fmt.Sprintf("HTTP 服务器启动失败: %v", err))
		}
	}()

	stop := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := comp.Server.Shutdown(shutdownCtx); err != nil {
			log.Error(fmt.Sprintf("HTTP 服务器关闭失败: %v", err))
		} else {
			log.Info("HTTP 服务器已优雅关闭")
		}
		comp.Close()
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT, syscall.SIGHUP)
	for {
		select {
		case <-ctx.Done():
			stop()
			return nil
		case s := <-c:
			switch s {
			case syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT:
				stop()
				log.Info("中断信号，服务停止")
				return nil
			case syscall.SIGHUP:
				stop()
				log.Info("挂起信号，服务停止")
				return nil
			default:
				return nil
			}
		}
	}
}
