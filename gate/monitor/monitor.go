package monitor

import (
	"context"
	"runtime"
	"sync"
	"time"

	"yakuchecker/common/log"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// QueueStats 计算队列的统计来源
type QueueStats interface {
	Pending() int
	Workers() int
}

// Monitor 监控器
// 定期采样本机负载，供健康检查读取
type Monitor struct {
	queue          QueueStats
	updateInterval time.Duration
	stopCh         chan struct{}
	stopOnce       sync.Once

	mu     sync.RWMutex
	latest LoadInfo
}

// NewMonitor 创建监控器
// updateInterval: 更新间隔（建议 5-10 秒）
func NewMonitor(queue QueueStats, updateInterval time.Duration) *Monitor {
	if updateInterval <= 0 {
		updateInterval = 10 * time.Second
	}
	return &Monitor{
		queue:          queue,
		updateInterval: updateInterval,
		stopCh:         make(chan struct{}),
	}
}

// Start 阻塞运行，在独立的 goroutine 中调用
func (m *Monitor) Start(ctx context.Context) {
	ticker := time.NewTicker(m.updateInterval)
	defer ticker.Stop()

	// 立即执行一次
	m.report()

	for {
		select {
		case <-ctx.Done():
			log.Info("Monitor 收到停止信号，退出监控")
			return
		case <-m.stopCh:
			log.Info("Monitor 收到停止信号，退出监控")
			return
		case <-ticker.C:
			m.report()
		}
	}
}

// Stop 停止监控器
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

// Latest 最近一次采样
func (m *Monitor) Latest() LoadInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latest
}

func (m *Monitor) report() {
	info := m.Collect()
	m.mu.Lock()
	m.latest = info
	m.mu.Unlock()
	log.Debug("Monitor 负载: Load=%.2f, Pending=%d, CPU=%.2f%%, Mem=%.2f%%",
		info.Load, info.Pending, info.CPUUsage, info.MemUsage)
}

// Collect 立即采样一次
func (m *Monitor) Collect() LoadInfo {
	info := LoadInfo{
		Goroutines: runtime.NumGoroutine(),
		CPUUsage:   cpuUsage(),
		MemUsage:   memUsage(),
	}
	if m.queue != nil {
		info.Pending = m.queue.Pending()
		info.Workers = m.queue.Workers()
	}
	info.Load = info.CalculateLoad()
	return info
}

// cpuUsage 自上次调用以来的整机 CPU 使用率
func cpuUsage() float64 {
	percents, err := cpu.Percent(0, false)
	if err != nil || len(percents) == 0 {
		log.Warn("获取 CPU 使用率失败: %v", err)
		return 0
	}
	return percents[0]
}

func memUsage() float64 {
	vm, err := mem.VirtualMemory()
	if err != nil {
		log.Warn("获取内存使用率失败: %v", err)
		return 0
	}
	return vm.UsedPercent
}
