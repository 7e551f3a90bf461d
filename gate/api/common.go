package api

import (
	"time"

	"yakuchecker/common/http"
	"yakuchecker/gate/monitor"
)

// 综合负载超过该值视为不健康
const unhealthyLoad = 90.0

const CodeUnhealthy = 50001

// PingHandler ping 检查
func PingHandler(c *http.Context) error {
	c.Success(map[string]interface{}{
		"message":   "pong",
		"timestamp": time.Now().Unix(),
		"service":   "gate",
	})
	return nil
}

// LoadSource 负载采样来源，monitor.Monitor 实现
type LoadSource interface {
	Latest() monitor.LoadInfo
}

// Health 健康检查，依赖最近一次负载采样和 redis 是否启用
type Health struct {
	Load         LoadSource
	RedisEnabled bool
}

// Handler 健康检查
func (h *Health) Handler(c *http.Context) error {
	status := map[string]interface{}{
		"healthy":   true,
		"redis":     h.RedisEnabled,
		"timestamp": time.Now().Unix(),
	}
	if h.Load != nil {
		info := h.Load.Latest()
		status["load"] = info
		if info.Load > unhealthyLoad {
			status["healthy"] = false
		}
	}

	if status["healthy"].(bool) {
		c.Success(status)
	} else {
		c.ErrorWithCode(CodeUnhealthy, "服务不健康")
	}
	return nil
}
