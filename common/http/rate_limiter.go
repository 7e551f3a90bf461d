package http

import (
	"net/http"
	"sync"
	"time"

	"yakuchecker/common/cache"
)

// RateLimiter 令牌桶
type RateLimiter struct {
	rate       float64
	capacity   float64
	tokens     float64
	lastRefill time.Time
	mu         sync.Mutex
}

// NewRateLimiter 创建一个新的限流器
// rate: 每秒补充的令牌数
// burst: 桶的容量
func NewRateLimiter(rate int, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		rate:       float64(rate),
		capacity:   float64(burst),
		tokens:     float64(burst),
		lastRefill: time.Now(),
	}
}

// Allow 判断当前请求是否允许通过
func (rl *RateLimiter) Allow() bool {
	return rl.allowAt(time.Now())
}

func (rl *RateLimiter) allowAt(now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	elapsed := now.Sub(rl.lastRefill).Seconds()
	if elapsed > 0 {
		rl.tokens = min(rl.capacity, rl.tokens+elapsed*rl.rate)
		rl.lastRefill = now
	}

	if rl.tokens >= 1.0 {
		rl.tokens -= 1.0
		return true
	}
	return false
}

// RateLimitMiddleware 按客户端 IP 限流，限流器存放在 limiters 中
// 条目过期后该 IP 重新获得满桶；limiters 为 nil 或 rate <= 0 时不限流
func RateLimitMiddleware(rate, burst int, limiters *cache.GeneralCache) MiddlewareFunc {
	return func(c *Context) error {
		if rate <= 0 || limiters == nil {
			return nil
		}
		ip := c.ClientIP()
		var rl *RateLimiter
		if v, ok := limiters.Get(ip); ok {
			rl = v.(*RateLimiter)
		} else {
			rl = NewRateLimiter(rate, burst)
			limiters.Set(ip, rl)
			limiters.Wait()
		}
		if !rl.Allow() {
			return NewCodeError(http.StatusTooManyRequests, CodeTooManyRequests, MsgTooManyRequests)
		}
		return nil
	}
}
