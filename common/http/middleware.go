package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"yakuchecker/common/log"

	"github.com/google/uuid"
)

// RequestIDKey 上下文中请求 ID 的键
const RequestIDKey = "requestID"

// CorsMiddleware 跨域中间件
func CorsMiddleware() MiddlewareFunc {
	return func(c *Context) error {
		if c.GetHeader("Origin") != "" {
			c.SetHeader("Access-Control-Allow-Origin", "*")
			c.SetHeader("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			c.SetHeader("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, X-Request-ID")
			c.SetHeader("Access-Control-Expose-Headers", "Content-Length, X-Request-ID")
		}

		// 处理预检请求
		if c.Method() == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
		}
		return nil
	}
}

// LoggerMiddleware 日志中间件，请求结束后记录耗时
func LoggerMiddleware() MiddlewareFunc {
	return func(c *Context) error {
		start := time.Now()
		c.Next()
		log.Info("HTTP %s %s %d %v ip=%s rid=%s",
			c.Method(), c.Path(), c.StatusCode(), time.Since(start), c.ClientIP(), c.GetString(RequestIDKey))
		return nil
	}
}

// RecoveryMiddleware 恢复中间件
func RecoveryMiddleware() MiddlewareFunc {
	return func(c *Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("Panic recovered: %v", r)
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		c.Next()
		return nil
	}
}

// RequestIDMiddleware 请求 ID 中间件
func RequestIDMiddleware() MiddlewareFunc {
	return func(c *Context) error {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(RequestIDKey, requestID)
		c.SetHeader("X-Request-ID", requestID)
		return nil
	}
}

// TimeoutMiddleware 给请求 context 加上截止时间，处理器需自行观察 ctx.Done
func TimeoutMiddleware(timeout time.Duration) MiddlewareFunc {
	return func(c *Context) error {
		if timeout <= 0 {
			return nil
		}
		ctx, cancel := context.WithTimeout(c.Ctx(), timeout)
		defer cancel()
		c.WithCtx(ctx)

		start := time.Now()
		c.Next()
		if elapsed := time.Since(start); elapsed > timeout {
			log.Warn("Request timeout: %s %s took %v", c.Method(), c.Path(), elapsed)
		}
		return nil
	}
}
