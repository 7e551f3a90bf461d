package http

import (
	"context"

	"github.com/gin-gonic/gin"
)

// Context 封装 gin.Context，提供统一的请求/响应接口
type Context struct {
	ginCtx *gin.Context
}

// newContext 创建新的上下文实例
func newContext(c *gin.Context) *Context {
	return &Context{ginCtx: c}
}

// GetHeader 获取请求头
func (c *Context) GetHeader(key string) string {
	return c.ginCtx.GetHeader(key)
}

// BindJSON 绑定 JSON 请求体
func (c *Context) BindJSON(obj interface{}) error {
	return c.ginCtx.ShouldBindJSON(obj)
}

// JSON 返回 JSON 响应
func (c *Context) JSON(code int, obj interface{}) {
	c.ginCtx.JSON(code, obj)
}

// SetHeader 设置响应头
func (c *Context) SetHeader(key, value string) {
	c.ginCtx.Header(key, value)
}

// ClientIP 获取客户端 IP
func (c *Context) ClientIP() string {
	return c.ginCtx.ClientIP()
}

// Method 获取请求方法
func (c *Context) Method() string {
	return c.ginCtx.Request.Method
}

// Path 获取请求路径
func (c *Context) Path() string {
	return c.ginCtx.Request.URL.Path
}

// StatusCode 已写出的响应码
func (c *Context) StatusCode() int {
	return c.ginCtx.Writer.Status()
}

// Set 设置上下文值
func (c *Context) Set(key string, value interface{}) {
	c.ginCtx.Set(key, value)
}

// GetString 获取字符串类型的上下文值
func (c *Context) GetString(key string) string {
	return c.ginCtx.GetString(key)
}

// Ctx 请求级 context，超时中间件会给它加上截止时间
func (c *Context) Ctx() context.Context {
	return c.ginCtx.Request.Context()
}

// WithCtx 替换请求 context
func (c *Context) WithCtx(ctx context.Context) {
	c.ginCtx.Request = c.ginCtx.Request.WithContext(ctx)
}

// Next 在中间件内执行后续处理器
func (c *Context) Next() {
	c.ginCtx.Next()
}

// AbortWithStatus 中止请求并设置状态码
func (c *Context) AbortWithStatus(code int) {
	c.ginCtx.AbortWithStatus(code)
}

// IsAborted 检查请求是否已被中止
func (c *Context) IsAborted() bool {
	return c.ginCtx.IsAborted()
}
