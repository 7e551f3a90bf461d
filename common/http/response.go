package http

import (
	"errors"
	"net/http"
)

// Response 统一响应结构
type Response struct {
	Code      int         `json:"code"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	RequestID string      `json:"requestId,omitempty"`
}

// 预定义的响应码
const (
	CodeSuccess         = 0     // 成功
	CodeFailure         = -1    // 通用错误
	CodeInvalidParam    = 10001 // 参数错误
	CodeNotFound        = 10004 // 资源不存在
	CodeServerError     = 10005 // 服务器内部错误
	CodeTooManyRequests = 10006 // 请求过于频繁
	CodeTileNotPresent  = 20001 // 打出的牌不在手中
	CodeBusy            = 20002 // 计算超时或队列已满
)

// 预定义的响应消息
const (
	MsgSuccess         = "success"
	MsgInvalidParam    = "invalid parameters"
	MsgNotFound        = "not found"
	MsgServerError     = "internal server error"
	MsgBusy            = "service busy"
	MsgTooManyRequests = "too many requests"
)

// CodeError 携带 HTTP 状态和业务码的错误，处理器直接返回即可
type CodeError struct {
	Status int
	Code   int
	Msg    string
}

func (e *CodeError) Error() string {
	return e.Msg
}

// NewCodeError 创建业务错误
func NewCodeError(status, code int, msg string) *CodeError {
	return &CodeError{Status: status, Code: code, Msg: msg}
}

// NewResponse 创建响应
func NewResponse(code int, message string, data interface{}) *Response {
	return &Response{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

func (c *Context) respond(status, code int, message string, data interface{}) {
	resp := NewResponse(code, message, data)
	resp.RequestID = c.GetString(RequestIDKey)
	c.JSON(status, resp)
}

// Success 成功响应
func (c *Context) Success(data interface{}) {
	c.respond(http.StatusOK, CodeSuccess, MsgSuccess, data)
}

// ErrorWithCode 错误响应（自定义错误码）
func (c *Context) ErrorWithCode(code int, message string) {
	c.respond(http.StatusOK, code, message, nil)
}

// BadRequest 400 错误请求
func (c *Context) BadRequest(message string) {
	if message == "" {
		message = MsgInvalidParam
	}
	c.respond(http.StatusBadRequest, CodeInvalidParam, message, nil)
}

// NotFound 404 资源不存在
func (c *Context) NotFound(message string) {
	if message == "" {
		message = MsgNotFound
	}
	c.respond(http.StatusNotFound, CodeNotFound, message, nil)
}

// ServiceUnavailable 503 计算资源不足
func (c *Context) ServiceUnavailable(message string) {
	if message == "" {
		message = MsgBusy
	}
	c.respond(http.StatusServiceUnavailable, CodeBusy, message, nil)
}

// InternalServerError 500 服务器内部错误
func (c *Context) InternalServerError(message string) {
	if message == "" {
		message = MsgServerError
	}
	c.respond(http.StatusInternalServerError, CodeServerError, message, nil)
}

// Fail 按错误类型写出响应，未知错误按 500 处理
func (c *Context) Fail(err error) {
	var ce *CodeError
	if errors.As(err, &ce) {
		c.respond(ce.Status, ce.Code, ce.Msg, nil)
		return
	}
	c.InternalServerError(err.Error())
}
