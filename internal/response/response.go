// Package response 定义统一的 JSON 响应信封。
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 错误码与 HTTP 状态码一一对应。
const (
	CodeBadRequest   = "HB40001"
	CodeUnauthorized = "HB40101"
	CodeForbidden    = "HB40301"
	CodeNotFound     = "HB40401"
	CodeInternal     = "HB50001"
	CodeUnavailable  = "HB50301"
)

// 中间件和路由层使用的固定错误信息。
const (
	MsgUnauthorized = "Token missing or invalid"
	MsgForbidden    = "Permission denied"
	MsgNotFound     = "Resource not found"
	MsgInternal     = "Internal server error"
	MsgInvalidInput = "Invalid input."
	MsgUnavailable  = "Service temporarily unavailable"
)

// Envelope 是所有接口的响应结构，Code 只在失败时出现。
type Envelope struct {
	Message    string      `json:"message"`
	StatusCode int         `json:"statusCode"`
	Code       string      `json:"code,omitempty"`
	Data       interface{} `json:"data"`
}

// OK 返回 200 响应。
func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Message: message, StatusCode: http.StatusOK, Data: data})
}

// Created 返回 201 响应。
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Message: message, StatusCode: http.StatusCreated, Data: data})
}

// Fail 返回错误响应，错误码由状态码推导。
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Message: message, StatusCode: status, Code: codeFor(status)})
}

// Abort 与 Fail 相同，但会中止后续处理器，供中间件使用。
func Abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Envelope{Message: message, StatusCode: status, Code: codeFor(status)})
}

func codeFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return CodeBadRequest
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusServiceUnavailable:
		return CodeUnavailable
	default:
		return CodeInternal
	}
}
