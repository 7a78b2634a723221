package middleware

import (
	"bytes"
	"io"
	"strings"
	"time"

	"fu-news-go/pkg/log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap/zapcore"
)

// bodyLogWriter 用于捕获响应体
type bodyLogWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

// Write 实现了 io.Writer 接口，将响应写入 gin.ResponseWriter 和一个内部的 buffer
func (w bodyLogWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// sensitivePrefixes 下的请求和响应可能包含密码或 token，不记录 body。
var sensitivePrefixes = []string{"/api/auth/login", "/api/accounts"}

func isSensitive(path string) bool {
	for _, prefix := range sensitivePrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// RequestLogger 是一个 Gin 中间件，每个请求记录一条结构化日志。
// 请求体和响应体只在 debug 级别下记录。
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		path := c.Request.URL.Path
		logBodies := log.Enabled(zapcore.DebugLevel) &&
			!isSensitive(path) && !strings.HasPrefix(c.ContentType(), "multipart/")

		var requestBody []byte
		var blw *bodyLogWriter
		if logBodies {
			if c.Request.Body != nil {
				requestBody, _ = io.ReadAll(c.Request.Body)
			}
			// 将读取的请求体重新设置回 c.Request.Body，以便后续处理函数可以正常读取
			c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
			blw = &bodyLogWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
			c.Writer = blw
		}

		c.Next()

		fields := []interface{}{
			"statusCode", c.Writer.Status(),
			"latency", time.Since(startTime).String(),
			"clientIP", c.ClientIP(),
			"method", c.Request.Method,
			"path", path,
		}
		if logBodies {
			fields = append(fields, "requestBody", string(requestBody), "responseBody", blw.body.String())
		}
		log.Infow("HTTP Request Log", fields...)
	}
}
