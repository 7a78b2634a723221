package middleware

import (
	"net/http"

	"fu-news-go/internal/response"
	"fu-news-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// Recovery 捕获处理器中的 panic，记录日志并返回 500 信封。
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Errorw("panic recovered", "path", c.Request.URL.Path, "panic", recovered)
		response.Abort(c, http.StatusInternalServerError, response.MsgInternal)
	})
}
