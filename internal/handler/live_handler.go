package handler

import (
	"fu-news-go/internal/live"

	"github.com/gin-gonic/gin"
)

// LiveHandler 将 websocket 连接交给 live.Hub 管理。
type LiveHandler struct {
	hub *live.Hub
}

// NewLiveHandler 创建一个新的 LiveHandler。
func NewLiveHandler(hub *live.Hub) *LiveHandler {
	return &LiveHandler{hub: hub}
}

// Handle 处理一个传入的 WebSocket 连接。
func (h *LiveHandler) Handle(c *gin.Context) {
	h.hub.ServeWS(c.Writer, c.Request)
}
