package handler

import (
	"strconv"

	"fu-news-go/internal/response"
	"fu-news-go/internal/service"
	"fu-news-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// SearchHandler 结构体定义了全文检索的处理器。
type SearchHandler struct {
	searchService service.SearchService
}

// NewSearchHandler 创建一个新的 SearchHandler 实例。
func NewSearchHandler(searchService service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// FullText 是处理全文检索请求的 Gin 处理函数。size 无法解析时使用默认值。
func (h *SearchHandler) FullText(c *gin.Context) {
	query := c.Query("q")
	size, err := strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil {
		size = 0
	}
	log.Infof("[SearchHandler] 收到全文检索请求, q: %s, size: %d", query, size)

	hits, err := h.searchService.FullText(c.Request.Context(), query, size)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, "Search completed successfully.", hits)
}
