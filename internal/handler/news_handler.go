package handler

import (
	"net/http"

	"fu-news-go/internal/response"
	"fu-news-go/internal/service"

	"github.com/gin-gonic/gin"
)

// NewsHandler 负责处理新闻文章相关的 API 请求。
type NewsHandler struct {
	newsService service.NewsService
}

// NewNewsHandler 创建一个新的 NewsHandler 实例。
func NewNewsHandler(newsService service.NewsService) *NewsHandler {
	return &NewsHandler{newsService: newsService}
}

// Active 是公开接口，只返回已发布文章。
func (h *NewsHandler) Active(c *gin.Context) {
	news, err := h.newsService.GetActive(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, "Get active news successfully.", news)
}

func (h *NewsHandler) ActiveByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	news, err := h.newsService.GetActiveByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, "Get news successfully.", news)
}

func (h *NewsHandler) List(c *gin.Context) {
	news, err := h.newsService.ListAll(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, "Get all news successfully.", news)
}

func (h *NewsHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	news, err := h.newsService.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, "Get news successfully.", news)
}

func (h *NewsHandler) Search(c *gin.Context) {
	news, err := h.newsService.Search(c.Request.Context(), c.Query("searchTerm"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, "Search news successfully.", news)
}

// Mine 返回调用者本人创建的文章。
func (h *NewsHandler) Mine(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}
	news, err := h.newsService.GetByCreator(c.Request.Context(), claims.AccountID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, "Get my news successfully.", news)
}

func (h *NewsHandler) Create(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}
	var req service.NewsArticleRequest
	if !bindJSON(c, &req) {
		return
	}
	news, err := h.newsService.Create(c.Request.Context(), req, claims.AccountID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, "News article created successfully.", news)
}

func (h *NewsHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	claims, ok := currentClaims(c)
	if !ok {
		return
	}
	var req service.NewsArticleUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	news, err := h.newsService.Update(c.Request.Context(), id, req, claims.AccountID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, "News article updated successfully.", news)
}

// Delete 是软删除，文章转为草稿。
func (h *NewsHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	deleted, err := h.newsService.Delete(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	if !deleted {
		response.Fail(c, http.StatusNotFound, "News article not found.")
		return
	}
	response.OK(c, "News article deleted successfully.", gin.H{})
}

func (h *NewsHandler) Statistics(c *gin.Context) {
	start, end, ok := requiredDateRange(c)
	if !ok {
		return
	}
	stats, err := h.newsService.StatisticsByDateRange(c.Request.Context(), start, end)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, msgStatisticsOK, stats)
}

func (h *NewsHandler) Counts(c *gin.Context) {
	from, to, ok := optionalDateRange(c)
	if !ok {
		return
	}
	counts, err := h.newsService.Counts(c.Request.Context(), from, to)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, msgCountsOK, counts)
}
