package handler

import (
	"fu-news-go/internal/response"
	"fu-news-go/internal/service"

	"github.com/gin-gonic/gin"
)

// ReportHandler 负责处理管理员报表相关的 API 请求。
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler 创建一个新的 ReportHandler 实例。
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) Statistics(c *gin.Context) {
	start, end, ok := requiredDateRange(c)
	if !ok {
		return
	}
	stats, err := h.reportService.Statistics(c.Request.Context(), start, end)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, msgStatisticsOK, stats)
}

// Counts 在文章统计之外附带账号、分类和标签总数。
func (h *ReportHandler) Counts(c *gin.Context) {
	from, to, ok := optionalDateRange(c)
	if !ok {
		return
	}
	counts, err := h.reportService.Counts(c.Request.Context(), from, to)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, msgCountsOK, counts)
}

func (h *ReportHandler) AllNews(c *gin.Context) {
	news, err := h.reportService.AllNews(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, "All news retrieved successfully.", news)
}

func (h *ReportHandler) AllCategories(c *gin.Context) {
	categories, err := h.reportService.AllCategories(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, "All categories retrieved successfully.", categories)
}

func (h *ReportHandler) AllTags(c *gin.Context) {
	tags, err := h.reportService.AllTags(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, "All tags retrieved successfully.", tags)
}

func (h *ReportHandler) AllAccounts(c *gin.Context) {
	accounts, err := h.reportService.AllAccounts(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, "All accounts retrieved successfully.", accounts)
}
