package handler

import (
	"net/http"

	"fu-news-go/internal/response"
	"fu-news-go/internal/service"
	"fu-news-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// MediaHandler 负责处理文章配图的上传与访问。
type MediaHandler struct {
	mediaService service.MediaService
}

// NewMediaHandler 创建一个新的 MediaHandler 实例。
func NewMediaHandler(mediaService service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// Upload 处理 multipart 表单中名为 file 的图片。
func (h *MediaHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		log.Warnf("Upload: 缺少 file 字段, error: %v", err)
		response.Fail(c, http.StatusBadRequest, response.MsgInvalidInput)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		writeError(c, err)
		return
	}
	defer file.Close()

	result, err := h.mediaService.Upload(c.Request.Context(), fileHeader.Filename, file, fileHeader.Size)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, "Image uploaded successfully.", result)
}

// Get 重定向到图片的限时访问地址。
func (h *MediaHandler) Get(c *gin.Context) {
	url, err := h.mediaService.ImageURL(c.Request.Context(), c.Param("name"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Redirect(http.StatusFound, url)
}
