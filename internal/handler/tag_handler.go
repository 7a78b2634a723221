package handler

import (
	"net/http"

	"fu-news-go/internal/response"
	"fu-news-go/internal/service"

	"github.com/gin-gonic/gin"
)

// TagHandler 负责处理标签相关的 API 请求。
type TagHandler struct {
	tagService service.TagService
}

// NewTagHandler 创建一个新的 TagHandler 实例。
func NewTagHandler(tagService service.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.tagService.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, "Tags retrieved successfully.", tags)
}

func (h *TagHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	tag, err := h.tagService.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, "Tag retrieved successfully.", tag)
}

func (h *TagHandler) Create(c *gin.Context) {
	var req service.TagRequest
	if !bindJSON(c, &req) {
		return
	}
	tag, err := h.tagService.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, "Tag created successfully.", tag)
}

func (h *TagHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req service.TagRequest
	if !bindJSON(c, &req) {
		return
	}
	tag, err := h.tagService.Update(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, "Tag updated successfully.", tag)
}

func (h *TagHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	deleted, err := h.tagService.Delete(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	if !deleted {
		response.Fail(c, http.StatusNotFound, "Tag not found.")
		return
	}
	response.OK(c, "Tag deleted successfully.", gin.H{})
}

func (h *TagHandler) Count(c *gin.Context) {
	total, err := h.tagService.Count(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, msgCountOK, total)
}
