package handler

import (
	"net/http"

	"fu-news-go/internal/response"
	"fu-news-go/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryHandler 负责处理分类相关的 API 请求。
type CategoryHandler struct {
	categoryService service.CategoryService
}

// NewCategoryHandler 创建一个新的 CategoryHandler 实例。
func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, msgSuccess, categories)
}

func (h *CategoryHandler) Active(c *gin.Context) {
	categories, err := h.categoryService.GetActive(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, msgSuccess, categories)
}

func (h *CategoryHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	category, err := h.categoryService.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, msgSuccess, category)
}

func (h *CategoryHandler) Search(c *gin.Context) {
	categories, err := h.categoryService.Search(c.Request.Context(), c.Query("searchTerm"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, msgSuccess, categories)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req service.CategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	category, err := h.categoryService.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, "Category created successfully.", category)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req service.CategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	category, err := h.categoryService.Update(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, "Category updated successfully.", category)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	deleted, err := h.categoryService.Delete(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	if !deleted {
		response.Fail(c, http.StatusNotFound, "Category not found.")
		return
	}
	response.OK(c, "Category deleted successfully.", gin.H{})
}

func (h *CategoryHandler) Count(c *gin.Context) {
	total, err := h.categoryService.Count(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, msgCountOK, total)
}
