package handler

import (
	"net/http"

	"fu-news-go/internal/response"
	"fu-news-go/internal/service"

	"github.com/gin-gonic/gin"
)

// AccountHandler 负责处理账号管理和个人资料相关的 API 请求。
type AccountHandler struct {
	accountService service.AccountService
}

// NewAccountHandler 创建一个新的 AccountHandler 实例。
func NewAccountHandler(accountService service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

func (h *AccountHandler) List(c *gin.Context) {
	accounts, err := h.accountService.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, "Accounts retrieved successfully.", accounts)
}

func (h *AccountHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	account, err := h.accountService.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, "Account retrieved successfully.", account)
}

func (h *AccountHandler) Search(c *gin.Context) {
	accounts, err := h.accountService.Search(c.Request.Context(), c.Query("searchTerm"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, "Search completed successfully.", accounts)
}

func (h *AccountHandler) Create(c *gin.Context) {
	var req service.AccountRequest
	if !bindJSON(c, &req) {
		return
	}
	account, err := h.accountService.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, "Account created successfully.", account)
}

func (h *AccountHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req service.AccountUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	account, err := h.accountService.Update(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, "Account updated successfully.", account)
}

func (h *AccountHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	deleted, err := h.accountService.Delete(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	if !deleted {
		response.Fail(c, http.StatusNotFound, "Account not found.")
		return
	}
	response.OK(c, "Account deleted successfully.", gin.H{})
}

// Profile 返回调用者本人的资料。
func (h *AccountHandler) Profile(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}
	account, err := h.accountService.Profile(c.Request.Context(), claims.AccountID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, "Account retrieved successfully.", account)
}

// UpdateProfile 只允许修改本人的名称和密码。
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}
	var req service.ProfileUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	account, err := h.accountService.UpdateProfile(c.Request.Context(), claims.AccountID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, "Profile updated successfully.", account)
}

func (h *AccountHandler) Count(c *gin.Context) {
	total, err := h.accountService.Count(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, msgCountOK, total)
}
