package handler

import (
	"errors"
	"net/http"

	"fu-news-go/internal/response"
	"fu-news-go/internal/service"
	"fu-news-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// AuthHandler 负责处理登录和登出请求。
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler 创建一个新的 AuthHandler 实例。
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login 处理登录请求，凭证错误统一返回 401。
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			log.Warnf("Login: 登录失败, email: %s", req.Email)
			response.Fail(c, http.StatusUnauthorized, "Invalid email or password.")
			return
		}
		writeError(c, err)
		return
	}
	response.OK(c, "Login successful.", result)
}

// Logout 吊销当前 token。
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}
	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, "Logout successful.", gin.H{})
}
