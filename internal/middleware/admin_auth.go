package middleware

import (
	"net/http"

	"fu-news-go/internal/model"
	"fu-news-go/internal/policy"
	"fu-news-go/internal/response"

	"github.com/gin-gonic/gin"
)

// checkRole 检查调用者的角色是否满足规则，必须在 authenticate 之后调用。
func checkRole(c *gin.Context, rule policy.Rule) bool {
	claims, ok := ClaimsFrom(c)
	if !ok {
		// 未经过 authenticate
		response.Abort(c, http.StatusUnauthorized, response.MsgUnauthorized)
		return false
	}
	if !rule.Allows(model.Role(claims.Role)) {
		response.Abort(c, http.StatusForbidden, response.MsgForbidden)
		return false
	}
	return true
}
