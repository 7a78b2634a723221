// Package middleware 提供了处理 HTTP 请求的中间件。
package middleware

import (
	"net/http"
	"strings"

	"fu-news-go/internal/policy"
	"fu-news-go/internal/repository"
	"fu-news-go/internal/response"
	"fu-news-go/pkg/log"
	"fu-news-go/pkg/token"

	"github.com/gin-gonic/gin"
)

// ClaimsKey 是 claims 在 gin.Context 中的键。
const ClaimsKey = "claims"

const bearerPrefix = "Bearer "

// Authorize 根据 policy 表组合认证与角色校验。匿名操作直接放行。
func Authorize(op policy.Operation, jwtManager *token.JWTManager, blacklist repository.TokenBlacklist) gin.HandlerFunc {
	rule := policy.MustKnow(op)
	if rule.Anonymous {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if !authenticate(c, jwtManager, blacklist) || !checkRole(c, rule) {
			return
		}
		c.Next()
	}
}

// authenticate 从请求头提取 token，验证签名、有效期和黑名单。
// 校验通过时写入 claims 并返回 true，否则中止请求。
func authenticate(c *gin.Context, jwtManager *token.JWTManager, blacklist repository.TokenBlacklist) bool {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		response.Abort(c, http.StatusUnauthorized, response.MsgUnauthorized)
		return false
	}
	tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))

	claims, err := jwtManager.VerifyToken(tokenString)
	if err != nil {
		log.Warnf("token 校验失败, path: %s, error: %v", c.Request.URL.Path, err)
		response.Abort(c, http.StatusUnauthorized, response.MsgUnauthorized)
		return false
	}

	revoked, err := blacklist.Contains(c.Request.Context(), claims.ID)
	if err != nil {
		log.Errorf("查询 token 黑名单失败, jti: %s, error: %v", claims.ID, err)
		response.Abort(c, http.StatusInternalServerError, response.MsgInternal)
		return false
	}
	if revoked {
		response.Abort(c, http.StatusUnauthorized, response.MsgUnauthorized)
		return false
	}

	c.Set(ClaimsKey, claims)
	return true
}

// ClaimsFrom 取出 authenticate 写入的 claims。
func ClaimsFrom(c *gin.Context) (*token.CustomClaims, bool) {
	value, exists := c.Get(ClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*token.CustomClaims)
	return claims, ok
}
