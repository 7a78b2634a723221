// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"fu-news-go/internal/middleware"
	"fu-news-go/internal/response"
	"fu-news-go/internal/service"
	"fu-news-go/pkg/log"
	"fu-news-go/pkg/token"

	"github.com/gin-gonic/gin"
)

const (
	msgSuccess      = "Success"
	msgInvalidToken = "Invalid token."
	msgCountOK      = "Count retrieved successfully."
	msgCountsOK     = "Counts retrieved successfully."
	msgStatisticsOK = "Statistics retrieved successfully."
	msgDateRange    = "Start date must be before end date."
)

// writeError 将 service 层错误映射为响应信封。未分类的错误只记录日志，不向调用方暴露原因。
func writeError(c *gin.Context, err error) {
	var se *service.Error
	if errors.As(err, &se) {
		switch {
		case errors.Is(se.Kind, service.ErrValidation), errors.Is(se.Kind, service.ErrConflict):
			response.Fail(c, http.StatusBadRequest, se.Message)
			return
		case errors.Is(se.Kind, service.ErrNotFound):
			response.Fail(c, http.StatusNotFound, se.Message)
			return
		}
	}
	if errors.Is(err, service.ErrSearchUnavailable) || errors.Is(err, service.ErrMediaUnavailable) {
		response.Fail(c, http.StatusServiceUnavailable, response.MsgUnavailable)
		return
	}
	log.Errorw("请求处理失败", "method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
	response.Fail(c, http.StatusInternalServerError, response.MsgInternal)
}

// parseID 解析路径参数 id，失败时写入 400 响应并返回 false。
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.MsgInvalidInput)
		return 0, false
	}
	return uint(id), true
}

// bindJSON 绑定并校验请求体，失败时写入 400 响应。
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		log.Warnf("请求体校验失败, path: %s, error: %v", c.Request.URL.Path, err)
		response.Fail(c, http.StatusBadRequest, response.MsgInvalidInput)
		return false
	}
	return true
}

// currentClaims 取出当前调用者的 claims，缺失时写入 401 响应。
func currentClaims(c *gin.Context) (*token.CustomClaims, bool) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, msgInvalidToken)
		return nil, false
	}
	return claims, true
}

// localDateLayouts 不带时区，按服务器本地时区解析，与 created_date 的写入方式一致。
var localDateLayouts = []string{"2006-01-02", "2006-01-02T15:04:05"}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	var lastErr error
	for _, layout := range localDateLayouts {
		t, err := time.ParseInLocation(layout, value, time.Local)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// optionalDateRange 读取可选的 startDate / endDate 查询参数。
func optionalDateRange(c *gin.Context) (from, to *time.Time, ok bool) {
	parse := func(key string) (*time.Time, bool) {
		raw := c.Query(key)
		if raw == "" {
			return nil, true
		}
		t, err := parseDate(raw)
		if err != nil {
			return nil, false
		}
		return &t, true
	}
	if from, ok = parse("startDate"); !ok {
		response.Fail(c, http.StatusBadRequest, response.MsgInvalidInput)
		return nil, nil, false
	}
	if to, ok = parse("endDate"); !ok {
		response.Fail(c, http.StatusBadRequest, response.MsgInvalidInput)
		return nil, nil, false
	}
	return from, to, true
}

// requiredDateRange 读取必填的 startDate / endDate，并在查询前校验先后顺序。
func requiredDateRange(c *gin.Context) (start, end time.Time, ok bool) {
	from, to, ok := optionalDateRange(c)
	if !ok {
		return start, end, false
	}
	if from == nil || to == nil {
		response.Fail(c, http.StatusBadRequest, response.MsgInvalidInput)
		return start, end, false
	}
	if from.After(*to) {
		response.Fail(c, http.StatusBadRequest, msgDateRange)
		return start, end, false
	}
	return *from, *to, true
}
