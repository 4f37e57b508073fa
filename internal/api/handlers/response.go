package handlers

import (
	"net/http"

	"smartplates/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RespondError 將錯誤轉為 JSON 錯誤響應並中止請求
func RespondError(c *gin.Context, err error) {
	status, resp := common.ToResponse(err, gin.IsDebugging())
	fields := []zap.Field{
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", requestid.Get(c)),
		zap.Int("status", status),
	}
	if status >= http.StatusInternalServerError {
		common.LogError("請求處理失敗", fields...)
	} else {
		common.LogDebug("請求被拒絕", fields...)
	}
	c.AbortWithStatusJSON(status, resp)
}

// BindJSON 解析請求 JSON，失敗時回傳 400 並回傳 false
func BindJSON(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		RespondError(c, common.ErrInvalidRequest.Wrap(err))
		return false
	}
	return true
}
