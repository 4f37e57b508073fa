package middleware

import (
	"strings"

	"smartplates/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// OwnerHeader 呼叫者身分的標頭
const OwnerHeader = "X-User-ID"

const ownerKey = "owner_id"

// RequireOwner 從 X-User-ID 取得使用者，缺少時回傳 401
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		owner := strings.TrimSpace(c.GetHeader(OwnerHeader))
		if owner == "" {
			status, resp := common.ToResponse(common.ErrUnauthorized, false)
			c.AbortWithStatusJSON(status, resp)
			return
		}
		c.Set(ownerKey, owner)
		c.Next()
	}
}

// OwnerID 取得 RequireOwner 設定的使用者
func OwnerID(c *gin.Context) string {
	return c.GetString(ownerKey)
}
