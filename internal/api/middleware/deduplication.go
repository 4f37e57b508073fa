package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"sync"
	"time"

	"smartplates/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deduplicator 擋下 window 內重複送出的相同 POST 請求
type Deduplicator struct {
	mu       sync.Mutex
	window   time.Duration
	requests map[string]time.Time
	lastScan time.Time
}

// NewDeduplicator 建立去重器，window <= 0 時為 1 秒
func NewDeduplicator(window time.Duration) *Deduplicator {
	if window <= 0 {
		window = time.Second
	}
	return &Deduplicator{
		window:   window,
		requests: make(map[string]time.Time),
		lastScan: time.Now(),
	}
}

// seen 記錄指紋，window 內已出現過時回傳 true
func (d *Deduplicator) seen(fingerprint string, now time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if now.Sub(d.lastScan) > 10*d.window {
		for k, t := range d.requests {
			if now.Sub(t) > d.window {
				delete(d.requests, k)
			}
		}
		d.lastScan = now
	}

	if last, ok := d.requests[fingerprint]; ok && now.Sub(last) <= d.window {
		return true
	}
	d.requests[fingerprint] = now
	return false
}

// forget 移除 at 時記錄的指紋，之後的紀錄不受影響
func (d *Deduplicator) forget(fingerprint string, at time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if last, ok := d.requests[fingerprint]; ok && last.Equal(at) {
		delete(d.requests, fingerprint)
	}
}

// Middleware 只處理 POST；指紋為 使用者 + 路徑 + 請求體雜湊
func (d *Deduplicator) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		fingerprint := c.GetString(ownerKey) + ":" + c.Request.Method + ":" + c.Request.URL.Path
		if c.Request.Body != nil {
			body, err := io.ReadAll(c.Request.Body)
			if err != nil {
				common.LogError("Failed to read request body", zap.Error(err))
				status, resp := common.ToResponse(common.ErrInvalidRequest.Wrap(err), false)
				c.AbortWithStatusJSON(status, resp)
				return
			}
			hash := sha256.Sum256(body)
			fingerprint += ":" + hex.EncodeToString(hash[:])
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
		}

		now := time.Now()
		if d.seen(fingerprint, now) {
			common.LogInfo("Duplicate request rejected", zap.String("path", c.Request.URL.Path))
			status, resp := common.ToResponse(common.ErrTooManyRequests, false)
			c.AbortWithStatusJSON(status, resp)
			return
		}

		c.Next()

		// 失敗的請求允許立即重試
		if c.Writer.Status() >= http.StatusBadRequest {
			d.forget(fingerprint, now)
		}
	}
}
