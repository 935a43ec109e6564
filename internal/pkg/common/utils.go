package common

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// IsBlank 判斷字串是否只含空白
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ISOTimestamp 以 ISO-8601 (UTC, 毫秒) 格式輸出時間
func ISOTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

// WantsJSON 請求是否期望 JSON 響應（API 路徑、JSON 內容或 Accept 標頭）
func WantsJSON(c *gin.Context) bool {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		return true
	}
	if strings.HasPrefix(c.ContentType(), "application/json") {
		return true
	}
	accept := c.GetHeader("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}
