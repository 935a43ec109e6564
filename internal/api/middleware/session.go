package middleware

import (
	"net/http"

	"savora-web/internal/infrastructure/config"
	"savora-web/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const sessionKey = "session_id"

// Session 確保每個瀏覽器都有 session cookie，頁面狀態以此為鍵
func Session(cfg config.SessionConfig) gin.HandlerFunc {
	maxAge := int(cfg.TTL.Seconds())

	return func(c *gin.Context) {
		sid, err := c.Cookie(cfg.CookieName)
		if err != nil || uuid.Validate(sid) != nil {
			sid = common.GenerateUUID()
			common.LogDebug("建立新的 session", zap.String("session_id", sid))
		}

		// 每次請求都延長 cookie 期限，與儲存端 TTL 一致
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cfg.CookieName, sid, maxAge, "/", "", cfg.SecureCookie, true)

		c.Set(sessionKey, sid)
		c.Next()
	}
}

// SessionID 取得目前請求的 session ID
func SessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
