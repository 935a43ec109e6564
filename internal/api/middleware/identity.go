package middleware

import (
	"errors"
	"strings"

	"savora-web/internal/core/page"
	"savora-web/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const userKey = "user"

// Claims 身分提供者簽發的 token 內容，sub 為使用者 ID
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// TokenVerifier 驗證 HS256 身分 token
type TokenVerifier struct {
	secret []byte
}

// NewTokenVerifier 創建驗證器；secret 為空時所有請求視為匿名
func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

// Enabled 是否設定了密鑰
func (v *TokenVerifier) Enabled() bool {
	return len(v.secret) > 0
}

// Verify 解析並驗證 token
func (v *TokenVerifier) Verify(raw string) (page.User, error) {
	if !v.Enabled() {
		return page.User{}, errors.New("identity verification is not configured")
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return page.User{}, err
	}
	if claims.Subject == "" {
		return page.User{}, errors.New("token has no subject")
	}
	return page.User{ID: claims.Subject, Email: claims.Email}, nil
}

// Identity 從 Authorization 標頭或 cookie 取得使用者；無效 token 以匿名處理
func Identity(verifier *TokenVerifier, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			raw, _ = c.Cookie(cookieName)
		}

		if raw != "" {
			user, err := verifier.Verify(raw)
			if err != nil {
				common.LogWarn("身分 token 無效，以匿名處理",
					zap.String("path", c.Request.URL.Path),
					zap.Error(err),
				)
			} else {
				c.Set(userKey, user)
			}
		}

		c.Next()
	}
}

// CurrentUser 目前請求的使用者，未登入時回傳零值
func CurrentUser(c *gin.Context) page.User {
	if v, ok := c.Get(userKey); ok {
		if user, ok := v.(page.User); ok {
			return user
		}
	}
	return page.User{}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
