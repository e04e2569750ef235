package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ==================== 匿名会话 ====================

// 匿名购物车/心愿单用的会话标识，客户端通过 Header 或 Cookie 携带
const (
	SessionHeader     = "X-Session-Id"
	SessionCookie     = "glowskin_session"
	ContextKeySession = "session_id"
	sessionCookieTTL  = 30 * 24 * 60 * 60 // 秒
)

// SessionID 匿名会话中间件
// 没有会话标识的请求发一个新的 UUID 回去
func SessionID() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := c.GetHeader(SessionHeader)
		if sid == "" {
			if cookie, err := c.Cookie(SessionCookie); err == nil {
				sid = cookie
			}
		}
		if sid == "" {
			sid = uuid.NewString()
			c.SetCookie(SessionCookie, sid, sessionCookieTTL, "/", "", false, true)
		}

		c.Set(ContextKeySession, sid)
		c.Header(SessionHeader, sid)
		c.Next()
	}
}

// GetSessionID 从 Context 获取会话标识
func GetSessionID(c *gin.Context) string {
	if sid, exists := c.Get(ContextKeySession); exists {
		return sid.(string)
	}
	return ""
}
