package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// ==================== Throttler 冷却限流器 ====================

// Throttler 按 key 冷却的限流器
// 防止同一会话刷埋点事件或连点下单
type Throttler struct {
	locks sync.Map // key -> *lockEntry
}

// lockEntry 锁条目
type lockEntry struct {
	lastTime time.Time
	mu       sync.Mutex
}

// 全局限流器实例
var globalThrottler = &Throttler{}

// GetThrottler 获取全局限流器
func GetThrottler() *Throttler {
	return globalThrottler
}

// CheckResult 检查结果
type CheckResult struct {
	Allowed    bool          // 是否允许
	RetryAfter time.Duration // 剩余冷却时间
}

// Check 检查是否允许执行，允许则刷新最后执行时间
func (t *Throttler) Check(key string, interval time.Duration) CheckResult {
	actual, _ := t.locks.LoadOrStore(key, &lockEntry{})
	entry := actual.(*lockEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(entry.lastTime)

	if elapsed < interval {
		return CheckResult{
			Allowed:    false,
			RetryAfter: interval - elapsed,
		}
	}

	entry.lastTime = now
	return CheckResult{Allowed: true}
}

// Reset 清除某个 key 的冷却
func (t *Throttler) Reset(key string) {
	t.locks.Delete(key)
}

// ==================== Gin 中间件 ====================

// ThrottleBySession 按会话冷却的中间件
// scope 用于区分不同接口的冷却计数
func ThrottleBySession(scope string, interval time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := GetSessionID(c)
		if sid == "" {
			sid = c.ClientIP()
		}

		key := fmt.Sprintf("%s:%s", scope, sid)
		result := globalThrottler.Check(key, interval)
		if !result.Allowed {
			c.Header("Retry-After", fmt.Sprintf("%.0f", result.RetryAfter.Seconds()))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "too many requests, slow down",
				"code":  "RATE_LIMITED",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
