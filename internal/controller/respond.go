package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"glowskin_dev_v1/internal/middleware"
	"glowskin_dev_v1/internal/model"
	"glowskin_dev_v1/internal/repository"
	"glowskin_dev_v1/internal/service"
)

// ==================== 响应辅助 ====================

// fail 把业务错误映射成 {error, code} 响应
// 非业务错误一律 500，不把内部错误串透给客户端
func fail(c *gin.Context, err error) {
	if appErr, ok := service.AsError(err); ok {
		c.JSON(appErr.Status, gin.H{
			"error": appErr.Message,
			"code":  appErr.Code,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "internal server error",
		"code":  "INTERNAL_ERROR",
	})
}

// badRequest 参数级错误
func badRequest(c *gin.Context, code, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error": message,
		"code":  code,
	})
}

// parseID 解析路径参数里的数字 ID
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "INVALID_ID", "invalid "+name)
		return 0, false
	}
	return id, true
}

// ==================== 身份辅助 ====================

// currentOwner 请求归属：登录用户优先，匿名落到会话
func currentOwner(c *gin.Context) repository.Owner {
	if userID := middleware.GetUserID(c); userID > 0 {
		return repository.Owner{UserID: &userID}
	}
	return repository.Owner{SessionID: middleware.GetSessionID(c)}
}

// currentUserIDPtr 登录用户 ID，匿名为 nil
func currentUserIDPtr(c *gin.Context) *int64 {
	if userID := middleware.GetUserID(c); userID > 0 {
		return &userID
	}
	return nil
}

// isAdmin 当前请求是否管理员
func isAdmin(c *gin.Context) bool {
	return middleware.GetUserRole(c) == model.RoleAdmin
}

// ==================== 查询参数辅助 ====================

// queryInt 读整数查询参数，非法值回落默认
func queryInt(c *gin.Context, name string, fallback int) int {
	value, err := strconv.Atoi(c.DefaultQuery(name, strconv.Itoa(fallback)))
	if err != nil {
		return fallback
	}
	return value
}

// queryInt64Ptr 读可选的整数查询参数
func queryInt64Ptr(c *gin.Context, name string) *int64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &value
}

// queryBoolPtr 读可选的布尔查询参数
func queryBoolPtr(c *gin.Context, name string) *bool {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &value
}

// pagination 统一的 limit/offset 读取，上限钳制在仓储层
func pagination(c *gin.Context) (limit, offset int) {
	return queryInt(c, "limit", repository.DefaultLimit), queryInt(c, "offset", 0)
}
