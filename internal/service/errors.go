package service

import (
	"errors"
	"net/http"

	"gorm.io/gorm"
)

// ==================== 业务错误 ====================

// Error 业务错误，携带 HTTP 状态码和机器可读 code
// controller 层据此生成 {error, code} 响应体
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"error"`
}

func (e *Error) Error() string {
	return e.Message
}

// NewError 构造业务错误
func NewError(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

// ErrBadRequest 400
func ErrBadRequest(code, message string) *Error {
	return NewError(http.StatusBadRequest, code, message)
}

// ErrUnauthorized 401
func ErrUnauthorized(message string) *Error {
	return NewError(http.StatusUnauthorized, "UNAUTHORIZED", message)
}

// ErrForbidden 403
func ErrForbidden(message string) *Error {
	return NewError(http.StatusForbidden, "FORBIDDEN", message)
}

// ErrNotFound 404
func ErrNotFound(code, message string) *Error {
	return NewError(http.StatusNotFound, code, message)
}

// AsError 解包业务错误
func AsError(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// ==================== GORM 错误判定 ====================

// IsNotFound 行不存在
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicate 唯一约束冲突
// 预检查之外的兜底：并发写穿过预检查时由数据库唯一索引拦下
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
