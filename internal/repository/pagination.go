package repository

// 分页上限，超过一律按 100 截断
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ClampLimit 规整分页大小
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
