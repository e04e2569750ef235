package model

// ==================== 用户角色常量 ====================

const (
	RoleCustomer = "customer" // 普通顾客
	RoleAdmin    = "admin"    // 管理员
)

// User 注册用户
type User struct {
	BaseModel
	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Name         string `gorm:"size:100" json:"name"`
	Role         string `gorm:"size:20;default:customer" json:"role"`
}

func (User) TableName() string {
	return "users"
}

// IsAdmin 是否管理员
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
