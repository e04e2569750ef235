package dto

// RegisterReq 注册请求
type RegisterReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginReq 登录请求
type LoginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshReq 刷新 Token 请求
type RefreshReq struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
