package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"glowskin_dev_v1/internal/api/dto"
	"glowskin_dev_v1/internal/service"
)

type AuthController struct {
	authService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Register 注册
// @Summary 注册新用户
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.RegisterReq true "注册参数"
// @Success 201 {object} model.User
// @Router /api/auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_BODY", "invalid request body")
		return
	}

	user, err := ctrl.authService.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Login 登录
// @Summary 邮箱密码登录
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.LoginReq true "登录参数"
// @Success 200 {object} service.TokenPair
// @Router /api/auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_BODY", "invalid request body")
		return
	}

	pair, err := ctrl.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

// Refresh 刷新 Token
// @Summary 用 Refresh Token 换新 Token 对
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.RefreshReq true "刷新参数"
// @Success 200 {object} service.TokenPair
// @Router /api/auth/refresh [post]
func (ctrl *AuthController) Refresh(c *gin.Context) {
	var req dto.RefreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_BODY", "invalid request body")
		return
	}

	pair, err := ctrl.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}
