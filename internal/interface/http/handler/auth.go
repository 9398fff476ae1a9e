package handler

import (
	"github.com/gin-gonic/gin"

	appuser "github.com/xiebiao/grocery/internal/application/user"
	"github.com/xiebiao/grocery/internal/interface/http/dto"
	"github.com/xiebiao/grocery/internal/interface/http/middleware"
	"github.com/xiebiao/grocery/pkg/response"
)

// AuthHandler 认证HTTP处理器
// Handler只负责解析请求、调用应用层、返回响应，不包含业务逻辑
type AuthHandler struct {
	auth *appuser.AuthUseCase
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(auth *appuser.AuthUseCase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register 用户注册
// @Summary      用户注册
// @Description  创建账号并直接登录，返回Token对
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "注册信息"
// @Success      201 {object} response.Response{data=dto.AuthResponse} "注册成功"
// @Failure      400 {object} response.Response "参数错误或密码强度不足"
// @Failure      409 {object} response.Response "邮箱已存在"
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.auth.Register(c.Request.Context(), appuser.RegisterRequest{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ToAuthResponse(result.User, result.Tokens))
}

// Login 用户登录
// @Summary      用户登录
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "登录信息"
// @Success      200 {object} response.Response{data=dto.AuthResponse} "登录成功"
// @Failure      401 {object} response.Response "邮箱或密码错误"
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.auth.Login(c.Request.Context(), appuser.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToAuthResponse(result.User, result.Tokens))
}

// Refresh 刷新Token
// @Summary      刷新Token
// @Description  使用Refresh Token换取新的Token对，Access Token不能用于刷新
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request body dto.RefreshRequest true "Refresh Token"
// @Success      200 {object} response.Response{data=jwt.TokenPair}
// @Failure      401 {object} response.Response "Token无效或过期"
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	tokens, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tokens)
}

// Logout 登出
// @Summary      登出
// @Description  删除会话，当前Access Token在剩余有效期内进入黑名单
// @Tags         认证
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), middleware.GetClaims(c), middleware.GetToken(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
