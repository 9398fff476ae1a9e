package handler

import (
	"github.com/gin-gonic/gin"

	appuser "github.com/xiebiao/grocery/internal/application/user"
	"github.com/xiebiao/grocery/internal/interface/http/dto"
	"github.com/xiebiao/grocery/internal/interface/http/middleware"
	"github.com/xiebiao/grocery/pkg/response"
)

// UserHandler 个人资料
type UserHandler struct {
	profile *appuser.ProfileUseCase
}

func NewUserHandler(profile *appuser.ProfileUseCase) *UserHandler {
	return &UserHandler{profile: profile}
}

// Me 当前用户
// @Summary      获取个人资料
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dto.UserResponse}
// @Router       /users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	u, err := h.profile.Get(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToUserResponse(u))
}

// UpdateMe 修改个人资料
// @Summary      修改个人资料
// @Description  空字段不修改；邮箱已被他人使用返回409
// @Tags         用户
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.UpdateProfileRequest true "资料"
// @Success      200 {object} response.Response{data=dto.UserResponse}
// @Failure      409 {object} response.Response "邮箱已存在"
// @Router       /users/me [put]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	u, err := h.profile.Update(c.Request.Context(), middleware.GetUserID(c), appuser.UpdateProfileRequest{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToUserResponse(u))
}
