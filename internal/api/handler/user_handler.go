package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/zolt46/work-time-back/internal/dto"
	"github.com/zolt46/work-time-back/internal/service"
	"github.com/zolt46/work-time-back/pkg/response"
)

// UserHandler 用户模块 HTTP 处理器
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// mapUserError 用户模块统一错误映射
func mapUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 20001, "用户不存在")
	case errors.Is(err, service.ErrUserForbidden):
		response.Forbidden(c, 20002, "无权管理该用户")
	case errors.Is(err, service.ErrInvalidRole):
		response.BadRequest(c, 20003, "无效的用户角色")
	case errors.Is(err, service.ErrLoginIDTaken):
		response.Conflict(c, 20004, "登录账号已被占用")
	case errors.Is(err, service.ErrIdentifierTaken):
		response.Conflict(c, 20005, "学工号已被占用")
	case errors.Is(err, service.ErrSelfDelete):
		response.BadRequest(c, 20006, "不能删除本人账号")
	case errors.Is(err, service.ErrNoCredentialGiven):
		response.BadRequest(c, 20007, "未提供任何待修改的凭证")
	default:
		response.InternalError(c)
	}
}

// ListUsers 用户列表（MEMBER 仅见本人）
// GET /api/v1/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	users, err := h.userSvc.List(c.Request.Context(), userID, role)
	if err != nil {
		mapUserError(c, err)
		return
	}

	response.OK(c, users)
}

// GetUser 查询单个用户
// GET /api/v1/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	user, err := h.userSvc.Get(c.Request.Context(), userID, role, c.Param("id"))
	if err != nil {
		mapUserError(c, err)
		return
	}

	response.OK(c, user)
}

// CreateUser 创建用户（OPERATOR 仅可创建 MEMBER）
// POST /api/v1/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	user, err := h.userSvc.Create(c.Request.Context(), userID, role, &req)
	if err != nil {
		mapUserError(c, err)
		return
	}

	response.Created(c, user)
}

// UpdateUser 更新用户
// PUT /api/v1/users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	user, err := h.userSvc.Update(c.Request.Context(), userID, role, c.Param("id"), &req)
	if err != nil {
		mapUserError(c, err)
		return
	}

	response.OK(c, user)
}

// DeleteUser 删除用户
// DELETE /api/v1/users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	if err := h.userSvc.Delete(c.Request.Context(), userID, role, c.Param("id")); err != nil {
		mapUserError(c, err)
		return
	}

	response.OK(c, nil)
}

// UpdateCredentials 重置他人登录凭证
// PUT /api/v1/users/:id/credentials
func (h *UserHandler) UpdateCredentials(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.UpdateCredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.userSvc.UpdateCredentials(c.Request.Context(), userID, role, c.Param("id"), &req); err != nil {
		mapUserError(c, err)
		return
	}

	response.OK(c, nil)
}

// [自证通过] internal/api/handler/user_handler.go
