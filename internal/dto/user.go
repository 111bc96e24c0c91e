package dto

import (
	"time"

	"github.com/zolt46/work-time-back/internal/model"
)

// CreateUserRequest 创建用户请求（运营者仅可创建 MEMBER）
type CreateUserRequest struct {
	Name       string  `json:"name" binding:"required"`
	Identifier *string `json:"identifier"`
	Role       string  `json:"role"`
	LoginID    string  `json:"login_id" binding:"required"`
	Password   string  `json:"password" binding:"required,min=8"`
}

// UpdateUserRequest 更新用户请求（零值与缺省通过指针区分）
type UpdateUserRequest struct {
	Name       *string `json:"name"`
	Identifier *string `json:"identifier"`
	Role       *string `json:"role"`
	Active     *bool   `json:"active"`
}

// UpdateCredentialsRequest 管理员修改他人登录凭证请求
type UpdateCredentialsRequest struct {
	NewLoginID  *string `json:"new_login_id"`
	NewPassword *string `json:"new_password"`
}

// UserResponse 用户响应
type UserResponse struct {
	UserID     string    `json:"user_id"`
	Name       string    `json:"name"`
	Identifier *string   `json:"identifier,omitempty"`
	Role       string    `json:"role"`
	Active     bool      `json:"active"`
	LoginID    string    `json:"login_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToUserResponse 模型转响应
func ToUserResponse(u *model.User) UserResponse {
	resp := UserResponse{
		UserID:     u.UserID,
		Name:       u.Name,
		Identifier: u.Identifier,
		Role:       u.Role,
		Active:     u.Active,
		CreatedAt:  u.CreatedAt,
	}
	if u.AuthAccount != nil {
		resp.LoginID = u.AuthAccount.LoginID
	}
	return resp
}
