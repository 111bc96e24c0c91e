package dto

import (
	"time"

	"github.com/zolt46/work-time-back/internal/model"
)

// HistoryEntry 操作历史条目（近 30 天）
type HistoryEntry struct {
	AuditLogID   string        `json:"audit_log_id"`
	ActionType   string        `json:"action_type"`
	ActionLabel  string        `json:"action_label"`
	ActorUserID  *string       `json:"actor_user_id,omitempty"`
	ActorName    *string       `json:"actor_name,omitempty"`
	TargetUserID *string       `json:"target_user_id,omitempty"`
	TargetName   *string       `json:"target_name,omitempty"`
	RequestID    *string       `json:"request_id,omitempty"`
	Details      model.JSONMap `json:"details,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}

// AuditLogResponse 完整审计日志条目（仅 MASTER 可见）
type AuditLogResponse struct {
	AuditLogID   string        `json:"audit_log_id"`
	ActorUserID  *string       `json:"actor_user_id,omitempty"`
	ActionType   string        `json:"action_type"`
	TargetUserID *string       `json:"target_user_id,omitempty"`
	RequestID    *string       `json:"request_id,omitempty"`
	Details      model.JSONMap `json:"details,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}
