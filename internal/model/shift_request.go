package model

import "time"

// ── 申请类型 ──

const (
	RequestTypeAbsence = "ABSENCE" // 缺勤申请：从有效排班中扣除
	RequestTypeExtra   = "EXTRA"   // 加班申请：在有效排班外追加
)

// ── 申请状态 ──

const (
	RequestStatusPending   = "PENDING"
	RequestStatusApproved  = "APPROVED"
	RequestStatusRejected  = "REJECTED"
	RequestStatusCancelled = "CANCELLED"
)

// ShiftRequest 值班变更申请表 — 对应 shift_requests
// 缺勤可携带部分时间窗（须落在班次区间内）；无时间窗表示整段缺勤。
type ShiftRequest struct {
	ShiftRequestID         string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"shift_request_id"`
	UserID                 string     `gorm:"type:uuid;not null;index"                       json:"user_id"`
	Type                   string     `gorm:"type:varchar(20);not null"                      json:"type"` // ABSENCE | EXTRA
	TargetDate             time.Time  `gorm:"type:date;not null;index"                       json:"target_date"`
	TargetShiftID          string     `gorm:"type:uuid;not null"                             json:"target_shift_id"`
	TargetStartTime        *string    `gorm:"type:time"                                      json:"target_start_time,omitempty"`
	TargetEndTime          *string    `gorm:"type:time"                                      json:"target_end_time,omitempty"`
	Reason                 string     `gorm:"type:varchar(500)"                              json:"reason,omitempty"`
	Status                 string     `gorm:"type:varchar(20);not null;default:'PENDING'"    json:"status"` // PENDING | APPROVED | REJECTED | CANCELLED
	OperatorID             *string    `gorm:"type:uuid"                                      json:"operator_id,omitempty"`
	DecidedAt              *time.Time `json:"decided_at,omitempty"`
	CancelReason           string     `gorm:"type:varchar(500)"                              json:"cancel_reason,omitempty"`
	CancelledAfterApproval bool       `gorm:"not null;default:false"                         json:"cancelled_after_approval"`
	BaseModel

	// 关联
	User        *User  `gorm:"foreignKey:UserID;references:UserID"         json:"user,omitempty"`
	Operator    *User  `gorm:"foreignKey:OperatorID;references:UserID"     json:"operator,omitempty"`
	TargetShift *Shift `gorm:"foreignKey:TargetShiftID;references:ShiftID" json:"target_shift,omitempty"`
}

// TableName 指定表名
func (ShiftRequest) TableName() string { return "shift_requests" }

// IsTerminal 判断状态是否不可再流转（审批视角）
func (r *ShiftRequest) IsTerminal() bool {
	return r.Status == RequestStatusRejected || r.Status == RequestStatusCancelled
}

// [自证通过] internal/model/shift_request.go
