package dto

import (
	"time"

	"github.com/zolt46/work-time-back/internal/model"
)

// TimeWindow 申请携带的部分时间窗（可选）
type TimeWindow struct {
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

// SubmitRequestRequest 提交值班变更申请
// 可一次引用多个班次槽位，每个槽位生成一条独立申请。
// user_id 缺省为提交者本人；运营者可代 MEMBER 提交。
type SubmitRequestRequest struct {
	Type           string      `json:"type" binding:"required"`
	TargetDate     string      `json:"target_date" binding:"required"`
	TargetShiftIDs []string    `json:"target_shift_ids" binding:"required"`
	Window         *TimeWindow `json:"window"`
	Reason         string      `json:"reason"`
	UserID         *string     `json:"user_id"`
}

// CancelRequestRequest 取消申请（批准后取消须给出理由）
type CancelRequestRequest struct {
	Reason string `json:"reason"`
}

// RequestResponse 申请响应
type RequestResponse struct {
	ShiftRequestID         string     `json:"shift_request_id"`
	UserID                 string     `json:"user_id"`
	Type                   string     `json:"type"`
	TargetDate             string     `json:"target_date"`
	TargetShiftID          string     `json:"target_shift_id"`
	TargetStartTime        *string    `json:"target_start_time,omitempty"`
	TargetEndTime          *string    `json:"target_end_time,omitempty"`
	Reason                 string     `json:"reason,omitempty"`
	Status                 string     `json:"status"`
	OperatorID             *string    `json:"operator_id,omitempty"`
	DecidedAt              *time.Time `json:"decided_at,omitempty"`
	CancelReason           string     `json:"cancel_reason,omitempty"`
	CancelledAfterApproval bool       `json:"cancelled_after_approval"`
	CreatedAt              time.Time  `json:"created_at"`
}

// ToRequestResponse 模型转响应
func ToRequestResponse(r *model.ShiftRequest) RequestResponse {
	return RequestResponse{
		ShiftRequestID:         r.ShiftRequestID,
		UserID:                 r.UserID,
		Type:                   r.Type,
		TargetDate:             r.TargetDate.Format("2006-01-02"),
		TargetShiftID:          r.TargetShiftID,
		TargetStartTime:        r.TargetStartTime,
		TargetEndTime:          r.TargetEndTime,
		Reason:                 r.Reason,
		Status:                 r.Status,
		OperatorID:             r.OperatorID,
		DecidedAt:              r.DecidedAt,
		CancelReason:           r.CancelReason,
		CancelledAfterApproval: r.CancelledAfterApproval,
		CreatedAt:              r.CreatedAt,
	}
}
