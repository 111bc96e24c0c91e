package dto

// ── 派生事件来源 ──

const (
	EventSourceBase  = "BASE"  // 由常规排班推导
	EventSourceExtra = "EXTRA" // 由已批准的加班申请推导
)

// ScheduleEvent 周视图的派生排班事件（即算即弃，不落库）
// 日期为 ISO 格式（2006-01-02），时间为 24 小时制 HH:MM。
// valid_from/valid_to 仅 BASE 事件携带，用于追溯生成它的排班有效期。
type ScheduleEvent struct {
	UserID    string  `json:"user_id"`
	UserName  string  `json:"user_name"`
	Role      string  `json:"role"`
	Date      string  `json:"date"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	ShiftID   string  `json:"shift_id"`
	ShiftName string  `json:"shift_name"`
	Location  *string `json:"location,omitempty"`
	ValidFrom *string `json:"valid_from,omitempty"`
	ValidTo   *string `json:"valid_to,omitempty"`
	Source    string  `json:"source"` // BASE | EXTRA
}

// EnsureSlotRequest 确保班次槽位存在（按 weekday/start/end 复用或创建）
type EnsureSlotRequest struct {
	Weekday   int     `json:"weekday"`
	StartTime string  `json:"start_time" binding:"required"`
	EndTime   string  `json:"end_time" binding:"required"`
	Name      *string `json:"name"`
	Location  *string `json:"location"`
}

// AssignSlotRequest 单槽位排班请求（小时粒度）
type AssignSlotRequest struct {
	UserID    string  `json:"user_id" binding:"required"`
	Weekday   int     `json:"weekday"`
	StartHour int     `json:"start_hour"`
	EndHour   *int    `json:"end_hour"`
	Location  *string `json:"location"`
	ValidFrom string  `json:"valid_from" binding:"required"`
	ValidTo   *string `json:"valid_to"`
}

// SlotRange 批量排班的单个时间段
type SlotRange struct {
	Weekday   int     `json:"weekday"`
	StartHour int     `json:"start_hour"`
	EndHour   *int    `json:"end_hour"`
	Location  *string `json:"location"`
}

// BulkAssignRequest 批量排班请求：按区间覆盖式替换既有排班
type BulkAssignRequest struct {
	UserID    string      `json:"user_id" binding:"required"`
	Slots     []SlotRange `json:"slots" binding:"required"`
	ValidFrom string      `json:"valid_from" binding:"required"`
	ValidTo   *string     `json:"valid_to"`
}

// AssignmentResponse 常规排班响应
type AssignmentResponse struct {
	UserShiftID string  `json:"user_shift_id"`
	UserID      string  `json:"user_id"`
	ShiftID     string  `json:"shift_id"`
	ValidFrom   string  `json:"valid_from"`
	ValidTo     *string `json:"valid_to,omitempty"`
}

// GlobalAssignmentItem 全局排班网格条目
type GlobalAssignmentItem struct {
	AssignmentID string    `json:"assignment_id"`
	User         GridUser  `json:"user"`
	Shift        GridShift `json:"shift"`
	ValidFrom    string    `json:"valid_from"`
	ValidTo      *string   `json:"valid_to,omitempty"`
}

// GridUser 网格内嵌用户信息
type GridUser struct {
	UserID string `json:"id"`
	Name   string `json:"name"`
}

// GridShift 网格内嵌班次信息
type GridShift struct {
	ShiftID   string  `json:"id"`
	Name      string  `json:"name"`
	Weekday   int     `json:"weekday"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Location  *string `json:"location,omitempty"`
}
