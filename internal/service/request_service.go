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

// ── 申请模块业务错误 ──

var (
	ErrRequestNotFound      = errors.New("申请不存在")
	ErrRequestTerminal      = errors.New("申请已进入终态，不能再流转")
	ErrRequestNotPending    = errors.New("仅待审批的申请可被批准或驳回")
	ErrRequestForbidden     = errors.New("无权操作该申请")
	ErrInvalidRequestType   = errors.New("申请类型必须为 ABSENCE 或 EXTRA")
	ErrNoShiftsGiven        = errors.New("未选择任何班次槽位")
	ErrWeekdayMismatch      = errors.New("目标日期与班次槽位的星期不一致")
	ErrInvalidWindow        = errors.New("时间窗不正确，结束时刻必须晚于开始时刻")
	ErrWindowOutsideShift   = errors.New("缺勤时间窗必须落在班次区间内")
	ErrDuplicateRequest     = errors.New("已存在同一班次上时间窗重叠的有效申请")
	ErrAbsenceWithoutDuty   = errors.New("缺勤申请的目标时段内没有有效排班")
	ErrExtraAlreadyOnDuty   = errors.New("加班申请的目标时段内已有有效排班")
	ErrCancelReasonRequired = errors.New("批准后取消必须填写理由")
)

// RequestService 值班变更申请业务接口
type RequestService interface {
	// Submit 提交申请：每个引用的班次槽位生成一条独立申请记录
	Submit(ctx context.Context, callerID string, req *dto.SubmitRequestRequest) ([]dto.RequestResponse, error)
	Approve(ctx context.Context, requestID, operatorID string) (*dto.RequestResponse, error)
	Reject(ctx context.Context, requestID, operatorID string) (*dto.RequestResponse, error)
	// Cancel 申请人本人或管理角色取消申请；批准后取消须填写理由并留下标记
	Cancel(ctx context.Context, requestID, callerID, callerRole, reason string) (*dto.RequestResponse, error)
	MyRequests(ctx context.Context, userID string) ([]dto.RequestResponse, error)
	PendingRequests(ctx context.Context) ([]dto.RequestResponse, error)
	UserRequests(ctx context.Context, userID string) ([]dto.RequestResponse, error)
}

type requestService struct {
	repo     *repository.Repository
	schedule ScheduleService
	logger   *zap.Logger
}

// NewRequestService 创建 RequestService 实例
func NewRequestService(repo *repository.Repository, schedule ScheduleService, logger *zap.Logger) RequestService {
	return &requestService{repo: repo, schedule: schedule, logger: logger}
}

// ════════════════════════════════════════════════════════════
// 提交与准入校验
// ════════════════════════════════════════════════════════════

func (s *requestService) Submit(ctx context.Context, callerID string, req *dto.SubmitRequestRequest) ([]dto.RequestResponse, error) {
	if req.Type != model.RequestTypeAbsence && req.Type != model.RequestTypeExtra {
		return nil, ErrInvalidRequestType
	}
	if len(req.TargetShiftIDs) == 0 {
		return nil, ErrNoShiftsGiven
	}
	targetDate, err := parseDate(req.TargetDate)
	if err != nil {
		return nil, err
	}

	caller, err := s.loadUser(ctx, callerID)
	if err != nil {
		return nil, err
	}

	// 目标用户缺省为提交者本人；代提交须满足角色约束
	targetUserID := callerID
	if req.UserID != nil && *req.UserID != "" {
		targetUserID = *req.UserID
	}
	target := caller
	if targetUserID != callerID {
		target, err = s.loadUser(ctx, targetUserID)
		if err != nil {
			return nil, err
		}
	}
	if err := checkSubmitAuthorization(caller, target); err != nil {
		return nil, err
	}

	if req.Window != nil {
		ws, errS := parseClock(req.Window.StartTime)
		we, errE := parseClock(req.Window.EndTime)
		if errS != nil || errE != nil || we <= ws {
			return nil, ErrInvalidWindow
		}
	}

	// 状态一致性校验基于目标日期所在周的有效排班视图
	weekEvents, err := s.schedule.WeekEvents(ctx, weekStartOf(targetDate), targetUserID)
	if err != nil {
		return nil, err
	}

	// 先对全部班次完成校验，任一失败则整次提交不落库
	requests := make([]*model.ShiftRequest, 0, len(req.TargetShiftIDs))
	for _, shiftID := range req.TargetShiftIDs {
		shift, err := s.repo.Shift.GetByID(ctx, shiftID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrShiftNotFound
			}
			s.logger.Error("查询班次槽位失败", zap.Error(err))
			return nil, err
		}
		if shift.Weekday != weekdayIndex(targetDate) {
			return nil, ErrWeekdayMismatch
		}

		window, err := resolveRequestWindow(req.Type, req.Window, shift)
		if err != nil {
			return nil, err
		}

		if err := s.checkNoActiveOverlap(ctx, targetUserID, targetDate, shiftID, req.Type, window); err != nil {
			return nil, err
		}
		if err := checkScheduleConsistency(req.Type, weekEvents, targetDate, shiftID, window); err != nil {
			return nil, err
		}

		request := &model.ShiftRequest{
			UserID:        targetUserID,
			Type:          req.Type,
			TargetDate:    targetDate,
			TargetShiftID: shiftID,
			Reason:        req.Reason,
			Status:        model.RequestStatusPending,
		}
		if req.Window != nil {
			startTime := formatClock(window.start)
			endTime := formatClock(window.end)
			request.TargetStartTime = &startTime
			request.TargetEndTime = &endTime
		}
		requests = append(requests, request)
	}

	// 全部申请与审计记录在同一事务中写入
	err = s.repo.Tx(ctx, func(txRepo *repository.Repository) error {
		for _, request := range requests {
			if err := txRepo.Request.Create(ctx, request); err != nil {
				return err
			}
			if err := txRepo.Audit.Create(ctx, &model.AuditLog{
				ActorUserID:  &callerID,
				ActionType:   model.ActionRequestSubmit,
				TargetUserID: &targetUserID,
				RequestID:    &request.ShiftRequestID,
				Details: model.JSONMap{
					"type":        req.Type,
					"target_date": req.TargetDate,
					"shift_id":    request.TargetShiftID,
				},
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("创建申请失败", zap.Error(err))
		return nil, err
	}

	responses := make([]dto.RequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, dto.ToRequestResponse(request))
	}
	return responses, nil
}

// checkSubmitAuthorization 代提交的角色约束：
// MEMBER 只能为自己提交；OPERATOR 可代 MEMBER 提交但不能代 MASTER；MASTER 不受限。
func checkSubmitAuthorization(caller, target *model.User) error {
	if caller.UserID == target.UserID {
		return nil
	}
	switch caller.Role {
	case model.RoleMaster:
		return nil
	case model.RoleOperator:
		if target.Role == model.RoleMaster {
			return ErrRequestForbidden
		}
		return nil
	default:
		return ErrRequestForbidden
	}
}

// resolveRequestWindow 计算申请的有效时间窗：显式窗口优先，缺省取班次全段。
// 缺勤的显式窗口必须落在班次区间内。
func resolveRequestWindow(requestType string, window *dto.TimeWindow, shift *model.Shift) (timeSpan, error) {
	shiftStart, err := parseClock(shift.StartTime)
	if err != nil {
		return timeSpan{}, ErrInvalidWindow
	}
	shiftEnd, err := parseClock(shift.EndTime)
	if err != nil {
		return timeSpan{}, ErrInvalidWindow
	}
	if window == nil {
		return timeSpan{start: shiftStart, end: shiftEnd}, nil
	}
	ws, err := parseClock(window.StartTime)
	if err != nil {
		return timeSpan{}, ErrInvalidWindow
	}
	we, err := parseClock(window.EndTime)
	if err != nil {
		return timeSpan{}, ErrInvalidWindow
	}
	if we <= ws {
		return timeSpan{}, ErrInvalidWindow
	}
	if requestType == model.RequestTypeAbsence && (ws < shiftStart || we > shiftEnd) {
		return timeSpan{}, ErrWindowOutsideShift
	}
	return timeSpan{start: ws, end: we}, nil
}

// checkNoActiveOverlap 重复申请防护：同一 (用户, 日期, 班次) 上同类型且
// 时间窗重叠的 PENDING/APPROVED 申请视为重复
func (s *requestService) checkNoActiveOverlap(ctx context.Context, userID string, targetDate time.Time, shiftID, requestType string, window timeSpan) error {
	active, err := s.repo.Request.ListActive(ctx, userID, targetDate, shiftID)
	if err != nil {
		s.logger.Error("查询在途申请失败", zap.Error(err))
		return err
	}
	for i := range active {
		existing := &active[i]
		if existing.Type != requestType {
			continue
		}
		existingWindow := window
		if existing.TargetStartTime != nil && existing.TargetEndTime != nil {
			es, errS := parseClock(*existing.TargetStartTime)
			ee, errE := parseClock(*existing.TargetEndTime)
			if errS != nil || errE != nil {
				return ErrDuplicateRequest
			}
			existingWindow = timeSpan{start: es, end: ee}
		}
		if spansOverlap(window, existingWindow) {
			return ErrDuplicateRequest
		}
	}
	return nil
}

// checkScheduleConsistency 状态一致性校验：
// 缺勤窗口必须完整落在某个有效值班片段内；加班窗口不得与任何有效值班重叠。
func checkScheduleConsistency(requestType string, events []dto.ScheduleEvent, targetDate time.Time, shiftID string, window timeSpan) error {
	dateKey := targetDate.Format("2006-01-02")
	switch requestType {
	case model.RequestTypeAbsence:
		for _, ev := range events {
			if ev.Date != dateKey || ev.ShiftID != shiftID || ev.Source != dto.EventSourceBase {
				continue
			}
			segStart, errS := parseClock(ev.StartTime)
			segEnd, errE := parseClock(ev.EndTime)
			if errS != nil || errE != nil {
				continue
			}
			if window.start >= segStart && window.end <= segEnd {
				return nil
			}
		}
		return ErrAbsenceWithoutDuty
	case model.RequestTypeExtra:
		for _, ev := range events {
			if ev.Date != dateKey {
				continue
			}
			segStart, errS := parseClock(ev.StartTime)
			segEnd, errE := parseClock(ev.EndTime)
			if errS != nil || errE != nil {
				continue
			}
			if spansOverlap(window, timeSpan{start: segStart, end: segEnd}) {
				return ErrExtraAlreadyOnDuty
			}
		}
		return nil
	}
	return ErrInvalidRequestType
}

// ════════════════════════════════════════════════════════════
// 审批状态机
// ════════════════════════════════════════════════════════════

func (s *requestService) Approve(ctx context.Context, requestID, operatorID string) (*dto.RequestResponse, error) {
	return s.decide(ctx, requestID, operatorID, model.RequestStatusApproved, model.ActionRequestApprove)
}

func (s *requestService) Reject(ctx context.Context, requestID, operatorID string) (*dto.RequestResponse, error) {
	return s.decide(ctx, requestID, operatorID, model.RequestStatusRejected, model.ActionRequestReject)
}

// decide 审批决定不重跑准入校验：批准时点的排班状态以提交时点为准
func (s *requestService) decide(ctx context.Context, requestID, operatorID, nextStatus, actionType string) (*dto.RequestResponse, error) {
	request, err := s.loadRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != model.RequestStatusPending {
		if request.IsTerminal() {
			return nil, ErrRequestTerminal
		}
		return nil, ErrRequestNotPending
	}

	now := time.Now().UTC()
	request.Status = nextStatus
	request.OperatorID = &operatorID
	request.DecidedAt = &now

	err = s.repo.Tx(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.Request.Update(ctx, request); err != nil {
			return err
		}
		return txRepo.Audit.Create(ctx, &model.AuditLog{
			ActorUserID:  &operatorID,
			ActionType:   actionType,
			TargetUserID: &request.UserID,
			RequestID:    &request.ShiftRequestID,
			Details: model.JSONMap{
				"status": nextStatus,
			},
		})
	})
	if err != nil {
		s.logger.Error("审批申请失败", zap.Error(err))
		return nil, err
	}
	resp := dto.ToRequestResponse(request)
	return &resp, nil
}

func (s *requestService) Cancel(ctx context.Context, requestID, callerID, callerRole, reason string) (*dto.RequestResponse, error) {
	request, err := s.loadRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.UserID != callerID && !model.RoleAllows(callerRole, model.RoleOperator) {
		return nil, ErrRequestForbidden
	}
	if request.IsTerminal() {
		return nil, ErrRequestTerminal
	}

	afterApproval := request.Status == model.RequestStatusApproved
	if afterApproval && reason == "" {
		return nil, ErrCancelReasonRequired
	}

	now := time.Now().UTC()
	request.Status = model.RequestStatusCancelled
	request.CancelReason = reason
	request.CancelledAfterApproval = afterApproval
	request.DecidedAt = &now

	err = s.repo.Tx(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.Request.Update(ctx, request); err != nil {
			return err
		}
		return txRepo.Audit.Create(ctx, &model.AuditLog{
			ActorUserID:  &callerID,
			ActionType:   model.ActionRequestCancel,
			TargetUserID: &request.UserID,
			RequestID:    &request.ShiftRequestID,
			Details: model.JSONMap{
				"after_approval": afterApproval,
				"reason":         reason,
			},
		})
	})
	if err != nil {
		s.logger.Error("取消申请失败", zap.Error(err))
		return nil, err
	}
	resp := dto.ToRequestResponse(request)
	return &resp, nil
}

// ── 查询 ──

func (s *requestService) MyRequests(ctx context.Context, userID string) ([]dto.RequestResponse, error) {
	return s.listByUser(ctx, userID)
}

func (s *requestService) UserRequests(ctx context.Context, userID string) ([]dto.RequestResponse, error) {
	return s.listByUser(ctx, userID)
}

func (s *requestService) listByUser(ctx context.Context, userID string) ([]dto.RequestResponse, error) {
	requests, err := s.repo.Request.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询申请列表失败", zap.Error(err))
		return nil, err
	}
	responses := make([]dto.RequestResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, dto.ToRequestResponse(&requests[i]))
	}
	return responses, nil
}

func (s *requestService) PendingRequests(ctx context.Context) ([]dto.RequestResponse, error) {
	requests, err := s.repo.Request.ListByStatus(ctx, model.RequestStatusPending)
	if err != nil {
		s.logger.Error("查询待审批申请失败", zap.Error(err))
		return nil, err
	}
	responses := make([]dto.RequestResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, dto.ToRequestResponse(&requests[i]))
	}
	return responses, nil
}

// ── 内部辅助 ──

func (s *requestService) loadUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (s *requestService) loadRequest(ctx context.Context, requestID string) (*model.ShiftRequest, error) {
	request, err := s.repo.Request.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		s.logger.Error("查询申请失败", zap.Error(err))
		return nil, err
	}
	return request, nil
}

// [自证通过] internal/service/request_service.go
