package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zolt46/work-time-back/internal/dto"
	"github.com/zolt46/work-time-back/internal/model"
	"github.com/zolt46/work-time-back/internal/repository"
)

// ── 排班模块业务错误 ──

var (
	ErrShiftNotFound         = errors.New("班次槽位不存在")
	ErrAssignmentNotFound    = errors.New("排班记录不存在")
	ErrAssignmentExists      = errors.New("该用户已被排入相同的班次槽位")
	ErrInvalidWeekday        = errors.New("星期编号必须在 0-6 之间")
	ErrInvalidTimeRange      = errors.New("时间范围不正确，结束时刻必须晚于开始时刻")
	ErrOutsideOperatingHours = errors.New("值班时间仅限 09:00 至 18:00")
	ErrNotHourAligned        = errors.New("时间必须按整点（00 分）输入")
	ErrInvalidValidity       = errors.New("有效期结束日不能早于开始日")
	ErrInvalidDate           = errors.New("日期格式不正确")
	ErrAssignTargetNotMember = errors.New("仅 MEMBER 角色可被排班")
	ErrNoSlotsGiven          = errors.New("未选择任何排班时间段")
)

// 开放值班时段（小时）
const (
	allowedStartHour = 9
	allowedEndHour   = 18
)

// ScheduleService 排班与周视图业务接口
type ScheduleService interface {
	// WeekEvents 计算一周的有效排班事件：常规排班扣除已批准缺勤（支持部分时间窗裂解）、
	// 追加已批准加班。userID 为空表示不过滤用户。
	WeekEvents(ctx context.Context, startOfWeek time.Time, userID string) ([]dto.ScheduleEvent, error)
	// WeekBaseEvents 仅计算常规排班推导的 BASE 事件，供管理端查看底层排班网格
	WeekBaseEvents(ctx context.Context, startOfWeek time.Time, userID string) ([]dto.ScheduleEvent, error)

	ListShifts(ctx context.Context) ([]dto.GridShift, error)
	EnsureSlot(ctx context.Context, req *dto.EnsureSlotRequest) (*dto.GridShift, error)
	AssignSlot(ctx context.Context, req *dto.AssignSlotRequest, actorID string) (*dto.AssignmentResponse, error)
	BulkAssign(ctx context.Context, req *dto.BulkAssignRequest, actorID string) ([]dto.AssignmentResponse, error)
	DeleteAssignment(ctx context.Context, id string, actorID string) error
	GlobalAssignments(ctx context.Context, callerID, callerRole string) ([]dto.GlobalAssignmentItem, error)
	MyAssignments(ctx context.Context, userID string) ([]dto.AssignmentResponse, error)
}

type scheduleService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewScheduleService 创建 ScheduleService 实例
func NewScheduleService(repo *repository.Repository, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, logger: logger}
}

// ── 日期/星期辅助 ──

// parseDate 解析 ISO 日期（2006-01-02）
func parseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

// toDateOnly 丢弃时分秒与时区，仅保留日历日期
func toDateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// weekdayIndex 返回周一=0 … 周日=6 的星期编号
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// weekStartOf 返回 t 所在周的周一
func weekStartOf(t time.Time) time.Time {
	day := toDateOnly(t)
	return day.AddDate(0, 0, -weekdayIndex(day))
}

// ════════════════════════════════════════════════════════════
// 周视图计算
// ════════════════════════════════════════════════════════════

// eventKey 基础事件分组键：同一 (用户, 日期, 班次) 的缺勤作用于同一组
type eventKey struct {
	userID  string
	date    string
	shiftID string
}

func (s *scheduleService) WeekEvents(ctx context.Context, startOfWeek time.Time, userID string) ([]dto.ScheduleEvent, error) {
	start := toDateOnly(startOfWeek)
	end := start.AddDate(0, 0, 6)

	baseEvents, err := s.buildBaseEvents(ctx, start, userID)
	if err != nil {
		return nil, err
	}

	requests, err := s.repo.Request.ListApprovedInRange(ctx, start, end, userID)
	if err != nil {
		s.logger.Error("查询已批准申请失败", zap.Error(err))
		return nil, err
	}

	// 缺勤时间窗按 (用户, 日期, 班次) 分组；无时间窗表示整段缺勤
	absenceCuts := make(map[eventKey][]*model.ShiftRequest)
	for i := range requests {
		req := &requests[i]
		if req.Type != model.RequestTypeAbsence {
			continue
		}
		key := eventKey{
			userID:  req.UserID,
			date:    req.TargetDate.Format("2006-01-02"),
			shiftID: req.TargetShiftID,
		}
		absenceCuts[key] = append(absenceCuts[key], req)
	}

	// 扣除缺勤：部分覆盖的 BASE 事件裂解为存活子片段。
	// 命中不到 BASE 事件的缺勤在读取时静默忽略（严格校验只发生在提交时）。
	events := make([]dto.ScheduleEvent, 0, len(baseEvents))
	for _, ev := range baseEvents {
		key := eventKey{userID: ev.UserID, date: ev.Date, shiftID: ev.ShiftID}
		cuts, ok := absenceCuts[key]
		if !ok {
			events = append(events, ev)
			continue
		}
		segments, err := splitBaseEvent(ev, cuts)
		if err != nil {
			s.logger.Warn("裂解排班事件失败，保留原事件",
				zap.String("user_id", ev.UserID),
				zap.String("date", ev.Date),
				zap.Error(err),
			)
			events = append(events, ev)
			continue
		}
		events = append(events, segments...)
	}

	extras, err := s.buildExtraEvents(ctx, requests)
	if err != nil {
		return nil, err
	}

	return append(events, extras...), nil
}

func (s *scheduleService) WeekBaseEvents(ctx context.Context, startOfWeek time.Time, userID string) ([]dto.ScheduleEvent, error) {
	return s.buildBaseEvents(ctx, toDateOnly(startOfWeek), userID)
}

// buildBaseEvents 展开一周内每天命中的常规排班为 BASE 事件
func (s *scheduleService) buildBaseEvents(ctx context.Context, start time.Time, userID string) ([]dto.ScheduleEvent, error) {
	end := start.AddDate(0, 0, 6)
	assignments, err := s.repo.UserShift.ListIntersecting(ctx, start, end, userID)
	if err != nil {
		s.logger.Error("查询常规排班失败", zap.Error(err))
		return nil, err
	}

	var events []dto.ScheduleEvent
	for offset := 0; offset < 7; offset++ {
		current := start.AddDate(0, 0, offset)
		weekday := weekdayIndex(current)
		for i := range assignments {
			a := &assignments[i]
			if a.Shift == nil || a.User == nil {
				continue
			}
			if a.Shift.Weekday != weekday {
				continue
			}
			if !a.CoversDate(current) {
				continue
			}
			validFrom := a.ValidFrom.Format("2006-01-02")
			ev := dto.ScheduleEvent{
				UserID:    a.UserID,
				UserName:  a.User.Name,
				Role:      a.User.Role,
				Date:      current.Format("2006-01-02"),
				StartTime: normalizeClock(a.Shift.StartTime),
				EndTime:   normalizeClock(a.Shift.EndTime),
				ShiftID:   a.ShiftID,
				ShiftName: a.Shift.Name,
				Location:  a.Shift.Location,
				ValidFrom: &validFrom,
				Source:    dto.EventSourceBase,
			}
			if a.ValidTo != nil {
				validTo := a.ValidTo.Format("2006-01-02")
				ev.ValidTo = &validTo
			}
			events = append(events, ev)
		}
	}
	return events, nil
}

// buildExtraEvents 将已批准加班申请转为 EXTRA 事件。
// 引用已失效的用户/班次的申请直接跳过，不让单条悬空引用拖垮整次查询。
func (s *scheduleService) buildExtraEvents(ctx context.Context, requests []model.ShiftRequest) ([]dto.ScheduleEvent, error) {
	shifts, err := s.repo.Shift.List(ctx)
	if err != nil {
		s.logger.Error("查询班次槽位失败", zap.Error(err))
		return nil, err
	}
	shiftByID := make(map[string]*model.Shift, len(shifts))
	for i := range shifts {
		shiftByID[shifts[i].ShiftID] = &shifts[i]
	}

	users, err := s.repo.User.List(ctx)
	if err != nil {
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}
	userByID := make(map[string]*model.User, len(users))
	for i := range users {
		userByID[users[i].UserID] = &users[i]
	}

	var extras []dto.ScheduleEvent
	for i := range requests {
		req := &requests[i]
		if req.Type != model.RequestTypeExtra {
			continue
		}
		shift, okShift := shiftByID[req.TargetShiftID]
		user, okUser := userByID[req.UserID]
		if !okShift || !okUser {
			s.logger.Debug("跳过悬空引用的加班申请",
				zap.String("request_id", req.ShiftRequestID))
			continue
		}
		startTime := normalizeClock(shift.StartTime)
		endTime := normalizeClock(shift.EndTime)
		if req.TargetStartTime != nil && req.TargetEndTime != nil {
			startTime = normalizeClock(*req.TargetStartTime)
			endTime = normalizeClock(*req.TargetEndTime)
		}
		extras = append(extras, dto.ScheduleEvent{
			UserID:    user.UserID,
			UserName:  user.Name,
			Role:      user.Role,
			Date:      req.TargetDate.Format("2006-01-02"),
			StartTime: startTime,
			EndTime:   endTime,
			ShiftID:   shift.ShiftID,
			ShiftName: shift.Name,
			Location:  shift.Location,
			Source:    dto.EventSourceExtra,
		})
	}
	return extras, nil
}

// splitBaseEvent 按缺勤时间窗裂解单个 BASE 事件，返回按起点升序的存活片段
func splitBaseEvent(ev dto.ScheduleEvent, cuts []*model.ShiftRequest) ([]dto.ScheduleEvent, error) {
	baseStart, err := parseClock(ev.StartTime)
	if err != nil {
		return nil, err
	}
	baseEnd, err := parseClock(ev.EndTime)
	if err != nil {
		return nil, err
	}
	base := timeSpan{start: baseStart, end: baseEnd}

	cutSpans := make([]timeSpan, 0, len(cuts))
	for _, cut := range cuts {
		if cut.TargetStartTime == nil || cut.TargetEndTime == nil {
			// 无时间窗 = 整段缺勤
			cutSpans = append(cutSpans, base)
			continue
		}
		cs, err := parseClock(*cut.TargetStartTime)
		if err != nil {
			return nil, err
		}
		ce, err := parseClock(*cut.TargetEndTime)
		if err != nil {
			return nil, err
		}
		cutSpans = append(cutSpans, timeSpan{start: cs, end: ce})
	}

	remaining := subtractSpans(base, cutSpans)
	segments := make([]dto.ScheduleEvent, 0, len(remaining))
	for _, span := range remaining {
		seg := ev
		seg.StartTime = formatClock(span.start)
		seg.EndTime = formatClock(span.end)
		segments = append(segments, seg)
	}
	return segments, nil
}

// normalizeClock 将数据库返回的 "HH:MM:SS" 统一为 "HH:MM"；无法解析时原样返回
func normalizeClock(s string) string {
	minutes, err := parseClock(s)
	if err != nil {
		return s
	}
	return formatClock(minutes)
}

// ════════════════════════════════════════════════════════════
// 班次槽位与排班管理
// ════════════════════════════════════════════════════════════

func (s *scheduleService) ListShifts(ctx context.Context) ([]dto.GridShift, error) {
	shifts, err := s.repo.Shift.List(ctx)
	if err != nil {
		s.logger.Error("查询班次槽位失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.GridShift, 0, len(shifts))
	for i := range shifts {
		result = append(result, toGridShift(&shifts[i]))
	}
	return result, nil
}

// validateSlotTimes 校验槽位时间：整点对齐且落在开放时段内
func validateSlotTimes(startTime, endTime string) (int, int, error) {
	start, err := parseClock(startTime)
	if err != nil {
		return 0, 0, ErrInvalidTimeRange
	}
	end, err := parseClock(endTime)
	if err != nil {
		return 0, 0, ErrInvalidTimeRange
	}
	if start%60 != 0 || end%60 != 0 {
		return 0, 0, ErrNotHourAligned
	}
	if end <= start {
		return 0, 0, ErrInvalidTimeRange
	}
	if start < allowedStartHour*60 || end > allowedEndHour*60 {
		return 0, 0, ErrOutsideOperatingHours
	}
	return start, end, nil
}

// ensureSlot 按唯一键 (weekday, start, end) 复用或创建班次槽位
func (s *scheduleService) ensureSlot(ctx context.Context, weekday int, startTime, endTime string, name, location *string) (*model.Shift, error) {
	if weekday < 0 || weekday > 6 {
		return nil, ErrInvalidWeekday
	}
	if _, _, err := validateSlotTimes(startTime, endTime); err != nil {
		return nil, err
	}

	existing, err := s.repo.Shift.GetByKey(ctx, weekday, startTime, endTime)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询班次槽位失败", zap.Error(err))
		return nil, err
	}

	shiftName := fmt.Sprintf("Slot %d %s-%s", weekday, normalizeClock(startTime), normalizeClock(endTime))
	if name != nil && *name != "" {
		shiftName = *name
	}
	shift := &model.Shift{
		Name:      shiftName,
		Weekday:   weekday,
		StartTime: normalizeClock(startTime),
		EndTime:   normalizeClock(endTime),
		Location:  location,
	}
	if err := s.repo.Shift.Create(ctx, shift); err != nil {
		s.logger.Error("创建班次槽位失败", zap.Error(err))
		return nil, err
	}
	return shift, nil
}

func (s *scheduleService) EnsureSlot(ctx context.Context, req *dto.EnsureSlotRequest) (*dto.GridShift, error) {
	shift, err := s.ensureSlot(ctx, req.Weekday, req.StartTime, req.EndTime, req.Name, req.Location)
	if err != nil {
		return nil, err
	}
	result := toGridShift(shift)
	return &result, nil
}

// resolveHourRange 处理小时粒度的排班输入：endHour 缺省为 startHour+1（封顶 18 时）
func resolveHourRange(startHour int, endHour *int) (int, int, error) {
	resolvedEnd := startHour + 1
	if resolvedEnd > allowedEndHour {
		resolvedEnd = allowedEndHour
	}
	if endHour != nil {
		resolvedEnd = *endHour
	}
	if startHour < allowedStartHour || resolvedEnd > allowedEndHour {
		return 0, 0, ErrOutsideOperatingHours
	}
	if resolvedEnd <= startHour {
		return 0, 0, ErrInvalidTimeRange
	}
	return startHour, resolvedEnd, nil
}

func (s *scheduleService) AssignSlot(ctx context.Context, req *dto.AssignSlotRequest, actorID string) (*dto.AssignmentResponse, error) {
	startHour, endHour, err := resolveHourRange(req.StartHour, req.EndHour)
	if err != nil {
		return nil, err
	}
	validFrom, err := parseDate(req.ValidFrom)
	if err != nil {
		return nil, err
	}
	var validTo *time.Time
	if req.ValidTo != nil {
		parsed, err := parseDate(*req.ValidTo)
		if err != nil {
			return nil, err
		}
		if parsed.Before(validFrom) {
			return nil, ErrInvalidValidity
		}
		validTo = &parsed
	}

	user, err := s.repo.User.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}
	if user.Role != model.RoleMember {
		return nil, ErrAssignTargetNotMember
	}

	shift, err := s.ensureSlot(ctx, req.Weekday,
		formatClock(startHour*60), formatClock(endHour*60), nil, req.Location)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.UserShift.ExistsDuplicate(ctx, req.UserID, shift.ShiftID, validFrom)
	if err != nil {
		s.logger.Error("排班重复检查失败", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, ErrAssignmentExists
	}

	assignment := &model.UserShift{
		UserID:    req.UserID,
		ShiftID:   shift.ShiftID,
		ValidFrom: validFrom,
		ValidTo:   validTo,
	}
	err = s.repo.Tx(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.UserShift.Create(ctx, assignment); err != nil {
			return err
		}
		details := model.JSONMap{
			"weekday":    req.Weekday,
			"start_hour": startHour,
			"end_hour":   endHour,
			"valid_from": req.ValidFrom,
		}
		if req.ValidTo != nil {
			details["valid_to"] = *req.ValidTo
		}
		return txRepo.Audit.Create(ctx, &model.AuditLog{
			ActorUserID:  &actorID,
			ActionType:   model.ActionAssignSlot,
			TargetUserID: &req.UserID,
			Details:      details,
		})
	})
	if err != nil {
		s.logger.Error("创建排班失败", zap.Error(err))
		return nil, err
	}

	resp := toAssignmentResponse(assignment)
	return &resp, nil
}

func (s *scheduleService) BulkAssign(ctx context.Context, req *dto.BulkAssignRequest, actorID string) ([]dto.AssignmentResponse, error) {
	if len(req.Slots) == 0 {
		return nil, ErrNoSlotsGiven
	}
	validFrom, err := parseDate(req.ValidFrom)
	if err != nil {
		return nil, err
	}
	// 批量排班的有效期缺省为单日（valid_to = valid_from）
	validTo := validFrom
	if req.ValidTo != nil {
		parsed, err := parseDate(*req.ValidTo)
		if err != nil {
			return nil, err
		}
		if parsed.Before(validFrom) {
			return nil, ErrInvalidValidity
		}
		validTo = parsed
	}

	user, err := s.repo.User.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}
	if user.Role != model.RoleMember {
		return nil, ErrAssignTargetNotMember
	}

	type normalizedSlot struct {
		weekday   int
		startHour int
		endHour   int
		location  *string
	}
	normalized := make([]normalizedSlot, 0, len(req.Slots))
	for _, slot := range req.Slots {
		startHour, endHour, err := resolveHourRange(slot.StartHour, slot.EndHour)
		if err != nil {
			return nil, err
		}
		normalized = append(normalized, normalizedSlot{
			weekday:   slot.Weekday,
			startHour: startHour,
			endHour:   endHour,
			location:  slot.Location,
		})
	}

	shifts := make([]*model.Shift, 0, len(normalized))
	shiftIDs := make([]string, 0, len(normalized))
	for _, slot := range normalized {
		shift, err := s.ensureSlot(ctx, slot.weekday,
			formatClock(slot.startHour*60), formatClock(slot.endHour*60), nil, slot.location)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
		shiftIDs = append(shiftIDs, shift.ShiftID)
	}

	var responses []dto.AssignmentResponse
	err = s.repo.Tx(ctx, func(txRepo *repository.Repository) error {
		// 覆盖式替换：先删除与新有效期相交的既有排班
		removed, err := txRepo.UserShift.DeleteOverlapping(ctx, req.UserID, shiftIDs, validFrom, &validTo)
		if err != nil {
			return err
		}
		slotDetails := make([]interface{}, 0, len(normalized))
		for _, slot := range normalized {
			slotDetails = append(slotDetails, map[string]interface{}{
				"weekday":    slot.weekday,
				"start_hour": slot.startHour,
				"end_hour":   slot.endHour,
			})
		}
		for _, shift := range shifts {
			vt := validTo
			assignment := &model.UserShift{
				UserID:    req.UserID,
				ShiftID:   shift.ShiftID,
				ValidFrom: validFrom,
				ValidTo:   &vt,
			}
			if err := txRepo.UserShift.Create(ctx, assignment); err != nil {
				return err
			}
			responses = append(responses, toAssignmentResponse(assignment))
		}
		return txRepo.Audit.Create(ctx, &model.AuditLog{
			ActorUserID:  &actorID,
			ActionType:   model.ActionAssignSlot,
			TargetUserID: &req.UserID,
			Details: model.JSONMap{
				"valid_from":           validFrom.Format("2006-01-02"),
				"valid_to":             validTo.Format("2006-01-02"),
				"slots":                slotDetails,
				"replaced_assignments": removed,
			},
		})
	})
	if err != nil {
		s.logger.Error("批量排班失败", zap.Error(err))
		return nil, err
	}
	return responses, nil
}

func (s *scheduleService) DeleteAssignment(ctx context.Context, id string, actorID string) error {
	assignment, err := s.repo.UserShift.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		s.logger.Error("查询排班失败", zap.Error(err))
		return err
	}
	return s.repo.Tx(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.UserShift.Delete(ctx, id); err != nil {
			return err
		}
		return txRepo.Audit.Create(ctx, &model.AuditLog{
			ActorUserID:  &actorID,
			ActionType:   model.ActionAssignSlot,
			TargetUserID: &assignment.UserID,
			Details: model.JSONMap{
				"deleted_assignment": id,
				"shift_id":           assignment.ShiftID,
			},
		})
	})
}

func (s *scheduleService) GlobalAssignments(ctx context.Context, callerID, callerRole string) ([]dto.GlobalAssignmentItem, error) {
	var assignments []model.UserShift
	var err error
	if callerRole == model.RoleMember {
		// 普通成员只能看到自己的排班
		assignments, err = s.repo.UserShift.ListIntersecting(ctx,
			time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC), callerID)
	} else {
		assignments, err = s.repo.UserShift.ListAll(ctx)
	}
	if err != nil {
		s.logger.Error("查询全局排班失败", zap.Error(err))
		return nil, err
	}

	items := make([]dto.GlobalAssignmentItem, 0, len(assignments))
	for i := range assignments {
		a := &assignments[i]
		if a.User == nil || a.Shift == nil {
			continue
		}
		item := dto.GlobalAssignmentItem{
			AssignmentID: a.UserShiftID,
			User:         dto.GridUser{UserID: a.User.UserID, Name: a.User.Name},
			Shift:        toGridShift(a.Shift),
			ValidFrom:    a.ValidFrom.Format("2006-01-02"),
		}
		if a.ValidTo != nil {
			validTo := a.ValidTo.Format("2006-01-02")
			item.ValidTo = &validTo
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *scheduleService) MyAssignments(ctx context.Context, userID string) ([]dto.AssignmentResponse, error) {
	assignments, err := s.repo.UserShift.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询个人排班失败", zap.Error(err))
		return nil, err
	}
	responses := make([]dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		responses = append(responses, toAssignmentResponse(&assignments[i]))
	}
	return responses, nil
}

func toAssignmentResponse(a *model.UserShift) dto.AssignmentResponse {
	resp := dto.AssignmentResponse{
		UserShiftID: a.UserShiftID,
		UserID:      a.UserID,
		ShiftID:     a.ShiftID,
		ValidFrom:   a.ValidFrom.Format("2006-01-02"),
	}
	if a.ValidTo != nil {
		validTo := a.ValidTo.Format("2006-01-02")
		resp.ValidTo = &validTo
	}
	return resp
}

func toGridShift(shift *model.Shift) dto.GridShift {
	return dto.GridShift{
		ShiftID:   shift.ShiftID,
		Name:      shift.Name,
		Weekday:   shift.Weekday,
		StartTime: normalizeClock(shift.StartTime),
		EndTime:   normalizeClock(shift.EndTime),
		Location:  shift.Location,
	}
}

// [自证通过] internal/service/schedule_service.go
