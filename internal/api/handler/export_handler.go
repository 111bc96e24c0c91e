package handler

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zolt46/work-time-back/internal/model"
	"github.com/zolt46/work-time-back/internal/service"
	"github.com/zolt46/work-time-back/pkg/response"
)

const (
	contentTypeXlsx = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// resolveExportWeek 解析导出起始周与用户过滤；MEMBER 只能导出本人
func (h *ExportHandler) resolveExportWeek(c *gin.Context) (time.Time, string, bool) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return time.Time{}, "", false
	}
	role, ok := MustGetRole(c)
	if !ok {
		return time.Time{}, "", false
	}
	start, ok := parseWeekStart(c)
	if !ok {
		return time.Time{}, "", false
	}

	filterUserID := c.Query("user_id")
	if role == model.RoleMember {
		filterUserID = callerID
	}
	return start, filterUserID, true
}

// ExportWeekXlsx 导出一周排班表为 Excel
// GET /api/v1/export/week/xlsx?start=2006-01-02&user_id=xxx
func (h *ExportHandler) ExportWeekXlsx(c *gin.Context) {
	start, filterUserID, ok := h.resolveExportWeek(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportWeekXlsx(c.Request.Context(), start, filterUserID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", contentTypeXlsx)
	c.Data(http.StatusOK, contentTypeXlsx, buf.Bytes())
}

// ExportWeekICS 导出一周排班表为 iCalendar
// GET /api/v1/export/week/ics?start=2006-01-02&user_id=xxx
func (h *ExportHandler) ExportWeekICS(c *gin.Context) {
	start, filterUserID, ok := h.resolveExportWeek(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportWeekICS(c.Request.Context(), start, filterUserID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", contentTypeICS)
	c.Data(http.StatusOK, contentTypeICS, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportNoEvents):
		response.NotFound(c, 90001, "该周暂无排班事件")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 10001, "start 日期格式不正确")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}
