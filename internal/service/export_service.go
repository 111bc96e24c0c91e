package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/zolt46/work-time-back/internal/dto"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoEvents     = errors.New("该周暂无有效排班")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 周视图可导出为 Excel (.xlsx) 与日历 (.ics) 两种格式
//   - 导出内容与周视图接口完全一致：常规排班扣除缺勤、追加加班后的有效事件
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportWeekXlsx 导出一周有效排班为 Excel
	ExportWeekXlsx(ctx context.Context, startOfWeek time.Time, userID string) (*bytes.Buffer, string, error)
	// ExportWeekICS 导出一周有效排班为 iCalendar
	ExportWeekICS(ctx context.Context, startOfWeek time.Time, userID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	schedule ScheduleService
	logger   *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(schedule ScheduleService, logger *zap.Logger) ExportService {
	return &exportService{schedule: schedule, logger: logger}
}

var exportDayNames = [7]string{"周一", "周二", "周三", "周四", "周五", "周六", "周日"}

// sortedWeekEvents 取一周有效事件并按 日期 → 开始时刻 → 姓名 排序
func (s *exportService) sortedWeekEvents(ctx context.Context, startOfWeek time.Time, userID string) ([]weekEventRow, time.Time, error) {
	start := weekStartOf(startOfWeek)
	events, err := s.schedule.WeekEvents(ctx, start, userID)
	if err != nil {
		return nil, start, err
	}
	if len(events) == 0 {
		return nil, start, ErrExportNoEvents
	}

	rows := make([]weekEventRow, 0, len(events))
	for _, ev := range events {
		date, err := parseDate(ev.Date)
		if err != nil {
			continue
		}
		rows = append(rows, weekEventRow{
			date:      date,
			userName:  ev.UserName,
			shiftName: ev.ShiftName,
			startTime: ev.StartTime,
			endTime:   ev.EndTime,
			location:  ev.Location,
			source:    ev.Source,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].date.Equal(rows[j].date) {
			return rows[i].date.Before(rows[j].date)
		}
		if rows[i].startTime != rows[j].startTime {
			return rows[i].startTime < rows[j].startTime
		}
		return rows[i].userName < rows[j].userName
	})
	return rows, start, nil
}

type weekEventRow struct {
	date      time.Time
	userName  string
	shiftName string
	startTime string
	endTime   string
	location  *string
	source    string
}

// ═══════════════════════════════════════════════════════════
// ExportWeekXlsx — 导出周排班为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单 Sheet，标题行 + 表头（日期/星期/时间/人员/班次/地点/来源）
//   - 事件按 日期 → 开始时刻 排序

func (s *exportService) ExportWeekXlsx(ctx context.Context, startOfWeek time.Time, userID string) (*bytes.Buffer, string, error) {
	rows, start, err := s.sortedWeekEvents(ctx, startOfWeek, userID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "周排班"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "B", 8)
	f.SetColWidth(sheetName, "C", "C", 14)
	f.SetColWidth(sheetName, "D", "D", 14)
	f.SetColWidth(sheetName, "E", "E", 18)
	f.SetColWidth(sheetName, "F", "F", 14)
	f.SetColWidth(sheetName, "G", "G", 8)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	weekLabel := start.Format("2006-01-02")
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s 周 — 值班表", weekLabel))
	f.MergeCell(sheetName, "A1", "G1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	headers := []string{"日期", "星期", "时间", "人员", "班次", "地点", "来源"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheetName, cell(col, 2), h)
	}

	// 数据行
	row := 3
	for _, r := range rows {
		location := "-"
		if r.location != nil && *r.location != "" {
			location = *r.location
		}
		source := "常规"
		if r.source == dto.EventSourceExtra {
			source = "加班"
		}
		f.SetCellValue(sheetName, cell("A", row), r.date.Format("2006-01-02"))
		f.SetCellValue(sheetName, cell("B", row), exportDayNames[weekdayIndex(r.date)])
		f.SetCellValue(sheetName, cell("C", row), fmt.Sprintf("%s-%s", r.startTime, r.endTime))
		f.SetCellValue(sheetName, cell("D", row), r.userName)
		f.SetCellValue(sheetName, cell("E", row), r.shiftName)
		f.SetCellValue(sheetName, cell("F", row), location)
		f.SetCellValue(sheetName, cell("G", row), source)
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("值班表_%s.xlsx", weekLabel)
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportWeekICS — 导出周排班为 iCalendar
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportWeekICS(ctx context.Context, startOfWeek time.Time, userID string) (*bytes.Buffer, string, error) {
	rows, start, err := s.sortedWeekEvents(ctx, startOfWeek, userID)
	if err != nil {
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//work-time//schedule//KO")

	now := time.Now().UTC()
	for i, r := range rows {
		startAt, err := combineDateClock(r.date, r.startTime)
		if err != nil {
			continue
		}
		endAt, err := combineDateClock(r.date, r.endTime)
		if err != nil {
			continue
		}

		uid := fmt.Sprintf("%s-%s-%d@work-time", r.date.Format("20060102"), r.startTime, i)
		event := cal.AddEvent(uid)
		event.SetDtStampTime(now)
		event.SetStartAt(startAt)
		event.SetEndAt(endAt)
		event.SetSummary(fmt.Sprintf("%s %s", r.userName, r.shiftName))
		if r.location != nil && *r.location != "" {
			event.SetLocation(*r.location)
		}
		if r.source == dto.EventSourceExtra {
			event.SetDescription("加班值班")
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("schedule_%s.ics", start.Format("2006-01-02"))
	return buf, filename, nil
}

// combineDateClock 合成日期与 "HH:MM" 为 UTC 时间点
func combineDateClock(date time.Time, clock string) (time.Time, error) {
	minutes, err := parseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, time.UTC), nil
}

// ── 辅助函数 ──

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
