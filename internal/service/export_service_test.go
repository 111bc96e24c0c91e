package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func setupTestExportService() (ExportService, *mockUserRepo, *mockShiftRepo, *mockUserShiftRepo) {
	repo, userRepo, shiftRepo, userShiftRepo, _, _ := newTestRepository()
	schedule := NewScheduleService(repo, zap.NewNop())
	svc := NewExportService(schedule, zap.NewNop())
	return svc, userRepo, shiftRepo, userShiftRepo
}

func TestExportService_Xlsx(t *testing.T) {
	svc, userRepo, shiftRepo, userShiftRepo := setupTestExportService()
	seedDutyMember(userRepo, shiftRepo, userShiftRepo, "mem-1")

	buf, filename, err := svc.ExportWeekXlsx(context.Background(), testMonday, "")
	if err != nil {
		t.Fatalf("ExportWeekXlsx 应成功: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("导出文件不应为空")
	}
	if !strings.Contains(filename, "2024-01-08") || !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("文件名不正确: %s", filename)
	}
}

func TestExportService_ICS(t *testing.T) {
	svc, userRepo, shiftRepo, userShiftRepo := setupTestExportService()
	seedDutyMember(userRepo, shiftRepo, userShiftRepo, "mem-1")

	buf, filename, err := svc.ExportWeekICS(context.Background(), testMonday, "")
	if err != nil {
		t.Fatalf("ExportWeekICS 应成功: %v", err)
	}
	content := buf.String()
	if !strings.Contains(content, "BEGIN:VCALENDAR") || !strings.Contains(content, "BEGIN:VEVENT") {
		t.Error("ICS 输出缺少日历结构")
	}
	if !strings.Contains(content, "值班员甲") {
		t.Error("ICS 事件应包含值班人员姓名")
	}
	if filename != "schedule_2024-01-08.ics" {
		t.Errorf("文件名不正确: %s", filename)
	}
}

func TestExportService_EmptyWeek(t *testing.T) {
	svc, _, _, _ := setupTestExportService()

	if _, _, err := svc.ExportWeekXlsx(context.Background(), testMonday, ""); !errors.Is(err, ErrExportNoEvents) {
		t.Errorf("期望 ErrExportNoEvents，实际: %v", err)
	}
	if _, _, err := svc.ExportWeekICS(context.Background(), testMonday, ""); !errors.Is(err, ErrExportNoEvents) {
		t.Errorf("期望 ErrExportNoEvents，实际: %v", err)
	}
}
