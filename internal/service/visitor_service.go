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

var (
	ErrSchoolYearNotFound = errors.New("学年度不存在")
	ErrSchoolYearExists   = errors.New("该学年度已存在")
	ErrInvalidPeriodType  = errors.New("无效的学期/假期类型")
	ErrInvalidDateRange   = errors.New("日期范围不正确，结束日不能早于开始日")
	ErrDateOutsideYear    = errors.New("日期不在学年度范围内")
	ErrDailyCountNotFound = errors.New("入馆记录不存在")
	ErrNoCountInputGiven  = errors.New("未提供任何计数输入")
)

// VisitorService 入馆统计业务接口
type VisitorService interface {
	CreateYear(ctx context.Context, req *dto.CreateSchoolYearRequest) (*model.VisitorSchoolYear, error)
	ListYears(ctx context.Context) ([]model.VisitorSchoolYear, error)
	CreatePeriod(ctx context.Context, schoolYearID string, req *dto.CreatePeriodRequest) (*model.VisitorPeriod, error)
	ListPeriods(ctx context.Context, schoolYearID string) ([]model.VisitorPeriod, error)
	// UpsertDaily 录入或修改某日计数并重算该学年度的累计链
	UpsertDaily(ctx context.Context, schoolYearID string, req *dto.UpsertDailyCountRequest) (*dto.DailyCountResponse, error)
	DeleteDaily(ctx context.Context, schoolYearID, dailyCountID string) error
	ListDaily(ctx context.Context, schoolYearID string) ([]dto.DailyCountResponse, error)
	// Summary 学年度汇总：总入馆、开馆日、月度与学期/假期分布
	Summary(ctx context.Context, schoolYearID string) (*dto.VisitorSummary, error)
}

type visitorService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewVisitorService 创建 VisitorService 实例
func NewVisitorService(repo *repository.Repository, logger *zap.Logger) VisitorService {
	return &visitorService{repo: repo, logger: logger}
}

// ── 学年度与区间 ──

func (s *visitorService) CreateYear(ctx context.Context, req *dto.CreateSchoolYearRequest) (*model.VisitorSchoolYear, error) {
	if _, err := s.repo.Visitor.GetYearByAcademicYear(ctx, req.AcademicYear); err == nil {
		return nil, ErrSchoolYearExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询学年度失败", zap.Error(err))
		return nil, err
	}

	// 缺省学年度：3 月 1 日起至次年 2 月末
	startDate := time.Date(req.AcademicYear, 3, 1, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(req.AcademicYear+1, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	if req.StartDate != nil {
		parsed, err := parseDate(*req.StartDate)
		if err != nil {
			return nil, err
		}
		startDate = parsed
	}
	if req.EndDate != nil {
		parsed, err := parseDate(*req.EndDate)
		if err != nil {
			return nil, err
		}
		endDate = parsed
	}
	if endDate.Before(startDate) {
		return nil, ErrInvalidDateRange
	}

	year := &model.VisitorSchoolYear{
		AcademicYear: req.AcademicYear,
		StartDate:    startDate,
		EndDate:      endDate,
		InitialTotal: req.InitialTotal,
	}
	if err := s.repo.Visitor.CreateYear(ctx, year); err != nil {
		s.logger.Error("创建学年度失败", zap.Error(err))
		return nil, err
	}
	return year, nil
}

func (s *visitorService) ListYears(ctx context.Context) ([]model.VisitorSchoolYear, error) {
	years, err := s.repo.Visitor.ListYears(ctx)
	if err != nil {
		s.logger.Error("查询学年度列表失败", zap.Error(err))
		return nil, err
	}
	return years, nil
}

func (s *visitorService) CreatePeriod(ctx context.Context, schoolYearID string, req *dto.CreatePeriodRequest) (*model.VisitorPeriod, error) {
	switch req.Type {
	case model.VisitorPeriodSemester1, model.VisitorPeriodSemester2,
		model.VisitorPeriodSummerBreak, model.VisitorPeriodWinterBreak:
	default:
		return nil, ErrInvalidPeriodType
	}

	year, err := s.loadYear(ctx, schoolYearID)
	if err != nil {
		return nil, err
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	if endDate.Before(startDate) {
		return nil, ErrInvalidDateRange
	}
	if startDate.Before(year.StartDate) || endDate.After(year.EndDate) {
		return nil, ErrDateOutsideYear
	}

	name := defaultPeriodName(year.AcademicYear, req.Type)
	if req.Name != nil && *req.Name != "" {
		name = *req.Name
	}
	period := &model.VisitorPeriod{
		SchoolYearID: schoolYearID,
		Type:         req.Type,
		Name:         name,
		StartDate:    startDate,
		EndDate:      endDate,
	}
	if err := s.repo.Visitor.CreatePeriod(ctx, period); err != nil {
		s.logger.Error("创建学期区间失败", zap.Error(err))
		return nil, err
	}
	return period, nil
}

func defaultPeriodName(academicYear int, periodType string) string {
	switch periodType {
	case model.VisitorPeriodSemester1:
		return fmt.Sprintf("%d-1학기", academicYear)
	case model.VisitorPeriodSemester2:
		return fmt.Sprintf("%d-2학기", academicYear)
	case model.VisitorPeriodSummerBreak:
		return fmt.Sprintf("%d 여름방학", academicYear)
	default:
		return fmt.Sprintf("%d 겨울방학", academicYear)
	}
}

func (s *visitorService) ListPeriods(ctx context.Context, schoolYearID string) ([]model.VisitorPeriod, error) {
	if _, err := s.loadYear(ctx, schoolYearID); err != nil {
		return nil, err
	}
	periods, err := s.repo.Visitor.ListPeriods(ctx, schoolYearID)
	if err != nil {
		s.logger.Error("查询学期区间失败", zap.Error(err))
		return nil, err
	}
	return periods, nil
}

// ── 每日计数 ──

func (s *visitorService) UpsertDaily(ctx context.Context, schoolYearID string, req *dto.UpsertDailyCountRequest) (*dto.DailyCountResponse, error) {
	if req.Count1 == nil && req.Count2 == nil && req.BaselineTotal == nil && req.DailyOverride == nil {
		return nil, ErrNoCountInputGiven
	}
	year, err := s.loadYear(ctx, schoolYearID)
	if err != nil {
		return nil, err
	}
	visitDate, err := parseDate(req.VisitDate)
	if err != nil {
		return nil, err
	}
	if visitDate.Before(year.StartDate) || visitDate.After(year.EndDate) {
		return nil, ErrDateOutsideYear
	}

	entry, err := s.repo.Visitor.GetDailyByDate(ctx, schoolYearID, visitDate)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询入馆记录失败", zap.Error(err))
			return nil, err
		}
		entry = &model.VisitorDailyCount{
			SchoolYearID: schoolYearID,
			VisitDate:    visitDate,
		}
	}
	if req.Count1 != nil {
		entry.Count1 = req.Count1
	}
	if req.Count2 != nil {
		entry.Count2 = req.Count2
	}
	if req.BaselineTotal != nil {
		entry.BaselineTotal = req.BaselineTotal
	}
	if req.DailyOverride != nil {
		entry.DailyOverride = req.DailyOverride
	}
	if req.Note != nil {
		entry.Note = *req.Note
	}

	err = s.repo.Tx(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.Visitor.SaveDaily(ctx, entry); err != nil {
			return err
		}
		return s.recalculateYear(ctx, txRepo, year)
	})
	if err != nil {
		s.logger.Error("保存入馆记录失败", zap.Error(err))
		return nil, err
	}

	// 重算后读回最终数值
	saved, err := s.repo.Visitor.GetDailyByDate(ctx, schoolYearID, visitDate)
	if err != nil {
		saved = entry
	}
	resp := toDailyCountResponse(saved)
	return &resp, nil
}

func (s *visitorService) DeleteDaily(ctx context.Context, schoolYearID, dailyCountID string) error {
	year, err := s.loadYear(ctx, schoolYearID)
	if err != nil {
		return err
	}
	return s.repo.Tx(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.Visitor.DeleteDaily(ctx, dailyCountID); err != nil {
			return err
		}
		return s.recalculateYear(ctx, txRepo, year)
	})
}

func (s *visitorService) ListDaily(ctx context.Context, schoolYearID string) ([]dto.DailyCountResponse, error) {
	if _, err := s.loadYear(ctx, schoolYearID); err != nil {
		return nil, err
	}
	entries, err := s.repo.Visitor.ListDaily(ctx, schoolYearID)
	if err != nil {
		s.logger.Error("查询入馆记录失败", zap.Error(err))
		return nil, err
	}
	responses := make([]dto.DailyCountResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, toDailyCountResponse(&entries[i]))
	}
	return responses, nil
}

// recalculateYear 沿日期升序重算累计链。
// 每日总数的取值优先级：人工补登（override）> 校准锚点（baseline）> 闸机读数之和；
// 当日人数 = 当日总数 - 前日总数，负值截断为 0（闸机清零或校准回拨的情形）。
func (s *visitorService) recalculateYear(ctx context.Context, txRepo *repository.Repository, year *model.VisitorSchoolYear) error {
	entries, err := txRepo.Visitor.ListDaily(ctx, year.SchoolYearID)
	if err != nil {
		return err
	}
	previousTotal := year.InitialTotal
	for i := range entries {
		entry := &entries[i]
		entry.PreviousTotal = previousTotal

		switch {
		case entry.DailyOverride != nil:
			entry.DailyVisitors = *entry.DailyOverride
			entry.TotalCount = previousTotal + *entry.DailyOverride
		case entry.BaselineTotal != nil:
			entry.TotalCount = *entry.BaselineTotal
			entry.DailyVisitors = clampNonNegative(entry.TotalCount - previousTotal)
		default:
			total := 0
			if entry.Count1 != nil {
				total += *entry.Count1
			}
			if entry.Count2 != nil {
				total += *entry.Count2
			}
			entry.TotalCount = total
			entry.DailyVisitors = clampNonNegative(total - previousTotal)
		}

		if err := txRepo.Visitor.SaveDaily(ctx, entry); err != nil {
			return err
		}
		previousTotal = entry.TotalCount
	}
	return nil
}

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// ── 汇总统计 ──

func (s *visitorService) Summary(ctx context.Context, schoolYearID string) (*dto.VisitorSummary, error) {
	year, err := s.loadYear(ctx, schoolYearID)
	if err != nil {
		return nil, err
	}
	entries, err := s.repo.Visitor.ListDaily(ctx, schoolYearID)
	if err != nil {
		s.logger.Error("查询入馆记录失败", zap.Error(err))
		return nil, err
	}
	periods, err := s.repo.Visitor.ListPeriods(ctx, schoolYearID)
	if err != nil {
		s.logger.Error("查询学期区间失败", zap.Error(err))
		return nil, err
	}

	summary := &dto.VisitorSummary{
		SchoolYearID: year.SchoolYearID,
		AcademicYear: year.AcademicYear,
	}

	type monthKey struct {
		year  int
		month int
	}
	monthlyIndex := make(map[monthKey]*dto.VisitorMonthlyStat)
	monthlyOrder := make([]monthKey, 0)

	periodStats := make([]dto.VisitorPeriodStat, len(periods))
	for i := range periods {
		periodStats[i] = dto.VisitorPeriodStat{
			PeriodID: periods[i].PeriodID,
			Type:     periods[i].Type,
			Name:     periods[i].Name,
		}
	}

	for i := range entries {
		entry := &entries[i]
		summary.TotalVisitors += entry.DailyVisitors
		summary.OpenDays++

		key := monthKey{year: entry.VisitDate.Year(), month: int(entry.VisitDate.Month())}
		stat, ok := monthlyIndex[key]
		if !ok {
			stat = &dto.VisitorMonthlyStat{Year: key.year, Month: key.month}
			monthlyIndex[key] = stat
			monthlyOrder = append(monthlyOrder, key)
		}
		stat.Visitors += entry.DailyVisitors
		stat.OpenDays++

		day := toDateOnly(entry.VisitDate)
		for j := range periods {
			if !day.Before(toDateOnly(periods[j].StartDate)) && !day.After(toDateOnly(periods[j].EndDate)) {
				periodStats[j].Visitors += entry.DailyVisitors
				periodStats[j].OpenDays++
			}
		}
	}

	for _, key := range monthlyOrder {
		summary.Monthly = append(summary.Monthly, *monthlyIndex[key])
	}
	summary.Periods = periodStats
	return summary, nil
}

func toDailyCountResponse(entry *model.VisitorDailyCount) dto.DailyCountResponse {
	return dto.DailyCountResponse{
		DailyCountID:  entry.DailyCountID,
		VisitDate:     entry.VisitDate.Format("2006-01-02"),
		Count1:        entry.Count1,
		Count2:        entry.Count2,
		BaselineTotal: entry.BaselineTotal,
		DailyOverride: entry.DailyOverride,
		TotalCount:    entry.TotalCount,
		PreviousTotal: entry.PreviousTotal,
		DailyVisitors: entry.DailyVisitors,
		Note:          entry.Note,
	}
}

func (s *visitorService) loadYear(ctx context.Context, schoolYearID string) (*model.VisitorSchoolYear, error) {
	year, err := s.repo.Visitor.GetYearByID(ctx, schoolYearID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSchoolYearNotFound
		}
		s.logger.Error("查询学年度失败", zap.Error(err))
		return nil, err
	}
	return year, nil
}

// [自证通过] internal/service/visitor_service.go
