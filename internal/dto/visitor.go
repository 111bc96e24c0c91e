package dto

// CreateSchoolYearRequest 创建学年度请求；起止日期缺省为 3/1 至次年 2 月末
type CreateSchoolYearRequest struct {
	AcademicYear int     `json:"academic_year" binding:"required"`
	StartDate    *string `json:"start_date"`
	EndDate      *string `json:"end_date"`
	InitialTotal int     `json:"initial_total"`
}

// CreatePeriodRequest 创建学期/假期区间请求
type CreatePeriodRequest struct {
	Type      string  `json:"type" binding:"required"`
	Name      *string `json:"name"`
	StartDate string  `json:"start_date" binding:"required"`
	EndDate   string  `json:"end_date" binding:"required"`
}

// UpsertDailyCountRequest 录入/修改某日入馆记录
type UpsertDailyCountRequest struct {
	VisitDate     string  `json:"visit_date" binding:"required"`
	Count1        *int    `json:"count1"`
	Count2        *int    `json:"count2"`
	BaselineTotal *int    `json:"baseline_total"`
	DailyOverride *int    `json:"daily_override"`
	Note          *string `json:"note"`
}

// DailyCountResponse 单日入馆记录响应
type DailyCountResponse struct {
	DailyCountID  string `json:"daily_count_id"`
	VisitDate     string `json:"visit_date"`
	Count1        *int   `json:"count1,omitempty"`
	Count2        *int   `json:"count2,omitempty"`
	BaselineTotal *int   `json:"baseline_total,omitempty"`
	DailyOverride *int   `json:"daily_override,omitempty"`
	TotalCount    int    `json:"total_count"`
	PreviousTotal int    `json:"previous_total"`
	DailyVisitors int    `json:"daily_visitors"`
	Note          string `json:"note,omitempty"`
}

// VisitorMonthlyStat 月度统计
type VisitorMonthlyStat struct {
	Year     int `json:"year"`
	Month    int `json:"month"`
	Visitors int `json:"visitors"`
	OpenDays int `json:"open_days"`
}

// VisitorPeriodStat 学期/假期统计
type VisitorPeriodStat struct {
	PeriodID string `json:"period_id"`
	Type     string `json:"type"`
	Name     string `json:"name"`
	Visitors int    `json:"visitors"`
	OpenDays int    `json:"open_days"`
}

// VisitorSummary 学年度汇总统计
type VisitorSummary struct {
	SchoolYearID  string               `json:"school_year_id"`
	AcademicYear  int                  `json:"academic_year"`
	TotalVisitors int                  `json:"total_visitors"`
	OpenDays      int                  `json:"open_days"`
	Monthly       []VisitorMonthlyStat `json:"monthly"`
	Periods       []VisitorPeriodStat  `json:"periods"`
}
