package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/zolt46/work-time-back/internal/model"
	"github.com/zolt46/work-time-back/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
	auths map[string]*model.AuthAccount // key: login_id
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users: make(map[string]*model.User),
		auths: make(map[string]*model.AuthAccount),
	}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = fmt.Sprintf("user-%d", len(m.users)+1)
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByName(_ context.Context, name string) (*model.User, error) {
	for _, u := range m.users {
		if u.Name == name {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByIdentifier(_ context.Context, identifier string) (*model.User, error) {
	for _, u := range m.users {
		if u.Identifier != nil && *u.Identifier == identifier {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	result := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	if _, ok := m.users[user.UserID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) CreateAuthAccount(_ context.Context, account *model.AuthAccount) error {
	m.auths[account.LoginID] = account
	return nil
}

func (m *mockUserRepo) GetAuthByLoginID(_ context.Context, loginID string) (*model.AuthAccount, error) {
	if a, ok := m.auths[loginID]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) UpdateAuthAccount(_ context.Context, account *model.AuthAccount) error {
	m.auths[account.LoginID] = account
	return nil
}

// ── Mock ShiftRepository ──

type mockShiftRepo struct {
	shifts    map[string]*model.Shift
	idCounter int
}

func newMockShiftRepo() *mockShiftRepo {
	return &mockShiftRepo{shifts: make(map[string]*model.Shift)}
}

func (m *mockShiftRepo) Create(_ context.Context, shift *model.Shift) error {
	if shift.ShiftID == "" {
		m.idCounter++
		shift.ShiftID = fmt.Sprintf("shift-%d", m.idCounter)
	}
	m.shifts[shift.ShiftID] = shift
	return nil
}

func (m *mockShiftRepo) GetByID(_ context.Context, id string) (*model.Shift, error) {
	if s, ok := m.shifts[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShiftRepo) GetByKey(_ context.Context, weekday int, startTime, endTime string) (*model.Shift, error) {
	for _, s := range m.shifts {
		if s.Weekday == weekday && s.StartTime == startTime && s.EndTime == endTime {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShiftRepo) List(_ context.Context) ([]model.Shift, error) {
	result := make([]model.Shift, 0, len(m.shifts))
	for _, s := range m.shifts {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Weekday != result[j].Weekday {
			return result[i].Weekday < result[j].Weekday
		}
		return result[i].StartTime < result[j].StartTime
	})
	return result, nil
}

// ── Mock UserShiftRepository ──

type mockUserShiftRepo struct {
	assignments map[string]*model.UserShift
	idCounter   int
}

func newMockUserShiftRepo() *mockUserShiftRepo {
	return &mockUserShiftRepo{assignments: make(map[string]*model.UserShift)}
}

func (m *mockUserShiftRepo) Create(_ context.Context, assignment *model.UserShift) error {
	if assignment.UserShiftID == "" {
		m.idCounter++
		assignment.UserShiftID = fmt.Sprintf("us-%d", m.idCounter)
	}
	m.assignments[assignment.UserShiftID] = assignment
	return nil
}

func (m *mockUserShiftRepo) GetByID(_ context.Context, id string) (*model.UserShift, error) {
	if a, ok := m.assignments[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserShiftRepo) Delete(_ context.Context, id string) error {
	delete(m.assignments, id)
	return nil
}

func (m *mockUserShiftRepo) ListByUser(_ context.Context, userID string) ([]model.UserShift, error) {
	var result []model.UserShift
	for _, a := range m.assignments {
		if a.UserID == userID {
			result = append(result, *a)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ValidFrom.Before(result[j].ValidFrom)
	})
	return result, nil
}

func (m *mockUserShiftRepo) ListAll(_ context.Context) ([]model.UserShift, error) {
	result := make([]model.UserShift, 0, len(m.assignments))
	for _, a := range m.assignments {
		result = append(result, *a)
	}
	return result, nil
}

func (m *mockUserShiftRepo) ListIntersecting(_ context.Context, start, end time.Time, userID string) ([]model.UserShift, error) {
	var result []model.UserShift
	for _, a := range m.assignments {
		if userID != "" && a.UserID != userID {
			continue
		}
		if a.ValidFrom.After(end) {
			continue
		}
		if a.ValidTo != nil && a.ValidTo.Before(start) {
			continue
		}
		result = append(result, *a)
	}
	return result, nil
}

func (m *mockUserShiftRepo) ExistsDuplicate(_ context.Context, userID, shiftID string, validFrom time.Time) (bool, error) {
	for _, a := range m.assignments {
		if a.UserID == userID && a.ShiftID == shiftID && !a.ValidFrom.After(validFrom) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserShiftRepo) DeleteOverlapping(_ context.Context, userID string, shiftIDs []string, from time.Time, to *time.Time) (int64, error) {
	hit := make(map[string]bool, len(shiftIDs))
	for _, id := range shiftIDs {
		hit[id] = true
	}
	var removed int64
	for id, a := range m.assignments {
		if a.UserID != userID || !hit[a.ShiftID] {
			continue
		}
		if a.ValidTo != nil && a.ValidTo.Before(from) {
			continue
		}
		if to != nil && a.ValidFrom.After(*to) {
			continue
		}
		delete(m.assignments, id)
		removed++
	}
	return removed, nil
}

// ── Mock ShiftRequestRepository ──

type mockShiftRequestRepo struct {
	requests  map[string]*model.ShiftRequest
	idCounter int
}

func newMockShiftRequestRepo() *mockShiftRequestRepo {
	return &mockShiftRequestRepo{requests: make(map[string]*model.ShiftRequest)}
}

func (m *mockShiftRequestRepo) Create(_ context.Context, request *model.ShiftRequest) error {
	if request.ShiftRequestID == "" {
		m.idCounter++
		request.ShiftRequestID = fmt.Sprintf("req-%d", m.idCounter)
	}
	request.CreatedAt = time.Now()
	request.UpdatedAt = time.Now()
	m.requests[request.ShiftRequestID] = request
	return nil
}

func (m *mockShiftRequestRepo) GetByID(_ context.Context, id string) (*model.ShiftRequest, error) {
	if r, ok := m.requests[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShiftRequestRepo) Update(_ context.Context, request *model.ShiftRequest) error {
	if _, ok := m.requests[request.ShiftRequestID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.requests[request.ShiftRequestID] = request
	return nil
}

func (m *mockShiftRequestRepo) ListByUser(_ context.Context, userID string) ([]model.ShiftRequest, error) {
	var result []model.ShiftRequest
	for _, r := range m.requests {
		if r.UserID == userID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockShiftRequestRepo) ListByStatus(_ context.Context, status string) ([]model.ShiftRequest, error) {
	var result []model.ShiftRequest
	for _, r := range m.requests {
		if r.Status == status {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockShiftRequestRepo) ListApprovedInRange(_ context.Context, start, end time.Time, userID string) ([]model.ShiftRequest, error) {
	var result []model.ShiftRequest
	for _, r := range m.requests {
		if r.Status != model.RequestStatusApproved {
			continue
		}
		if r.TargetDate.Before(start) || r.TargetDate.After(end) {
			continue
		}
		if userID != "" && r.UserID != userID {
			continue
		}
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockShiftRequestRepo) ListActive(_ context.Context, userID string, targetDate time.Time, shiftID string) ([]model.ShiftRequest, error) {
	var result []model.ShiftRequest
	for _, r := range m.requests {
		if r.UserID != userID || r.TargetShiftID != shiftID {
			continue
		}
		if !r.TargetDate.Equal(targetDate) {
			continue
		}
		if r.Status != model.RequestStatusPending && r.Status != model.RequestStatusApproved {
			continue
		}
		result = append(result, *r)
	}
	return result, nil
}

// ── Mock AuditLogRepository ──

type mockAuditLogRepo struct {
	logs []model.AuditLog
}

func newMockAuditLogRepo() *mockAuditLogRepo {
	return &mockAuditLogRepo{}
}

func (m *mockAuditLogRepo) Create(_ context.Context, log *model.AuditLog) error {
	if log.AuditLogID == "" {
		log.AuditLogID = fmt.Sprintf("audit-%d", len(m.logs)+1)
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}
	m.logs = append(m.logs, *log)
	return nil
}

func (m *mockAuditLogRepo) ListSince(_ context.Context, since time.Time, userID string, limit int) ([]model.AuditLog, error) {
	var result []model.AuditLog
	for _, l := range m.logs {
		if l.CreatedAt.Before(since) {
			continue
		}
		if userID != "" {
			actorHit := l.ActorUserID != nil && *l.ActorUserID == userID
			targetHit := l.TargetUserID != nil && *l.TargetUserID == userID
			if !actorHit && !targetHit {
				continue
			}
		}
		result = append(result, l)
		if len(result) >= limit {
			break
		}
	}
	return result, nil
}

func (m *mockAuditLogRepo) ListRecent(_ context.Context, limit int) ([]model.AuditLog, error) {
	result := make([]model.AuditLog, 0, len(m.logs))
	for i := len(m.logs) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, m.logs[i])
	}
	return result, nil
}

// ── Mock NoticeRepository ──

type mockNoticeRepo struct {
	notices   map[string]*model.Notice
	reads     map[string]*model.NoticeRead // key: noticeID/userID/channel
	idCounter int
}

func newMockNoticeRepo() *mockNoticeRepo {
	return &mockNoticeRepo{
		notices: make(map[string]*model.Notice),
		reads:   make(map[string]*model.NoticeRead),
	}
}

func readKey(noticeID, userID, channel string) string {
	return noticeID + "/" + userID + "/" + channel
}

func (m *mockNoticeRepo) Create(_ context.Context, notice *model.Notice) error {
	if notice.NoticeID == "" {
		m.idCounter++
		notice.NoticeID = fmt.Sprintf("notice-%d", m.idCounter)
	}
	notice.CreatedAt = time.Now()
	notice.UpdatedAt = time.Now()
	m.notices[notice.NoticeID] = notice
	return nil
}

func (m *mockNoticeRepo) GetByID(_ context.Context, id string) (*model.Notice, error) {
	if n, ok := m.notices[id]; ok {
		return n, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNoticeRepo) Update(_ context.Context, notice *model.Notice) error {
	if _, ok := m.notices[notice.NoticeID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.notices[notice.NoticeID] = notice
	return nil
}

func (m *mockNoticeRepo) Delete(_ context.Context, id string) error {
	delete(m.notices, id)
	return nil
}

func (m *mockNoticeRepo) List(_ context.Context, limit int) ([]model.Notice, error) {
	result := make([]model.Notice, 0, len(m.notices))
	for _, n := range m.notices {
		result = append(result, *n)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Priority != result[j].Priority {
			return result[i].Priority > result[j].Priority
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockNoticeRepo) ReplaceTargets(_ context.Context, noticeID string, userIDs []string) error {
	n, ok := m.notices[noticeID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	n.Targets = nil
	for _, uid := range userIDs {
		n.Targets = append(n.Targets, model.NoticeTarget{NoticeID: noticeID, UserID: uid})
	}
	return nil
}

func (m *mockNoticeRepo) GetRead(_ context.Context, noticeID, userID, channel string) (*model.NoticeRead, error) {
	if r, ok := m.reads[readKey(noticeID, userID, channel)]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNoticeRepo) ListReadsByUser(_ context.Context, userID string) ([]model.NoticeRead, error) {
	var result []model.NoticeRead
	for _, r := range m.reads {
		if r.UserID == userID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockNoticeRepo) SaveRead(_ context.Context, read *model.NoticeRead) error {
	m.reads[readKey(read.NoticeID, read.UserID, read.Channel)] = read
	return nil
}

// ── Mock VisitorRepository ──

type mockVisitorRepo struct {
	years     map[string]*model.VisitorSchoolYear
	periods   map[string]*model.VisitorPeriod
	daily     map[string]*model.VisitorDailyCount
	idCounter int
}

func newMockVisitorRepo() *mockVisitorRepo {
	return &mockVisitorRepo{
		years:   make(map[string]*model.VisitorSchoolYear),
		periods: make(map[string]*model.VisitorPeriod),
		daily:   make(map[string]*model.VisitorDailyCount),
	}
}

func (m *mockVisitorRepo) CreateYear(_ context.Context, year *model.VisitorSchoolYear) error {
	if year.SchoolYearID == "" {
		m.idCounter++
		year.SchoolYearID = fmt.Sprintf("year-%d", m.idCounter)
	}
	m.years[year.SchoolYearID] = year
	return nil
}

func (m *mockVisitorRepo) GetYearByID(_ context.Context, id string) (*model.VisitorSchoolYear, error) {
	if y, ok := m.years[id]; ok {
		return y, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockVisitorRepo) GetYearByAcademicYear(_ context.Context, academicYear int) (*model.VisitorSchoolYear, error) {
	for _, y := range m.years {
		if y.AcademicYear == academicYear {
			return y, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockVisitorRepo) ListYears(_ context.Context) ([]model.VisitorSchoolYear, error) {
	result := make([]model.VisitorSchoolYear, 0, len(m.years))
	for _, y := range m.years {
		result = append(result, *y)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].AcademicYear > result[j].AcademicYear
	})
	return result, nil
}

func (m *mockVisitorRepo) CreatePeriod(_ context.Context, period *model.VisitorPeriod) error {
	if period.PeriodID == "" {
		m.idCounter++
		period.PeriodID = fmt.Sprintf("period-%d", m.idCounter)
	}
	m.periods[period.PeriodID] = period
	return nil
}

func (m *mockVisitorRepo) ListPeriods(_ context.Context, schoolYearID string) ([]model.VisitorPeriod, error) {
	var result []model.VisitorPeriod
	for _, p := range m.periods {
		if p.SchoolYearID == schoolYearID {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartDate.Before(result[j].StartDate)
	})
	return result, nil
}

func (m *mockVisitorRepo) GetDailyByDate(_ context.Context, schoolYearID string, visitDate time.Time) (*model.VisitorDailyCount, error) {
	for _, d := range m.daily {
		if d.SchoolYearID == schoolYearID && d.VisitDate.Equal(visitDate) {
			return d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockVisitorRepo) ListDaily(_ context.Context, schoolYearID string) ([]model.VisitorDailyCount, error) {
	var result []model.VisitorDailyCount
	for _, d := range m.daily {
		if d.SchoolYearID == schoolYearID {
			result = append(result, *d)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].VisitDate.Before(result[j].VisitDate)
	})
	return result, nil
}

func (m *mockVisitorRepo) SaveDaily(_ context.Context, entry *model.VisitorDailyCount) error {
	if entry.DailyCountID == "" {
		m.idCounter++
		entry.DailyCountID = fmt.Sprintf("daily-%d", m.idCounter)
	}
	cp := *entry
	m.daily[entry.DailyCountID] = &cp
	return nil
}

func (m *mockVisitorRepo) DeleteDaily(_ context.Context, id string) error {
	delete(m.daily, id)
	return nil
}

// ── Mock SerialRepository ──

type mockSerialRepo struct {
	publications map[string]*model.SerialPublication
	idCounter    int
}

func newMockSerialRepo() *mockSerialRepo {
	return &mockSerialRepo{publications: make(map[string]*model.SerialPublication)}
}

func (m *mockSerialRepo) Create(_ context.Context, publication *model.SerialPublication) error {
	if publication.PublicationID == "" {
		m.idCounter++
		publication.PublicationID = fmt.Sprintf("pub-%d", m.idCounter)
	}
	m.publications[publication.PublicationID] = publication
	return nil
}

func (m *mockSerialRepo) GetByID(_ context.Context, id string) (*model.SerialPublication, error) {
	if p, ok := m.publications[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSerialRepo) Update(_ context.Context, publication *model.SerialPublication) error {
	if _, ok := m.publications[publication.PublicationID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.publications[publication.PublicationID] = publication
	return nil
}

func (m *mockSerialRepo) Delete(_ context.Context, id string) error {
	delete(m.publications, id)
	return nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func (m *mockSerialRepo) List(_ context.Context, filter repository.SerialFilter) ([]model.SerialPublication, error) {
	var result []model.SerialPublication
	for _, p := range m.publications {
		if filter.Keyword != "" && !containsFold(p.Title, filter.Keyword) {
			continue
		}
		if filter.ISSN != "" && (p.ISSN == nil || !containsFold(*p.ISSN, filter.ISSN)) {
			continue
		}
		if filter.ShelfSection != "" && (p.ShelfSection == nil || !containsFold(*p.ShelfSection, filter.ShelfSection)) {
			continue
		}
		if filter.AcquisitionType != "" && p.AcquisitionType != filter.AcquisitionType {
			continue
		}
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Title < result[j].Title
	})
	return result, nil
}

// ── 聚合构造 ──

// newTestRepository 返回绑定全部内存实现的 Repository；db 为空时 Tx 直接执行回调
func newTestRepository() (*repository.Repository, *mockUserRepo, *mockShiftRepo, *mockUserShiftRepo, *mockShiftRequestRepo, *mockAuditLogRepo) {
	userRepo := newMockUserRepo()
	shiftRepo := newMockShiftRepo()
	userShiftRepo := newMockUserShiftRepo()
	requestRepo := newMockShiftRequestRepo()
	auditRepo := newMockAuditLogRepo()
	repo := &repository.Repository{
		User:      userRepo,
		Shift:     shiftRepo,
		UserShift: userShiftRepo,
		Request:   requestRepo,
		Audit:     auditRepo,
		Notice:    newMockNoticeRepo(),
		Visitor:   newMockVisitorRepo(),
		Serial:    newMockSerialRepo(),
	}
	return repo, userRepo, shiftRepo, userShiftRepo, requestRepo, auditRepo
}
