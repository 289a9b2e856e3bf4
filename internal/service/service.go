package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/leandrovr13/onfly/config"
	"github.com/leandrovr13/onfly/internal/repository"
	"github.com/leandrovr13/onfly/pkg/jwt"
	"github.com/leandrovr13/onfly/pkg/redis"
)

// Service aggregate entry point of all services
type Service struct {
	Auth         AuthService
	User         UserService
	TravelOrder  TravelOrderService
	Notification NotificationService
	Export       ExportService
}

// NewService builds every service. rdb may be nil when Redis is unavailable.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	var tokens TokenBlacklist
	if rdb != nil {
		tokens = rdb
	}

	return &Service{
		Auth:         NewAuthService(cfg, repo, jwtMgr, tokens, logger),
		User:         NewUserService(repo, logger),
		TravelOrder:  NewTravelOrderService(&cfg.Travel, repo, time.Now, logger),
		Notification: NewNotificationService(repo, logger),
		Export:       NewExportService(&cfg.Travel, repo, logger),
	}
}
