package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/leandrovr13/onfly/internal/dto"
	"github.com/leandrovr13/onfly/internal/repository"
	pkgerrors "github.com/leandrovr13/onfly/pkg/errors"
)

// NotificationPageSize page size of the notification inbox
const NotificationPageSize = 20

// NotificationService the caller's notification inbox
type NotificationService interface {
	List(ctx context.Context, userID string, req *dto.PaginationRequest) ([]dto.NotificationResponse, int64, error)
	UnreadCount(ctx context.Context, userID string) (*dto.UnreadCountResponse, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) (*dto.MarkAllReadResponse, error)
	// PruneRead deletes notifications read before the cutoff
	PruneRead(ctx context.Context, before time.Time) (int64, error)
}

type notificationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewNotificationService creates a NotificationService
func NewNotificationService(repo *repository.Repository, logger *zap.Logger) NotificationService {
	return &notificationService{repo: repo, logger: logger}
}

func (s *notificationService) List(ctx context.Context, userID string, req *dto.PaginationRequest) ([]dto.NotificationResponse, int64, error) {
	items, total, err := s.repo.Notification.ListByUser(ctx, userID, req.GetOffset(NotificationPageSize), NotificationPageSize)
	if err != nil {
		s.logger.Error("failed to list notifications", zap.String("user_id", userID), zap.Error(err))
		return nil, 0, pkgerrors.Storage("list notifications", err)
	}

	list := make([]dto.NotificationResponse, 0, len(items))
	for i := range items {
		list = append(list, toNotificationResponse(&items[i]))
	}
	return list, total, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID string) (*dto.UnreadCountResponse, error) {
	count, err := s.repo.Notification.CountUnread(ctx, userID)
	if err != nil {
		s.logger.Error("failed to count unread notifications", zap.String("user_id", userID), zap.Error(err))
		return nil, pkgerrors.Storage("count unread notifications", err)
	}
	return &dto.UnreadCountResponse{Unread: count}, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotificationNotFound
	}

	if err := s.repo.Notification.MarkRead(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		s.logger.Error("failed to mark notification read", zap.String("id", id), zap.Error(err))
		return pkgerrors.Storage("mark notification read", err)
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) (*dto.MarkAllReadResponse, error) {
	updated, err := s.repo.Notification.MarkAllRead(ctx, userID)
	if err != nil {
		s.logger.Error("failed to mark notifications read", zap.String("user_id", userID), zap.Error(err))
		return nil, pkgerrors.Storage("mark all notifications read", err)
	}
	return &dto.MarkAllReadResponse{Updated: updated}, nil
}

func (s *notificationService) PruneRead(ctx context.Context, before time.Time) (int64, error) {
	deleted, err := s.repo.Notification.DeleteReadBefore(ctx, before)
	if err != nil {
		return 0, pkgerrors.Storage("prune read notifications", err)
	}
	return deleted, nil
}
