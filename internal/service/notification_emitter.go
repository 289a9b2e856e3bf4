package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/leandrovr13/onfly/internal/model"
	"github.com/leandrovr13/onfly/internal/repository"
)

// RequestedAtLayout format of the requested_at payload field
const RequestedAtLayout = "2006-01-02 15:04:05"

// StatusChangeEmitter notifies an order's owner that its status changed
type StatusChangeEmitter interface {
	// EmitStatusChanged appends one inbox record when oldStatus != newStatus and nothing otherwise
	EmitStatusChanged(ctx context.Context, order *model.TravelOrder, oldStatus, newStatus model.TravelOrderStatus) error
}

type notificationEmitter struct {
	notifications repository.NotificationRepository
}

// NewNotificationEmitter writes to the given inbox repository; pass a
// transaction-bound repository to make delivery atomic with the status write.
func NewNotificationEmitter(notifications repository.NotificationRepository) StatusChangeEmitter {
	return &notificationEmitter{notifications: notifications}
}

func (e *notificationEmitter) EmitStatusChanged(ctx context.Context, order *model.TravelOrder, oldStatus, newStatus model.TravelOrderStatus) error {
	if oldStatus == newStatus {
		return nil
	}

	n := NewStatusChangedNotification(order, oldStatus, newStatus)
	if err := e.notifications.Create(ctx, n); err != nil {
		return fmt.Errorf("append status notification: %w", err)
	}
	return nil
}

// NewStatusChangedNotification shapes the inbox record for a status change
func NewStatusChangedNotification(order *model.TravelOrder, oldStatus, newStatus model.TravelOrderStatus) *model.Notification {
	message := fmt.Sprintf("Your travel order to %s was %s.", order.Destination, newStatus)
	relatedType := model.RelatedTypeTravelOrder
	relatedID := strconv.FormatInt(order.ID, 10)

	return &model.Notification{
		NotificationID: uuid.NewString(),
		UserID:         order.UserID,
		Type:           model.NotificationTypeTravelOrderStatusChanged,
		Title:          fmt.Sprintf("Travel order %s", newStatus),
		Content:        message,
		Data: model.NotificationData{
			"travel_order_id": order.ID,
			"old_status":      string(oldStatus),
			"new_status":      string(newStatus),
			"destination":     order.Destination,
			"message":         message,
			"requested_at":    order.CreatedAt.Format(RequestedAtLayout),
		},
		RelatedType: &relatedType,
		RelatedID:   &relatedID,
	}
}
