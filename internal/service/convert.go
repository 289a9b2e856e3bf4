package service

import (
	"time"

	"github.com/leandrovr13/onfly/internal/dto"
	"github.com/leandrovr13/onfly/internal/model"
)

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.UserID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Phone:     u.Phone,
		CreatedAt: formatTime(u.CreatedAt),
	}
}

func toTravelOrderResponse(o *model.TravelOrder) dto.TravelOrderResponse {
	resp := dto.TravelOrderResponse{
		ID:            o.ID,
		UserID:        o.UserID,
		Destination:   o.Destination,
		DepartureDate: o.DepartureDate.String(),
		ReturnDate:    o.ReturnDate.String(),
		Status:        string(o.Status),
		CreatedAt:     formatTime(o.CreatedAt),
		UpdatedAt:     formatTime(o.UpdatedAt),
	}
	if o.User != nil {
		resp.User = &dto.UserSummary{
			ID:    o.User.UserID,
			Name:  o.User.Name,
			Email: o.User.Email,
		}
	}
	return resp
}

func toNotificationResponse(n *model.Notification) dto.NotificationResponse {
	resp := dto.NotificationResponse{
		ID:        n.NotificationID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Content,
		Data:      n.Data,
		CreatedAt: formatTime(n.CreatedAt),
	}
	if resp.Data == nil {
		resp.Data = map[string]interface{}{}
	}
	if n.ReadAt != nil {
		readAt := formatTime(*n.ReadAt)
		resp.ReadAt = &readAt
	}
	return resp
}
