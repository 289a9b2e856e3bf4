package handler

import "github.com/leandrovr13/onfly/internal/service"

// Handler aggregate of all handlers
type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	TravelOrder  *TravelOrderHandler
	Notification *NotificationHandler
	Export       *ExportHandler
}

// NewHandler builds every handler from the service aggregate
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth, svc.User),
		User:         NewUserHandler(svc.User),
		TravelOrder:  NewTravelOrderHandler(svc.TravelOrder),
		Notification: NewNotificationHandler(svc.Notification),
		Export:       NewExportHandler(svc.Export),
	}
}
