package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/leandrovr13/onfly/internal/dto"
	"github.com/leandrovr13/onfly/internal/service"
	"github.com/leandrovr13/onfly/pkg/response"
)

// NotificationHandler inbox endpoints, always scoped to the caller
type NotificationHandler struct {
	notificationSvc service.NotificationService
}

// NewNotificationHandler creates a NotificationHandler
func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

// List
// GET /api/v1/notifications?page=
func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondBindError(c, err)
		return
	}

	list, total, err := h.notificationSvc.List(c.Request.Context(), userID, &page)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OKPage(c, list, total, page.GetPage(), service.NotificationPageSize)
}

// UnreadCount
// GET /api/v1/notifications/unread-count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.notificationSvc.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, result)
}

// MarkRead
// POST /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.notificationSvc.MarkRead(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	respondStatusOK(c)
}

// MarkAllRead
// POST /api/v1/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.notificationSvc.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, result)
}
