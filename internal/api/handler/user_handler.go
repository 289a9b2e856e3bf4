package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/leandrovr13/onfly/internal/dto"
	"github.com/leandrovr13/onfly/internal/service"
	"github.com/leandrovr13/onfly/pkg/response"
)

// UserHandler profile endpoints
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler creates a UserHandler
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// GetCurrentUser
// GET /api/v1/user
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.userSvc.GetByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, user)
}

// UpdateProfile
// PUT /api/v1/auth/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userSvc.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, user)
}
