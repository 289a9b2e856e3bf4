package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leandrovr13/onfly/internal/service"
	pkgerrors "github.com/leandrovr13/onfly/pkg/errors"
	"github.com/leandrovr13/onfly/pkg/response"
)

// Business codes carried in the response envelope
const (
	codeParamInvalid    = 10001
	codeUnauthenticated = 10002
	codeForbidden       = 10003
	codeBodyTooLarge    = 10005
	codeConflict        = 10009

	codeInvalidCredentials = 11001

	codeUserNotFound = 20001

	codeTravelOrderNotFound = 30002
	codeIllegalTransition   = 30003

	codeNotificationNotFound = 40001

	codeNotFound = 40400
)

// respondError maps service errors onto the HTTP envelope
func respondError(c *gin.Context, err error) {
	var verr *pkgerrors.ValidationError

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unprocessable(c, codeInvalidCredentials, "these credentials do not match our records", "email")
	case errors.Is(err, pkgerrors.ErrIllegalTransition):
		response.Unprocessable(c, codeIllegalTransition, err.Error(), "status")
	case errors.As(err, &verr):
		response.Unprocessable(c, codeParamInvalid, verr.Message, verr.Field)
	case errors.Is(err, pkgerrors.ErrForbidden):
		response.Forbidden(c, codeForbidden, "this action is unauthorized")
	case errors.Is(err, service.ErrTravelOrderNotFound):
		response.NotFound(c, codeTravelOrderNotFound, "travel order not found")
	case errors.Is(err, service.ErrNotificationNotFound):
		response.NotFound(c, codeNotificationNotFound, "notification not found")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, codeUserNotFound, "user not found")
	case errors.Is(err, pkgerrors.ErrNotFound):
		response.NotFound(c, codeNotFound, err.Error())
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, codeConflict, err.Error())
	default:
		// recorded for the request logger
		_ = c.Error(err)
		response.InternalError(c)
	}
}

func respondStatusOK(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
