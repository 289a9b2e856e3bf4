package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/leandrovr13/onfly/internal/api/middleware"
	"github.com/leandrovr13/onfly/internal/model"
	"github.com/leandrovr13/onfly/pkg/response"
)

// MustGetUserID extracts the caller id injected by JWTAuth.
// On false a 401 has already been written and the handler must return.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(middleware.ContextUserID)
	if !exists {
		response.Unauthorized(c, codeUnauthenticated, "unauthenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, codeUnauthenticated, "unauthenticated")
		return "", false
	}
	return s, true
}

// MustGetPrincipal the caller as passed to the services
func MustGetPrincipal(c *gin.Context) (model.Principal, bool) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return model.Principal{}, false
	}
	return model.NewPrincipal(userID, c.GetString(middleware.ContextRole)), true
}

// tokenMeta jti and expiry of the caller's token, zero when absent
func tokenMeta(c *gin.Context) (string, time.Time) {
	jti := c.GetString(middleware.ContextTokenJTI)
	var exp time.Time
	if v, ok := c.Get(middleware.ContextTokenExp); ok {
		exp, _ = v.(time.Time)
	}
	return jti, exp
}
