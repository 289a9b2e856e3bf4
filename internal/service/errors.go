package service

import (
	pkgerrors "github.com/leandrovr13/onfly/pkg/errors"
)

// ── business errors shared by the services ──

var (
	ErrUserNotFound         = pkgerrors.NewNotFoundError("user")
	ErrTravelOrderNotFound  = pkgerrors.NewNotFoundError("travel order")
	ErrNotificationNotFound = pkgerrors.NewNotFoundError("notification")

	ErrInvalidCredentials = pkgerrors.NewValidationError("email", "invalid credentials")
	ErrEmailTaken         = pkgerrors.NewValidationError("email", "the email has already been taken")
	ErrPasswordMismatch   = pkgerrors.NewValidationError("password", "the password confirmation does not match")
)
