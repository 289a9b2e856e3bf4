package model

import (
	pkgerrors "github.com/leandrovr13/onfly/pkg/errors"
)

// TravelOrderStatus lifecycle state of a travel order
//
//	requested ──> approved
//	    │   ^         │
//	    v   │         x (approved orders cannot be cancelled)
//	 cancelled <──────┘
type TravelOrderStatus string

const (
	StatusRequested TravelOrderStatus = "requested"
	StatusApproved  TravelOrderStatus = "approved"
	StatusCancelled TravelOrderStatus = "cancelled"
)

// TravelOrderPageSize fixed page size of travel order listings
const TravelOrderPageSize = 10

// DestinationMaxLen maximum destination length in characters
const DestinationMaxLen = 255

// ErrInvalidStatus target status outside {approved, cancelled}
var ErrInvalidStatus = pkgerrors.NewValidationError("status", "status must be one of: approved, cancelled")

// Valid reports whether s is a known status
func (s TravelOrderStatus) Valid() bool {
	switch s {
	case StatusRequested, StatusApproved, StatusCancelled:
		return true
	}
	return false
}

// IsTarget reports whether s may be requested through a status update
func (s TravelOrderStatus) IsTarget() bool {
	return s == StatusApproved || s == StatusCancelled
}

// CanTransitionTo applies the transition rule. Same-state transitions are allowed.
func (s TravelOrderStatus) CanTransitionTo(next TravelOrderStatus) error {
	if !next.IsTarget() {
		return ErrInvalidStatus
	}
	if s == StatusApproved && next == StatusCancelled {
		return pkgerrors.ErrIllegalTransition
	}
	return nil
}

// TravelOrder travel_orders table
type TravelOrder struct {
	ID            int64             `gorm:"primaryKey;autoIncrement"                        json:"id"`
	UserID        string            `gorm:"type:uuid;not null;index"                        json:"user_id"`
	Destination   string            `gorm:"type:varchar(255);not null"                      json:"destination"`
	DepartureDate Date              `gorm:"type:date;not null"                              json:"departure_date"`
	ReturnDate    Date              `gorm:"type:date;not null"                              json:"return_date"`
	Status        TravelOrderStatus `gorm:"type:varchar(20);not null;default:'requested'"   json:"status"`
	UpdatedBy     *string           `gorm:"type:uuid"                                       json:"updated_by,omitempty"`
	BaseModel

	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName table name
func (TravelOrder) TableName() string { return "travel_orders" }

// Overlaps reports whether [DepartureDate, ReturnDate] intersects [start, end]
func (o *TravelOrder) Overlaps(start, end Date) bool {
	return !o.DepartureDate.After(end) && !o.ReturnDate.Before(start)
}
