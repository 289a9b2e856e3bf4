package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Notification types
const (
	NotificationTypeTravelOrderStatusChanged = "travel_order_status_changed"
)

// Related resource types
const (
	RelatedTypeTravelOrder = "travel_order"
)

// NotificationData structured payload of a notification, stored as JSONB
type NotificationData map[string]interface{}

// Scan decodes the JSONB column
func (d *NotificationData) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*d = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("NotificationData.Scan: unsupported type %T", src)
	}
	data := NotificationData{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("NotificationData.Scan: %w", err)
	}
	*d = data
	return nil
}

// Value encodes the payload as JSON text
func (d NotificationData) Value() (driver.Value, error) {
	if d == nil {
		return "{}", nil
	}
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// GormDataType column type used by gorm
func (NotificationData) GormDataType() string { return "jsonb" }

// Notification notifications table, one user's inbox entry
type Notification struct {
	NotificationID string           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_id"`
	UserID         string           `gorm:"type:uuid;not null;index"                       json:"user_id"`
	Type           string           `gorm:"type:varchar(50);not null"                      json:"type"`
	Title          string           `gorm:"type:varchar(200);not null"                     json:"title"`
	Content        string           `gorm:"type:text;not null"                             json:"content"`
	Data           NotificationData `gorm:"type:jsonb;not null"                            json:"data"`
	RelatedType    *string          `gorm:"type:varchar(30)"                               json:"related_type,omitempty"`
	RelatedID      *string          `gorm:"type:varchar(64)"                               json:"related_id,omitempty"`
	ReadAt         *time.Time       `json:"read_at,omitempty"`
	CreatedAt      time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName table name
func (Notification) TableName() string { return "notifications" }

// IsRead reports whether the notification was marked read
func (n *Notification) IsRead() bool { return n.ReadAt != nil }
