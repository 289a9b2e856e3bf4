package dto

// NotificationResponse inbox entry
type NotificationResponse struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data"`
	ReadAt    *string                `json:"read_at"`
	CreatedAt string                 `json:"created_at"`
}

// UnreadCountResponse unread counter
type UnreadCountResponse struct {
	Unread int64 `json:"unread"`
}

// MarkAllReadResponse number of notifications marked read
type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}
