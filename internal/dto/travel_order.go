package dto

// ── travel orders ──

// CreateTravelOrderRequest new travel order; dates are YYYY-MM-DD
type CreateTravelOrderRequest struct {
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
	ReturnDate    string `json:"return_date"`
}

// UpdateTravelOrderStatusRequest status update payload
type UpdateTravelOrderStatusRequest struct {
	Status string `json:"status"`
}

// TravelOrderListRequest list filters; start_date and end_date only apply together
type TravelOrderListRequest struct {
	PaginationRequest
	ID          *int64 `form:"id"          binding:"omitempty,min=1"`
	Status      string `form:"status"`
	Destination string `form:"destination" binding:"omitempty,max=255"`
	StartDate   string `form:"start_date"`
	EndDate     string `form:"end_date"`
	UserID      string `form:"user_id"     binding:"omitempty,uuid"`
}

// TravelOrderResponse travel order representation
type TravelOrderResponse struct {
	ID            int64        `json:"id"`
	UserID        string       `json:"user_id"`
	Destination   string       `json:"destination"`
	DepartureDate string       `json:"departure_date"`
	ReturnDate    string       `json:"return_date"`
	Status        string       `json:"status"`
	CreatedAt     string       `json:"created_at"`
	UpdatedAt     string       `json:"updated_at"`
	User          *UserSummary `json:"user,omitempty"`
}
