package dto

// ── pagination ──

// MaxPage highest page number accepted; keeps the row offset far from overflow
const MaxPage = 1000000

// PaginationRequest common page parameter
type PaginationRequest struct {
	Page int `form:"page" binding:"omitempty,min=1,max=1000000"`
}

// GetPage page number, 1 when absent, clamped to MaxPage
func (p *PaginationRequest) GetPage() int {
	switch {
	case p.Page <= 0:
		return 1
	case p.Page > MaxPage:
		return MaxPage
	}
	return p.Page
}

// GetOffset row offset for the given page size
func (p *PaginationRequest) GetOffset(pageSize int) int {
	return (p.GetPage() - 1) * pageSize
}

// ── users ──

// UserResponse public user representation
type UserResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	Phone     *string `json:"phone"`
	CreatedAt string  `json:"created_at"`
}

// UserSummary requester embedded in travel order responses
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
