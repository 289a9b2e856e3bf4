package dto

// ── auth ──

// LoginRequest login payload
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest self-registration payload, always creates a regular user
type RegisterRequest struct {
	Name                 string  `json:"name"                  binding:"required,max=255"`
	Email                string  `json:"email"                 binding:"required,email,max=255"`
	Password             string  `json:"password"              binding:"required,min=6"`
	PasswordConfirmation string  `json:"password_confirmation" binding:"required,eqfield=Password"`
	Phone                *string `json:"phone"                 binding:"omitempty,max=40"`
}

// TokenResponse token plus the authenticated user
type TokenResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expires_in"`
	User      UserResponse `json:"user"`
}
