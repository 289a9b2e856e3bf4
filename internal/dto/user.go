package dto

// UpdateProfileRequest profile update; the password changes only when provided
type UpdateProfileRequest struct {
	Name                 string  `json:"name"                  binding:"required,max=255"`
	Phone                *string `json:"phone"                 binding:"omitempty,max=40"`
	Password             *string `json:"password"              binding:"omitempty,min=6"`
	PasswordConfirmation *string `json:"password_confirmation"`
}
