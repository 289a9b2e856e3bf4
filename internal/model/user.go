package model

// Roles
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User users table
type User struct {
	UserID       string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name         string  `gorm:"type:varchar(255);not null"                     json:"name"`
	Email        string  `gorm:"type:varchar(255);not null"                     json:"email"`
	Phone        *string `gorm:"type:varchar(40)"                               json:"phone,omitempty"`
	PasswordHash string  `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string  `gorm:"type:varchar(20);not null;default:'user'"       json:"role"`
	BaseModel
}

// TableName table name
func (User) TableName() string { return "users" }

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
