package models

import "time"

// User roles
const (
	RoleBuyer    = "buyer"
	RoleSupplier = "supplier"
	RoleAdmin    = "admin"
)

type User struct {
	ID           int        `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Name         string     `json:"name"`
	Company      string     `json:"company"`
	Phone        string     `json:"phone"`
	Role         string     `json:"role"` // 'buyer', 'supplier', 'admin'
	Country      string     `json:"country,omitempty"`
	IsActive     bool       `json:"is_active"`
	TOTPEnabled  bool       `json:"totp_enabled"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Company  string `json:"company"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Country  string `json:"country"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token        string `json:"token,omitempty"`
	User         *User  `json:"user,omitempty"`
	TOTPRequired bool   `json:"totp_required,omitempty"`
	TempToken    string `json:"temp_token,omitempty"`
}
