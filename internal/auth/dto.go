// AngelaMos | 2026
// dto.go

package auth

import "time"

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type RegisterRequest struct {
	Email      string `json:"email"       validate:"required,email"`
	Username   string `json:"username"    validate:"required,min=3,max=30,alphanum"`
	Password   string `json:"password"    validate:"required,min=8,max=128"`
	FirstName  string `json:"first_name"  validate:"required,min=1,max=100"`
	LastName   string `json:"last_name"   validate:"required,min=1,max=100"`
	Phone      string `json:"phone"       validate:"omitempty,max=30"`
	Address    string `json:"address"     validate:"omitempty,max=255"`
	City       string `json:"city"        validate:"omitempty,max=100"`
	Province   string `json:"province"    validate:"omitempty,max=100"`
	PostalCode string `json:"postal_code" validate:"omitempty,max=20"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse is the login token envelope plus the registered user,
// flattened so both auth endpoints share one token shape.
type AuthResponse struct {
	TokenResponse
	User UserResponse `json:"user"`
}
