// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

type UpdateUserRequest struct {
	FirstName  *string `json:"first_name,omitempty"  validate:"omitempty,min=1,max=100"`
	LastName   *string `json:"last_name,omitempty"   validate:"omitempty,min=1,max=100"`
	Phone      *string `json:"phone,omitempty"       validate:"omitempty,max=30"`
	Address    *string `json:"address,omitempty"     validate:"omitempty,max=255"`
	City       *string `json:"city,omitempty"        validate:"omitempty,max=100"`
	Province   *string `json:"province,omitempty"    validate:"omitempty,max=100"`
	PostalCode *string `json:"postal_code,omitempty" validate:"omitempty,max=20"`
}

// ApplyTo copies the provided fields onto the entity, leaving the
// rest untouched. Absent JSON fields stay nil and are skipped.
func (r *UpdateUserRequest) ApplyTo(u *User) {
	if r.FirstName != nil {
		u.FirstName = *r.FirstName
	}
	if r.LastName != nil {
		u.LastName = *r.LastName
	}
	if r.Phone != nil {
		u.Phone = *r.Phone
	}
	if r.Address != nil {
		u.Address = *r.Address
	}
	if r.City != nil {
		u.City = *r.City
	}
	if r.Province != nil {
		u.Province = *r.Province
	}
	if r.PostalCode != nil {
		u.PostalCode = *r.PostalCode
	}
}

type ProfileResponse struct {
	ID         int64     `json:"id"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	City       string    `json:"city"`
	Province   string    `json:"province"`
	PostalCode string    `json:"postal_code"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type PublicUserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	City      string    `json:"city"`
	CreatedAt time.Time `json:"created_at"`
}

func ToProfileResponse(u *User) ProfileResponse {
	return ProfileResponse{
		ID:         u.ID,
		Email:      u.Email,
		Username:   u.Username,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Phone:      u.Phone,
		Address:    u.Address,
		City:       u.City,
		Province:   u.Province,
		PostalCode: u.PostalCode,
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func ToPublicUserResponse(u *User) PublicUserResponse {
	return PublicUserResponse{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		City:      u.City,
		CreatedAt: u.CreatedAt,
	}
}
