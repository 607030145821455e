// AngelaMos | 2026
// entity.go

package user

import "time"

type User struct {
	ID           int64     `db:"id"`
	Email        string    `db:"email"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	Phone        string    `db:"phone"`
	Address      string    `db:"address"`
	City         string    `db:"city"`
	Province     string    `db:"province"`
	PostalCode   string    `db:"postal_code"`
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
