package model

import "time"

// User roles. Standard users can read the dashboard; admins can also upload
// CSV files and manage accounts.
const (
	RoleStandard = "standard"
	RoleAdmin    = "admin"
)

// User is a dashboard account. PasswordHash is never serialized.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
