package main

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ValidRole reports whether role belongs to the closed role set. Anything
// outside it is rejected at registration instead of silently defaulting.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // hashed password, never serialized
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Public is the account view returned to clients: no password hash.
func (u User) Public() map[string]any {
	return map[string]any{
		"id":       u.ID,
		"username": u.Username,
		"email":    u.Email,
		"role":     u.Role,
	}
}
