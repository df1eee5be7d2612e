package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ValidRole reports whether role is one of the two recognised roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

// User models an account in the directory. PasswordHash never crosses the
// HTTP boundary; the store layer carries it to disk through its own record type.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Principal is the authenticated identity decoded from a verified token.
// Verification is stateless: a principal may outlive the account it was
// issued for, up to the token TTL.
type Principal struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// IsAdmin reports whether the principal carries the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
