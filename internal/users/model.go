package users

import "time"

// DefaultRole is assigned when a user is created without a role.
const DefaultRole = "موظف"

// User represents an archive operator account.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	FullName     string
	Role         string
	CreatedAt    time.Time
}
